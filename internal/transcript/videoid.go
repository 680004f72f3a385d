package transcript

import (
	"errors"
	"strings"
)

var ErrInvalidLink = errors.New("please enter a valid YouTube link")

const (
	queryMarker     = "v="
	shortLinkMarker = "youtu.be/"
)

// ParseVideoID extracts the video id from a watch link (v= query parameter) or
// a youtu.be short link.
func ParseVideoID(link string) (string, error) {
	link = strings.TrimSpace(link)

	var id string
	switch {
	case strings.Contains(link, queryMarker):
		id = link[strings.Index(link, queryMarker)+len(queryMarker):]
		if i := strings.Index(id, "&"); i != -1 {
			id = id[:i]
		}
	case strings.Contains(link, shortLinkMarker):
		id = link[strings.Index(link, shortLinkMarker)+len(shortLinkMarker):]
		if i := strings.IndexAny(id, "?#&/"); i != -1 {
			id = id[:i]
		}
	default:
		return "", ErrInvalidLink
	}

	if i := strings.Index(id, "#"); i != -1 {
		id = id[:i]
	}
	if id == "" {
		return "", ErrInvalidLink
	}
	return id, nil
}

// ThumbnailURL returns the default preview image for a video.
func ThumbnailURL(videoID string) string {
	return "http://img.youtube.com/vi/" + videoID + "/0.jpg"
}
