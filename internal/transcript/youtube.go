package transcript

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/kkdai/youtube/v2"
)

// YouTubeSource reads caption tracks through the public YouTube player API.
type YouTubeSource struct {
	client *youtube.Client
}

func NewYouTubeSource(httpClient *http.Client) *YouTubeSource {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &YouTubeSource{client: &youtube.Client{HTTPClient: httpClient}}
}

func (s *YouTubeSource) Segments(ctx context.Context, videoID, language string) ([]Segment, error) {
	video, err := s.client.GetVideoContext(ctx, videoID)
	if err != nil {
		return nil, mapVideoError(err)
	}

	track, err := s.client.GetTranscriptCtx(ctx, video, language)
	if err != nil {
		return nil, mapTranscriptError(err)
	}

	segments := make([]Segment, 0, len(track))
	for _, seg := range track {
		segments = append(segments, Segment{Text: seg.Text})
	}
	return segments, nil
}

func mapTranscriptError(err error) error {
	if errors.Is(err, youtube.ErrTranscriptDisabled) {
		return fmt.Errorf("%w: %v", ErrNoTrack, err)
	}
	return err
}

func mapVideoError(err error) error {
	var playability *youtube.ErrPlayabiltyStatus
	switch {
	case errors.Is(err, youtube.ErrVideoPrivate),
		errors.Is(err, youtube.ErrLoginRequired),
		errors.Is(err, youtube.ErrNotPlayableInEmbed),
		errors.Is(err, youtube.ErrInvalidCharactersInVideoID),
		errors.Is(err, youtube.ErrVideoIDMinLength),
		errors.As(err, &playability):
		return fmt.Errorf("%w: %v", ErrVideoUnavailable, err)
	}
	return err
}
