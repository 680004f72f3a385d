package transcript

import (
	"errors"
	"fmt"
)

// FailureKind classifies why a transcript could not be fetched.
type FailureKind int

const (
	Unknown FailureKind = iota
	NotFound
	Unavailable
)

func (k FailureKind) String() string {
	switch k {
	case NotFound:
		return "not_found"
	case Unavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

// Sentinel errors a Source returns so the fetcher can classify them.
var (
	ErrNoTrack          = errors.New("no transcript track for the requested language")
	ErrVideoUnavailable = errors.New("video is unavailable")
)

// FetchError is the only error type Fetch returns.
type FetchError struct {
	Kind    FailureKind
	VideoID string
	Err     error
}

func (e *FetchError) Error() string {
	switch e.Kind {
	case NotFound:
		return fmt.Sprintf("transcript not available for video %s", e.VideoID)
	case Unavailable:
		return fmt.Sprintf("video %s is unavailable", e.VideoID)
	default:
		return fmt.Sprintf("fetch transcript for video %s: %v", e.VideoID, e.Err)
	}
}

func (e *FetchError) Unwrap() error { return e.Err }

// IsKind reports whether err is a FetchError of the given kind.
func IsKind(err error, kind FailureKind) bool {
	var fe *FetchError
	return errors.As(err, &fe) && fe.Kind == kind
}

func classify(videoID string, err error) *FetchError {
	kind := Unknown
	switch {
	case errors.Is(err, ErrNoTrack):
		kind = NotFound
	case errors.Is(err, ErrVideoUnavailable):
		kind = Unavailable
	}
	return &FetchError{Kind: kind, VideoID: videoID, Err: err}
}
