package transcript

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

// Segment is one timed piece of a transcript track.
type Segment struct {
	Text string
}

// Source returns the ordered segments of the track matching language.
// Implementations report ErrNoTrack and ErrVideoUnavailable (wrapped or not)
// for the two expected failure modes.
type Source interface {
	Segments(ctx context.Context, videoID, language string) ([]Segment, error)
}

// Cache memoises fetched transcripts. Misses and failures are not errors for the caller.
type Cache interface {
	GetTranscript(ctx context.Context, videoID, language string) (string, bool)
	SetTranscript(ctx context.Context, videoID, language, text string)
}

type Fetcher struct {
	source Source
	cache  Cache
	logger *zap.Logger
}

type Option func(*Fetcher)

// WithCache puts a cache in front of the source.
func WithCache(c Cache) Option {
	return func(f *Fetcher) { f.cache = c }
}

func NewFetcher(source Source, logger *zap.Logger, opts ...Option) *Fetcher {
	f := &Fetcher{source: source, logger: logger}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch returns the space-joined text of every segment in track order.
// On failure the text is empty and the error is a *FetchError.
func (f *Fetcher) Fetch(ctx context.Context, videoID, language string) (string, error) {
	if f.cache != nil {
		if text, ok := f.cache.GetTranscript(ctx, videoID, language); ok {
			return text, nil
		}
	}

	segments, err := f.source.Segments(ctx, videoID, language)
	if err != nil {
		fe := classify(videoID, err)
		f.logger.Warn("transcript fetch failed",
			zap.String("video_id", videoID),
			zap.String("language", language),
			zap.Stringer("kind", fe.Kind),
			zap.Error(err))
		return "", fe
	}
	if len(segments) == 0 {
		return "", &FetchError{Kind: NotFound, VideoID: videoID, Err: ErrNoTrack}
	}

	texts := make([]string, len(segments))
	for i, s := range segments {
		texts[i] = s.Text
	}
	text := strings.Join(texts, " ")

	if f.cache != nil {
		f.cache.SetTranscript(ctx, videoID, language, text)
	}
	return text, nil
}
