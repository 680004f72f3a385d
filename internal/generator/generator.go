package generator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/AnshRaj112/ytsummary-backend/internal/models"
	"go.uber.org/zap"
)

const (
	MinWordCount     = 50
	MaxWordCount     = 500
	WordCountStep    = 50
	DefaultWordCount = 250

	// Ellipsis marks a summary cut down to the requested word count.
	Ellipsis = "..."
)

var (
	ErrUnknownKind      = errors.New("invalid content type selected")
	ErrInvalidWordCount = fmt.Errorf("word count must be between %d and %d in steps of %d", MinWordCount, MaxWordCount, WordCountStep)
	ErrEmptyOutput      = errors.New("backend returned no text")
)

// GenerationError wraps any backend failure. No content accompanies it.
type GenerationError struct {
	Kind models.ContentKind
	Err  error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("failed to generate %s: %v", e.Kind, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// Backend produces text for a fully assembled prompt.
type Backend interface {
	GenerateText(ctx context.Context, input string) (string, error)
}

type Generator struct {
	backend Backend
	logger  *zap.Logger
}

func New(backend Backend, logger *zap.Logger) *Generator {
	return &Generator{backend: backend, logger: logger}
}

// ValidateWordCount accepts 50..500 in steps of 50.
func ValidateWordCount(n int) error {
	if n < MinWordCount || n > MaxWordCount || n%WordCountStep != 0 {
		return ErrInvalidWordCount
	}
	return nil
}

// Generate produces content of the given kind from transcript. For summaries
// targetWords is both embedded in the prompt and enforced on the output.
func (g *Generator) Generate(ctx context.Context, kind models.ContentKind, transcript string, targetWords int) (string, error) {
	prompt, err := Prompt(kind, targetWords)
	if err != nil {
		return "", err
	}

	content, err := g.backend.GenerateText(ctx, prompt+transcript)
	if err != nil {
		g.logger.Error("content generation failed", zap.String("kind", string(kind)), zap.Error(err))
		return "", &GenerationError{Kind: kind, Err: err}
	}
	if strings.TrimSpace(content) == "" {
		return "", &GenerationError{Kind: kind, Err: ErrEmptyOutput}
	}

	if kind == models.KindSummary && targetWords > 0 {
		content = ClampWords(content, targetWords)
	}
	return content, nil
}

// ClampWords keeps the first n words and appends Ellipsis when text is longer
// than n words. Shorter text is returned untouched.
func ClampWords(text string, n int) string {
	words := strings.Fields(text)
	if len(words) <= n {
		return text
	}
	return strings.Join(words[:n], " ") + Ellipsis
}
