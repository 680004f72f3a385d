package translator

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/text/language"
)

var ErrUnsupportedLanguage = errors.New("unsupported translation language")

// Languages is the fixed list offered to users, in display order.
var Languages = []string{"Hindi", "Spanish", "French", "German", "Italian"}

var languageTags = map[string]language.Tag{
	"Hindi":   language.Hindi,
	"Spanish": language.Spanish,
	"French":  language.French,
	"German":  language.German,
	"Italian": language.Italian,
}

// Tag returns the language tag for one of Languages.
func Tag(name string) (language.Tag, error) {
	tag, ok := languageTags[name]
	if !ok {
		return language.Und, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, name)
	}
	return tag, nil
}

// TranslationError wraps a failed backend call.
type TranslationError struct {
	Language string
	Err      error
}

func (e *TranslationError) Error() string {
	return fmt.Sprintf("failed to translate content to %s: %v", e.Language, e.Err)
}

func (e *TranslationError) Unwrap() error { return e.Err }

// Backend translates text into target, detecting the source language itself.
type Backend interface {
	Translate(ctx context.Context, text string, target language.Tag) (string, error)
}

type Translator struct {
	backend Backend
	logger  *zap.Logger
}

func New(backend Backend, logger *zap.Logger) *Translator {
	return &Translator{backend: backend, logger: logger}
}

// Translate makes exactly one backend call.
func (t *Translator) Translate(ctx context.Context, text, languageName string) (string, error) {
	tag, err := Tag(languageName)
	if err != nil {
		return "", err
	}

	out, err := t.backend.Translate(ctx, text, tag)
	if err != nil {
		t.logger.Error("translation failed", zap.String("language", languageName), zap.Error(err))
		return "", &TranslationError{Language: languageName, Err: err}
	}
	return out, nil
}
