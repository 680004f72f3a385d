package translator

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

type fakeBackend struct {
	translateFn func(ctx context.Context, text string, target language.Tag) (string, error)
	calls       int
}

func (f *fakeBackend) Translate(ctx context.Context, text string, target language.Tag) (string, error) {
	f.calls++
	return f.translateFn(ctx, text, target)
}

func TestTranslateMapsLanguageNames(t *testing.T) {
	want := map[string]string{"Hindi": "hi", "Spanish": "es", "French": "fr", "German": "de", "Italian": "it"}
	for _, name := range Languages {
		backend := &fakeBackend{translateFn: func(_ context.Context, text string, target language.Tag) (string, error) {
			return target.String() + ":" + text, nil
		}}

		got, err := New(backend, zap.NewNop()).Translate(context.Background(), "hello", name)

		require.NoError(t, err)
		assert.Equal(t, want[name]+":hello", got)
	}
}

func TestTranslateUnsupportedLanguage(t *testing.T) {
	backend := &fakeBackend{translateFn: func(context.Context, string, language.Tag) (string, error) { return "x", nil }}

	_, err := New(backend, zap.NewNop()).Translate(context.Background(), "hello", "Klingon")

	assert.ErrorIs(t, err, ErrUnsupportedLanguage)
	assert.Zero(t, backend.calls)
}

func TestTranslateBackendFailureSingleCall(t *testing.T) {
	boom := errors.New("rate limited")
	backend := &fakeBackend{translateFn: func(context.Context, string, language.Tag) (string, error) { return "", boom }}

	got, err := New(backend, zap.NewNop()).Translate(context.Background(), "hello", "French")

	assert.Empty(t, got)
	var te *TranslationError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, "French", te.Language)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, backend.calls)
}
