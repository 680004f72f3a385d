package generator

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/AnshRaj112/ytsummary-backend/internal/models"
)

type fakeBackend struct {
	generateFn func(ctx context.Context, input string) (string, error)
	inputs     []string
}

func (f *fakeBackend) GenerateText(ctx context.Context, input string) (string, error) {
	f.inputs = append(f.inputs, input)
	return f.generateFn(ctx, input)
}

func returning(text string) *fakeBackend {
	return &fakeBackend{generateFn: func(context.Context, string) (string, error) { return text, nil }}
}

func TestGenerateSummaryClampsToTargetWords(t *testing.T) {
	backend := returning("hello world this is a test")

	got, err := New(backend, zap.NewNop()).Generate(context.Background(), models.KindSummary, "hello world this is a test", 3)

	require.NoError(t, err)
	assert.Equal(t, "hello world this...", got)
	assert.Len(t, strings.Fields(got), 3)
	assert.True(t, strings.HasSuffix(got, Ellipsis))
}

func TestGenerateSummaryWithinLimitIsUntouched(t *testing.T) {
	backend := returning("short summary")

	got, err := New(backend, zap.NewNop()).Generate(context.Background(), models.KindSummary, "t", 50)

	require.NoError(t, err)
	assert.Equal(t, "short summary", got)
}

func TestGenerateSummaryNeverExceedsTarget(t *testing.T) {
	long := strings.Repeat("word ", 700)
	for n := MinWordCount; n <= MaxWordCount; n += WordCountStep {
		got, err := New(returning(long), zap.NewNop()).Generate(context.Background(), models.KindSummary, "t", n)
		require.NoError(t, err)
		assert.LessOrEqual(t, len(strings.Fields(got)), n)
		assert.True(t, strings.HasSuffix(got, Ellipsis))
	}
}

func TestGenerateNotesAndFlashcardsAreNotClamped(t *testing.T) {
	long := strings.Repeat("- point\n", 100)
	for _, kind := range []models.ContentKind{models.KindNotes, models.KindFlashcards} {
		got, err := New(returning(long), zap.NewNop()).Generate(context.Background(), kind, "t", 3)
		require.NoError(t, err)
		assert.Equal(t, long, got)
	}
}

func TestGenerateSendsPromptPlusTranscript(t *testing.T) {
	backend := returning("ok")

	_, err := New(backend, zap.NewNop()).Generate(context.Background(), models.KindSummary, "THE TRANSCRIPT", 150)

	require.NoError(t, err)
	require.Len(t, backend.inputs, 1)
	assert.True(t, strings.HasSuffix(backend.inputs[0], "THE TRANSCRIPT"))
	assert.Contains(t, backend.inputs[0], "approximately 150 words")
	assert.Contains(t, backend.inputs[0], "word limit of 150 words")
}

func TestGenerateUnknownKindSkipsBackend(t *testing.T) {
	backend := returning("never")

	got, err := New(backend, zap.NewNop()).Generate(context.Background(), models.ContentKind("Essay"), "t", 0)

	assert.ErrorIs(t, err, ErrUnknownKind)
	assert.Empty(t, got)
	assert.Empty(t, backend.inputs)
}

func TestGenerateBackendFailure(t *testing.T) {
	boom := errors.New("quota exceeded")
	backend := &fakeBackend{generateFn: func(context.Context, string) (string, error) { return "partial", boom }}

	got, err := New(backend, zap.NewNop()).Generate(context.Background(), models.KindNotes, "t", 0)

	assert.Empty(t, got)
	var ge *GenerationError
	require.True(t, errors.As(err, &ge))
	assert.Equal(t, models.KindNotes, ge.Kind)
	assert.ErrorIs(t, err, boom)
}

func TestGenerateEmptyOutputIsFailure(t *testing.T) {
	_, err := New(returning("   \n"), zap.NewNop()).Generate(context.Background(), models.KindNotes, "t", 0)

	assert.ErrorIs(t, err, ErrEmptyOutput)
}

func TestValidateWordCount(t *testing.T) {
	for _, n := range []int{50, 100, 250, 500} {
		assert.NoError(t, ValidateWordCount(n), n)
	}
	for _, n := range []int{0, 49, 75, 501, 550, -50} {
		assert.ErrorIs(t, ValidateWordCount(n), ErrInvalidWordCount, n)
	}
}

func TestClampWords(t *testing.T) {
	assert.Equal(t, "a b...", ClampWords("a  b\nc d", 2))
	assert.Equal(t, "a b", ClampWords("a b", 2))
}
