package generator

import (
	"fmt"

	"github.com/AnshRaj112/ytsummary-backend/internal/models"
)

const notesPrompt = `
You are a YouTube video note-taker. Take the transcript provided and generate important notes that summarize the key points in a bulleted format.
Ensure the notes are concise and focused on the most important aspects. Provide the notes in English.
`

const flashcardsPrompt = `
You are a YouTube video flashcard generator. Take the transcript provided and generate a list of key concepts and questions for studying in flashcard format.
Ensure the flashcards are clear, relevant, and easy to understand. Provide the flashcards in English.
`

func summaryPrompt(words int) string {
	return fmt.Sprintf(`
You are a YouTube video summarizer. Take the transcript provided and summarize it to highlight the important points in approximately %d words.
Ensure the summary is concise, focused, and within the word limit of %d words. Provide the summary in English.
`, words, words)
}

// Prompt returns the instruction text for kind.
func Prompt(kind models.ContentKind, targetWords int) (string, error) {
	switch kind {
	case models.KindSummary:
		return summaryPrompt(targetWords), nil
	case models.KindNotes:
		return notesPrompt, nil
	case models.KindFlashcards:
		return flashcardsPrompt, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, string(kind))
}
