package models

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ContentKind selects the generation prompt.
type ContentKind string

const (
	KindSummary    ContentKind = "Summary"
	KindNotes      ContentKind = "Notes"
	KindFlashcards ContentKind = "Flashcards"
)

// ContentKinds lists the kinds in display order.
var ContentKinds = []ContentKind{KindSummary, KindNotes, KindFlashcards}

func (k ContentKind) Valid() bool {
	switch k {
	case KindSummary, KindNotes, KindFlashcards:
		return true
	}
	return false
}

// ParseContentKind accepts the exact kind names.
func ParseContentKind(s string) (ContentKind, error) {
	k := ContentKind(s)
	if !k.Valid() {
		return "", fmt.Errorf("unknown content kind %q", s)
	}
	return k, nil
}

// GeneratedContent is an immutable record of one saved generation.
type GeneratedContent struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email       string             `bson:"email" json:"email"`
	VideoID     string             `bson:"video_id" json:"video_id"`
	ContentType ContentKind        `bson:"content_type" json:"content_type"`
	Content     string             `bson:"content" json:"content"`
	Language    *string            `bson:"language" json:"language"`
	Timestamp   time.Time          `bson:"timestamp" json:"timestamp"`
}

// ContentSummary is the admin listing projection of a record; the body is left out.
type ContentSummary struct {
	Email       string      `bson:"email" json:"email"`
	VideoID     string      `bson:"video_id,omitempty" json:"video_id,omitempty"`
	ContentType ContentKind `bson:"content_type" json:"content_type"`
	Language    *string     `bson:"language,omitempty" json:"language,omitempty"`
	Timestamp   time.Time   `bson:"timestamp" json:"timestamp"`
}
