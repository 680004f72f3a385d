package store

import (
	"context"

	"github.com/AnshRaj112/ytsummary-backend/internal/models"
)

// Accounts persists users and generated-content records.
type Accounts interface {
	// Register fails with ErrAlreadyExists when the identifier is taken.
	Register(ctx context.Context, email, password string) error
	// Authenticate fails with ErrInvalidCredentials for an unknown identifier
	// and for a wrong password alike.
	Authenticate(ctx context.Context, email, password string) error
	SaveContent(ctx context.Context, record models.GeneratedContent) error
	ListUsers(ctx context.Context) ([]models.UserSummary, error)
	ListContent(ctx context.Context) ([]models.ContentSummary, error)
}
