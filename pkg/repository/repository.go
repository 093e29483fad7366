// Package repository provides storage access for the sharing core. Services
// depend on these interfaces rather than on a database handle so the
// issuance and resolver logic is testable without a live postgres.
package repository

import (
	"context"
	"time"

	"github.com/prezlink/prezlink/pkg/models"
)

// SharedWithRow is one "shared with me" listing entry.
type SharedWithRow struct {
	Share        models.PresentationShare
	Presentation models.Presentation
	SharedByUser models.User
}

type ShareRepository interface {
	Create(ctx context.Context, share *models.PresentationShare) error
	ByID(ctx context.Context, id string) (*models.PresentationShare, error)
	ByToken(ctx context.Context, token string) (*models.PresentationShare, error)
	ByPresentationAndUser(ctx context.Context, presentationID, userID string) (*models.PresentationShare, error)
	ListByPresentation(ctx context.Context, presentationID, sharedBy string) ([]models.PresentationShare, error)
	ListSharedWith(ctx context.Context, userID string) ([]SharedWithRow, error)
	Update(ctx context.Context, id string, values map[string]interface{}) error

	// MarkUsed performs the single conditional write
	// UPDATE ... SET used_at = now() WHERE id = ? AND used_at IS NULL
	// and reports whether this caller won the transition. Under concurrent
	// redemption exactly one caller observes true.
	MarkUsed(ctx context.Context, id string, now time.Time) (bool, error)

	Delete(ctx context.Context, id string) error
	DeleteByPresentation(ctx context.Context, presentationID, sharedBy string) (int64, error)
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type PresentationRepository interface {
	ByID(ctx context.Context, id string) (*models.Presentation, error)
	// Owner returns the owning user id.
	Owner(ctx context.Context, id string) (string, error)
}

type UserRepository interface {
	ByID(ctx context.Context, id string) (*models.User, error)
	ByEmail(ctx context.Context, email string) (*models.User, error)
}
