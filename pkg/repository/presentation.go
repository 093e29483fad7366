package repository

import (
	"context"
	"time"

	"github.com/prezlink/prezlink/internal/cache"
	"github.com/prezlink/prezlink/internal/database"
	"github.com/prezlink/prezlink/pkg/models"
	"gorm.io/gorm"
)

type presentationRepository struct {
	db     *gorm.DB
	cacher cache.Cacher
}

func NewPresentationRepository(db *gorm.DB, cacher cache.Cacher) PresentationRepository {
	return &presentationRepository{db: db, cacher: cacher}
}

func (r *presentationRepository) ByID(ctx context.Context, id string) (*models.Presentation, error) {
	var presentation models.Presentation
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&presentation).Error; err != nil {
		if database.IsRecordNotFoundErr(err) {
			return nil, database.ErrNotFound
		}
		return nil, err
	}
	return &presentation, nil
}

func (r *presentationRepository) Owner(ctx context.Context, id string) (string, error) {
	return cache.Fetch(r.cacher, cache.KeyPresentationOwner(id), 15*time.Minute, func() (string, error) {
		presentation, err := r.ByID(ctx, id)
		if err != nil {
			return "", err
		}
		return presentation.UserID, nil
	})
}
