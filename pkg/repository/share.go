package repository

import (
	"context"
	"time"

	"github.com/prezlink/prezlink/internal/database"
	"github.com/prezlink/prezlink/pkg/models"
	"gorm.io/gorm"
)

type shareRepository struct {
	db *gorm.DB
}

func NewShareRepository(db *gorm.DB) ShareRepository {
	return &shareRepository{db: db}
}

func (r *shareRepository) Create(ctx context.Context, share *models.PresentationShare) error {
	return r.db.WithContext(ctx).Create(share).Error
}

func (r *shareRepository) ByID(ctx context.Context, id string) (*models.PresentationShare, error) {
	var share models.PresentationShare
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&share).Error; err != nil {
		if database.IsRecordNotFoundErr(err) {
			return nil, database.ErrNotFound
		}
		return nil, err
	}
	return &share, nil
}

func (r *shareRepository) ByToken(ctx context.Context, token string) (*models.PresentationShare, error) {
	var share models.PresentationShare
	if err := r.db.WithContext(ctx).Where("share_token = ?", token).First(&share).Error; err != nil {
		if database.IsRecordNotFoundErr(err) {
			return nil, database.ErrNotFound
		}
		return nil, err
	}
	return &share, nil
}

func (r *shareRepository) ByPresentationAndUser(ctx context.Context, presentationID, userID string) (*models.PresentationShare, error) {
	var share models.PresentationShare
	err := r.db.WithContext(ctx).
		Where("presentation_id = ?", presentationID).
		Where("shared_with = ?", userID).
		Order("created_at desc").
		First(&share).Error
	if err != nil {
		if database.IsRecordNotFoundErr(err) {
			return nil, database.ErrNotFound
		}
		return nil, err
	}
	return &share, nil
}

func (r *shareRepository) ListByPresentation(ctx context.Context, presentationID, sharedBy string) ([]models.PresentationShare, error) {
	shares := []models.PresentationShare{}
	err := r.db.WithContext(ctx).
		Where("presentation_id = ?", presentationID).
		Where("shared_by = ?", sharedBy).
		Order("created_at desc").
		Find(&shares).Error
	if err != nil {
		return nil, err
	}
	return shares, nil
}

func (r *shareRepository) ListSharedWith(ctx context.Context, userID string) ([]SharedWithRow, error) {
	shares := []models.PresentationShare{}
	err := r.db.WithContext(ctx).
		Where("shared_with = ?", userID).
		Order("created_at desc").
		Find(&shares).Error
	if err != nil {
		return nil, err
	}
	if len(shares) == 0 {
		return []SharedWithRow{}, nil
	}

	presentationIds := make([]string, 0, len(shares))
	userIds := make([]string, 0, len(shares))
	for _, s := range shares {
		presentationIds = append(presentationIds, s.PresentationID)
		userIds = append(userIds, s.SharedBy)
	}

	presentations := []models.Presentation{}
	if err := r.db.WithContext(ctx).Where("id in ?", presentationIds).Find(&presentations).Error; err != nil {
		return nil, err
	}
	byPresentation := make(map[string]models.Presentation, len(presentations))
	for _, p := range presentations {
		byPresentation[p.ID] = p
	}

	users := []models.User{}
	if err := r.db.WithContext(ctx).Where("id in ?", userIds).Find(&users).Error; err != nil {
		return nil, err
	}
	byUser := make(map[string]models.User, len(users))
	for _, u := range users {
		byUser[u.ID] = u
	}

	rows := make([]SharedWithRow, 0, len(shares))
	for _, s := range shares {
		rows = append(rows, SharedWithRow{
			Share:        s,
			Presentation: byPresentation[s.PresentationID],
			SharedByUser: byUser[s.SharedBy],
		})
	}
	return rows, nil
}

func (r *shareRepository) Update(ctx context.Context, id string, values map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&models.PresentationShare{}).
		Where("id = ?", id).
		Updates(values).Error
}

func (r *shareRepository) MarkUsed(ctx context.Context, id string, now time.Time) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.PresentationShare{}).
		Where("id = ?", id).
		Where("used_at IS NULL").
		Update("used_at", now)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *shareRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.PresentationShare{}).Error
}

func (r *shareRepository) DeleteByPresentation(ctx context.Context, presentationID, sharedBy string) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("presentation_id = ?", presentationID).
		Where("shared_by = ?", sharedBy).
		Delete(&models.PresentationShare{})
	return res.RowsAffected, res.Error
}

func (r *shareRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("expires_at IS NOT NULL").
		Where("expires_at < ?", now).
		Delete(&models.PresentationShare{})
	return res.RowsAffected, res.Error
}
