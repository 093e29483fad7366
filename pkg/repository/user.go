package repository

import (
	"context"
	"time"

	"github.com/prezlink/prezlink/internal/cache"
	"github.com/prezlink/prezlink/internal/database"
	"github.com/prezlink/prezlink/pkg/models"
	"gorm.io/gorm"
)

type userRepository struct {
	db     *gorm.DB
	cacher cache.Cacher
}

func NewUserRepository(db *gorm.DB, cacher cache.Cacher) UserRepository {
	return &userRepository{db: db, cacher: cacher}
}

func (r *userRepository) ByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		if database.IsRecordNotFoundErr(err) {
			return nil, database.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) ByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := cache.Fetch(r.cacher, cache.KeyUserEmail(email), 15*time.Minute, func() (models.User, error) {
		var u models.User
		if err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
			if database.IsRecordNotFoundErr(err) {
				return u, database.ErrNotFound
			}
			return u, err
		}
		return u, nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}
