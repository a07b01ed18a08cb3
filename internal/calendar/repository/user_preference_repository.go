package repository

import (
	"context"

	"stock-event-calendar/internal/entity"

	"gorm.io/gorm"
)

// UserPreferenceRepository defines the interface for onboarding answer storage.
type UserPreferenceRepository interface {
	Create(ctx context.Context, pref *entity.UserPreference) error
	FindLatestByUser(ctx context.Context, userID string) (*entity.UserPreference, error)
}

// NewUserPreferenceRepository creates a new GORM-based preference repository.
func NewUserPreferenceRepository(db *gorm.DB) UserPreferenceRepository {
	return &userPreferenceRepository{db: db}
}

type userPreferenceRepository struct {
	db *gorm.DB
}

func (r *userPreferenceRepository) Create(ctx context.Context, pref *entity.UserPreference) error {
	return r.db.WithContext(ctx).Create(pref).Error
}

func (r *userPreferenceRepository) FindLatestByUser(ctx context.Context, userID string) (*entity.UserPreference, error) {
	var pref entity.UserPreference
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").First(&pref).Error; err != nil {
		return nil, err
	}
	return &pref, nil
}
