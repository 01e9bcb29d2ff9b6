package repositories

import (
	"context"

	"github.com/sheshine/backoffice/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProfileRepository handles database operations for Profile.
type ProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// withOwner loads the owning user's name and email only.
func withOwner(db *gorm.DB, columns ...string) *gorm.DB {
	return db.Preload("User", func(db *gorm.DB) *gorm.DB {
		return db.Select(append([]string{"id"}, columns...))
	})
}

func (r *ProfileRepository) All(ctx context.Context) ([]models.Profile, error) {
	var profiles []models.Profile
	err := withOwner(r.db.WithContext(ctx), "name", "email").Order("id").Find(&profiles).Error
	return profiles, err
}

func (r *ProfileRepository) Find(ctx context.Context, id uint) (models.Profile, error) {
	var profile models.Profile
	err := withOwner(r.db.WithContext(ctx), "name", "email").First(&profile, id).Error
	return profile, err
}

func (r *ProfileRepository) Create(ctx context.Context, profile *models.Profile) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(profile).Error
}

func (r *ProfileRepository) Save(ctx context.Context, profile *models.Profile) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(profile).Error
}

func (r *ProfileRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Profile{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteByUser removes the profiles owned by userID.
func (r *ProfileRepository) DeleteByUser(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.Profile{}).Error
}
