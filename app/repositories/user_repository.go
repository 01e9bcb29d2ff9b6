package repositories

import (
	"context"

	"github.com/sheshine/backoffice/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserRepository handles database operations for User.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func withAccount(db *gorm.DB) *gorm.DB {
	return db.Preload("Profile").Preload("Employee")
}

// FindByEmail looks up a user by their email address, with the employee
// record loaded.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Preload("Employee").Where("email = ?", email).First(&user).Error
	return user, err
}

// FindByID looks up a user by primary key, with profile and employee.
func (r *UserRepository) FindByID(ctx context.Context, id uint) (models.User, error) {
	var user models.User
	err := withAccount(r.db.WithContext(ctx)).First(&user, id).Error
	return user, err
}

// Exists reports whether a user with id exists.
func (r *UserRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Count(&n).Error
	return n > 0, err
}

// All returns every user with profile and employee.
func (r *UserRepository) All(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := withAccount(r.db.WithContext(ctx)).Order("id").Find(&users).Error
	return users, err
}

// Create persists a new user record.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(user).Error
}

// Update persists changes to an existing user.
func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(user).Error
}

// Link sets a reference column (profile_id, employee_id) on a user. A nil
// value clears it.
func (r *UserRepository) Link(ctx context.Context, id uint, column string, value *uint) error {
	return r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Update(column, value).Error
}

func (r *UserRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.User{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
