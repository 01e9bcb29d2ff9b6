package repositories

import (
	"context"

	"github.com/sheshine/backoffice/app/models"
	"github.com/sheshine/backoffice/pkg/orm"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CategoryRepository handles database operations for Category.
type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// All returns every category in insertion order.
func (r *CategoryRepository) All(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	err := r.db.WithContext(ctx).Order("id").Find(&categories).Error
	return categories, err
}

func (r *CategoryRepository) Find(ctx context.Context, id uint) (models.Category, error) {
	var category models.Category
	err := r.db.WithContext(ctx).First(&category, id).Error
	return category, err
}

// Exists reports whether a category with id exists.
func (r *CategoryRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Category{}).Where("id = ?", id).Count(&n).Error
	return n > 0, err
}

func (r *CategoryRepository) Create(ctx context.Context, category *models.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *CategoryRepository) Save(ctx context.Context, category *models.Category) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(category).Error
}

// Delete removes the category. It returns gorm.ErrRecordNotFound when no
// row matched.
func (r *CategoryRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Category{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteChildren removes the direct children of parentID and returns how
// many went.
func (r *CategoryRepository) DeleteChildren(ctx context.Context, parentID uint) (int64, error) {
	res := r.db.WithContext(ctx).Where("parent_id = ?", parentID).Delete(&models.Category{})
	return res.RowsAffected, res.Error
}

// SearchByName matches name case-insensitively as a literal substring.
func (r *CategoryRepository) SearchByName(ctx context.Context, q string) ([]models.Category, error) {
	var categories []models.Category
	err := orm.ContainsFold(r.db.WithContext(ctx), q, "name").Order("id").Find(&categories).Error
	return categories, err
}
