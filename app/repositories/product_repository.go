package repositories

import (
	"context"

	"github.com/sheshine/backoffice/app/models"
	"github.com/sheshine/backoffice/pkg/orm"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProductRepository handles database operations for Product.
type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// enriched loads each product's category and variants with one batched
// query per relation.
func enriched(db *gorm.DB) *gorm.DB {
	return db.Preload("Category").Preload("Variants", func(db *gorm.DB) *gorm.DB {
		return db.Order("id")
	})
}

func (r *ProductRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Product{}).Count(&n).Error
	return n, err
}

// List returns one page of enriched products in insertion order.
func (r *ProductRepository) List(ctx context.Context, page orm.Page) ([]models.Product, error) {
	var products []models.Product
	err := enriched(r.db.WithContext(ctx)).
		Scopes(page.Scope()).
		Order("id").
		Find(&products).Error
	return products, err
}

// Find returns an enriched product.
func (r *ProductRepository) Find(ctx context.Context, id uint) (models.Product, error) {
	var product models.Product
	err := enriched(r.db.WithContext(ctx)).First(&product, id).Error
	return product, err
}

// Exists reports whether a product with id exists.
func (r *ProductRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Product{}).Where("id = ?", id).Count(&n).Error
	return n > 0, err
}

func (r *ProductRepository) Create(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(product).Error
}

func (r *ProductRepository) Save(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(product).Error
}

// Delete removes the product row only; variants are the caller's concern.
func (r *ProductRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Product{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SearchText matches name or description case-insensitively as a literal
// substring.
func (r *ProductRepository) SearchText(ctx context.Context, q string) ([]models.Product, error) {
	var products []models.Product
	err := orm.ContainsFold(r.db.WithContext(ctx), q, "name", "description").
		Order("id").
		Find(&products).Error
	return products, err
}

func (r *ProductRepository) ByCategory(ctx context.Context, categoryID uint) ([]models.Product, error) {
	var products []models.Product
	err := r.db.WithContext(ctx).Where("category_id = ?", categoryID).Order("id").Find(&products).Error
	return products, err
}

// ByCategoryWithStock is ByCategory with each product's variants loaded
// down to their stock.
func (r *ProductRepository) ByCategoryWithStock(ctx context.Context, categoryID uint) ([]models.Product, error) {
	var products []models.Product
	err := r.db.WithContext(ctx).
		Preload("Variants", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "product_id", "stock").Order("id")
		}).
		Where("category_id = ?", categoryID).
		Order("id").
		Find(&products).Error
	return products, err
}
