package repositories

import (
	"context"

	"github.com/sheshine/backoffice/app/models"
	"github.com/sheshine/backoffice/pkg/orm"
	"gorm.io/gorm"
)

// VariantRepository handles database operations for ProductVariant.
type VariantRepository struct {
	db *gorm.DB
}

func NewVariantRepository(db *gorm.DB) *VariantRepository {
	return &VariantRepository{db: db}
}

func (r *VariantRepository) All(ctx context.Context) ([]models.ProductVariant, error) {
	var variants []models.ProductVariant
	err := r.db.WithContext(ctx).Order("id").Find(&variants).Error
	return variants, err
}

func (r *VariantRepository) Find(ctx context.Context, id uint) (models.ProductVariant, error) {
	var variant models.ProductVariant
	err := r.db.WithContext(ctx).First(&variant, id).Error
	return variant, err
}

func (r *VariantRepository) ByProduct(ctx context.Context, productID uint) ([]models.ProductVariant, error) {
	var variants []models.ProductVariant
	err := r.db.WithContext(ctx).Where("product_id = ?", productID).Order("id").Find(&variants).Error
	return variants, err
}

func (r *VariantRepository) Create(ctx context.Context, variant *models.ProductVariant) error {
	return r.db.WithContext(ctx).Create(variant).Error
}

func (r *VariantRepository) Save(ctx context.Context, variant *models.ProductVariant) error {
	return r.db.WithContext(ctx).Save(variant).Error
}

func (r *VariantRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.ProductVariant{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteByProduct removes every variant of productID.
func (r *VariantRepository) DeleteByProduct(ctx context.Context, productID uint) (int64, error) {
	res := r.db.WithContext(ctx).Where("product_id = ?", productID).Delete(&models.ProductVariant{})
	return res.RowsAffected, res.Error
}

// SearchCandidates narrows variants to those whose size or serialised
// color list contains q. The color match can span elements; callers must
// check the decoded elements.
func (r *VariantRepository) SearchCandidates(ctx context.Context, q string) ([]models.ProductVariant, error) {
	var variants []models.ProductVariant
	err := orm.AnyContainsFold(r.db.WithContext(ctx),
		orm.Term{Column: "size", Text: q},
		orm.Term{Column: "color", Text: models.StringListText(q)},
	).Order("id").Find(&variants).Error
	return variants, err
}
