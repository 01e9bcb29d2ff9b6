package services

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/sheshine/backoffice/app/models"
	"github.com/sheshine/backoffice/app/repositories"
	"github.com/sheshine/backoffice/pkg/collection"
)

type VariantInput struct {
	ProductID    uint            `json:"productId"    validate:"required"`
	Size         string          `json:"size"`
	Color        []string        `json:"color"`
	Price        decimal.Decimal `json:"price"`
	Stock        int             `json:"stock"        validate:"gte=0"`
	ImageVariant string          `json:"imageVariant"`
}

type VariantUpdate struct {
	Size         *string          `json:"size"`
	Color        []string         `json:"color"`
	Price        *decimal.Decimal `json:"price"`
	Stock        *int             `json:"stock" validate:"omitempty,gte=0"`
	ImageVariant *string          `json:"imageVariant"`
}

type VariantService struct {
	db       *gorm.DB
	variants *repositories.VariantRepository
}

func NewVariantService(db *gorm.DB) *VariantService {
	return &VariantService{db: db, variants: repositories.NewVariantRepository(db)}
}

func (s *VariantService) Create(ctx context.Context, in VariantInput) (models.ProductVariant, error) {
	if err := check(in, moneyErrors(map[string]*decimal.Decimal{"price": &in.Price})); err != nil {
		return models.ProductVariant{}, err
	}

	ok, err := repositories.NewProductRepository(s.db).Exists(ctx, in.ProductID)
	if err != nil {
		return models.ProductVariant{}, err
	}
	if !ok {
		return models.ProductVariant{}, invalidField("productId", "does not exist")
	}

	variant := models.ProductVariant{
		ProductID:    in.ProductID,
		Size:         in.Size,
		Color:        models.StringList(nonNil(in.Color)),
		Price:        in.Price,
		Stock:        in.Stock,
		ImageVariant: in.ImageVariant,
	}
	if err := s.variants.Create(ctx, &variant); err != nil {
		return models.ProductVariant{}, err
	}
	fireCatalog(EntityVariant, ActionCreated, variant.ID)
	return variant, nil
}

func (s *VariantService) List(ctx context.Context) ([]models.ProductVariant, error) {
	variants, err := s.variants.All(ctx)
	return nonNil(variants), err
}

func (s *VariantService) ByProduct(ctx context.Context, productID uint) ([]models.ProductVariant, error) {
	variants, err := s.variants.ByProduct(ctx, productID)
	return nonNil(variants), err
}

func (s *VariantService) Get(ctx context.Context, id uint) (models.ProductVariant, error) {
	variant, err := s.variants.Find(ctx, id)
	return variant, notFound(err, "Variant not found")
}

func (s *VariantService) Update(ctx context.Context, id uint, in VariantUpdate) (models.ProductVariant, error) {
	if err := check(in, moneyErrors(map[string]*decimal.Decimal{"price": in.Price})); err != nil {
		return models.ProductVariant{}, err
	}

	variant, err := s.Get(ctx, id)
	if err != nil {
		return models.ProductVariant{}, err
	}

	if in.Size != nil {
		variant.Size = *in.Size
	}
	if in.Color != nil {
		variant.Color = models.StringList(in.Color)
	}
	if in.Price != nil {
		variant.Price = *in.Price
	}
	if in.Stock != nil {
		if *in.Stock < 0 {
			return models.ProductVariant{}, invalidField("stock", "must be greater than or equal to 0")
		}
		variant.Stock = *in.Stock
	}
	if in.ImageVariant != nil {
		variant.ImageVariant = *in.ImageVariant
	}

	if err := s.variants.Save(ctx, &variant); err != nil {
		return models.ProductVariant{}, err
	}
	fireCatalog(EntityVariant, ActionUpdated, variant.ID)
	return variant, nil
}

func (s *VariantService) Delete(ctx context.Context, id uint) error {
	if err := s.variants.Delete(ctx, id); err != nil {
		return notFound(err, "Variant not found")
	}
	fireCatalog(EntityVariant, ActionDeleted, id)
	return nil
}

// Search matches size or any single color as a literal, case-insensitive
// substring.
func (s *VariantService) Search(ctx context.Context, q string) ([]models.ProductVariant, error) {
	candidates, err := s.variants.SearchCandidates(ctx, q)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(q)
	contains := func(v string) bool { return strings.Contains(strings.ToLower(v), needle) }

	return nonNil(collection.Filter(candidates, func(v models.ProductVariant) bool {
		return contains(v.Size) || collection.Contains(v.Color, contains)
	})), nil
}
