package services

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/sheshine/backoffice/app/models"
	"github.com/sheshine/backoffice/app/repositories"
	"github.com/sheshine/backoffice/pkg/collection"
	"github.com/sheshine/backoffice/pkg/orm"
)

// ProductInput creates a product together with its first variant.
type ProductInput struct {
	Name         string          `json:"name"         validate:"required"`
	Description  string          `json:"description"`
	BasePrice    decimal.Decimal `json:"basePrice"`
	CategoryID   uint            `json:"categoryId"   validate:"required"`
	Brand        string          `json:"brand"`
	Images       []string        `json:"images"`
	IsBestseller bool            `json:"isBestseller"`
	IsFeatured   bool            `json:"isFeatured"`
	Discount     decimal.Decimal `json:"discount"`

	Size         string          `json:"size"`
	Color        []string        `json:"color"`
	Price        decimal.Decimal `json:"price"`
	Stock        int             `json:"stock"        validate:"gte=0"`
	ImageVariant string          `json:"imageVariant"`
}

// ProductUpdate merges supplied fields into a product.
type ProductUpdate struct {
	Name         *string          `json:"name"       validate:"omitempty,min=1"`
	Description  *string          `json:"description"`
	BasePrice    *decimal.Decimal `json:"basePrice"`
	CategoryID   *uint            `json:"categoryId" validate:"omitempty,gt=0"`
	Brand        *string          `json:"brand"`
	Images       []string         `json:"images"`
	IsBestseller *bool            `json:"isBestseller"`
	IsFeatured   *bool            `json:"isFeatured"`
	Discount     *decimal.Decimal `json:"discount"`
}

type ProductCreated struct {
	Product models.Product        `json:"product"`
	Variant models.ProductVariant `json:"variant"`
}

type Pagination struct {
	TotalProducts int64 `json:"totalProducts"`
	orm.Meta
}

type ProductPage struct {
	Products   []models.Product `json:"products"`
	Pagination Pagination       `json:"pagination"`
}

// ProductStock is a product with its variants' stock and their sum.
type ProductStock struct {
	models.Product
	TotalStock int `json:"totalStock"`
}

type ProductService struct {
	db       *gorm.DB
	products *repositories.ProductRepository
}

func NewProductService(db *gorm.DB) *ProductService {
	return &ProductService{db: db, products: repositories.NewProductRepository(db)}
}

func moneyErrors(values map[string]*decimal.Decimal) map[string]string {
	out := map[string]string{}
	for field, v := range values {
		if v != nil && negative(*v) {
			out[field] = "must be greater than or equal to 0"
		}
	}
	return out
}

// Create inserts the product and its first variant in one transaction.
func (s *ProductService) Create(ctx context.Context, in ProductInput) (ProductCreated, error) {
	in.Name = strings.TrimSpace(in.Name)
	extra := moneyErrors(map[string]*decimal.Decimal{
		"basePrice": &in.BasePrice,
		"discount":  &in.Discount,
		"price":     &in.Price,
	})
	if err := check(in, extra); err != nil {
		return ProductCreated{}, err
	}

	product := models.Product{
		Name:         in.Name,
		Description:  in.Description,
		BasePrice:    in.BasePrice,
		CategoryID:   in.CategoryID,
		Brand:        in.Brand,
		Images:       models.StringList(nonNil(in.Images)),
		IsBestseller: in.IsBestseller,
		IsFeatured:   in.IsFeatured,
		Discount:     in.Discount,
	}
	variant := models.ProductVariant{
		Size:         in.Size,
		Color:        models.StringList(nonNil(in.Color)),
		Price:        in.Price,
		Stock:        in.Stock,
		ImageVariant: in.ImageVariant,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ok, err := repositories.NewCategoryRepository(tx).Exists(ctx, in.CategoryID)
		if err != nil {
			return err
		}
		if !ok {
			return invalidField("categoryId", "does not exist")
		}

		if err := repositories.NewProductRepository(tx).Create(ctx, &product); err != nil {
			return err
		}
		variant.ProductID = product.ID
		return repositories.NewVariantRepository(tx).Create(ctx, &variant)
	})
	if err != nil {
		return ProductCreated{}, err
	}

	fireCatalog(EntityProduct, ActionCreated, product.ID)
	fireCatalog(EntityVariant, ActionCreated, variant.ID)
	return ProductCreated{Product: product, Variant: variant}, nil
}

// List returns one page of products, or all of them when page is not
// enabled, each with its category and variants.
func (s *ProductService) List(ctx context.Context, page orm.Page) (ProductPage, error) {
	total, err := s.products.Count(ctx)
	if err != nil {
		return ProductPage{}, err
	}

	products, err := s.products.List(ctx, page)
	if err != nil {
		return ProductPage{}, err
	}

	return ProductPage{
		Products:   nonNil(products),
		Pagination: Pagination{TotalProducts: total, Meta: page.Meta(total)},
	}, nil
}

func (s *ProductService) Get(ctx context.Context, id uint) (models.Product, error) {
	product, err := s.products.Find(ctx, id)
	return product, notFound(err, "Product not found")
}

func (s *ProductService) Update(ctx context.Context, id uint, in ProductUpdate) (models.Product, error) {
	extra := moneyErrors(map[string]*decimal.Decimal{
		"basePrice": in.BasePrice,
		"discount":  in.Discount,
	})
	if err := check(in, extra); err != nil {
		return models.Product{}, err
	}

	product, err := s.Get(ctx, id)
	if err != nil {
		return models.Product{}, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return models.Product{}, invalidField("name", "is required")
		}
		product.Name = name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.BasePrice != nil {
		product.BasePrice = *in.BasePrice
	}
	if in.CategoryID != nil && *in.CategoryID != product.CategoryID {
		ok, err := repositories.NewCategoryRepository(s.db).Exists(ctx, *in.CategoryID)
		if err != nil {
			return models.Product{}, err
		}
		if !ok {
			return models.Product{}, invalidField("categoryId", "does not exist")
		}
		product.CategoryID = *in.CategoryID
	}
	if in.Brand != nil {
		product.Brand = *in.Brand
	}
	if in.Images != nil {
		product.Images = models.StringList(in.Images)
	}
	if in.IsBestseller != nil {
		product.IsBestseller = *in.IsBestseller
	}
	if in.IsFeatured != nil {
		product.IsFeatured = *in.IsFeatured
	}
	if in.Discount != nil {
		product.Discount = *in.Discount
	}

	if err := s.products.Save(ctx, &product); err != nil {
		return models.Product{}, err
	}
	fireCatalog(EntityProduct, ActionUpdated, product.ID)
	return s.Get(ctx, id)
}

// Delete removes the product and all of its variants in one transaction.
func (s *ProductService) Delete(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := repositories.NewProductRepository(tx).Delete(ctx, id); err != nil {
			return err
		}
		_, err := repositories.NewVariantRepository(tx).DeleteByProduct(ctx, id)
		return err
	})
	if err != nil {
		return notFound(err, "Product not found")
	}

	fireCatalog(EntityProduct, ActionDeleted, id)
	return nil
}

// Search matches name or description as a literal, case-insensitive
// substring.
func (s *ProductService) Search(ctx context.Context, q string) ([]models.Product, error) {
	products, err := s.products.SearchText(ctx, q)
	return nonNil(products), err
}

func (s *ProductService) ByCategory(ctx context.Context, categoryID uint) ([]models.Product, error) {
	products, err := s.products.ByCategory(ctx, categoryID)
	return nonNil(products), err
}

// ByCategoryWithStock returns the category's products with each variant's
// stock and the product total.
func (s *ProductService) ByCategoryWithStock(ctx context.Context, categoryID uint) ([]ProductStock, error) {
	products, err := s.products.ByCategoryWithStock(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	return collection.Map(products, func(p models.Product) ProductStock {
		p.Variants = nonNil(p.Variants)
		total := collection.Reduce(p.Variants, 0, func(sum int, v models.ProductVariant) int {
			return sum + v.Stock
		})
		return ProductStock{Product: p, TotalStock: total}
	}), nil
}
