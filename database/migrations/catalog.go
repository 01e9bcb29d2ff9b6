package migrations

import (
	"github.com/sheshine/backoffice/app/models"
	"github.com/sheshine/backoffice/pkg/migration"
	"gorm.io/gorm"
)

func init() {
	migration.Register("20260101000000_create_categories_table", &CreateCategoriesTable{})
	migration.Register("20260101000001_create_products_table", &CreateProductsTable{})
	migration.Register("20260101000002_create_product_variants_table", &CreateProductVariantsTable{})
}

// -------- categories --------

type CreateCategoriesTable struct{}

func (m *CreateCategoriesTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Category{})
}

func (m *CreateCategoriesTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable(&models.Category{})
}

// -------- products --------

type CreateProductsTable struct{}

func (m *CreateProductsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Product{})
}

func (m *CreateProductsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable(&models.Product{})
}

// -------- product_variants --------

type CreateProductVariantsTable struct{}

func (m *CreateProductVariantsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.ProductVariant{})
}

func (m *CreateProductVariantsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable(&models.ProductVariant{})
}
