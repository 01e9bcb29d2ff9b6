package models

import "github.com/shopspring/decimal"

// Category is a node of the catalogue tree. A nil ParentID marks a root.
type Category struct {
	Model
	Name     string `gorm:"size:255;not null;index" json:"name"`
	ParentID *uint  `gorm:"index"                   json:"parentId"`
	Image    string `gorm:"size:1024"               json:"image"`
}

// Product is a catalogue entry. Category and Variants are filled by
// preloads only.
type Product struct {
	Model
	Name         string          `gorm:"size:255;not null;index"      json:"name"`
	Description  string          `gorm:"type:text"                    json:"description"`
	BasePrice    decimal.Decimal `gorm:"type:decimal(12,2);not null"  json:"basePrice"`
	CategoryID   uint            `gorm:"not null;index"               json:"categoryId"`
	Brand        string          `gorm:"size:255"                     json:"brand"`
	Images       StringList      `json:"images"`
	IsBestseller bool            `gorm:"not null;default:false"       json:"isBestseller"`
	IsFeatured   bool            `gorm:"not null;default:false"       json:"isFeatured"`
	Discount     decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"discount"`

	Category *Category       `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Variants []ProductVariant `gorm:"foreignKey:ProductID"  json:"productVariants,omitempty"`
}

// ProductVariant is a purchasable size/colour combination of a product.
type ProductVariant struct {
	Model
	ProductID    uint            `gorm:"not null;index"               json:"productId"`
	Size         string          `gorm:"size:100"                     json:"size"`
	Color        StringList      `json:"color"`
	Price        decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"price"`
	Stock        int             `gorm:"not null;default:0"           json:"stock"`
	ImageVariant string          `gorm:"size:1024"                    json:"imageVariant"`
}
