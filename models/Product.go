package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type Product struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// Identifiers
	ItemCode string `gorm:"column:item_code;size:50;not null;uniqueIndex" json:"item_code"`
	Sku      string `gorm:"column:sku;size:100;not null;index" json:"sku"`

	// Basic info
	Name        string `gorm:"column:name;size:255;not null" json:"name"`
	Slug        string `gorm:"column:slug;size:255;not null;uniqueIndex" json:"slug"`
	Description string `gorm:"column:description;type:text" json:"description"`

	Category    string `gorm:"column:category;size:255;index" json:"category"`
	Subcategory string `gorm:"column:subcategory;size:255;index" json:"subcategory"`
	Brand       string `gorm:"column:brand;size:255" json:"brand"`

	// Supplier price. Display price is always derived at read time,
	// never stored pre-multiplied.
	BasePrice decimal.Decimal `gorm:"column:base_price;type:decimal(12,2);not null" json:"base_price"`

	Stock int `gorm:"column:stock;not null;default:0" json:"stock"`

	// Raw Nieuwkoop tag/spec data (height, diameter, Brand, ...)
	Specs datatypes.JSON `gorm:"column:specs" json:"specs"`

	// Image cache (Cloudinary)
	ImageURL      string `gorm:"column:image_url;size:500" json:"image_url"`
	ImagePublicID string `gorm:"column:image_public_id;size:255" json:"-"`

	// Visibility: only the admin toggle writes this, sync never touches it
	IsActive bool `gorm:"column:is_active;default:true;index" json:"is_active"`

	LastSyncedAt *time.Time `gorm:"column:last_synced_at" json:"last_synced_at"`

	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Product) TableName() string {
	return "products"
}
