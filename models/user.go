package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	RoleCustomer  = "customer"
	RoleAssociate = "associate"
	RoleAdmin     = "admin"
)

type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"type:varchar(255);not null" json:"name"`
	Email    string `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password string `gorm:"type:varchar(255);not null" json:"-"`

	// customer | associate | admin
	Role string `gorm:"type:varchar(20);not null;default:'customer';index" json:"role"`

	// Per-viewer preference: show VAT-inclusive prices
	ShowVatInclusive bool `gorm:"column:show_vat_inclusive;default:false" json:"show_vat_inclusive"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
