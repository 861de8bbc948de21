package models

import (
	"time"
)

const (
	AssociateStatusPending  = "pending"
	AssociateStatusApproved = "approved"
	AssociateStatusRejected = "rejected"
)

// AssociateRequest is a professional account application. One per user;
// status transitions are admin-only, never by the user.
type AssociateRequest struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID uint `gorm:"column:user_id;not null;uniqueIndex" json:"user_id"`
	User   User `gorm:"foreignKey:UserID" json:"user"`

	CompanyName string `gorm:"column:company_name;size:255;not null" json:"company_name"`
	TaxID       string `gorm:"column:tax_id;size:100;not null" json:"tax_id"`
	Phone       string `gorm:"column:phone;size:50" json:"phone"`

	// pending | approved | rejected
	Status    string  `gorm:"column:status;size:20;not null;default:'pending';index" json:"status"`
	AdminNote *string `gorm:"column:admin_note;type:text" json:"admin_note"`

	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (AssociateRequest) TableName() string {
	return "associate_requests"
}
