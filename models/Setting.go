package models

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Setting is the key-value store for tunables that change at runtime.
// Read per request, never cached in-process.
type Setting struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Key   string         `gorm:"column:key;size:100;not null;uniqueIndex" json:"key"`
	Value datatypes.JSON `gorm:"column:value;not null" json:"value"`

	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Setting) TableName() string {
	return "settings"
}

const (
	SettingPriceMultiplier   = "price_multiplier"
	SettingAssociateDiscount = "associate_discount"
	SettingHiddenCategories  = "hidden_categories"
	SettingWhatsappEnabled   = "whatsapp_enabled"
	SettingWhatsappNumber    = "whatsapp_number"
	SettingWhatsappTemplate  = "whatsapp_template"
	SettingLastSyncAt        = "last_sync_at"
	SettingVatDisplayDefault = "vat_display_default"
)

var ErrSettingNotFound = errors.New("setting not found")

// GetSetting reads one key and unmarshals its value into out.
func GetSetting(db *gorm.DB, key string, out interface{}) error {
	var s Setting
	if err := db.Where("`key` = ?", key).First(&s).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSettingNotFound
		}
		return err
	}
	return json.Unmarshal(s.Value, out)
}

// SetSetting upsert by key.
func SetSetting(db *gorm.DB, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s := Setting{Key: key, Value: datatypes.JSON(raw)}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&s).Error
}

// PricingSettings holds the configuration values behind price computation.
type PricingSettings struct {
	Multiplier        decimal.Decimal
	AssociateDiscount decimal.Decimal
}

// LoadPricingSettings fetches the multiplier and associate discount with
// defaults 2.5 and 20 when never set.
func LoadPricingSettings(db *gorm.DB) (PricingSettings, error) {
	ps := PricingSettings{
		Multiplier:        decimal.NewFromFloat(2.5),
		AssociateDiscount: decimal.NewFromInt(20),
	}

	var mult float64
	err := GetSetting(db, SettingPriceMultiplier, &mult)
	if err == nil {
		ps.Multiplier = decimal.NewFromFloat(mult)
	} else if !errors.Is(err, ErrSettingNotFound) {
		return ps, err
	}

	var disc float64
	err = GetSetting(db, SettingAssociateDiscount, &disc)
	if err == nil {
		ps.AssociateDiscount = decimal.NewFromFloat(disc)
	} else if !errors.Is(err, ErrSettingNotFound) {
		return ps, err
	}

	return ps, nil
}

// HiddenCategories returns the category names hidden by an admin.
func HiddenCategories(db *gorm.DB) ([]string, error) {
	var hidden []string
	err := GetSetting(db, SettingHiddenCategories, &hidden)
	if errors.Is(err, ErrSettingNotFound) {
		return []string{}, nil
	}
	if err != nil {
		return nil, err
	}
	return hidden, nil
}

// LastSyncAt returns the last incremental sync cutoff, zero time when unset.
func LastSyncAt(db *gorm.DB) (time.Time, error) {
	var raw string
	err := GetSetting(db, SettingLastSyncAt, &raw)
	if errors.Is(err, ErrSettingNotFound) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, err
	}
	return time.Parse(time.RFC3339, raw)
}
