package models

import (
	"time"

	"gorm.io/gorm"
)

// Translation is the static (text, category) -> display term lookup table.
type Translation struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Text       string `gorm:"column:text;size:255;not null;uniqueIndex:idx_text_category" json:"text"`
	Category   string `gorm:"column:category;size:100;not null;uniqueIndex:idx_text_category" json:"category"`
	Translated string `gorm:"column:translated;size:255;not null" json:"translated"`

	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Translation) TableName() string {
	return "translations"
}

// Translate returns the display term, or the source term itself when the
// table has no entry.
func Translate(db *gorm.DB, text, category string) string {
	var tr Translation
	err := db.Where("text = ? AND category = ?", text, category).First(&tr).Error
	if err != nil {
		return text
	}
	return tr.Translated
}

// TranslateAll bulk-loads one lookup category, used by listings.
func TranslateAll(db *gorm.DB, category string) (map[string]string, error) {
	var rows []Translation
	if err := db.Where("category = ?", category).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[string]string, len(rows))
	for _, r := range rows {
		out[r.Text] = r.Translated
	}
	return out, nil
}
