package requests

type HiddenCategoriesRequest struct {
	Categories []string `json:"categories" binding:"required"`
}

// UpdateSettingsRequest: only the fields present in the body get updated.
type UpdateSettingsRequest struct {
	PriceMultiplier   *float64 `json:"price_multiplier"`
	AssociateDiscount *float64 `json:"associate_discount"`
	WhatsappEnabled   *bool    `json:"whatsapp_enabled"`
	WhatsappNumber    *string  `json:"whatsapp_number"`
	WhatsappTemplate  *string  `json:"whatsapp_template"`
	VatDisplayDefault *bool    `json:"vat_display_default"`
}
