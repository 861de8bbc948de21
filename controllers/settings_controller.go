package controllers

import (
	"net/http"

	"api-bloommarbella-go/config"
	"api-bloommarbella-go/models"
	"api-bloommarbella-go/requests"

	"github.com/gin-gonic/gin"
)

// GetHiddenCategories returns the admin-curated hidden category list.
func GetHiddenCategories(c *gin.Context) {
	hidden, err := models.HiddenCategories(config.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error al obtener datos"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "OK", "data": hidden})
}

// UpdateHiddenCategories replaces the whole list under one settings key.
func UpdateHiddenCategories(c *gin.Context) {
	var req requests.HiddenCategoriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Datos no válidos", "error": err.Error()})
		return
	}

	if err := models.SetSetting(config.DB, models.SettingHiddenCategories, req.Categories); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error al guardar"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "OK", "data": req.Categories})
}

// GetSettings exposes the pricing/WhatsApp tunables to the admin panel.
func GetSettings(c *gin.Context) {
	pricing, err := models.LoadPricingSettings(config.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error al obtener datos"})
		return
	}

	var waEnabled, vatDefault bool
	var waNumber, waTemplate string
	models.GetSetting(config.DB, models.SettingWhatsappEnabled, &waEnabled)
	models.GetSetting(config.DB, models.SettingWhatsappNumber, &waNumber)
	models.GetSetting(config.DB, models.SettingWhatsappTemplate, &waTemplate)
	models.GetSetting(config.DB, models.SettingVatDisplayDefault, &vatDefault)

	c.JSON(http.StatusOK, gin.H{
		"message": "OK",
		"data": gin.H{
			"price_multiplier":    pricing.Multiplier,
			"associate_discount":  pricing.AssociateDiscount,
			"whatsapp_enabled":    waEnabled,
			"whatsapp_number":     waNumber,
			"whatsapp_template":   waTemplate,
			"vat_display_default": vatDefault,
		},
	})
}

// UpdateSettings upserts only the keys present in the request body.
func UpdateSettings(c *gin.Context) {
	var req requests.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Datos no válidos", "error": err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if req.PriceMultiplier != nil {
		if *req.PriceMultiplier <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "El multiplicador debe ser positivo"})
			return
		}
		updates[models.SettingPriceMultiplier] = *req.PriceMultiplier
	}
	if req.AssociateDiscount != nil {
		if *req.AssociateDiscount < 0 || *req.AssociateDiscount > 100 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Descuento fuera de rango (0-100)"})
			return
		}
		updates[models.SettingAssociateDiscount] = *req.AssociateDiscount
	}
	if req.WhatsappEnabled != nil {
		updates[models.SettingWhatsappEnabled] = *req.WhatsappEnabled
	}
	if req.WhatsappNumber != nil {
		updates[models.SettingWhatsappNumber] = *req.WhatsappNumber
	}
	if req.WhatsappTemplate != nil {
		updates[models.SettingWhatsappTemplate] = *req.WhatsappTemplate
	}
	if req.VatDisplayDefault != nil {
		updates[models.SettingVatDisplayDefault] = *req.VatDisplayDefault
	}

	for key, value := range updates {
		if err := models.SetSetting(config.DB, key, value); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error al guardar"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "OK", "updated": len(updates)})
}

// GetWhatsappContact is the public endpoint the storefront uses to render the
// contact button.
func GetWhatsappContact(c *gin.Context) {
	var enabled bool
	var number string
	models.GetSetting(config.DB, models.SettingWhatsappEnabled, &enabled)
	models.GetSetting(config.DB, models.SettingWhatsappNumber, &number)

	c.JSON(http.StatusOK, gin.H{
		"message": "OK",
		"data": gin.H{
			"enabled": enabled,
			"number":  number,
		},
	})
}

// GetTranslations serves one lookup category of the static translation table.
func GetTranslations(c *gin.Context) {
	category := c.Query("category")
	if category == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Falta el parámetro category"})
		return
	}

	table, err := models.TranslateAll(config.DB, category)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error al obtener datos"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "OK", "data": table})
}
