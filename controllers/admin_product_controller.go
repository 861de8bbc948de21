package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"api-bloommarbella-go/config"
	"api-bloommarbella-go/models"
	"api-bloommarbella-go/requests"
	"api-bloommarbella-go/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SearchProducts: case-insensitive substring match on item code / SKU / name,
// capped at 10. Queries shorter than 2 chars return an empty set, not an error.
func SearchProducts(c *gin.Context) {
	query := strings.TrimSpace(c.Query("query"))
	if len(query) < 2 {
		c.JSON(http.StatusOK, gin.H{"message": "OK", "data": []models.Product{}})
		return
	}

	like := "%" + strings.ToLower(query) + "%"
	var products []models.Product
	err := config.DB.
		Where("LOWER(item_code) LIKE ? OR LOWER(sku) LIKE ? OR LOWER(name) LIKE ?", like, like, like).
		Limit(10).
		Find(&products).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error al obtener datos"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "OK", "data": products})
}

type stockView struct {
	Sku         string          `json:"sku"`
	Stock       int             `json:"stock"`
	Price       decimal.Decimal `json:"price"`
	LastChecked *time.Time      `json:"lastChecked"`
}

func stockViewFor(p *models.Product, pricing models.PricingSettings) stockView {
	return stockView{
		Sku:         p.Sku,
		Stock:       p.Stock,
		Price:       utils.DisplayPrice(p.BasePrice, pricing.Multiplier, models.RoleCustomer, pricing.AssociateDiscount),
		LastChecked: p.LastSyncedAt,
	}
}

// GetStock: single-SKU stock lookup.
func GetStock(c *gin.Context) {
	sku := strings.TrimSpace(c.Query("sku"))
	if sku == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Falta el parámetro sku"})
		return
	}

	var product models.Product
	err := config.DB.Where("sku = ?", sku).Or("item_code = ?", sku).First(&product).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "SKU no encontrado"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error al obtener datos"})
		return
	}

	pricing, err := models.LoadPricingSettings(config.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error al cargar configuración"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "OK", "data": stockViewFor(&product, pricing)})
}

// GetBulkStock: same lookup for an array of SKUs. Unknown SKUs are simply
// absent from the response.
func GetBulkStock(c *gin.Context) {
	var req requests.BulkStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Datos no válidos", "error": err.Error()})
		return
	}

	var products []models.Product
	err := config.DB.Where("sku IN ?", req.Skus).Or("item_code IN ?", req.Skus).Find(&products).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error al obtener datos"})
		return
	}

	pricing, err := models.LoadPricingSettings(config.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error al cargar configuración"})
		return
	}

	views := make([]stockView, 0, len(products))
	for i := range products {
		views = append(views, stockViewFor(&products[i], pricing))
	}

	c.JSON(http.StatusOK, gin.H{"message": "OK", "data": views})
}

// PurgeImageCache drops the cached Cloudinary copy of a product image so the
// next image request re-fetches from the supplier.
func PurgeImageCache(c *gin.Context) {
	var product models.Product
	if err := config.DB.First(&product, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Producto no encontrado"})
		return
	}

	if product.ImagePublicID != "" && utils.CloudinaryReady() {
		if err := utils.DeleteImage(c.Request.Context(), product.ImagePublicID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error al eliminar imagen"})
			return
		}
	}

	err := config.DB.Model(&product).Updates(map[string]interface{}{
		"image_url":       "",
		"image_public_id": "",
	}).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error al actualizar"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "OK", "data": gin.H{"id": product.ID, "item_code": product.ItemCode}})
}

// ToggleVisibility: the only writer of is_active. Sync never touches it.
func ToggleVisibility(c *gin.Context) {
	var req requests.VisibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Datos no válidos", "error": err.Error()})
		return
	}

	var product models.Product
	if err := config.DB.First(&product, req.ProductID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Producto no encontrado"})
		return
	}

	if err := config.DB.Model(&product).Update("is_active", *req.Active).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error al actualizar"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "OK",
		"data": gin.H{
			"id":        product.ID,
			"item_code": product.ItemCode,
			"name":      product.Name,
			"is_active": *req.Active,
		},
	})
}
