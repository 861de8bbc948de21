package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"api-bloommarbella-go/config"
	"api-bloommarbella-go/middleware"
	"api-bloommarbella-go/models"
	"api-bloommarbella-go/nieuwkoop"
	"api-bloommarbella-go/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Supplier is the Nieuwkoop client shared by handlers, set from main.
var Supplier *nieuwkoop.Client

// productView is a product as the storefront sees it: display price derived
// per request, base price never exposed.
type productView struct {
	ID           uint            `json:"id"`
	ItemCode     string          `json:"item_code"`
	Sku          string          `json:"sku"`
	Name         string          `json:"name"`
	Slug         string          `json:"slug"`
	Category     string          `json:"category"`
	Subcategory  string          `json:"subcategory"`
	Brand        string          `json:"brand"`
	Stock        int             `json:"stock"`
	ImageURL     string          `json:"image_url"`
	Price        decimal.Decimal `json:"price"`
	PriceWithVat decimal.Decimal `json:"price_with_vat"`
}

func toView(p *models.Product, pricing models.PricingSettings, role string) productView {
	price := utils.DisplayPrice(p.BasePrice, pricing.Multiplier, role, pricing.AssociateDiscount)
	return productView{
		ID:           p.ID,
		ItemCode:     p.ItemCode,
		Sku:          p.Sku,
		Name:         p.Name,
		Slug:         p.Slug,
		Category:     p.Category,
		Subcategory:  p.Subcategory,
		Brand:        p.Brand,
		Stock:        p.Stock,
		ImageURL:     p.ImageURL,
		Price:        price,
		PriceWithVat: utils.WithVAT(price),
	}
}

// GetProductsHome lists active products for the storefront with role-based
// pricing and a min/max price range over the filtered set.
func GetProductsHome(c *gin.Context) {
	pricing, err := models.LoadPricingSettings(config.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error al cargar configuración"})
		return
	}
	hidden, err := models.HiddenCategories(config.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error al cargar configuración"})
		return
	}

	filtered := func() *gorm.DB {
		q := config.DB.Model(&models.Product{}).Where("is_active = ?", true)
		if len(hidden) > 0 {
			q = q.Where("category NOT IN ?", hidden)
		}
		if search := c.Query("q"); search != "" {
			like := "%" + search + "%"
			q = q.Where("name LIKE ? OR brand LIKE ?", like, like)
		}
		if cat := c.Query("category"); cat != "" {
			q = q.Where("category = ?", cat)
		}
		return q
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "24"))
	if limit < 1 || limit > 100 {
		limit = 24
	}

	var total int64
	if err := filtered().Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error al obtener datos"})
		return
	}

	// The range spans the whole filtered set, not just the page. Display price
	// is monotonic in base price, so the base extremes carry over.
	var bounds struct {
		Min decimal.NullDecimal
		Max decimal.NullDecimal
	}
	if err := filtered().Select("MIN(base_price) AS min, MAX(base_price) AS max").Scan(&bounds).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error al obtener datos"})
		return
	}

	role := middleware.ViewerRole(c)
	var minPrice, maxPrice decimal.Decimal
	if bounds.Min.Valid {
		minPrice = utils.DisplayPrice(bounds.Min.Decimal, pricing.Multiplier, role, pricing.AssociateDiscount)
		maxPrice = utils.DisplayPrice(bounds.Max.Decimal, pricing.Multiplier, role, pricing.AssociateDiscount)
	}

	var products []models.Product
	err = filtered().Order("name ASC").Offset((page - 1) * limit).Limit(limit).Find(&products).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error al obtener datos"})
		return
	}

	views := make([]productView, 0, len(products))
	for i := range products {
		views = append(views, toView(&products[i], pricing, role))
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "OK",
		"data":    views,
		"meta": gin.H{
			"page":  page,
			"limit": limit,
			"total": total,
			"price_range": gin.H{
				"min": minPrice,
				"max": maxPrice,
			},
		},
	})
}

// GetProductDetail serves one product by slug with translated labels and the
// WhatsApp contact link.
func GetProductDetail(c *gin.Context) {
	slug := c.Param("slug")

	var product models.Product
	err := config.DB.Where("is_active = ?", true).Where("slug = ?", slug).First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Producto no encontrado"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error al obtener datos"})
		return
	}

	pricing, err := models.LoadPricingSettings(config.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error al cargar configuración"})
		return
	}

	view := toView(&product, pricing, middleware.ViewerRole(c))

	// WhatsApp contact-to-purchase link, when enabled.
	var waLink string
	var enabled bool
	if err := models.GetSetting(config.DB, models.SettingWhatsappEnabled, &enabled); err == nil && enabled {
		var number, template string
		models.GetSetting(config.DB, models.SettingWhatsappNumber, &number)
		models.GetSetting(config.DB, models.SettingWhatsappTemplate, &template)
		waLink = utils.WhatsappLink(number, template, product.Name, product.Sku)
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "OK",
		"data":    view,
		"labels": gin.H{
			"category":    models.Translate(config.DB, product.Category, "category"),
			"subcategory": models.Translate(config.DB, product.Subcategory, "subcategory"),
			"brand":       models.Translate(config.DB, product.Brand, "brand"),
		},
		"specs":         product.Specs,
		"description":   product.Description,
		"whatsapp_link": waLink,
	})
}
