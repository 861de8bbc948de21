package controllers

import (
	"net/http"
	"os"

	"api-bloommarbella-go/config"
	"api-bloommarbella-go/models"
	"api-bloommarbella-go/utils"

	"github.com/gin-gonic/gin"
)

const defaultFallbackImage = "https://res.cloudinary.com/bloommarbella/image/upload/stock/plant-placeholder.jpg"

func fallbackImageURL() string {
	if u := os.Getenv("FALLBACK_IMAGE_URL"); u != "" {
		return u
	}
	return defaultFallbackImage
}

// GetProductImage proxies supplier images. Cached Cloudinary URL when we have
// one; otherwise fetch from Nieuwkoop, cache, redirect. Any upstream failure
// degrades to the stock fallback image — this endpoint never 5xxs.
func GetProductImage(c *gin.Context) {
	code := c.Param("code")

	var product models.Product
	if err := config.DB.Where("item_code = ?", code).First(&product).Error; err == nil &&
		product.ImageURL != "" {
		c.Redirect(http.StatusFound, product.ImageURL)
		return
	}

	data, contentType, err := Supplier.FetchImage(c.Request.Context(), code)
	if err != nil {
		c.Redirect(http.StatusFound, fallbackImageURL())
		return
	}

	if utils.CloudinaryReady() {
		result, err := utils.UploadImageBytes(c.Request.Context(), data, code, "products")
		if err == nil {
			if product.ID != 0 {
				config.DB.Model(&product).Updates(map[string]interface{}{
					"image_url":       result.SecureURL,
					"image_public_id": result.PublicID,
				})
			}
			c.Redirect(http.StatusFound, result.SecureURL)
			return
		}
		// cache failed, still serve the bytes we have
	}

	c.Data(http.StatusOK, contentType, data)
}
