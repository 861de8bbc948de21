package controllers

import (
	"errors"
	"net/http"

	"api-bloommarbella-go/config"
	"api-bloommarbella-go/middleware"
	"api-bloommarbella-go/models"
	"api-bloommarbella-go/requests"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func Register(c *gin.Context) {
	var req requests.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Datos no válidos", "error": err.Error()})
		return
	}

	var existing models.User
	if err := config.DB.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email ya registrado"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error interno"})
		return
	}

	// New accounts inherit the shop-wide VAT display default.
	var vatDefault bool
	models.GetSetting(config.DB, models.SettingVatDisplayDefault, &vatDefault)

	user := models.User{
		Name:             req.Name,
		Email:            req.Email,
		Password:         string(hash),
		Role:             models.RoleCustomer,
		ShowVatInclusive: vatDefault,
	}
	if err := config.DB.Create(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error al crear usuario"})
		return
	}

	token, err := middleware.GenerateToken(&user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error interno"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Registrado", "token": token, "user": user})
}

func Login(c *gin.Context) {
	var req requests.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Datos no válidos", "error": err.Error()})
		return
	}

	var user models.User
	err := config.DB.Where("email = ?", req.Email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) ||
		(err == nil && bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil) {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Credenciales incorrectas"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error interno"})
		return
	}

	token, err := middleware.GenerateToken(&user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error interno"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "OK", "token": token, "user": user})
}

func Me(c *gin.Context) {
	claims := middleware.ClaimsFrom(c)

	var user models.User
	if err := config.DB.First(&user, claims.UserID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Usuario no encontrado"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "OK", "data": user})
}

// UpdateVatDisplay flips the per-viewer VAT-inclusive price toggle.
func UpdateVatDisplay(c *gin.Context) {
	var req requests.VatDisplayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Datos no válidos", "error": err.Error()})
		return
	}

	claims := middleware.ClaimsFrom(c)
	err := config.DB.Model(&models.User{}).
		Where("id = ?", claims.UserID).
		Update("show_vat_inclusive", *req.ShowVatInclusive).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error al actualizar"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "OK", "show_vat_inclusive": *req.ShowVatInclusive})
}
