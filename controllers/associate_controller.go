package controllers

import (
	"errors"
	"net/http"

	"api-bloommarbella-go/config"
	"api-bloommarbella-go/middleware"
	"api-bloommarbella-go/models"
	"api-bloommarbella-go/requests"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ApplyAssociate files the one-per-user professional application.
func ApplyAssociate(c *gin.Context) {
	var req requests.AssociateApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Datos no válidos", "error": err.Error()})
		return
	}

	claims := middleware.ClaimsFrom(c)

	var existing models.AssociateRequest
	if err := config.DB.Where("user_id = ?", claims.UserID).First(&existing).Error; err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Ya existe una solicitud", "data": existing})
		return
	}

	request := models.AssociateRequest{
		UserID:      claims.UserID,
		CompanyName: req.CompanyName,
		TaxID:       req.TaxID,
		Phone:       req.Phone,
		Status:      models.AssociateStatusPending,
	}
	if err := config.DB.Create(&request).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error al crear solicitud"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Solicitud enviada", "data": request})
}

// GetAssociateStatus shows the caller's own application.
func GetAssociateStatus(c *gin.Context) {
	claims := middleware.ClaimsFrom(c)

	var request models.AssociateRequest
	err := config.DB.Where("user_id = ?", claims.UserID).First(&request).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Sin solicitud"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error al obtener datos"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "OK", "data": request})
}

// ListAssociateRequests: admin review queue, optional ?status= filter.
func ListAssociateRequests(c *gin.Context) {
	query := config.DB.Preload("User").Order("created_at DESC")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var requestsList []models.AssociateRequest
	if err := query.Find(&requestsList).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error al obtener datos"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "OK", "data": requestsList})
}

// UpdateAssociateStatus transitions an application; approval promotes the
// user to the associate role. Only admins reach this handler.
func UpdateAssociateStatus(c *gin.Context) {
	id := c.Param("id")

	var req requests.AssociateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Datos no válidos", "error": err.Error()})
		return
	}

	var request models.AssociateRequest
	if err := config.DB.First(&request, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Solicitud no encontrada"})
		return
	}

	updates := map[string]interface{}{
		"status":     req.Status,
		"admin_note": req.AdminNote,
	}
	if err := config.DB.Model(&request).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error al actualizar"})
		return
	}

	if req.Status == models.AssociateStatusApproved {
		err := config.DB.Model(&models.User{}).
			Where("id = ?", request.UserID).
			Update("role", models.RoleAssociate).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error al actualizar rol"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "OK", "data": request})
}
