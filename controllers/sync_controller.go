package controllers

import (
	"errors"
	"net/http"
	"time"

	"api-bloommarbella-go/config"
	"api-bloommarbella-go/jobs"
	"api-bloommarbella-go/models"

	"github.com/gin-gonic/gin"
)

// TriggerSync runs a full catalog sync synchronously: the admin waits for the
// whole batch and gets the summary back.
func TriggerSync(c *gin.Context) {
	job := jobs.NewCatalogSyncJob(config.DB, config.RDB, Supplier)

	result, err := job.Run(c.Request.Context(), true)
	if errors.Is(err, jobs.ErrSyncInProgress) {
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"message": "Ya hay una sincronización en curso",
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Error en la sincronización",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"results": result,
	})
}

// GetSyncStatus returns the recent sync log plus a rolling 24h error count.
func GetSyncStatus(c *gin.Context) {
	var logs []models.SyncLog
	err := config.DB.Order("created_at DESC").Limit(20).Find(&logs).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error al obtener datos"})
		return
	}

	recentErrors, err := models.RecentSyncErrors(config.DB, 24*time.Hour)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error al obtener datos"})
		return
	}

	lastSync, _ := models.LastSyncAt(config.DB)

	c.JSON(http.StatusOK, gin.H{
		"message":       "OK",
		"data":          logs,
		"recent_errors": recentErrors,
		"last_sync_at":  lastSync,
	})
}
