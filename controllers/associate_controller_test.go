package controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"api-bloommarbella-go/config"
	"api-bloommarbella-go/models"

	"github.com/stretchr/testify/assert"
)

func TestAssociateApplicationFlow(t *testing.T) {
	r := setupApp(t)
	customer := tokenFor(t, models.RoleCustomer)

	body := map[string]interface{}{
		"company_name": "Jardines del Sur SL",
		"tax_id":       "B12345678",
		"phone":        "+34600111222",
	}
	w := doJSON(r, http.MethodPost, "/api/associate/apply", customer, body)
	assert.Equal(t, http.StatusCreated, w.Code)

	// one application per user
	w = doJSON(r, http.MethodPost, "/api/associate/apply", customer, body)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodGet, "/api/associate/status", customer, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var status struct {
		Data models.AssociateRequest `json:"data"`
	}
	decodeBody(t, w, &status)
	assert.Equal(t, models.AssociateStatusPending, status.Data.Status)

	// approval promotes the applicant to the associate role
	admin := tokenFor(t, models.RoleAdmin)
	path := fmt.Sprintf("/api/admin/associate-requests/%d/status", status.Data.ID)
	w = doJSON(r, http.MethodPost, path, admin, map[string]interface{}{
		"status": models.AssociateStatusApproved,
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var user models.User
	assert.NoError(t, config.DB.First(&user, status.Data.UserID).Error)
	assert.Equal(t, models.RoleAssociate, user.Role)
}

func TestAssociateRejectionKeepsRole(t *testing.T) {
	r := setupApp(t)
	customer := tokenFor(t, models.RoleCustomer)

	w := doJSON(r, http.MethodPost, "/api/associate/apply", customer, map[string]interface{}{
		"company_name": "Viveros Norte",
		"tax_id":       "B87654321",
		"phone":        "+34600333444",
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		Data models.AssociateRequest `json:"data"`
	}
	decodeBody(t, w, &created)

	admin := tokenFor(t, models.RoleAdmin)
	path := fmt.Sprintf("/api/admin/associate-requests/%d/status", created.Data.ID)
	w = doJSON(r, http.MethodPost, path, admin, map[string]interface{}{
		"status":     models.AssociateStatusRejected,
		"admin_note": "Documentación incompleta",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var user models.User
	assert.NoError(t, config.DB.First(&user, created.Data.UserID).Error)
	assert.Equal(t, models.RoleCustomer, user.Role)
}

func TestAssociateStatusWithoutApplication(t *testing.T) {
	r := setupApp(t)
	customer := tokenFor(t, models.RoleCustomer)

	w := doJSON(r, http.MethodGet, "/api/associate/status", customer, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
