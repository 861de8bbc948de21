package controllers_test

import (
	"net/http"
	"testing"

	"api-bloommarbella-go/config"
	"api-bloommarbella-go/models"

	"github.com/stretchr/testify/assert"
)

func TestRegisterAndLogin(t *testing.T) {
	r := setupApp(t)

	w := doJSON(r, http.MethodPost, "/api/auth/register", "", map[string]interface{}{
		"name":     "Ana",
		"email":    "ana@test.local",
		"password": "secret-pass-123",
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	var reg struct {
		Token string      `json:"token"`
		User  models.User `json:"user"`
	}
	decodeBody(t, w, &reg)
	assert.NotEmpty(t, reg.Token)
	assert.Equal(t, models.RoleCustomer, reg.User.Role)

	w = doJSON(r, http.MethodPost, "/api/auth/login", "", map[string]interface{}{
		"email":    "ana@test.local",
		"password": "secret-pass-123",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodPost, "/api/auth/login", "", map[string]interface{}{
		"email":    "ana@test.local",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminRoutesRequireAdminRole(t *testing.T) {
	r := setupApp(t)
	p := seedProduct(t, "PL-001", "Monstera Deliciosa", "Plants", "Indoor", 10.00, true)

	body := map[string]interface{}{"productId": p.ID, "active": false}

	// no session: 401
	w := doJSON(r, http.MethodPost, "/api/admin/products/visibility", "", body)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// wrong role: 403
	customer := tokenFor(t, models.RoleCustomer)
	w = doJSON(r, http.MethodPost, "/api/admin/products/visibility", customer, body)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// and no side effects either way
	var stored models.Product
	assert.NoError(t, config.DB.First(&stored, p.ID).Error)
	assert.True(t, stored.IsActive)
}

func TestVatDisplayToggle(t *testing.T) {
	r := setupApp(t)
	token := tokenFor(t, models.RoleCustomer)

	w := doJSON(r, http.MethodPatch, "/api/me/vat-display", token, map[string]interface{}{
		"show_vat_inclusive": true,
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var user models.User
	assert.NoError(t, config.DB.Where("email = ?", "customer@test.local").First(&user).Error)
	assert.True(t, user.ShowVatInclusive)
}
