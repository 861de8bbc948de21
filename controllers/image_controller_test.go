package controllers_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"api-bloommarbella-go/config"
	"api-bloommarbella-go/controllers"
	"api-bloommarbella-go/models"
	"api-bloommarbella-go/nieuwkoop"

	"github.com/stretchr/testify/assert"
)

func TestImageRedirectsToCachedURL(t *testing.T) {
	r := setupApp(t)
	p := seedProduct(t, "PL-001", "Monstera", "Plants", "Indoor", 10, true)
	p.ImageURL = "https://cdn.test.local/pl-001.jpg"
	assert.NoError(t, saveProduct(&p))

	w := doJSON(r, http.MethodGet, "/api/images/PL-001", "", nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "https://cdn.test.local/pl-001.jpg", w.Header().Get("Location"))
}

func TestImageServesSupplierBytesWithoutCache(t *testing.T) {
	r := setupApp(t)
	seedProduct(t, "PL-001", "Monstera", "Plants", "Indoor", 10, true)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "image/jpeg")
		w.Write([]byte("jpeg-bytes"))
	}))
	defer srv.Close()
	controllers.Supplier = nieuwkoop.NewClient(srv.URL, "u", "p")

	w := doJSON(r, http.MethodGet, "/api/images/PL-001", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/jpeg", w.Header().Get("Content-Type"))
	assert.Equal(t, "jpeg-bytes", w.Body.String())
}

func TestPurgeImageCache(t *testing.T) {
	r := setupApp(t)
	p := seedProduct(t, "PL-001", "Monstera", "Plants", "Indoor", 10, true)
	p.ImageURL = "https://cdn.test.local/pl-001.jpg"
	p.ImagePublicID = "products/PL-001"
	assert.NoError(t, saveProduct(&p))

	admin := tokenFor(t, models.RoleAdmin)
	w := doJSON(r, http.MethodDelete, fmt.Sprintf("/api/admin/products/%d/image", p.ID), admin, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var stored models.Product
	assert.NoError(t, config.DB.First(&stored, p.ID).Error)
	assert.Empty(t, stored.ImageURL)
	assert.Empty(t, stored.ImagePublicID)

	w = doJSON(r, http.MethodDelete, "/api/admin/products/9999/image", admin, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestImageFallsBackWhenUpstreamFails(t *testing.T) {
	r := setupApp(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()
	controllers.Supplier = nieuwkoop.NewClient(srv.URL, "u", "p")

	w := doJSON(r, http.MethodGet, "/api/images/PL-404", "", nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.NotEmpty(t, w.Header().Get("Location"))
}
