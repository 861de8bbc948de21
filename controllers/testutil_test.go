package controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"api-bloommarbella-go/config"
	"api-bloommarbella-go/middleware"
	"api-bloommarbella-go/models"
	"api-bloommarbella-go/routes"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupApp(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Setting{},
		&models.SyncLog{},
		&models.Translation{},
		&models.AssociateRequest{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	config.DB = db

	r := gin.New()
	routes.SetupRoutes(r)
	return r
}

func tokenFor(t *testing.T, role string) string {
	t.Helper()
	user := models.User{
		Name:     "Test " + role,
		Email:    role + "@test.local",
		Password: "x",
		Role:     role,
	}
	if err := config.DB.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	token, err := middleware.GenerateToken(&user)
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	return token
}

func seedProduct(t *testing.T, itemCode, name, category, subcategory string, base float64, active bool) models.Product {
	t.Helper()
	p := models.Product{
		ItemCode:    itemCode,
		Sku:         itemCode,
		Name:        name,
		Slug:        itemCode + "-slug",
		Category:    category,
		Subcategory: subcategory,
		BasePrice:   decimal.NewFromFloat(base),
		Stock:       5,
		IsActive:    active,
	}
	if err := config.DB.Create(&p).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return p
}

func saveProduct(p *models.Product) error {
	return config.DB.Save(p).Error
}

func doJSON(r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("decode body %q: %v", w.Body.String(), err)
	}
}
