package controllers

import (
	"net/http"

	"api-bloommarbella-go/config"
	"api-bloommarbella-go/models"
	"api-bloommarbella-go/utils"

	"github.com/gin-gonic/gin"
)

type subcategoryCount struct {
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Count int    `json:"count"`
}

type categoryGroup struct {
	Name          string             `json:"name"`
	Slug          string             `json:"slug"`
	Count         int                `json:"count"`
	Subcategories []subcategoryCount `json:"subcategories"`
}

// GetCategoriesHome aggregates active products into category→subcategory
// counts. Products without a subcategory are excluded from the aggregation;
// hidden categories never appear.
func GetCategoriesHome(c *gin.Context) {
	hidden, err := models.HiddenCategories(config.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error al cargar configuración"})
		return
	}
	hiddenSet := make(map[string]bool, len(hidden))
	for _, h := range hidden {
		hiddenSet[h] = true
	}

	var rows []struct {
		Category    string
		Subcategory string
	}
	err = config.DB.Model(&models.Product{}).
		Select("category", "subcategory").
		Where("is_active = ?", true).
		Where("category <> ''").
		Where("subcategory <> ''").
		Order("category ASC, subcategory ASC").
		Find(&rows).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error al obtener datos"})
		return
	}

	type subKey struct{ cat, sub string }
	catCounts := map[string]int{}
	subCounts := map[subKey]int{}
	var catOrder []string
	subOrder := map[string][]string{}

	for _, row := range rows {
		if hiddenSet[row.Category] {
			continue
		}
		if _, seen := catCounts[row.Category]; !seen {
			catOrder = append(catOrder, row.Category)
		}
		catCounts[row.Category]++

		key := subKey{row.Category, row.Subcategory}
		if _, seen := subCounts[key]; !seen {
			subOrder[row.Category] = append(subOrder[row.Category], row.Subcategory)
		}
		subCounts[key]++
	}

	// Slugs are disambiguated: distinct names that normalize identically get
	// numeric suffixes instead of silently merging. Names are fed to the set
	// in query order so the same name keeps its slug across requests.
	catSlugs := utils.NewSlugSet()
	groups := make([]categoryGroup, 0, len(catOrder))
	for _, cat := range catOrder {
		group := categoryGroup{
			Name:  cat,
			Slug:  catSlugs.Slug(cat),
			Count: catCounts[cat],
		}

		subSlugs := utils.NewSlugSet()
		for _, sub := range subOrder[cat] {
			group.Subcategories = append(group.Subcategories, subcategoryCount{
				Name:  sub,
				Slug:  subSlugs.Slug(sub),
				Count: subCounts[subKey{cat, sub}],
			})
		}
		groups = append(groups, group)
	}

	c.JSON(http.StatusOK, gin.H{"message": "OK", "data": groups})
}

// GetBrands tallies the Brand tag over active products.
func GetBrands(c *gin.Context) {
	var products []models.Product
	err := config.DB.Select("brand").
		Where("is_active = ?", true).
		Where("brand <> ''").
		Find(&products).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error al obtener datos"})
		return
	}

	counts := map[string]int{}
	for _, p := range products {
		counts[p.Brand]++
	}

	type brandCount struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}
	brands := make([]brandCount, 0, len(counts))
	for name, n := range counts {
		brands = append(brands, brandCount{Name: name, Count: n})
	}

	c.JSON(http.StatusOK, gin.H{"message": "OK", "data": brands})
}
