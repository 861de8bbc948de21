package routes

import (
	"api-bloommarbella-go/controllers"
	"api-bloommarbella-go/middleware"
	"api-bloommarbella-go/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine) {
	// Public storefront — OptionalAuth so logged-in associates see their prices
	public := r.Group("/api", middleware.OptionalAuth())
	{
		public.GET("/products", controllers.GetProductsHome)
		public.GET("/products/:slug", controllers.GetProductDetail)
		public.GET("/categories", controllers.GetCategoriesHome)
		public.GET("/brands", controllers.GetBrands)
		public.GET("/images/:code", controllers.GetProductImage)
		public.GET("/translations", controllers.GetTranslations)
		public.GET("/whatsapp", controllers.GetWhatsappContact)

		public.POST("/auth/register", controllers.Register)
		public.POST("/auth/login", controllers.Login)
	}

	// Authenticated users
	user := r.Group("/api", middleware.AuthRequired())
	{
		user.GET("/me", controllers.Me)
		user.PATCH("/me/vat-display", controllers.UpdateVatDisplay)

		user.POST("/associate/apply", controllers.ApplyAssociate)
		user.GET("/associate/status", controllers.GetAssociateStatus)
	}

	// Admin back-office
	admin := r.Group("/api/admin", middleware.AuthRequired(), middleware.RequireRole(models.RoleAdmin))
	{
		admin.POST("/sync", controllers.TriggerSync)
		admin.GET("/sync/status", controllers.GetSyncStatus)

		admin.GET("/products/search", controllers.SearchProducts)
		admin.POST("/products/visibility", controllers.ToggleVisibility)
		admin.DELETE("/products/:id/image", controllers.PurgeImageCache)

		admin.GET("/stock", controllers.GetStock)
		admin.POST("/stock/bulk", controllers.GetBulkStock)

		admin.GET("/hidden-categories", controllers.GetHiddenCategories)
		admin.POST("/hidden-categories", controllers.UpdateHiddenCategories)

		admin.GET("/settings", controllers.GetSettings)
		admin.POST("/settings", controllers.UpdateSettings)

		admin.GET("/associate-requests", controllers.ListAssociateRequests)
		admin.POST("/associate-requests/:id/status", controllers.UpdateAssociateStatus)
	}
}
