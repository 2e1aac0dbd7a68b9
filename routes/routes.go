package routes

import (
	"time"

	"doitto/handlers"
	"doitto/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterHelperRoutes registers the helper directory and sharing endpoints.
func RegisterHelperRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/helpers")
	{
		// Public routes
		api.GET("", hb.ListHelpersHandler)
		api.GET("/search", middleware.GeolocationMiddleware(hb.Locator), hb.SearchHelpersHandler)
		api.GET("/:id", hb.GetHelperHandler)
		api.GET("/:id/share", hb.ShareLinksHandler)
		api.GET("/:id/share-card.png", hb.ShareCardHandler)

		// Protected routes (Require Authentication)
		protected := api.Group("")
		protected.Use(middleware.FirebaseAuthMiddleware(hb.Verifier))
		protected.POST("", hb.CreateHelperHandler)
		protected.PATCH("/:id", hb.UpdateHelperHandler)
		protected.POST("/:id/reviews", hb.AddReviewHandler)
		protected.POST("/:id/images/:kind", hb.UploadHelperImageHandler)
	}
}

// RegisterCategoryRoutes registers the service category endpoints.
func RegisterCategoryRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/categories")
	{
		api.GET("", hb.ListCategoriesHandler)

		protected := api.Group("")
		protected.Use(middleware.FirebaseAuthMiddleware(hb.Verifier))
		protected.POST("", hb.AddCategoryHandler)
		protected.POST("/resolve", hb.ResolveCategoryHandler)
	}
}

// RegisterProfileRoutes registers the signed-in user's profile and
// join-as-pro endpoints.
func RegisterProfileRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api")
	api.Use(middleware.FirebaseAuthMiddleware(hb.Verifier))
	{
		api.GET("/me", hb.MeHandler)
		api.GET("/profile", hb.GetProfileHandler)
		api.PUT("/profile", hb.SaveProfileHandler)
		api.POST("/profile/banner", hb.UploadProfileBannerHandler)
		api.POST("/onboarding/validate", hb.ValidateStepHandler)
		api.POST("/onboarding/submit", hb.SubmitHandler)
	}
}

// RegisterCardHolderRoutes registers the collection endpoints.
func RegisterCardHolderRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/cardholders")
	api.Use(middleware.FirebaseAuthMiddleware(hb.Verifier))
	{
		api.GET("", hb.ListCardHoldersHandler)
		api.POST("", hb.CreateCardHolderHandler)
		api.GET("/:id", hb.GetCardHolderHandler)
		api.DELETE("/:id", hb.DeleteCardHolderHandler)
		api.GET("/:id/helpers", hb.ListMembersHandler)
		api.PUT("/:id/helpers/:helperID", hb.AddMemberHandler)
		api.DELETE("/:id/helpers/:helperID", hb.RemoveMemberHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", handlers.HealthHandler)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterHelperRoutes(r, hb)
	RegisterCategoryRoutes(r, hb)
	RegisterProfileRoutes(r, hb)
	RegisterCardHolderRoutes(r, hb)
}
