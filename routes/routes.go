package routes

import (
	"net/http"
	"time"

	"gardenly/handlers"
	"gardenly/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAvailabilityRoutes registers calendar management endpoints.
// Reads are public; writes belong to the provider and require auth.
func RegisterAvailabilityRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/availability")
	{
		api.GET("", hb.GetAvailabilityHandler)

		protected := api.Group("")
		protected.Use(middleware.JWTAuthMiddleware())
		protected.PUT("/:providerId/:date", hb.SetAvailabilityHandler)
		protected.POST("/:providerId/:date/default", hb.ApplyDefaultScheduleHandler)
		protected.DELETE("/:providerId/:date", hb.ClearDayHandler)
	}
}

// RegisterSlotRoutes registers slot search endpoints.
func RegisterSlotRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/slots")
	{
		api.GET("", hb.GetValidStartHoursHandler)
		api.GET("/first", hb.GetFirstAvailableHandler)
		api.POST("/rank", hb.RankProvidersHandler)
	}
}

// RegisterQuoteRoutes registers pricing endpoints.
func RegisterQuoteRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/quotes")
	{
		api.POST("", hb.CreateQuoteHandler)
	}
}

// RegisterBookingRoutes sets up the endpoints for the reservation engine.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/bookings")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.POST("", hb.CreateBookingHandler)
		api.POST("/:id/cancel", hb.CancelBookingHandler)
		api.POST("/:id/start", hb.StartBookingHandler)
		api.POST("/:id/complete", hb.CompleteBookingHandler)
	}
}

// RegisterOfferRoutes sets up the broadcast offer endpoints.
func RegisterOfferRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/offers")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.POST("", hb.CreateOfferHandler)
		api.POST("/:id/claim", hb.ClaimOfferHandler)
	}
}

// RegisterTariffRoutes sets up provider pricing configuration endpoints.
func RegisterTariffRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/tariffs")
	{
		api.GET("/:providerId/:serviceType", hb.GetTariffHandler)

		protected := api.Group("")
		protected.Use(middleware.JWTAuthMiddleware())
		protected.PUT("/:providerId/:serviceType", hb.SaveTariffHandler)
	}
}

// RegisterDraftRoutes sets up booking draft endpoints.
func RegisterDraftRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/drafts")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.POST("", hb.SaveDraftHandler)
		api.PUT("/:id", hb.SaveDraftHandler)
		api.GET("/:id", hb.GetDraftHandler)
		api.DELETE("/:id", hb.DeleteDraftHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", handlers.HealthHandler)
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm Gardenly"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterAvailabilityRoutes(r, hb)
	RegisterSlotRoutes(r, hb)
	RegisterQuoteRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterOfferRoutes(r, hb)
	RegisterTariffRoutes(r, hb)
	RegisterDraftRoutes(r, hb)
	RegisterHealthRoute(r)
}
