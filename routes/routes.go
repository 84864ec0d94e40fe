package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"slotify/handlers"
	"slotify/utils"
)

// RegisterBookingRoutes registers the slot and booking endpoints.
func RegisterBookingRoutes(r *gin.Engine, h *handlers.BookingHandler) {
	r.POST("/free-slots", h.FreeSlotsHandler)
	r.POST("/next-free", h.NextFreeHandler)
	r.GET("/next-free", h.NextFreeHandler)
	r.POST("/book", h.BookHandler)
	r.POST("/check-availability", h.CheckSlotHandler)
	r.POST("/check-slot", h.CheckSlotHandler)
	r.POST("/delete", h.DeleteHandler)
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		health := utils.GetHealthStatus()
		c.JSON(http.StatusOK, gin.H{
			"status":    health.Overall(),
			"redis":     health.Redis,
			"calendar":  health.Calendar,
			"checkedAt": health.CheckedAt,
		})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, h *handlers.BookingHandler) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "X-Idempotency-Key"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterBookingRoutes(r, h)
	RegisterHealthRoute(r)
}
