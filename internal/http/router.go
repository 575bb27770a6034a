package api

import (
	"log"
	stdhttp "net/http"

	intconfig "busyatra/internal/config"
	"busyatra/internal/domain"
	h "busyatra/internal/http/handlers"
	"busyatra/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	h.SetJWTSecret(env.JWTSecret)

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS())

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	auth := middleware.RequireAuth(h.JWTSecret())
	traveler := middleware.RequireRole(domain.RoleTraveler, domain.RoleAdmin)
	customer := middleware.RequireRole(domain.RoleCustomer, domain.RoleAdmin)

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)

		a := api.Group("/auth")
		a.POST("/login", h.Login)
		a.POST("/register", h.Register)

		buses := api.Group("/buses", auth, traveler)
		buses.GET("", h.ListBuses)
		buses.POST("", h.CreateBus)
		buses.PUT("/:id", h.UpdateBus)
		buses.DELETE("/:id", h.DeleteBus)

		schedules := api.Group("/schedules")
		schedules.GET("", h.SearchSchedules)
		schedules.GET("/:id/seats", h.GetScheduleSeats)
		schedules.POST("", auth, traveler, h.CreateSchedule)
		schedules.DELETE("/:id", auth, traveler, h.CancelSchedule)
		schedules.GET("/:id/manifest", auth, traveler, h.GetScheduleManifest)

		bookings := api.Group("/bookings", auth)
		bookings.POST("", customer, h.CreateBooking)
		bookings.GET("", h.ListMyBookings)
		bookings.GET("/:id", h.GetBookingDetail)
		bookings.PUT("/:id/cancel", customer, h.CancelBooking)
		bookings.GET("/:id/e-ticket", h.GetBookingETicketPDF)
	}

	return r
}
