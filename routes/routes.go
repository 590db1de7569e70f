package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"slotwise/handlers"
)

// HandlerBundle groups all route handlers for registration.
type HandlerBundle struct {
	Booking  *handlers.BookingHandler
	Events   *handlers.EventTypeHandler
	Schedule *handlers.ScheduleHandler
}

// RegisterRoutes wires the public booking page and the host management API.
func RegisterRoutes(r *gin.Engine, hb *HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	// Visitor-facing booking page.
	public := r.Group("/api/book")
	{
		public.GET("/:hostID/events", hb.Events.ListPublic)
		public.GET("/:hostID/:eventTypeID/slots", hb.Booking.GetSlots)
	}

	// Booking confirmation and cancellation.
	bookings := r.Group("/api/bookings")
	{
		bookings.POST("", hb.Booking.Commit)
		bookings.DELETE("/:id", hb.Booking.Cancel)
	}

	// Host management (identity supplied by the external auth layer).
	hosts := r.Group("/api/hosts/:hostID")
	{
		hosts.GET("/events", hb.Events.List)
		hosts.POST("/events", hb.Events.Create)
		hosts.PUT("/events/:id", hb.Events.Update)
		hosts.DELETE("/events/:id", hb.Events.Delete)

		hosts.GET("/schedule", hb.Schedule.Get)
		hosts.PUT("/schedule", hb.Schedule.Put)
	}
}
