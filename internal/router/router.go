// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/hotel-reservation/internal/config"
	"github.com/iliyamo/hotel-reservation/internal/handler"
	"github.com/iliyamo/hotel-reservation/internal/middleware"
)

// Register wires up every route.  Public endpoints cover search, booking
// and guest queries; the staff group is JWT-protected and is only
// registered when staff credentials are configured.  Rate limiting
// applies to everything; the response cache covers only the static room
// inventory (search results and reservation reads change with every
// booking, so they stay uncached).
func Register(e *echo.Echo, b *handler.BookingHandler, a *handler.AuthHandler, cfg config.Config, rdb *redis.Client) {
	e.Use(middleware.NewRateLimit(config.LoadRateLimitConfig(), rdb))

	e.GET("/healthz", handler.Health)

	cache := middleware.NewResponseCache(config.LoadCacheConfig(), rdb)
	e.GET("/v1/rooms", b.ListRooms, cache)
	e.GET("/v1/rooms/search", b.SearchRooms)

	e.POST("/v1/reservations", b.CreateReservation)
	e.GET("/v1/reservations", b.ListReservationsByGuest)
	e.GET("/v1/reservations/:id", b.GetReservation)
	e.DELETE("/v1/reservations/:id", b.CancelReservation)

	if a != nil && cfg.StaffEnabled() {
		e.POST("/v1/auth/login", a.Login)
		staff := e.Group("/v1/staff")
		staff.Use(middleware.JWTAuth(cfg.JWTSecret))
		staff.GET("/reservations", b.ListAllReservations)
	}
}
