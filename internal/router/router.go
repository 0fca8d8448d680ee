// Package router wires handlers and middleware onto the Echo instance.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/arminveh/cinema-box-office/internal/config"
	"github.com/arminveh/cinema-box-office/internal/handler"
	"github.com/arminveh/cinema-box-office/internal/middleware"
	"github.com/arminveh/cinema-box-office/internal/model"
)

// Deps carries everything the route table needs.  Optional pieces
// (Auth, Food, Redis) may be nil; the corresponding routes are then
// skipped or run without caching.
type Deps struct {
	Booking *handler.BookingHandler
	Browse  *handler.BrowseHandler
	Auth    *handler.AuthHandler
	Food    *handler.FoodHandler

	JWTSecret string
	Redis     *redis.Client
	RateLimit config.RateLimitConfig
	Cache     config.CacheConfig
}

// Register sets up the full route table.
func Register(e *echo.Echo, d Deps) {
	e.GET("/healthz", handler.Health)

	cache := middleware.CacheGET(d.Cache, d.Redis)

	// Public browse endpoints.  Guests can explore movies, halls,
	// showtimes and live seat maps without an account.
	e.GET("/v1/movies", d.Browse.GetMovies, cache)
	e.GET("/v1/halls", d.Browse.GetHalls, cache)
	e.GET("/v1/halls/:id/showtimes", d.Browse.GetShowtimes, cache)
	e.GET("/v1/halls/:id/seatmap", d.Booking.GetSeatMap)
	e.GET("/v1/halls/:id/seats/:label", d.Booking.GetSeat)
	if d.Food != nil {
		e.GET("/v1/menu", d.Food.GetMenu, cache)
	}

	if d.Auth != nil {
		g := e.Group("/v1/auth")
		g.POST("/register", d.Auth.Register)
		g.POST("/login", d.Auth.Login)
		g.POST("/refresh", d.Auth.Refresh)
		g.POST("/logout", d.Auth.Logout)
	}

	// Everything below needs a valid access token.
	authed := e.Group("/v1")
	authed.Use(middleware.JWTAuth(d.JWTSecret))
	authed.Use(middleware.RequireRole(model.RoleCustomer, model.RoleAdmin))
	authed.Use(middleware.RateLimit(d.RateLimit, d.Redis))

	if d.Auth != nil {
		authed.GET("/auth/me", d.Auth.Me)
	}

	authed.POST("/bookings/hold", d.Booking.HoldSeats)
	authed.POST("/bookings/confirm", d.Booking.ConfirmSeats)
	authed.POST("/bookings/cancel", d.Booking.CancelSeats)
	authed.GET("/my-payments", d.Booking.ListMyPayments)

	if d.Food != nil {
		authed.POST("/orders", d.Food.CreateOrder)
		authed.GET("/my-orders", d.Food.ListMyOrders)
	}

	// Admin-only maintenance endpoints.
	admin := e.Group("/v1/admin")
	admin.Use(middleware.JWTAuth(d.JWTSecret))
	admin.Use(middleware.RequireRole(model.RoleAdmin))
	admin.POST("/bookings/clear", d.Booking.ClearHolds)
}
