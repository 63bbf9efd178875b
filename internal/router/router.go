package router // package router defines how HTTP routes are registered for the API

import (
    "github.com/labstack/echo/v4"

    "github.com/iliyamo/vehicle-rental/internal/handler"
    "github.com/iliyamo/vehicle-rental/internal/middleware"
    "github.com/iliyamo/vehicle-rental/internal/utils"
)

// RegisterRoutes registers routes that do not require authentication.
func RegisterRoutes(e *echo.Echo, db handler.Pinger) {
    e.GET("/healthz", handler.Health(db))
}

// RegisterRentals mounts the rental API under /v1.  Every route requires a
// valid access token with the CLERK or ADMIN role and passes through
// rateLimit.  Invoice reads additionally go through cache.
func RegisterRentals(e *echo.Echo, h *handler.RentalHandler, jwtSecret string, rateLimit, cache echo.MiddlewareFunc) {
    g := e.Group(
        "/v1",
        middleware.JWTAuth(jwtSecret),
        middleware.RequireRole(utils.RoleClerk, utils.RoleAdmin),
        rateLimit,
    )
    g.POST("/rentals", h.CreateRental)
    g.GET("/reservations/:id", h.GetReservation)
    g.GET("/clients/:nif/reservations", h.ListClientReservations)
    g.GET("/vehicles/:plate/availability", h.VehicleAvailability)
    g.GET("/invoices/:number", h.GetInvoice, cache)
}
