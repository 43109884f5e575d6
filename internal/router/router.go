package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // the Echo web framework handles routing

	"github.com/idol0602/cinema-booking-engine/internal/handler"    // handlers implementing the booking and catalog endpoints
	"github.com/idol0602/cinema-booking-engine/internal/middleware" // JWT auth, response cache and rate limiting middleware
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// Load balancers and monitoring systems hit /healthz to verify the
	// service is up.
	e.GET("/healthz", handler.Health)
}

// RegisterCatalog registers the read-only catalog endpoints the booking
// screen loads alongside the seat map: combos, menu items and events for
// a showtime's movie, plus the static price and discount tables.  These
// responses change rarely, so they run behind the Redis response cache
// when one is configured.
func RegisterCatalog(e *echo.Echo, h *handler.CatalogHandler, cache echo.MiddlewareFunc) {
	g := e.Group("/v1")
	if cache != nil {
		g.Use(cache)
	}
	g.GET("/showtimes/:id/combos", h.ListCombos)
	g.GET("/showtimes/:id/events", h.ListEvents)
	g.GET("/combos/:id", h.GetComboDetail)
	g.GET("/menu-items", h.ListMenuItems)
	g.GET("/discounts", h.ListDiscounts)
	g.GET("/ticket-prices", h.ListTicketPrices)
}

// RegisterBooking registers the session lifecycle, selection, hold and
// checkout endpoints.  Every route requires a valid access token; the
// hold endpoint additionally runs behind the token-bucket rate limiter
// because it is the contended write path during on-sale spikes.
func RegisterBooking(e *echo.Echo, b *handler.BookingHandler, jwtSecret string, ratelimit echo.MiddlewareFunc) {
	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))

	auth.POST("/showtimes/:id/session", b.EnterSession)
	auth.DELETE("/showtimes/:id/session", b.LeaveSession)

	auth.POST("/showtimes/:id/seats/toggle", b.ToggleSeat)
	auth.POST("/showtimes/:id/combos/toggle", b.ToggleCombo)
	auth.POST("/showtimes/:id/items/quantity", b.ChangeItemQuantity)
	auth.POST("/showtimes/:id/events/select", b.SelectEvent)
	auth.GET("/showtimes/:id/totals", b.Totals)

	if ratelimit != nil {
		auth.POST("/showtimes/:id/hold", b.HoldSeats, ratelimit)
	} else {
		auth.POST("/showtimes/:id/hold", b.HoldSeats)
	}
	auth.DELETE("/showtimes/:id/hold", b.ReleaseHold)

	auth.POST("/showtimes/:id/checkout", b.Checkout)
	auth.GET("/orders/:id", b.GetOrder)
}

// RegisterDevToken registers the development token endpoint.  Call this
// only outside production; the storefront's identity service issues real
// tokens.
func RegisterDevToken(e *echo.Echo, h *handler.DevTokenHandler) {
	e.POST("/v1/auth/dev-token", h.Issue)
}
