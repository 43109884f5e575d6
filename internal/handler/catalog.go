// This file defines handlers for the booking screen's catalog reads:
// combos, à-la-carte items and promotional events for a showtime's
// movie, plus the ticket price table.  The three per-showtime loaders
// are independent so clients can fetch them in parallel, each with its
// own loading flag.  Responses are cacheable and served through the
// response-cache middleware.
package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/idol0602/cinema-booking-engine/internal/repository"
)

// CatalogHandler aggregates the repositories needed for catalog reads.
type CatalogHandler struct {
	ShowtimeRepo *repository.ShowtimeRepo // resolves the showtime's movie
	CatalogRepo  *repository.CatalogRepo  // combos, items, events, discounts
	PriceRepo    *repository.PriceRepo    // ticket price table
}

// NewCatalogHandler constructs a CatalogHandler with the provided
// repositories.  All dependencies must be non-nil.
func NewCatalogHandler(showtimeRepo *repository.ShowtimeRepo, catalogRepo *repository.CatalogRepo, priceRepo *repository.PriceRepo) *CatalogHandler {
	if showtimeRepo == nil || catalogRepo == nil || priceRepo == nil {
		panic("nil repository passed to NewCatalogHandler")
	}
	return &CatalogHandler{ShowtimeRepo: showtimeRepo, CatalogRepo: catalogRepo, PriceRepo: priceRepo}
}

// movieOf resolves the movie id of the showtime in the path, writing
// the error response itself when resolution fails.
func (h *CatalogHandler) movieOf(c echo.Context) (uint64, bool) {
	showtimeID, ok := pathID(c)
	if !ok {
		_ = c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid showtime id"})
		return 0, false
	}
	showtime, err := h.ShowtimeRepo.GetByID(c.Request().Context(), showtimeID)
	if err != nil {
		if errors.Is(err, repository.ErrShowtimeNotFound) {
			_ = c.JSON(http.StatusNotFound, echo.Map{"error": "showtime not found"})
		} else {
			_ = c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
		}
		return 0, false
	}
	return showtime.MovieID, true
}

// ListCombos handles GET /v1/showtimes/:id/combos.
func (h *CatalogHandler) ListCombos(c echo.Context) error {
	movieID, ok := h.movieOf(c)
	if !ok {
		return nil
	}
	combos, err := h.CatalogRepo.ListCombos(c.Request().Context(), movieID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load combos"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": combos})
}

// GetComboDetail handles GET /v1/combos/:id.
func (h *CatalogHandler) GetComboDetail(c echo.Context) error {
	comboID, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid combo id"})
	}
	detail, err := h.CatalogRepo.GetComboDetail(c.Request().Context(), comboID)
	if err != nil {
		if errors.Is(err, repository.ErrComboNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "combo not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load combo"})
	}
	return c.JSON(http.StatusOK, echo.Map{"item": detail})
}

// ListMenuItems handles GET /v1/menu-items.
func (h *CatalogHandler) ListMenuItems(c echo.Context) error {
	items, err := h.CatalogRepo.ListMenuItems(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load menu items"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// ListEvents handles GET /v1/showtimes/:id/events.
func (h *CatalogHandler) ListEvents(c echo.Context) error {
	movieID, ok := h.movieOf(c)
	if !ok {
		return nil
	}
	events, err := h.CatalogRepo.ListEvents(c.Request().Context(), movieID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load events"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": events})
}

// ListDiscounts handles GET /v1/discounts.
func (h *CatalogHandler) ListDiscounts(c echo.Context) error {
	discounts, err := h.CatalogRepo.ListDiscounts(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load discounts"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": discounts})
}

// ListTicketPrices handles GET /v1/ticket-prices.
func (h *CatalogHandler) ListTicketPrices(c echo.Context) error {
	prices, err := h.PriceRepo.ListTicketPrices(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load ticket prices"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": prices})
}
