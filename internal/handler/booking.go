package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/idol0602/cinema-booking-engine/internal/booking"
	"github.com/idol0602/cinema-booking-engine/internal/model"
	"github.com/idol0602/cinema-booking-engine/internal/pricing"
	"github.com/idol0602/cinema-booking-engine/internal/queue"
	"github.com/idol0602/cinema-booking-engine/internal/repository"
	queue_publisher "github.com/idol0602/cinema-booking-engine/internal/service"
)

// BookingHandler exposes the booking session over HTTP: entering and
// leaving the flow, selection changes, seat holds and checkout.  All
// methods assume JWT authentication has already been performed by
// middleware and may return 401 when the user ID cannot be extracted
// from the context.  One session exists per (user, showtime) pair and
// lives in the registry until a terminal path removes it.
type BookingHandler struct {
	ShowtimeRepo *repository.ShowtimeRepo // showtime lookup for window checks and pricing dimensions
	SeatRepo     *repository.SeatRepo     // seat reference data per showtime
	CatalogRepo  *repository.CatalogRepo  // combo/item/event lookups for selection ops
	OrderRepo    *repository.OrderRepo    // order drafts and payment
	Locks        booking.LockService      // seat leases
	Prices       *pricing.Table           // preloaded price table
	Sessions     *booking.Registry        // live sessions
	HoldTTL      time.Duration            // lease TTL handed to hold requests
}

// NewBookingHandler constructs a BookingHandler.  All dependencies
// must be non-nil.
func NewBookingHandler(showtimeRepo *repository.ShowtimeRepo, seatRepo *repository.SeatRepo, catalogRepo *repository.CatalogRepo, orderRepo *repository.OrderRepo, locks booking.LockService, prices *pricing.Table, sessions *booking.Registry, holdTTL time.Duration) *BookingHandler {
	if showtimeRepo == nil || seatRepo == nil || catalogRepo == nil || orderRepo == nil || locks == nil || prices == nil || sessions == nil {
		panic("nil dependency passed to NewBookingHandler")
	}
	if holdTTL <= 0 {
		holdTTL = booking.DefaultHoldTTL
	}
	return &BookingHandler{
		ShowtimeRepo: showtimeRepo,
		SeatRepo:     seatRepo,
		CatalogRepo:  catalogRepo,
		OrderRepo:    orderRepo,
		Locks:        locks,
		Prices:       prices,
		Sessions:     sessions,
		HoldTTL:      holdTTL,
	}
}

// session returns the caller's live session for the showtime in the
// path, or writes the appropriate error response and returns nil.
func (h *BookingHandler) session(c echo.Context) (*booking.Session, uint64, uint64) {
	userID, err := getUserID(c)
	if err != nil {
		_ = c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
		return nil, 0, 0
	}
	showtimeID, ok := pathID(c)
	if !ok {
		_ = c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid showtime id"})
		return nil, 0, 0
	}
	s := h.Sessions.Get(userID, showtimeID)
	if s == nil {
		_ = c.JSON(http.StatusNotFound, echo.Map{"error": "no booking session; enter the booking screen first"})
		return nil, 0, 0
	}
	return s, userID, showtimeID
}

// EnterSession handles POST /v1/showtimes/:id/session.  It creates (or
// returns) the caller's booking session for the showtime and restores
// any lease the user still holds, so a page reload resumes the
// countdown at the remaining time rather than resetting it.
func (h *BookingHandler) EnterSession(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	showtimeID, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid showtime id"})
	}
	ctx := c.Request().Context()
	showtime, err := h.ShowtimeRepo.GetByID(ctx, showtimeID)
	if err != nil {
		if errors.Is(err, repository.ErrShowtimeNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "showtime not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	seats, err := h.SeatRepo.ListForShowtime(ctx, showtimeID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load seats"})
	}
	s := h.Sessions.GetOrCreate(userID, showtimeID, func() *booking.Session {
		return booking.NewSession(userID, *showtime, seats, booking.Deps{
			Locks:   h.Locks,
			Orders:  h.OrderRepo,
			Catalog: h.CatalogRepo,
			Prices:  h.Prices,
		})
	})
	if _, err := s.Restore(ctx); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to restore hold"})
	}
	return c.JSON(http.StatusOK, echo.Map{"session": s.Snapshot()})
}

// LeaveSession handles DELETE /v1/showtimes/:id/session.  It tears the
// session down through the cleanup path: any active lease is released
// best-effort, the bound draft is canceled and all selection state is
// discarded.  Leaving with no session is a no-op.
func (h *BookingHandler) LeaveSession(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	showtimeID, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid showtime id"})
	}
	h.Sessions.Remove(c.Request().Context(), userID, showtimeID)
	return c.NoContent(http.StatusNoContent)
}

// ToggleSeat handles POST /v1/showtimes/:id/seats/toggle.  The request
// body carries a "seat_id"; the seat's membership in the selection is
// flipped when legal.
func (h *BookingHandler) ToggleSeat(c echo.Context) error {
	s, _, _ := h.session(c)
	if s == nil {
		return nil
	}
	var body struct {
		SeatID uint64 `json:"seat_id"`
	}
	if err := c.Bind(&body); err != nil || body.SeatID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "seat_id is required"})
	}
	if err := s.ToggleSeat(body.SeatID); err != nil {
		return bookingError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"session": s.Snapshot()})
}

// ToggleCombo handles POST /v1/showtimes/:id/combos/toggle.
func (h *BookingHandler) ToggleCombo(c echo.Context) error {
	s, _, _ := h.session(c)
	if s == nil {
		return nil
	}
	var body struct {
		ComboID uint64 `json:"combo_id"`
	}
	if err := c.Bind(&body); err != nil || body.ComboID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "combo_id is required"})
	}
	if err := s.ToggleCombo(c.Request().Context(), body.ComboID); err != nil {
		if errors.Is(err, repository.ErrComboNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "combo not found"})
		}
		return bookingError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"session": s.Snapshot()})
}

// ChangeItemQuantity handles POST /v1/showtimes/:id/items/quantity.
// The delta may be negative; quantities clamp at zero by removal.
func (h *BookingHandler) ChangeItemQuantity(c echo.Context) error {
	s, _, _ := h.session(c)
	if s == nil {
		return nil
	}
	var body struct {
		ItemID uint64 `json:"item_id"`
		Delta  int    `json:"delta"`
	}
	if err := c.Bind(&body); err != nil || body.ItemID == 0 || body.Delta == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "item_id and a non-zero delta are required"})
	}
	item, err := h.CatalogRepo.GetMenuItem(c.Request().Context(), body.ItemID)
	if err != nil {
		if errors.Is(err, repository.ErrMenuItemNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "menu item not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	s.ChangeItemQuantity(*item, body.Delta)
	return c.JSON(http.StatusOK, echo.Map{"session": s.Snapshot()})
}

// SelectEvent handles POST /v1/showtimes/:id/events/select.  Selecting
// the already selected event deselects it; selecting another event
// replaces the previous one.
func (h *BookingHandler) SelectEvent(c echo.Context) error {
	s, _, _ := h.session(c)
	if s == nil {
		return nil
	}
	var body struct {
		EventID uint64 `json:"event_id"`
	}
	if err := c.Bind(&body); err != nil || body.EventID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "event_id is required"})
	}
	event, err := h.CatalogRepo.GetEvent(c.Request().Context(), body.EventID)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	s.SelectEvent(*event)
	return c.JSON(http.StatusOK, echo.Map{"session": s.Snapshot()})
}

// Totals handles GET /v1/showtimes/:id/totals.  Totals are recomputed
// from the live selection on every call.
func (h *BookingHandler) Totals(c echo.Context) error {
	s, _, _ := h.session(c)
	if s == nil {
		return nil
	}
	return c.JSON(http.StatusOK, echo.Map{"totals": s.Totals()})
}

// HoldSeats handles POST /v1/showtimes/:id/hold.  It leases the
// selected seats for the configured TTL and opens the order draft.  A
// conflict on any seat fails the whole batch with 409 and leaves
// nothing held.
func (h *BookingHandler) HoldSeats(c echo.Context) error {
	s, _, _ := h.session(c)
	if s == nil {
		return nil
	}
	lease, err := s.Hold(c.Request().Context(), h.HoldTTL)
	if err != nil {
		return bookingError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"expires_at": lease.ExpiresAt.Format(time.RFC3339),
		"seat_ids":   lease.ShowtimeSeatIDs,
	})
}

// ReleaseHold handles DELETE /v1/showtimes/:id/hold.  It releases the
// caller's lease and cancels the draft.  With no active lease it is a
// no-op.
func (h *BookingHandler) ReleaseHold(c echo.Context) error {
	s, _, _ := h.session(c)
	if s == nil {
		return nil
	}
	if err := s.Cancel(c.Request().Context()); err != nil {
		// local state is already cleared; report the release failure
		return c.JSON(http.StatusOK, echo.Map{"released": false, "error": "release failed; the hold will expire on its own"})
	}
	return c.JSON(http.StatusOK, echo.Map{"released": true})
}

// Checkout handles POST /v1/showtimes/:id/checkout.  After pre-flight
// validation it submits the order for payment.  On failure the
// selection and lease are kept so the user can retry; on success the
// finalized order is returned, an order.completed event is published
// and the session is torn down.
func (h *BookingHandler) Checkout(c echo.Context) error {
	s, userID, showtimeID := h.session(c)
	if s == nil {
		return nil
	}
	snap := s.Snapshot()
	order, err := s.Checkout(c.Request().Context())
	if err != nil {
		return bookingError(c, err)
	}
	go publishCompleted(order, snap)
	h.Sessions.Remove(c.Request().Context(), userID, showtimeID)
	return c.JSON(http.StatusCreated, echo.Map{"order": orderView(order)})
}

// GetOrder handles GET /v1/orders/:id for the order result screen.
func (h *BookingHandler) GetOrder(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	orderID, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid order id"})
	}
	order, err := h.OrderRepo.GetByIDForUser(c.Request().Context(), orderID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "order not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"order": orderView(*order)})
}

// publishCompleted emits the order.completed event.  Publish failures
// are logged inside the publisher and deliberately ignored: the
// payment already succeeded.
func publishCompleted(order model.Order, snap booking.Snapshot) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = queue_publisher.PublishOrderCompleted(ctx, queue.OrderCompletedEvent{
		OrderID:         order.ID,
		PublicCode:      order.PublicCode,
		UserID:          order.UserID,
		ShowtimeID:      order.ShowtimeID,
		MovieID:         order.MovieID,
		SeatLabels:      snap.SeatLabels,
		DiscountPercent: snap.Totals.DiscountPercent,
		ServiceVAT:      order.ServiceVAT,
		TotalPrice:      order.TotalPrice,
		PaidAt:          time.Now().UTC().Format(time.RFC3339),
	})
}

// orderView shapes an order for JSON responses.
func orderView(o model.Order) echo.Map {
	view := echo.Map{
		"id":          o.ID,
		"public_code": o.PublicCode,
		"showtime_id": o.ShowtimeID,
		"total_price": o.TotalPrice,
		"service_vat": o.ServiceVAT,
		"status":      o.Status,
	}
	if o.DiscountID != nil {
		view["discount_id"] = *o.DiscountID
	}
	return view
}

// bookingError maps engine errors onto HTTP responses: validation
// failures to 400, seat conflicts to 409, anything else to 500 with
// the reason surfaced verbatim.
func bookingError(c echo.Context, err error) error {
	if booking.IsValidation(err) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if errors.Is(err, booking.ErrSeatConflict) {
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
}
