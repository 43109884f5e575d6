package booking

import (
	"context"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/idol0602/cinema-booking-engine/internal/model"
	"github.com/idol0602/cinema-booking-engine/internal/pricing"
)

// DefaultHoldTTL is how long a seat lease lives unless configured
// otherwise.  BookingCutoff is the pre-flight window: payment is
// refused once the showtime starts in less than this.
const (
	DefaultHoldTTL = 300 * time.Second
	BookingCutoff  = 5 * time.Minute
)

// Deps bundles the collaborators and reference data a session needs.
// Seats must contain every seat of the showtime's hall with its
// ShowtimeSeat populated; the price table is shared, read-only data.
type Deps struct {
	Locks   LockService
	Orders  OrderService
	Catalog ComboCatalog
	Prices  *pricing.Table

	// Now and TickInterval exist for tests; zero values mean real time
	// and 1-second ticks.
	Now          func() time.Time
	TickInterval time.Duration
}

// Session is the booking engine for one user on one showtime.  It owns
// the selection state (seats, combos, items, at most one event), the
// local mirror of the lease with its countdown, the lazily populated
// combo detail cache, and the bound order draft.  All methods are safe
// for concurrent use; snapshots returned to callers are copies.
//
// A session exists only while the user is on the booking screen and is
// discarded through Cleanup on every terminal path.
type Session struct {
	mu sync.Mutex

	userID   uint64
	showtime model.Showtime

	// reference data: seats keyed by seat id and by showtime-seat id so
	// a restored lease can be matched back to Seat records.
	seatsByID      map[uint64]model.Seat
	seatsByShowtimeSeatID map[uint64]model.Seat

	locks   LockService
	orders  OrderService
	catalog ComboCatalog
	prices  *pricing.Table
	now     func() time.Time
	tick    time.Duration

	// selection state
	selSeats       map[uint64]model.Seat
	selCombos      map[uint64]model.Combo
	comboDiscounts map[uint64]int
	itemQty        map[uint64]int
	itemRefs       map[uint64]model.MenuItem
	event          *model.Event

	// lazily populated, never evicted
	comboDetails map[uint64]model.ComboDetail

	// lease state
	holding   bool
	lease     Lease
	orderID   uint64
	remaining int
	cd        *countdown

	// onExpire is invoked (without the session lock held) exactly once
	// when the countdown reaches zero.  Optional.
	onExpire func()
}

// NewSession builds a session for one user on one showtime.  The seats
// slice is the showtime's seat map; entries without a ShowtimeSeat are
// kept but can never be selected.
func NewSession(userID uint64, showtime model.Showtime, seats []model.Seat, deps Deps) *Session {
	s := &Session{
		userID:                userID,
		showtime:              showtime,
		seatsByID:             make(map[uint64]model.Seat, len(seats)),
		seatsByShowtimeSeatID: make(map[uint64]model.Seat, len(seats)),
		locks:                 deps.Locks,
		orders:                deps.Orders,
		catalog:               deps.Catalog,
		prices:                deps.Prices,
		now:                   deps.Now,
		tick:                  deps.TickInterval,
		selSeats:              make(map[uint64]model.Seat),
		selCombos:             make(map[uint64]model.Combo),
		comboDiscounts:        make(map[uint64]int),
		itemQty:               make(map[uint64]int),
		itemRefs:              make(map[uint64]model.MenuItem),
		comboDetails:          make(map[uint64]model.ComboDetail),
	}
	if s.now == nil {
		s.now = func() time.Time { return time.Now().UTC() }
	}
	if s.tick <= 0 {
		s.tick = time.Second
	}
	for _, seat := range seats {
		s.seatsByID[seat.ID] = seat
		if seat.ShowtimeSeat != nil {
			s.seatsByShowtimeSeatID[seat.ShowtimeSeat.ID] = seat
		}
	}
	return s
}

// OnExpire registers a callback fired once when the lease countdown
// reaches zero.  Must be set before Hold or Restore.
func (s *Session) OnExpire(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onExpire = fn
}

// ---------------------------------------------------------------------------
// Selection state

// ToggleSeat flips a seat's membership in the selection.  Adding a
// seat is only legal while no lease is active and the seat's showtime
// status is AVAILABLE on an active seat; removing an already selected
// seat is always allowed before a hold.
func (s *Session) ToggleSeat(seatID uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.holding {
		return validationf("seats cannot be changed while a hold is active")
	}
	if _, ok := s.selSeats[seatID]; ok {
		delete(s.selSeats, seatID)
		return nil
	}
	seat, ok := s.seatsByID[seatID]
	if !ok {
		return validationf("unknown seat")
	}
	if !seat.Selectable() {
		return validationf("seat is not available")
	}
	s.selSeats[seatID] = seat
	return nil
}

// ToggleCombo flips a combo's membership.  Newly selected event combos
// are validated against the current movie's allow-list, and a combo
// linked to an active event discount records that percentage for
// stacking.  Details are cached per combo id so toggling off and on
// never refetches.  A failed detail fetch aborts the toggle and leaves
// the combo unselected.
func (s *Session) ToggleCombo(ctx context.Context, comboID uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.selCombos[comboID]; ok {
		delete(s.selCombos, comboID)
		delete(s.comboDiscounts, comboID)
		return nil
	}
	detail, ok := s.comboDetails[comboID]
	if !ok {
		var err error
		detail, err = s.catalog.GetComboDetail(ctx, comboID)
		if err != nil {
			return fmt.Errorf("fetch combo detail: %w", err)
		}
		s.comboDetails[comboID] = detail
	}
	if !detail.Combo.IsActive {
		return validationf("combo is no longer available")
	}
	if !detail.AllowsMovie(s.showtime.MovieID) {
		return validationf("combo does not apply to this movie")
	}
	s.selCombos[comboID] = detail.Combo
	if pct := detail.StackPercent(); pct > 0 {
		s.comboDiscounts[comboID] = pct
	}
	return nil
}

// ChangeItemQuantity adjusts an item's quantity by delta, clamping at
// zero by removal.  Zero or negative quantities are never stored.
func (s *Session) ChangeItemQuantity(item model.MenuItem, delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	qty := s.itemQty[item.ID] + delta
	if qty <= 0 {
		delete(s.itemQty, item.ID)
		delete(s.itemRefs, item.ID)
		return
	}
	s.itemQty[item.ID] = qty
	s.itemRefs[item.ID] = item
}

// SelectEvent applies toggle semantics over the single event slot:
// selecting the current event deselects it, selecting another event
// replaces the previous selection outright.
func (s *Session) SelectEvent(event model.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.event != nil && s.event.ID == event.ID {
		s.event = nil
		return
	}
	ev := event
	s.event = &ev
}

// ---------------------------------------------------------------------------
// Lease lifecycle

// Hold acquires a time-boxed exclusive lease over the selected seats
// and eagerly opens the PENDING order draft.  The whole operation
// fails closed: a conflict or network failure leaves no local lease
// state, and a draft failure releases the just-acquired lease.
func (s *Session) Hold(ctx context.Context, ttl time.Duration) (Lease, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.holding {
		return Lease{}, validationf("a hold is already active")
	}
	if len(s.selSeats) == 0 {
		return Lease{}, validationf("no seats selected")
	}
	if ttl <= 0 {
		ttl = DefaultHoldTTL
	}
	ids := make([]uint64, 0, len(s.selSeats))
	for _, seat := range s.selSeats {
		ids = append(ids, seat.ShowtimeSeat.ID)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	lease, err := s.locks.BulkHold(ctx, s.userID, s.showtime.ID, ids, ttl)
	if err != nil {
		return Lease{}, err
	}
	draft, err := s.orders.CreateDraft(ctx, s.userID, s.showtime)
	if err != nil {
		// roll the lease back so a retry starts clean; the server TTL
		// reclaims the seats even if this release fails
		if cancelErr := s.locks.BulkCancel(ctx, s.userID, s.showtime.ID, ids); cancelErr != nil {
			log.Printf("booking: release after draft failure: %v", cancelErr)
		}
		return Lease{}, fmt.Errorf("open order draft: %w", err)
	}

	s.holding = true
	s.lease = lease
	s.orderID = draft.ID
	s.startCountdownLocked(int(ttl / time.Second))
	return lease, nil
}

// Cancel releases the active lease, marks the bound draft CANCELED and
// clears the selection's seat set.  It is idempotent: with no active
// lease it is a no-op.  Local lease state is cleared even when the
// release fails, because the user-visible lease must never outlive
// what the session believes; the server-side TTL covers the rest.
func (s *Session) Cancel(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancelLocked(ctx)
}

func (s *Session) cancelLocked(ctx context.Context) error {
	if !s.holding {
		return nil
	}
	releaseErr := s.locks.BulkCancel(ctx, s.userID, s.showtime.ID, s.lease.ShowtimeSeatIDs)
	if releaseErr != nil {
		log.Printf("booking: release lease: %v", releaseErr)
	}
	if s.orderID != 0 {
		if err := s.orders.MarkCanceled(ctx, s.orderID); err != nil {
			log.Printf("booking: cancel draft %d: %v", s.orderID, err)
		}
	}
	s.clearLeaseLocked()
	return releaseErr
}

// Restore repopulates an in-flight lease after the booking screen is
// re-entered.  When the lock service still knows a live lease for this
// user and showtime, the selection's seats are rebuilt from the held
// showtime-seat ids and the countdown restarts at the remaining time,
// not the original TTL.  A lease with no remaining time is treated as
// absent.
func (s *Session) Restore(ctx context.Context) (*Lease, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.holding {
		lease := s.lease
		return &lease, nil
	}
	lease, err := s.locks.HeldSeats(ctx, s.userID, s.showtime.ID)
	if err != nil {
		return nil, fmt.Errorf("query held seats: %w", err)
	}
	if lease == nil {
		return nil, nil
	}
	remaining := lease.Remaining(s.now())
	if remaining <= 0 {
		return nil, nil
	}
	for _, ssID := range lease.ShowtimeSeatIDs {
		if seat, ok := s.seatsByShowtimeSeatID[ssID]; ok {
			s.selSeats[seat.ID] = seat
		}
	}
	if draft, err := s.orders.PendingDraft(ctx, s.userID, s.showtime.ID); err != nil {
		log.Printf("booking: find pending draft: %v", err)
	} else if draft != nil {
		s.orderID = draft.ID
	}
	s.holding = true
	s.lease = *lease
	s.startCountdownLocked(int(remaining / time.Second))
	out := s.lease
	return &out, nil
}

// IsHolding reports whether a lease is currently active.
func (s *Session) IsHolding() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.holding
}

// RemainingSeconds returns the countdown's current value, zero when no
// lease is active.
func (s *Session) RemainingSeconds() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.remaining
}

// startCountdownLocked replaces any running countdown with a fresh one
// starting at seconds.  The tick closure checks that it still owns the
// session's countdown slot, so a stale ticker that lost the race with
// a restart can never decrement the new countdown.
func (s *Session) startCountdownLocked(seconds int) {
	if s.cd != nil {
		s.cd.Stop()
	}
	s.remaining = seconds
	var cd *countdown
	cd = startCountdown(s.tick, func() bool {
		s.mu.Lock()
		if s.cd != cd {
			s.mu.Unlock()
			return true
		}
		if s.remaining > 0 {
			s.remaining--
		}
		if s.remaining > 0 {
			s.mu.Unlock()
			return false
		}
		fn := s.expireLocked()
		s.mu.Unlock()
		if fn != nil {
			fn()
		}
		return true
	})
	s.cd = cd
}

func (s *Session) stopCountdownLocked() {
	if s.cd != nil {
		s.cd.Stop()
		s.cd = nil
	}
	s.remaining = 0
}

// expireLocked performs the expiry transition when the countdown hits
// zero.  It mirrors an explicit cancel except that no release call is
// made: the server-side TTL already reclaimed the seats.  Only
// seat-related state is cleared; combos, items and the event survive
// so the user can re-hold without rebuilding the rest of the cart.
// The returned function (the user-facing expiry callback plus the
// best-effort draft cancellation) must be invoked after unlocking.
func (s *Session) expireLocked() func() {
	orderID := s.orderID
	notify := s.onExpire
	s.clearLeaseLocked()
	log.Printf("booking: lease expired for user %d showtime %d", s.userID, s.showtime.ID)
	orders := s.orders
	return func() {
		if orderID != 0 {
			if err := orders.MarkCanceled(context.Background(), orderID); err != nil {
				log.Printf("booking: cancel draft %d after expiry: %v", orderID, err)
			}
		}
		if notify != nil {
			notify()
		}
	}
}

// clearLeaseLocked resets every piece of seat and lease state.  Shared
// by cancel, expiry and cleanup so all paths uphold the same
// invariants.
func (s *Session) clearLeaseLocked() {
	s.stopCountdownLocked()
	s.holding = false
	s.lease = Lease{}
	s.orderID = 0
	s.selSeats = make(map[uint64]model.Seat)
}

// ---------------------------------------------------------------------------
// Pricing

// Totals computes the current price breakdown from the live selection.
// It is recomputed on every call; the underlying computation is pure.
func (s *Session) Totals() pricing.Totals {
	s.mu.Lock()
	defer s.mu.Unlock()
	return pricing.Compute(s.basketLocked(), s.prices, s.showtime.FormatID, s.showtime.DayType)
}

func (s *Session) basketLocked() pricing.Basket {
	b := pricing.Basket{
		Seats:          make([]model.Seat, 0, len(s.selSeats)),
		Combos:         make([]model.Combo, 0, len(s.selCombos)),
		ComboDiscounts: make(map[uint64]int, len(s.comboDiscounts)),
		Items:          make([]pricing.ItemQuantity, 0, len(s.itemQty)),
	}
	for _, seat := range s.selSeats {
		b.Seats = append(b.Seats, seat)
	}
	for _, combo := range s.selCombos {
		b.Combos = append(b.Combos, combo)
	}
	for id, pct := range s.comboDiscounts {
		b.ComboDiscounts[id] = pct
	}
	for id, qty := range s.itemQty {
		b.Items = append(b.Items, pricing.ItemQuantity{Item: s.itemRefs[id], Quantity: qty})
	}
	if s.event != nil {
		b.EventPercent = s.event.ActiveDiscountPercent()
	}
	return b
}

// ---------------------------------------------------------------------------
// Order orchestration

// Checkout validates the booking window, builds the normalized order
// payload from the current snapshot and submits it for payment.  On
// success the countdown stops and the finalized order is returned; the
// caller is expected to tear the session down afterwards.  On failure
// the selection and lease are left untouched so the user can retry
// while the lease lives.
func (s *Session) Checkout(ctx context.Context) (model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.holding {
		return model.Order{}, validationf("no active seat hold")
	}
	if s.showtime.StartsAt.Sub(s.now()) < BookingCutoff {
		return model.Order{}, validationf("booking window closed")
	}
	payload := s.buildPayloadLocked()
	order, err := s.orders.ProcessPayment(ctx, payload)
	if err != nil {
		return model.Order{}, err
	}
	// payment consumed the lease server-side; nothing left to release
	s.clearLeaseLocked()
	return order, nil
}

// buildPayloadLocked derives the immutable order lines from the
// selection: one ticket line per seat bound to its resolved price
// tier, one combo line per combo, one item line per item with the line
// total pre-computed.  Only the selected event's discount is
// attributed as the order's discount id; combo discounts are already
// reflected in the price.
func (s *Session) buildPayloadLocked() model.OrderPayload {
	totals := pricing.Compute(s.basketLocked(), s.prices, s.showtime.FormatID, s.showtime.DayType)

	payload := model.OrderPayload{
		OrderID:    s.orderID,
		UserID:     s.userID,
		ShowtimeID: s.showtime.ID,
		TotalPrice: totals.Total,
		ServiceVAT: totals.ServiceVAT,
	}
	if s.event != nil && s.event.Discount != nil && s.event.Discount.Active {
		id := s.event.Discount.ID
		payload.DiscountID = &id
	}

	seats := make([]model.Seat, 0, len(s.selSeats))
	for _, seat := range s.selSeats {
		seats = append(seats, seat)
	}
	sort.Slice(seats, func(i, j int) bool { return seats[i].ID < seats[j].ID })
	for _, seat := range seats {
		payload.Tickets = append(payload.Tickets, model.TicketLine{
			ShowtimeSeatID: seat.ShowtimeSeat.ID,
			SeatID:         seat.ID,
			SeatLabel:      seat.Label(),
			Price:          s.prices.Price(s.showtime.FormatID, seat.SeatTypeID, s.showtime.DayType),
			PriceTierID:    s.prices.TierID(s.showtime.FormatID, seat.SeatTypeID, s.showtime.DayType),
		})
	}
	comboIDs := make([]uint64, 0, len(s.selCombos))
	for id := range s.selCombos {
		comboIDs = append(comboIDs, id)
	}
	sort.Slice(comboIDs, func(i, j int) bool { return comboIDs[i] < comboIDs[j] })
	for _, id := range comboIDs {
		payload.Combos = append(payload.Combos, model.ComboLine{ComboID: id, Quantity: 1})
	}
	itemIDs := make([]uint64, 0, len(s.itemQty))
	for id := range s.itemQty {
		itemIDs = append(itemIDs, id)
	}
	sort.Slice(itemIDs, func(i, j int) bool { return itemIDs[i] < itemIDs[j] })
	for _, id := range itemIDs {
		item := s.itemRefs[id]
		qty := s.itemQty[id]
		payload.Items = append(payload.Items, model.ItemLine{
			ItemID:    id,
			Quantity:  qty,
			UnitPrice: item.Price,
			Total:     item.Price * int64(qty),
		})
	}
	return payload
}

// ---------------------------------------------------------------------------
// Cleanup

// Cleanup guarantees that leaving the flow leaves no dangling lease
// and no residual selection, regardless of how the flow ended.  The
// release and draft cancellation are best effort: failures are logged,
// never returned, and never interrupt teardown.  Cleanup is
// idempotent.
func (s *Session) Cleanup(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.holding {
		if err := s.locks.BulkCancel(ctx, s.userID, s.showtime.ID, s.lease.ShowtimeSeatIDs); err != nil {
			log.Printf("booking: cleanup release: %v", err)
		}
	}
	if s.orderID != 0 {
		if err := s.orders.MarkCanceled(ctx, s.orderID); err != nil {
			log.Printf("booking: cleanup draft %d: %v", s.orderID, err)
		}
	}
	s.clearLeaseLocked()
	s.selCombos = make(map[uint64]model.Combo)
	s.comboDiscounts = make(map[uint64]int)
	s.itemQty = make(map[uint64]int)
	s.itemRefs = make(map[uint64]model.MenuItem)
	s.event = nil
}

// ---------------------------------------------------------------------------
// Snapshot

// Snapshot is an immutable copy of the session state for rendering.
type Snapshot struct {
	UserID          uint64           `json:"user_id"`
	ShowtimeID      uint64           `json:"showtime_id"`
	SeatIDs         []uint64         `json:"seat_ids"`
	SeatLabels      []string         `json:"seat_labels"`
	ComboIDs        []uint64         `json:"combo_ids"`
	ItemQuantities  map[uint64]int   `json:"item_quantities"`
	EventID         *uint64          `json:"event_id,omitempty"`
	IsHolding       bool             `json:"is_holding"`
	HeldSeatIDs     []uint64         `json:"held_seat_ids"`
	RemainingSecond int              `json:"remaining_seconds"`
	ExpiresAt       *time.Time       `json:"expires_at,omitempty"`
	Totals          pricing.Totals   `json:"totals"`
}

// Snapshot returns a copy of the current selection and lease state
// together with freshly computed totals.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := Snapshot{
		UserID:          s.userID,
		ShowtimeID:      s.showtime.ID,
		ItemQuantities:  make(map[uint64]int, len(s.itemQty)),
		IsHolding:       s.holding,
		RemainingSecond: s.remaining,
		Totals:          pricing.Compute(s.basketLocked(), s.prices, s.showtime.FormatID, s.showtime.DayType),
	}
	seatIDs := make([]uint64, 0, len(s.selSeats))
	for id := range s.selSeats {
		seatIDs = append(seatIDs, id)
	}
	sort.Slice(seatIDs, func(i, j int) bool { return seatIDs[i] < seatIDs[j] })
	for _, id := range seatIDs {
		snap.SeatIDs = append(snap.SeatIDs, id)
		snap.SeatLabels = append(snap.SeatLabels, s.selSeats[id].Label())
	}
	for id := range s.selCombos {
		snap.ComboIDs = append(snap.ComboIDs, id)
	}
	sort.Slice(snap.ComboIDs, func(i, j int) bool { return snap.ComboIDs[i] < snap.ComboIDs[j] })
	for id, qty := range s.itemQty {
		snap.ItemQuantities[id] = qty
	}
	if s.event != nil {
		id := s.event.ID
		snap.EventID = &id
	}
	if s.holding {
		snap.HeldSeatIDs = append(snap.HeldSeatIDs, s.lease.ShowtimeSeatIDs...)
		exp := s.lease.ExpiresAt
		snap.ExpiresAt = &exp
	}
	return snap
}
