package booking_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idol0602/cinema-booking-engine/internal/booking"
	"github.com/idol0602/cinema-booking-engine/internal/model"
	"github.com/idol0602/cinema-booking-engine/internal/pricing"
)

// ---------------------------------------------------------------------------
// fakes

type fakeLocks struct {
	mu           sync.Mutex
	holdCalls    int
	cancelCalls  int
	lastHeld     []uint64
	lastCanceled []uint64
	holdErr      error
	cancelErr    error
	restored     *booking.Lease
	restoreErr   error
	now          func() time.Time
}

func (f *fakeLocks) BulkHold(_ context.Context, userID, _ uint64, ids []uint64, ttl time.Duration) (booking.Lease, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.holdCalls++
	if f.holdErr != nil {
		return booking.Lease{}, f.holdErr
	}
	f.lastHeld = append([]uint64(nil), ids...)
	now := f.now()
	return booking.Lease{ShowtimeSeatIDs: f.lastHeld, HeldAt: now, ExpiresAt: now.Add(ttl), UserID: userID}, nil
}

func (f *fakeLocks) BulkCancel(_ context.Context, _, _ uint64, ids []uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cancelCalls++
	f.lastCanceled = append([]uint64(nil), ids...)
	return f.cancelErr
}

func (f *fakeLocks) HeldSeats(_ context.Context, _, _ uint64) (*booking.Lease, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.restored, f.restoreErr
}

func (f *fakeLocks) counts() (holds, cancels int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.holdCalls, f.cancelCalls
}

type fakeOrders struct {
	mu          sync.Mutex
	nextDraftID uint64
	draftCalls  int
	draftErr    error
	pending     *model.Order
	canceledIDs []uint64
	payErr      error
	lastPayload *model.OrderPayload
}

func (f *fakeOrders) CreateDraft(_ context.Context, userID uint64, showtime model.Showtime) (model.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.draftCalls++
	if f.draftErr != nil {
		return model.Order{}, f.draftErr
	}
	if f.nextDraftID == 0 {
		f.nextDraftID = 41
	}
	return model.Order{ID: f.nextDraftID, UserID: userID, ShowtimeID: showtime.ID, MovieID: showtime.MovieID, Status: model.OrderStatusPending}, nil
}

func (f *fakeOrders) PendingDraft(_ context.Context, _, _ uint64) (*model.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pending, nil
}

func (f *fakeOrders) MarkCanceled(_ context.Context, orderID uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.canceledIDs = append(f.canceledIDs, orderID)
	return nil
}

func (f *fakeOrders) ProcessPayment(_ context.Context, payload model.OrderPayload) (model.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.payErr != nil {
		return model.Order{}, f.payErr
	}
	p := payload
	f.lastPayload = &p
	return model.Order{
		ID:         payload.OrderID,
		UserID:     payload.UserID,
		ShowtimeID: payload.ShowtimeID,
		TotalPrice: payload.TotalPrice,
		ServiceVAT: payload.ServiceVAT,
		DiscountID: payload.DiscountID,
		Status:     model.OrderStatusCompleted,
	}, nil
}

func (f *fakeOrders) canceled() []uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]uint64(nil), f.canceledIDs...)
}

type fakeCatalog struct {
	mu      sync.Mutex
	details map[uint64]model.ComboDetail
	calls   int
}

func (f *fakeCatalog) GetComboDetail(_ context.Context, comboID uint64) (model.ComboDetail, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	d, ok := f.details[comboID]
	if !ok {
		return model.ComboDetail{}, errors.New("combo not found")
	}
	return d, nil
}

// ---------------------------------------------------------------------------
// fixtures

const (
	testUserID   = 9
	testMovieID  = 3
	testShowtime = 5
)

var testBase = time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)

func testSeats() []model.Seat {
	mk := func(id, ssID, seatTypeID uint64, row string, num uint32, status string, active bool) model.Seat {
		return model.Seat{
			ID: id, RowLabel: row, SeatNumber: num, SeatTypeID: seatTypeID, IsActive: active,
			ShowtimeSeat: &model.ShowtimeSeat{ID: ssID, ShowtimeID: testShowtime, SeatID: id, Status: status},
		}
	}
	return []model.Seat{
		mk(1, 101, 1, "A", 1, model.SeatStatusAvailable, true),
		mk(2, 102, 2, "A", 2, model.SeatStatusAvailable, true),
		mk(3, 103, 1, "A", 3, model.SeatStatusHolding, true),
		mk(4, 104, 1, "A", 4, model.SeatStatusAvailable, false),
	}
}

func testPrices() *pricing.Table {
	return pricing.NewTable([]model.TicketPrice{
		{FormatID: 1, SeatTypeID: 1, DayType: model.DayTypeWeekday, Price: 90000, PriceTierID: "tier-std"},
		{FormatID: 1, SeatTypeID: 2, DayType: model.DayTypeWeekday, Price: 120000, PriceTierID: "tier-vip"},
	})
}

type testEnv struct {
	locks   *fakeLocks
	orders  *fakeOrders
	catalog *fakeCatalog
	session *booking.Session
}

// newTestEnv builds a session against fakes with a frozen clock and a
// tick interval long enough that no tick fires unless the test wants
// one.
func newTestEnv(t *testing.T, opts ...func(*booking.Deps, *model.Showtime)) *testEnv {
	t.Helper()
	locks := &fakeLocks{now: func() time.Time { return testBase }}
	orders := &fakeOrders{}
	catalog := &fakeCatalog{details: map[uint64]model.ComboDetail{}}
	showtime := model.Showtime{
		ID: testShowtime, MovieID: testMovieID, FormatID: 1,
		StartsAt: testBase.Add(2 * time.Hour),
		DayType:  model.DayTypeWeekday,
	}
	deps := booking.Deps{
		Locks:        locks,
		Orders:       orders,
		Catalog:      catalog,
		Prices:       testPrices(),
		Now:          func() time.Time { return testBase },
		TickInterval: time.Hour,
	}
	for _, opt := range opts {
		opt(&deps, &showtime)
	}
	return &testEnv{
		locks:   locks,
		orders:  orders,
		catalog: catalog,
		session: booking.NewSession(testUserID, showtime, testSeats(), deps),
	}
}

// ---------------------------------------------------------------------------
// selection

func TestToggleSeat(t *testing.T) {
	env := newTestEnv(t)
	s := env.session

	require.NoError(t, s.ToggleSeat(1))
	assert.Equal(t, []uint64{1}, s.Snapshot().SeatIDs)

	// toggling again deselects
	require.NoError(t, s.ToggleSeat(1))
	assert.Empty(t, s.Snapshot().SeatIDs)

	err := s.ToggleSeat(3)
	require.Error(t, err)
	assert.True(t, booking.IsValidation(err), "seat held by someone else must be a validation error")

	err = s.ToggleSeat(4)
	require.Error(t, err, "inactive seat")

	err = s.ToggleSeat(77)
	require.Error(t, err, "unknown seat")
}

func TestToggleSeatRejectedWhileHolding(t *testing.T) {
	env := newTestEnv(t)
	s := env.session

	require.NoError(t, s.ToggleSeat(1))
	_, err := s.Hold(context.Background(), 300*time.Second)
	require.NoError(t, err)

	err = s.ToggleSeat(2)
	require.Error(t, err)
	assert.True(t, booking.IsValidation(err))
	// the existing selection is untouched
	assert.Equal(t, []uint64{1}, s.Snapshot().SeatIDs)
}

func TestToggleComboCachesDetailAndStacksDiscount(t *testing.T) {
	env := newTestEnv(t)
	env.catalog.details[7] = model.ComboDetail{
		Combo:       model.Combo{ID: 7, TotalPrice: 50000, IsActive: true},
		LinkedEvent: &model.Event{ID: 2, Discount: &model.Discount{ID: 20, Percent: 10, Active: true}},
	}
	s := env.session
	ctx := context.Background()

	require.NoError(t, s.ToggleCombo(ctx, 7))
	assert.Equal(t, []uint64{7}, s.Snapshot().ComboIDs)
	assert.Equal(t, 10, s.Totals().DiscountPercent)

	// off and on again resolves from the cache
	require.NoError(t, s.ToggleCombo(ctx, 7))
	assert.Equal(t, 0, s.Totals().DiscountPercent)
	require.NoError(t, s.ToggleCombo(ctx, 7))
	assert.Equal(t, 1, env.catalog.calls)
}

func TestToggleComboValidation(t *testing.T) {
	env := newTestEnv(t)
	env.catalog.details[8] = model.ComboDetail{
		Combo:          model.Combo{ID: 8, TotalPrice: 40000, IsActive: true},
		LinkedMovieIDs: []uint64{999},
	}
	env.catalog.details[9] = model.ComboDetail{
		Combo: model.Combo{ID: 9, TotalPrice: 40000, IsActive: false},
	}
	s := env.session
	ctx := context.Background()

	err := s.ToggleCombo(ctx, 8)
	require.Error(t, err)
	assert.True(t, booking.IsValidation(err), "combo restricted to another movie")
	assert.Empty(t, s.Snapshot().ComboIDs)

	err = s.ToggleCombo(ctx, 9)
	require.Error(t, err)
	assert.True(t, booking.IsValidation(err), "inactive combo")

	err = s.ToggleCombo(ctx, 12345)
	require.Error(t, err)
	assert.False(t, booking.IsValidation(err), "fetch failures are not user mistakes")
}

func TestChangeItemQuantityClampsAtZero(t *testing.T) {
	env := newTestEnv(t)
	s := env.session
	cola := model.MenuItem{ID: 11, Price: 30000, IsActive: true}

	s.ChangeItemQuantity(cola, 2)
	assert.Equal(t, map[uint64]int{11: 2}, s.Snapshot().ItemQuantities)

	s.ChangeItemQuantity(cola, -5)
	assert.Empty(t, s.Snapshot().ItemQuantities)
	assert.Equal(t, int64(0), s.Totals().ItemTotal)
}

func TestSelectEventToggleAndReplace(t *testing.T) {
	env := newTestEnv(t)
	s := env.session
	ev1 := model.Event{ID: 1, Discount: &model.Discount{ID: 10, Percent: 15, Active: true}}
	ev2 := model.Event{ID: 2, Discount: &model.Discount{ID: 20, Percent: 5, Active: true}}

	s.SelectEvent(ev1)
	assert.Equal(t, 15, s.Totals().DiscountPercent)

	// selecting another event replaces, never stacks
	s.SelectEvent(ev2)
	assert.Equal(t, 5, s.Totals().DiscountPercent)

	// re-selecting the current event deselects it
	s.SelectEvent(ev2)
	assert.Equal(t, 0, s.Totals().DiscountPercent)
}

// ---------------------------------------------------------------------------
// lease lifecycle

func TestHoldWithoutSeatsFailsBeforeAnyCall(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.session.Hold(context.Background(), 300*time.Second)
	require.Error(t, err)
	assert.True(t, booking.IsValidation(err))
	holds, _ := env.locks.counts()
	assert.Zero(t, holds, "validation must run before the lock service is touched")
	assert.Zero(t, env.orders.draftCalls)
}

func TestHoldLeasesSeatsAndOpensDraft(t *testing.T) {
	env := newTestEnv(t)
	s := env.session
	require.NoError(t, s.ToggleSeat(2))
	require.NoError(t, s.ToggleSeat(1))

	lease, err := s.Hold(context.Background(), 300*time.Second)
	require.NoError(t, err)

	assert.Equal(t, []uint64{101, 102}, lease.ShowtimeSeatIDs, "held ids are sorted")
	assert.Equal(t, testBase.Add(300*time.Second), lease.ExpiresAt)
	assert.True(t, s.IsHolding())
	assert.Equal(t, 300, s.RemainingSeconds())
	assert.Equal(t, 1, env.orders.draftCalls)

	_, err = s.Hold(context.Background(), 300*time.Second)
	require.Error(t, err, "a second hold while one is active is rejected")
}

func TestHoldConflictLeavesNoState(t *testing.T) {
	env := newTestEnv(t)
	env.locks.holdErr = booking.ErrSeatConflict
	s := env.session
	require.NoError(t, s.ToggleSeat(1))

	_, err := s.Hold(context.Background(), 300*time.Second)
	require.ErrorIs(t, err, booking.ErrSeatConflict)
	assert.False(t, s.IsHolding())
	assert.Zero(t, env.orders.draftCalls, "no draft when the lease failed")
	// seats stay selected so the user can retry
	assert.Equal(t, []uint64{1}, s.Snapshot().SeatIDs)
}

func TestHoldRollsBackLeaseWhenDraftFails(t *testing.T) {
	env := newTestEnv(t)
	env.orders.draftErr = errors.New("orders database down")
	s := env.session
	require.NoError(t, s.ToggleSeat(1))

	_, err := s.Hold(context.Background(), 300*time.Second)
	require.Error(t, err)
	assert.False(t, s.IsHolding())

	holds, cancels := env.locks.counts()
	assert.Equal(t, 1, holds)
	assert.Equal(t, 1, cancels, "the just-acquired lease must be released")
	assert.Equal(t, []uint64{101}, env.locks.lastCanceled)
}

func TestCancelReleasesAndIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	s := env.session
	ctx := context.Background()

	// cancel with nothing held is a no-op
	require.NoError(t, s.Cancel(ctx))
	_, cancels := env.locks.counts()
	assert.Zero(t, cancels)

	require.NoError(t, s.ToggleSeat(1))
	_, err := s.Hold(ctx, 300*time.Second)
	require.NoError(t, err)

	require.NoError(t, s.Cancel(ctx))
	assert.False(t, s.IsHolding())
	assert.Zero(t, s.RemainingSeconds())
	assert.Empty(t, s.Snapshot().SeatIDs, "cancel clears the seat selection")
	assert.Equal(t, []uint64{41}, env.orders.canceled(), "the draft is canceled")

	_, cancels = env.locks.counts()
	assert.Equal(t, 1, cancels)

	// second cancel is a no-op
	require.NoError(t, s.Cancel(ctx))
	_, cancels = env.locks.counts()
	assert.Equal(t, 1, cancels)
}

func TestCancelClearsStateEvenWhenReleaseFails(t *testing.T) {
	env := newTestEnv(t)
	env.locks.cancelErr = errors.New("redis timeout")
	s := env.session
	ctx := context.Background()

	require.NoError(t, s.ToggleSeat(1))
	_, err := s.Hold(ctx, 300*time.Second)
	require.NoError(t, err)

	err = s.Cancel(ctx)
	require.Error(t, err, "the release failure is surfaced")
	assert.False(t, s.IsHolding(), "local state never outlives what the session believes")
}

func TestRestoreResumesCountdownAtRemainingTime(t *testing.T) {
	env := newTestEnv(t)
	env.locks.restored = &booking.Lease{
		ShowtimeSeatIDs: []uint64{101, 102},
		HeldAt:          testBase.Add(-180 * time.Second),
		ExpiresAt:       testBase.Add(120 * time.Second),
		UserID:          testUserID,
	}
	env.orders.pending = &model.Order{ID: 77, Status: model.OrderStatusPending}
	s := env.session

	lease, err := s.Restore(context.Background())
	require.NoError(t, err)
	require.NotNil(t, lease)

	assert.True(t, s.IsHolding())
	assert.Equal(t, 120, s.RemainingSeconds(), "countdown resumes at the remaining time, not the full TTL")
	assert.Equal(t, []uint64{1, 2}, s.Snapshot().SeatIDs, "held seats are rebuilt into the selection")
}

func TestRestoreIgnoresExpiredOrAbsentLease(t *testing.T) {
	env := newTestEnv(t)
	s := env.session

	lease, err := s.Restore(context.Background())
	require.NoError(t, err)
	assert.Nil(t, lease, "no lease on the server")

	env.locks.restored = &booking.Lease{
		ShowtimeSeatIDs: []uint64{101},
		ExpiresAt:       testBase.Add(-time.Second),
	}
	lease, err = s.Restore(context.Background())
	require.NoError(t, err)
	assert.Nil(t, lease, "an already expired lease is treated as absent")
	assert.False(t, s.IsHolding())
}

func TestExpiryClearsSeatsButKeepsConcessions(t *testing.T) {
	env := newTestEnv(t, func(deps *booking.Deps, _ *model.Showtime) {
		deps.TickInterval = time.Millisecond
	})
	env.catalog.details[7] = model.ComboDetail{Combo: model.Combo{ID: 7, TotalPrice: 50000, IsActive: true}}
	s := env.session
	ctx := context.Background()

	expired := make(chan struct{})
	s.OnExpire(func() { close(expired) })

	require.NoError(t, s.ToggleSeat(1))
	require.NoError(t, s.ToggleCombo(ctx, 7))
	s.ChangeItemQuantity(model.MenuItem{ID: 11, Price: 30000}, 1)
	_, err := s.Hold(ctx, 2*time.Second)
	require.NoError(t, err)

	select {
	case <-expired:
	case <-time.After(2 * time.Second):
		t.Fatal("lease never expired")
	}

	require.Eventually(t, func() bool {
		ids := env.orders.canceled()
		return len(ids) == 1 && ids[0] == 41
	}, time.Second, 5*time.Millisecond, "the draft is canceled after expiry")

	snap := s.Snapshot()
	assert.False(t, snap.IsHolding)
	assert.Empty(t, snap.SeatIDs, "expiry clears the seat selection")
	assert.Equal(t, []uint64{7}, snap.ComboIDs, "combos survive expiry")
	assert.Equal(t, map[uint64]int{11: 1}, snap.ItemQuantities, "items survive expiry")

	_, cancels := env.locks.counts()
	assert.Zero(t, cancels, "no release call on expiry; the server TTL already reclaimed the seats")
}

// ---------------------------------------------------------------------------
// checkout

func TestCheckoutRequiresActiveHold(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.session.ToggleSeat(1))

	_, err := env.session.Checkout(context.Background())
	require.Error(t, err)
	assert.True(t, booking.IsValidation(err))
}

func TestCheckoutRejectsClosedBookingWindow(t *testing.T) {
	env := newTestEnv(t, func(_ *booking.Deps, showtime *model.Showtime) {
		showtime.StartsAt = testBase.Add(3 * time.Minute)
	})
	s := env.session
	ctx := context.Background()

	require.NoError(t, s.ToggleSeat(1))
	_, err := s.Hold(ctx, 300*time.Second)
	require.NoError(t, err)

	_, err = s.Checkout(ctx)
	require.Error(t, err)
	assert.True(t, booking.IsValidation(err))
	assert.Contains(t, err.Error(), "booking window")
	assert.True(t, s.IsHolding(), "a refused checkout keeps the lease")
}

func TestCheckoutPaymentFailureKeepsState(t *testing.T) {
	env := newTestEnv(t)
	env.orders.payErr = errors.New("card declined")
	s := env.session
	ctx := context.Background()

	require.NoError(t, s.ToggleSeat(1))
	_, err := s.Hold(ctx, 300*time.Second)
	require.NoError(t, err)

	_, err = s.Checkout(ctx)
	require.Error(t, err)
	assert.True(t, s.IsHolding(), "the user may retry while the lease lives")
	assert.Equal(t, []uint64{1}, s.Snapshot().SeatIDs)
}

func TestCheckoutBuildsPayloadAndFinalizes(t *testing.T) {
	env := newTestEnv(t)
	env.catalog.details[7] = model.ComboDetail{
		Combo:       model.Combo{ID: 7, TotalPrice: 50000, IsActive: true},
		LinkedEvent: &model.Event{ID: 4, Discount: &model.Discount{ID: 40, Percent: 10, Active: true}},
	}
	s := env.session
	ctx := context.Background()

	require.NoError(t, s.ToggleSeat(2))
	require.NoError(t, s.ToggleSeat(1))
	require.NoError(t, s.ToggleCombo(ctx, 7))
	s.ChangeItemQuantity(model.MenuItem{ID: 11, Price: 30000}, 2)
	s.SelectEvent(model.Event{ID: 2, Discount: &model.Discount{ID: 20, Percent: 15, Active: true}})

	_, err := s.Hold(ctx, 300*time.Second)
	require.NoError(t, err)

	wantTotals := s.Totals()
	order, err := s.Checkout(ctx)
	require.NoError(t, err)

	assert.Equal(t, model.OrderStatusCompleted, order.Status)
	assert.Equal(t, wantTotals.Total, order.TotalPrice)
	assert.Equal(t, wantTotals.ServiceVAT, order.ServiceVAT)
	require.NotNil(t, order.DiscountID)
	assert.Equal(t, uint64(20), *order.DiscountID, "only the selected event's discount is attributed")
	assert.False(t, s.IsHolding())

	payload := env.orders.lastPayload
	require.NotNil(t, payload)
	assert.Equal(t, uint64(41), payload.OrderID, "payment updates the draft opened at hold time")

	require.Len(t, payload.Tickets, 2)
	assert.Equal(t, model.TicketLine{
		ShowtimeSeatID: 101, SeatID: 1, SeatLabel: "A01", Price: 90000, PriceTierID: "tier-std",
	}, payload.Tickets[0])
	assert.Equal(t, model.TicketLine{
		ShowtimeSeatID: 102, SeatID: 2, SeatLabel: "A02", Price: 120000, PriceTierID: "tier-vip",
	}, payload.Tickets[1])

	require.Len(t, payload.Combos, 1)
	assert.Equal(t, model.ComboLine{ComboID: 7, Quantity: 1}, payload.Combos[0])

	require.Len(t, payload.Items, 1)
	assert.Equal(t, model.ItemLine{ItemID: 11, Quantity: 2, UnitPrice: 30000, Total: 60000}, payload.Items[0])
}

// ---------------------------------------------------------------------------
// cleanup and registry

func TestCleanupReleasesEverythingAndNeverFails(t *testing.T) {
	env := newTestEnv(t)
	env.locks.cancelErr = errors.New("redis timeout")
	env.catalog.details[7] = model.ComboDetail{Combo: model.Combo{ID: 7, TotalPrice: 50000, IsActive: true}}
	s := env.session
	ctx := context.Background()

	require.NoError(t, s.ToggleSeat(1))
	require.NoError(t, s.ToggleCombo(ctx, 7))
	s.SelectEvent(model.Event{ID: 2})
	_, err := s.Hold(ctx, 300*time.Second)
	require.NoError(t, err)

	s.Cleanup(ctx)

	snap := s.Snapshot()
	assert.False(t, snap.IsHolding)
	assert.Empty(t, snap.SeatIDs)
	assert.Empty(t, snap.ComboIDs, "cleanup resets the whole selection, not just seats")
	assert.Empty(t, snap.ItemQuantities)
	assert.Nil(t, snap.EventID)
	assert.Equal(t, []uint64{41}, env.orders.canceled())

	// idempotent
	s.Cleanup(ctx)
	assert.Equal(t, []uint64{41}, env.orders.canceled())
}

func TestRegistryOneSessionPerUserAndShowtime(t *testing.T) {
	env := newTestEnv(t)
	reg := booking.NewRegistry()

	created := 0
	mk := func() *booking.Session { created++; return env.session }

	s1 := reg.GetOrCreate(testUserID, testShowtime, mk)
	s2 := reg.GetOrCreate(testUserID, testShowtime, mk)
	assert.Same(t, s1, s2)
	assert.Equal(t, 1, created)
	assert.Same(t, s1, reg.Get(testUserID, testShowtime))

	require.NoError(t, s1.ToggleSeat(1))
	_, err := s1.Hold(context.Background(), 300*time.Second)
	require.NoError(t, err)

	reg.Remove(context.Background(), testUserID, testShowtime)
	assert.Nil(t, reg.Get(testUserID, testShowtime))
	assert.False(t, env.session.IsHolding(), "removal runs cleanup")

	// removing again is a no-op
	reg.Remove(context.Background(), testUserID, testShowtime)
}
