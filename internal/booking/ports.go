// Package booking implements the seat-hold and booking-computation
// engine: the selection state machine, the lease lifecycle with its
// local countdown, order construction and submission, and the cleanup
// guarantees around every terminal path.  The engine talks to its
// collaborators (lock service, order service, combo catalog) through
// the interfaces in this file, so it can be exercised without any
// network or database in tests.
package booking

import (
	"context"
	"time"

	"github.com/idol0602/cinema-booking-engine/internal/model"
)

// Lease mirrors the server-side lease the lock service granted to the
// current user: the held showtime-seat ids, the grant and expiry
// timestamps, and the owning user.  The server-side TTL is
// authoritative; the local copy only drives the countdown.
type Lease struct {
	ShowtimeSeatIDs []uint64
	HeldAt          time.Time
	ExpiresAt       time.Time
	UserID          uint64
}

// Remaining returns the lease time left at now, which may be negative
// for an already expired lease.
func (l Lease) Remaining(now time.Time) time.Duration {
	return l.ExpiresAt.Sub(now)
}

// LockService is the external service enforcing at-most-one holder per
// seat across all users.  Both bulk operations are atomic over the
// whole requested seat set: either every seat is held (or released) or
// none is.
type LockService interface {
	// BulkHold atomically leases the given showtime seats for ttl.  When
	// any seat is already held by another user it returns ErrSeatConflict
	// and no seat from the batch is leased.
	BulkHold(ctx context.Context, userID, showtimeID uint64, showtimeSeatIDs []uint64, ttl time.Duration) (Lease, error)
	// BulkCancel releases the given showtime seats when they are held by
	// the user.  Releasing seats that are not held is a no-op.
	BulkCancel(ctx context.Context, userID, showtimeID uint64, showtimeSeatIDs []uint64) error
	// HeldSeats returns the user's live lease for the showtime, or nil
	// when the user holds nothing (or the lease already expired).
	HeldSeats(ctx context.Context, userID, showtimeID uint64) (*Lease, error)
}

// OrderService owns order drafts and payment processing.
type OrderService interface {
	// CreateDraft opens a PENDING order header with a zero price, bound
	// to the user and movie.  It is called at hold time so payment only
	// ever updates the draft.
	CreateDraft(ctx context.Context, userID uint64, showtime model.Showtime) (model.Order, error)
	// PendingDraft returns the user's open draft for the showtime, if
	// one exists.  Used when a lease is restored after a reload.
	PendingDraft(ctx context.Context, userID, showtimeID uint64) (*model.Order, error)
	// MarkCanceled transitions a draft to CANCELED unless it is already
	// COMPLETED.  It is idempotent.
	MarkCanceled(ctx context.Context, orderID uint64) error
	// ProcessPayment atomically persists the payload's lines, charges the
	// customer and transitions the header to COMPLETED, returning the
	// finalized order.
	ProcessPayment(ctx context.Context, payload model.OrderPayload) (model.Order, error)
}

// ComboCatalog resolves full combo details (component items, movie
// restrictions, linked event and discount) on demand.
type ComboCatalog interface {
	GetComboDetail(ctx context.Context, comboID uint64) (model.ComboDetail, error)
}
