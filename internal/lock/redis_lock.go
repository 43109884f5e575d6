// Package lock implements the booking engine's lock service on Redis.
// A lease is a set of per-seat keys written with SetNX so that Redis
// itself enforces at-most-one holder per seat across all users, plus a
// per-user record that lets a reloaded client restore its lease.  Key
// expiry is authoritative: when the TTL lapses the seats simply become
// acquirable again, with no cleanup job involved.
package lock

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/idol0602/cinema-booking-engine/internal/booking"
)

// releaseScript deletes a seat lock only when it is still owned by the
// releasing user, so a release racing against another user's fresh
// hold can never drop the other user's lease.
var releaseScript = redis.NewScript(`
    if redis.call('GET', KEYS[1]) == ARGV[1] then
        return redis.call('DEL', KEYS[1])
    end
    return 0
`)

// RedisLockService implements booking.LockService on a Redis client.
type RedisLockService struct {
	rdb *redis.Client
}

// NewRedisLockService returns a lock service bound to the given
// client.  The client must be non-nil; the engine has no degraded mode
// without its lock service.
func NewRedisLockService(rdb *redis.Client) *RedisLockService {
	if rdb == nil {
		panic("nil redis client passed to NewRedisLockService")
	}
	return &RedisLockService{rdb: rdb}
}

func seatKey(showtimeID, showtimeSeatID uint64) string {
	return fmt.Sprintf("seat_lock:%d:%d", showtimeID, showtimeSeatID)
}

func holdKey(userID, showtimeID uint64) string {
	return fmt.Sprintf("user_hold:%d:%d", userID, showtimeID)
}

// holdRecord is the JSON stored under the per-user hold key so that a
// reloaded client can rebuild its lease mirror.
type holdRecord struct {
	ShowtimeSeatIDs []uint64  `json:"showtime_seat_ids"`
	HeldAt          time.Time `json:"held_at"`
	ExpiresAt       time.Time `json:"expires_at"`
}

// BulkHold acquires all requested seats or none.  Each seat key is
// written with SetNX; on the first conflict every key acquired so far
// is rolled back and booking.ErrSeatConflict is returned, so the
// caller never observes a partial lease.
func (s *RedisLockService) BulkHold(ctx context.Context, userID, showtimeID uint64, showtimeSeatIDs []uint64, ttl time.Duration) (booking.Lease, error) {
	owner := strconv.FormatUint(userID, 10)
	acquired := make([]uint64, 0, len(showtimeSeatIDs))
	for _, id := range showtimeSeatIDs {
		ok, err := s.rdb.SetNX(ctx, seatKey(showtimeID, id), owner, ttl).Result()
		if err != nil {
			s.rollback(ctx, userID, showtimeID, acquired)
			return booking.Lease{}, fmt.Errorf("acquire seat lock: %w", err)
		}
		if !ok {
			s.rollback(ctx, userID, showtimeID, acquired)
			return booking.Lease{}, fmt.Errorf("seat %d: %w", id, booking.ErrSeatConflict)
		}
		acquired = append(acquired, id)
	}

	now := time.Now().UTC()
	rec := holdRecord{ShowtimeSeatIDs: showtimeSeatIDs, HeldAt: now, ExpiresAt: now.Add(ttl)}
	body, err := json.Marshal(rec)
	if err != nil {
		s.rollback(ctx, userID, showtimeID, acquired)
		return booking.Lease{}, fmt.Errorf("marshal hold record: %w", err)
	}
	if err := s.rdb.Set(ctx, holdKey(userID, showtimeID), body, ttl).Err(); err != nil {
		s.rollback(ctx, userID, showtimeID, acquired)
		return booking.Lease{}, fmt.Errorf("store hold record: %w", err)
	}

	return booking.Lease{
		ShowtimeSeatIDs: showtimeSeatIDs,
		HeldAt:          now,
		ExpiresAt:       now.Add(ttl),
		UserID:          userID,
	}, nil
}

// rollback releases seats acquired before a failed bulk hold.  Errors
// are ignored: the keys carry the requested TTL and expire on their
// own if the deletes do not get through.
func (s *RedisLockService) rollback(ctx context.Context, userID, showtimeID uint64, acquired []uint64) {
	owner := strconv.FormatUint(userID, 10)
	for _, id := range acquired {
		_ = releaseScript.Run(ctx, s.rdb, []string{seatKey(showtimeID, id)}, owner).Err()
	}
}

// BulkCancel releases the user's locks on the given seats and drops
// the hold record.  Seats the user does not own are skipped by the
// compare-and-delete script, which makes the operation idempotent.
func (s *RedisLockService) BulkCancel(ctx context.Context, userID, showtimeID uint64, showtimeSeatIDs []uint64) error {
	owner := strconv.FormatUint(userID, 10)
	for _, id := range showtimeSeatIDs {
		if err := releaseScript.Run(ctx, s.rdb, []string{seatKey(showtimeID, id)}, owner).Err(); err != nil {
			return fmt.Errorf("release seat lock: %w", err)
		}
	}
	if err := s.rdb.Del(ctx, holdKey(userID, showtimeID)).Err(); err != nil {
		return fmt.Errorf("drop hold record: %w", err)
	}
	return nil
}

// HeldSeats returns the user's live lease for the showtime, or nil
// when no hold record exists or it has already expired.  Expiry is
// double-checked against the stored timestamp because the record's
// TTL and wall-clock time can disagree by a tick.
func (s *RedisLockService) HeldSeats(ctx context.Context, userID, showtimeID uint64) (*booking.Lease, error) {
	body, err := s.rdb.Get(ctx, holdKey(userID, showtimeID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load hold record: %w", err)
	}
	var rec holdRecord
	if err := json.Unmarshal(body, &rec); err != nil {
		return nil, fmt.Errorf("decode hold record: %w", err)
	}
	if !rec.ExpiresAt.After(time.Now().UTC()) {
		return nil, nil
	}
	return &booking.Lease{
		ShowtimeSeatIDs: rec.ShowtimeSeatIDs,
		HeldAt:          rec.HeldAt,
		ExpiresAt:       rec.ExpiresAt,
		UserID:          userID,
	}, nil
}
