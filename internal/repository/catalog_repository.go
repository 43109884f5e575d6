package repository

import (
	"context"
	"database/sql"

	"github.com/idol0602/cinema-booking-engine/internal/model"
)

// CatalogRepo loads the optional-purchase catalogs for a booking
// screen: combos, à-la-carte menu items, promotional events and their
// discount rules.  The three list loaders are independent so the
// handler can fetch them in parallel, each with its own loading flag
// on the client.
type CatalogRepo struct {
	db *sql.DB
}

// NewCatalogRepo returns a CatalogRepo bound to the provided database.
func NewCatalogRepo(db *sql.DB) *CatalogRepo { return &CatalogRepo{db: db} }

// ListCombos returns the active combos available for the given movie:
// unrestricted combos plus event combos whose event allows the movie.
func (r *CatalogRepo) ListCombos(ctx context.Context, movieID uint64) ([]model.Combo, error) {
	const q = `SELECT DISTINCT c.id, c.name, c.total_price, c.event_id, c.is_active, c.created_at, c.updated_at
               FROM combos c
               LEFT JOIN combo_movies cm ON cm.combo_id = c.id
               WHERE c.is_active = 1
                 AND (cm.combo_id IS NULL OR cm.movie_id = ?)
               ORDER BY c.id`
	rows, err := r.db.QueryContext(ctx, q, movieID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var combos []model.Combo
	for rows.Next() {
		var c model.Combo
		if err := rows.Scan(&c.ID, &c.Name, &c.TotalPrice, &c.EventID, &c.IsActive, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		combos = append(combos, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return combos, nil
}

// GetComboDetail loads the full combo record: the combo, its component
// items, the movies it is restricted to and its linked event with the
// event's discount rule.  Returns ErrComboNotFound for unknown ids.
func (r *CatalogRepo) GetComboDetail(ctx context.Context, comboID uint64) (model.ComboDetail, error) {
	var detail model.ComboDetail
	const comboQ = `SELECT id, name, total_price, event_id, is_active, created_at, updated_at
                    FROM combos WHERE id = ?`
	c := &detail.Combo
	err := r.db.QueryRowContext(ctx, comboQ, comboID).Scan(
		&c.ID, &c.Name, &c.TotalPrice, &c.EventID, &c.IsActive, &c.CreatedAt, &c.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return model.ComboDetail{}, ErrComboNotFound
	}
	if err != nil {
		return model.ComboDetail{}, err
	}

	const itemsQ = `SELECT m.id, m.name, m.price, m.is_active, m.created_at, m.updated_at, ci.quantity
                    FROM combo_items ci
                    JOIN menu_items m ON m.id = ci.item_id
                    WHERE ci.combo_id = ?`
	rows, err := r.db.QueryContext(ctx, itemsQ, comboID)
	if err != nil {
		return model.ComboDetail{}, err
	}
	for rows.Next() {
		var ci model.ComboItem
		if err := rows.Scan(&ci.Item.ID, &ci.Item.Name, &ci.Item.Price, &ci.Item.IsActive,
			&ci.Item.CreatedAt, &ci.Item.UpdatedAt, &ci.Quantity); err != nil {
			rows.Close()
			return model.ComboDetail{}, err
		}
		detail.Items = append(detail.Items, ci)
	}
	if err := rows.Close(); err != nil {
		return model.ComboDetail{}, err
	}

	const moviesQ = `SELECT movie_id FROM combo_movies WHERE combo_id = ?`
	rows, err = r.db.QueryContext(ctx, moviesQ, comboID)
	if err != nil {
		return model.ComboDetail{}, err
	}
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return model.ComboDetail{}, err
		}
		detail.LinkedMovieIDs = append(detail.LinkedMovieIDs, id)
	}
	if err := rows.Close(); err != nil {
		return model.ComboDetail{}, err
	}

	if detail.Combo.EventID != nil {
		ev, err := r.GetEvent(ctx, *detail.Combo.EventID)
		if err != nil && err != ErrEventNotFound {
			return model.ComboDetail{}, err
		}
		if err == nil {
			detail.LinkedEvent = ev
		}
	}
	return detail, nil
}

// GetMenuItem loads one active à-la-carte item.  Returns
// ErrMenuItemNotFound for unknown or inactive ids.
func (r *CatalogRepo) GetMenuItem(ctx context.Context, itemID uint64) (*model.MenuItem, error) {
	const q = `SELECT id, name, price, is_active, created_at, updated_at
               FROM menu_items WHERE id = ? AND is_active = 1`
	var m model.MenuItem
	err := r.db.QueryRowContext(ctx, q, itemID).Scan(&m.ID, &m.Name, &m.Price, &m.IsActive, &m.CreatedAt, &m.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrMenuItemNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// ListMenuItems returns every active à-la-carte item.
func (r *CatalogRepo) ListMenuItems(ctx context.Context) ([]model.MenuItem, error) {
	const q = `SELECT id, name, price, is_active, created_at, updated_at
               FROM menu_items WHERE is_active = 1 ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []model.MenuItem
	for rows.Next() {
		var m model.MenuItem
		if err := rows.Scan(&m.ID, &m.Name, &m.Price, &m.IsActive, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// ListEvents returns the promotional events running for the given
// movie (or for all movies), each joined with its discount rule when
// one exists.
func (r *CatalogRepo) ListEvents(ctx context.Context, movieID uint64) ([]model.Event, error) {
	const q = `SELECT e.id, e.name, e.movie_id, e.starts_at, e.ends_at,
                      d.id, d.percent, d.active
               FROM events e
               LEFT JOIN discounts d ON d.event_id = e.id
               WHERE e.movie_id = 0 OR e.movie_id = ?
               ORDER BY e.id`
	rows, err := r.db.QueryContext(ctx, q, movieID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var events []model.Event
	for rows.Next() {
		var ev model.Event
		var dID sql.NullInt64
		var dPercent sql.NullInt64
		var dActive sql.NullBool
		if err := rows.Scan(&ev.ID, &ev.Name, &ev.MovieID, &ev.StartsAt, &ev.EndsAt,
			&dID, &dPercent, &dActive); err != nil {
			return nil, err
		}
		if dID.Valid {
			ev.Discount = &model.Discount{
				ID:      uint64(dID.Int64),
				Percent: int(dPercent.Int64),
				Active:  dActive.Bool,
			}
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

// ListDiscounts returns every discount rule, active or not.
func (r *CatalogRepo) ListDiscounts(ctx context.Context) ([]model.Discount, error) {
	const q = `SELECT id, percent, active FROM discounts ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var discounts []model.Discount
	for rows.Next() {
		var d model.Discount
		if err := rows.Scan(&d.ID, &d.Percent, &d.Active); err != nil {
			return nil, err
		}
		discounts = append(discounts, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return discounts, nil
}

// GetEvent loads one event with its discount.  Returns ErrEventNotFound
// when the event does not exist.
func (r *CatalogRepo) GetEvent(ctx context.Context, eventID uint64) (*model.Event, error) {
	const q = `SELECT e.id, e.name, e.movie_id, e.starts_at, e.ends_at,
                      d.id, d.percent, d.active
               FROM events e
               LEFT JOIN discounts d ON d.event_id = e.id
               WHERE e.id = ?`
	var ev model.Event
	var dID sql.NullInt64
	var dPercent sql.NullInt64
	var dActive sql.NullBool
	err := r.db.QueryRowContext(ctx, q, eventID).Scan(
		&ev.ID, &ev.Name, &ev.MovieID, &ev.StartsAt, &ev.EndsAt, &dID, &dPercent, &dActive,
	)
	if err == sql.ErrNoRows {
		return nil, ErrEventNotFound
	}
	if err != nil {
		return nil, err
	}
	if dID.Valid {
		ev.Discount = &model.Discount{ID: uint64(dID.Int64), Percent: int(dPercent.Int64), Active: dActive.Bool}
	}
	return &ev, nil
}
