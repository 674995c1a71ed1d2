package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"team-availability-api/internal/model"
)

// MonthMarker is a marker joined with whatever is known about its owner.
// Both fields are nil when the owner row no longer exists.
type MonthMarker struct {
	model.Marker
	OwnerName  *string
	OwnerEmail *string
}

// Markers are read with the legacy-compatible predicate: a row counts as
// unavailable when the current flag is set or the old one is explicitly
// false. Both bounds are inclusive; date is fixed-width ISO text, so the
// string comparison in SQL is date-order correct.
const unavailablePredicate = `(a.is_unavailable = true OR a.is_available = false)`

func (s *Store) ListUnavailabilityForRange(ctx context.Context, startDate, endDate string) ([]MonthMarker, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT a.id, a.user_id, a.date, a.is_available, a.is_unavailable,
		        a.created_at, a.updated_at, u.name, u.email
		 FROM availability a
		 LEFT JOIN users u ON u.id = a.user_id
		 WHERE a.date >= $1 AND a.date <= $2
		   AND `+unavailablePredicate, startDate, endDate,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []MonthMarker
	for rows.Next() {
		var m MonthMarker
		if err := rows.Scan(
			&m.ID, &m.UserID, &m.Date, &m.Available, &m.Unavailable,
			&m.CreatedAt, &m.UpdatedAt, &m.OwnerName, &m.OwnerEmail,
		); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (s *Store) ListUserUnavailableDates(ctx context.Context, userID, startDate, endDate string) ([]string, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT a.date FROM availability a
		 WHERE a.user_id = $1
		   AND a.date >= $2 AND a.date <= $3
		   AND `+unavailablePredicate+`
		 ORDER BY a.date`, userID, startDate, endDate,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// ToggleUnavailability flips the (userID, date) marker and reports the
// post-toggle state. The row lock plus the unique (user_id, date) index
// keep two concurrent toggles on the same key from both inserting; the
// loser's upsert converges on the same single unavailable row.
func (s *Store) ToggleUnavailability(ctx context.Context, userID, date string) (bool, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer tx.Rollback(ctx)

	m := model.Marker{}
	err = tx.QueryRow(ctx,
		`SELECT id, is_available, is_unavailable FROM availability
		 WHERE user_id = $1 AND date = $2 FOR UPDATE`, userID, date,
	).Scan(&m.ID, &m.Available, &m.Unavailable)

	if errors.Is(err, pgx.ErrNoRows) {
		_, err = tx.Exec(ctx,
			`INSERT INTO availability (id, user_id, date, is_unavailable)
			 VALUES ($1,$2,$3,true)
			 ON CONFLICT (user_id, date)
			 DO UPDATE SET is_unavailable = true, is_available = NULL, updated_at = NOW()`,
			uuid.New().String(), userID, date,
		)
		if err != nil {
			return false, err
		}
		return true, tx.Commit(ctx)
	}
	if err != nil {
		return false, err
	}

	if m.EffectivelyUnavailable() {
		// toggling off means deleting — absence is the "available" state
		if _, err := tx.Exec(ctx, `DELETE FROM availability WHERE id = $1`, m.ID); err != nil {
			return false, err
		}
		return false, tx.Commit(ctx)
	}

	// row exists but reads as available (old-schema oddity): normalize it
	// onto the current field rather than leaving the legacy one behind
	if _, err := tx.Exec(ctx,
		`UPDATE availability
		 SET is_unavailable = true, is_available = NULL, updated_at = NOW()
		 WHERE id = $1`, m.ID,
	); err != nil {
		return false, err
	}
	return true, tx.Commit(ctx)
}
