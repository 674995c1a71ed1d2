package model

import "time"

type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Marker is one user's declaration of being unavailable on one calendar
// day. Date is plain YYYY-MM-DD — a calendar day, never an instant.
// Unavailable is the current representation; Available survives from the
// old schema where false meant unavailable. New writes never set Available.
type Marker struct {
	ID          string
	UserID      string
	Date        string
	Available   *bool
	Unavailable *bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// EffectivelyUnavailable folds both generations of the flag into one
// answer: current field true, or legacy field explicitly false.
func (m *Marker) EffectivelyUnavailable() bool {
	if m.Unavailable != nil && *m.Unavailable {
		return true
	}
	return m.Available != nil && !*m.Available
}
