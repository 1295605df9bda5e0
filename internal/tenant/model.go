// internal/tenant/model.go
//
// Tenant row structures.
//
// Context
// -------
// A tenant ("model") owns one slug-addressed published site.  Rows are
// created by onboarding, which this engine never touches; everything
// here is read-only.  Lifecycle status gates serving: only the three
// known statuses are addressable, and anything else (or a missing row)
// is a 404 at the access gate.
package tenant

import "time"

// Statuses that may serve a site.  Order is not significant.
const (
	StatusActive   = "active"
	StatusTrial    = "trial"
	StatusInactive = "inactive"
)

// Record mirrors one row in the persistent `models` table.
type Record struct {
	ID              uint64    `db:"id"`
	Slug            string    `db:"slug"`
	DisplayName     string    `db:"display_name"`
	Email           string    `db:"email"`
	Status          string    `db:"status"`
	ThemeID         *uint64   `db:"theme_id"`
	PaletteID       *uint64   `db:"palette_id"`
	CalendarEnabled bool      `db:"calendar_enabled"`
	UpcomingEvents  *int      `db:"upcoming_events"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

// UpcomingEventCount returns the configured number of upcoming
// availability events for the home page, defaulting to 3.
func (r *Record) UpcomingEventCount() int {
	if r.UpcomingEvents != nil && *r.UpcomingEvents > 0 {
		return *r.UpcomingEvents
	}
	return 3
}
