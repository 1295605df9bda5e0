// internal/content/home.go
//
// Home page loader: primary row plus auxiliary collections.
//
// Context
// -------
// The home page aggregates featured testimonials, services, recent
// gallery images, and upcoming availability.  Each auxiliary load is
// independently fault-tolerant — a failure loading testimonials must
// not abort loading services — so every block is fetched behind its
// own error boundary and simply omitted on failure.
package content

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/atelier-sites/atelier/internal/metrics"
	"github.com/atelier-sites/atelier/internal/page"
	"github.com/atelier-sites/atelier/internal/tenant"
)

// Testimonial is one featured quote for the home page.
type Testimonial struct {
	Author string `db:"author"`
	Quote  string `db:"quote"`
}

// Service is one visible service/rate teaser row.
type Service struct {
	Title       string  `db:"title"`
	Description *string `db:"description"`
}

// RecentImage is one recent gallery image teaser.
type RecentImage struct {
	Filename string  `db:"filename"`
	Caption  *string `db:"caption"`
}

// AvailabilityEvent is one upcoming touring/availability entry.
type AvailabilityEvent struct {
	StartsAt time.Time `db:"starts_at"`
	City     string    `db:"city"`
	Note     *string   `db:"note"`
}

func (l *Loader) loadHome(ctx context.Context, ten *tenant.Record) map[string]any {
	m, _ := l.primary(ctx, page.Home, ten.ID)
	l.resolvePortrait(ctx, ten.ID, m)

	if rows, ok := l.auxiliary(ctx, "testimonials", func() (any, error) {
		var t []Testimonial
		err := l.DB.SelectContext(ctx, &t, `
            SELECT author, quote
            FROM   testimonials
            WHERE  model_id = ? AND featured = 1
            ORDER  BY sort_order, id
            LIMIT  10`, ten.ID)
		return t, err
	}); ok {
		m["testimonials"] = rows
	}

	if rows, ok := l.auxiliary(ctx, "services", func() (any, error) {
		var s []Service
		err := l.DB.SelectContext(ctx, &s, `
            SELECT title, description
            FROM   services
            WHERE  model_id = ? AND visible = 1
            ORDER  BY sort_order, id
            LIMIT  10`, ten.ID)
		return s, err
	}); ok {
		m["services"] = rows
	}

	if rows, ok := l.auxiliary(ctx, "recent_images", func() (any, error) {
		var im []RecentImage
		err := l.DB.SelectContext(ctx, &im, `
            SELECT gi.filename, gi.caption
            FROM   gallery_images gi
            JOIN   gallery_sections gs ON gs.id = gi.section_id
            WHERE  gs.model_id = ? AND gs.visible = 1
              AND  gi.active = 1
              AND  (gi.moderation_status IS NULL OR gi.moderation_status IN ('', 'approved'))
            ORDER  BY gi.id DESC
            LIMIT  5`, ten.ID)
		return im, err
	}); ok {
		m["recent_images"] = rows
	}

	if rows, ok := l.auxiliary(ctx, "upcoming_events", func() (any, error) {
		var ev []AvailabilityEvent
		err := l.DB.SelectContext(ctx, &ev, `
            SELECT starts_at, city, note
            FROM   availability_events
            WHERE  model_id = ? AND starts_at >= NOW()
            ORDER  BY starts_at
            LIMIT  ?`, ten.ID, ten.UpcomingEventCount())
		return ev, err
	}); ok {
		m["upcoming_events"] = rows
	}

	return m
}

// auxiliary runs one best-effort load.  Failures are logged and
// counted, and the block is omitted.
func (l *Loader) auxiliary(_ context.Context, name string, fetch func() (any, error)) (any, bool) {
	rows, err := fetch()
	if err != nil {
		zap.S().Warnw("auxiliary content unavailable, omitting",
			"block", name, "err", err)
		metrics.ContentDegradedTotal.Inc()
		return nil, false
	}
	return rows, true
}
