// internal/content/gallerypage.go
//
// Gallery page loader: settings row plus composed sections.
package content

import (
	"context"

	"go.uber.org/zap"

	"github.com/atelier-sites/atelier/internal/gallery"
	"github.com/atelier-sites/atelier/internal/metrics"
	"github.com/atelier-sites/atelier/internal/page"
	"github.com/atelier-sites/atelier/internal/tenant"
)

func (l *Loader) loadGallery(ctx context.Context, ten *tenant.Record) map[string]any {
	m, _ := l.primary(ctx, page.Gallery, ten.ID)

	sections, err := gallery.Load(ctx, l.DB, ten.ID)
	if err != nil {
		zap.S().Warnw("gallery sections unavailable, rendering empty gallery",
			"model_id", ten.ID, "err", err)
		metrics.ContentDegradedTotal.Inc()
		sections = nil
	}
	m["sections"] = sections
	return m
}
