// internal/content/rates.go
//
// Rates page loader: primary row plus rate rows grouped by type.
//
// Context
// -------
// Rate rows are grouped into the three known types — incall, outcall,
// extended — each row independently normalized to the template's
// expected key casing.  Rows with an unknown type are dropped rather
// than invent a fourth group.
package content

import (
	"context"

	"go.uber.org/zap"

	"github.com/atelier-sites/atelier/internal/metrics"
	"github.com/atelier-sites/atelier/internal/page"
	"github.com/atelier-sites/atelier/internal/tenant"
)

// rateTypes are the recognised groupings, in display order.
var rateTypes = []string{"incall", "outcall", "extended"}

func (l *Loader) loadRates(ctx context.Context, ten *tenant.Record) map[string]any {
	m, _ := l.primary(ctx, page.Rates, ten.ID)

	rows, err := queryMaps(ctx, l.DB, `
        SELECT rate_type, label, duration, amount
        FROM   rates
        WHERE  model_id = ?
        ORDER  BY sort_order, id`, ten.ID)
	if err != nil {
		zap.S().Warnw("rate rows unavailable, omitting groups",
			"model_id", ten.ID, "err", err)
		metrics.ContentDegradedTotal.Inc()
		return m
	}

	grouped := make(map[string][]map[string]any, len(rateTypes))
	for _, t := range rateTypes {
		grouped[t] = []map[string]any{}
	}
	for _, row := range rows {
		t := stringField(row, "rate_type")
		if _, known := grouped[t]; !known {
			continue
		}
		delete(row, "rate_type")
		grouped[t] = append(grouped[t], row)
	}
	m["rates"] = grouped
	return m
}
