// internal/content/rows.go
//
// Loose row scanning helpers.
//
// Context
// -------
// Page content is a loosely-typed record keyed by content fields, so
// the primary loaders scan whole rows into maps instead of structs.
// MySQL returns text columns as []byte through the generic interface;
// normalize scrubs those into strings so templates and JSON encoding
// see plain values.
package content

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// errNoRow distinguishes "no content yet" from storage failure.
var errNoRow = errors.New("content: no row")

// primaryRow fetches the single (tenant, pageType) content row as a
// map.  Returns errNoRow when the row does not exist yet.
func primaryRow(ctx context.Context, db *sqlx.DB, table string, modelID uint64) (map[string]any, error) {
	q := fmt.Sprintf(`SELECT * FROM %s WHERE model_id = ? LIMIT 1`, table)

	rows, err := db.QueryxContext(ctx, q, modelID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, errNoRow
	}

	m := map[string]any{}
	if err := rows.MapScan(m); err != nil {
		return nil, err
	}
	return normalize(m), nil
}

// queryMaps runs an arbitrary query and scans every row into a
// normalized map.
func queryMaps(ctx context.Context, db *sqlx.DB, q string, args ...any) ([]map[string]any, error) {
	rows, err := db.QueryxContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []map[string]any
	for rows.Next() {
		m := map[string]any{}
		if err := rows.MapScan(m); err != nil {
			return nil, err
		}
		out = append(out, normalize(m))
	}
	return out, rows.Err()
}

// normalize converts driver byte slices and sql null wrappers into
// plain strings for template consumption.
func normalize(m map[string]any) map[string]any {
	for k, v := range m {
		switch t := v.(type) {
		case []byte:
			m[k] = string(t)
		case sql.RawBytes:
			m[k] = string(t)
		}
	}
	return m
}

// stringField reads a normalized map field as a string, empty when
// absent or non-string.
func stringField(m map[string]any, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}
