// internal/gallery/repository.go
//
// Query helpers for gallery sections, per-page selections, and images.
package gallery

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
)

// maxSections bounds one gallery render so a runaway selection cannot
// fan out without limit.
const maxSections = 50

const sectionColumns = `id, model_id, title, description, layout_type,
       layout_settings, visible, sort_order`

// SelectedSectionIDs returns the tenant's explicit section selection
// for the gallery page, in selection order.  Empty means "no explicit
// selection" and callers fall back to all visible sections.
func SelectedSectionIDs(ctx context.Context, db *sqlx.DB, modelID uint64) ([]uint64, error) {
	const q = `
        SELECT section_id
        FROM   model_gallery_pages
        WHERE  model_id = ?
        ORDER  BY sort_order, section_id`
	var ids []uint64
	if err := db.SelectContext(ctx, &ids, q, modelID); err != nil {
		return nil, err
	}
	return ids, nil
}

// VisibleSections returns every visible section for the tenant,
// ordered by sort order then id.
func VisibleSections(ctx context.Context, db *sqlx.DB, modelID uint64) ([]Section, error) {
	q := fmt.Sprintf(`
        SELECT %s
        FROM   gallery_sections
        WHERE  model_id = ? AND visible = 1
        ORDER  BY sort_order, id
        LIMIT  %d`, sectionColumns, maxSections)
	var rows []Section
	if err := db.SelectContext(ctx, &rows, q, modelID); err != nil {
		return nil, err
	}
	return rows, nil
}

// SectionsByIDs fetches the named sections (visible only) and returns
// them in the order of ids, dropping any id that did not resolve.
func SectionsByIDs(ctx context.Context, db *sqlx.DB, modelID uint64, ids []uint64) ([]Section, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	if len(ids) > maxSections {
		ids = ids[:maxSections]
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, 0, len(ids)+1)
	args = append(args, modelID)
	for _, id := range ids {
		args = append(args, id)
	}

	q := fmt.Sprintf(`
        SELECT %s
        FROM   gallery_sections
        WHERE  model_id = ? AND visible = 1 AND id IN (%s)`,
		sectionColumns, placeholders)

	var rows []Section
	if err := db.SelectContext(ctx, &rows, q, args...); err != nil {
		return nil, err
	}

	byID := make(map[uint64]Section, len(rows))
	for _, s := range rows {
		byID[s.ID] = s
	}
	ordered := make([]Section, 0, len(rows))
	for _, id := range ids {
		if s, ok := byID[id]; ok {
			ordered = append(ordered, s)
		}
	}
	return ordered, nil
}

// ImagesBySection returns a section's active, non-flagged images in
// sort order.
func ImagesBySection(ctx context.Context, db *sqlx.DB, sectionID uint64) ([]Image, error) {
	const q = `
        SELECT id, section_id, filename, caption, alt_text, sort_order
        FROM   gallery_images
        WHERE  section_id = ?
          AND  active = 1
          AND  (moderation_status IS NULL OR moderation_status IN ('', 'approved'))
        ORDER  BY sort_order, id`
	var rows []Image
	if err := db.SelectContext(ctx, &rows, q, sectionID); err != nil {
		return nil, err
	}
	return rows, nil
}
