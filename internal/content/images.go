// internal/content/images.go
//
// Image-reference resolution for content fields.
//
// Context
// -------
// Content rows may reference an image by id (e.g. the home page
// portrait).  The reference is resolved to a public URL only when the
// image exists, belongs to the same tenant, is active, and is not in a
// non-approved moderation state.  Anything else simply omits the URL
// field — never an error.
package content

import (
	"context"
	"strconv"

	"github.com/jmoiron/sqlx"
)

// resolvePortrait turns a portrait_image_id field into portrait_url
// when the reference checks out.
func (l *Loader) resolvePortrait(ctx context.Context, modelID uint64, m map[string]any) {
	var id uint64
	switch raw := m["portrait_image_id"].(type) {
	case string:
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return
		}
		id = parsed
	case int64:
		if raw <= 0 {
			return
		}
		id = uint64(raw)
	default:
		return
	}
	if url, ok := imageURL(ctx, l.DB, modelID, id); ok {
		m["portrait_url"] = url
	}
}

// imageURL validates one model_images reference and builds its public
// URL.  All failure modes return ok = false.
func imageURL(ctx context.Context, db *sqlx.DB, modelID, imageID uint64) (string, bool) {
	const q = `
        SELECT filename
        FROM   model_images
        WHERE  id = ? AND model_id = ?
          AND  active = 1
          AND  (moderation_status IS NULL OR moderation_status IN ('', 'approved'))
        LIMIT  1`
	var filename string
	if err := db.GetContext(ctx, &filename, q, imageID, modelID); err != nil {
		return "", false
	}
	return "/media/" + filename, true
}
