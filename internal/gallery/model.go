// internal/gallery/model.go
//
// Gallery section and image rows.
//
// Context
// -------
// A section owns an ordered list of images and a layout: grid, masonry,
// or carousel.  Carousel behaviour (visible item count, autoplay,
// arrow/dot toggles) lives in a free-form JSON settings column; parsing
// is tolerant because a malformed settings blob must not hide a
// tenant's images.
package gallery

import (
	"encoding/json"

	"go.uber.org/zap"
)

// Layout types.
const (
	LayoutGrid     = "grid"
	LayoutMasonry  = "masonry"
	LayoutCarousel = "carousel"
)

// Section mirrors one row in `gallery_sections`.
type Section struct {
	ID             uint64  `db:"id"`
	ModelID        uint64  `db:"model_id"`
	Title          string  `db:"title"`
	Description    *string `db:"description"`
	LayoutType     string  `db:"layout_type"`
	LayoutSettings []byte  `db:"layout_settings"`
	Visible        bool    `db:"visible"`
	SortOrder      int     `db:"sort_order"`
}

// Image mirrors one row in `gallery_images`.
type Image struct {
	ID        uint64  `db:"id"`
	SectionID uint64  `db:"section_id"`
	Filename  string  `db:"filename"`
	Caption   *string `db:"caption"`
	AltText   *string `db:"alt_text"`
	SortOrder int     `db:"sort_order"`
}

// Settings is the decoded layout_settings payload.
type Settings struct {
	VisibleItems int   `json:"visible_items"`
	Autoplay     bool  `json:"autoplay"`
	ShowArrows   *bool `json:"show_arrows"`
	ShowDots     *bool `json:"show_dots"`
}

// settings decodes the JSON column, degrading to defaults on any parse
// error.  Arrows and dots default to shown when unset.
func (s *Section) settings() Settings {
	var out Settings
	if len(s.LayoutSettings) > 0 {
		if err := json.Unmarshal(s.LayoutSettings, &out); err != nil {
			zap.S().Debugw("bad layout settings, using defaults",
				"section_id", s.ID, "err", err)
			out = Settings{}
		}
	}
	if out.VisibleItems < 1 {
		out.VisibleItems = 1
	}
	return out
}

// arrowsShown / dotsShown default to true when the toggle is unset.
func (st Settings) arrowsShown() bool { return st.ShowArrows == nil || *st.ShowArrows }
func (st Settings) dotsShown() bool   { return st.ShowDots == nil || *st.ShowDots }
