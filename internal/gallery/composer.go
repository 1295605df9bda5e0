// internal/gallery/composer.go
//
// Gallery composition: section + image rows → renderable markup and
// carousel geometry.
//
// Context
// -------
// The composer is theme-renderer-agnostic: it emits HTML fragments plus
// structured metadata (image counts, layout type) and lets the theme's
// gallery template decide placement.  Carousel geometry is plain math:
//
//	viewport = itemWidth*visible + gap*(visible-1)
//	track    = itemWidth*count   + gap*(count-1)
//	dots     = ceil(count / visible), dot i addressing slide i*visible
//
// Image captions fall back to alt text, then to a generic label.  The
// lightbox hook tolerates several theme-specific global callback names;
// whichever is defined in the browser at click time wins, first match
// first.
package gallery

import (
	"context"
	"fmt"
	"html"
	"html/template"
	"strings"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// Fixed carousel metrics, shared with the themes' stylesheets.
const (
	itemWidth = 300 // px
	itemGap   = 16  // px
)

// lightboxCallbacks are the known global lightbox entry points, in
// preference order.  Themes ship one of them.
var lightboxCallbacks = []string{"atelierLightbox", "glamourLightbox", "openLightbox"}

// RenderedSection is one composed section ready for the gallery
// template.
type RenderedSection struct {
	ID          uint64
	Title       string
	Description string
	LayoutType  string
	ImageCount  int
	HTML        template.HTML
}

// CarouselGeometry carries the computed pixel math for one carousel.
type CarouselGeometry struct {
	ViewportWidth int
	TrackWidth    int
	DotCount      int
	VisibleItems  int
}

// Geometry computes carousel math for imageCount images with
// visibleItems per slide.  visibleItems below 1 is clamped to 1.
func Geometry(imageCount, visibleItems int) CarouselGeometry {
	if visibleItems < 1 {
		visibleItems = 1
	}
	g := CarouselGeometry{
		ViewportWidth: itemWidth*visibleItems + itemGap*(visibleItems-1),
		VisibleItems:  visibleItems,
	}
	if imageCount > 0 {
		g.TrackWidth = itemWidth*imageCount + itemGap*(imageCount-1)
		g.DotCount = (imageCount + visibleItems - 1) / visibleItems
	}
	return g
}

// DotSlideIndex returns the slide index a pagination dot addresses.
func (g CarouselGeometry) DotSlideIndex(dot int) int {
	return dot * g.VisibleItems
}

// Load resolves the tenant's gallery: explicit section selection when
// one exists, otherwise all visible sections, each expanded to markup.
// A failure loading one section's images skips that section; it never
// aborts the rest.
func Load(ctx context.Context, db *sqlx.DB, modelID uint64) ([]RenderedSection, error) {
	sections, err := resolveSections(ctx, db, modelID)
	if err != nil {
		return nil, err
	}

	out := make([]RenderedSection, 0, len(sections))
	for _, s := range sections {
		images, err := ImagesBySection(ctx, db, s.ID)
		if err != nil {
			zap.S().Warnw("section images unavailable, skipping section",
				"section_id", s.ID, "err", err)
			continue
		}
		out = append(out, Compose(s, images))
	}
	return out, nil
}

// resolveSections applies the fallback-to-all invariant.
func resolveSections(ctx context.Context, db *sqlx.DB, modelID uint64) ([]Section, error) {
	ids, err := SelectedSectionIDs(ctx, db, modelID)
	if err != nil {
		zap.S().Warnw("section selection unavailable, falling back to all",
			"model_id", modelID, "err", err)
		ids = nil
	}
	if len(ids) > 0 {
		return SectionsByIDs(ctx, db, modelID, ids)
	}
	return VisibleSections(ctx, db, modelID)
}

// Compose renders one section's markup block.
func Compose(s Section, images []Image) RenderedSection {
	rs := RenderedSection{
		ID:         s.ID,
		Title:      s.Title,
		LayoutType: s.LayoutType,
		ImageCount: len(images),
	}
	if s.Description != nil {
		rs.Description = *s.Description
	}

	var b strings.Builder
	switch s.LayoutType {
	case LayoutCarousel:
		composeCarousel(&b, s, images)
	default: // grid and masonry share the per-image block shape
		composeTiles(&b, s.LayoutType, images)
	}
	rs.HTML = template.HTML(b.String())
	return rs
}

func composeTiles(b *strings.Builder, layout string, images []Image) {
	fmt.Fprintf(b, `<div class="gallery-%s">`, html.EscapeString(layout))
	for _, img := range images {
		writeFigure(b, img)
	}
	b.WriteString(`</div>`)
}

func composeCarousel(b *strings.Builder, s Section, images []Image) {
	st := s.settings()
	g := Geometry(len(images), st.VisibleItems)

	fmt.Fprintf(b,
		`<div class="gallery-carousel" data-visible="%d" data-autoplay="%t" style="width:%dpx">`,
		g.VisibleItems, st.Autoplay, g.ViewportWidth)
	fmt.Fprintf(b, `<div class="carousel-track" style="width:%dpx">`, g.TrackWidth)
	for _, img := range images {
		writeFigure(b, img)
	}
	b.WriteString(`</div>`)

	if st.arrowsShown() && len(images) > g.VisibleItems {
		b.WriteString(`<button class="carousel-arrow prev" aria-label="Previous"></button>`)
		b.WriteString(`<button class="carousel-arrow next" aria-label="Next"></button>`)
	}
	if st.dotsShown() && g.DotCount > 1 {
		b.WriteString(`<div class="carousel-dots">`)
		for dot := 0; dot < g.DotCount; dot++ {
			fmt.Fprintf(b, `<button class="carousel-dot" data-slide="%d"></button>`,
				g.DotSlideIndex(dot))
		}
		b.WriteString(`</div>`)
	}
	b.WriteString(`</div>`)
}

// writeFigure emits one image block with the caption fallback chain and
// the lightbox hook.
func writeFigure(b *strings.Builder, img Image) {
	caption := captionFor(img)
	src := "/media/" + html.EscapeString(img.Filename)

	fmt.Fprintf(b, `<figure class="gallery-item" onclick="%s">`, lightboxCall(src))
	fmt.Fprintf(b, `<img src="%s" alt="%s" loading="lazy">`,
		src, html.EscapeString(altFor(img)))
	fmt.Fprintf(b, `<figcaption>%s</figcaption>`, html.EscapeString(caption))
	b.WriteString(`</figure>`)
}

func captionFor(img Image) string {
	if img.Caption != nil && *img.Caption != "" {
		return *img.Caption
	}
	return altFor(img)
}

func altFor(img Image) string {
	if img.AltText != nil && *img.AltText != "" {
		return *img.AltText
	}
	if img.Caption != nil && *img.Caption != "" {
		return *img.Caption
	}
	return "Gallery image"
}

// lightboxCall builds the onclick expression that picks the first
// defined global callback at click time.
func lightboxCall(src string) string {
	parts := make([]string, len(lightboxCallbacks))
	for i, name := range lightboxCallbacks {
		parts[i] = "window." + name
	}
	return "(" + strings.Join(parts, "||") + ")('" + src + "')"
}
