// internal/gallery/composer_test.go
//
// Unit-tests for carousel geometry, markup composition, and the
// fallback-to-all section invariant.
package gallery

import (
	"context"
	"regexp"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
)

func strPtr(s string) *string { return &s }

func TestCarouselGeometry(t *testing.T) {
	g := Geometry(7, 3)

	if g.DotCount != 3 {
		t.Errorf("dot count = %d, want 3", g.DotCount)
	}
	if got := g.DotSlideIndex(g.DotCount - 1); got != 6 {
		t.Errorf("last dot slide index = %d, want 6", got)
	}
	if want := itemWidth*3 + itemGap*2; g.ViewportWidth != want {
		t.Errorf("viewport = %d, want %d", g.ViewportWidth, want)
	}
	if want := itemWidth*7 + itemGap*6; g.TrackWidth != want {
		t.Errorf("track = %d, want %d", g.TrackWidth, want)
	}
}

func TestGeometryClampsVisibleItems(t *testing.T) {
	g := Geometry(4, 0)
	if g.VisibleItems != 1 {
		t.Errorf("visible items = %d, want clamp to 1", g.VisibleItems)
	}
	if g.DotCount != 4 {
		t.Errorf("dot count = %d, want 4", g.DotCount)
	}
}

func TestComposeCarouselMarkup(t *testing.T) {
	s := Section{
		ID:             1,
		Title:          "Portraits",
		LayoutType:     LayoutCarousel,
		LayoutSettings: []byte(`{"visible_items":2,"show_dots":true}`),
	}
	images := []Image{
		{Filename: "a.jpg", Caption: strPtr("First")},
		{Filename: "b.jpg", AltText: strPtr("Second alt")},
		{Filename: "c.jpg"},
	}

	rs := Compose(s, images)
	html := string(rs.HTML)

	if rs.ImageCount != 3 || rs.LayoutType != LayoutCarousel {
		t.Fatalf("metadata wrong: %+v", rs)
	}
	if !strings.Contains(html, `data-visible="2"`) {
		t.Error("visible item count not emitted")
	}
	// ceil(3/2) = 2 dots, second dot addressing slide 2.
	if got := strings.Count(html, "carousel-dot"); got != 3 { // container + 2 buttons
		t.Errorf("dot markup count = %d, want 3", got)
	}
	if !strings.Contains(html, `data-slide="2"`) {
		t.Error("second dot should address slide 2")
	}
	// Caption fallback chain: caption, then alt, then generic label.
	for _, want := range []string{
		"<figcaption>First</figcaption>",
		"<figcaption>Second alt</figcaption>",
		"<figcaption>Gallery image</figcaption>",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("missing %s", want)
		}
	}
	if !strings.Contains(html, "window.atelierLightbox||window.glamourLightbox||window.openLightbox") {
		t.Error("lightbox candidates not wired in preference order")
	}
}

func TestComposeCarouselBadSettingsDegrade(t *testing.T) {
	s := Section{
		ID:             2,
		LayoutType:     LayoutCarousel,
		LayoutSettings: []byte(`{not json`),
	}
	rs := Compose(s, []Image{{Filename: "x.jpg"}})
	if !strings.Contains(string(rs.HTML), `data-visible="1"`) {
		t.Error("bad settings should fall back to one visible item")
	}
}

func TestComposeGridEmitsOneBlockPerImage(t *testing.T) {
	s := Section{ID: 3, LayoutType: LayoutGrid}
	rs := Compose(s, []Image{{Filename: "a.jpg"}, {Filename: "b.jpg"}})

	html := string(rs.HTML)
	if got := strings.Count(html, "<figure"); got != 2 {
		t.Errorf("figure count = %d, want 2", got)
	}
	if strings.Contains(html, "carousel") {
		t.Error("grid layout must not emit carousel scaffolding")
	}
}

func TestResolveSectionsFallsBackToAllVisible(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	sdb := sqlx.NewDb(db, "sqlmock")

	// No explicit selection rows.
	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT section_id FROM model_gallery_pages`,
	)).WillReturnRows(sqlmock.NewRows([]string{"section_id"}))

	// All visible sections, ordered by sort order then id.
	mock.ExpectQuery(`SELECT .* FROM\s+gallery_sections`).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "model_id", "title", "description", "layout_type",
			"layout_settings", "visible", "sort_order",
		}).
			AddRow(5, 1, "B", nil, "grid", nil, true, 1).
			AddRow(9, 1, "A", nil, "grid", nil, true, 2))

	sections, err := resolveSections(context.Background(), sdb, 1)
	if err != nil {
		t.Fatalf("resolveSections: %v", err)
	}
	if len(sections) != 2 || sections[0].ID != 5 || sections[1].ID != 9 {
		t.Fatalf("unexpected sections: %+v", sections)
	}
}
