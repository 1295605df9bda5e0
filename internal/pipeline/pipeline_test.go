// internal/pipeline/pipeline_test.go
//
// End-to-end pipeline tests over httptest + sqlmock, with real theme
// templates in a temp directory.
//
// Covered behaviours
// ------------------
//   • Unknown tenant slug            → 404 "site not found"
//   • Unknown page name              → 404, no storage calls
//   • Unpublished page               → 404 naming the page
//   • Preview theme + palette color  → 200 with overridden color and
//     the preview theme's templates, nothing persisted
//   • Navigation filtering and preview parsing helpers
package pipeline

import (
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"

	"github.com/atelier-sites/atelier/internal/page"
	"github.com/atelier-sites/atelier/internal/view"
)

var tenantColumns = []string{
	"id", "slug", "display_name", "email", "status",
	"theme_id", "palette_id", "calendar_enabled", "upcoming_events",
	"created_at", "updated_at",
}

var themeColumns = []string{"id", "name", "display_name", "default_palette_id", "active"}

func newMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "sqlmock"), mock
}

// newTestRenderer lays a "royal" theme on disk whose page template
// surfaces the values the pipeline is expected to thread through.
func newTestRenderer(t *testing.T) *view.Renderer {
	t.Helper()
	root := t.TempDir()
	files := map[string]string{
		"royal/layout.html": `<html><body>{{.Content}}</body></html>`,
		"royal/pages/etiquette.html": `{{.Title}}|{{index .Colors "primary"}}|` +
			`{{index .Body "heading"}}|{{range .Nav}}[{{.Page}}]{{end}}`,
	}
	for rel, src := range files {
		full := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(full, []byte(src), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return view.NewRenderer(root, nil)
}

func serve(t *testing.T, db *sqlx.DB, target string) *httptest.ResponseRecorder {
	t.Helper()
	p := New(db, newTestRenderer(t), "classic")
	rec := httptest.NewRecorder()
	p.Routes().ServeHTTP(rec, httptest.NewRequest("GET", target, nil))
	return rec
}

func expectTenant(mock sqlmock.Sqlmock, slug string) {
	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, slug, display_name`)).
		WithArgs(slug).
		WillReturnRows(sqlmock.NewRows(tenantColumns).
			AddRow(42, slug, "Jane Doe", "jane@example.com", "active",
				nil, nil, false, nil, now, now))
}

func expectPublication(mock sqlmock.Sqlmock, unpublished ...page.Type) {
	hidden := make(map[page.Type]bool, len(unpublished))
	for _, p := range unpublished {
		hidden[p] = true
	}
	for _, p := range page.NavOrder {
		published := 1
		if hidden[p] {
			published = 0
		}
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT published FROM `+p.ContentTable())).
			WithArgs(42).
			WillReturnRows(sqlmock.NewRows([]string{"published"}).AddRow(published))
	}
}

func TestServePageUnknownTenant(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, slug, display_name`)).
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows(tenantColumns))

	rec := serve(t, db, "/ghost")
	if rec.Code != 404 {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "site not found") {
		t.Errorf("body = %q", rec.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestServePageUnknownPageName(t *testing.T) {
	db, mock := newMock(t)

	rec := serve(t, db, "/jane-doe/pricing")
	if rec.Code != 404 {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "page not found") {
		t.Errorf("body = %q", rec.Body.String())
	}
	// No expectations were set: an unknown page name must never reach
	// storage.
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestServePageUnpublished(t *testing.T) {
	db, mock := newMock(t)
	expectTenant(mock, "jane-doe")
	expectPublication(mock, page.Rates)

	rec := serve(t, db, "/jane-doe/rates")
	if rec.Code != 404 {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "rates") {
		t.Errorf("404 body should name the page: %q", rec.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestServePagePreviewThemeAndColor(t *testing.T) {
	db, mock := newMock(t)
	expectTenant(mock, "jane-doe")
	expectPublication(mock)

	// preview_theme=royal-gem resolves by name; its default palette (11)
	// supplies the stored rows.
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, name, display_name, default_palette_id, active FROM themes WHERE name = ?`)).
		WithArgs("royal-gem").
		WillReturnRows(sqlmock.NewRows(themeColumns).
			AddRow(7, "royal-gem", "Royal Gem", 11, true))

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT token, value FROM palette_colors WHERE palette_id = ?`)).
		WithArgs(uint64(11)).
		WillReturnRows(sqlmock.NewRows([]string{"token", "value"}).
			AddRow("primary", "#8A2BE2").
			AddRow("bg", "#0B0B10"))

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM etiquette_content WHERE model_id = ?`)).
		WithArgs(uint64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"model_id", "published", "heading"}).
			AddRow(42, 1, "House rules"))

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT template_path FROM theme_templates WHERE theme_key = ? AND page = ?`)).
		WithArgs("royal", "etiquette").
		WillReturnRows(sqlmock.NewRows([]string{"template_path"}))

	rec := serve(t, db, "/jane-doe/etiquette?preview_theme=royal-gem&palette_primary=%233366FF")
	if rec.Code != 200 {
		t.Fatalf("status = %d, body %q", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()

	// The override wins over the stored palette primary.
	if !strings.Contains(body, "Jane Doe|#3366FF|House rules") {
		t.Errorf("body = %q", body)
	}
	// Calendar is unentitled, so navigation skips it; everything else
	// keeps the fixed order.
	if !strings.Contains(body, "[home][about][gallery][rates][etiquette][contact]") {
		t.Errorf("navigation wrong: %q", body)
	}
	if !strings.Contains(body, "<body>") {
		t.Errorf("layout not applied: %q", body)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q", ct)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestBuildNavigation(t *testing.T) {
	published := map[page.Type]bool{
		page.Home:      true,
		page.About:     false,
		page.Gallery:   true,
		page.Rates:     true,
		page.Etiquette: true,
		page.Calendar:  true,
		page.Contact:   true,
	}

	items := buildNavigation("jane-doe", published, false, page.Rates)

	var got []string
	for _, it := range items {
		got = append(got, string(it.Page))
	}
	want := "home gallery rates etiquette contact"
	if strings.Join(got, " ") != want {
		t.Fatalf("nav order = %q, want %q", strings.Join(got, " "), want)
	}

	if items[0].Path != "/jane-doe" {
		t.Errorf("home path = %q", items[0].Path)
	}
	if items[2].Path != "/jane-doe/rates" {
		t.Errorf("rates path = %q", items[2].Path)
	}
	if !items[2].Active {
		t.Error("current page not marked active")
	}
	if items[0].Active {
		t.Error("non-current page marked active")
	}
}

func TestParsePreview(t *testing.T) {
	q := url.Values{}
	q.Set("preview_theme", "noir")
	q.Set("palette_primary", "#112233")
	q.Set("palette_text", "#445566")
	q.Set("palette_border", "#778899") // not a preview parameter

	p := ParsePreview(q)
	if p.Theme != "noir" {
		t.Errorf("Theme = %q", p.Theme)
	}
	if len(p.Colors) != 2 {
		t.Fatalf("Colors = %v", p.Colors)
	}
	if p.Colors["primary"] != "#112233" || p.Colors["text"] != "#445566" {
		t.Errorf("Colors = %v", p.Colors)
	}

	empty := ParsePreview(url.Values{})
	if empty.Theme != "" || empty.Colors != nil {
		t.Errorf("empty query parsed as %+v", empty)
	}
}
