// internal/view/engine_test.go
//
// Unit-tests for theme-scoped engine parsing, layout wrapping, and
// engine caching.
package view

import (
	"bytes"
	"html/template"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeTheme lays out a minimal theme on disk.
func writeTheme(t *testing.T, root, key string, files map[string]string) {
	t.Helper()
	for rel, src := range files {
		full := filepath.Join(root, key, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(full, []byte(src), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestRenderWithLayout(t *testing.T) {
	root := t.TempDir()
	writeTheme(t, root, "classic", map[string]string{
		"layout.html":     `<html><body>{{.Content}}</body></html>`,
		"pages/home.html": `<h1>{{.Title}}</h1>`,
	})

	r := NewRenderer(root, nil)
	var buf bytes.Buffer
	err := r.Render(&buf, "classic", "classic/pages/home", "classic/layout",
		map[string]any{"Title": "Jane"})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	got := buf.String()
	if !strings.Contains(got, "<body><h1>Jane</h1></body>") {
		t.Errorf("layout did not wrap page: %s", got)
	}
}

func TestRenderWithoutLayout(t *testing.T) {
	root := t.TempDir()
	writeTheme(t, root, "minimal", map[string]string{
		"pages/about.html": `<p>standalone</p>`,
	})

	r := NewRenderer(root, nil)
	var buf bytes.Buffer
	err := r.Render(&buf, "minimal", "minimal/pages/about", "minimal/layout", map[string]any{})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if buf.String() != "<p>standalone</p>" {
		t.Errorf("got %q", buf.String())
	}
}

func TestRenderMissingTemplateFails(t *testing.T) {
	root := t.TempDir()
	writeTheme(t, root, "noir", map[string]string{
		"pages/home.html": `x`,
	})

	r := NewRenderer(root, nil)
	var buf bytes.Buffer
	err := r.Render(&buf, "noir", "noir/pages/rates", "noir/layout", map[string]any{})
	if err == nil {
		t.Fatal("want error for missing template")
	}
}

func TestSharedPartials(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "shared"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "shared", "nav.html"),
		[]byte(`<nav>menu</nav>`), 0o644); err != nil {
		t.Fatal(err)
	}
	writeTheme(t, root, "classic", map[string]string{
		"pages/home.html": `{{template "shared/nav.html" .}}<main></main>`,
	})

	r := NewRenderer(root, []string{"shared"})
	var buf bytes.Buffer
	if err := r.Render(&buf, "classic", "classic/pages/home", "", map[string]any{}); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(buf.String(), "<nav>menu</nav>") {
		t.Errorf("partial not rendered: %q", buf.String())
	}
}

func TestEngineCached(t *testing.T) {
	root := t.TempDir()
	writeTheme(t, root, "classic", map[string]string{
		"pages/home.html": `v1`,
	})

	r := NewRenderer(root, nil)
	var buf bytes.Buffer
	if err := r.Render(&buf, "classic", "classic/pages/home", "", map[string]any{}); err != nil {
		t.Fatal(err)
	}

	// Mutate the file on disk; the cached engine must keep serving the
	// parsed version.
	writeTheme(t, root, "classic", map[string]string{
		"pages/home.html": `v2`,
	})
	buf.Reset()
	if err := r.Render(&buf, "classic", "classic/pages/home", "", map[string]any{}); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "v1" {
		t.Errorf("engine not cached: got %q", buf.String())
	}
}

func TestCSSVarsDeterministic(t *testing.T) {
	fm := FuncMap()
	cssVars, ok := fm["cssVars"].(func(map[string]string) template.CSS)
	if !ok {
		t.Fatal("cssVars helper missing")
	}
	got := string(cssVars(map[string]string{"text": "#1F2937", "primary": "#3B82F6"}))
	want := ":root{--color-primary:#3B82F6;--color-text:#1F2937;}"
	if got != want {
		t.Errorf("cssVars = %q, want %q", got, want)
	}
}
