// internal/view/engine.go
//
// Theme-scoped template engines.
//
// Context
// -------
// Rendering is theme-scoped: each canonical theme key owns one parsed
// *template.Template set covering its pages, its layout, and the shared
// partial directories.  Engines are parsed once and cached in an LRU;
// concurrent first renders of the same theme collapse onto a single
// parse via singleflight.
//
// Template naming
// ---------------
// Files under `<BaseDir>/<themeKey>/` are registered under their path
// relative to the theme directory ("pages/home.html", "layout.html").
// Shared partials are registered under their path relative to BaseDir
// ("shared/nav.html"), so every theme can reference them.
package view

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/atelier-sites/atelier/internal/cache"
	"github.com/atelier-sites/atelier/internal/metrics"
)

// Renderer parses and caches theme engines and executes views.
type Renderer struct {
	BaseDir      string   // themes root, e.g. "<root>/themes"
	PartialsDirs []string // shared partial dirs, relative to BaseDir

	mu  sync.Mutex
	lru *cache.LRU[string, *template.Template]
	sfg singleflight.Group
}

// NewRenderer constructs a Renderer over baseDir.
func NewRenderer(baseDir string, partialsDirs []string) *Renderer {
	return &Renderer{
		BaseDir:      baseDir,
		PartialsDirs: partialsDirs,
		lru:          cache.New[string, *template.Template](32),
	}
}

// Render executes viewPath (and the theme layout when one exists) for
// themeKey, writing HTML to w.  data must be a map so the layout pass
// can inject the rendered page under "Content".
func (r *Renderer) Render(w io.Writer, themeKey, viewPath, layoutPath string, data map[string]any) error {
	t, err := r.engine(themeKey)
	if err != nil {
		return err
	}

	pageName := r.templateName(themeKey, viewPath)
	layoutName := r.templateName(themeKey, layoutPath)

	if t.Lookup(pageName) == nil {
		return fmt.Errorf("view: template %q not found in theme %q", pageName, themeKey)
	}

	// No layout template: the page stands alone.
	if layoutName == "" || t.Lookup(layoutName) == nil {
		return t.ExecuteTemplate(w, pageName, data)
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, pageName, data); err != nil {
		return err
	}
	data["Content"] = template.HTML(buf.String())
	return t.ExecuteTemplate(w, layoutName, data)
}

// Prewarm parses engines for the given theme keys.  Best effort; a
// broken theme is skipped so boot never blocks on one bad template.
func (r *Renderer) Prewarm(themeKeys []string) {
	for _, key := range themeKeys {
		_, _ = r.engine(key)
	}
}

// engine returns the cached template set for themeKey, parsing it on
// first use.
func (r *Renderer) engine(themeKey string) (*template.Template, error) {
	r.mu.Lock()
	if t, ok := r.lru.Get(themeKey); ok {
		r.mu.Unlock()
		return t, nil
	}
	r.mu.Unlock()

	v, err, _ := r.sfg.Do(themeKey, func() (any, error) {
		t, err := r.parse(themeKey)
		if err != nil {
			return nil, err
		}
		r.mu.Lock()
		r.lru.Add(themeKey, t)
		r.mu.Unlock()
		metrics.ThemeEngineBuildTotal.Inc()
		return t, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*template.Template), nil
}

// parse builds one theme's template set: partials first, then the
// theme's own files so a theme may shadow a shared partial name.
func (r *Renderer) parse(themeKey string) (*template.Template, error) {
	themeDir := filepath.Join(r.BaseDir, themeKey)
	if info, err := os.Stat(themeDir); err != nil || !info.IsDir() {
		return nil, fmt.Errorf("view: theme %q not found at %s", themeKey, themeDir)
	}

	t := template.New("").Funcs(FuncMap())

	for _, dir := range r.PartialsDirs {
		abs := filepath.Join(r.BaseDir, dir)
		if err := parseDir(t, abs, r.BaseDir); err != nil {
			return nil, fmt.Errorf("view: parse partials %s: %w", dir, err)
		}
	}
	if err := parseDir(t, themeDir, themeDir); err != nil {
		return nil, fmt.Errorf("view: parse theme %s: %w", themeKey, err)
	}
	return t, nil
}

// parseDir walks dir for *.html files and registers each under its
// path relative to nameRoot.
func parseDir(t *template.Template, dir, nameRoot string) error {
	files, err := collectHTML(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	for _, f := range files {
		rel, err := filepath.Rel(nameRoot, f)
		if err != nil {
			return err
		}
		src, err := os.ReadFile(f)
		if err != nil {
			return err
		}
		if _, err := t.New(filepath.ToSlash(rel)).Parse(string(src)); err != nil {
			return err
		}
	}
	return nil
}

// collectHTML walks rootDir recursively and returns every *.html path.
func collectHTML(rootDir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(rootDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.HasSuffix(strings.ToLower(d.Name()), ".html") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// templateName converts a resolver view path ("glamour/pages/home") to
// the engine's template name ("pages/home.html").  Paths outside the
// theme key pass through with the extension appended.
func (r *Renderer) templateName(themeKey, viewPath string) string {
	if viewPath == "" {
		return ""
	}
	name := strings.TrimPrefix(viewPath, themeKey+"/")
	return name + ".html"
}
