// internal/pipeline/navigation.go
//
// Site navigation builder.
//
// Context
// -------
// Navigation filters the fixed page order — home, about, gallery,
// rates, etiquette, calendar, contact — down to pages that are both
// published (per the access gate's map) and entitled (calendar flag).
// It never reorders.
package pipeline

import (
	"github.com/atelier-sites/atelier/internal/page"
)

// NavItem is one navigation link for the layout template.
type NavItem struct {
	Page   page.Type
	Label  string
	Path   string
	Active bool
}

func buildNavigation(slug string, published map[page.Type]bool, calendarEnabled bool, current page.Type) []NavItem {
	items := make([]NavItem, 0, len(page.NavOrder))
	for _, p := range page.NavOrder {
		if !published[p] {
			continue
		}
		if p == page.Calendar && !calendarEnabled {
			continue
		}
		path := "/" + slug
		if p != page.Home {
			path += "/" + string(p)
		}
		items = append(items, NavItem{
			Page:   p,
			Label:  page.Labels[p],
			Path:   path,
			Active: p == current,
		})
	}
	return items
}
