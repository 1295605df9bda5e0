// internal/page/page.go
//
// Page-type identifiers shared by the access gate, content loaders, and
// navigation builder.
//
// Context
// -------
// Every tenant site is composed of the same seven pages, each backed by
// its own content table with an independent `published` flag.  The
// display order below is fixed; the navigation builder filters it but
// never reorders it.
package page

// Type names one of the seven site pages.
type Type string

const (
	Home      Type = "home"
	About     Type = "about"
	Gallery   Type = "gallery"
	Rates     Type = "rates"
	Etiquette Type = "etiquette"
	Calendar  Type = "calendar"
	Contact   Type = "contact"
)

// NavOrder is the fixed display order for site navigation.
var NavOrder = []Type{Home, About, Gallery, Rates, Etiquette, Calendar, Contact}

// Labels maps each page to its navigation label.
var Labels = map[Type]string{
	Home:      "Home",
	About:     "About",
	Gallery:   "Gallery",
	Rates:     "Rates",
	Etiquette: "Etiquette",
	Calendar:  "Calendar",
	Contact:   "Contact",
}

// Valid reports whether name is a known page type.
func Valid(name string) bool {
	_, ok := Labels[Type(name)]
	return ok
}

// ContentTable returns the dedicated content table for a page type,
// e.g. "rates_content" for Rates.
func (t Type) ContentTable() string {
	return string(t) + "_content"
}
