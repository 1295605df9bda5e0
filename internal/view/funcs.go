// internal/view/funcs.go
//
// Template function map shared by every theme engine.
package view

import (
	"html/template"
	"sort"
	"strings"

	"github.com/atelier-sites/atelier/internal/requestinfo"
)

// FuncMap returns the global helper set: a dict builder, style helpers
// for the color token map, and UA helpers keyed off *RequestInfo.
func FuncMap() template.FuncMap {
	return template.FuncMap{
		// {{ dict "k" 1 "k2" "v" }}
		"dict": func(kv ...any) map[string]any {
			m := make(map[string]any, len(kv)/2)
			for i := 0; i+1 < len(kv); i += 2 {
				key, _ := kv[i].(string)
				m[key] = kv[i+1]
			}
			return m
		},

		// {{ cssVars .Colors }} → CSS custom-property block for <style>.
		"cssVars": func(tokens map[string]string) template.CSS {
			var b strings.Builder
			b.WriteString(":root{")
			for _, name := range sortedKeys(tokens) {
				b.WriteString("--color-")
				b.WriteString(name)
				b.WriteString(":")
				b.WriteString(tokens[name])
				b.WriteString(";")
			}
			b.WriteString("}")
			return template.CSS(b.String())
		},

		// UA helpers
		"browser": func(i *requestinfo.RequestInfo) string {
			if i == nil {
				return ""
			}
			return i.UA.Browser
		},
		"device": func(i *requestinfo.RequestInfo) string {
			if i == nil {
				return ""
			}
			return i.UA.Device
		},
		"isBot": func(i *requestinfo.RequestInfo) bool {
			return i != nil && i.UA.IsBot
		},
	}
}

// sortedKeys keeps cssVars output deterministic for tests and caching.
func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
