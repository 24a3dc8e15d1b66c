package models

import "strings"

// Theme carries the presentational choices for the browser page. The page
// template only references these class names, so restyling never touches
// the browsing logic.
type Theme struct {
	Name         string
	Stylesheet   string
	Container    string
	Input        string
	FilterBar    string
	Button       string
	ButtonActive string
	Grid         string
	Card         string
	Error        string
}

var (
	ThemeClassic = Theme{
		Name: "classic",
		Stylesheet: `body{font-family:system-ui,sans-serif;margin:0;padding:1.5rem;background:#fafaf9;color:#262622}
.search{width:100%;padding:.6rem .8rem;font-size:1rem;border:1px solid #d6d3d1;border-radius:.5rem}
.filter-bar{display:flex;flex-wrap:wrap;gap:.4rem;margin:.75rem 0}
.filter-bar h3{width:100%;margin:0;font-size:.8rem;text-transform:uppercase;color:#79776d}
.btn{padding:.3rem .7rem;border:1px solid #d6d3d1;border-radius:999px;background:#fff;color:inherit;text-decoration:none;font-size:.85rem}
.btn.active{background:#262622;color:#fff;border-color:#262622}
.grid{display:grid;grid-template-columns:repeat(auto-fill,minmax(260px,1fr));gap:1rem;margin-top:1rem}
.card{background:#fff;border:1px solid #e7e5e4;border-radius:.75rem;padding:1rem}
.load-error{padding:1rem;border-radius:.5rem;background:#fee2e2;color:#991b1b}`,
		Container:    "browser",
		Input:        "search",
		FilterBar:    "filter-bar",
		Button:       "btn",
		ButtonActive: "btn active",
		Grid:         "grid",
		Card:         "card",
		Error:        "load-error",
	}

	ThemeCompact = Theme{
		Name: "compact",
		Stylesheet: `body{font:14px/1.4 Helvetica,Arial,sans-serif;margin:0;padding:.75rem}
.c-search{width:100%;padding:.3rem;border:1px solid #999}
.c-bar{display:flex;flex-wrap:wrap;gap:.25rem;margin:.4rem 0}
.c-bar h3{width:100%;margin:0;font-size:.75rem}
.c-btn{padding:.1rem .4rem;border:1px solid #999;background:#eee;color:#000;text-decoration:none;font-size:.75rem}
.c-btn.on{background:#1d4ed8;color:#fff;border-color:#1d4ed8}
.c-grid{display:grid;grid-template-columns:repeat(auto-fill,minmax(200px,1fr));gap:.5rem}
.c-card{border:1px solid #ccc;padding:.5rem}
.c-error{color:#b91c1c}`,
		Container:    "c-browser",
		Input:        "c-search",
		FilterBar:    "c-bar",
		Button:       "c-btn",
		ButtonActive: "c-btn on",
		Grid:         "c-grid",
		Card:         "c-card",
		Error:        "c-error",
	}
)

// ThemeByName falls back to the classic theme for unknown names.
func ThemeByName(name string) Theme {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case ThemeCompact.Name:
		return ThemeCompact
	default:
		return ThemeClassic
	}
}
