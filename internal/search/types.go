// Package search provides the unified search facade combining the file
// index, the browser cache, and an in-memory application list into one
// ranked result set.
package search

// App is one installed application known to the caller. The application
// list is discovered elsewhere and handed to the facade in memory.
type App struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Path           string   `json:"path"`
	AlternateNames []string `json:"alternate_names,omitempty"`
	Icon           string   `json:"icon,omitempty"`
	UsageCount     int64    `json:"usage_count"`
}

// Result types.
const (
	TypeApp     = "app"
	TypeFile    = "file"
	TypeBrowser = "browser"
)

// Result is one ranked search hit from any source.
type Result struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Subtitle string  `json:"subtitle"`
	Type     string  `json:"type"`
	Score    float64 `json:"score"`
	Path     string  `json:"path"`
	Icon     string  `json:"icon,omitempty"`
}

// Response wraps ranked results with query metadata.
type Response struct {
	Results   []Result `json:"results"`
	Total     int      `json:"total"`
	QueryTime int64    `json:"query_time"` // milliseconds
}

// AppSource supplies the in-memory application list.
type AppSource interface {
	Apps() []App
}

// AppList is a static AppSource.
type AppList []App

// Apps returns the list itself.
func (l AppList) Apps() []App { return l }
