package booknotes

import (
	"embed"
	"net/http"
)

// The rendered pages are intentionally minimal; the product surface of this
// application is the JSON API, and the admin pages only need to carry the
// two forms and their flash messages.

//go:embed templates/*.html
var templatesFS embed.FS

type pageData struct {
	Flashes []string
}

func (a *App) render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := a.tmpl.ExecuteTemplate(w, name, data); err != nil {
		a.logger.Error().Err(err).Str("template", name).Msg("template rendering failed")
	}
}
