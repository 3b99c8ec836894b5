package pages

import (
	"net/http"
	"path/filepath"
)

// Handler serves the static HTML shells. Which of them sit behind the
// session guard is decided where the routes are registered.
type Handler struct {
	Dir string
}

func (h *Handler) Serve(name string) http.HandlerFunc {
	path := filepath.Join(h.Dir, name)
	return func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, path)
	}
}

// FileServer serves /static/* assets.
func (h *Handler) FileServer() http.Handler {
	return http.StripPrefix("/static/", http.FileServer(http.Dir(h.Dir)))
}
