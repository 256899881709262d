package server

import (
	"embed"
	"net/http"

	"github.com/gorilla/mux"
)

//go:embed form.html
var formFS embed.FS

// NewRouter builds the HTTP routing table: the form page on GET / and
// the consolidation endpoint on POST /api/consolidate. Known paths hit
// with any other method get a JSON 405.
func NewRouter(h *Handler) *mux.Router {
	r := mux.NewRouter()
	r.MethodNotAllowedHandler = http.HandlerFunc(MethodNotAllowed)

	r.HandleFunc("/", serveForm).Methods(http.MethodGet)
	r.HandleFunc("/api/consolidate", h.Consolidate).Methods(http.MethodPost)

	return r
}

func serveForm(w http.ResponseWriter, _ *http.Request) {
	page, err := formFS.ReadFile("form.html")
	if err != nil {
		http.Error(w, "form unavailable", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(page)
}
