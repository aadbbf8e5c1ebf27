package gameitems

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
)

const ResourcePath = "/api/game-items"

type apiHandler struct {
	lister Lister
	logger zerolog.Logger
}

type errorBody struct {
	Error string `json:"error"`
}

// NewAPIHandler serves the catalog as a JSON array.
func NewAPIHandler(lister Lister, logger zerolog.Logger) http.Handler {
	return &apiHandler{lister: lister, logger: logger}
}

func (h *apiHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", strings.Join([]string{http.MethodGet, http.MethodHead}, ", "))
		writeJSON(w, http.StatusMethodNotAllowed, errorBody{Error: "method not allowed"})
		return
	}

	items, err := h.lister.List(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Str("path", r.URL.Path).Msg("list game items failed")
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "game items unavailable"})
		return
	}
	if items == nil {
		items = []GameItem{}
	}

	if r.Method == http.MethodHead {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	body, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
