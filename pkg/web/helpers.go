// Package web provides shared HTTP helpers and middleware.
package web

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"strings"

	"github.com/go-chi/chi/v5"
)

// idPattern is the identifier shape accepted at the HTTP boundary.
var idPattern = regexp.MustCompile(`^[A-Za-z0-9]+$`)

func RespondJSON(w http.ResponseWriter, logger *slog.Logger, status int, payload any) {
	// Handle nil payload
	if payload == nil {
		w.WriteHeader(status)
		return
	}

	response, err := json.Marshal(payload)
	if err != nil {
		logger.Error("Error encoding response to JSON", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(response)
}

func RespondError(w http.ResponseWriter, logger *slog.Logger, status int, message string) {
	RespondJSON(w, logger, status, map[string]string{"error": message})
}

// ParseID extracts the alphanumeric ID from the request path.
// Returns the trimmed ID and a boolean indicating success.
func ParseID(w http.ResponseWriter, r *http.Request, logger *slog.Logger) (string, bool) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if !idPattern.MatchString(id) {
		RespondError(w, logger, http.StatusBadRequest, fmt.Sprintf("Invalid ID: %s", id))
		return "", false
	}
	return id, true
}
