package handler

import (
	"net/http"
	"time"

	"github.com/hustlesynth/synth-backend/internal/store"
	"github.com/hustlesynth/synth-backend/pkg/utils"
)

const version = "0.1.0"

// healthResponse is the liveness payload.
type healthResponse struct {
	Status    string `json:"status"`
	Version   string `json:"version"`
	Sessions  int    `json:"sessions"`
	Timestamp string `json:"timestamp"`
}

// health reports process liveness and the live session count. All state
// is in memory, so there are no dependencies to probe.
func health(sessions *store.SessionStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		utils.RespondJSON(w, http.StatusOK, healthResponse{
			Status:    "healthy",
			Version:   version,
			Sessions:  sessions.Len(),
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		})
	}
}
