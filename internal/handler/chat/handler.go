// Package chat exposes the conversation endpoints.
package chat

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/hustlesynth/synth-backend/internal/metrics"
	"github.com/hustlesynth/synth-backend/internal/model/chat"
	"github.com/hustlesynth/synth-backend/internal/provider"
	chatservice "github.com/hustlesynth/synth-backend/internal/service/chat"
	"github.com/hustlesynth/synth-backend/pkg/utils"
)

// errUpstream is the stable client-facing message for any provider
// failure. The real cause is logged, never returned.
const errUpstream = "assistant is temporarily unavailable"

// Handler serves the chat HTTP surface.
type Handler struct {
	svc    *chatservice.Service
	logger zerolog.Logger
}

// New creates the chat handler.
func New(svc *chatservice.Service, logger zerolog.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// RegisterRoutes mounts the chat endpoints on r.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/chat", h.handleChat)
	r.Post("/chat/session", h.handleNewSession)
	r.Get("/chat/{sessionID}", h.handleHistory)
	r.Delete("/chat/{sessionID}", h.handleClear)
}

// handleChat runs one conversational turn. The session id travels in the
// request and response bodies: clients echo the id they were last issued
// and omit it to start a new conversation.
func (h *Handler) handleChat(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Message   string `json:"message"`
		SessionID string `json:"sessionId"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		metrics.ChatRequests.WithLabelValues("validation").Inc()
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.svc.Handle(r.Context(), payload.Message, payload.SessionID)
	if err != nil {
		h.respondChatError(w, err)
		return
	}

	metrics.ChatRequests.WithLabelValues("ok").Inc()
	utils.RespondJSON(w, http.StatusOK, map[string]string{
		"response":  result.Text,
		"sessionId": result.SessionID,
	})
}

func (h *Handler) respondChatError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, chatservice.ErrEmptyMessage):
		metrics.ChatRequests.WithLabelValues("validation").Inc()
		utils.RespondError(w, http.StatusBadRequest, "message is required")
	case errors.Is(err, provider.ErrUnavailable), errors.Is(err, provider.ErrMalformed):
		metrics.ChatRequests.WithLabelValues("upstream_error").Inc()
		h.logger.Error().Err(err).Msg("upstream completion failed")
		utils.RespondError(w, http.StatusBadGateway, errUpstream)
	default:
		metrics.ChatRequests.WithLabelValues("upstream_error").Inc()
		h.logger.Error().Err(err).Msg("chat turn failed")
		utils.RespondError(w, http.StatusInternalServerError, errUpstream)
	}
}

// handleNewSession provisions an empty session for clients that want an
// id before sending a first message.
func (h *Handler) handleNewSession(w http.ResponseWriter, r *http.Request) {
	id := h.svc.NewSession(r.Context())
	utils.RespondJSON(w, http.StatusCreated, map[string]string{"sessionId": id})
}

// handleHistory returns the stored transcript. Unknown sessions yield an
// empty list, not an error.
func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	messages := h.svc.History(r.Context(), sessionID)
	if messages == nil {
		messages = []chat.Message{}
	}

	utils.RespondJSON(w, http.StatusOK, map[string]any{"messages": messages})
}

// handleClear deletes the session. Always reports success, even when the
// session was already gone.
func (h *Handler) handleClear(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	h.svc.Clear(r.Context(), sessionID)
	utils.RespondJSON(w, http.StatusOK, map[string]bool{"success": true})
}
