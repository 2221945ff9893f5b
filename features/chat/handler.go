package chat

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"fsebot/internal/middleware"
	"fsebot/internal/vector"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Message   string `json:"message"`
		SessionID string `json:"session_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(r.Context(), w, "VALIDATION_ERROR", err.Error(), http.StatusBadRequest)
		return
	}

	resp, err := h.service.Ask(r.Context(), Request{
		Message:   req.Message,
		SessionID: req.SessionID,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrEmptyMessage):
			h.writeError(r.Context(), w, "VALIDATION_ERROR", "Message is required", http.StatusBadRequest)
		case errors.Is(err, vector.ErrDimensionMismatch):
			slog.Error("retrieval misconfiguration", "error", err)
			h.writeError(r.Context(), w, "INTERNAL_ERROR", "Internal Server Error", http.StatusInternalServerError)
		default:
			slog.Error("chat request failed", "error", err)
			h.writeError(r.Context(), w, "PROVIDER_ERROR", "Upstream provider failed", http.StatusBadGateway)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	out := map[string]interface{}{
		"response":    resp.Answer,
		"source":      resp.Source,
		"url":         resp.URL,
		"confidence":  resp.Confidence,
		"chunks_used": resp.ChunksUsed,
	}
	if resp.MessageID != "" {
		out["message_id"] = resp.MessageID
	}
	if err := json.NewEncoder(w).Encode(out); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) writeError(ctx context.Context, w http.ResponseWriter, code, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := map[string]interface{}{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
		"correlationId": middleware.GetCorrelationID(ctx),
	}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode error response", "error", err)
	}
}
