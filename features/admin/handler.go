// Package admin exposes operational endpoints: health and corpus reload.
package admin

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"fsebot/internal/corpus"
)

type Handler struct {
	holder   *corpus.Holder
	reloader *corpus.Reloader
}

func NewHandler(holder *corpus.Holder, reloader *corpus.Reloader) *Handler {
	return &Handler{holder: holder, reloader: reloader}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	resp := map[string]interface{}{
		"status":            "ok",
		"embeddings_loaded": h.holder.Load().Len(),
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode health response", "error", err)
	}
}

func (h *Handler) Reload(w http.ResponseWriter, r *http.Request) {
	n, err := h.reloader.Reload(r.Context())
	w.Header().Set("Content-Type", "application/json")
	if err != nil {
		slog.Error("corpus reload failed", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"status": "error",
			"error":  err.Error(),
		})
		return
	}

	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"status":            "success",
		"embeddings_loaded": n,
	})
}
