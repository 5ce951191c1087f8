package httpadapter

import (
	"errors"
	"log/slog"
	"net/http"

	"adpilot/internal/core/port"
)

// handleCampaignStatus returns the operator snapshot of one campaign: its
// display state, cached external budget and spend, the last controller
// action and the last error. Unknown campaigns result in HTTP 404.
func (h *Handler) handleCampaignStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	st, err := h.svc.Status(r.Context(), id)
	if errors.Is(err, port.ErrCampaignNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		h.logger.Error("campaign status error", slog.Int64("campaign_id", id), slog.Any("error", err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	h.writeJSON(w, http.StatusOK, st)
}
