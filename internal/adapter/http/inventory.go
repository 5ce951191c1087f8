package httpadapter

import (
	"errors"
	"log/slog"
	"net/http"

	"adpilot/internal/core/port"
)

type enqueueResponse struct {
	InventoryID int64 `json:"inventory_id"`
	Queued      bool  `json:"queued"`
}

// handleInventoryCreated is called by the inventory CRUD layer after a
// record was created. It queues the record's budget share for the debounced
// drain: HTTP 202 when queued, 200 when ignored (inactive, duplicate or
// unmanaged campaign) and 404 for unknown records.
func (h *Handler) handleInventoryCreated(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	queued, err := h.svc.EnqueueInventory(r.Context(), id)
	switch {
	case errors.Is(err, port.ErrInventoryNotFound), errors.Is(err, port.ErrCampaignNotFound):
		http.NotFound(w, r)
		return
	case err != nil:
		h.logger.Error("enqueue inventory error", slog.Int64("inventory_id", id), slog.Any("error", err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	status := http.StatusOK
	if queued {
		status = http.StatusAccepted
	}
	h.writeJSON(w, status, enqueueResponse{InventoryID: id, Queued: queued})
}
