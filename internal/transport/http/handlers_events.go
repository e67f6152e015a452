package httptransport

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"tenure/internal/events"
	id "tenure/pkg/domain"
	"tenure/pkg/platform/httputil"
)

// EventLog exposes the queryable side of the lifecycle event log.
type EventLog interface {
	ListByContract(ctx context.Context, contractID id.ContractID) ([]events.Event, error)
}

// EventsHandler serves the per-contract event history.
type EventsHandler struct {
	log EventLog
}

// NewEventsHandler constructs an events handler.
func NewEventsHandler(log EventLog) *EventsHandler {
	return &EventsHandler{log: log}
}

// Register mounts the event history endpoint on the router.
func (h *EventsHandler) Register(r chi.Router) {
	r.Get("/contracts/{contractID}/events", h.HandleList)
}

// HandleList handles GET /contracts/{contractID}/events requests.
func (h *EventsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	contractID, err := id.ParseContractID(chi.URLParam(r, "contractID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	history, err := h.log.ListByContract(ctx, contractID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if history == nil {
		history = []events.Event{}
	}
	httputil.WriteJSON(w, http.StatusOK, history)
}
