package httptransport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	reviewmodels "tenure/internal/review/models"
	id "tenure/pkg/domain"
	"tenure/pkg/platform/httputil"
	"tenure/pkg/requestcontext"
)

// ReviewService defines the review operations the handler needs.
type ReviewService interface {
	Submit(ctx context.Context, contractID id.ContractID, rating int, comments string) (*reviewmodels.Review, error)
	List(ctx context.Context, contractID id.ContractID) ([]reviewmodels.Review, error)
}

// ReviewHandler wires review endpoints to the review service.
type ReviewHandler struct {
	service ReviewService
	logger  *slog.Logger
}

// NewReviewHandler constructs a review handler.
func NewReviewHandler(service ReviewService, logger *slog.Logger) *ReviewHandler {
	return &ReviewHandler{service: service, logger: logger}
}

// Register mounts review endpoints on the router.
func (h *ReviewHandler) Register(r chi.Router) {
	r.Post("/contracts/{contractID}/reviews", h.HandleSubmit)
	r.Get("/contracts/{contractID}/reviews", h.HandleList)
}

type submitReviewRequest struct {
	Rating   int    `json:"rating"`
	Comments string `json:"comments"`
}

// HandleSubmit handles POST /contracts/{contractID}/reviews requests.
func (h *ReviewHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	contractID, err := id.ParseContractID(chi.URLParam(r, "contractID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := httputil.Decode[submitReviewRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	review, err := h.service.Submit(ctx, contractID, req.Rating, req.Comments)
	if err != nil {
		h.logger.ErrorContext(ctx, "review submission failed",
			"request_id", requestID,
			"contract_id", contractID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, review)
}

// HandleList handles GET /contracts/{contractID}/reviews requests.
func (h *ReviewHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	contractID, err := id.ParseContractID(chi.URLParam(r, "contractID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	reviews, err := h.service.List(ctx, contractID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, reviews)
}
