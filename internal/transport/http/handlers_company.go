package httptransport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	companymodels "tenure/internal/company/models"
	id "tenure/pkg/domain"
	"tenure/pkg/platform/httputil"
	"tenure/pkg/requestcontext"
)

// CompanyService defines the company operations the handler needs.
type CompanyService interface {
	Register(ctx context.Context, name, industry string) (*companymodels.Company, error)
	Get(ctx context.Context, companyID id.CompanyID) (*companymodels.Company, error)
	Stats(ctx context.Context, companyID id.CompanyID) (*companymodels.Stats, error)
}

// CompanyHandler wires company endpoints to the company service.
type CompanyHandler struct {
	service CompanyService
	logger  *slog.Logger
}

// NewCompanyHandler constructs a company handler.
func NewCompanyHandler(service CompanyService, logger *slog.Logger) *CompanyHandler {
	return &CompanyHandler{service: service, logger: logger}
}

// Register mounts company endpoints on the router.
func (h *CompanyHandler) Register(r chi.Router) {
	r.Post("/companies", h.HandleRegister)
	r.Get("/companies/{companyID}", h.HandleGet)
	r.Get("/companies/{companyID}/stats", h.HandleStats)
}

type registerCompanyRequest struct {
	Name     string `json:"name"`
	Industry string `json:"industry"`
}

// HandleRegister handles POST /companies requests.
func (h *CompanyHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.Decode[registerCompanyRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	company, err := h.service.Register(ctx, req.Name, req.Industry)
	if err != nil {
		h.logger.ErrorContext(ctx, "company registration failed",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, company)
}

// HandleGet handles GET /companies/{companyID} requests.
func (h *CompanyHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	companyID, err := id.ParseCompanyID(chi.URLParam(r, "companyID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	company, err := h.service.Get(ctx, companyID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, company)
}

// HandleStats handles GET /companies/{companyID}/stats requests.
func (h *CompanyHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	companyID, err := id.ParseCompanyID(chi.URLParam(r, "companyID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	stats, err := h.service.Stats(ctx, companyID)
	if err != nil {
		h.logger.ErrorContext(ctx, "company stats failed",
			"request_id", requestcontext.RequestID(ctx),
			"company_id", companyID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, stats)
}
