package httptransport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	credentialmodels "tenure/internal/credential/models"
	id "tenure/pkg/domain"
	"tenure/pkg/platform/httputil"
	"tenure/pkg/requestcontext"
)

// CredentialService defines the credential operations the handler needs.
type CredentialService interface {
	Mint(ctx context.Context, companyID id.CompanyID, employee id.Identity, metadataRef string) (*credentialmodels.Credential, error)
	Get(ctx context.Context, credentialID id.CredentialID) (*credentialmodels.Credential, error)
	ResolveOwner(ctx context.Context, owner id.Identity) (*credentialmodels.Credential, error)
}

// CredentialHandler wires credential endpoints to the credential service.
type CredentialHandler struct {
	service CredentialService
	logger  *slog.Logger
}

// NewCredentialHandler constructs a credential handler.
func NewCredentialHandler(service CredentialService, logger *slog.Logger) *CredentialHandler {
	return &CredentialHandler{service: service, logger: logger}
}

// Register mounts credential endpoints on the router.
func (h *CredentialHandler) Register(r chi.Router) {
	r.Post("/credentials", h.HandleMint)
	r.Get("/credentials/{credentialID}", h.HandleGet)
	r.Get("/identities/{identity}/credential", h.HandleResolveOwner)
}

type mintCredentialRequest struct {
	CompanyID   id.CompanyID `json:"company_id"`
	Employee    string       `json:"employee"`
	MetadataRef string       `json:"metadata_ref"`
}

// HandleMint handles POST /credentials requests.
func (h *CredentialHandler) HandleMint(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.Decode[mintCredentialRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	employee, err := id.ParseIdentity(req.Employee)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	credential, err := h.service.Mint(ctx, req.CompanyID, employee, req.MetadataRef)
	if err != nil {
		h.logger.ErrorContext(ctx, "credential mint failed",
			"request_id", requestID,
			"company_id", req.CompanyID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, credential)
}

// HandleGet handles GET /credentials/{credentialID} requests.
func (h *CredentialHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	credentialID, err := id.ParseCredentialID(chi.URLParam(r, "credentialID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	credential, err := h.service.Get(ctx, credentialID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, credential)
}

// HandleResolveOwner handles GET /identities/{identity}/credential requests.
func (h *CredentialHandler) HandleResolveOwner(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	owner, err := id.ParseIdentity(chi.URLParam(r, "identity"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	credential, err := h.service.ResolveOwner(ctx, owner)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, credential)
}
