package httptransport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	contractmodels "tenure/internal/contract/models"
	contractservice "tenure/internal/contract/service"
	id "tenure/pkg/domain"
	"tenure/pkg/platform/httputil"
	"tenure/pkg/requestcontext"
)

// ContractService defines the lifecycle operations the handler needs.
type ContractService interface {
	Create(ctx context.Context, req contractservice.CreateRequest) (*contractmodels.Contract, error)
	Execute(ctx context.Context, contractID id.ContractID) (*contractmodels.Contract, error)
	Deposit(ctx context.Context, contractID id.ContractID, amount int64) (*contractmodels.Contract, error)
	Release(ctx context.Context, contractID id.ContractID) (*contractmodels.Contract, error)
	Dispute(ctx context.Context, contractID id.ContractID) (*contractmodels.Contract, error)
	Terminate(ctx context.Context, contractID id.ContractID, reason string) (*contractmodels.Contract, error)
	Complete(ctx context.Context, contractID id.ContractID) (*contractmodels.Contract, error)
	Get(ctx context.Context, contractID id.ContractID) (*contractmodels.Contract, error)
	ListByCompany(ctx context.Context, companyID id.CompanyID) ([]*contractmodels.Contract, error)
	ListByCredential(ctx context.Context, credentialID id.CredentialID) ([]*contractmodels.Contract, error)
}

// DisputeService defines the arbitration operation the handler needs.
type DisputeService interface {
	Resolve(ctx context.Context, contractID id.ContractID, forEmployee bool) (*contractmodels.Contract, error)
}

// ContractHandler wires contract lifecycle endpoints to the contract and
// dispute services.
type ContractHandler struct {
	contracts ContractService
	disputes  DisputeService
	logger    *slog.Logger
}

// NewContractHandler constructs a contract handler.
func NewContractHandler(contracts ContractService, disputes DisputeService, logger *slog.Logger) *ContractHandler {
	return &ContractHandler{contracts: contracts, disputes: disputes, logger: logger}
}

// Register mounts contract endpoints on the router.
func (h *ContractHandler) Register(r chi.Router) {
	r.Post("/contracts", h.HandleCreate)
	r.Get("/contracts/{contractID}", h.HandleGet)
	r.Post("/contracts/{contractID}/execute", h.HandleExecute)
	r.Post("/contracts/{contractID}/deposit", h.HandleDeposit)
	r.Post("/contracts/{contractID}/release", h.HandleRelease)
	r.Post("/contracts/{contractID}/dispute", h.HandleDispute)
	r.Post("/contracts/{contractID}/resolve", h.HandleResolve)
	r.Post("/contracts/{contractID}/terminate", h.HandleTerminate)
	r.Post("/contracts/{contractID}/complete", h.HandleComplete)
	r.Get("/companies/{companyID}/contracts", h.HandleListByCompany)
	r.Get("/credentials/{credentialID}/contracts", h.HandleListByCredential)
}

type createContractRequest struct {
	CompanyID             id.CompanyID    `json:"company_id"`
	CredentialID          id.CredentialID `json:"credential_id"`
	Salary                int64           `json:"salary"`
	DurationSeconds       int64           `json:"duration_seconds"`
	Responsibilities      string          `json:"responsibilities"`
	TerminationConditions string          `json:"termination_conditions"`
	Arbitrator            string          `json:"arbitrator"`
}

// HandleCreate handles POST /contracts requests.
func (h *ContractHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.Decode[createContractRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	arbitrator, err := id.ParseIdentity(req.Arbitrator)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	contract, err := h.contracts.Create(ctx, contractservice.CreateRequest{
		CompanyID:             req.CompanyID,
		CredentialID:          req.CredentialID,
		Salary:                req.Salary,
		Duration:              secondsToDuration(req.DurationSeconds),
		Responsibilities:      req.Responsibilities,
		TerminationConditions: req.TerminationConditions,
		Arbitrator:            arbitrator,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "contract creation failed",
			"request_id", requestID,
			"company_id", req.CompanyID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, contract)
}

// HandleGet handles GET /contracts/{contractID} requests.
func (h *ContractHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	contractID, err := id.ParseContractID(chi.URLParam(r, "contractID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	contract, err := h.contracts.Get(ctx, contractID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, contract)
}

// HandleExecute handles POST /contracts/{contractID}/execute requests.
func (h *ContractHandler) HandleExecute(w http.ResponseWriter, r *http.Request) {
	h.lifecycle(w, r, "execute", h.contracts.Execute)
}

type depositRequest struct {
	Amount int64 `json:"amount"`
}

// HandleDeposit handles POST /contracts/{contractID}/deposit requests.
func (h *ContractHandler) HandleDeposit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	contractID, err := id.ParseContractID(chi.URLParam(r, "contractID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := httputil.Decode[depositRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	contract, err := h.contracts.Deposit(ctx, contractID, req.Amount)
	if err != nil {
		h.logger.ErrorContext(ctx, "deposit failed",
			"request_id", requestID,
			"contract_id", contractID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, contract)
}

// HandleRelease handles POST /contracts/{contractID}/release requests.
func (h *ContractHandler) HandleRelease(w http.ResponseWriter, r *http.Request) {
	h.lifecycle(w, r, "release", h.contracts.Release)
}

// HandleDispute handles POST /contracts/{contractID}/dispute requests.
func (h *ContractHandler) HandleDispute(w http.ResponseWriter, r *http.Request) {
	h.lifecycle(w, r, "dispute", h.contracts.Dispute)
}

type resolveRequest struct {
	ForEmployee bool `json:"for_employee"`
}

// HandleResolve handles POST /contracts/{contractID}/resolve requests.
func (h *ContractHandler) HandleResolve(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	contractID, err := id.ParseContractID(chi.URLParam(r, "contractID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := httputil.Decode[resolveRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	contract, err := h.disputes.Resolve(ctx, contractID, req.ForEmployee)
	if err != nil {
		h.logger.ErrorContext(ctx, "dispute resolution failed",
			"request_id", requestID,
			"contract_id", contractID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, contract)
}

type terminateRequest struct {
	Reason string `json:"reason"`
}

// HandleTerminate handles POST /contracts/{contractID}/terminate requests.
func (h *ContractHandler) HandleTerminate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	contractID, err := id.ParseContractID(chi.URLParam(r, "contractID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := httputil.Decode[terminateRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	contract, err := h.contracts.Terminate(ctx, contractID, req.Reason)
	if err != nil {
		h.logger.ErrorContext(ctx, "termination failed",
			"request_id", requestID,
			"contract_id", contractID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, contract)
}

// HandleComplete handles POST /contracts/{contractID}/complete requests.
func (h *ContractHandler) HandleComplete(w http.ResponseWriter, r *http.Request) {
	h.lifecycle(w, r, "complete", h.contracts.Complete)
}

// HandleListByCompany handles GET /companies/{companyID}/contracts requests.
func (h *ContractHandler) HandleListByCompany(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	companyID, err := id.ParseCompanyID(chi.URLParam(r, "companyID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	contracts, err := h.contracts.ListByCompany(ctx, companyID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, contracts)
}

// HandleListByCredential handles GET /credentials/{credentialID}/contracts
// requests.
func (h *ContractHandler) HandleListByCredential(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	credentialID, err := id.ParseCredentialID(chi.URLParam(r, "credentialID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	contracts, err := h.contracts.ListByCredential(ctx, credentialID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, contracts)
}

// lifecycle factors the body-less transition endpoints.
func (h *ContractHandler) lifecycle(w http.ResponseWriter, r *http.Request, name string, op func(context.Context, id.ContractID) (*contractmodels.Contract, error)) {
	ctx := r.Context()

	contractID, err := id.ParseContractID(chi.URLParam(r, "contractID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	contract, err := op(ctx, contractID)
	if err != nil {
		h.logger.ErrorContext(ctx, "contract operation failed",
			"request_id", requestcontext.RequestID(ctx),
			"operation", name,
			"contract_id", contractID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, contract)
}
