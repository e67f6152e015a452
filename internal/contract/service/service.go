package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	companymodels "tenure/internal/company/models"
	"tenure/internal/contract/models"
	credentialmodels "tenure/internal/credential/models"
	"tenure/internal/events"
	"tenure/internal/payout"
	"tenure/internal/platform/metrics"
	id "tenure/pkg/domain"
	dErrors "tenure/pkg/domain-errors"
	"tenure/pkg/platform/sentinel"
	"tenure/pkg/requestcontext"
)

type ContractStore interface {
	Create(ctx context.Context, contract *models.Contract) error
	FindByID(ctx context.Context, contractID id.ContractID) (*models.Contract, error)
	Mutate(ctx context.Context, contractID id.ContractID, fn func(*models.Contract) error) (*models.Contract, error)
	ListByCompany(ctx context.Context, companyID id.CompanyID) ([]*models.Contract, error)
	ListByCredential(ctx context.Context, credentialID id.CredentialID) ([]*models.Contract, error)
}

// CompanyDirectory resolves companies for the ownership checks.
type CompanyDirectory interface {
	FindByID(ctx context.Context, companyID id.CompanyID) (*companymodels.Company, error)
}

// CredentialResolver resolves the credential a contract is drawn against.
type CredentialResolver interface {
	FindByID(ctx context.Context, credentialID id.CredentialID) (*credentialmodels.Credential, error)
}

type EventPublisher interface {
	Emit(ctx context.Context, event events.Event)
}

// Service runs the contract lifecycle and escrow engine. Every mutation
// goes through the store's Mutate so status and balance changes for one
// contract are serialized.
type Service struct {
	contracts   ContractStore
	companies   CompanyDirectory
	credentials CredentialResolver
	payouts     payout.Provider
	logger      *slog.Logger
	publisher   EventPublisher
	metrics     *metrics.Metrics
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithEventPublisher(publisher EventPublisher) Option {
	return func(s *Service) {
		s.publisher = publisher
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// New constructs a Service.
func New(contracts ContractStore, companies CompanyDirectory, credentials CredentialResolver, payouts payout.Provider, opts ...Option) *Service {
	s := &Service{contracts: contracts, companies: companies, credentials: credentials, payouts: payouts}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateRequest carries the employer's terms for a new contract.
type CreateRequest struct {
	CompanyID             id.CompanyID    `json:"company_id"`
	CredentialID          id.CredentialID `json:"credential_id"`
	Salary                int64           `json:"salary"`
	Duration              time.Duration   `json:"duration"`
	Responsibilities      string          `json:"responsibilities"`
	TerminationConditions string          `json:"termination_conditions"`
	Arbitrator            id.Identity     `json:"arbitrator"`
}

// Create drafts a contract between the caller's company and the holder of
// the credential. The employee identity is resolved from the credential
// once, here, and never changes afterwards.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*models.Contract, error) {
	caller := requestcontext.Caller(ctx)
	now := requestcontext.Now(ctx)

	company, err := s.companies.FindByID(ctx, req.CompanyID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "company not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load company")
	}
	if !company.IsOwnedBy(caller) {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "only the company owner may create contracts")
	}
	if !company.Active {
		return nil, dErrors.New(dErrors.CodeInvalidState, "company is not active")
	}

	credential, err := s.credentials.FindByID(ctx, req.CredentialID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "credential not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load credential")
	}

	contract, err := models.NewContract(
		req.CompanyID,
		req.CredentialID,
		credential.Owner,
		req.Salary,
		req.Duration,
		req.Responsibilities,
		req.TerminationConditions,
		req.Arbitrator,
		now,
	)
	if err != nil {
		return nil, err
	}

	if err := s.contracts.Create(ctx, contract); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create contract")
	}

	s.log(ctx, "contract created",
		"contract_id", contract.ID,
		"company_id", contract.CompanyID,
		"credential_id", contract.CredentialID,
	)
	s.emit(ctx, events.Event{
		Type:         events.TypeContractCreated,
		Actor:        caller,
		CompanyID:    contract.CompanyID,
		CredentialID: contract.CredentialID,
		ContractID:   contract.ID,
		Amount:       contract.Salary,
	})
	if s.metrics != nil {
		s.metrics.ContractsCreated.Inc()
	}
	return contract, nil
}

// Execute activates the contract. Only the employee may execute; the
// start time is fixed to the moment of execution.
func (s *Service) Execute(ctx context.Context, contractID id.ContractID) (*models.Contract, error) {
	caller := requestcontext.Caller(ctx)
	now := requestcontext.Now(ctx)

	contract, err := s.mutate(ctx, contractID, models.OpExecute, func(c *models.Contract) error {
		if err := c.Transition(models.StatusActive, now); err != nil {
			return err
		}
		c.StartTime = now
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log(ctx, "contract executed", "contract_id", contractID)
	s.emit(ctx, events.Event{
		Type:       events.TypeContractExecuted,
		Actor:      caller,
		ContractID: contractID,
		CompanyID:  contract.CompanyID,
	})
	if s.metrics != nil {
		s.metrics.ContractsExecuted.Inc()
	}
	return contract, nil
}

// Deposit escrows salary funds into an active contract. Any caller may
// fund it.
func (s *Service) Deposit(ctx context.Context, contractID id.ContractID, amount int64) (*models.Contract, error) {
	caller := requestcontext.Caller(ctx)
	now := requestcontext.Now(ctx)

	contract, err := s.mutate(ctx, contractID, models.OpDeposit, func(c *models.Contract) error {
		if c.Status != models.StatusActive {
			return dErrors.New(dErrors.CodeInvalidState, "deposits require an active contract")
		}
		if err := c.Escrow.Deposit(amount); err != nil {
			return err
		}
		c.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log(ctx, "salary deposited",
		"contract_id", contractID,
		"amount", amount,
		"balance", contract.Escrow.Balance,
	)
	s.emit(ctx, events.Event{
		Type:       events.TypeSalaryDeposited,
		Actor:      caller,
		ContractID: contractID,
		CompanyID:  contract.CompanyID,
		Amount:     amount,
	})
	if s.metrics != nil {
		s.metrics.SalaryDeposited.Add(float64(amount))
	}
	return contract, nil
}

// Release pays the full escrow balance to the employee. The balance is
// zeroed before the transfer is attempted; a failed transfer restores it
// and the whole mutation is discarded, so a reentrant call can never pay
// the same funds twice.
func (s *Service) Release(ctx context.Context, contractID id.ContractID) (*models.Contract, error) {
	caller := requestcontext.Caller(ctx)
	now := requestcontext.Now(ctx)

	var released int64
	var recipient id.Identity
	contract, err := s.mutate(ctx, contractID, models.OpRelease, func(c *models.Contract) error {
		if c.Status != models.StatusActive {
			return dErrors.New(dErrors.CodeInvalidState, "release requires an active contract")
		}
		if c.Escrow.Balance <= 0 {
			return dErrors.New(dErrors.CodeValidation, "no escrowed salary to release")
		}
		amount := c.Escrow.Drain()
		if err := s.payouts.Transfer(ctx, c.Employee, amount); err != nil {
			c.Escrow.Restore(amount)
			if s.metrics != nil {
				s.metrics.TransferErrors.Inc()
			}
			return dErrors.Wrap(err, dErrors.CodeTransferFailed, "salary transfer failed")
		}
		released = amount
		recipient = c.Employee
		c.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log(ctx, "salary released",
		"contract_id", contractID,
		"amount", released,
		"recipient", recipient,
	)
	s.emit(ctx, events.Event{
		Type:       events.TypeSalaryReleased,
		Actor:      caller,
		ContractID: contractID,
		CompanyID:  contract.CompanyID,
		Recipient:  recipient,
		Amount:     released,
	})
	if s.metrics != nil {
		s.metrics.SalaryReleased.Add(float64(released))
	}
	return contract, nil
}

// Dispute freezes an active contract pending arbitration. Salary cannot be
// released while disputed.
func (s *Service) Dispute(ctx context.Context, contractID id.ContractID) (*models.Contract, error) {
	caller := requestcontext.Caller(ctx)
	now := requestcontext.Now(ctx)

	contract, err := s.mutate(ctx, contractID, models.OpDispute, func(c *models.Contract) error {
		return c.Transition(models.StatusDisputed, now)
	})
	if err != nil {
		return nil, err
	}

	s.log(ctx, "dispute raised", "contract_id", contractID, "actor", caller)
	s.emit(ctx, events.Event{
		Type:       events.TypeDisputeRaised,
		Actor:      caller,
		ContractID: contractID,
		CompanyID:  contract.CompanyID,
	})
	if s.metrics != nil {
		s.metrics.DisputesRaised.Inc()
	}
	return contract, nil
}

// Terminate ends an active contract early. Escrowed funds are left in
// place; termination never moves value.
func (s *Service) Terminate(ctx context.Context, contractID id.ContractID, reason string) (*models.Contract, error) {
	caller := requestcontext.Caller(ctx)
	now := requestcontext.Now(ctx)

	contract, err := s.mutate(ctx, contractID, models.OpTerminate, func(c *models.Contract) error {
		if c.Status != models.StatusActive {
			return dErrors.New(dErrors.CodeInvalidState, "only active contracts can be terminated directly")
		}
		return c.Transition(models.StatusTerminated, now)
	})
	if err != nil {
		return nil, err
	}

	s.log(ctx, "contract terminated",
		"contract_id", contractID,
		"actor", caller,
		"reason", reason,
	)
	s.emit(ctx, events.Event{
		Type:       events.TypeContractTerminated,
		Actor:      caller,
		ContractID: contractID,
		CompanyID:  contract.CompanyID,
		Reason:     reason,
	})
	if s.metrics != nil {
		s.metrics.ContractsTerminated.Inc()
	}
	return contract, nil
}

// Complete closes an active contract whose term has elapsed. Like
// termination it leaves the escrow untouched; the employee releases any
// remaining balance separately before completing.
func (s *Service) Complete(ctx context.Context, contractID id.ContractID) (*models.Contract, error) {
	caller := requestcontext.Caller(ctx)
	now := requestcontext.Now(ctx)

	contract, err := s.mutate(ctx, contractID, models.OpComplete, func(c *models.Contract) error {
		if !c.TermElapsedAt(now) {
			return dErrors.New(dErrors.CodeInvalidState, "contract term has not elapsed")
		}
		return c.Transition(models.StatusCompleted, now)
	})
	if err != nil {
		return nil, err
	}

	s.log(ctx, "contract completed", "contract_id", contractID)
	s.emit(ctx, events.Event{
		Type:       events.TypeContractCompleted,
		Actor:      caller,
		ContractID: contractID,
		CompanyID:  contract.CompanyID,
	})
	if s.metrics != nil {
		s.metrics.ContractsCompleted.Inc()
	}
	return contract, nil
}

// Get returns a contract by id.
func (s *Service) Get(ctx context.Context, contractID id.ContractID) (*models.Contract, error) {
	contract, err := s.contracts.FindByID(ctx, contractID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "contract not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load contract")
	}
	return contract, nil
}

// ListByCompany returns all contracts drawn by a company.
func (s *Service) ListByCompany(ctx context.Context, companyID id.CompanyID) ([]*models.Contract, error) {
	contracts, err := s.contracts.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list contracts")
	}
	return contracts, nil
}

// ListByCredential returns all contracts held against a credential.
func (s *Service) ListByCredential(ctx context.Context, credentialID id.CredentialID) ([]*models.Contract, error) {
	contracts, err := s.contracts.ListByCredential(ctx, credentialID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list contracts")
	}
	return contracts, nil
}

// mutate wraps the store's Mutate with the authorization gate: the caller
// relationship is checked inside the critical section against the current
// record, then fn applies the operation.
func (s *Service) mutate(ctx context.Context, contractID id.ContractID, op models.Operation, fn func(*models.Contract) error) (*models.Contract, error) {
	caller := requestcontext.Caller(ctx)

	current, err := s.Get(ctx, contractID)
	if err != nil {
		return nil, err
	}
	owner, err := s.resolveOwner(ctx, current.CompanyID)
	if err != nil {
		return nil, err
	}

	contract, err := s.contracts.Mutate(ctx, contractID, func(c *models.Contract) error {
		if err := models.Authorize(op, c, owner, caller); err != nil {
			return err
		}
		return fn(c)
	})
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "contract not found")
		}
		if dErrors.CodeOf(err) != dErrors.CodeInternal {
			return nil, err
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update contract")
	}
	return contract, nil
}

func (s *Service) resolveOwner(ctx context.Context, companyID id.CompanyID) (id.Identity, error) {
	company, err := s.companies.FindByID(ctx, companyID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return "", dErrors.New(dErrors.CodeNotFound, "company not found")
		}
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to load company")
	}
	return company.Owner, nil
}

func (s *Service) log(ctx context.Context, msg string, attributes ...any) {
	if s.logger == nil {
		return
	}
	if requestID := requestcontext.RequestID(ctx); requestID != "" {
		attributes = append(attributes, "request_id", requestID)
	}
	s.logger.InfoContext(ctx, msg, attributes...)
}

func (s *Service) emit(ctx context.Context, event events.Event) {
	if s.publisher != nil {
		s.publisher.Emit(ctx, event)
	}
}
