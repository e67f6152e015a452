package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	companymodels "tenure/internal/company/models"
	"tenure/internal/credential/models"
	"tenure/internal/events"
	"tenure/internal/platform/metrics"
	id "tenure/pkg/domain"
	dErrors "tenure/pkg/domain-errors"
	"tenure/pkg/platform/sentinel"
	"tenure/pkg/requestcontext"
)

type CredentialStore interface {
	CreateIfOwnerFree(ctx context.Context, credential *models.Credential) error
	FindByID(ctx context.Context, credentialID id.CredentialID) (*models.Credential, error)
	FindByOwner(ctx context.Context, owner id.Identity) (*models.Credential, error)
}

// CompanyDirectory is the slice of the company store minting needs: the
// ownership check and the employee index append.
type CompanyDirectory interface {
	FindByID(ctx context.Context, companyID id.CompanyID) (*companymodels.Company, error)
	AppendEmployee(ctx context.Context, companyID id.CompanyID, credentialID id.CredentialID, now time.Time) error
}

type EventPublisher interface {
	Emit(ctx context.Context, event events.Event)
}

// Service mints and resolves employee credentials.
type Service struct {
	credentials CredentialStore
	companies   CompanyDirectory
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
func New(credentials CredentialStore, companies CompanyDirectory, opts ...Option) *Service {
	s := &Service{credentials: credentials, companies: companies}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Mint issues a credential binding employee to the company. Only the
// company owner may mint, an identity may hold at most one credential
// platform-wide, and the credential is locked to its owner from issuance.
func (s *Service) Mint(ctx context.Context, companyID id.CompanyID, employee id.Identity, metadataRef string) (*models.Credential, error) {
	caller := requestcontext.Caller(ctx)
	now := requestcontext.Now(ctx)

	company, err := s.companies.FindByID(ctx, companyID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "company not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load company")
	}
	if !company.IsOwnedBy(caller) {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "only the company owner may mint credentials")
	}
	if !company.Active {
		return nil, dErrors.New(dErrors.CodeInvalidState, "company is not active")
	}

	credential, err := models.NewCredential(companyID, employee, metadataRef, now)
	if err != nil {
		return nil, err
	}

	if err := s.credentials.CreateIfOwnerFree(ctx, credential); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.New(dErrors.CodeConflict, "identity already holds a credential")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to mint credential")
	}

	if err := s.companies.AppendEmployee(ctx, companyID, credential.ID, now); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to register employee credential")
	}

	s.log(ctx, "credential minted",
		"credential_id", credential.ID,
		"company_id", companyID,
		"owner", employee,
	)
	s.emit(ctx, events.Event{
		Type:         events.TypeCredentialIssued,
		Actor:        caller,
		CompanyID:    companyID,
		CredentialID: credential.ID,
		Recipient:    employee,
	})
	s.emit(ctx, events.Event{
		Type:         events.TypeCredentialLocked,
		CompanyID:    companyID,
		CredentialID: credential.ID,
		Recipient:    employee,
	})
	if s.metrics != nil {
		s.metrics.CredentialsIssued.Inc()
	}
	return credential, nil
}

// Get returns a credential by id.
func (s *Service) Get(ctx context.Context, credentialID id.CredentialID) (*models.Credential, error) {
	credential, err := s.credentials.FindByID(ctx, credentialID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "credential not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load credential")
	}
	return credential, nil
}

// ResolveOwner returns the credential held by an identity, if any.
func (s *Service) ResolveOwner(ctx context.Context, owner id.Identity) (*models.Credential, error) {
	if owner.IsZero() {
		return nil, dErrors.New(dErrors.CodeValidation, "owner identity is required")
	}
	credential, err := s.credentials.FindByOwner(ctx, owner)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "identity holds no credential")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to resolve credential")
	}
	return credential, nil
}

// IsLocked reports transferability for a credential. Always true for
// existing credentials; the method exists so callers do not assume.
func (s *Service) IsLocked(ctx context.Context, credentialID id.CredentialID) (bool, error) {
	credential, err := s.Get(ctx, credentialID)
	if err != nil {
		return false, err
	}
	return credential.Locked, nil
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
