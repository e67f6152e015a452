package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"tenure/internal/company/models"
	contractmodels "tenure/internal/contract/models"
	"tenure/internal/events"
	"tenure/internal/platform/metrics"
	reviewmodels "tenure/internal/review/models"
	id "tenure/pkg/domain"
	dErrors "tenure/pkg/domain-errors"
	"tenure/pkg/platform/sentinel"
	"tenure/pkg/requestcontext"
)

type CompanyStore interface {
	Create(ctx context.Context, company *models.Company) error
	FindByID(ctx context.Context, companyID id.CompanyID) (*models.Company, error)
	AppendEmployee(ctx context.Context, companyID id.CompanyID, credentialID id.CredentialID, now time.Time) error
}

// ContractLister is the slice of the contract store the stats scan needs.
type ContractLister interface {
	ListByCompany(ctx context.Context, companyID id.CompanyID) ([]*contractmodels.Contract, error)
}

// ReviewLister is the slice of the review store the stats scan needs.
type ReviewLister interface {
	ListByContract(ctx context.Context, contractID id.ContractID) ([]reviewmodels.Review, error)
}

// StatsCache is an optional read-through cache for computed stats. A miss
// is signalled with sentinel.ErrNotFound.
type StatsCache interface {
	Get(ctx context.Context, companyID id.CompanyID) (*models.Stats, error)
	Set(ctx context.Context, companyID id.CompanyID, stats *models.Stats) error
}

type EventPublisher interface {
	Emit(ctx context.Context, event events.Event)
}

// Service orchestrates company registration and aggregate reads.
type Service struct {
	companies CompanyStore
	contracts ContractLister
	reviews   ReviewLister
	cache     StatsCache
	logger    *slog.Logger
	publisher EventPublisher
	metrics   *metrics.Metrics
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

func WithStatsCache(cache StatsCache) Option {
	return func(s *Service) {
		s.cache = cache
	}
}

// New constructs a Service.
func New(companies CompanyStore, contracts ContractLister, reviews ReviewLister, opts ...Option) *Service {
	s := &Service{companies: companies, contracts: contracts, reviews: reviews}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register creates a company owned by the authenticated caller. Names are
// not unique; two registrations with the same name yield two companies.
func (s *Service) Register(ctx context.Context, name, industry string) (*models.Company, error) {
	caller := requestcontext.Caller(ctx)
	now := requestcontext.Now(ctx)

	company, err := models.NewCompany(strings.TrimSpace(name), strings.TrimSpace(industry), caller, now)
	if err != nil {
		return nil, err
	}

	if err := s.companies.Create(ctx, company); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create company")
	}

	s.log(ctx, "company registered",
		"company_id", company.ID,
		"owner", company.Owner,
	)
	s.emit(ctx, events.Event{
		Type:      events.TypeCompanyRegistered,
		Actor:     caller,
		CompanyID: company.ID,
	})
	if s.metrics != nil {
		s.metrics.CompaniesRegistered.Inc()
	}
	return company, nil
}

// Get returns a company by id.
func (s *Service) Get(ctx context.Context, companyID id.CompanyID) (*models.Company, error) {
	company, err := s.companies.FindByID(ctx, companyID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "company not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load company")
	}
	return company, nil
}

// Stats computes the per-company aggregates by scanning the company's
// contracts and their reviews. When a cache is configured the computed
// value is served from and written back to it; cache failures fall back to
// a fresh scan.
func (s *Service) Stats(ctx context.Context, companyID id.CompanyID) (*models.Stats, error) {
	company, err := s.Get(ctx, companyID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, companyID)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, sentinel.ErrNotFound) {
			s.log(ctx, "stats cache read failed", "company_id", companyID, "error", err)
		}
	}

	stats, err := s.computeStats(ctx, company)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, companyID, stats); err != nil {
			s.log(ctx, "stats cache write failed", "company_id", companyID, "error", err)
		}
	}
	return stats, nil
}

func (s *Service) computeStats(ctx context.Context, company *models.Company) (*models.Stats, error) {
	now := requestcontext.Now(ctx)

	contracts, err := s.contracts.ListByCompany(ctx, company.ID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list contracts")
	}

	stats := &models.Stats{
		TotalEmployees: len(company.EmployeeCredentials),
		TotalContracts: len(contracts),
	}

	// ActiveContracts counts by status alone. A credential counts as an
	// active employee only when its contract is also inside its term.
	activeCredentials := make(map[id.CredentialID]struct{})
	var ratingSum, ratingCount int
	for _, contract := range contracts {
		if contract.Status == contractmodels.StatusActive {
			stats.ActiveContracts++
		}
		if contract.IsActiveAt(now) {
			activeCredentials[contract.CredentialID] = struct{}{}
		}
		reviews, err := s.reviews.ListByContract(ctx, contract.ID)
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list reviews")
		}
		for _, review := range reviews {
			ratingSum += review.Rating
			ratingCount++
		}
	}
	stats.ActiveEmployees = len(activeCredentials)
	if ratingCount > 0 {
		stats.AverageRating = ratingSum / ratingCount
	}
	return stats, nil
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
