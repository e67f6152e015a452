package service

import (
	"context"
	"errors"
	"log/slog"

	companymodels "tenure/internal/company/models"
	contractmodels "tenure/internal/contract/models"
	"tenure/internal/events"
	"tenure/internal/platform/metrics"
	"tenure/internal/review/models"
	id "tenure/pkg/domain"
	dErrors "tenure/pkg/domain-errors"
	"tenure/pkg/platform/sentinel"
	"tenure/pkg/requestcontext"
)

type ReviewStore interface {
	Append(ctx context.Context, review *models.Review) error
	ListByContract(ctx context.Context, contractID id.ContractID) ([]models.Review, error)
}

// ContractResolver loads the contract a review targets.
type ContractResolver interface {
	FindByID(ctx context.Context, contractID id.ContractID) (*contractmodels.Contract, error)
}

// CompanyDirectory resolves the owning company for the reviewer check.
type CompanyDirectory interface {
	FindByID(ctx context.Context, companyID id.CompanyID) (*companymodels.Company, error)
}

type EventPublisher interface {
	Emit(ctx context.Context, event events.Event)
}

// Service accepts and lists post-contract reviews.
type Service struct {
	reviews   ReviewStore
	contracts ContractResolver
	companies CompanyDirectory
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

// New constructs a Service.
func New(reviews ReviewStore, contracts ContractResolver, companies CompanyDirectory, opts ...Option) *Service {
	s := &Service{reviews: reviews, contracts: contracts, companies: companies}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit records feedback on an ended contract. Either party may review,
// any number of times; reviews are append-only and never edited.
func (s *Service) Submit(ctx context.Context, contractID id.ContractID, rating int, comments string) (*models.Review, error) {
	caller := requestcontext.Caller(ctx)
	now := requestcontext.Now(ctx)

	contract, err := s.contracts.FindByID(ctx, contractID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "contract not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load contract")
	}
	if !contract.Reviewable() {
		return nil, dErrors.New(dErrors.CodeInvalidState, "contract is not finished")
	}

	company, err := s.companies.FindByID(ctx, contract.CompanyID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "company not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load company")
	}
	if err := contractmodels.Authorize(contractmodels.OpSubmitReview, contract, company.Owner, caller); err != nil {
		return nil, err
	}

	review, err := models.NewReview(contractID, rating, comments, caller, now)
	if err != nil {
		return nil, err
	}
	if err := s.reviews.Append(ctx, review); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to store review")
	}

	s.log(ctx, "review submitted",
		"contract_id", contractID,
		"rating", rating,
		"reviewer", caller,
	)
	s.emit(ctx, events.Event{
		Type:       events.TypeReviewSubmitted,
		Actor:      caller,
		ContractID: contractID,
		CompanyID:  contract.CompanyID,
	})
	if s.metrics != nil {
		s.metrics.ReviewsSubmitted.Inc()
	}
	return review, nil
}

// List returns a contract's reviews in submission order.
func (s *Service) List(ctx context.Context, contractID id.ContractID) ([]models.Review, error) {
	reviews, err := s.reviews.ListByContract(ctx, contractID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list reviews")
	}
	return reviews, nil
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
