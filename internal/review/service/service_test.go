package service

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	companymodels "tenure/internal/company/models"
	companystore "tenure/internal/company/store"
	contractmodels "tenure/internal/contract/models"
	contractstore "tenure/internal/contract/store"
	"tenure/internal/events"
	reviewstore "tenure/internal/review/store"
	id "tenure/pkg/domain"
	dErrors "tenure/pkg/domain-errors"
	"tenure/pkg/requestcontext"
)

const (
	owner    = id.Identity("founder")
	employee = id.Identity("alice")
)

type recorder struct {
	events []events.Event
}

func (r *recorder) Emit(_ context.Context, event events.Event) {
	r.events = append(r.events, event)
}

type ReviewServiceSuite struct {
	suite.Suite
	companies *companystore.InMemory
	contracts *contractstore.InMemory
	reviews   *reviewstore.InMemory
	recorder  *recorder
	service   *Service
	now       time.Time
	companyID id.CompanyID
}

func TestReviewServiceSuite(t *testing.T) {
	suite.Run(t, new(ReviewServiceSuite))
}

func (s *ReviewServiceSuite) SetupTest() {
	s.companies = companystore.NewInMemory()
	s.contracts = contractstore.NewInMemory()
	s.reviews = reviewstore.NewInMemory()
	s.recorder = &recorder{}
	s.now = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	s.service = New(s.reviews, s.contracts, s.companies,
		WithLogger(slog.New(slog.DiscardHandler)),
		WithEventPublisher(s.recorder),
	)

	company, err := companymodels.NewCompany("Acme", "software", owner, s.now)
	s.Require().NoError(err)
	s.Require().NoError(s.companies.Create(context.Background(), company))
	s.companyID = company.ID
}

func (s *ReviewServiceSuite) as(caller id.Identity) context.Context {
	ctx := requestcontext.WithCaller(context.Background(), caller)
	return requestcontext.WithTime(ctx, s.now)
}

// seedContract stores a contract in the given terminal or live status.
func (s *ReviewServiceSuite) seedContract(status contractmodels.Status) *contractmodels.Contract {
	contract, err := contractmodels.NewContract(s.companyID, 1, employee, 1000, time.Hour, "", "", "judge", s.now)
	s.Require().NoError(err)
	contract.Status = status
	s.Require().NoError(s.contracts.Create(context.Background(), contract))
	return contract
}

func (s *ReviewServiceSuite) TestSubmit() {
	s.Run("either party may review a finished contract", func() {
		contract := s.seedContract(contractmodels.StatusTerminated)

		fromEmployee, err := s.service.Submit(s.as(employee), contract.ID, 4, "fair employer")
		s.Require().NoError(err)
		s.Equal(employee, fromEmployee.Reviewer)
		s.Equal(s.now, fromEmployee.SubmittedAt)

		_, err = s.service.Submit(s.as(owner), contract.ID, 5, "great work")
		s.Require().NoError(err)
	})

	s.Run("completed contracts accept reviews too", func() {
		contract := s.seedContract(contractmodels.StatusCompleted)
		_, err := s.service.Submit(s.as(owner), contract.ID, 3, "")
		s.Require().NoError(err)
	})

	s.Run("live contracts reject reviews", func() {
		for _, status := range []contractmodels.Status{
			contractmodels.StatusCreated,
			contractmodels.StatusActive,
			contractmodels.StatusDisputed,
		} {
			contract := s.seedContract(status)
			_, err := s.service.Submit(s.as(employee), contract.ID, 4, "")
			s.Require().Error(err)
			s.True(dErrors.HasCode(err, dErrors.CodeInvalidState))
		}
	})

	s.Run("rating is bounded", func() {
		contract := s.seedContract(contractmodels.StatusTerminated)
		for _, rating := range []int{0, -1, 6} {
			_, err := s.service.Submit(s.as(employee), contract.ID, rating, "")
			s.Require().Error(err)
			s.True(dErrors.HasCode(err, dErrors.CodeValidation))
		}
	})

	s.Run("a stranger cannot review", func() {
		contract := s.seedContract(contractmodels.StatusTerminated)
		_, err := s.service.Submit(s.as("mallory"), contract.ID, 1, "")
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	s.Run("unknown contract is not found", func() {
		_, err := s.service.Submit(s.as(employee), 404, 4, "")
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("duplicate reviews accumulate", func() {
		contract := s.seedContract(contractmodels.StatusTerminated)
		for range 3 {
			_, err := s.service.Submit(s.as(employee), contract.ID, 5, "")
			s.Require().NoError(err)
		}
		reviews, err := s.service.List(context.Background(), contract.ID)
		s.Require().NoError(err)
		s.Len(reviews, 3)
	})
}

func (s *ReviewServiceSuite) TestList() {
	s.Run("returns submission order", func() {
		contract := s.seedContract(contractmodels.StatusCompleted)
		_, err := s.service.Submit(s.as(employee), contract.ID, 2, "first")
		s.Require().NoError(err)
		_, err = s.service.Submit(s.as(owner), contract.ID, 5, "second")
		s.Require().NoError(err)

		reviews, err := s.service.List(context.Background(), contract.ID)
		s.Require().NoError(err)
		s.Require().Len(reviews, 2)
		s.Equal("first", reviews[0].Comments)
		s.Equal("second", reviews[1].Comments)
	})

	s.Run("contract without reviews lists empty", func() {
		reviews, err := s.service.List(context.Background(), 42)
		s.Require().NoError(err)
		s.Empty(reviews)
	})
}
