package service

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	companystore "tenure/internal/company/store"
	contractmodels "tenure/internal/contract/models"
	contractstore "tenure/internal/contract/store"
	"tenure/internal/events"
	reviewmodels "tenure/internal/review/models"
	reviewstore "tenure/internal/review/store"
	id "tenure/pkg/domain"
	dErrors "tenure/pkg/domain-errors"
	"tenure/pkg/requestcontext"
)

const owner = id.Identity("founder")

type recorder struct {
	events []events.Event
}

func (r *recorder) Emit(_ context.Context, event events.Event) {
	r.events = append(r.events, event)
}

type CompanyServiceSuite struct {
	suite.Suite
	companies *companystore.InMemory
	contracts *contractstore.InMemory
	reviews   *reviewstore.InMemory
	recorder  *recorder
	service   *Service
	now       time.Time
}

func TestCompanyServiceSuite(t *testing.T) {
	suite.Run(t, new(CompanyServiceSuite))
}

func (s *CompanyServiceSuite) SetupTest() {
	s.companies = companystore.NewInMemory()
	s.contracts = contractstore.NewInMemory()
	s.reviews = reviewstore.NewInMemory()
	s.recorder = &recorder{}
	s.now = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	s.service = New(s.companies, s.contracts, s.reviews,
		WithLogger(slog.New(slog.DiscardHandler)),
		WithEventPublisher(s.recorder),
	)
}

func (s *CompanyServiceSuite) as(caller id.Identity) context.Context {
	ctx := requestcontext.WithCaller(context.Background(), caller)
	return requestcontext.WithTime(ctx, s.now)
}

func (s *CompanyServiceSuite) TestRegister() {
	s.Run("assigns sequential ids from one", func() {
		first, err := s.service.Register(s.as(owner), "Acme", "software")
		s.Require().NoError(err)
		second, err := s.service.Register(s.as(owner), "Globex", "energy")
		s.Require().NoError(err)

		s.Equal(id.CompanyID(1), first.ID)
		s.Equal(id.CompanyID(2), second.ID)
		s.True(first.Active)
		s.Equal(owner, first.Owner)
	})

	s.Run("allows duplicate names", func() {
		_, err := s.service.Register(s.as(owner), "Same Name", "a")
		s.Require().NoError(err)
		_, err = s.service.Register(s.as("other-founder"), "Same Name", "b")
		s.Require().NoError(err)
	})

	s.Run("requires an authenticated caller", func() {
		_, err := s.service.Register(context.Background(), "NoOwner", "x")
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("emits a registration event", func() {
		s.recorder.events = nil
		company, err := s.service.Register(s.as(owner), "Evented", "x")
		s.Require().NoError(err)

		s.Require().Len(s.recorder.events, 1)
		s.Equal(events.TypeCompanyRegistered, s.recorder.events[0].Type)
		s.Equal(company.ID, s.recorder.events[0].CompanyID)
	})
}

func (s *CompanyServiceSuite) TestGet() {
	s.Run("unknown company is not found", func() {
		_, err := s.service.Get(context.Background(), 404)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

type invalidatorSpy struct {
	invalidated []id.CompanyID
}

func (i *invalidatorSpy) Invalidate(_ context.Context, companyID id.CompanyID) error {
	i.invalidated = append(i.invalidated, companyID)
	return nil
}

func (s *CompanyServiceSuite) TestInvalidationSink() {
	s.Run("drops the cache entry for the event's company", func() {
		spy := &invalidatorSpy{}
		sink := NewInvalidationSink(spy)

		err := sink.Append(context.Background(), events.Event{
			Type:      events.TypeSalaryDeposited,
			CompanyID: 7,
		})
		s.Require().NoError(err)
		s.Equal([]id.CompanyID{7}, spy.invalidated)
	})

	s.Run("ignores events without a company", func() {
		spy := &invalidatorSpy{}
		sink := NewInvalidationSink(spy)

		err := sink.Append(context.Background(), events.Event{
			Type: events.TypeReviewSubmitted,
		})
		s.Require().NoError(err)
		s.Empty(spy.invalidated)
	})
}

func (s *CompanyServiceSuite) TestStats() {
	s.Run("fresh company has zero stats", func() {
		company, err := s.service.Register(s.as(owner), "Empty Inc", "none")
		s.Require().NoError(err)

		stats, err := s.service.Stats(s.as(owner), company.ID)
		s.Require().NoError(err)
		s.Equal(0, stats.TotalEmployees)
		s.Equal(0, stats.ActiveEmployees)
		s.Equal(0, stats.TotalContracts)
		s.Equal(0, stats.ActiveContracts)
		s.Equal(0, stats.AverageRating)
	})

	s.Run("counts live contracts and truncates the mean rating", func() {
		ctx := context.Background()
		company, err := s.service.Register(s.as(owner), "Staffed Inc", "software")
		s.Require().NoError(err)
		s.Require().NoError(s.companies.AppendEmployee(ctx, company.ID, 1, s.now))
		s.Require().NoError(s.companies.AppendEmployee(ctx, company.ID, 2, s.now))

		// One live contract on credential 1.
		live, err := contractmodels.NewContract(company.ID, 1, "alice", 1000, 30*24*time.Hour, "", "", "judge", s.now)
		s.Require().NoError(err)
		s.Require().NoError(live.Transition(contractmodels.StatusActive, s.now))
		live.StartTime = s.now
		s.Require().NoError(s.contracts.Create(ctx, live))

		// One finished contract on credential 2 with two reviews.
		finished, err := contractmodels.NewContract(company.ID, 2, "bob", 1000, time.Hour, "", "", "judge", s.now)
		s.Require().NoError(err)
		s.Require().NoError(finished.Transition(contractmodels.StatusActive, s.now))
		finished.StartTime = s.now.Add(-2 * time.Hour)
		s.Require().NoError(finished.Transition(contractmodels.StatusCompleted, s.now))
		s.Require().NoError(s.contracts.Create(ctx, finished))

		for _, rating := range []int{5, 4} {
			review, err := reviewmodels.NewReview(finished.ID, rating, "", "alice", s.now)
			s.Require().NoError(err)
			s.Require().NoError(s.reviews.Append(ctx, review))
		}

		stats, err := s.service.Stats(s.as(owner), company.ID)
		s.Require().NoError(err)
		s.Equal(2, stats.TotalEmployees)
		s.Equal(1, stats.ActiveEmployees)
		s.Equal(2, stats.TotalContracts)
		s.Equal(1, stats.ActiveContracts)
		// (5 + 4) / 2 truncates to 4.
		s.Equal(4, stats.AverageRating)
	})

	s.Run("active contract past its term still counts as active", func() {
		ctx := context.Background()
		company, err := s.service.Register(s.as(owner), "Overdue Inc", "software")
		s.Require().NoError(err)
		s.Require().NoError(s.companies.AppendEmployee(ctx, company.ID, 7, s.now))

		// Term elapsed an hour ago but nobody terminated or completed it.
		overdue, err := contractmodels.NewContract(company.ID, 7, "carol", 1000, time.Hour, "", "", "judge", s.now)
		s.Require().NoError(err)
		s.Require().NoError(overdue.Transition(contractmodels.StatusActive, s.now))
		overdue.StartTime = s.now.Add(-2 * time.Hour)
		s.Require().NoError(s.contracts.Create(ctx, overdue))

		stats, err := s.service.Stats(s.as(owner), company.ID)
		s.Require().NoError(err)
		s.Equal(1, stats.ActiveContracts)
		s.Equal(0, stats.ActiveEmployees)
	})

	s.Run("stats for an unknown company is not found", func() {
		_, err := s.service.Stats(context.Background(), 404)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}
