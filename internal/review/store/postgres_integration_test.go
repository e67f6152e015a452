//go:build integration

package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	companymodels "tenure/internal/company/models"
	companystore "tenure/internal/company/store"
	contractmodels "tenure/internal/contract/models"
	contractstore "tenure/internal/contract/store"
	credentialmodels "tenure/internal/credential/models"
	credentialstore "tenure/internal/credential/store"
	"tenure/internal/review/models"
	reviewstore "tenure/internal/review/store"
	id "tenure/pkg/domain"
	"tenure/pkg/testutil/containers"
)

type PostgresReviewStoreSuite struct {
	suite.Suite
	postgres   *containers.PostgresContainer
	store      *reviewstore.PostgresStore
	contractID id.ContractID
	now        time.Time
}

func TestPostgresReviewStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresReviewStoreSuite))
}

func (s *PostgresReviewStoreSuite) SetupSuite() {
	mgr := containers.GetManager()
	s.postgres = mgr.GetPostgres(s.T())
	s.store = reviewstore.NewPostgres(s.postgres.DB)
}

func (s *PostgresReviewStoreSuite) SetupTest() {
	ctx := context.Background()
	s.Require().NoError(s.postgres.TruncateTables(ctx,
		"reviews", "contracts", "company_employees", "credentials", "companies"))
	s.now = time.Now().UTC().Truncate(time.Microsecond)

	company, err := companymodels.NewCompany("Acme", "software", "founder", s.now)
	s.Require().NoError(err)
	s.Require().NoError(companystore.NewPostgres(s.postgres.DB).Create(ctx, company))

	credential, err := credentialmodels.NewCredential(company.ID, "alice", "", s.now)
	s.Require().NoError(err)
	s.Require().NoError(credentialstore.NewPostgres(s.postgres.DB).CreateIfOwnerFree(ctx, credential))

	contract, err := contractmodels.NewContract(company.ID, credential.ID, "alice", 1000, time.Hour, "work", "notice", "judge", s.now)
	s.Require().NoError(err)
	s.Require().NoError(contractstore.NewPostgres(s.postgres.DB).Create(ctx, contract))
	s.contractID = contract.ID
}

func (s *PostgresReviewStoreSuite) TestAppendAndList() {
	ctx := context.Background()

	first, err := models.NewReview(s.contractID, 5, "great employer", "alice", s.now)
	s.Require().NoError(err)
	second, err := models.NewReview(s.contractID, 3, "slow payer", "founder", s.now.Add(time.Minute))
	s.Require().NoError(err)

	s.Require().NoError(s.store.Append(ctx, first))
	s.Require().NoError(s.store.Append(ctx, second))

	reviews, err := s.store.ListByContract(ctx, s.contractID)
	s.Require().NoError(err)
	s.Require().Len(reviews, 2)
	s.Equal(5, reviews[0].Rating)
	s.Equal(id.Identity("alice"), reviews[0].Reviewer)
	s.Equal("slow payer", reviews[1].Comments)
}

func (s *PostgresReviewStoreSuite) TestListEmpty() {
	reviews, err := s.store.ListByContract(context.Background(), s.contractID)
	s.Require().NoError(err)
	s.Empty(reviews)
}

func (s *PostgresReviewStoreSuite) TestListScopedToContract() {
	ctx := context.Background()

	review, err := models.NewReview(s.contractID, 4, "fine", "alice", s.now)
	s.Require().NoError(err)
	s.Require().NoError(s.store.Append(ctx, review))

	other, err := s.store.ListByContract(ctx, s.contractID+1)
	s.Require().NoError(err)
	s.Empty(other)
}
