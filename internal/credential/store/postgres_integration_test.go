//go:build integration

package store_test

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	companymodels "tenure/internal/company/models"
	companystore "tenure/internal/company/store"
	"tenure/internal/credential/models"
	credentialstore "tenure/internal/credential/store"
	id "tenure/pkg/domain"
	"tenure/pkg/platform/sentinel"
	"tenure/pkg/testutil/containers"
)

type PostgresCredentialStoreSuite struct {
	suite.Suite
	postgres  *containers.PostgresContainer
	store     *credentialstore.PostgresStore
	companyID id.CompanyID
	now       time.Time
}

func TestPostgresCredentialStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresCredentialStoreSuite))
}

func (s *PostgresCredentialStoreSuite) SetupSuite() {
	mgr := containers.GetManager()
	s.postgres = mgr.GetPostgres(s.T())
	s.store = credentialstore.NewPostgres(s.postgres.DB)
}

func (s *PostgresCredentialStoreSuite) SetupTest() {
	ctx := context.Background()
	s.Require().NoError(s.postgres.TruncateTables(ctx,
		"reviews", "contracts", "company_employees", "credentials", "companies"))
	s.now = time.Now().UTC().Truncate(time.Microsecond)

	company, err := companymodels.NewCompany("Acme", "software", "founder", s.now)
	s.Require().NoError(err)
	s.Require().NoError(companystore.NewPostgres(s.postgres.DB).Create(ctx, company))
	s.companyID = company.ID
}

func (s *PostgresCredentialStoreSuite) TestCreateAndFind() {
	ctx := context.Background()

	credential, err := models.NewCredential(s.companyID, "alice", "ipfs://meta", s.now)
	s.Require().NoError(err)
	s.Require().NoError(s.store.CreateIfOwnerFree(ctx, credential))
	s.True(credential.ID.Valid())

	byID, err := s.store.FindByID(ctx, credential.ID)
	s.Require().NoError(err)
	s.Equal(id.Identity("alice"), byID.Owner)
	s.True(byID.Locked)

	byOwner, err := s.store.FindByOwner(ctx, "alice")
	s.Require().NoError(err)
	s.Equal(credential.ID, byOwner.ID)

	_, err = s.store.FindByID(ctx, 404)
	s.ErrorIs(err, sentinel.ErrNotFound)
	_, err = s.store.FindByOwner(ctx, "nobody")
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresCredentialStoreSuite) TestDuplicateOwnerConflicts() {
	ctx := context.Background()

	first, err := models.NewCredential(s.companyID, "alice", "", s.now)
	s.Require().NoError(err)
	s.Require().NoError(s.store.CreateIfOwnerFree(ctx, first))

	second, err := models.NewCredential(s.companyID, "alice", "", s.now)
	s.Require().NoError(err)
	s.ErrorIs(s.store.CreateIfOwnerFree(ctx, second), sentinel.ErrConflict)
}

// TestConcurrentMintsSameOwner races N inserts for one identity against the
// UNIQUE constraint. Exactly one wins.
func (s *PostgresCredentialStoreSuite) TestConcurrentMintsSameOwner() {
	ctx := context.Background()

	const goroutines = 10
	var (
		wg        sync.WaitGroup
		created   atomic.Int32
		conflicts atomic.Int32
	)
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			credential, err := models.NewCredential(s.companyID, "alice", "", s.now)
			if !s.NoError(err) {
				return
			}
			switch err := s.store.CreateIfOwnerFree(ctx, credential); {
			case err == nil:
				created.Add(1)
			case err == sentinel.ErrConflict:
				conflicts.Add(1)
			default:
				s.Failf("unexpected error", "%v", err)
			}
		}()
	}
	wg.Wait()

	s.Equal(int32(1), created.Load())
	s.Equal(int32(goroutines-1), conflicts.Load())
}

func (s *PostgresCredentialStoreSuite) TestDistinctOwners() {
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		credential, err := models.NewCredential(s.companyID, id.Identity(fmt.Sprintf("employee-%d", i)), "", s.now)
		s.Require().NoError(err)
		s.Require().NoError(s.store.CreateIfOwnerFree(ctx, credential))
	}

	found, err := s.store.FindByOwner(ctx, "employee-2")
	s.Require().NoError(err)
	s.Equal(s.companyID, found.CompanyID)
}
