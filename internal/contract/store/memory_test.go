package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"tenure/internal/contract/models"
	id "tenure/pkg/domain"
	"tenure/pkg/platform/sentinel"
)

type ContractStoreSuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
	now   time.Time
}

func TestContractStoreSuite(t *testing.T) {
	suite.Run(t, new(ContractStoreSuite))
}

func (s *ContractStoreSuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
	s.now = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
}

func (s *ContractStoreSuite) newContract(companyID id.CompanyID, credentialID id.CredentialID) *models.Contract {
	contract, err := models.NewContract(companyID, credentialID, "alice", 1000, time.Hour, "", "", "judge", s.now)
	s.Require().NoError(err)
	return contract
}

func (s *ContractStoreSuite) TestCreateAndFind() {
	s.Run("assigns sequential ids from one", func() {
		first := s.newContract(1, 1)
		second := s.newContract(1, 2)
		s.Require().NoError(s.store.Create(s.ctx, first))
		s.Require().NoError(s.store.Create(s.ctx, second))

		s.Equal(id.ContractID(1), first.ID)
		s.Equal(id.ContractID(2), second.ID)
	})

	s.Run("finds stored contracts", func() {
		contract := s.newContract(7, 3)
		s.Require().NoError(s.store.Create(s.ctx, contract))

		found, err := s.store.FindByID(s.ctx, contract.ID)
		s.Require().NoError(err)
		s.Equal(contract.CompanyID, found.CompanyID)
	})

	s.Run("returns ErrNotFound for unknown id", func() {
		_, err := s.store.FindByID(s.ctx, 404)
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("hands out snapshots, not shared state", func() {
		contract := s.newContract(1, 1)
		s.Require().NoError(s.store.Create(s.ctx, contract))

		found, err := s.store.FindByID(s.ctx, contract.ID)
		s.Require().NoError(err)
		found.Status = models.StatusTerminated

		again, err := s.store.FindByID(s.ctx, contract.ID)
		s.Require().NoError(err)
		s.Equal(models.StatusCreated, again.Status)
	})
}

func (s *ContractStoreSuite) TestMutate() {
	s.Run("commits successful mutations", func() {
		contract := s.newContract(1, 1)
		s.Require().NoError(s.store.Create(s.ctx, contract))

		updated, err := s.store.Mutate(s.ctx, contract.ID, func(c *models.Contract) error {
			return c.Transition(models.StatusActive, s.now)
		})
		s.Require().NoError(err)
		s.Equal(models.StatusActive, updated.Status)

		stored, err := s.store.FindByID(s.ctx, contract.ID)
		s.Require().NoError(err)
		s.Equal(models.StatusActive, stored.Status)
	})

	s.Run("a failing mutation leaves the record unchanged", func() {
		contract := s.newContract(1, 1)
		s.Require().NoError(s.store.Create(s.ctx, contract))

		boom := errors.New("boom")
		_, err := s.store.Mutate(s.ctx, contract.ID, func(c *models.Contract) error {
			c.Status = models.StatusCompleted
			c.Escrow.Balance = 999
			return boom
		})
		s.Require().ErrorIs(err, boom)

		stored, err := s.store.FindByID(s.ctx, contract.ID)
		s.Require().NoError(err)
		s.Equal(models.StatusCreated, stored.Status)
		s.Equal(int64(0), stored.Escrow.Balance)
	})

	s.Run("returns ErrNotFound for unknown id", func() {
		_, err := s.store.Mutate(s.ctx, 404, func(*models.Contract) error { return nil })
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})
}

func (s *ContractStoreSuite) TestIndices() {
	s.Run("lists by company and credential in creation order", func() {
		a := s.newContract(1, 10)
		b := s.newContract(1, 20)
		c := s.newContract(2, 10)
		for _, contract := range []*models.Contract{a, b, c} {
			s.Require().NoError(s.store.Create(s.ctx, contract))
		}

		byCompany, err := s.store.ListByCompany(s.ctx, 1)
		s.Require().NoError(err)
		s.Require().Len(byCompany, 2)
		s.Equal(a.ID, byCompany[0].ID)
		s.Equal(b.ID, byCompany[1].ID)

		byCredential, err := s.store.ListByCredential(s.ctx, 10)
		s.Require().NoError(err)
		s.Require().Len(byCredential, 2)
		s.Equal(a.ID, byCredential[0].ID)
		s.Equal(c.ID, byCredential[1].ID)
	})

	s.Run("unknown keys list empty", func() {
		byCompany, err := s.store.ListByCompany(s.ctx, 404)
		s.Require().NoError(err)
		s.Empty(byCompany)
	})
}
