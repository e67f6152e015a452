package store

import (
	"context"
	"sync"

	"tenure/internal/contract/models"
	id "tenure/pkg/domain"
	"tenure/pkg/platform/sentinel"
)

// InMemory keeps contracts in process memory together with the derived
// company and credential indices. All mutations run under the table lock,
// which gives the per-entity serializability the engine requires; Mutate
// exposes that lock to callers for read-modify-write steps.
type InMemory struct {
	mu           sync.RWMutex
	nextID       id.ContractID
	contracts    map[id.ContractID]*models.Contract
	byCompany    map[id.CompanyID][]id.ContractID
	byCredential map[id.CredentialID][]id.ContractID
}

func NewInMemory() *InMemory {
	return &InMemory{
		nextID:       1,
		contracts:    make(map[id.ContractID]*models.Contract),
		byCompany:    make(map[id.CompanyID][]id.ContractID),
		byCredential: make(map[id.CredentialID][]id.ContractID),
	}
}

// Create assigns the next sequential id, stores the contract, and registers
// it under both indices in one atomic step.
func (s *InMemory) Create(_ context.Context, contract *models.Contract) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	contract.ID = s.nextID
	s.nextID++
	s.contracts[contract.ID] = contract.Clone()
	s.byCompany[contract.CompanyID] = append(s.byCompany[contract.CompanyID], contract.ID)
	s.byCredential[contract.CredentialID] = append(s.byCredential[contract.CredentialID], contract.ID)
	return nil
}

func (s *InMemory) FindByID(_ context.Context, contractID id.ContractID) (*models.Contract, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if contract, ok := s.contracts[contractID]; ok {
		return contract.Clone(), nil
	}
	return nil, sentinel.ErrNotFound
}

// Mutate runs fn on the stored contract under the table lock and persists
// the result if fn succeeds. fn returning an error leaves the record
// unchanged. The returned contract is a snapshot of the committed state.
func (s *InMemory) Mutate(_ context.Context, contractID id.ContractID, fn func(*models.Contract) error) (*models.Contract, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.contracts[contractID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	working := current.Clone()
	if err := fn(working); err != nil {
		return nil, err
	}
	s.contracts[contractID] = working
	return working.Clone(), nil
}

func (s *InMemory) ListByCompany(_ context.Context, companyID id.CompanyID) ([]*models.Contract, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := s.byCompany[companyID]
	out := make([]*models.Contract, 0, len(ids))
	for _, contractID := range ids {
		out = append(out, s.contracts[contractID].Clone())
	}
	return out, nil
}

func (s *InMemory) ListByCredential(_ context.Context, credentialID id.CredentialID) ([]*models.Contract, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := s.byCredential[credentialID]
	out := make([]*models.Contract, 0, len(ids))
	for _, contractID := range ids {
		out = append(out, s.contracts[contractID].Clone())
	}
	return out, nil
}
