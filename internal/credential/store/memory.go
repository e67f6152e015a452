package store

import (
	"context"
	"sync"

	"tenure/internal/credential/models"
	id "tenure/pkg/domain"
	"tenure/pkg/platform/sentinel"
)

// InMemory keeps credentials in process memory with a uniqueness index on
// owner identity: one credential per identity, checked and inserted under
// the same lock.
type InMemory struct {
	mu          sync.RWMutex
	nextID      id.CredentialID
	credentials map[id.CredentialID]*models.Credential
	byOwner     map[id.Identity]id.CredentialID
}

func NewInMemory() *InMemory {
	return &InMemory{
		nextID:      1,
		credentials: make(map[id.CredentialID]*models.Credential),
		byOwner:     make(map[id.Identity]id.CredentialID),
	}
}

// CreateIfOwnerFree assigns the next sequential id and stores the
// credential unless the owner already holds one.
func (s *InMemory) CreateIfOwnerFree(_ context.Context, credential *models.Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.byOwner[credential.Owner]; taken {
		return sentinel.ErrConflict
	}
	credential.ID = s.nextID
	s.nextID++
	s.credentials[credential.ID] = credential.Clone()
	s.byOwner[credential.Owner] = credential.ID
	return nil
}

func (s *InMemory) FindByID(_ context.Context, credentialID id.CredentialID) (*models.Credential, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if credential, ok := s.credentials[credentialID]; ok {
		return credential.Clone(), nil
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemory) FindByOwner(_ context.Context, owner id.Identity) (*models.Credential, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if credentialID, ok := s.byOwner[owner]; ok {
		return s.credentials[credentialID].Clone(), nil
	}
	return nil, sentinel.ErrNotFound
}
