package store

import (
	"context"
	"sync"

	"tenure/internal/review/models"
	id "tenure/pkg/domain"
)

// InMemory keeps reviews in process memory, append-only per contract.
type InMemory struct {
	mu      sync.RWMutex
	reviews map[id.ContractID][]models.Review
}

func NewInMemory() *InMemory {
	return &InMemory{reviews: make(map[id.ContractID][]models.Review)}
}

func (s *InMemory) Append(_ context.Context, review *models.Review) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reviews[review.ContractID] = append(s.reviews[review.ContractID], *review)
	return nil
}

// ListByContract returns reviews in submission order.
func (s *InMemory) ListByContract(_ context.Context, contractID id.ContractID) ([]models.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Review{}, s.reviews[contractID]...), nil
}
