package store

import (
	"context"
	"sync"
	"time"

	"tenure/internal/company/models"
	id "tenure/pkg/domain"
	"tenure/pkg/platform/sentinel"
)

// InMemory keeps companies in process memory. Ids are assigned
// sequentially from 1 with no gaps; the counter shares the table lock so
// assignment and insertion are one atomic step.
type InMemory struct {
	mu        sync.RWMutex
	nextID    id.CompanyID
	companies map[id.CompanyID]*models.Company
}

func NewInMemory() *InMemory {
	return &InMemory{
		nextID:    1,
		companies: make(map[id.CompanyID]*models.Company),
	}
}

// Create assigns the next sequential id and stores the company.
func (s *InMemory) Create(_ context.Context, company *models.Company) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	company.ID = s.nextID
	s.nextID++
	s.companies[company.ID] = company.Clone()
	return nil
}

func (s *InMemory) FindByID(_ context.Context, companyID id.CompanyID) (*models.Company, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if company, ok := s.companies[companyID]; ok {
		return company.Clone(), nil
	}
	return nil, sentinel.ErrNotFound
}

// AppendEmployee atomically adds a credential to the company's employee
// index.
func (s *InMemory) AppendEmployee(_ context.Context, companyID id.CompanyID, credentialID id.CredentialID, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	company, ok := s.companies[companyID]
	if !ok {
		return sentinel.ErrNotFound
	}
	company.EmployeeCredentials = append(company.EmployeeCredentials, credentialID)
	company.UpdatedAt = now
	return nil
}
