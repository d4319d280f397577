package store

import "sync"

// MemStore is an in-memory Store used by tests and ephemeral sessions.
type MemStore struct {
	mu      sync.Mutex
	auth    AuthRecord
	company CompanyRecord
}

func NewMemStore() *MemStore {
	return &MemStore{}
}

func (s *MemStore) LoadAuth() (AuthRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.auth, nil
}

func (s *MemStore) SaveAuth(record AuthRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.auth = record

	return nil
}

func (s *MemStore) ClearAuth() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.auth = AuthRecord{}

	return nil
}

func (s *MemStore) LoadCompany() (CompanyRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.company, nil
}

func (s *MemStore) SaveCompany(record CompanyRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.company = record

	return nil
}

func (s *MemStore) ClearCompany() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.company = CompanyRecord{}

	return nil
}
