package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
)

const (
	authFileName    = "auth.json"
	companyFileName = "company.json"

	stateFileMode = 0o600
	stateDirMode  = 0o700
)

// FileStore persists each namespace as a JSON file under a state directory.
type FileStore struct {
	mu  sync.Mutex
	dir string
}

// NewFileStore creates the state directory if needed and returns a store
// over it.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, stateDirMode); err != nil {
		return nil, errors.Wrap(err, "create state dir")
	}

	return &FileStore{dir: dir}, nil
}

func (s *FileStore) LoadAuth() (AuthRecord, error) {
	var record AuthRecord
	err := s.load(authFileName, &record)

	return record, err
}

func (s *FileStore) SaveAuth(record AuthRecord) error {
	return s.save(authFileName, record)
}

func (s *FileStore) ClearAuth() error {
	return s.clear(authFileName)
}

func (s *FileStore) LoadCompany() (CompanyRecord, error) {
	var record CompanyRecord
	err := s.load(companyFileName, &record)

	return record, err
}

func (s *FileStore) SaveCompany(record CompanyRecord) error {
	return s.save(companyFileName, record)
}

func (s *FileStore) ClearCompany() error {
	return s.clear(companyFileName)
}

func (s *FileStore) load(name string, out any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}

		return errors.Wrapf(err, "read %s", name)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return errors.Wrapf(err, "decode %s", name)
	}

	return nil
}

func (s *FileStore) save(name string, record any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(record)
	if err != nil {
		return errors.Wrapf(err, "encode %s", name)
	}

	if err := os.WriteFile(filepath.Join(s.dir, name), data, stateFileMode); err != nil {
		return errors.Wrapf(err, "write %s", name)
	}

	return nil
}

func (s *FileStore) clear(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(filepath.Join(s.dir, name))
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "remove %s", name)
	}

	return nil
}
