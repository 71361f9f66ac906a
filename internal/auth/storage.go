//go:generate mockgen -source ${GOFILE} -destination mock/${GOFILE} -package mock -mock_names "Storage=Storage"
package auth

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// Storage holds the single current bearer token. Get returns an empty string
// when no token is stored. Writes are last-write-wins, there is no
// transactional guarantee across a Get-then-Set sequence.
type Storage interface {
	Get() (string, error)
	Set(token string) error
	Remove() error
}

type fileStorage struct {
	path string
}

// NewFileStorage persists the token in a single file under the given path,
// creating parent directories on the first Set.
func NewFileStorage(path string) Storage {
	return &fileStorage{path: path}
}

func (s *fileStorage) Get() (string, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read token file: %w", err)
	}

	return string(data), nil
}

func (s *fileStorage) Set(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create token dir: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(token), 0o600); err != nil {
		return fmt.Errorf("write token file: %w", err)
	}

	return nil
}

func (s *fileStorage) Remove() error {
	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove token file: %w", err)
	}

	return nil
}

type memoryStorage struct {
	mu    sync.RWMutex
	token string
}

// NewMemoryStorage keeps the token in memory only, for ephemeral sessions and
// tests.
func NewMemoryStorage() Storage {
	return &memoryStorage{}
}

func (s *memoryStorage) Get() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, nil
}

func (s *memoryStorage) Set(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

func (s *memoryStorage) Remove() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return nil
}
