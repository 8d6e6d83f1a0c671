package dal

import (
	"context"
	"sync"

	"github.com/pkg/errors"
)

type memoryStorage struct {
	mu     sync.RWMutex
	values map[string][]byte
}

func (s *memoryStorage) Setup(ctx context.Context) error {
	logger.Info(ctx, "Setup memory storage")
	return nil
}

func (s *memoryStorage) GetValue(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.values[key]
	if !ok {
		return nil, errors.Wrapf(ErrKeyNotFound, "Failed to get value of %v", key)
	}
	return append([]byte(nil), value...), nil
}

func (s *memoryStorage) SaveValue(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = append([]byte(nil), value...)
	return nil
}

// NewMemoryStorage returns a storage that keeps values in memory only.
// Values are lost when the process exits
func NewMemoryStorage() Storage {
	return &memoryStorage{values: map[string][]byte{}}
}
