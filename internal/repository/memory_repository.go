package repository

import (
	"context"
	"sync"
)

type memoryRepository struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

// NewMemoryRepository returns a process-local StateRepository. Nothing
// survives a restart.
func NewMemoryRepository() StateRepository {
	return &memoryRepository{blobs: make(map[string][]byte)}
}

func (r *memoryRepository) Load(ctx context.Context, namespace string) ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	blob, ok := r.blobs[namespace]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), blob...), nil
}

func (r *memoryRepository) Save(ctx context.Context, namespace string, blob []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.blobs[namespace] = append([]byte(nil), blob...)
	return nil
}

func (r *memoryRepository) Delete(ctx context.Context, namespace string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.blobs, namespace)
	return nil
}
