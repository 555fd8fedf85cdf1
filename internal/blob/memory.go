package blob

import (
	"context"
	"fmt"
	"sync"

	"github.com/siddheshbandgar/read-it-aloud/internal/models"
)

type memoryObject struct {
	data        []byte
	contentType string
}

// Memory keeps audio in process memory. URLs point at the server's own
// /audio/{key} route, which reads back through this store.
type Memory struct {
	mu      sync.RWMutex
	objects map[string]memoryObject
	baseURL string
}

// NewMemory returns an empty in-memory blob store.
func NewMemory(baseURL string) *Memory {
	return &Memory{objects: make(map[string]memoryObject), baseURL: baseURL}
}

func (m *Memory) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := make([]byte, len(data))
	copy(stored, data)
	m.objects[key] = memoryObject{data: stored, contentType: contentType}
	return fmt.Sprintf("%s/audio/%s", m.baseURL, key), nil
}

func (m *Memory) Get(ctx context.Context, key string) ([]byte, string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	obj, ok := m.objects[key]
	if !ok {
		return nil, "", models.ErrNotFound
	}
	return obj.data, obj.contentType, nil
}

func (m *Memory) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.objects[key]; !ok {
		return models.ErrNotFound
	}
	delete(m.objects, key)
	return nil
}
