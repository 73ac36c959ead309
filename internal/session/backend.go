package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// documentKey is the single key every keyed backend stores the collection under.
const documentKey = "checkin"

// Backend persists the whole collection. Saves always overwrite.
type Backend interface {
	Load(ctx context.Context) (Collection, error)
	Save(ctx context.Context, c Collection) error
}

// MemoryBackend keeps the serialized collection in memory.
type MemoryBackend struct {
	mu   sync.Mutex
	data []byte
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{}
}

func (m *MemoryBackend) Load(_ context.Context) (Collection, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return decode(m.data)
}

func (m *MemoryBackend) Save(_ context.Context, c Collection) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal collection: %w", err)
	}
	m.mu.Lock()
	m.data = data
	m.mu.Unlock()
	return nil
}

// decode treats an absent document as an empty collection.
func decode(data []byte) (Collection, error) {
	var c Collection
	if len(data) == 0 {
		return c, nil
	}
	if err := json.Unmarshal(data, &c); err != nil {
		return Collection{}, fmt.Errorf("parse collection: %w", err)
	}
	return c, nil
}
