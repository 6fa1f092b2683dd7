package storage

import (
	"context"
	"sync"

	"pos-service/internal/model"
)

// Memory keeps the encoded slot in process memory. Nothing survives a
// restart; it backs tests and throwaway demo runs.
type Memory struct {
	mu   sync.Mutex
	data []byte
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Load(ctx context.Context) (model.State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Decode(m.data)
}

func (m *Memory) Save(ctx context.Context, state model.State) error {
	data, err := Encode(state)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.data = data
	m.mu.Unlock()
	return nil
}

// Bytes returns the raw envelope currently held
func (m *Memory) Bytes() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]byte, len(m.data))
	copy(out, m.data)
	return out
}
