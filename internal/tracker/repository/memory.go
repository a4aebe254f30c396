package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/GoSim-25-26J-441/tracker-gateway/internal/tracker/domain"
	"github.com/google/uuid"
)

// MemoryCollection keeps documents in process memory. Used for local runs and
// as the substitute store in tests. Documents are held JSON encoded so callers
// never share memory with the stored copy.
type MemoryCollection[T any, P document[T]] struct {
	mu       sync.RWMutex
	docs     map[string][]byte
	order    []string
	notFound error
}

func NewMemoryCollection[T any, P document[T]](notFound error) *MemoryCollection[T, P] {
	return &MemoryCollection[T, P]{
		docs:     make(map[string][]byte),
		notFound: notFound,
	}
}

func (m *MemoryCollection[T, P]) decode(id string, data []byte) (*T, error) {
	var doc T
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal document %s: %w", id, err)
	}
	P(&doc).SetID(id)
	return &doc, nil
}

func (m *MemoryCollection[T, P]) List(ctx context.Context) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]T, 0, len(m.order))
	for _, id := range m.order {
		doc, err := m.decode(id, m.docs[id])
		if err != nil {
			return nil, err
		}
		out = append(out, *doc)
	}
	return out, nil
}

func (m *MemoryCollection[T, P]) GetByID(ctx context.Context, id string) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.docs[id]
	if !ok {
		return nil, m.notFound
	}
	return m.decode(id, data)
}

func (m *MemoryCollection[T, P]) Create(ctx context.Context, doc *T) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := prepare[T, P](doc); err != nil {
		return nil, err
	}

	stored := *doc
	id := uuid.New().String()
	P(&stored).SetID(id)

	data, err := json.Marshal(stored)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal document: %w", err)
	}

	m.mu.Lock()
	m.docs[id] = data
	m.order = append(m.order, id)
	m.mu.Unlock()

	return m.decode(id, data)
}

func (m *MemoryCollection[T, P]) Delete(ctx context.Context, id string) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	data, ok := m.docs[id]
	if !ok {
		return nil, m.notFound
	}
	delete(m.docs, id)
	for i, v := range m.order {
		if v == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return m.decode(id, data)
}

func (m *MemoryCollection[T, P]) Update(ctx context.Context, id string, patch Patch[T]) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	data, ok := m.docs[id]
	if !ok {
		return nil, m.notFound
	}
	doc, err := m.decode(id, data)
	if err != nil {
		return nil, err
	}
	patch.Apply(doc)

	data, err = json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal document: %w", err)
	}
	m.docs[id] = data
	return m.decode(id, data)
}

// NewMemoryStore returns a Store backed by process memory.
func NewMemoryStore() *Store {
	return NewStore(
		"memory",
		NewMemoryCollection[domain.Client](domain.ErrClientNotFound),
		NewMemoryCollection[domain.Project](domain.ErrProjectNotFound),
		nil,
		nil,
	)
}
