package drafts

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

type memoryRepository struct {
	mu    sync.RWMutex
	byID  map[uuid.UUID]*Draft
	byKey map[string]uuid.UUID
}

// NewMemoryRepository constructs an in-memory draft repository.
func NewMemoryRepository() DraftRepository {
	return &memoryRepository{
		byID:  make(map[uuid.UUID]*Draft),
		byKey: make(map[string]uuid.UUID),
	}
}

func (m *memoryRepository) Create(_ context.Context, draft *Draft) (*Draft, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cloned := cloneDraft(draft)
	m.byID[cloned.ID] = cloned
	if cloned.Key != "" {
		m.byKey[cloned.Key] = cloned.ID
	}
	return cloneDraft(cloned), nil
}

func (m *memoryRepository) Update(_ context.Context, draft *Draft) (*Draft, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.byID[draft.ID]
	if !ok {
		return nil, &NotFoundError{Key: draft.ID.String()}
	}
	cloned := cloneDraft(draft)
	if existing.Key != "" && existing.Key != cloned.Key {
		delete(m.byKey, existing.Key)
	}
	m.byID[cloned.ID] = cloned
	if cloned.Key != "" {
		m.byKey[cloned.Key] = cloned.ID
	}
	return cloneDraft(cloned), nil
}

func (m *memoryRepository) GetByKey(_ context.Context, key string) (*Draft, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.byKey[key]
	if !ok {
		return nil, &NotFoundError{Key: key}
	}
	return cloneDraft(m.byID[id]), nil
}

func (m *memoryRepository) List(_ context.Context) ([]*Draft, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	records := make([]*Draft, 0, len(m.byID))
	for _, record := range m.byID {
		records = append(records, cloneDraft(record))
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Key < records[j].Key })
	return records, nil
}

func (m *memoryRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	record, ok := m.byID[id]
	if !ok {
		return nil
	}
	delete(m.byID, id)
	if record.Key != "" {
		delete(m.byKey, record.Key)
	}
	return nil
}
