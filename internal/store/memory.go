package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/candlepilots/planguard/pkg/plan"
)

// MemoryStore is an in-memory Store used in tests and local development.
// Behavior mirrors PostgresStore, including the one-business-per-owner
// constraint.
type MemoryStore struct {
	mu            sync.RWMutex
	businesses    map[uuid.UUID]Business     // keyed by business ID
	byOwner       map[uuid.UUID]uuid.UUID    // owner ID -> business ID
	subscriptions map[uuid.UUID]Subscription // keyed by business ID
	resources     map[uuid.UUID][]Resource   // keyed by business ID
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		businesses:    make(map[uuid.UUID]Business),
		byOwner:       make(map[uuid.UUID]uuid.UUID),
		subscriptions: make(map[uuid.UUID]Subscription),
		resources:     make(map[uuid.UUID][]Resource),
	}
}

func (m *MemoryStore) FindBusinessByOwner(_ context.Context, ownerID uuid.UUID) (BusinessWithSubscription, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	businessID, ok := m.byOwner[ownerID]
	if !ok {
		return BusinessWithSubscription{}, ErrBusinessNotFound
	}

	result := BusinessWithSubscription{Business: m.businesses[businessID]}
	if sub, ok := m.subscriptions[businessID]; ok {
		subCopy := sub
		result.Subscription = &subCopy
	}
	return result, nil
}

func (m *MemoryStore) CountResources(_ context.Context, businessID uuid.UUID, kind plan.Resource) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var count int64
	for _, res := range m.resources[businessID] {
		if res.Kind == kind {
			count++
		}
	}
	return count, nil
}

func (m *MemoryStore) CreateBusiness(_ context.Context, b *Business) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.byOwner[b.OwnerID]; exists {
		return ErrDuplicateOwner
	}

	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now().UTC()
	}

	m.businesses[b.ID] = *b
	m.byOwner[b.OwnerID] = b.ID
	return nil
}

func (m *MemoryStore) UpsertSubscription(_ context.Context, sub *Subscription) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.businesses[sub.BusinessID]; !exists {
		return ErrBusinessNotFound
	}

	now := time.Now().UTC()
	if existing, ok := m.subscriptions[sub.BusinessID]; ok {
		sub.CreatedAt = existing.CreatedAt
	} else if sub.CreatedAt.IsZero() {
		sub.CreatedAt = now
	}
	sub.UpdatedAt = now

	m.subscriptions[sub.BusinessID] = *sub
	return nil
}

func (m *MemoryStore) InsertResource(_ context.Context, res *Resource) error {
	if _, ok := resourceTables[res.Kind]; !ok {
		return errors.Join(plan.ErrUnknownResource, errors.New(string(res.Kind)))
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.businesses[res.BusinessID]; !exists {
		return ErrBusinessNotFound
	}

	if res.ID == uuid.Nil {
		res.ID = uuid.New()
	}
	if res.CreatedAt.IsZero() {
		res.CreatedAt = time.Now().UTC()
	}

	m.resources[res.BusinessID] = append(m.resources[res.BusinessID], *res)
	return nil
}
