package engine

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/iwvelando/payment-clauses/internal/condicao"
)

// ErrNotFound is returned when no contract is stored under an id.
var ErrNotFound = errors.New("contract not found")

// Store keeps contract documents between requests. Implementations must
// return copies, so callers never share condition slices with the store.
type Store interface {
	Load(ctx context.Context, id uuid.UUID) (condicao.Contrato, error)
	Save(ctx context.Context, id uuid.UUID, contrato condicao.Contrato) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// MemoryStore is a Store backed by a map. It is safe for concurrent use.
type MemoryStore struct {
	mu        sync.RWMutex
	contratos map[uuid.UUID]condicao.Contrato
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{contratos: make(map[uuid.UUID]condicao.Contrato)}
}

func (s *MemoryStore) Load(ctx context.Context, id uuid.UUID) (condicao.Contrato, error) {
	if err := ctx.Err(); err != nil {
		return condicao.Contrato{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.contratos[id]
	if !ok {
		return condicao.Contrato{}, ErrNotFound
	}
	return c.Clone(), nil
}

func (s *MemoryStore) Save(ctx context.Context, id uuid.UUID, contrato condicao.Contrato) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.contratos[id] = contrato.Clone()
	return nil
}

// Delete removes the contract stored under id, or returns ErrNotFound.
func (s *MemoryStore) Delete(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.contratos[id]; !ok {
		return ErrNotFound
	}
	delete(s.contratos, id)
	return nil
}

// Len returns the number of stored contracts.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.contratos)
}
