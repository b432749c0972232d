package mock

import (
	"context"
	"sync"

	"github.com/waichung/safetyhub"
)

// Compile-time interface checks
var (
	_ safetyhub.SettingsService = (*SettingsService)(nil)
	_ safetyhub.SettingsStore   = (*SettingsStore)(nil)
)

// SettingsService is a mock implementation of safetyhub.SettingsService.
type SettingsService struct {
	GetListFn func(ctx context.Context, kind safetyhub.ListKind) ([]string, error)
	PutListFn func(ctx context.Context, kind safetyhub.ListKind, items []string) error
}

func (s *SettingsService) GetList(ctx context.Context, kind safetyhub.ListKind) ([]string, error) {
	if s.GetListFn != nil {
		return s.GetListFn(ctx, kind)
	}
	return safetyhub.DefaultList(kind), nil
}

func (s *SettingsService) PutList(ctx context.Context, kind safetyhub.ListKind, items []string) error {
	if s.PutListFn != nil {
		return s.PutListFn(ctx, kind, items)
	}
	return nil
}

// SettingsStore is an in-memory safetyhub.SettingsStore for service tests.
type SettingsStore struct {
	mu    sync.Mutex
	lists map[safetyhub.ListKind][]string

	PutErr error
	GetErr error
}

// NewSettingsStore creates an empty in-memory store.
func NewSettingsStore() *SettingsStore {
	return &SettingsStore{
		lists: make(map[safetyhub.ListKind][]string),
	}
}

func (s *SettingsStore) PutList(ctx context.Context, kind safetyhub.ListKind, items []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.PutErr != nil {
		return s.PutErr
	}
	s.lists[kind] = append([]string(nil), items...)
	return nil
}

func (s *SettingsStore) GetList(ctx context.Context, kind safetyhub.ListKind) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.GetErr != nil {
		return nil, s.GetErr
	}
	items, ok := s.lists[kind]
	if !ok {
		return nil, nil
	}
	return append([]string(nil), items...), nil
}
