// Package memory is an in-process résumé store.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"resumematch/internal/domain"
)

// Storage keeps résumés in insertion order. Replacing a name keeps its position.
type Storage struct {
	mu    sync.RWMutex
	index map[string]int
	docs  []domain.StoredDocument
}

func NewStorage() *Storage { return &Storage{index: make(map[string]int)} }

func (s *Storage) LoadAll(ctx context.Context) ([]domain.StoredDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.StoredDocument, len(s.docs))
	copy(out, s.docs)
	return out, nil
}

func (s *Storage) Get(ctx context.Context, name string) (domain.StoredDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.index[name]
	if !ok {
		return domain.StoredDocument{}, fmt.Errorf("%s: %w", name, domain.ErrNotFound)
	}
	return s.docs[i], nil
}

func (s *Storage) Upsert(ctx context.Context, doc domain.Document, contentHash string, uploadedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := domain.StoredDocument{Document: doc, ContentHash: contentHash, UploadedAt: uploadedAt}
	if i, ok := s.index[doc.Name]; ok {
		s.docs[i] = stored
		return nil
	}
	s.index[doc.Name] = len(s.docs)
	s.docs = append(s.docs, stored)
	return nil
}

func (s *Storage) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.index[name]
	if !ok {
		return fmt.Errorf("%s: %w", name, domain.ErrNotFound)
	}
	s.docs = append(s.docs[:i], s.docs[i+1:]...)
	delete(s.index, name)
	for j := i; j < len(s.docs); j++ {
		s.index[s.docs[j].Name] = j
	}
	return nil
}
