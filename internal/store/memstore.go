package store

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// MemStore implements Store in memory. Safe for concurrent use.
type MemStore struct {
	mu   sync.Mutex
	byID map[string]*Conversion
	seq  map[string]int // insertion order, breaks CreatedAt ties
	next int
}

// NewMemStore returns an empty MemStore.
func NewMemStore() *MemStore {
	return &MemStore{
		byID: make(map[string]*Conversion),
		seq:  make(map[string]int),
	}
}

func (s *MemStore) Save(c *Conversion) error {
	if c == nil {
		return errors.New("conversion is nil")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	stamp(c)
	if _, exists := s.byID[c.ID]; exists {
		return fmt.Errorf("insert conversion: duplicate id %s", c.ID)
	}
	cp := *c
	s.byID[cp.ID] = &cp
	s.next++
	s.seq[cp.ID] = s.next
	return nil
}

func (s *MemStore) Get(id string) (*Conversion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	cp := *v
	return &cp, nil
}

func (s *MemStore) List(opts ListOptions) ([]*Conversion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Conversion, 0, len(s.byID))
	for _, v := range s.byID {
		if opts.LeadCode != "" && v.LeadCode != opts.LeadCode {
			continue
		}
		cp := *v
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return s.seq[out[i].ID] > s.seq[out[j].ID]
	})
	if opts.Limit > 0 && len(out) > opts.Limit {
		out = out[:opts.Limit]
	}
	return out, nil
}

func (s *MemStore) Close() error { return nil }
