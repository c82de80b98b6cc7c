package docstore

import "sync"

// MemStore is an in-memory Store. The zero value is ready to use.
type MemStore struct {
	mu   sync.Mutex
	docs map[string]Document
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore { return &MemStore{} }

func (s *MemStore) Get(name string) (Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[name]
	if !ok {
		return Document{Name: name}, ErrNotFound
	}
	// Copy the content so callers cannot mutate the stored bytes.
	data := make([]byte, len(doc.Data))
	copy(data, doc.Data)
	doc.Data = data
	return doc, nil
}

func (s *MemStore) Set(doc Document) (Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.docs == nil {
		s.docs = make(map[string]Document)
	}
	current, exists := s.docs[doc.Name]
	switch {
	case !exists && doc.Rev != 0:
		return Document{}, ErrRevisionConflict
	case exists && doc.Rev != current.Rev:
		return Document{}, ErrRevisionConflict
	}
	data := make([]byte, len(doc.Data))
	copy(data, doc.Data)
	stored := Document{Name: doc.Name, Data: data, Rev: doc.Rev + 1}
	s.docs[doc.Name] = stored
	return stored, nil
}
