package docstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// FileStore keeps each document as a single JSON file under a root
// directory. The file holds an envelope with the revision and the raw
// content, so a document survives process restarts with its revision
// intact.
type FileStore struct {
	root string
	mu   sync.Mutex
}

type fileEnvelope struct {
	Rev  int64           `json:"rev"`
	Data json.RawMessage `json:"data"`
}

// NewFileStore creates a store rooted at dir. The directory is created on
// the first write, not here, so opening a store is always cheap.
func NewFileStore(dir string) *FileStore {
	return &FileStore{root: dir}
}

func (s *FileStore) path(name string) string {
	return filepath.Join(s.root, name+".json")
}

func (s *FileStore) Get(name string) (Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read(name)
}

func (s *FileStore) read(name string) (Document, error) {
	raw, err := os.ReadFile(s.path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return Document{Name: name}, ErrNotFound
	}
	if err != nil {
		return Document{}, fmt.Errorf("could not read document %q: %w", name, err)
	}
	var env fileEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return Document{}, fmt.Errorf("could not decode document %q: %w", name, err)
	}
	return Document{Name: name, Data: env.Data, Rev: env.Rev}, nil
}

func (s *FileStore) Set(doc Document) (Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.read(doc.Name)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return Document{}, err
	}
	if doc.Rev != current.Rev {
		return Document{}, ErrRevisionConflict
	}

	if err := os.MkdirAll(s.root, 0755); err != nil {
		return Document{}, fmt.Errorf("could not create store directory %q: %w", s.root, err)
	}

	env := fileEnvelope{Rev: doc.Rev + 1, Data: doc.Data}
	raw, err := json.MarshalIndent(env, "", " ")
	if err != nil {
		return Document{}, fmt.Errorf("could not encode document %q: %w", doc.Name, err)
	}

	// Write to a sibling temp file and rename, so a crash mid-write never
	// leaves a truncated document behind.
	tmp := s.path(doc.Name) + ".tmp"
	if err := os.WriteFile(tmp, raw, 0644); err != nil {
		return Document{}, fmt.Errorf("could not write document %q: %w", doc.Name, err)
	}
	if err := os.Rename(tmp, s.path(doc.Name)); err != nil {
		return Document{}, fmt.Errorf("could not replace document %q: %w", doc.Name, err)
	}

	doc.Rev = env.Rev
	return doc, nil
}
