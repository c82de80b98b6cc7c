package acctsync

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/nholm/acctsync/docstore"
)

// The logical documents held in the store. Every sync operation reads a
// whole document, computes the next state, and writes the whole document
// back; the store's revision check serializes competing passes.
const (
	DocPortfolioRecords = "portfolio-records"
	DocPerformanceStore = "performance-store"
	DocDirectory        = "account-directory"
	DocManualGroups     = "manual-groups"
)

// Engine orchestrates the reconciliation passes over the document store.
type Engine struct {
	Store    docstore.Store
	Notifier Notifier

	// Now is the engine clock, injectable for tests. It decides the
	// "current year" both passes operate on.
	Now func() time.Time
}

// NewEngine creates an engine over the given store with the wall clock and
// a no-op notifier.
func NewEngine(store docstore.Store) *Engine {
	return &Engine{Store: store, Notifier: NopNotifier{}, Now: time.Now}
}

func (e *Engine) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

func (e *Engine) year() int { return e.now().Year() }

// loadDocument reads and decodes a whole document. A document that was
// never written decodes as the zero value with revision 0, so first use
// needs no initialization step.
func loadDocument[T any](store docstore.Store, name string) (value T, rev int64, err error) {
	doc, err := store.Get(name)
	if errors.Is(err, docstore.ErrNotFound) {
		return value, 0, nil
	}
	if err != nil {
		return value, 0, err
	}
	if err := json.Unmarshal(doc.Data, &value); err != nil {
		return value, 0, fmt.Errorf("could not decode document %q: %w", name, err)
	}
	return value, doc.Rev, nil
}

// saveDocument encodes and writes a whole document at the given revision.
func saveDocument(store docstore.Store, name string, value any, rev int64) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("could not encode document %q: %w", name, err)
	}
	if _, err := store.Set(docstore.Document{Name: name, Data: data, Rev: rev}); err != nil {
		return fmt.Errorf("could not save document %q: %w", name, err)
	}
	return nil
}

// PortfolioRecords loads the full portfolio history, oldest first.
func (e *Engine) PortfolioRecords() ([]PortfolioRecord, error) {
	records, _, err := loadDocument[[]PortfolioRecord](e.Store, DocPortfolioRecords)
	return records, err
}

// LatestPortfolioRecord returns the most recent committed record, selected
// by update date descending; among same-day records the one committed last
// wins. Returns nil if no record was ever committed.
func LatestPortfolioRecord(records []PortfolioRecord) *PortfolioRecord {
	var latest *PortfolioRecord
	for i := range records {
		if latest == nil || !records[i].UpdateDate.Before(latest.UpdateDate) {
			latest = &records[i]
		}
	}
	return latest
}

// PerformanceEntries loads the full performance store.
func (e *Engine) PerformanceEntries() (PerformanceStore, error) {
	store, _, err := loadDocument[PerformanceStore](e.Store, DocPerformanceStore)
	if store == nil {
		store = PerformanceStore{}
	}
	return store, err
}

// Directory loads the shared account directory.
func (e *Engine) Directory() ([]DirectoryEntry, error) {
	entries, _, err := loadDocument[[]DirectoryEntry](e.Store, DocDirectory)
	return entries, err
}

// Groups loads the manual group registry.
func (e *Engine) Groups() (ManualGroups, error) {
	groups, _, err := loadDocument[ManualGroups](e.Store, DocManualGroups)
	if groups == nil {
		groups = ManualGroups{}
	}
	return groups, err
}

// UpdateGroups loads the registry, applies fn, and saves the whole
// document back at the revision it was read at.
func (e *Engine) UpdateGroups(fn func(ManualGroups) error) error {
	groups, rev, err := loadDocument[ManualGroups](e.Store, DocManualGroups)
	if err != nil {
		return err
	}
	if groups == nil {
		groups = ManualGroups{}
	}
	if err := fn(groups); err != nil {
		return err
	}
	return saveDocument(e.Store, DocManualGroups, groups, rev)
}
