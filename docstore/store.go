// Package docstore persists whole JSON documents by name.
//
// Every document is read and written in full: there are no partial updates.
// A revision number guards each write so that two overlapping
// read-compute-write passes against the same document cannot silently
// clobber each other; the loser fails with [ErrRevisionConflict] and it is
// up to the caller to re-read and decide.
package docstore

import "errors"

var (
	// ErrNotFound is returned by Get for a document that was never written.
	ErrNotFound = errors.New("docstore: document not found")
	// ErrRevisionConflict is returned by Set when the caller's revision is
	// not the store's current revision for that document.
	ErrRevisionConflict = errors.New("docstore: revision conflict")
)

// Document is a named JSON document with its revision.
//
// Rev is 0 for a document that does not exist yet; a caller creating a
// document passes Rev 0 and the write fails if someone else created it
// in the meantime.
type Document struct {
	Name string
	Data []byte // raw JSON content
	Rev  int64
}

// Store is the persistence collaborator. Implementations must be safe for
// concurrent use.
type Store interface {
	// Get returns the current content and revision of the named document,
	// or ErrNotFound if it was never written.
	Get(name string) (Document, error)

	// Set replaces the full content of doc.Name. The write succeeds only
	// if doc.Rev equals the stored revision (0 for a new document), and
	// returns the document with its new revision.
	Set(doc Document) (Document, error)
}
