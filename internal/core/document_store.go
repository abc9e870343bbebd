package core

import (
	"bytes"
	"fmt"
	"path/filepath"
	"sync"

	"lined/internal/linestore"
	"lined/internal/persist"
)

// DocumentStore abstracts where a document is loaded from and saved to, so
// the session can be tested without disk I/O.
type DocumentStore interface {
	Load() (*linestore.Store, error)
	Save(*linestore.Store) error
	Name() string
}

// FileDocumentStore implements DocumentStore using a file.
type FileDocumentStore struct {
	Path         string
	CapacityHint int
}

func NewFileDocumentStore(path string, capacityHint int) *FileDocumentStore {
	return &FileDocumentStore{Path: path, CapacityHint: capacityHint}
}

func (fs *FileDocumentStore) Load() (*linestore.Store, error) {
	return persist.LoadFile(fs.Path, fs.CapacityHint)
}

func (fs *FileDocumentStore) Save(doc *linestore.Store) error {
	return persist.SaveFile(doc, fs.Path)
}

func (fs *FileDocumentStore) Name() string {
	return filepath.Base(fs.Path)
}

// InMemoryDocumentStore implements DocumentStore for testing (no disk I/O).
type InMemoryDocumentStore struct {
	mu      sync.Mutex
	content []byte
	saves   int
	// SaveErr, when set, makes every Save fail with it.
	SaveErr error
}

func NewInMemoryDocumentStore(content string) *InMemoryDocumentStore {
	return &InMemoryDocumentStore{content: []byte(content)}
}

func (ms *InMemoryDocumentStore) Load() (*linestore.Store, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return persist.Load(bytes.NewReader(ms.content), 0)
}

func (ms *InMemoryDocumentStore) Save(doc *linestore.Store) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	if ms.SaveErr != nil {
		return fmt.Errorf("%w: %w", persist.ErrSinkUnavailable, ms.SaveErr)
	}
	var buf bytes.Buffer
	if err := persist.Save(doc, &buf); err != nil {
		return err
	}
	ms.content = buf.Bytes()
	ms.saves++
	return nil
}

func (ms *InMemoryDocumentStore) Name() string { return "[memory]" }

// Content returns the last saved bytes.
func (ms *InMemoryDocumentStore) Content() string {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return string(ms.content)
}

// Saves returns how many saves succeeded.
func (ms *InMemoryDocumentStore) Saves() int {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return ms.saves
}
