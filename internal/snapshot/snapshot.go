// Package snapshot persists the full student store state as a single JSON
// document. Every mutation overwrites the whole document; there is no
// journaling, so the last completed write wins.
package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/oakfield-edu/gradecast/internal/models"
)

// ErrNotFound indicates no snapshot document exists at the configured path.
var ErrNotFound = errors.New("snapshot not found")

// Document is the on-disk shape of the store: the id keyed record map (keys as
// decimal strings), the next-id counter and the time of the last write.
type Document struct {
	Students    map[string]models.StudentRecord `json:"students"`
	NextID      int                             `json:"next_id"`
	LastUpdated time.Time                       `json:"last_updated"`
}

// FileStore reads and writes snapshot documents at a fixed path.
type FileStore struct {
	path string
	now  func() time.Time
}

// NewFileStore creates a snapshot store backed by the given file path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path, now: time.Now}
}

// Path returns the file the store reads and writes.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads and decodes the snapshot document.
func (s *FileStore) Load() (Document, error) {
	content, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return Document{}, ErrNotFound
		}
		return Document{}, fmt.Errorf("read snapshot: %w", err)
	}

	var doc Document
	if err := json.Unmarshal(content, &doc); err != nil {
		return Document{}, fmt.Errorf("decode snapshot: %w", err)
	}

	if doc.Students == nil {
		doc.Students = map[string]models.StudentRecord{}
	}

	return doc, nil
}

// Save writes the document, stamping last_updated. The write goes to a
// temporary file first and is renamed over the target so a crash mid-write
// cannot leave a truncated snapshot behind.
func (s *FileStore) Save(doc Document) error {
	doc.LastUpdated = s.now().UTC()

	content, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create snapshot directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".snapshot-*")
	if err != nil {
		return fmt.Errorf("create snapshot temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close snapshot temp file: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace snapshot: %w", err)
	}

	return nil
}
