// Package store holds student records in memory, keyed by id with insertion
// order preserved, and mirrors every mutation into a snapshot document.
package store

import (
	"errors"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/oakfield-edu/gradecast/internal/models"
	"github.com/oakfield-edu/gradecast/internal/snapshot"
)

// ErrNotFound indicates no record exists for the requested id.
var ErrNotFound = errors.New("student record not found")

// Snapshotter persists and restores the store's full state.
type Snapshotter interface {
	Load() (snapshot.Document, error)
	Save(snapshot.Document) error
}

// StudentStore provides ordered access to student records.
type StudentStore interface {
	Create(record models.StudentRecord) models.StudentRecord
	Get(id int) (models.StudentRecord, error)
	List() []models.StudentRecord
	Delete(id int) (models.StudentRecord, error)
	Count() int
}

type studentStore struct {
	mu      sync.Mutex
	records map[int]models.StudentRecord
	order   []int
	nextID  int
	snaps   Snapshotter
	logger  zerolog.Logger
	now     func() time.Time
}

// NewStudentStore builds a store seeded from the snapshotter's last document.
// A missing or unreadable snapshot is logged and the store starts empty with
// next-id 1; construction never fails.
func NewStudentStore(snaps Snapshotter, logger zerolog.Logger) StudentStore {
	s := &studentStore{
		records: map[int]models.StudentRecord{},
		nextID:  1,
		snaps:   snaps,
		logger:  logger.With().Str("component", "student_store").Logger(),
		now:     time.Now,
	}

	if snaps == nil {
		return s
	}

	doc, err := snaps.Load()
	if err != nil {
		if errors.Is(err, snapshot.ErrNotFound) {
			s.logger.Info().Msg("no snapshot found, starting with an empty store")
		} else {
			s.logger.Warn().Err(err).Msg("failed to load snapshot, starting with an empty store")
		}
		return s
	}

	s.restore(doc)
	s.logger.Info().Int("students", len(s.records)).Int("next_id", s.nextID).Msg("restored store from snapshot")

	return s
}

// Create assigns the next id and the creation timestamp, stores the record and
// persists the snapshot before returning.
func (s *studentStore) Create(record models.StudentRecord) models.StudentRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	record.ID = s.nextID
	record.CreatedAt = s.now().UTC()
	s.nextID++

	s.records[record.ID] = record
	s.order = append(s.order, record.ID)

	s.persist()

	return record
}

func (s *studentStore) Get(id int) (models.StudentRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.records[id]
	if !ok {
		return models.StudentRecord{}, ErrNotFound
	}
	return record, nil
}

// List returns all records in insertion order.
func (s *studentStore) List() []models.StudentRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.StudentRecord, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.records[id])
	}
	return out
}

// Delete removes the record, persists the snapshot and returns the removed record.
func (s *studentStore) Delete(id int) (models.StudentRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.records[id]
	if !ok {
		return models.StudentRecord{}, ErrNotFound
	}

	delete(s.records, id)
	for i, ordered := range s.order {
		if ordered == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}

	s.persist()

	return record, nil
}

func (s *studentStore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

// persist writes the current state through the snapshotter. Failures are
// logged and swallowed: the in-memory state stays authoritative for this
// process even when the on-disk copy falls behind. Callers must hold s.mu.
func (s *studentStore) persist() {
	if s.snaps == nil {
		return
	}

	doc := snapshot.Document{
		Students: make(map[string]models.StudentRecord, len(s.records)),
		NextID:   s.nextID,
	}
	for id, record := range s.records {
		doc.Students[strconv.Itoa(id)] = record
	}

	if err := s.snaps.Save(doc); err != nil {
		s.logger.Error().Err(err).Msg("failed to persist snapshot")
	}
}

// restore rebuilds the map and insertion order from a snapshot document.
// Ordering follows record ids, which the store assigns monotonically, so
// insertion order survives the round trip. Malformed keys are skipped.
func (s *studentStore) restore(doc snapshot.Document) {
	ids := make([]int, 0, len(doc.Students))
	for key, record := range doc.Students {
		id, err := strconv.Atoi(key)
		if err != nil {
			s.logger.Warn().Str("key", key).Msg("skipping snapshot entry with malformed id")
			continue
		}
		s.records[id] = record
		ids = append(ids, id)
	}

	sort.Ints(ids)
	s.order = ids

	if doc.NextID > 0 {
		s.nextID = doc.NextID
	}
	for _, id := range ids {
		if id >= s.nextID {
			s.nextID = id + 1
		}
	}
}
