package snapshot

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oakfield-edu/gradecast/internal/grades"
	"github.com/oakfield-edu/gradecast/internal/models"
)

func sampleRecord(id int) models.StudentRecord {
	return models.StudentRecord{
		ID:                id,
		Name:              "Alice",
		Subject:           "Mathematics",
		TargetGrade:       9,
		MockScores:        []float64{80, 90},
		TeacherAssessment: 85,
		GradeBoundaries:   grades.DefaultBoundaries(),
		PredictedGrade:    8,
		WeightedScore:     83,
		Progress:          grades.Report{Gap: 7, OnTrack: false, PercentageComplete: 92.22},
		CreatedAt:         time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "students.json")
	store := NewFileStore(path)

	doc := Document{
		Students: map[string]models.StudentRecord{"1": sampleRecord(1)},
		NextID:   2,
	}
	require.NoError(t, store.Save(doc))

	loaded, err := store.Load()
	require.NoError(t, err)
	require.Equal(t, 2, loaded.NextID)
	require.Len(t, loaded.Students, 1)
	require.Equal(t, doc.Students["1"], loaded.Students["1"])
	require.False(t, loaded.LastUpdated.IsZero())
}

func TestFileStoreLoadMissing(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "missing.json"))

	_, err := store.Load()
	require.ErrorIs(t, err, ErrNotFound)
}

func TestFileStoreLoadCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "students.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := NewFileStore(path).Load()
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrNotFound)
}

func TestFileStoreSaveCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "students.json")

	require.NoError(t, NewFileStore(path).Save(Document{NextID: 1}))

	_, err := os.Stat(path)
	require.NoError(t, err)
}

func TestFileStoreSaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(filepath.Join(dir, "students.json"))

	require.NoError(t, store.Save(Document{NextID: 1}))
	require.NoError(t, store.Save(Document{NextID: 2}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}
