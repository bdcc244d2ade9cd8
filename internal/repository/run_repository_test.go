package repository

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jengzang/run-tracker-go/internal/database"
	"github.com/jengzang/run-tracker-go/internal/models"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.Open(database.Config{
		Path: filepath.Join(t.TempDir(), "runs_test.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func testRun(id string, start time.Time) *models.Run {
	return &models.Run{
		ID:             id,
		StartTime:      start.UnixMilli(),
		EndTime:        start.Add(30 * time.Minute).UnixMilli(),
		DurationMs:     (25 * time.Minute).Milliseconds(),
		DistanceMeters: 5000,
		Coordinates: []models.Coordinate{
			{Longitude: 13.413215, Latitude: 52.521918},
			{Longitude: 13.411000, Latitude: 52.522500},
		},
	}
}

func TestRunRepositorySaveAndGet(t *testing.T) {
	repo := NewRunRepository(testDB(t), 0)

	start := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	want := testRun("run-1", start)
	require.NoError(t, repo.Save(want))

	got, err := repo.GetRunByID("run-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, want.StartTime, got.StartTime)
	assert.Equal(t, want.EndTime, got.EndTime)
	assert.Equal(t, want.DurationMs, got.DurationMs)
	assert.Equal(t, want.DistanceMeters, got.DistanceMeters)
	assert.Equal(t, want.Coordinates, got.Coordinates)
}

func TestRunRepositoryGetMissing(t *testing.T) {
	repo := NewRunRepository(testDB(t), 0)

	got, err := repo.GetRunByID("nope")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRunRepositoryListNewestFirst(t *testing.T) {
	repo := NewRunRepository(testDB(t), 0)

	base := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Save(testRun(fmt.Sprintf("run-%d", i), base.Add(time.Duration(i)*time.Hour))))
	}

	runs, total, err := repo.GetRuns(models.RunFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, runs, 3)
	assert.Equal(t, "run-2", runs[0].ID)
	assert.Equal(t, "run-1", runs[1].ID)
	assert.Equal(t, "run-0", runs[2].ID)
}

func TestRunRepositoryFilterAndPagination(t *testing.T) {
	repo := NewRunRepository(testDB(t), 0)

	base := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		run := testRun(fmt.Sprintf("run-%d", i), base.Add(time.Duration(i)*time.Hour))
		run.DistanceMeters = float64(1000 * (i + 1))
		require.NoError(t, repo.Save(run))
	}

	t.Run("start time filter", func(t *testing.T) {
		runs, total, err := repo.GetRuns(models.RunFilter{
			StartTime: base.Add(3 * time.Hour).UnixMilli(),
		})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Len(t, runs, 2)
	})

	t.Run("min distance filter", func(t *testing.T) {
		runs, total, err := repo.GetRuns(models.RunFilter{MinDistance: 4000})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Len(t, runs, 2)
	})

	t.Run("pagination", func(t *testing.T) {
		runs, total, err := repo.GetRuns(models.RunFilter{Page: 2, PageSize: 2})
		require.NoError(t, err)
		assert.Equal(t, int64(5), total)
		require.Len(t, runs, 2)
		assert.Equal(t, "run-2", runs[0].ID)
		assert.Equal(t, "run-1", runs[1].ID)
	})
}

func TestRunRepositoryTrimsOldestBeyondCap(t *testing.T) {
	repo := NewRunRepository(testDB(t), 2)

	base := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	for i := 0; i < 4; i++ {
		require.NoError(t, repo.Save(testRun(fmt.Sprintf("run-%d", i), base.Add(time.Duration(i)*time.Hour))))
	}

	count, err := repo.CountRuns()
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	runs, _, err := repo.GetRuns(models.RunFilter{})
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "run-3", runs[0].ID)
	assert.Equal(t, "run-2", runs[1].ID)
}

func TestRunRepositoryDelete(t *testing.T) {
	repo := NewRunRepository(testDB(t), 0)

	start := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Save(testRun("run-1", start)))

	deleted, err := repo.DeleteRun("run-1")
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.DeleteRun("run-1")
	require.NoError(t, err)
	assert.False(t, deleted)

	got, err := repo.GetRunByID("run-1")
	require.NoError(t, err)
	assert.Nil(t, got)
}
