package repository

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/jengzang/run-tracker-go/internal/models"
)

// RunRepository handles database operations for finished runs. It is the
// persistence sink of the tracking session: Save implements tracker.Sink and
// owns capacity trimming, so storage pressure never surfaces as a tracking
// failure.
type RunRepository struct {
	db        *sql.DB
	maxStored int // oldest runs beyond this are trimmed; <= 0 disables trimming
}

// NewRunRepository creates a new run repository
func NewRunRepository(db *sql.DB, maxStored int) *RunRepository {
	return &RunRepository{db: db, maxStored: maxStored}
}

// Save inserts a finished run and trims the oldest entries beyond the cap
func (r *RunRepository) Save(run *models.Run) error {
	coords, err := models.EncodePolyline(run.Coordinates)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(`INSERT INTO runs
		(id, start_time, end_time, duration_ms, distance_meters, coordinates_json)
		VALUES (?, ?, ?, ?, ?, ?)`,
		run.ID, run.StartTime, run.EndTime, run.DurationMs, run.DistanceMeters, coords,
	)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	return r.trim()
}

func (r *RunRepository) trim() error {
	if r.maxStored <= 0 {
		return nil
	}
	_, err := r.db.Exec(`DELETE FROM runs WHERE id NOT IN
		(SELECT id FROM runs ORDER BY start_time DESC, created_at DESC LIMIT ?)`,
		r.maxStored,
	)
	if err != nil {
		return fmt.Errorf("failed to trim runs: %w", err)
	}
	return nil
}

// GetRuns retrieves runs with filtering and pagination, newest first
func (r *RunRepository) GetRuns(filter models.RunFilter) ([]models.Run, int64, error) {
	query := `SELECT id, start_time, end_time, duration_ms, distance_meters,
		coordinates_json, created_at
		FROM runs`

	var conditions []string
	var args []interface{}

	if filter.StartTime > 0 {
		conditions = append(conditions, "start_time >= ?")
		args = append(args, filter.StartTime)
	}
	if filter.EndTime > 0 {
		conditions = append(conditions, "end_time <= ?")
		args = append(args, filter.EndTime)
	}
	if filter.MinDistance > 0 {
		conditions = append(conditions, "distance_meters >= ?")
		args = append(args, filter.MinDistance)
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	// Get total count
	countQuery := "SELECT COUNT(*) FROM runs"
	if len(conditions) > 0 {
		countQuery += " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	if err := r.db.QueryRow(countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count runs: %w", err)
	}

	// Add pagination
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 100
	}
	if filter.PageSize > 1000 {
		filter.PageSize = 1000
	}

	offset := (filter.Page - 1) * filter.PageSize
	query += " ORDER BY start_time DESC LIMIT ? OFFSET ?"
	args = append(args, filter.PageSize, offset)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []models.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, 0, err
		}
		runs = append(runs, *run)
	}

	return runs, total, rows.Err()
}

// GetRunByID retrieves a single run by ID; returns nil when not found
func (r *RunRepository) GetRunByID(id string) (*models.Run, error) {
	row := r.db.QueryRow(`SELECT id, start_time, end_time, duration_ms,
		distance_meters, coordinates_json, created_at
		FROM runs WHERE id = ?`, id)

	run, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return run, nil
}

// DeleteRun removes a run by ID; reports whether a row was deleted
func (r *RunRepository) DeleteRun(id string) (bool, error) {
	result, err := r.db.Exec("DELETE FROM runs WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("failed to delete run: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return affected > 0, nil
}

// CountRuns returns the number of stored runs
func (r *RunRepository) CountRuns() (int64, error) {
	var count int64
	if err := r.db.QueryRow("SELECT COUNT(*) FROM runs").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count runs: %w", err)
	}
	return count, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRun(row rowScanner) (*models.Run, error) {
	var run models.Run
	var coords string
	err := row.Scan(
		&run.ID, &run.StartTime, &run.EndTime, &run.DurationMs,
		&run.DistanceMeters, &coords, &run.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan run: %w", err)
	}
	run.Coordinates, err = models.DecodePolyline(coords)
	if err != nil {
		return nil, err
	}
	return &run, nil
}
