package service

import (
	"fmt"
	"math"

	"github.com/jengzang/run-tracker-go/internal/models"
	"github.com/jengzang/run-tracker-go/internal/repository"
)

// RunService handles business logic for run history
type RunService struct {
	runRepo *repository.RunRepository
}

// NewRunService creates a new run service
func NewRunService(runRepo *repository.RunRepository) *RunService {
	return &RunService{
		runRepo: runRepo,
	}
}

// GetRuns retrieves runs with filtering and pagination, newest first
func (s *RunService) GetRuns(filter models.RunFilter) (*models.RunsResponse, error) {
	// Validate filter
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 100
	}
	if filter.PageSize > 1000 {
		filter.PageSize = 1000
	}

	runs, total, err := s.runRepo.GetRuns(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to get runs: %w", err)
	}

	totalPages := int(math.Ceil(float64(total) / float64(filter.PageSize)))

	return &models.RunsResponse{
		Data:       runs,
		Total:      total,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalPages: totalPages,
	}, nil
}

// GetRunByID retrieves a single run by ID; returns nil when not found
func (s *RunService) GetRunByID(id string) (*models.Run, error) {
	run, err := s.runRepo.GetRunByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return run, nil
}

// DeleteRun removes a run by ID; reports whether it existed
func (s *RunService) DeleteRun(id string) (bool, error) {
	deleted, err := s.runRepo.DeleteRun(id)
	if err != nil {
		return false, fmt.Errorf("failed to delete run: %w", err)
	}
	return deleted, nil
}
