package repositories

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	gormModels "github.com/cscruggs10/autointel/internal/models/gorm"
)

// RunlistRepository handles runlists table operations using GORM
type RunlistRepository struct {
	db *gorm.DB
}

// NewRunlistRepository creates a new GORM-based runlist repository
func NewRunlistRepository(db *gorm.DB) *RunlistRepository {
	return &RunlistRepository{db: db}
}

// Create inserts a new runlist and fills in generated fields
func (r *RunlistRepository) Create(ctx context.Context, runlist *gormModels.Runlist) error {
	if err := r.db.WithContext(ctx).Create(runlist).Error; err != nil {
		return fmt.Errorf("failed to create runlist: %w", err)
	}
	return nil
}

// GetByID retrieves a runlist by its ID
func (r *RunlistRepository) GetByID(ctx context.Context, id string) (*gormModels.Runlist, error) {
	var runlist gormModels.Runlist

	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&runlist).Error

	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch runlist: %w", err)
	}

	return &runlist, nil
}

// List returns all runlists, most recently uploaded first
func (r *RunlistRepository) List(ctx context.Context) ([]gormModels.Runlist, error) {
	var runlists []gormModels.Runlist

	err := r.db.WithContext(ctx).
		Order("uploaded_at DESC").
		Find(&runlists).Error

	if err != nil {
		return nil, fmt.Errorf("failed to list runlists: %w", err)
	}

	return runlists, nil
}

// UpdateStatus transitions a runlist's ingestion status
func (r *RunlistRepository) UpdateStatus(ctx context.Context, id string, status string) error {
	err := r.db.WithContext(ctx).
		Model(&gormModels.Runlist{}).
		Where("id = ?", id).
		Update("status", status).Error

	if err != nil {
		return fmt.Errorf("failed to update runlist status: %w", err)
	}
	return nil
}

// FinishMatching writes the aggregate matched count and the terminal
// status in one update. Called only after every per-vehicle write has
// completed.
func (r *RunlistRepository) FinishMatching(ctx context.Context, id string, matchedCount int, status string) error {
	err := r.db.WithContext(ctx).
		Model(&gormModels.Runlist{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"matched_vehicles": matchedCount,
			"status":           status,
		}).Error

	if err != nil {
		return fmt.Errorf("failed to finish matching for runlist: %w", err)
	}
	return nil
}

// Count returns the number of runlists
func (r *RunlistRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&gormModels.Runlist{}).
		Count(&count).Error

	if err != nil {
		return 0, fmt.Errorf("failed to count runlists: %w", err)
	}
	return count, nil
}
