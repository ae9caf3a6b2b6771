package database

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RunRepository struct {
	db *gorm.DB
}

func NewRunRepository(db *gorm.DB) *RunRepository {
	return &RunRepository{db: db}
}

func (r *RunRepository) CreateRun(ctx context.Context, run *Run) error {
	return r.db.WithContext(ctx).Create(run).Error
}

func (r *RunRepository) FinishRun(ctx context.Context, id uuid.UUID, finishedAt time.Time, succeeded, failed int) error {
	return r.db.WithContext(ctx).Model(&Run{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"finished_at": finishedAt,
			"succeeded":   succeeded,
			"failed":      failed,
		}).Error
}

func (r *RunRepository) GetRun(ctx context.Context, id uuid.UUID) (*Run, error) {
	var run Run
	if err := r.db.WithContext(ctx).First(&run, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &run, nil
}

func (r *RunRepository) ListRuns(ctx context.Context, limit, offset int) ([]Run, error) {
	var runs []Run
	if err := r.db.WithContext(ctx).Order("started_at DESC").Limit(limit).Offset(offset).Find(&runs).Error; err != nil {
		return nil, err
	}
	return runs, nil
}

func (r *RunRepository) AddRecord(ctx context.Context, rec *FirmwareRecord) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *RunRepository) AddFailure(ctx context.Context, f *ExtractionFailure) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *RunRepository) RecordsForRun(ctx context.Context, runID uuid.UUID) ([]FirmwareRecord, error) {
	var recs []FirmwareRecord
	if err := r.db.WithContext(ctx).Where("run_id = ?", runID).Order("id").Find(&recs).Error; err != nil {
		return nil, err
	}
	return recs, nil
}

func (r *RunRepository) FailuresForRun(ctx context.Context, runID uuid.UUID) ([]ExtractionFailure, error) {
	var fs []ExtractionFailure
	if err := r.db.WithContext(ctx).Where("run_id = ?", runID).Order("id").Find(&fs).Error; err != nil {
		return nil, err
	}
	return fs, nil
}

// LatestRecord возвращает последнюю сохраненную запись для модели.
func (r *RunRepository) LatestRecord(ctx context.Context, vendor, model string) (*FirmwareRecord, error) {
	var rec FirmwareRecord
	err := r.db.WithContext(ctx).
		Where("LOWER(vendor) = LOWER(?) AND model = ?", vendor, model).
		Order("created_at DESC, id DESC").
		First(&rec).Error
	if err != nil {
		return nil, err
	}
	return &rec, nil
}
