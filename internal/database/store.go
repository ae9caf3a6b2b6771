package database

import (
	"context"
	"time"

	"fwPull/internal/batch"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RunStore сохраняет ход запуска. Ошибки БД только логируются:
// отчет важнее истории.
type RunStore struct {
	repo *RunRepository
	log  *zap.Logger
	// disabled выставляется, если запуск не удалось создать
	disabled bool
}

func NewRunStore(repo *RunRepository, log *zap.Logger) *RunStore {
	if log == nil {
		log = zap.NewNop()
	}
	return &RunStore{repo: repo, log: log.With(zap.String("component", "run_store"))}
}

func (s *RunStore) RunStarted(ctx context.Context, runID uuid.UUID, startedAt time.Time, total int) {
	err := s.repo.CreateRun(ctx, &Run{ID: runID, StartedAt: startedAt, Total: total})
	if err != nil {
		s.disabled = true
		s.log.Warn("Не удалось сохранить запуск, история отключена", zap.String("run_id", runID.String()), zap.Error(err))
	}
}

func (s *RunStore) ItemDone(ctx context.Context, o batch.Outcome) {
	if s.disabled {
		return
	}

	ctx = context.WithoutCancel(ctx)
	var err error
	if o.Err != nil {
		err = s.repo.AddFailure(ctx, &ExtractionFailure{
			RunID:  o.RunID,
			Vendor: o.Request.Vendor,
			Model:  o.Request.Model,
			Error:  o.Err.Error(),
		})
	} else if o.Record != nil {
		err = s.repo.AddRecord(ctx, &FirmwareRecord{
			RunID:    o.RunID,
			Vendor:   o.Record.Vendor,
			Model:    o.Record.Model,
			Current:  o.Record.Current,
			Approved: o.Record.Approved,
		})
	}
	if err != nil {
		s.log.Warn("Не удалось сохранить результат",
			zap.String("vendor", o.Request.Vendor),
			zap.String("model", o.Request.Model),
			zap.Error(err),
		)
	}
}

func (s *RunStore) RunFinished(ctx context.Context, res batch.Result) {
	if s.disabled {
		return
	}
	// запуск фиксируется и после отмены контекста
	ctx = context.WithoutCancel(ctx)
	if err := s.repo.FinishRun(ctx, res.RunID, res.FinishedAt, len(res.Records), len(res.Failures)); err != nil {
		s.log.Warn("Не удалось завершить запуск", zap.String("run_id", res.RunID.String()), zap.Error(err))
	}
}
