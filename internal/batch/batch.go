// Package batch последовательно обрабатывает входной список моделей:
// определяет вендора, запускает сценарий и собирает записи и ошибки.
package batch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fwPull/internal/browser"
	"fwPull/internal/firmware"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SessionOpener открывает браузерный сеанс. Вызывается не более одного раза за запуск.
type SessionOpener func(ctx context.Context) (browser.Session, error)

// Outcome - итог обработки одного элемента входного списка.
// Kind имеет смысл только при KnownKind.
type Outcome struct {
	RunID     uuid.UUID
	Index     int
	Request   firmware.Request
	Kind      firmware.Kind
	KnownKind bool
	Record    *firmware.Record
	Err       error
	Duration  time.Duration
}

// Failure - элемент, для которого запись не получена.
type Failure struct {
	Index  int
	Vendor string
	Model  string
	Err    error
}

type Result struct {
	RunID      uuid.UUID
	StartedAt  time.Time
	FinishedAt time.Time
	Total      int
	Records    []firmware.Record
	Failures   []Failure
}

// Observer получает события запуска: сохранение истории, метрики.
// Ошибки наблюдателей не прерывают обработку.
type Observer interface {
	RunStarted(ctx context.Context, runID uuid.UUID, startedAt time.Time, total int)
	ItemDone(ctx context.Context, o Outcome)
	RunFinished(ctx context.Context, res Result)
}

type Orchestrator struct {
	dispatcher *Dispatcher
	open       SessionOpener
	observers  []Observer
	log        *zap.Logger
}

func NewOrchestrator(d *Dispatcher, open SessionOpener, log *zap.Logger, observers ...Observer) *Orchestrator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Orchestrator{
		dispatcher: d,
		open:       open,
		observers:  observers,
		log:        log,
	}
}

// Run обрабатывает запросы по порядку. Ошибка одного элемента логируется
// и не останавливает пакет. Сеанс браузера открывается один раз, только если
// в списке есть вендор, которому он нужен, и закрывается ровно один раз.
// Возвращаемая ошибка - ошибка закрытия сеанса или отмена контекста.
func (o *Orchestrator) Run(ctx context.Context, reqs []firmware.Request) (res Result, err error) {
	res = Result{
		RunID:     uuid.New(),
		StartedAt: time.Now(),
		Total:     len(reqs),
		Records:   make([]firmware.Record, 0, len(reqs)),
	}
	log := o.log.With(zap.String("run_id", res.RunID.String()))

	for _, obs := range o.observers {
		obs.RunStarted(ctx, res.RunID, res.StartedAt, res.Total)
	}

	var (
		sess    browser.Session
		openErr error
	)
	if needsSession(reqs) {
		sess, openErr = o.open(ctx)
		if openErr != nil {
			log.Error("Не удалось открыть сеанс браузера", zap.Error(openErr))
		} else {
			defer func() {
				if cerr := sess.Close(); cerr != nil {
					log.Error("Ошибка закрытия сеанса браузера", zap.Error(cerr))
					err = errors.Join(err, fmt.Errorf("закрытие сеанса: %w", cerr))
				}
			}()
		}
	}

	for i, req := range reqs {
		if ctx.Err() != nil {
			log.Warn("Обработка прервана", zap.Int("processed", i), zap.Int("total", len(reqs)))
			err = ctx.Err()
			break
		}

		out := o.process(ctx, res.RunID, i, req, sess, openErr)
		if out.Err != nil {
			log.Error("Ошибка извлечения",
				zap.String("vendor", req.Vendor),
				zap.String("model", req.Model),
				zap.Error(out.Err),
			)
			res.Failures = append(res.Failures, Failure{Index: i, Vendor: req.Vendor, Model: req.Model, Err: out.Err})
		} else {
			res.Records = append(res.Records, *out.Record)
		}

		for _, obs := range o.observers {
			obs.ItemDone(ctx, out)
		}
	}

	res.FinishedAt = time.Now()
	log.Info("Пакет обработан",
		zap.Int("total", res.Total),
		zap.Int("succeeded", len(res.Records)),
		zap.Int("failed", len(res.Failures)),
		zap.Duration("elapsed", res.FinishedAt.Sub(res.StartedAt)),
	)
	for _, obs := range o.observers {
		obs.RunFinished(ctx, res)
	}

	return res, err
}

func (o *Orchestrator) process(ctx context.Context, runID uuid.UUID, i int, req firmware.Request, sess browser.Session, openErr error) (out Outcome) {
	out = Outcome{RunID: runID, Index: i, Request: req}
	start := time.Now()
	defer func() { out.Duration = time.Since(start) }()

	kind, err := firmware.ParseKind(req.Vendor)
	if err != nil {
		out.Err = wrap(req, err)
		return out
	}
	out.Kind, out.KnownKind = kind, true

	if kind.NeedsSession() && openErr != nil {
		out.Err = wrap(req, openErr)
		return out
	}

	rec, err := o.dispatcher.For(kind, sess).Extract(ctx, req)
	if err != nil {
		out.Err = wrap(req, err)
		return out
	}
	out.Record = &rec
	return out
}

func wrap(req firmware.Request, err error) error {
	return &firmware.ExtractError{Vendor: req.Vendor, Model: req.Model, Err: err}
}

func needsSession(reqs []firmware.Request) bool {
	for _, r := range reqs {
		if k, err := firmware.ParseKind(r.Vendor); err == nil && k.NeedsSession() {
			return true
		}
	}
	return false
}
