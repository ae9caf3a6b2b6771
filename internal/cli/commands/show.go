package commands

import (
	"context"
	"fmt"
	"io"

	"fwPull/internal/cli/ui"
	"fwPull/internal/database"

	"github.com/google/uuid"
)

// HistoryHandler выводит сохраненную историю запусков
type HistoryHandler struct {
	repo *database.RunRepository
	out  io.Writer
}

func NewHistoryHandler(repo *database.RunRepository, out io.Writer) *HistoryHandler {
	return &HistoryHandler{
		repo: repo,
		out:  out,
	}
}

// List выводит последние запуски
func (h *HistoryHandler) List(ctx context.Context, limit int) error {
	runs, err := h.repo.ListRuns(ctx, limit, 0)
	if err != nil {
		return fmt.Errorf("чтение запусков: %w", err)
	}

	fmt.Fprintln(h.out, "\n"+ui.ColorBold+ui.IconList+" Запуски:"+ui.ColorReset)
	fmt.Fprintln(h.out)
	if len(runs) == 0 {
		fmt.Fprintln(h.out, ui.ColorGray+"Запусков нет"+ui.ColorReset)
		return nil
	}
	for _, r := range runs {
		icon, color, text := ui.FormatRunStatus(r.FinishedAt != nil, r.Failed)
		fmt.Fprintf(h.out, "  "+ui.ColorBold+"%s"+ui.ColorReset+" %s%s %s"+ui.ColorReset+"\n", r.ID, color, icon, text)
		fmt.Fprintf(h.out, "  "+ui.ColorGray+"└─"+ui.ColorReset+" %s, всего %d, получено %d, ошибок %d\n",
			ui.FormatTime(r.StartedAt), r.Total, r.Succeeded, r.Failed)
	}
	fmt.Fprintln(h.out)
	return nil
}

// Show выводит записи и ошибки одного запуска
func (h *HistoryHandler) Show(ctx context.Context, idStr string) error {
	id, err := uuid.Parse(idStr)
	if err != nil {
		return fmt.Errorf("неверный ID запуска %q: %w", idStr, err)
	}
	run, err := h.repo.GetRun(ctx, id)
	if err != nil {
		return fmt.Errorf("запуск %s не найден: %w", id, err)
	}

	_, _, statusText := ui.FormatRunStatus(run.FinishedAt != nil, run.Failed)
	fmt.Fprintf(h.out, "\n"+ui.ColorBold+"=== Запуск %s ==="+ui.ColorReset+"\n", run.ID)
	fmt.Fprintf(h.out, ui.ColorCyan+ui.IconChart+" Статус:"+ui.ColorReset+" %s\n", statusText)
	fmt.Fprintf(h.out, ui.ColorCyan+ui.IconTime+" Начат:"+ui.ColorReset+" %s\n", ui.FormatTime(run.StartedAt))

	recs, err := h.repo.RecordsForRun(ctx, id)
	if err != nil {
		return fmt.Errorf("чтение записей: %w", err)
	}
	failures, err := h.repo.FailuresForRun(ctx, id)
	if err != nil {
		return fmt.Errorf("чтение ошибок: %w", err)
	}

	if len(recs) > 0 {
		fmt.Fprintf(h.out, "\n"+ui.ColorGreen+"Записи (%d):"+ui.ColorReset+"\n", len(recs))
		for _, r := range recs {
			fmt.Fprintf(h.out, "  %s %s: текущая %s, утвержденная %s\n",
				r.Vendor, r.Model, ui.FormatVersion(r.Current), ui.FormatVersion(r.Approved))
		}
	}
	if len(failures) > 0 {
		fmt.Fprintf(h.out, "\n"+ui.ColorRed+"Ошибки (%d):"+ui.ColorReset+"\n", len(failures))
		for _, f := range failures {
			fmt.Fprintf(h.out, "  %s %s\n", f.Vendor, f.Model)
			fmt.Fprintf(h.out, "    "+ui.ColorGray+"└─ %s"+ui.ColorReset+"\n", f.Error)
		}
	}
	fmt.Fprintln(h.out)
	return nil
}
