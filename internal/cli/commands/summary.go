package commands

import (
	"fmt"
	"io"
	"time"

	"fwPull/internal/batch"
	"fwPull/internal/cli/ui"
)

// PrintSummary выводит итог запуска: записи и элементы с ошибками.
// Пишется в stderr, чтобы не смешиваться с JSON-отчетом.
func PrintSummary(w io.Writer, res batch.Result) {
	icon, color, text := ui.FormatRunStatus(true, len(res.Failures))

	fmt.Fprintf(w, "\n"+ui.ColorBold+ui.IconChart+" Запуск %s"+ui.ColorReset+" %s%s %s"+ui.ColorReset+"\n", res.RunID, color, icon, text)
	fmt.Fprintf(w, "  "+ui.ColorGray+"Всего: %d, получено: %d, ошибок: %d, время: %s"+ui.ColorReset+"\n",
		res.Total, len(res.Records), len(res.Failures), res.FinishedAt.Sub(res.StartedAt).Round(time.Millisecond))

	for _, r := range res.Records {
		fmt.Fprintf(w, "  "+ui.ColorGreen+ui.IconCheckmark+ui.ColorReset+" %s %s: %s / %s\n",
			r.Vendor, r.Model, ui.FormatVersion(r.Current), ui.FormatVersion(r.Approved))
	}
	for _, f := range res.Failures {
		fmt.Fprintf(w, "  "+ui.ColorRed+ui.IconCross+ui.ColorReset+" %s %s\n", f.Vendor, f.Model)
		fmt.Fprintf(w, "    "+ui.ColorGray+"└─ %v"+ui.ColorReset+"\n", f.Err)
	}
	fmt.Fprintln(w)
}
