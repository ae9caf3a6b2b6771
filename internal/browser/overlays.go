package browser

import (
	"context"
	"time"
)

const overlayWait = 2 * time.Second

// DismissOverlays закрывает баннеры cookie и подобные оверлеи, если они есть.
// Ошибки игнорируются: отсутствие оверлея - нормальная ситуация.
func DismissOverlays(ctx context.Context, s Session, overlays []Locator) int {
	closed := 0
	for _, loc := range overlays {
		el, err := s.WaitFor(ctx, loc, overlayWait)
		if err != nil {
			continue
		}
		if err := el.Click(ctx); err == nil {
			closed++
		}
	}
	return closed
}
