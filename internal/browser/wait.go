package browser

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
)

// WaitFor опрашивает страницу с интервалом cfg.PollInterval, пока локатор не
// найдет прикрепленный к DOM элемент или не истечет timeout.
// timeout <= 0 означает cfg.Timeout.
func (s *PlaywrightSession) WaitFor(ctx context.Context, loc Locator, timeout time.Duration) (Element, error) {
	if timeout <= 0 {
		timeout = s.cfg.Timeout
	}

	if err := loc.Validate(); err != nil {
		return nil, &ElementNotFoundError{Locator: loc, Timeout: timeout, Err: err}
	}

	return poll(ctx, loc, timeout, s.cfg.PollInterval, func() (Element, error) {
		if s.page == nil {
			return nil, errNotLaunched
		}
		handle, err := s.page.QuerySelector(loc.String())
		if err != nil || handle == nil {
			return nil, err
		}
		s.log.Debug("Элемент найден", zap.Stringer("locator", loc))
		return &playwrightElement{handle: handle, loc: loc}, nil
	})
}

// poll - общий цикл ожидания. find возвращает (nil, nil), пока элемента нет.
func poll(ctx context.Context, loc Locator, timeout, interval time.Duration, find func() (Element, error)) (Element, error) {
	if interval <= 0 {
		interval = 250 * time.Millisecond
	}

	deadline := time.Now().Add(timeout)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var lastErr error
	for {
		el, err := find()
		if errors.Is(err, errNotLaunched) {
			return nil, &ElementNotFoundError{Locator: loc, Timeout: timeout, Err: err}
		}
		if el != nil {
			return el, nil
		}
		lastErr = err

		if !time.Now().Before(deadline) {
			return nil, &ElementNotFoundError{Locator: loc, Timeout: timeout, Err: lastErr}
		}

		select {
		case <-ctx.Done():
			return nil, &ElementNotFoundError{Locator: loc, Timeout: timeout, Err: ctx.Err()}
		case <-ticker.C:
		}
	}
}
