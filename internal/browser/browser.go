package browser

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"
)

func withDefaults(cfg Config) Config {
	// Установка дефолтных таймаутов
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.NavigateTimeout == 0 {
		cfg.NavigateTimeout = 60 * time.Second // Navigate обычно дольше
	}
	if cfg.PollInterval == 0 {
		cfg.PollInterval = 250 * time.Millisecond
	}
	if cfg.Engine == "" {
		cfg.Engine = "firefox"
	}
	return cfg
}

// Open запускает драйвер playwright и создает сеанс: подключается к удаленному
// серверу, если задан cfg.Endpoint, иначе запускает браузер локально.
// Любая ошибка на этом этапе возвращается как *ConnectionError.
func Open(ctx context.Context, cfg Config, caps Capabilities, log *zap.Logger) (*PlaywrightSession, error) {
	cfg = withDefaults(cfg)
	if log == nil {
		log = zap.NewNop()
	}

	s := &PlaywrightSession{
		cfg: cfg,
		log: log.With(zap.String("component", "browser")),
	}

	pw, err := playwright.Run()
	if err != nil {
		return nil, &ConnectionError{Endpoint: cfg.Endpoint, Err: fmt.Errorf("запуск драйвера playwright: %w", err)}
	}
	s.pw = pw

	if err := s.connect(caps); err != nil {
		_ = pw.Stop()
		return nil, &ConnectionError{Endpoint: cfg.Endpoint, Err: err}
	}

	s.log.Debug("Сеанс браузера открыт",
		zap.String("engine", cfg.Engine),
		zap.String("endpoint", cfg.Endpoint),
		zap.Bool("headless", caps.Headless),
	)
	return s, nil
}

// OpenWithFallback пробует удаленный сервер, а при ошибке соединения и
// spawnLocal запускает браузер локально. Ошибка первой попытки логируется.
func OpenWithFallback(ctx context.Context, cfg Config, spawnLocal bool, caps Capabilities, log *zap.Logger) (*PlaywrightSession, error) {
	s, err := Open(ctx, cfg, caps, log)
	if err == nil {
		return s, nil
	}
	if cfg.Endpoint == "" || !spawnLocal {
		return nil, err
	}

	if log != nil {
		log.Warn("Удаленный браузер недоступен, запускаем локально",
			zap.String("endpoint", cfg.Endpoint),
			zap.Error(err),
		)
	}
	local := cfg
	local.Endpoint = ""
	return Open(ctx, local, caps, log)
}

func (s *PlaywrightSession) browserType() (playwright.BrowserType, error) {
	switch strings.ToLower(s.cfg.Engine) {
	case "firefox":
		return s.pw.Firefox, nil
	case "chromium", "chrome":
		return s.pw.Chromium, nil
	case "webkit":
		return s.pw.WebKit, nil
	default:
		return nil, fmt.Errorf("неизвестный браузер %q", s.cfg.Engine)
	}
}

func (s *PlaywrightSession) getEnvMap() map[string]string {
	if s.cfg.Display != "" {
		return map[string]string{
			"DISPLAY": s.cfg.Display,
		}
	}
	return nil
}

func (s *PlaywrightSession) connect(caps Capabilities) error {
	bt, err := s.browserType()
	if err != nil {
		return err
	}

	var br playwright.Browser
	if s.cfg.Endpoint != "" {
		br, err = bt.Connect(s.cfg.Endpoint, playwright.BrowserTypeConnectOptions{
			Timeout: playwright.Float(float64(s.cfg.Timeout.Milliseconds())),
		})
	} else {
		opts := playwright.BrowserTypeLaunchOptions{
			Headless: playwright.Bool(caps.Headless),
			Args:     []string{"--no-sandbox"},
		}
		if env := s.getEnvMap(); env != nil {
			opts.Env = env
		}
		if strings.EqualFold(s.cfg.Engine, "firefox") && len(caps.FirefoxPrefs) > 0 {
			opts.FirefoxUserPrefs = caps.FirefoxPrefs
		}
		br, err = bt.Launch(opts)
	}
	if err != nil {
		return err
	}
	s.browser = br

	pageOpts := playwright.BrowserNewPageOptions{}
	if caps.Viewport.Width > 0 && caps.Viewport.Height > 0 {
		pageOpts.Viewport = &playwright.Size{Width: caps.Viewport.Width, Height: caps.Viewport.Height}
	}

	page, err := br.NewPage(pageOpts)
	if err != nil {
		_ = br.Close()
		return fmt.Errorf("создание страницы: %w", err)
	}
	page.SetDefaultTimeout(float64(s.cfg.Timeout.Milliseconds()))
	s.page = page

	return nil
}

func (s *PlaywrightSession) Navigate(ctx context.Context, target string) error {
	if s.page == nil {
		return &NavigationError{URL: target, Err: fmt.Errorf("браузер не запущен")}
	}

	// Создаем context с timeout для navigate операции
	navCtx, cancel := context.WithTimeout(ctx, s.cfg.NavigateTimeout)
	defer cancel()

	errChan := make(chan error, 1)
	go func() {
		_, err := s.page.Goto(target, playwright.PageGotoOptions{
			WaitUntil: playwright.WaitUntilStateLoad,
			Timeout:   playwright.Float(float64(s.cfg.NavigateTimeout.Milliseconds())),
		})
		errChan <- err
	}()

	select {
	case <-navCtx.Done():
		return &NavigationError{URL: target, Err: fmt.Errorf("navigate timeout after %v", s.cfg.NavigateTimeout)}
	case err := <-errChan:
		if err != nil {
			return &NavigationError{URL: target, Err: err}
		}
	}

	s.log.Debug("Переход выполнен", zap.String("url", target))
	return nil
}

func (s *PlaywrightSession) WaitForNavigation(ctx context.Context) error {
	if s.page == nil {
		return &NavigationError{Err: fmt.Errorf("браузер не запущен")}
	}

	err := s.page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State:   playwright.LoadStateLoad,
		Timeout: playwright.Float(float64(s.cfg.NavigateTimeout.Milliseconds())),
	})
	if err != nil {
		return &NavigationError{URL: s.page.URL(), Err: err}
	}
	return nil
}

func (s *PlaywrightSession) PageSource(ctx context.Context) (string, error) {
	if s.page == nil {
		return "", fmt.Errorf("браузер не запущен")
	}

	content, err := s.page.Content()
	if err != nil {
		return "", fmt.Errorf("чтение исходного кода страницы: %w", err)
	}
	return content, nil
}

func (s *PlaywrightSession) CurrentURL(ctx context.Context) (*url.URL, error) {
	if s.page == nil {
		return nil, fmt.Errorf("браузер не запущен")
	}
	return url.Parse(s.page.URL())
}

// Close закрывает браузер и останавливает драйвер. Повторные вызовы
// возвращают результат первого.
func (s *PlaywrightSession) Close() error {
	s.closeOnce.Do(func() {
		var errs []error
		if s.browser != nil {
			if err := s.browser.Close(); err != nil {
				errs = append(errs, fmt.Errorf("закрытие браузера: %w", err))
			}
		}
		if s.pw != nil {
			if err := s.pw.Stop(); err != nil {
				errs = append(errs, fmt.Errorf("остановка драйвера: %w", err))
			}
		}
		s.closeErr = errors.Join(errs...)
		s.log.Debug("Сеанс браузера закрыт", zap.Error(s.closeErr))
	})
	return s.closeErr
}
