package browser

import (
	"context"
	"net/url"
	"sync"
	"time"

	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"
)

// Session - удаленный сеанс автоматизации браузера.
// Каждый вызов - один запрос к драйверу; повторов нет, кроме цикла опроса в WaitFor.
type Session interface {
	Navigate(ctx context.Context, url string) error
	WaitFor(ctx context.Context, loc Locator, timeout time.Duration) (Element, error)
	WaitForNavigation(ctx context.Context) error
	PageSource(ctx context.Context) (string, error)
	CurrentURL(ctx context.Context) (*url.URL, error)
	Close() error
}

// Element - найденный на странице элемент.
type Element interface {
	Click(ctx context.Context) error
	Type(ctx context.Context, text string) error
	// HTML возвращает innerHTML при inner=true и outerHTML иначе.
	HTML(ctx context.Context, inner bool) (string, error)
}

type PlaywrightSession struct {
	pw        *playwright.Playwright
	browser   playwright.Browser
	page      playwright.Page
	cfg       Config
	log       *zap.Logger
	closeOnce sync.Once
	closeErr  error
}

type Config struct {
	// Endpoint - ws-адрес удаленного playwright-сервера. Пусто - локальный запуск.
	Endpoint        string
	Engine          string
	Display         string
	Timeout         time.Duration
	PollInterval    time.Duration
	NavigateTimeout time.Duration
}

// Capabilities - параметры создаваемого сеанса.
type Capabilities struct {
	Headless     bool
	FirefoxPrefs map[string]interface{}
	Viewport     Viewport
}

type Viewport struct {
	Width  int
	Height int
}

// DefaultCapabilities - приватный режим Firefox и окно 1920x1080.
func DefaultCapabilities(headless bool) Capabilities {
	return Capabilities{
		Headless: headless,
		FirefoxPrefs: map[string]interface{}{
			"browser.privatebrowsing.autostart": true,
		},
		Viewport: Viewport{Width: 1920, Height: 1080},
	}
}
