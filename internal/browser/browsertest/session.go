// Package browsertest предоставляет сценарный browser.Session в памяти
// для тестов сценариев вендоров без запуска браузера.
package browsertest

import (
	"context"
	"net/url"
	"time"

	"fwPull/internal/browser"
)

type Session struct {
	// Elements по строке локатора (Locator.String()). Отсутствие ключа - таймаут ожидания.
	Elements map[string]*Element
	// Pages - исходный код по URL. Если текущего URL нет в Pages, отдается Source.
	Pages  map[string]string
	Source string
	URL    string

	NavigateErr map[string]error
	CloseErr    error

	Navigations []string
	Waits       []string
	CloseCalls  int
}

type Element struct {
	// Outer - outerHTML элемента, Inner - innerHTML.
	Outer string
	Inner string
	// OnClick позволяет сценарию сменить URL или страницу после клика.
	OnClick func(s *Session)

	Clicks int
	Typed  []string

	session *Session
}

func New() *Session {
	return &Session{
		Elements:    make(map[string]*Element),
		Pages:       make(map[string]string),
		NavigateErr: make(map[string]error),
	}
}

// Add регистрирует элемент и возвращает сеанс для цепочки вызовов.
func (s *Session) Add(loc browser.Locator, el *Element) *Session {
	s.Elements[loc.String()] = el
	return s
}

func (s *Session) Navigate(ctx context.Context, target string) error {
	s.Navigations = append(s.Navigations, target)
	if err, ok := s.NavigateErr[target]; ok {
		return &browser.NavigationError{URL: target, Err: err}
	}
	s.URL = target
	return nil
}

func (s *Session) WaitFor(ctx context.Context, loc browser.Locator, timeout time.Duration) (browser.Element, error) {
	s.Waits = append(s.Waits, loc.String())
	el, ok := s.Elements[loc.String()]
	if !ok {
		return nil, &browser.ElementNotFoundError{Locator: loc, Timeout: timeout}
	}
	el.session = s
	return el, nil
}

func (s *Session) WaitForNavigation(ctx context.Context) error {
	return nil
}

func (s *Session) PageSource(ctx context.Context) (string, error) {
	if src, ok := s.Pages[s.URL]; ok {
		return src, nil
	}
	return s.Source, nil
}

func (s *Session) CurrentURL(ctx context.Context) (*url.URL, error) {
	return url.Parse(s.URL)
}

func (s *Session) Close() error {
	s.CloseCalls++
	return s.CloseErr
}

func (e *Element) Click(ctx context.Context) error {
	e.Clicks++
	if e.OnClick != nil && e.session != nil {
		e.OnClick(e.session)
	}
	return nil
}

func (e *Element) Type(ctx context.Context, text string) error {
	e.Typed = append(e.Typed, text)
	return nil
}

func (e *Element) HTML(ctx context.Context, inner bool) (string, error) {
	if inner {
		return e.Inner, nil
	}
	return e.Outer, nil
}
