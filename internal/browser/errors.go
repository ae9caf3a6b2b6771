package browser

import (
	"fmt"
	"time"
)

// ConnectionError - драйвер недоступен или отклонил параметры сеанса.
type ConnectionError struct {
	Endpoint string
	Err      error
}

func (e *ConnectionError) Error() string {
	if e.Endpoint == "" {
		return fmt.Sprintf("не удалось запустить локальный браузер: %v", e.Err)
	}
	return fmt.Sprintf("нет соединения с %s: %v", e.Endpoint, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// NavigationError - страница не загрузилась за отведенное время.
type NavigationError struct {
	URL string
	Err error
}

func (e *NavigationError) Error() string {
	if e.URL == "" {
		return fmt.Sprintf("ошибка ожидания навигации: %v", e.Err)
	}
	return fmt.Sprintf("ошибка навигации на %s: %v", e.URL, e.Err)
}

func (e *NavigationError) Unwrap() error {
	return e.Err
}

// ElementNotFoundError - элемент не появился за время ожидания.
type ElementNotFoundError struct {
	Locator Locator
	Timeout time.Duration
	Err     error
}

func (e *ElementNotFoundError) Error() string {
	return fmt.Sprintf("элемент %s не найден за %v", e.Locator, e.Timeout)
}

func (e *ElementNotFoundError) Unwrap() error {
	return e.Err
}
