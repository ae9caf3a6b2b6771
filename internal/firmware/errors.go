package firmware

import "fmt"

// VendorParseError - название вендора не входит в поддерживаемый набор.
type VendorParseError struct {
	Vendor string
}

func (e *VendorParseError) Error() string {
	return fmt.Sprintf("неизвестный вендор %q", e.Vendor)
}

// URLTransformError - не удалось переписать URL (например, фрагмент сортировки HP).
type URLTransformError struct {
	URL    string
	Reason string
}

func (e *URLTransformError) Error() string {
	return fmt.Sprintf("could not build sorted URL from %s: %s", e.URL, e.Reason)
}

// NotFoundError - в полученном HTML нет ожидаемого тега или атрибута.
type NotFoundError struct {
	What string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("не найдено %s в HTML", e.What)
}

// HTTPError - ошибка простого HTTP-запроса (страница Oracle).
type HTTPError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *HTTPError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("GET %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("GET %s: неожиданный статус %d", e.URL, e.StatusCode)
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

// ExtractError привязывает ошибку одного элемента пакета к вендору и модели.
type ExtractError struct {
	Vendor string
	Model  string
	Err    error
}

func (e *ExtractError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Vendor, e.Model, e.Err)
}

func (e *ExtractError) Unwrap() error {
	return e.Err
}
