package browser

import (
	"fmt"
	"strings"
)

type LocatorKind int

const (
	KindCSS LocatorKind = iota
	KindXPath
)

// Locator указывает на один элемент страницы. Тип (CSS или XPath)
// выбирает сценарий вендора, сеанс его не угадывает.
type Locator struct {
	Kind  LocatorKind
	Value string
}

func CSS(selector string) Locator {
	return Locator{Kind: KindCSS, Value: selector}
}

func XPath(expr string) Locator {
	return Locator{Kind: KindXPath, Value: expr}
}

// String возвращает селектор с префиксом движка playwright.
func (l Locator) String() string {
	if l.Kind == KindXPath {
		return "xpath=" + l.Value
	}
	return "css=" + l.Value
}

// Validate отсекает пустые локаторы и URL, случайно записанные вместо селектора.
func (l Locator) Validate() error {
	value := strings.TrimSpace(l.Value)
	if value == "" {
		return fmt.Errorf("селектор не может быть пустым")
	}

	if strings.HasPrefix(value, "http://") || strings.HasPrefix(value, "https://") {
		return fmt.Errorf("селектор не может быть URL. Получен URL: %s", l.Value)
	}

	if strings.Contains(value, "://") {
		return fmt.Errorf("селектор не может содержать протокол (://). Получен: %s", l.Value)
	}

	if l.Kind == KindXPath && !strings.HasPrefix(value, "/") && !strings.HasPrefix(value, "(") {
		return fmt.Errorf("XPath должен начинаться с / или (: %s", l.Value)
	}

	return nil
}
