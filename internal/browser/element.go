package browser

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/playwright-community/playwright-go"
)

var errNotLaunched = errors.New("браузер не запущен")

type playwrightElement struct {
	handle playwright.ElementHandle
	loc    Locator
}

// Click кликает по элементу. Для <option> playwright не умеет честный клик,
// поэтому опция выбирается в родительском <select> с событием change.
func (e *playwrightElement) Click(ctx context.Context) error {
	tag, err := e.handle.Evaluate(`el => el.tagName`)
	if err == nil {
		if name, ok := tag.(string); ok && strings.EqualFold(name, "option") {
			if _, err := e.handle.Evaluate(`el => {
				el.selected = true;
				const select = el.closest('select');
				if (select) {
					select.value = el.value;
					select.dispatchEvent(new Event('change', { bubbles: true }));
				}
			}`); err != nil {
				return fmt.Errorf("выбор опции %s: %w", e.loc, err)
			}
			return nil
		}
	}

	if err := e.handle.Click(); err != nil {
		return fmt.Errorf("клик по %s: %w", e.loc, err)
	}
	return nil
}

func (e *playwrightElement) Type(ctx context.Context, text string) error {
	if err := e.handle.Fill(text); err != nil {
		return fmt.Errorf("ввод в %s: %w", e.loc, err)
	}
	return nil
}

func (e *playwrightElement) HTML(ctx context.Context, inner bool) (string, error) {
	if inner {
		html, err := e.handle.InnerHTML()
		if err != nil {
			return "", fmt.Errorf("innerHTML %s: %w", e.loc, err)
		}
		return html, nil
	}

	res, err := e.handle.Evaluate(`el => el.outerHTML`)
	if err != nil {
		return "", fmt.Errorf("outerHTML %s: %w", e.loc, err)
	}
	html, ok := res.(string)
	if !ok {
		return "", fmt.Errorf("outerHTML %s: неожиданный тип %T", e.loc, res)
	}
	return html, nil
}
