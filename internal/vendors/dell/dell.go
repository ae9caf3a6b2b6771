// Package dell извлекает версии BIOS со страницы драйверов Dell.
package dell

import (
	"context"
	"fmt"
	"strings"
	"time"

	"fwPull/internal/browser"
	"fwPull/internal/firmware"
	"fwPull/internal/selectors"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

type Extractor struct {
	sess    browser.Session
	sel     selectors.Dell
	timeout time.Duration
	log     *zap.Logger
}

func New(sess browser.Session, sel selectors.Dell, timeout time.Duration, log *zap.Logger) *Extractor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Extractor{
		sess:    sess,
		sel:     sel,
		timeout: timeout,
		log:     log.With(zap.String("vendor", firmware.KindDell.String())),
	}
}

// Slug переводит название модели в сегмент URL: нижний регистр, пробелы в дефисы.
func Slug(model string) string {
	return strings.ReplaceAll(strings.ToLower(model), " ", "-")
}

// DriversURL подставляет slug модели в шаблон страницы драйверов.
func (e *Extractor) DriversURL(model string) string {
	return strings.ReplaceAll(e.sel.DriversURL, "{slug}", Slug(model))
}

func (e *Extractor) Extract(ctx context.Context, req firmware.Request) (firmware.Record, error) {
	rec := firmware.NewRecord(req)

	target := e.DriversURL(req.Model)
	if err := e.sess.Navigate(ctx, target); err != nil {
		return rec, err
	}
	browser.DismissOverlays(ctx, e.sess, selectors.OverlayLocators(e.sel.Overlays))

	// Фильтр: ОС "NAA" и категория BIOS
	for _, l := range []selectors.Locator{e.sel.OSSelect, e.sel.NAAOption, e.sel.CategorySelect, e.sel.BIOSOption} {
		if err := e.click(ctx, l.Browser()); err != nil {
			return rec, err
		}
	}

	src, err := e.sess.PageSource(ctx)
	if err != nil {
		return rec, err
	}
	current, err := CurrentFromSource(src)
	if err != nil {
		return rec, err
	}
	if current != "" {
		rec.SetCurrent(current)
	}

	// Раскрываем строку BIOS и переходим к старым версиям
	if err := e.click(ctx, e.sel.DetailsButton.Browser()); err != nil {
		return rec, err
	}
	if err := e.click(ctx, e.sel.OlderVersionsLink.Browser()); err != nil {
		return rec, err
	}

	cell, err := e.sess.WaitFor(ctx, e.sel.ApprovedCell.Browser(), e.timeout)
	if err != nil {
		return rec, err
	}
	html, err := cell.HTML(ctx, false)
	if err != nil {
		return rec, err
	}
	approved, err := ApprovedFromHTML(html)
	if err != nil {
		return rec, err
	}
	if approved != "" {
		rec.SetApproved(approved)
	}

	e.log.Debug("Версии получены",
		zap.String("model", req.Model),
		zap.Stringp("current", rec.Current),
		zap.Stringp("approved", rec.Approved),
	)
	return rec, nil
}

func (e *Extractor) click(ctx context.Context, loc browser.Locator) error {
	el, err := e.sess.WaitFor(ctx, loc, e.timeout)
	if err != nil {
		return err
	}
	if err := el.Click(ctx); err != nil {
		return fmt.Errorf("клик по %s: %w", loc, err)
	}
	return nil
}

// CurrentFromSource ищет "Version X.Y[.Z]" во всех ячейках <td> по порядку документа.
// Каждое совпадение перезаписывает предыдущее: побеждает последнее.
// Пустая строка означает, что совпадений нет.
func CurrentFromSource(src string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(src))
	if err != nil {
		return "", fmt.Errorf("разбор страницы драйверов: %w", err)
	}

	re := firmware.Pattern(firmware.PatternDellVersion)
	current := ""
	doc.Find("td").Each(func(_ int, td *goquery.Selection) {
		if m := re.FindStringSubmatch(td.Text()); m != nil {
			current = m[1]
		}
	})
	return current, nil
}

// ApprovedFromHTML возвращает текст первой ссылки во фрагменте ячейки.
func ApprovedFromHTML(fragment string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return "", fmt.Errorf("разбор ячейки версии: %w", err)
	}

	a := doc.Find("a").First()
	if a.Length() == 0 {
		return "", nil
	}
	return strings.TrimSpace(a.Text()), nil
}
