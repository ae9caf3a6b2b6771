// Package hp извлекает версии системного ROM с портала поддержки HPE.
package hp

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"fwPull/internal/browser"
	"fwPull/internal/firmware"
	"fwPull/internal/selectors"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

const sortedPrefix = "t=DriversandSoftware&sort=%40hpescuniversaldate%20descending&layout=table&numberOfResults=25&f"

type Extractor struct {
	sess    browser.Session
	sel     selectors.HP
	timeout time.Duration
	log     *zap.Logger
}

func New(sess browser.Session, sel selectors.HP, timeout time.Duration, log *zap.Logger) *Extractor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Extractor{
		sess:    sess,
		sel:     sel,
		timeout: timeout,
		log:     log.With(zap.String("vendor", firmware.KindHp.String())),
	}
}

func (e *Extractor) Extract(ctx context.Context, req firmware.Request) (firmware.Record, error) {
	rec := firmware.NewRecord(req)

	if err := e.openHome(ctx); err != nil {
		return rec, err
	}

	// Поиск модели и переход к первому результату BIOS
	box, err := e.sess.WaitFor(ctx, e.sel.SearchBox.Browser(), e.timeout)
	if err != nil {
		return rec, err
	}
	if err := box.Type(ctx, req.Model); err != nil {
		return rec, fmt.Errorf("ввод модели: %w", err)
	}
	if err := e.click(ctx, e.sel.SearchButton.Browser()); err != nil {
		return rec, err
	}
	if err := e.click(ctx, e.sel.BIOSResult.Browser()); err != nil {
		return rec, err
	}
	if err := e.sess.WaitForNavigation(ctx); err != nil {
		return rec, err
	}
	if _, err := e.sess.WaitFor(ctx, e.sel.RevisionLink.Browser(), e.timeout); err != nil {
		return rec, err
	}

	resultsURL, err := e.sess.CurrentURL(ctx)
	if err != nil {
		return rec, err
	}
	sorted, err := SortByDateURL(resultsURL)
	if err != nil {
		return rec, err
	}
	e.log.Debug("Сортировка по дате", zap.String("model", req.Model), zap.String("url", sorted.String()))

	// Смена одного фрагмента не перезагружает страницу, поэтому сначала уходим на главную
	if err := e.openHome(ctx); err != nil {
		return rec, err
	}
	if err := e.sess.Navigate(ctx, sorted.String()); err != nil {
		return rec, err
	}

	link, err := e.sess.WaitFor(ctx, e.sel.RevisionLink.Browser(), e.timeout)
	if err != nil {
		return rec, err
	}
	html, err := link.HTML(ctx, false)
	if err != nil {
		return rec, err
	}
	href, err := FirstHref(html)
	if err != nil {
		return rec, err
	}
	target, err := sorted.Parse(href)
	if err != nil {
		return rec, fmt.Errorf("разбор ссылки на ревизию %q: %w", href, err)
	}

	if err := e.sess.Navigate(ctx, target.String()); err != nil {
		return rec, err
	}
	if _, err := e.sess.WaitFor(ctx, e.sel.RevisionTab.Browser(), e.timeout); err != nil {
		return rec, err
	}

	src, err := e.sess.PageSource(ctx)
	if err != nil {
		return rec, err
	}
	current, approved, err := VersionsFromSource(src)
	if err != nil {
		return rec, err
	}
	if current != "" {
		rec.SetCurrent(current)
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

func (e *Extractor) openHome(ctx context.Context) error {
	if err := e.sess.Navigate(ctx, e.sel.HomeURL); err != nil {
		return err
	}
	browser.DismissOverlays(ctx, e.sess, selectors.OverlayLocators(e.sel.Overlays))
	return nil
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

// SortByDateURL меняет сортировку таблицы результатов с релевантности на дату выпуска.
// Остаток фрагмента (фильтры) сохраняется. Исходный URL не изменяется.
func SortByDateURL(u *url.URL) (*url.URL, error) {
	if u == nil {
		return nil, &firmware.URLTransformError{Reason: "пустой URL"}
	}
	frag := u.EscapedFragment()
	if frag == "" {
		return nil, &firmware.URLTransformError{URL: u.String(), Reason: "нет фрагмента"}
	}

	m := firmware.Pattern(firmware.PatternHPSortFragment).FindStringSubmatch(frag)
	if m == nil {
		return nil, &firmware.URLTransformError{URL: u.String(), Reason: "фрагмент не содержит сортировки по релевантности"}
	}

	raw := sortedPrefix + m[2]
	decoded, err := url.PathUnescape(raw)
	if err != nil {
		return nil, &firmware.URLTransformError{URL: u.String(), Reason: err.Error()}
	}

	out := *u
	out.Fragment = decoded
	out.RawFragment = raw
	return &out, nil
}

// FirstHref возвращает href первой ссылки во фрагменте HTML.
func FirstHref(fragment string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return "", fmt.Errorf("разбор ссылки на ревизию: %w", err)
	}

	href, ok := doc.Find("a").First().Attr("href")
	if !ok || href == "" {
		return "", &firmware.NotFoundError{What: "<a href>"}
	}
	return href, nil
}

// VersionsFromSource сканирует теги <b>, начинающиеся с "Version".
// Первая найденная версия - текущая, вторая - утвержденная, остальные игнорируются.
func VersionsFromSource(src string) (current, approved string, err error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(src))
	if err != nil {
		return "", "", fmt.Errorf("разбор страницы ревизий: %w", err)
	}

	re := firmware.Pattern(firmware.PatternHPVersion)
	var found []string
	doc.Find("b").EachWithBreak(func(_ int, b *goquery.Selection) bool {
		text := strings.TrimSpace(b.Text())
		if !strings.HasPrefix(text, "Version") {
			return true
		}
		if v := re.FindString(text); v != "" {
			found = append(found, v)
		}
		return len(found) < 2
	})

	if len(found) > 0 {
		current = found[0]
	}
	if len(found) > 1 {
		approved = found[1]
	}
	return current, approved, nil
}
