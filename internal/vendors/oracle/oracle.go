// Package oracle извлекает версии Sun System Firmware из таблицы истории релизов Oracle.
// Браузер не нужен: страница отдается статически.
package oracle

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"fwPull/internal/firmware"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

const DefaultTimeout = 30 * time.Second

type Extractor struct {
	client  *http.Client
	pageURL string
	log     *zap.Logger
}

// New создает экстрактор. При client == nil используется клиент с DefaultTimeout.
func New(client *http.Client, pageURL string, log *zap.Logger) *Extractor {
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Extractor{
		client:  client,
		pageURL: pageURL,
		log:     log.With(zap.String("vendor", firmware.KindOracle.String())),
	}
}

func (e *Extractor) Extract(ctx context.Context, req firmware.Request) (firmware.Record, error) {
	rec := firmware.NewRecord(req)

	doc, err := e.fetch(ctx)
	if err != nil {
		return rec, err
	}

	current, approved := VersionsFromDocument(doc, req.Model)
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

func (e *Extractor) fetch(ctx context.Context) (*goquery.Document, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, e.pageURL, nil)
	if err != nil {
		return nil, &firmware.HTTPError{URL: e.pageURL, Err: err}
	}

	resp, err := e.client.Do(httpReq)
	if err != nil {
		return nil, &firmware.HTTPError{URL: e.pageURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &firmware.HTTPError{URL: e.pageURL, StatusCode: resp.StatusCode}
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, &firmware.HTTPError{URL: e.pageURL, StatusCode: resp.StatusCode, Err: fmt.Errorf("разбор HTML: %w", err)}
	}
	return doc, nil
}

// VersionsFromSource разбирает HTML страницы истории релизов.
func VersionsFromSource(src, model string) (current, approved string, err error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(src))
	if err != nil {
		return "", "", fmt.Errorf("разбор страницы истории релизов: %w", err)
	}
	current, approved = VersionsFromDocument(doc, model)
	return current, approved, nil
}

// VersionsFromDocument ищет первую строку таблицы с якорем id=model.
// Текущая версия берется из ее первого <strong>, утвержденная - из первого <p>
// следующей строки. Строка с якорем, но без подходящего <strong>, пропускается.
func VersionsFromDocument(doc *goquery.Document, model string) (current, approved string) {
	re := firmware.Pattern(firmware.PatternOracleVersion)
	version := func(s *goquery.Selection) string {
		m := re.FindStringSubmatch(strings.TrimSpace(s.First().Text()))
		if m == nil {
			return ""
		}
		return m[1]
	}

	doc.Find("tr").EachWithBreak(func(_ int, tr *goquery.Selection) bool {
		if current != "" {
			approved = version(tr.Find("p"))
			return false
		}

		anchor := tr.Find("a").FilterFunction(func(_ int, a *goquery.Selection) bool {
			id, ok := a.Attr("id")
			return ok && id == model
		})
		if anchor.Length() > 0 {
			current = version(tr.Find("strong"))
		}
		return true
	})
	return current, approved
}
