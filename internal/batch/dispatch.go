package batch

import (
	"fmt"
	"net/http"
	"time"

	"fwPull/internal/browser"
	"fwPull/internal/firmware"
	"fwPull/internal/selectors"
	"fwPull/internal/vendors/dell"
	"fwPull/internal/vendors/hp"
	"fwPull/internal/vendors/oracle"

	"go.uber.org/zap"
)

// Dispatcher сопоставляет вендору его сценарий извлечения.
type Dispatcher struct {
	sel        *selectors.File
	httpClient *http.Client
	timeout    time.Duration
	log        *zap.Logger
}

// NewDispatcher: timeout - граница ожидания элементов для браузерных сценариев,
// httpClient используется для Oracle.
func NewDispatcher(sel *selectors.File, httpClient *http.Client, timeout time.Duration, log *zap.Logger) *Dispatcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Dispatcher{
		sel:        sel,
		httpClient: httpClient,
		timeout:    timeout,
		log:        log,
	}
}

// For возвращает экстрактор вендора. sess может быть nil для вендоров без браузера.
func (d *Dispatcher) For(kind firmware.Kind, sess browser.Session) firmware.Extractor {
	switch kind {
	case firmware.KindDell:
		return dell.New(sess, d.sel.Dell, d.timeout, d.log)
	case firmware.KindHp:
		return hp.New(sess, d.sel.HP, d.timeout, d.log)
	case firmware.KindOracle:
		return oracle.New(d.httpClient, d.sel.Oracle.ReleaseHistoryURL, d.log)
	default:
		panic(fmt.Sprintf("batch: вендор без сценария: %d", kind))
	}
}
