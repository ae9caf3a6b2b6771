// Package firmware содержит общую модель данных извлечения версий прошивок:
// входной запрос, итоговую запись, типизированные ошибки и реестр регулярных выражений.
package firmware

import "context"

// Request - одна строка входного файла.
type Request struct {
	Vendor string `json:"Vendor"`
	Model  string `json:"Model"`
}

// Record - результат извлечения для одной модели.
// Current и Approved равны nil, если страница не дала совпадения; это не ошибка.
type Record struct {
	Vendor   string  `json:"Vendor"`
	Model    string  `json:"Model"`
	Current  *string `json:"Current"`
	Approved *string `json:"Approved"`
}

// NewRecord создает пустую запись, повторяя вендора и модель из запроса.
func NewRecord(req Request) Record {
	return Record{
		Vendor: req.Vendor,
		Model:  req.Model,
	}
}

func (r *Record) SetCurrent(v string) {
	r.Current = &v
}

func (r *Record) SetApproved(v string) {
	r.Approved = &v
}

// Extractor реализует сценарий извлечения для одного вендора.
type Extractor interface {
	Extract(ctx context.Context, req Request) (Record, error)
}
