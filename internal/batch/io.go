package batch

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"fwPull/internal/firmware"
)

// InputError - входной файл не прочитан или не является массивом запросов.
type InputError struct {
	Path string
	Err  error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("входной файл %s: %v", e.Path, e.Err)
}

func (e *InputError) Unwrap() error {
	return e.Err
}

// OutputError - отчет не удалось записать.
type OutputError struct {
	Path string
	Err  error
}

func (e *OutputError) Error() string {
	return fmt.Sprintf("запись отчета %s: %v", e.Path, e.Err)
}

func (e *OutputError) Unwrap() error {
	return e.Err
}

// ReadRequests читает JSON-массив [{"Vendor": "...", "Model": "..."}].
func ReadRequests(path string) ([]firmware.Request, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &InputError{Path: path, Err: err}
	}

	var reqs []firmware.Request
	if err := json.Unmarshal(data, &reqs); err != nil {
		return nil, &InputError{Path: path, Err: fmt.Errorf("разбор JSON: %w", err)}
	}
	return reqs, nil
}

func marshalRecords(recs []firmware.Record) ([]byte, error) {
	if recs == nil {
		recs = []firmware.Record{}
	}
	return json.MarshalIndent(recs, "", "  ")
}

// WriteRecords пишет отчет в файл path. При пустом path отчет уходит в stdout;
// если сериализация не удалась, туда же печатается отладочный дамп.
func WriteRecords(path string, stdout io.Writer, recs []firmware.Record) error {
	data, err := marshalRecords(recs)

	if path == "" {
		if err != nil {
			_, werr := fmt.Fprintf(stdout, "%+v\n", recs)
			return werr
		}
		_, err = fmt.Fprintln(stdout, string(data))
		return err
	}

	if err != nil {
		return &OutputError{Path: path, Err: err}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return &OutputError{Path: path, Err: err}
	}
	return nil
}
