// Package selectors загружает версионированный файл локаторов страниц вендоров.
// Встроенный default.yaml используется, если путь к своему файлу не задан.
package selectors

import (
	_ "embed"
	"fmt"
	"net/url"
	"os"
	"strings"

	"fwPull/internal/browser"

	"gopkg.in/yaml.v3"
)

// CurrentVersion - единственная поддерживаемая версия формата файла.
const CurrentVersion = 1

//go:embed default.yaml
var defaultYAML []byte

// Locator в YAML задается ровно одним из ключей css или xpath.
type Locator struct {
	CSS   string `yaml:"css,omitempty"`
	XPath string `yaml:"xpath,omitempty"`
}

func (l Locator) Browser() browser.Locator {
	if l.XPath != "" {
		return browser.XPath(l.XPath)
	}
	return browser.CSS(l.CSS)
}

func (l Locator) validate() error {
	if (l.CSS == "") == (l.XPath == "") {
		return fmt.Errorf("нужно указать ровно одно из css/xpath")
	}
	return l.Browser().Validate()
}

type Dell struct {
	DriversURL        string    `yaml:"drivers_url"`
	Overlays          []Locator `yaml:"overlays"`
	OSSelect          Locator   `yaml:"os_select"`
	NAAOption         Locator   `yaml:"naa_option"`
	CategorySelect    Locator   `yaml:"category_select"`
	BIOSOption        Locator   `yaml:"bios_option"`
	DetailsButton     Locator   `yaml:"details_button"`
	OlderVersionsLink Locator   `yaml:"older_versions_link"`
	ApprovedCell      Locator   `yaml:"approved_cell"`
}

type HP struct {
	HomeURL      string    `yaml:"home_url"`
	Overlays     []Locator `yaml:"overlays"`
	SearchBox    Locator   `yaml:"search_box"`
	SearchButton Locator   `yaml:"search_button"`
	BIOSResult   Locator   `yaml:"bios_result"`
	RevisionLink Locator   `yaml:"revision_link"`
	RevisionTab  Locator   `yaml:"revision_tab"`
}

type Oracle struct {
	ReleaseHistoryURL string `yaml:"release_history_url"`
}

type File struct {
	Version int    `yaml:"version"`
	Dell    Dell   `yaml:"dell"`
	HP      HP     `yaml:"hp"`
	Oracle  Oracle `yaml:"oracle"`
}

// Default возвращает встроенный набор селекторов.
func Default() (*File, error) {
	return Parse(defaultYAML)
}

// Load читает файл по пути; пустой путь - встроенный набор.
func Load(path string) (*File, error) {
	if path == "" {
		return Default()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("чтение файла селекторов: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("разбор файла селекторов: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

func (f *File) Validate() error {
	if f.Version != CurrentVersion {
		return fmt.Errorf("неподдерживаемая версия файла селекторов: %d (ожидается %d)", f.Version, CurrentVersion)
	}

	if !strings.Contains(f.Dell.DriversURL, "{slug}") {
		return fmt.Errorf("dell.drivers_url должен содержать {slug}")
	}

	for name, raw := range map[string]string{
		"dell.drivers_url":           f.Dell.DriversURL,
		"hp.home_url":                f.HP.HomeURL,
		"oracle.release_history_url": f.Oracle.ReleaseHistoryURL,
	} {
		if err := validateURL(raw); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}

	locators := map[string]Locator{
		"dell.os_select":           f.Dell.OSSelect,
		"dell.naa_option":          f.Dell.NAAOption,
		"dell.category_select":     f.Dell.CategorySelect,
		"dell.bios_option":         f.Dell.BIOSOption,
		"dell.details_button":      f.Dell.DetailsButton,
		"dell.older_versions_link": f.Dell.OlderVersionsLink,
		"dell.approved_cell":       f.Dell.ApprovedCell,
		"hp.search_box":            f.HP.SearchBox,
		"hp.search_button":         f.HP.SearchButton,
		"hp.bios_result":           f.HP.BIOSResult,
		"hp.revision_link":         f.HP.RevisionLink,
		"hp.revision_tab":          f.HP.RevisionTab,
	}
	for i, l := range f.Dell.Overlays {
		locators[fmt.Sprintf("dell.overlays[%d]", i)] = l
	}
	for i, l := range f.HP.Overlays {
		locators[fmt.Sprintf("hp.overlays[%d]", i)] = l
	}

	for name, l := range locators {
		if err := l.validate(); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}

	return nil
}

func validateURL(raw string) error {
	u, err := url.Parse(strings.ReplaceAll(raw, "{slug}", "x"))
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("ожидается http(s) URL, получено %q", raw)
	}
	return nil
}

// OverlayLocators переводит список оверлеев в локаторы браузера.
func OverlayLocators(ls []Locator) []browser.Locator {
	out := make([]browser.Locator, 0, len(ls))
	for _, l := range ls {
		out = append(out, l.Browser())
	}
	return out
}
