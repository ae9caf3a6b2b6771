package selectors

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fwPull/internal/browser"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	f, err := Default()
	require.NoError(t, err)

	assert.Equal(t, CurrentVersion, f.Version)
	assert.Equal(t, browser.XPath("//select[@id='operating-system']"), f.Dell.OSSelect.Browser())
	assert.Equal(t, browser.CSS("button.details-control"), f.Dell.DetailsButton.Browser())
	assert.Equal(t, browser.CSS("#ui-id-6"), f.HP.RevisionTab.Browser())
	assert.Equal(t, "https://support.hpe.com/hpesc/public/home", f.HP.HomeURL)
	assert.Contains(t, f.Oracle.ReleaseHistoryURL, "release-history-jsp.html")
}

func TestLoad_EmptyPathUsesDefault(t *testing.T) {
	f, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, CurrentVersion, f.Version)
}

func TestLoad_OverrideFile(t *testing.T) {
	data := strings.Replace(string(defaultYAML), `css: "#ui-id-6"`, `css: "#revision-tab"`, 1)
	path := filepath.Join(t.TempDir(), "selectors.yaml")
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	f, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, browser.CSS("#revision-tab"), f.HP.RevisionTab.Browser())
}

func TestParse_RejectsUnknownVersion(t *testing.T) {
	data := strings.Replace(string(defaultYAML), "version: 1", "version: 2", 1)
	_, err := Parse([]byte(data))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "версия")
}

func TestParse_RejectsAmbiguousLocator(t *testing.T) {
	data := strings.Replace(string(defaultYAML),
		`css: "button.details-control"`,
		"css: \"button.details-control\"\n    xpath: \"//button\"", 1)
	_, err := Parse([]byte(data))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dell.details_button")
}

func TestParse_RejectsDellURLWithoutSlug(t *testing.T) {
	data := strings.Replace(string(defaultYAML), "{slug}", "r630", 1)
	_, err := Parse([]byte(data))
	require.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
