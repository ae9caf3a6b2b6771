package browser_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"fwPull/internal/browser"
	"fwPull/internal/browser/browsertest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocator_String(t *testing.T) {
	assert.Equal(t, "css=button.details-control", browser.CSS("button.details-control").String())
	assert.Equal(t, "xpath=//option[@value='BI']", browser.XPath("//option[@value='BI']").String())
}

func TestLocator_Validate(t *testing.T) {
	tests := []struct {
		name    string
		loc     browser.Locator
		wantErr bool
	}{
		{"css", browser.CSS("#ui-id-6"), false},
		{"xpath", browser.XPath("//select[@id='operating-system']"), false},
		{"xpath group", browser.XPath("(//a)[1]"), false},
		{"empty", browser.CSS("  "), true},
		{"url", browser.CSS("https://www.dell.com"), true},
		{"protocol", browser.CSS("file://etc/passwd"), true},
		{"xpath without slash", browser.XPath("select[@id='x']"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.loc.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDefaultCapabilities(t *testing.T) {
	caps := browser.DefaultCapabilities(true)
	assert.True(t, caps.Headless)
	assert.Equal(t, true, caps.FirefoxPrefs["browser.privatebrowsing.autostart"])
	assert.Equal(t, browser.Viewport{Width: 1920, Height: 1080}, caps.Viewport)
}

func TestDismissOverlays(t *testing.T) {
	cookie := &browsertest.Element{}
	sess := browsertest.New().Add(browser.CSS("#onetrust-accept-btn-handler"), cookie)

	closed := browser.DismissOverlays(context.Background(), sess, []browser.Locator{
		browser.CSS("#onetrust-accept-btn-handler"),
		browser.CSS(".missing-banner"),
	})

	assert.Equal(t, 1, closed)
	assert.Equal(t, 1, cookie.Clicks)
}

func TestErrors_Unwrap(t *testing.T) {
	cause := errors.New("boom")

	var conn *browser.ConnectionError
	require.True(t, errors.As(error(&browser.ConnectionError{Endpoint: "ws://x", Err: cause}), &conn))
	assert.ErrorIs(t, conn, cause)
	assert.Contains(t, (&browser.ConnectionError{Err: cause}).Error(), "локальный")

	nf := &browser.ElementNotFoundError{Locator: browser.CSS("#a"), Timeout: time.Second, Err: cause}
	assert.ErrorIs(t, nf, cause)
	assert.Contains(t, nf.Error(), "css=#a")

	nav := &browser.NavigationError{URL: "https://x", Err: cause}
	assert.ErrorIs(t, nav, cause)
}
