package hp

import (
	"context"
	"errors"
	"net/url"
	"testing"
	"time"

	"fwPull/internal/browser"
	"fwPull/internal/browser/browsertest"
	"fwPull/internal/firmware"
	"fwPull/internal/selectors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const resultsURL = "https://support.hpe.com/hpesc/public/km/search#t=DriversandSoftware&sort=relevancy&layout=table&numberOfResults=25&f:@kmswsoftwaretypekey=[ROM]"

func TestSortByDateURL(t *testing.T) {
	u, err := url.Parse(resultsURL)
	require.NoError(t, err)

	got, err := SortByDateURL(u)
	require.NoError(t, err)

	assert.Equal(t,
		"https://support.hpe.com/hpesc/public/km/search#t=DriversandSoftware&sort=%40hpescuniversaldate%20descending&layout=table&numberOfResults=25&f:@kmswsoftwaretypekey=[ROM]",
		got.String())
	assert.Equal(t, "t=DriversandSoftware&sort=@hpescuniversaldate descending&layout=table&numberOfResults=25&f:@kmswsoftwaretypekey=[ROM]", got.Fragment)
	// исходный URL не меняется
	assert.Equal(t, resultsURL, u.String())
}

func TestSortByDateURL_Errors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"no fragment", "https://support.hpe.com/hpesc/public/km/search"},
		{"other prefix", "https://support.hpe.com/hpesc/public/km/search#t=Documents&sort=relevancy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := url.Parse(tt.raw)
			require.NoError(t, err)

			_, err = SortByDateURL(u)
			var te *firmware.URLTransformError
			require.True(t, errors.As(err, &te))
			assert.Contains(t, err.Error(), "could not build sorted URL")
		})
	}
}

func TestVersionsFromSource(t *testing.T) {
	src := `<div><b>Type:</b> BIOS</div>
<b>Version 3.10 (1 Jan 2021)</b>
<b>Version 3.12 (5 Mar 2021)</b>
<b>Version 3.99</b>`

	current, approved, err := VersionsFromSource(src)
	require.NoError(t, err)
	assert.Equal(t, "3.10", current)
	assert.Equal(t, "3.12", approved)
}

func TestVersionsFromSource_SingleAndNone(t *testing.T) {
	current, approved, err := VersionsFromSource(`<b>Version:2.40</b>`)
	require.NoError(t, err)
	assert.Equal(t, "2.40", current)
	assert.Empty(t, approved)

	current, approved, err = VersionsFromSource(`<b>Release 1.0</b>`)
	require.NoError(t, err)
	assert.Empty(t, current)
	assert.Empty(t, approved)
}

func TestFirstHref(t *testing.T) {
	href, err := FirstHref(`<a href="/hpesc/public/docDisplay?docId=abc">U30</a>`)
	require.NoError(t, err)
	assert.Equal(t, "/hpesc/public/docDisplay?docId=abc", href)

	_, err = FirstHref(`<a>no href</a>`)
	var nf *firmware.NotFoundError
	assert.True(t, errors.As(err, &nf))
}

func defaultSelectors(t *testing.T) selectors.HP {
	t.Helper()
	f, err := selectors.Default()
	require.NoError(t, err)
	return f.HP
}

func TestExtract_FullWorkflow(t *testing.T) {
	sel := defaultSelectors(t)
	box := &browsertest.Element{}
	sess := browsertest.New().
		Add(sel.SearchBox.Browser(), box).
		Add(sel.SearchButton.Browser(), &browsertest.Element{}).
		Add(sel.BIOSResult.Browser(), &browsertest.Element{OnClick: func(s *browsertest.Session) { s.URL = resultsURL }}).
		Add(sel.RevisionLink.Browser(), &browsertest.Element{Outer: `<a href="/hpesc/public/docDisplay?docId=rom">U30</a>`}).
		Add(sel.RevisionTab.Browser(), &browsertest.Element{})
	sess.Pages["https://support.hpe.com/hpesc/public/docDisplay?docId=rom"] = `<b>Version 2.76</b><b>Version 2.72</b>`

	ex := New(sess, sel, time.Second, nil)
	rec, err := ex.Extract(context.Background(), firmware.Request{Vendor: "HP", Model: "ProLiant DL360 Gen10"})
	require.NoError(t, err)

	require.NotNil(t, rec.Current)
	require.NotNil(t, rec.Approved)
	assert.Equal(t, "2.76", *rec.Current)
	assert.Equal(t, "2.72", *rec.Approved)
	assert.Equal(t, []string{"ProLiant DL360 Gen10"}, box.Typed)

	require.Len(t, sess.Navigations, 4)
	assert.Equal(t, sel.HomeURL, sess.Navigations[0])
	assert.Equal(t, sel.HomeURL, sess.Navigations[1])
	assert.Contains(t, sess.Navigations[2], "sort=%40hpescuniversaldate%20descending")
	assert.Equal(t, "https://support.hpe.com/hpesc/public/docDisplay?docId=rom", sess.Navigations[3])
}

func TestExtract_UnsortableURL(t *testing.T) {
	sel := defaultSelectors(t)
	sess := browsertest.New().
		Add(sel.SearchBox.Browser(), &browsertest.Element{}).
		Add(sel.SearchButton.Browser(), &browsertest.Element{}).
		Add(sel.BIOSResult.Browser(), &browsertest.Element{OnClick: func(s *browsertest.Session) {
			s.URL = "https://support.hpe.com/hpesc/public/km/search"
		}}).
		Add(sel.RevisionLink.Browser(), &browsertest.Element{})

	_, err := New(sess, sel, time.Second, nil).Extract(context.Background(), firmware.Request{Vendor: "hp", Model: "DL380"})

	var te *firmware.URLTransformError
	require.True(t, errors.As(err, &te))
	assert.Len(t, sess.Navigations, 1)
}

func TestExtract_SearchBoxMissing(t *testing.T) {
	sel := defaultSelectors(t)
	sess := browsertest.New()

	_, err := New(sess, sel, 10*time.Millisecond, nil).Extract(context.Background(), firmware.Request{Vendor: "hp", Model: "DL380"})

	var nf *browser.ElementNotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, sel.SearchBox.Browser(), nf.Locator)
}
