package dell

import (
	"context"
	"errors"
	"testing"
	"time"

	"fwPull/internal/browser"
	"fwPull/internal/browser/browsertest"
	"fwPull/internal/firmware"
	"fwPull/internal/selectors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlug(t *testing.T) {
	assert.Equal(t, "poweredge-r630", Slug("PowerEdge R630"))
	assert.Equal(t, "poweredge-r630", Slug(Slug("PowerEdge R630")))
	assert.Equal(t, "", Slug(""))
}

func TestCurrentFromSource_LastMatchWins(t *testing.T) {
	src := `<table><tr><td>foo</td><td>BIOS Version 13.2.3 info</td><td>Version 2.1</td></tr></table>`

	got, err := CurrentFromSource(src)
	require.NoError(t, err)
	assert.Equal(t, "2.1", got)
}

func TestCurrentFromSource_NoMatch(t *testing.T) {
	got, err := CurrentFromSource(`<table><tr><td>nothing here</td></tr></table>`)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestApprovedFromHTML(t *testing.T) {
	got, err := ApprovedFromHTML(`<a href="/x"> 2.13.3 </a><a>ignored</a>`)
	require.NoError(t, err)
	assert.Equal(t, "2.13.3", got)

	got, err = ApprovedFromHTML(`<span>no link</span>`)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func defaultSelectors(t *testing.T) selectors.Dell {
	t.Helper()
	f, err := selectors.Default()
	require.NoError(t, err)
	return f.Dell
}

func TestExtract_FullWorkflow(t *testing.T) {
	sel := defaultSelectors(t)
	sess := browsertest.New()
	for _, l := range []selectors.Locator{sel.OSSelect, sel.NAAOption, sel.CategorySelect, sel.BIOSOption, sel.DetailsButton, sel.OlderVersionsLink} {
		sess.Add(l.Browser(), &browsertest.Element{})
	}
	sess.Add(sel.ApprovedCell.Browser(), &browsertest.Element{Outer: `<a href="/driver">2.11.2</a>`})
	sess.Source = `<table><tr><td>Version 2.12.1</td><td>BIOS</td></tr></table>`

	ex := New(sess, sel, time.Second, nil)
	rec, err := ex.Extract(context.Background(), firmware.Request{Vendor: "Dell", Model: "PowerEdge R630"})
	require.NoError(t, err)

	assert.Equal(t, "Dell", rec.Vendor)
	assert.Equal(t, "PowerEdge R630", rec.Model)
	require.NotNil(t, rec.Current)
	require.NotNil(t, rec.Approved)
	assert.Equal(t, "2.12.1", *rec.Current)
	assert.Equal(t, "2.11.2", *rec.Approved)

	assert.Equal(t, []string{
		"https://www.dell.com/support/home/us/en/04/product-support/product/poweredge-r630/drivers",
	}, sess.Navigations)
	assert.Equal(t, sel.OSSelect.Browser().String(), sess.Waits[0])
	assert.Equal(t, sel.ApprovedCell.Browser().String(), sess.Waits[len(sess.Waits)-1])
}

func TestExtract_MissingCategorySelect(t *testing.T) {
	sel := defaultSelectors(t)
	sess := browsertest.New().
		Add(sel.OSSelect.Browser(), &browsertest.Element{}).
		Add(sel.NAAOption.Browser(), &browsertest.Element{})

	ex := New(sess, sel, 50*time.Millisecond, nil)
	rec, err := ex.Extract(context.Background(), firmware.Request{Vendor: "dell", Model: "R630"})

	var nf *browser.ElementNotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, sel.CategorySelect.Browser(), nf.Locator)
	assert.Equal(t, 50*time.Millisecond, nf.Timeout)
	assert.Nil(t, rec.Current)
}

func TestExtract_NavigationFailure(t *testing.T) {
	sel := defaultSelectors(t)
	ex := New(nil, sel, time.Second, nil)
	sess := browsertest.New()
	sess.NavigateErr[ex.DriversURL("R640")] = errors.New("timeout")
	ex.sess = sess

	_, err := ex.Extract(context.Background(), firmware.Request{Vendor: "dell", Model: "R640"})

	var nav *browser.NavigationError
	assert.True(t, errors.As(err, &nav))
	assert.Empty(t, sess.Waits)
}
