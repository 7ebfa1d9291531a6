package scraper

import (
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubStrategy records whether it was evaluated.
type stubStrategy struct {
	result string
	called bool
}

func (s *stubStrategy) Extract(doc *goquery.Document) (string, bool) {
	s.called = true
	return s.result, s.result != ""
}

func TestRegistryShortCircuitsOnFirstMatch(t *testing.T) {
	first := &stubStrategy{result: "₹9,999"}
	second := &stubStrategy{result: "₹1"}

	r := NewRegistry()
	r.Register("SiteA", first, second)

	raw, ok := r.Extract("SiteA", []byte("<html><body></body></html>"))
	require.True(t, ok)
	assert.Equal(t, "₹9,999", raw)
	assert.True(t, first.called)
	assert.False(t, second.called, "later strategies must not run after a match")
}

func TestRegistryFallsThroughToLaterStrategies(t *testing.T) {
	first := &stubStrategy{}
	second := &stubStrategy{result: "₹2,499"}

	r := NewRegistry()
	r.Register("SiteA", first, second)

	raw, ok := r.Extract("SiteA", []byte("<html></html>"))
	require.True(t, ok)
	assert.Equal(t, "₹2,499", raw)
	assert.True(t, first.called)
	assert.True(t, second.called)
}

func TestRegistryAbsenceIsNotAnError(t *testing.T) {
	r := NewRegistry()
	r.Register("SiteA", &stubStrategy{})

	raw, ok := r.Extract("SiteA", []byte("<html></html>"))
	assert.False(t, ok)
	assert.Empty(t, raw)
}

func TestRegistryUnknownSite(t *testing.T) {
	r := NewRegistry()
	r.Register("SiteA", &stubStrategy{result: "₹100"})

	_, ok := r.Extract("SiteB", []byte("<html></html>"))
	assert.False(t, ok)
	assert.False(t, r.Known("SiteB"))
	assert.True(t, r.Known("SiteA"))
}

func TestRegisterExtendsWithoutTouchingOtherChains(t *testing.T) {
	siteA := &stubStrategy{result: "₹500"}

	r := NewRegistry()
	r.Register("SiteA", siteA)
	r.Register("SiteB", &stubStrategy{result: "₹900"})

	raw, ok := r.Extract("SiteA", []byte("<html></html>"))
	require.True(t, ok)
	assert.Equal(t, "₹500", raw)

	assert.Equal(t, []string{"SiteA", "SiteB"}, r.Sites())
}

func TestDefaultRegistryKnowsSupportedSites(t *testing.T) {
	r := DefaultRegistry()
	for _, site := range []string{"Amazon", "Snapdeal", "RelianceDigital", "Croma"} {
		assert.True(t, r.Known(site), site)
	}
	assert.False(t, r.Known("TataCliq"))
	assert.False(t, r.Known("ShoppersStop"))
}
