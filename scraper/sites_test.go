package scraper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmazonChainPriceblock(t *testing.T) {
	page := `
		<html><body>
			<span id="priceblock_ourprice">₹ 24,999.00</span>
			<span class="a-offscreen">₹ 99,999.00</span>
		</body></html>`

	raw, ok := DefaultRegistry().Extract("Amazon", []byte(page))
	require.True(t, ok)
	assert.Equal(t, "₹ 24,999.00", raw)
}

func TestAmazonChainFallsBackToPriceContainer(t *testing.T) {
	page := `
		<html><body>
			<span class="a-price"><span>₹13,490</span></span>
		</body></html>`

	raw, ok := DefaultRegistry().Extract("Amazon", []byte(page))
	require.True(t, ok)

	price, parsed := NormalizePrice(raw)
	require.True(t, parsed)
	assert.Equal(t, 13490, price)
}

func TestSnapdealChain(t *testing.T) {
	page := `
		<html><body>
			<div id="buyPriceBox"><span class="payBlkBig">11,999</span></div>
		</body></html>`

	raw, ok := DefaultRegistry().Extract("Snapdeal", []byte(page))
	require.True(t, ok)
	assert.Equal(t, "11,999", raw)
}

func TestRelianceDigitalSelectorBeforeJSONLD(t *testing.T) {
	page := `
		<html>
		<head>
			<script type="application/ld+json">{"@type": "Product", "offers": {"price": "99999"}}</script>
		</head>
		<body><span class="pdp__offerPrice">₹17,999</span></body>
		</html>`

	raw, ok := DefaultRegistry().Extract("RelianceDigital", []byte(page))
	require.True(t, ok)
	assert.Equal(t, "₹17,999", raw)
}

func TestRelianceDigitalJSONLDFallback(t *testing.T) {
	page := `
		<html>
		<head>
			<script type="application/ld+json">{"@type": "Product", "offers": {"price": "17999"}}</script>
		</head>
		<body><div class="pdp">no visible price markup</div></body>
		</html>`

	raw, ok := DefaultRegistry().Extract("RelianceDigital", []byte(page))
	require.True(t, ok)
	assert.Equal(t, "17999", raw)
}

func TestCromaMetaTagFallback(t *testing.T) {
	page := `
		<html><head><meta itemprop="price" content="32990" /></head><body></body></html>`

	raw, ok := DefaultRegistry().Extract("Croma", []byte(page))
	require.True(t, ok)
	assert.Equal(t, "32990", raw)
}

func TestChainAbsenceOnBarePage(t *testing.T) {
	page := `<html><body><h1>Phone X</h1><p>Currently unavailable.</p></body></html>`

	for _, site := range []string{"Amazon", "Snapdeal", "RelianceDigital", "Croma"} {
		_, ok := DefaultRegistry().Extract(site, []byte(page))
		assert.False(t, ok, site)
	}
}
