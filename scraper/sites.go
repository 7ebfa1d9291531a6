package scraper

// DefaultRegistry returns the registry with extraction chains for the
// supported storefronts. Chain order per site: known price selectors first,
// then a broader price-container selector, then structured product data,
// then meta-tag price attributes.
func DefaultRegistry() *Registry {
	r := NewRegistry()

	r.Register("Amazon",
		Selectors(
			"#priceblock_ourprice",
			"#priceblock_dealprice",
			"#priceblock_saleprice",
			"span.a-price-whole",
			"span.a-offscreen",
		),
		Selectors("span.a-price"),
		JSONLDStrategy{},
		MetaTagStrategy{},
	)

	r.Register("Snapdeal",
		Selectors(
			"span.payBlkBig",
			"#buyPriceBox span.payBlkBig",
			"span.pdp-final-price",
		),
		Selectors("div.pdp-e-i-PAY"),
		JSONLDStrategy{},
		MetaTagStrategy{},
	)

	r.Register("RelianceDigital",
		Selectors(
			".pdp__offerPrice",
			".pdp__finalPrice",
		),
		Selectors(".price"),
		JSONLDStrategy{},
		MetaTagStrategy{},
	)

	r.Register("Croma",
		Selectors(
			"span#pdp-product-price",
			"span.amount",
			"span.new-price",
		),
		Selectors(".cp-price"),
		JSONLDStrategy{},
		MetaTagStrategy{},
	)

	return r
}
