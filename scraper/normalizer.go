package scraper

import (
	"regexp"
	"strconv"
	"strings"
)

// priceRegex matches an optional rupee marker followed by a digit run with
// optional thousands separators, e.g. "₹12,499" or "Rs. 19,999".
var priceRegex = regexp.MustCompile(`(?:₹|Rs\.?|INR)?\s*([0-9][0-9,]*)`)

// NormalizePrice converts a raw price fragment into an integer rupee amount.
// It returns ok=false when the text carries no digit run; callers treat that
// the same as "no price found".
func NormalizePrice(text string) (int, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, false
	}

	m := priceRegex.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}

	price, err := strconv.Atoi(strings.ReplaceAll(m[1], ",", ""))
	if err != nil || price <= 0 {
		return 0, false
	}

	return price, true
}
