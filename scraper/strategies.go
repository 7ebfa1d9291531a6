package scraper

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ExtractionStrategy locates a raw price string inside a parsed document.
// "Not found" is a normal outcome, reported via ok=false.
type ExtractionStrategy interface {
	Extract(doc *goquery.Document) (string, bool)
}

// SelectorStrategy tries a list of candidate CSS selectors in order and
// returns the text of the first non-empty match.
type SelectorStrategy struct {
	selectors []string
}

// Selectors builds a SelectorStrategy from candidate selectors
func Selectors(selectors ...string) *SelectorStrategy {
	return &SelectorStrategy{selectors: selectors}
}

func (s *SelectorStrategy) Extract(doc *goquery.Document) (string, bool) {
	for _, sel := range s.selectors {
		text := strings.TrimSpace(doc.Find(sel).First().Text())
		if text != "" {
			return text, true
		}
	}
	return "", false
}

// JSONLDStrategy scans every application/ld+json script block for a Product
// payload and returns the first embedded offer price. Malformed blocks are
// skipped; list-typed payloads are walked entry by entry.
type JSONLDStrategy struct{}

func (JSONLDStrategy) Extract(doc *goquery.Document) (string, bool) {
	var found string
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		var payload interface{}
		if err := json.Unmarshal([]byte(s.Text()), &payload); err != nil {
			return true
		}
		if price, ok := productPrice(payload); ok {
			found = price
			return false
		}
		return true
	})
	return found, found != ""
}

func productPrice(payload interface{}) (string, bool) {
	switch v := payload.(type) {
	case map[string]interface{}:
		if graph, ok := v["@graph"]; ok {
			if price, ok := productPrice(graph); ok {
				return price, true
			}
		}
		if t, _ := v["@type"].(string); t != "Product" {
			return "", false
		}
		switch offers := v["offers"].(type) {
		case map[string]interface{}:
			return offerPrice(offers)
		case []interface{}:
			for _, entry := range offers {
				if offer, ok := entry.(map[string]interface{}); ok {
					if price, ok := offerPrice(offer); ok {
						return price, true
					}
				}
			}
		}
	case []interface{}:
		for _, entry := range v {
			if price, ok := productPrice(entry); ok {
				return price, true
			}
		}
	}
	return "", false
}

func offerPrice(offer map[string]interface{}) (string, bool) {
	switch price := offer["price"].(type) {
	case string:
		if strings.TrimSpace(price) != "" {
			return price, true
		}
	case float64:
		if price > 0 {
			return strconv.Itoa(int(price)), true
		}
	}
	return "", false
}

// MetaTagStrategy reads machine-readable price attributes from meta tags.
type MetaTagStrategy struct{}

func (MetaTagStrategy) Extract(doc *goquery.Document) (string, bool) {
	metaSelectors := []string{
		`meta[itemprop="price"]`,
		`meta[property="product:price:amount"]`,
		`meta[property="og:price:amount"]`,
	}
	for _, sel := range metaSelectors {
		if content, ok := doc.Find(sel).First().Attr("content"); ok {
			if content = strings.TrimSpace(content); content != "" {
				return content, true
			}
		}
	}
	return "", false
}
