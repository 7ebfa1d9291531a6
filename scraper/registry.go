package scraper

import (
	"bytes"
	"log"
	"sort"

	"github.com/PuerkitoBio/goquery"
)

// Registry maps a site identifier to its ordered extraction strategy chain.
// Sites are added and removed independently; nothing in the dispatch changes
// when a new chain is registered.
type Registry struct {
	chains map[string][]ExtractionStrategy
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{chains: make(map[string][]ExtractionStrategy)}
}

// Register installs the extraction chain for a site, replacing any previous one.
func (r *Registry) Register(site string, chain ...ExtractionStrategy) {
	r.chains[site] = chain
}

// Known reports whether an extraction chain is registered for the site.
func (r *Registry) Known(site string) bool {
	_, ok := r.chains[site]
	return ok
}

// Sites returns the registered site identifiers, sorted.
func (r *Registry) Sites() []string {
	sites := make([]string, 0, len(r.chains))
	for site := range r.chains {
		sites = append(sites, site)
	}
	sort.Strings(sites)
	return sites
}

// Extract runs the site's chain over the page body. The first strategy that
// yields a non-empty price string wins; later strategies are not evaluated.
// ok=false means no strategy matched, which is a normal outcome.
func (r *Registry) Extract(site string, body []byte) (string, bool) {
	chain, registered := r.chains[site]
	if !registered {
		return "", false
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		log.Printf("⚠️  Failed to parse %s document: %v", site, err)
		return "", false
	}

	for _, strategy := range chain {
		if text, ok := strategy.Extract(doc); ok {
			return text, true
		}
	}

	return "", false
}
