package monitor

import (
	"log"
	"sort"
	"time"

	"pricewatch/models"
	"pricewatch/scraper"
)

// WatchSource supplies the watch list. The capture API writes it; the
// monitor only reads.
type WatchSource interface {
	GetWatchItems() ([]models.WatchItem, error)
}

// ObservationStore records price readings and answers most-recent queries.
type ObservationStore interface {
	Add(obs *models.Observation) error
	LastPrice(product, site string) (int, bool, error)
}

// Fetcher retrieves a product page.
type Fetcher interface {
	Fetch(url string) ([]byte, error)
}

// Extractor resolves a raw price string from a site's markup.
type Extractor interface {
	Known(site string) bool
	Extract(site string, body []byte) (string, bool)
}

// Notifier delivers a crossing alert to a contact address.
type Notifier interface {
	Notify(event *models.CrossingEvent, contact string) error
}

// Monitor drives one fetch→extract→normalize→record→detect→notify pass over
// the watch list. Pairs are processed strictly sequentially; per-pair
// failures are counted and never abort the run.
type Monitor struct {
	watches  WatchSource
	store    ObservationStore
	fetcher  Fetcher
	registry Extractor
	notifier Notifier
	now      func() time.Time
}

// NewMonitor creates a new monitor
func NewMonitor(watches WatchSource, store ObservationStore, fetcher Fetcher, registry Extractor, notifier Notifier) *Monitor {
	return &Monitor{
		watches:  watches,
		store:    store,
		fetcher:  fetcher,
		registry: registry,
		notifier: notifier,
		now:      time.Now,
	}
}

// Run executes one monitoring cycle over the whole watch list.
func (m *Monitor) Run() *models.RunReport {
	report := &models.RunReport{StartedAt: m.now().UTC()}

	items, err := m.watches.GetWatchItems()
	if err != nil {
		log.Printf("❌ Failed to load watch list: %v", err)
		report.Errors++
		return report
	}

	log.Printf("🔄 Starting monitoring cycle for %d watch items", len(items))

	for i := range items {
		m.checkItem(&items[i], report)
	}

	log.Printf("✅ Cycle complete: %d pairs checked, %d errors, %d without price, %d alerts",
		report.Pairs, report.Errors, report.Missing, report.Alerts)
	return report
}

func (m *Monitor) checkItem(item *models.WatchItem, report *models.RunReport) {
	if item.Name == "" {
		log.Printf("⚠️  Skipping watch item %d with empty name", item.ID)
		return
	}

	// stable site order so interleaved logs stay readable
	sites := make([]string, 0, len(item.URLs))
	for site := range item.URLs {
		sites = append(sites, site)
	}
	sort.Strings(sites)

	for _, site := range sites {
		url := item.URLs[site]
		if url == "" {
			continue
		}
		if !m.registry.Known(site) {
			log.Printf("⚠️  No extractor registered for %s", site)
			continue
		}
		m.checkPair(item, site, url, report)
	}
}

func (m *Monitor) checkPair(item *models.WatchItem, site, url string, report *models.RunReport) {
	report.Pairs++

	body, err := m.fetcher.Fetch(url)
	if err != nil {
		log.Printf("❌ %s fetch failed for %s: %v", site, item.Name, err)
		report.Errors++
		return
	}

	raw, ok := m.registry.Extract(site, body)
	if !ok {
		log.Printf("⚠️  %s returned no price for %s", site, item.Name)
		report.Missing++
		return
	}

	price, ok := scraper.NormalizePrice(raw)
	if !ok {
		log.Printf("⚠️  %s price text %q not parseable for %s", site, raw, item.Name)
		report.Missing++
		return
	}

	// prior price must be read before the new observation is appended so the
	// detector compares against the previous cycle
	prior, hasPrior, err := m.store.LastPrice(item.Name, site)
	if err != nil {
		log.Printf("❌ Failed to read last price for %s on %s: %v", item.Name, site, err)
		report.Errors++
		return
	}

	now := m.now().UTC()
	obs := &models.Observation{
		Product:   item.Name,
		Site:      site,
		Price:     price,
		URL:       url,
		ScrapedAt: now,
	}
	if err := m.store.Add(obs); err != nil {
		log.Printf("❌ Failed to record observation for %s on %s: %v", item.Name, site, err)
		report.Errors++
		return
	}

	log.Printf("💰 %s | %s → ₹%d", item.Name, site, price)

	if !item.HasThreshold() {
		return
	}
	threshold := *item.Threshold
	if !CheckCrossing(prior, hasPrior, price, threshold) {
		return
	}

	report.Alerts++
	log.Printf("🚨 Price drop for %s on %s: ₹%d → ₹%d (threshold ₹%d)",
		item.Name, site, prior, price, threshold)

	event := &models.CrossingEvent{
		Product:    item.Name,
		Site:       site,
		NewPrice:   price,
		PriorPrice: prior,
		Threshold:  threshold,
		URL:        url,
		Time:       now,
	}
	// notification is best effort and never counts toward the run's errors
	if err := m.notifier.Notify(event, item.Contact); err != nil {
		log.Printf("❌ Failed to send alert for %s on %s: %v", item.Name, site, err)
	}
}
