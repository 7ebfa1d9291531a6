package scraper

import (
	"fmt"
	"io"
	"log"
	"math/rand"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"pricewatch/config"
)

// FetchError is returned when a page could not be retrieved after the
// configured number of attempts. It wraps the last underlying error.
type FetchError struct {
	URL      string
	Attempts int
	Err      error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch failed for %s after %d attempts: %v", e.URL, e.Attempts, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Fetcher retrieves product pages with browser-like headers and a bounded
// retry loop. Each call gets its own cookie session; retries within the call
// share it so cookie challenges can carry over.
type Fetcher struct {
	cfg      config.FetcherConfig
	detector *BlockDetector
	rand     *rand.Rand
	sleep    func(time.Duration)
}

// NewFetcher creates a new fetcher
func NewFetcher(cfg config.FetcherConfig) *Fetcher {
	return &Fetcher{
		cfg:      cfg,
		detector: NewBlockDetector(),
		rand:     rand.New(rand.NewSource(time.Now().UnixNano())),
		sleep:    time.Sleep,
	}
}

// Fetch retrieves the page body at url. A 403 response or a body that looks
// like a bot wall counts as a failed attempt and is retried with backoff.
func (f *Fetcher) Fetch(url string) ([]byte, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %v", err)
	}
	client := &http.Client{Timeout: f.cfg.Timeout, Jar: jar}

	delay := f.randomDuration(f.cfg.BaseDelayMin, f.cfg.BaseDelayMax)
	var lastErr error

	for attempt := 1; attempt <= f.cfg.MaxAttempts; attempt++ {
		if attempt > 1 {
			f.sleep(delay)
			factor := f.cfg.BackoffFactorMin + f.rand.Float64()*(f.cfg.BackoffFactorMax-f.cfg.BackoffFactorMin)
			delay = time.Duration(float64(delay) * factor)
		}

		body, err := f.attempt(client, url)
		if err != nil {
			lastErr = err
			log.Printf("⚠️  Fetch attempt %d/%d failed for %s: %v", attempt, f.cfg.MaxAttempts, url, err)
			continue
		}

		// short pause after success to keep request cadence polite
		f.sleep(f.randomDuration(f.cfg.PolitenessMin, f.cfg.PolitenessMax))
		return body, nil
	}

	return nil, &FetchError{URL: url, Attempts: f.cfg.MaxAttempts, Err: lastErr}
}

func (f *Fetcher) attempt(client *http.Client, url string) ([]byte, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	f.applyHeaders(req)

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusForbidden {
		return nil, fmt.Errorf("blocked with status 403")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if blocked, marker := f.detector.Blocked(body); blocked {
		return nil, fmt.Errorf("bot wall detected (%s)", marker)
	}

	return body, nil
}

// applyHeaders sets a realistic browser header set: a User-Agent drawn from
// the rotation pool plus a Referer/Origin pair matched to the target host.
func (f *Fetcher) applyHeaders(req *http.Request) {
	ua := f.cfg.UserAgents[f.rand.Intn(len(f.cfg.UserAgents))]
	req.Header.Set("User-Agent", ua)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-IN,en;q=0.9")
	req.Header.Set("Connection", "keep-alive")

	referer, origin := refererFor(req.URL.Host)
	req.Header.Set("Referer", referer)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
}

func (f *Fetcher) randomDuration(min, max time.Duration) time.Duration {
	if max <= min {
		return min
	}
	return min + time.Duration(f.rand.Int63n(int64(max-min)))
}

// refererFor picks a Referer/Origin pair for the host. Storefronts that
// check same-site navigation get their own home page; everything else looks
// like a search-engine visit.
func refererFor(host string) (referer, origin string) {
	h := strings.ToLower(host)
	switch {
	case strings.Contains(h, "amazon"):
		return "https://www.google.com/", ""
	case strings.Contains(h, "snapdeal"):
		return "https://www.snapdeal.com/", "https://www.snapdeal.com"
	case strings.Contains(h, "reliancedigital"):
		return "https://www.reliancedigital.in/", "https://www.reliancedigital.in"
	case strings.Contains(h, "croma"):
		return "https://www.croma.com/", "https://www.croma.com"
	default:
		return "https://www.google.com/", ""
	}
}
