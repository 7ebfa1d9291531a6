package scraper

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// RenderFetcher loads a page through a headless browser for storefronts that
// assemble their price markup client-side.
type RenderFetcher struct {
	browser *rod.Browser
}

// NewRenderFetcher launches a headless browser instance
func NewRenderFetcher() (*RenderFetcher, error) {
	// Use system Chromium in Docker, auto-detect locally
	l := launcher.New().
		Headless(true).
		NoSandbox(true).
		Leakless(false)

	if _, err := os.Stat("/usr/bin/chromium-browser"); err == nil {
		l = l.Bin("/usr/bin/chromium-browser")
		log.Printf("Using system Chromium in Docker environment")
	}

	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %v", err)
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("failed to connect to browser: %v", err)
	}

	return &RenderFetcher{browser: browser}, nil
}

// Fetch renders the page and returns its final HTML.
func (rf *RenderFetcher) Fetch(url string) (body []byte, err error) {
	// rod's Must helpers panic on failure
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("render fetch failed for %s: %v", url, r)
		}
	}()

	page := rf.browser.MustPage(url)
	defer page.MustClose()

	page.MustSetViewport(1366, 768, 1.0, false)
	page.MustWaitLoad()
	time.Sleep(3 * time.Second) // let late price widgets settle

	html := page.MustHTML()
	return []byte(html), nil
}

// Close shuts down the browser
func (rf *RenderFetcher) Close() {
	if rf.browser != nil {
		rf.browser.MustClose()
	}
}

// FallbackFetcher tries the plain HTTP fetcher first and falls back to a
// headless render for hosts configured as JavaScript-heavy when the plain
// fetch exhausts its retries.
type FallbackFetcher struct {
	primary *Fetcher
	render  *RenderFetcher
	hosts   []string // host substrings eligible for the fallback
}

// NewFallbackFetcher creates a fallback fetcher; render may be nil, in which
// case the plain fetcher's result is final.
func NewFallbackFetcher(primary *Fetcher, render *RenderFetcher, hosts []string) *FallbackFetcher {
	return &FallbackFetcher{primary: primary, render: render, hosts: hosts}
}

// Fetch retrieves the page body at url
func (f *FallbackFetcher) Fetch(url string) ([]byte, error) {
	body, err := f.primary.Fetch(url)
	if err == nil {
		return body, nil
	}

	if f.render == nil || !f.renderable(url) {
		return nil, err
	}

	log.Printf("🔄 Falling back to headless render for %s", url)
	body, rerr := f.render.Fetch(url)
	if rerr != nil {
		log.Printf("❌ Render fallback also failed: %v", rerr)
		return nil, err // keep the original FetchError
	}

	return body, nil
}

func (f *FallbackFetcher) renderable(url string) bool {
	lower := strings.ToLower(url)
	for _, host := range f.hosts {
		if host != "" && strings.Contains(lower, strings.ToLower(host)) {
			return true
		}
	}
	return false
}
