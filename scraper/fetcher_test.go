package scraper

import (
	"errors"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pricewatch/config"
)

func newTestFetcher() *Fetcher {
	f := NewFetcher(config.FetcherConfig{
		MaxAttempts:      3,
		Timeout:          5 * time.Second,
		BaseDelayMin:     1 * time.Millisecond,
		BaseDelayMax:     2 * time.Millisecond,
		BackoffFactorMin: 1.5,
		BackoffFactorMax: 2.5,
		PolitenessMin:    1 * time.Millisecond,
		PolitenessMax:    2 * time.Millisecond,
		UserAgents:       []string{"test-agent/1.0"},
	})
	f.rand = rand.New(rand.NewSource(1))
	f.sleep = func(time.Duration) {}
	return f
}

func TestFetchSucceedsFirstAttempt(t *testing.T) {
	attempts := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.Write([]byte("<html><body>₹9,999</body></html>"))
	}))
	defer ts.Close()

	body, err := newTestFetcher().Fetch(ts.URL)
	require.NoError(t, err)
	assert.Contains(t, string(body), "₹9,999")
	assert.Equal(t, 1, attempts, "no retries after a successful fetch")
}

func TestFetchRetriesExactlyMaxAttempts(t *testing.T) {
	attempts := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	_, err := newTestFetcher().Fetch(ts.URL)
	require.Error(t, err)
	assert.Equal(t, 3, attempts)

	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, 3, fetchErr.Attempts)
	assert.Equal(t, ts.URL, fetchErr.URL)
}

func TestFetchTreats403AsRetryable(t *testing.T) {
	attempts := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		w.Write([]byte("<html><body>ok</body></html>"))
	}))
	defer ts.Close()

	body, err := newTestFetcher().Fetch(ts.URL)
	require.NoError(t, err)
	assert.Contains(t, string(body), "ok")
	assert.Equal(t, 3, attempts)
}

func TestFetchTreatsBotWallBodyAsRetryable(t *testing.T) {
	attempts := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.Write([]byte("<html><body>Please complete the CAPTCHA to continue</body></html>"))
	}))
	defer ts.Close()

	_, err := newTestFetcher().Fetch(ts.URL)
	require.Error(t, err)
	assert.Equal(t, 3, attempts)

	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Contains(t, fetchErr.Err.Error(), "bot wall")
}

func TestFetchSendsAntiDetectionHeaders(t *testing.T) {
	var gotUA, gotAccept, gotLang, gotReferer string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotAccept = r.Header.Get("Accept")
		gotLang = r.Header.Get("Accept-Language")
		gotReferer = r.Header.Get("Referer")
		w.Write([]byte("ok"))
	}))
	defer ts.Close()

	_, err := newTestFetcher().Fetch(ts.URL)
	require.NoError(t, err)
	assert.Equal(t, "test-agent/1.0", gotUA)
	assert.Contains(t, gotAccept, "text/html")
	assert.Equal(t, "en-IN,en;q=0.9", gotLang)
	assert.NotEmpty(t, gotReferer)
}

func TestFetchKeepsCookiesAcrossRetries(t *testing.T) {
	attempts := 0
	var secondCookie string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			http.SetCookie(w, &http.Cookie{Name: "session", Value: "abc123"})
			w.WriteHeader(http.StatusForbidden)
			return
		}
		if c, err := r.Cookie("session"); err == nil {
			secondCookie = c.Value
		}
		w.Write([]byte("ok"))
	}))
	defer ts.Close()

	_, err := newTestFetcher().Fetch(ts.URL)
	require.NoError(t, err)
	assert.Equal(t, "abc123", secondCookie, "retries share the call's cookie session")
}

func TestRefererForHost(t *testing.T) {
	referer, origin := refererFor("www.snapdeal.com")
	assert.Equal(t, "https://www.snapdeal.com/", referer)
	assert.Equal(t, "https://www.snapdeal.com", origin)

	referer, origin = refererFor("www.amazon.in")
	assert.Equal(t, "https://www.google.com/", referer)
	assert.Empty(t, origin)

	referer, _ = refererFor("shop.example.com")
	assert.Equal(t, "https://www.google.com/", referer)
}

func TestFallbackFetcherSkipsRenderForUnlistedHosts(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer ts.Close()

	// render fetcher is nil, and the host is not render-listed anyway
	f := NewFallbackFetcher(newTestFetcher(), nil, []string{"reliancedigital"})
	_, err := f.Fetch(ts.URL)

	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr))
}
