package helpers

import (
	"bytes"
	"fmt"
	"io"
	mathrand "math/rand"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/net/html/charset"

	"thaijobscraper/logger"
	"thaijobscraper/pkg/errors"
)

// HTTP client and header configurations
var (
	userAgents = []string{
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36",
		"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/14.0.3 Safari/605.1.15",
	}

	// HTTP client with a fixed per-request ceiling
	client = &http.Client{
		Timeout: 30 * time.Second,
	}
)

func setBrowserHeaders(req *http.Request, referer string) {
	rnd := mathrand.New(mathrand.NewSource(time.Now().UnixNano()))
	req.Header.Set("User-Agent", userAgents[rnd.Intn(len(userAgents))])
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8")
	req.Header.Set("Accept-Language", "th-TH,th;q=0.9,en-US;q=0.8,en;q=0.7")
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Pragma", "no-cache")
	req.Header.Set("Upgrade-Insecure-Requests", "1")
	req.Header.Set("Sec-Fetch-Dest", "document")
	req.Header.Set("Sec-Fetch-Mode", "navigate")
	req.Header.Set("Sec-Fetch-Site", "same-origin")
	req.Header.Set("Sec-Fetch-User", "?1")
	if referer != "" {
		req.Header.Set("Referer", referer)
	}
}

// Fetch sends an HTTP GET request with browser-like headers, converts the
// response body to UTF-8 (if needed), and returns it together with the final
// URL after redirects.
func Fetch(rawURL string) (io.Reader, string, error) {
	req, err := http.NewRequest("GET", rawURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create request: %w", err)
	}
	setBrowserHeaders(req, "")

	resp, err := client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("failed to fetch URL: %w", err)
	}
	defer resp.Body.Close()

	finalURL := rawURL
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL.String()
	}

	if resp.StatusCode != http.StatusOK {
		return nil, finalURL, fmt.Errorf("fetch %s unexpected status code: %d", rawURL, resp.StatusCode)
	}

	body, err := toUTF8(resp)
	if err != nil {
		return nil, finalURL, err
	}
	return body, finalURL, nil
}

// toUTF8 reads a response body and converts it to UTF-8 based on the
// Content-Type header and body content.
func toUTF8(resp *http.Response) (io.Reader, error) {
	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	encoding, name, _ := charset.DetermineEncoding(bodyBytes, resp.Header.Get("Content-Type"))
	if name == "utf-8" || name == "UTF-8" {
		return bytes.NewReader(bodyBytes), nil
	}

	utf8Reader := encoding.NewDecoder().Reader(bytes.NewReader(bodyBytes))
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, utf8Reader); err != nil {
		return nil, fmt.Errorf("failed to read converted UTF-8 body: %w", err)
	}
	return &buf, nil
}

// transientStatuses are treated as retryable by RetryClient
var transientStatuses = map[int]bool{
	http.StatusForbidden:           true,
	http.StatusTooManyRequests:     true,
	http.StatusInternalServerError: true,
	http.StatusBadGateway:          true,
	http.StatusServiceUnavailable:  true,
	http.StatusGatewayTimeout:      true,
}

// RetryClient wraps outbound requests to a single site in a bounded retry
// policy: up to MaxAttempts per request, retrying on transient statuses with
// an increasing backoff, and a warm-up request to the site root between 403
// attempts. An optional proxy URL is applied to every request.
type RetryClient struct {
	Source      string
	Root        string
	MaxAttempts int
	Backoff     time.Duration

	client *http.Client
	sleep  func(time.Duration)
}

// NewRetryClient creates a retry client for one site. proxyURL may be empty.
func NewRetryClient(source, root, proxyURL string) (*RetryClient, error) {
	httpClient := &http.Client{Timeout: 30 * time.Second}
	if proxyURL != "" {
		parsed, err := url.Parse(proxyURL)
		if err != nil {
			return nil, errors.NewConfiguration("invalid proxy URL", err)
		}
		httpClient.Transport = &http.Transport{Proxy: http.ProxyURL(parsed)}
	}

	return &RetryClient{
		Source:      source,
		Root:        root,
		MaxAttempts: 3,
		Backoff:     time.Second,
		client:      httpClient,
		sleep:       time.Sleep,
	}, nil
}

// Get fetches a URL, retrying transient failures. A 403 on the final attempt
// is reported as a blocked error with a diagnostic hint so callers can keep
// partial results instead of failing the run.
func (rc *RetryClient) Get(rawURL, referer string) (io.Reader, string, error) {
	var lastStatus int
	var lastErr error

	for attempt := 1; attempt <= rc.MaxAttempts; attempt++ {
		resp, err := rc.do(rawURL, referer)
		if err != nil {
			lastErr = err
			if attempt < rc.MaxAttempts {
				rc.sleep(rc.Backoff * time.Duration(attempt))
				continue
			}
			break
		}

		finalURL := rawURL
		if resp.Request != nil && resp.Request.URL != nil {
			finalURL = resp.Request.URL.String()
		}

		if resp.StatusCode == http.StatusOK {
			body, convErr := toUTF8(resp)
			resp.Body.Close()
			if convErr != nil {
				return nil, finalURL, convErr
			}
			return body, finalURL, nil
		}

		lastStatus = resp.StatusCode
		resp.Body.Close()

		if !transientStatuses[resp.StatusCode] {
			return nil, finalURL, errors.NewNetwork(rc.Source,
				fmt.Sprintf("unexpected status code %d for %s", resp.StatusCode, rawURL), nil)
		}

		if attempt < rc.MaxAttempts {
			if resp.StatusCode == http.StatusForbidden {
				rc.warmUp()
			}
			rc.sleep(rc.Backoff * time.Duration(attempt))
		}
	}

	if lastStatus == http.StatusForbidden {
		return nil, "", errors.NewBlocked(rc.Source,
			"repeated 403; commonly IP-based blocking on cloud runners, set JOBSDB_PROXY_URL or run from a residential IP", nil)
	}
	if lastErr != nil {
		return nil, "", errors.NewNetwork(rc.Source, "request failed after retries", lastErr)
	}
	return nil, "", errors.NewNetwork(rc.Source,
		fmt.Sprintf("request failed after retries with status %d", lastStatus), nil)
}

func (rc *RetryClient) do(rawURL, referer string) (*http.Response, error) {
	req, err := http.NewRequest("GET", rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if referer == "" {
		referer = rc.Root
	}
	setBrowserHeaders(req, referer)
	return rc.client.Do(req)
}

// warmUp hits the site root to refresh cookies before the next attempt
func (rc *RetryClient) warmUp() {
	if rc.Root == "" {
		return
	}
	resp, err := rc.do(rc.Root, "")
	if err != nil {
		logger.Debug("[%s] warm-up request failed: %v", rc.Source, err)
		return
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
}
