package readability

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	goreadability "github.com/go-shiori/go-readability"
)

const (
	fetchTimeout = 30 * time.Second
	maxBodySize  = 1 << 20 // 1 MiB
	userAgent    = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// Extractor fetches pages and extracts their readable text for summarization.
// Reader-mode extraction drops scripts, styles, and navigation chrome and
// prefers the main article region over the full body.
type Extractor struct {
	http *http.Client
}

func NewExtractor() *Extractor {
	return &Extractor{
		http: &http.Client{
			Timeout: fetchTimeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout:   10 * time.Second,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				TLSHandshakeTimeout:   10 * time.Second,
				ResponseHeaderTimeout: 15 * time.Second,
				MaxIdleConns:          20,
				MaxIdleConnsPerHost:   5,
				IdleConnTimeout:       90 * time.Second,
			},
		},
	}
}

// PageText fetches a URL and returns its readable text content.
// The provided context is used as a parent; a 30-second timeout is applied on top.
func (e *Extractor) PageText(ctx context.Context, rawURL string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parse url: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "GET", rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := e.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch returned status %d", resp.StatusCode)
	}

	// Limit response body
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize+1))
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}
	if len(body) > maxBodySize {
		return "", fmt.Errorf("response exceeds %d bytes", maxBodySize)
	}

	article, err := goreadability.FromReader(bytes.NewReader(body), parsedURL)
	if err != nil {
		return "", fmt.Errorf("readability extract: %w", err)
	}

	text := strings.TrimSpace(article.TextContent)
	if text == "" {
		return "", fmt.Errorf("no content extracted")
	}

	return text, nil
}
