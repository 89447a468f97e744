// Package ingestion fetches job postings from URLs or files and extracts a
// partially populated job record for review before evaluation.
package ingestion

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// Fetch errors.
var (
	ErrHTTPRequestFailed = fmt.Errorf("HTTP request failed")
	ErrBadStatus         = fmt.Errorf("unexpected HTTP status")
)

const (
	fetchTimeout = 30 * time.Second
	userAgent    = "candidate-engine/1.0 (+job ingestion)"
	maxBodySize  = 5 << 20 // 5 MiB
)

// FetchHTML retrieves raw HTML from a URL.
func FetchHTML(ctx context.Context, urlStr string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrHTTPRequestFailed, err)
	}
	req.Header.Set("User-Agent", userAgent)

	client := &http.Client{Timeout: fetchTimeout}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrHTTPRequestFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: %d for %s", ErrBadStatus, resp.StatusCode, urlStr)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return "", fmt.Errorf("%w: reading body: %w", ErrHTTPRequestFailed, err)
	}
	return string(body), nil
}

// ReadFile reads a job posting from a local text or HTML file.
func ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read job posting file: %w", err)
	}
	return string(data), nil
}
