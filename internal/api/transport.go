package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// transport issues the blocking POST-for-JSON calls every endpoint of the
// service is built on. Only HTTPS targets are accepted.
type transport struct {
	client    *http.Client
	userAgent string
}

func newTransport(client *http.Client, userAgent string, timeout time.Duration) *transport {
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}
	return &transport{client: client, userAgent: userAgent}
}

func (t *transport) postForm(ctx context.Context, targetURL string, form url.Values, headers map[string]string) ([]byte, error) {
	if form == nil {
		form = url.Values{}
	}
	return t.post(ctx, targetURL, "application/x-www-form-urlencoded", strings.NewReader(form.Encode()), headers)
}

func (t *transport) postJSON(ctx context.Context, targetURL string, body any, headers map[string]string) ([]byte, error) {
	raw, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request body: %w", err)
	}
	return t.post(ctx, targetURL, "application/json; charset=utf-8", bytes.NewReader(raw), headers)
}

func (t *transport) post(ctx context.Context, targetURL, contentType string, body io.Reader, headers map[string]string) ([]byte, error) {
	parsed, err := url.Parse(targetURL)
	if err != nil {
		return nil, fmt.Errorf("parse url %q: %w", targetURL, err)
	}
	if parsed.Scheme != "https" {
		return nil, fmt.Errorf("only https is supported, got %q", targetURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, targetURL, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("User-Agent", t.userAgent)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	slog.DebugContext(ctx, "POST", "url", targetURL, "content_type", contentType)

	res, err := t.client.Do(req)
	if err != nil {
		return nil, &TransportError{Reason: "request failed", Err: err}
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, &TransportError{Status: res.StatusCode, Reason: "read response body", Err: err}
	}

	slog.DebugContext(ctx, "response", "url", targetURL, "status", res.StatusCode, "bytes", len(raw))

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, &TransportError{Status: res.StatusCode, Reason: res.Status, Body: raw}
	}
	return raw, nil
}
