package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/yeehaw32/tpot-analysis/model"
)

// Fetcher is the read side of the enrichment API the dashboard depends on.
type Fetcher interface {
	FetchSessionList(ctx context.Context, date string) (model.SessionList, error)
	FetchSessionDetail(ctx context.Context, date, sessionID string) (model.SessionDetail, error)
	FetchRuleDocument(ctx context.Context, sid string) (model.RuleDocument, error)
}

// Client talks to the enrichment API. Every call is a single GET with no
// retry; failures come back as *TransportError, *RemoteError or *DecodeError.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

func (c *Client) FetchSessionList(ctx context.Context, date string) (model.SessionList, error) {
	var out model.SessionList
	q := url.Values{"date": {date}}
	_, err := c.getJSON(ctx, "/api/sessions?"+q.Encode(), &out)
	return out, err
}

func (c *Client) FetchSessionDetail(ctx context.Context, date, sessionID string) (model.SessionDetail, error) {
	var out model.SessionDetail
	q := url.Values{"date": {date}}
	raw, err := c.getJSON(ctx, "/api/session/"+url.PathEscape(sessionID)+"?"+q.Encode(), &out)
	if err != nil {
		return model.SessionDetail{}, err
	}
	out.Raw = raw
	return out, nil
}

func (c *Client) FetchRuleDocument(ctx context.Context, sid string) (model.RuleDocument, error) {
	var out model.RuleDocument
	_, err := c.getJSON(ctx, "/api/sigma/"+url.PathEscape(sid), &out)
	return out, err
}

// Health calls /api/health and returns the reported status.
func (c *Client) Health(ctx context.Context) (string, error) {
	var out struct {
		Status string `json:"status"`
	}
	if _, err := c.getJSON(ctx, "/api/health", &out); err != nil {
		return "", err
	}
	return out.Status, nil
}

func (c *Client) getJSON(ctx context.Context, path string, dst any) ([]byte, error) {
	target := c.baseURL + path
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, &TransportError{URL: target, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("api request failed", "url", target, "err", err)
		return nil, &TransportError{URL: target, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Warn("api read failed", "url", target, "err", err)
		return nil, &TransportError{URL: target, Err: fmt.Errorf("read body: %w", err)}
	}
	c.logger.Debug("api request", "method", http.MethodGet, "url", target,
		"status", resp.StatusCode, "bytes", len(body), "duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Warn("api non-success status", "url", target, "status", resp.StatusCode)
		return nil, &RemoteError{
			URL:        target,
			Status:     resp.StatusCode,
			StatusText: statusText(resp),
		}
	}

	if err := json.Unmarshal(body, dst); err != nil {
		c.logger.Warn("api decode failed", "url", target, "err", err)
		return nil, &DecodeError{URL: target, Err: err}
	}
	return body, nil
}

// statusText returns the reason phrase, e.g. "Not Found" for "404 Not Found".
func statusText(resp *http.Response) string {
	if _, text, ok := strings.Cut(resp.Status, " "); ok && text != "" {
		return text
	}
	return http.StatusText(resp.StatusCode)
}
