package snow

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/opslens/opslens/pkg/domain/interfaces"
	"github.com/opslens/opslens/pkg/domain/model"
	"github.com/opslens/opslens/pkg/domain/types"
)

// DefaultFetchTimeout bounds every accessor call
const DefaultFetchTimeout = 10 * time.Second

// Client speaks the table API: one GET per fetch against a
// table-scoped endpoint, bearer session token, encoded filter query,
// field projection, and record cap. It performs exactly one attempt
// per call; failure handling belongs to the sources wrapping it.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	timeout    time.Duration
}

// ClientOption configures a Client
type ClientOption func(*Client)

// WithTimeout overrides the per-fetch deadline
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a table API client
func NewClient(baseURL, token string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: http.DefaultClient,
		timeout:    DefaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// tableResponse is the envelope the table API wraps results in
type tableResponse struct {
	Result []model.Record `json:"result"`
}

// fetch issues one bounded fetch against a table. Any transport
// error, non-2xx status, decode failure, or deadline expiry comes
// back as an error; there is no retry. The result never exceeds the
// requested cap even if the remote ignores the limit parameter.
func (c *Client) fetch(ctx context.Context, table, query string, fields []string, limit int) ([]model.Record, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	params := url.Values{}
	if query != "" {
		params.Set("sysparm_query", query)
	}
	params.Set("sysparm_display_value", "all")
	if len(fields) > 0 {
		params.Set("sysparm_fields", strings.Join(fields, ","))
	}
	params.Set("sysparm_limit", strconv.Itoa(limit))

	endpoint := c.baseURL + "/api/now/table/" + table + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to build table request",
			goerr.V("table", table))
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, goerr.Wrap(err, "table request failed",
			goerr.V("table", table))
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			ctxlog.From(ctx).Warn("Failed to close response body", "error", err)
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Drain so the connection can be reused before we bail
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, goerr.New("table request returned non-success status",
			goerr.V("table", table),
			goerr.V("status", resp.StatusCode))
	}

	var body tableResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, goerr.Wrap(err, "failed to decode table response",
			goerr.V("table", table))
	}

	records := body.Result
	if len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

// fetchOrFallback resolves one accessor call: remote records on
// success, wholly synthetic records on any failure. The two paths
// share one return shape, so callers cannot tell them apart; the
// provenance goes to diagnostics and nowhere else.
func (c *Client) fetchOrFallback(
	ctx context.Context,
	entity types.EntityKind,
	query string,
	fields []string,
	limit int,
	diag interfaces.Diagnostics,
	fallback func() []model.Record,
) []model.Record {
	fetchID := types.NewFetchID()
	started := time.Now()

	records, err := c.fetch(ctx, entity.Table(), query, fields, limit)
	elapsed := time.Since(started)

	if err != nil {
		records = fallback()
		ctxlog.From(ctx).Warn("Remote fetch failed, serving synthetic records",
			"entity", entity.String(),
			"fetchID", fetchID.String(),
			"elapsed", elapsed,
			"count", len(records),
			"error", err,
		)
		diag.ReportFetch(ctx, entity, types.DataPathMock, elapsed, len(records))
		return records
	}

	ctxlog.From(ctx).Debug("Remote fetch succeeded",
		"entity", entity.String(),
		"fetchID", fetchID.String(),
		"elapsed", elapsed,
		"count", len(records),
	)
	diag.ReportFetch(ctx, entity, types.DataPathAPI, elapsed, len(records))
	return records
}
