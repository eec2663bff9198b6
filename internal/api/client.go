// Package api is the outbound HTTP client for the external bookmark service
// that owns persistence and metadata extraction. The gateway never invents
// records: everything it stores comes back from this client.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sava-app/sava/internal/domain"
	"github.com/sava-app/sava/internal/logger"
	"github.com/sava-app/sava/internal/utils"
)

// Options configures the upstream client.
type Options struct {
	BaseURL        string        // ex: https://api.sava.app
	Token          string        // opaque bearer credential, attached to every request
	RequestTimeout time.Duration // per-request transport timeout
	CreateTimeout  time.Duration // local abandonment deadline for creates (default 60s)
}

type Client struct {
	baseURL       string
	token         string
	http          *http.Client
	slowHTTP      *http.Client // creates only: the context deadline governs
	createTimeout time.Duration
	log           logger.Logger
}

// errorBody is the upstream error envelope: a status code plus an optional
// human-readable detail string.
type errorBody struct {
	Detail string `json:"detail"`
}

func New(opts Options, log logger.Logger) *Client {
	if opts.CreateTimeout <= 0 {
		opts.CreateTimeout = 60 * time.Second
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 15 * time.Second
	}
	return &Client{
		baseURL: opts.BaseURL,
		token:   opts.Token,
		http: &http.Client{
			Timeout: opts.RequestTimeout,
		},
		slowHTTP:      &http.Client{},
		createTimeout: opts.CreateTimeout,
		log:           log,
	}
}

// FetchAll retrieves the full ordered collection.
func (c *Client) FetchAll(ctx context.Context) ([]*domain.Bookmark, error) {
	var bookmarks []*domain.Bookmark
	if err := c.do(ctx, http.MethodGet, "/bookmarks", nil, &bookmarks); err != nil {
		return nil, err
	}
	return bookmarks, nil
}

// Create submits a new bookmark. Metadata extraction upstream is slow, so
// the call races a local timeout: on expiry it is abandoned here and
// reported as KindTimeout, though the server-side operation may still
// complete — there is no cancellation signal to the server.
func (c *Client) Create(ctx context.Context, url, note string) (*domain.Bookmark, error) {
	ctx, cancel := context.WithTimeout(ctx, c.createTimeout)
	defer cancel()

	payload := map[string]string{"url": url}
	if note != "" {
		payload["note"] = note
	}

	var created domain.Bookmark
	if err := c.doWithClient(ctx, c.slowHTTP, http.MethodPost, "/bookmarks", payload, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Update patches a bookmark's note and returns the server's canonical record.
func (c *Client) Update(ctx context.Context, id, note string) (*domain.Bookmark, error) {
	var updated domain.Bookmark
	path := fmt.Sprintf("/bookmarks/%s", id)
	if err := c.do(ctx, http.MethodPatch, path, map[string]string{"note": note}, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes a bookmark upstream. No body is expected on success.
func (c *Client) Delete(ctx context.Context, id string) error {
	path := fmt.Sprintf("/bookmarks/%s", id)
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	return c.doWithClient(ctx, c.http, method, path, body, out)
}

// doWithClient issues one request and classifies every possible failure into
// the pipeline's error taxonomy. Nothing escapes unclassified.
func (c *Client) doWithClient(ctx context.Context, hc *http.Client, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return domain.WrapError(domain.KindInvalidRequest, "encode request", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return domain.WrapError(domain.KindInvalidRequest, "build request", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := hc.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			c.log.Warn("upstream request abandoned",
				logger.String("method", method),
				logger.String("path", path),
				logger.Duration("elapsed", time.Since(start)))
			return domain.WrapError(domain.KindTimeout, "request timed out", err)
		}
		return domain.WrapError(domain.KindNetworkFailure, "request failed", err)
	}
	defer utils.Close(resp.Body)

	if resp.StatusCode >= 400 {
		var eb errorBody
		_ = json.NewDecoder(resp.Body).Decode(&eb)
		c.log.Debug("upstream error response",
			logger.String("method", method),
			logger.String("path", path),
			logger.Int("status", resp.StatusCode))
		return domain.ErrorFromStatus(resp.StatusCode, eb.Detail)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return domain.WrapError(domain.KindServerError, "decode response", err)
	}
	return nil
}
