// internal/app/store/dashapi/client.go
package dashapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dalemusser/leadpulse/internal/app/system/daterange"
	"github.com/dalemusser/leadpulse/internal/domain/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

// Backend paths.
const (
	ManagerPath = "/manager/dashboard"
	WorkerPath  = "/worker/dashboard"
)

// Defaults applied by New for zero Config fields.
const (
	DefaultTimeout      = 15 * time.Second
	DefaultMaxBodyBytes = 4 << 20
)

// RequestIDHeader carries a per-request uuid to the backend.
const RequestIDHeader = "X-Request-ID"

// Config configures a Client.
type Config struct {
	BaseURL      string        // e.g. https://api.example.com/api
	Token        string        // bearer token; blank sends no Authorization header
	Timeout      time.Duration // per-request ceiling on top of the caller's context
	MaxBodyBytes int64         // responses above this are rejected as payload failures
	HTTPClient   *http.Client  // optional base transport (tests)
}

// Client talks to the dashboard aggregation backend. It holds no
// per-request state and is safe for concurrent use.
type Client struct {
	base    *url.URL
	http    *http.Client
	maxBody int64
	log     *zap.Logger
}

// New validates cfg and builds a Client. When a token is configured the
// transport is wrapped by an oauth2 static token source.
func New(cfg Config, logger *zap.Logger) (*Client, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	raw := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if raw == "" {
		return nil, errors.New("dashapi: base URL is empty")
	}
	base, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("dashapi: parse base URL: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("dashapi: base URL must be http or https, got %q", base.Scheme)
	}
	if base.Host == "" {
		return nil, fmt.Errorf("dashapi: base URL %q has no host", raw)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	maxBody := cfg.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = DefaultMaxBodyBytes
	}

	hc := &http.Client{}
	if cfg.HTTPClient != nil {
		copied := *cfg.HTTPClient
		hc = &copied
	}
	if cfg.Token != "" {
		// oauth2.NewClient picks the base transport up from the context.
		ctx := context.WithValue(context.Background(), oauth2.HTTPClient, hc)
		hc = oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{
			AccessToken: cfg.Token,
			TokenType:   "Bearer",
		}))
	}
	hc.Timeout = timeout

	return &Client{base: base, http: hc, maxBody: maxBody, log: logger}, nil
}

// BaseURL returns the normalized backend base URL.
func (c *Client) BaseURL() string { return c.base.String() }

// rangeBody is the POST body. Absent bounds are omitted.
type rangeBody struct {
	StartDate string `json:"startDate,omitempty"`
	EndDate   string `json:"endDate,omitempty"`
}

// envelope is decoded first to check the success flag.
type envelope struct {
	Success *bool  `json:"success"`
	Message string `json:"message"`
}

// Manager fetches the manager aggregate for rng. A nil rng sends no bounds.
func (c *Client) Manager(ctx context.Context, rng *daterange.DateRange) (*models.ManagerPayload, error) {
	var out models.ManagerPayload
	if err := c.post(ctx, "manager", ManagerPath, rng, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Worker fetches the worker aggregate for rng. A nil rng sends no bounds.
func (c *Client) Worker(ctx context.Context, rng *daterange.DateRange) (*models.WorkerPayload, error) {
	var out models.WorkerPayload
	if err := c.post(ctx, "worker", WorkerPath, rng, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Ping checks the backend answers at all. Any HTTP response below 500
// counts as reachable; the dashboard routes require POST.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.endpoint(ManagerPath), nil)
	if err != nil {
		return transportFailure("ping", 0, err)
	}
	req.Header.Set(RequestIDHeader, uuid.NewString())

	resp, err := c.http.Do(req)
	if err != nil {
		return transportFailure("ping", 0, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 512))

	if resp.StatusCode >= http.StatusInternalServerError {
		return transportFailure("ping", resp.StatusCode, nil)
	}
	return nil
}

func (c *Client) endpoint(path string) string {
	u := *c.base
	u.Path = strings.TrimRight(u.Path, "/") + path
	return u.String()
}

func (c *Client) post(ctx context.Context, op, path string, rng *daterange.DateRange, out any) error {
	var body rangeBody
	body.StartDate, body.EndDate = rng.Params()

	buf, err := json.Marshal(body)
	if err != nil {
		return payloadFailure(op, 0, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(path), bytes.NewReader(buf))
	if err != nil {
		return transportFailure(op, 0, err)
	}
	reqID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, reqID)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("dashboard request failed",
			zap.String("op", op),
			zap.String("request_id", reqID),
			zap.String("range", rng.String()),
			zap.Error(err))
		return transportFailure(op, 0, err)
	}
	defer resp.Body.Close()

	// Read one byte past the cap so oversize bodies are detectable.
	data, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		return transportFailure(op, resp.StatusCode, err)
	}

	c.log.Debug("dashboard response",
		zap.String("op", op),
		zap.String("request_id", reqID),
		zap.String("range", rng.String()),
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(data)),
		zap.Duration("took", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return transportFailure(op, resp.StatusCode, errors.New(upstreamMessage(data, resp.Status)))
	}
	if int64(len(data)) > c.maxBody {
		return payloadFailure(op, resp.StatusCode, fmt.Errorf("body exceeds %d bytes", c.maxBody))
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return payloadFailure(op, resp.StatusCode, fmt.Errorf("decode envelope: %w", err))
	}
	if env.Success == nil || !*env.Success {
		msg := env.Message
		if msg == "" {
			msg = "success flag not set"
		}
		return payloadFailure(op, resp.StatusCode, errors.New(msg))
	}
	if err := json.Unmarshal(data, out); err != nil {
		return payloadFailure(op, resp.StatusCode, fmt.Errorf("decode payload: %w", err))
	}
	return nil
}

// upstreamMessage pulls a short message out of an error body if there is one.
func upstreamMessage(data []byte, fallback string) string {
	var env envelope
	if json.Unmarshal(data, &env) == nil && env.Message != "" {
		return env.Message
	}
	return fallback
}
