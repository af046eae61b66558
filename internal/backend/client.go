// Package backend is the HTTP client for the FIR backend service.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/goliatone/go-firform/internal/apicontract"
)

const tracerName = "github.com/goliatone/go-firform/internal/backend"

// Client calls the backend operations described by the embedded contract.
// A Client is safe for concurrent use; WithToken returns an authenticated
// copy.
type Client struct {
	baseURL   string
	http      *http.Client
	contract  *apicontract.Contract
	logger    *zap.Logger
	tracer    trace.Tracer
	requestID func() string
	token     string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client. No timeout is applied by default;
// callers cancel through the context.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithTracerProvider sets the provider spans are created from.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *Client) {
		if tp != nil {
			c.tracer = tp.Tracer(tracerName)
		}
	}
}

// WithRequestIDs overrides the X-Request-ID generator.
func WithRequestIDs(fn func() string) Option {
	return func(c *Client) {
		if fn != nil {
			c.requestID = fn
		}
	}
}

// WithContract overrides the embedded contract.
func WithContract(contract *apicontract.Contract) Option {
	return func(c *Client) {
		if contract != nil {
			c.contract = contract
		}
	}
}

// New builds a client for baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("backend: base url is required")
	}
	c := &Client{
		baseURL:   baseURL,
		http:      http.DefaultClient,
		logger:    zap.NewNop(),
		tracer:    otel.Tracer(tracerName),
		requestID: uuid.NewString,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	if c.contract == nil {
		contract, err := apicontract.Default()
		if err != nil {
			return nil, err
		}
		c.contract = contract
	}
	return c, nil
}

// WithToken returns a copy of c that sends token as a bearer credential.
func (c *Client) WithToken(token string) *Client {
	clone := *c
	clone.token = token
	return &clone
}

// BaseURL returns the configured backend address.
func (c *Client) BaseURL() string { return c.baseURL }

type requestBody struct {
	reader      io.Reader
	contentType string
}

func jsonBody(v any) (*requestBody, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("backend: encode body: %w", err)
	}
	return &requestBody{reader: bytes.NewReader(raw), contentType: "application/json"}, nil
}

// call runs operation opID and decodes a JSON response into out when out is
// non-nil.
func (c *Client) call(ctx context.Context, opID string, params map[string]string, body *requestBody, out any) (err error) {
	op, err := c.contract.Operation(opID)
	if err != nil {
		return err
	}
	if op.Auth && c.token == "" {
		return fmt.Errorf("backend: %s: %w", opID, ErrUnauthorized)
	}
	target, err := op.URL(c.baseURL, params)
	if err != nil {
		return err
	}
	requestID := c.requestID()

	ctx, span := c.tracer.Start(ctx, "backend."+opID,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", op.Method),
			attribute.String("url.full", target),
			attribute.String("fir.request_id", requestID),
		),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	var reader io.Reader
	if body != nil {
		reader = body.reader
	}
	req, err := http.NewRequestWithContext(ctx, op.Method, target, reader)
	if err != nil {
		return fmt.Errorf("backend: %s: request: %w", opID, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", body.contentType)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("backend request failed",
			zap.String("operation", opID),
			zap.String("request_id", requestID),
			zap.Error(err),
		)
		return fmt.Errorf("backend: %s: do request: %w", opID, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("backend: %s: read body: %w", opID, err)
	}
	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))
	c.logger.Debug("backend request",
		zap.String("operation", opID),
		zap.String("method", op.Method),
		zap.String("url", target),
		zap.String("request_id", requestID),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(started)),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeAPIError(opID, resp.StatusCode, payload)
	}
	if out == nil || len(bytes.TrimSpace(payload)) == 0 {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("backend: %s: decode: %w", opID, err)
	}
	return nil
}

// validated encodes v as JSON after checking it against the operation's
// request schema.
func (c *Client) validated(opID string, v any) (*requestBody, error) {
	op, err := c.contract.Operation(opID)
	if err != nil {
		return nil, err
	}
	if err := op.ValidateBody(v); err != nil {
		return nil, err
	}
	return jsonBody(v)
}
