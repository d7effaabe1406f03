package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/goliatone/go-profileforms/pkg/record"
)

// DefaultTimeout bounds each gateway request. The hosting product never
// specified one, so the client errs on the side of failing a stuck request
// through the normal error channel instead of hanging the submit button.
const DefaultTimeout = 15 * time.Second

// ClientOptions configure the HTTP gateway client.
type ClientOptions struct {
	BaseURL    string
	HTTPClient *http.Client
	Timeout    time.Duration
	Logger     *zap.Logger
}

// ClientOption mutates ClientOptions.
type ClientOption func(*ClientOptions)

// WithHTTPClient swaps the underlying http.Client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(o *ClientOptions) { o.HTTPClient = hc }
}

// WithTimeout overrides the per-request timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(o *ClientOptions) { o.Timeout = d }
}

// WithLogger attaches a logger for gateway diagnostics. Validation output is
// user-facing data and is never logged; only transport and server failures
// are.
func WithLogger(logger *zap.Logger) ClientOption {
	return func(o *ClientOptions) { o.Logger = logger }
}

// Client is the HTTP implementation of Gateway. Records live under
// {base}/records: POST creates, PATCH updates, GET fetches.
type Client struct {
	base    string
	http    *http.Client
	timeout time.Duration
	log     *zap.Logger
}

var _ Gateway = (*Client)(nil)

// NewClient constructs an HTTP gateway client for the given base URL.
func NewClient(baseURL string, fns ...ClientOption) (*Client, error) {
	opts := ClientOptions{
		BaseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		Timeout: DefaultTimeout,
	}
	for _, fn := range fns {
		if fn != nil {
			fn(&opts)
		}
	}
	if opts.BaseURL == "" {
		return nil, fmt.Errorf("gateway: base URL is required")
	}
	if _, err := url.ParseRequestURI(opts.BaseURL); err != nil {
		return nil, fmt.Errorf("gateway: invalid base URL: %w", err)
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{}
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Client{
		base:    opts.BaseURL,
		http:    opts.HTTPClient,
		timeout: opts.Timeout,
		log:     opts.Logger,
	}, nil
}

type recordEnvelope struct {
	Data record.Record `json:"data"`
}

type errorEnvelope struct {
	Message     string              `json:"message"`
	FieldErrors map[string][]string `json:"fieldErrors,omitempty"`
}

// Submit sends the patch, creating when recordID is empty and patching
// otherwise. Server rejections come back as *SubmissionError.
func (c *Client) Submit(ctx context.Context, recordID string, patch record.Record) (record.Record, error) {
	method := http.MethodPost
	endpoint := c.base + "/records"
	if strings.TrimSpace(recordID) != "" {
		method = http.MethodPatch
		endpoint += "/" + url.PathEscape(recordID)
	}

	body, err := json.Marshal(patch)
	if err != nil {
		return nil, fmt.Errorf("gateway: encode patch: %w", err)
	}
	resp, err := c.do(ctx, method, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, c.rejectionError(resp)
	}

	var envelope recordEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		c.log.Error("gateway: decode submit response", zap.Error(err))
		return nil, fmt.Errorf("gateway: decode submit response: %w", err)
	}
	return envelope.Data, nil
}

// Fetch loads the current record. A 404 maps to ErrNotFound.
func (c *Client) Fetch(ctx context.Context, recordID string) (record.Record, error) {
	if strings.TrimSpace(recordID) == "" {
		return nil, fmt.Errorf("gateway: record id is required")
	}
	endpoint := c.base + "/records/" + url.PathEscape(recordID)
	resp, err := c.do(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode >= 400 {
		return nil, c.rejectionError(resp)
	}

	var envelope recordEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		c.log.Error("gateway: decode fetch response", zap.Error(err))
		return nil, fmt.Errorf("gateway: decode fetch response: %w", err)
	}
	return envelope.Data, nil
}

func (c *Client) do(ctx context.Context, method, endpoint string, body io.Reader) (*http.Response, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("gateway: build request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req) //nolint:bodyclose // closed by callers
	if err != nil {
		c.log.Error("gateway: request failed",
			zap.String("method", method),
			zap.String("endpoint", endpoint),
			zap.String("requestId", requestID),
			zap.Error(err),
		)
		return nil, &SubmissionError{Message: "the server could not be reached, please try again"}
	}
	return resp, nil
}

func (c *Client) rejectionError(resp *http.Response) error {
	var envelope errorEnvelope
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	_ = json.Unmarshal(raw, &envelope)

	message := strings.TrimSpace(envelope.Message)
	if message == "" {
		message = http.StatusText(resp.StatusCode)
	}
	c.log.Warn("gateway: submission rejected",
		zap.Int("status", resp.StatusCode),
		zap.String("message", message),
		zap.Int("fieldErrorCount", len(envelope.FieldErrors)),
	)
	return &SubmissionError{
		Message:     message,
		Status:      resp.StatusCode,
		FieldErrors: envelope.FieldErrors,
	}
}
