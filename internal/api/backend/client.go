package backend

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/omarshaarawi/gridiron/internal/config"
	"github.com/omarshaarawi/gridiron/internal/platform/logging"
)

const maxBodyBytes = 8 << 20

var (
	// ErrUnavailable marks transport failures: network errors, non-2xx
	// statuses and bodies that are not JSON.
	ErrUnavailable = errors.New("backend unavailable")
	// ErrNoData marks well-formed responses that carry no usable payload.
	ErrNoData = errors.New("backend returned no data")
)

type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *logging.Logger
}

func NewClient(cfg config.Backend, logger *logging.Logger) *Client {
	if logger == nil {
		logger = logging.Default()
	}
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    strings.TrimRight(strings.TrimSpace(cfg.URL), "/"),
		logger:     logger,
	}
}

// NewClientWithHTTP is NewClient with a caller supplied transport.
func NewClientWithHTTP(baseURL string, httpClient *http.Client, logger *logging.Logger) *Client {
	c := NewClient(config.Backend{URL: baseURL}, logger)
	if httpClient != nil {
		c.httpClient = httpClient
	}
	return c
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// Get issues one GET against baseURL+endpoint and decodes the JSON body into
// result. No retries are attempted.
func (c *Client) Get(ctx context.Context, endpoint string, params map[string]string, result any) error {
	url := fmt.Sprintf("%s%s", c.baseURL, endpoint)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return errors.Wrap(err, "error creating request")
	}

	q := req.URL.Query()
	for key, value := range params {
		q.Set(key, strings.TrimSpace(value))
	}
	req.URL.RawQuery = q.Encode()

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)

	logger := c.logger.With("request_id", requestID, "endpoint", endpoint)
	logger.DebugContext(ctx, "backend request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.WarnContext(ctx, "backend request failed", "error", err)
		return errors.Mark(errors.Wrap(err, "error making request"), ErrUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logger.WarnContext(ctx, "backend returned error status", "status", resp.StatusCode)
		return errors.Mark(errors.Newf("unexpected status code: %d", resp.StatusCode), ErrUnavailable)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return errors.Mark(errors.Wrap(err, "error reading response"), ErrUnavailable)
	}

	if err := sonic.Unmarshal(raw, result); err != nil {
		logger.WarnContext(ctx, "backend returned malformed JSON", "error", err)
		return errors.Mark(errors.Wrap(err, "error decoding response"), ErrUnavailable)
	}

	return nil
}
