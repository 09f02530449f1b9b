package ovh

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	ctlerrors "github.com/ovhtools/ovhctl/pkg/errors"
	"github.com/ovhtools/ovhctl/pkg/version"
)

// DefaultRateLimit is the client-side request rate applied when the caller
// does not configure one. The OVHcloud API throttles aggressive clients.
const DefaultRateLimit = 10

// Caller is the subset of Client used by the resource packages. It enables
// dependency injection for testing.
type Caller interface {
	Get(ctx context.Context, path string, out any) error
	Post(ctx context.Context, path string, body, out any) error
	Put(ctx context.Context, path string, body, out any) error
	Delete(ctx context.Context, path string) error
}

// Options configures a Client. Endpoint accepts an alias (see
// EndpointAliases) or a full base URL.
type Options struct {
	Endpoint          string
	ApplicationKey    string
	ApplicationSecret string
	ConsumerKey       string

	// RateLimit caps outgoing requests per second. Zero means DefaultRateLimit.
	RateLimit float64

	// HTTPClient overrides the underlying transport, mainly for tests.
	HTTPClient *http.Client
}

// Client issues signed and unsigned calls against the OVHcloud API. The
// credentials are passed in explicitly; there is no process-wide state.
type Client struct {
	baseURL           string
	applicationKey    string
	applicationSecret string
	consumerKey       string

	http    *http.Client
	limiter *rate.Limiter

	// Clock delta against the remote API, fetched once from /auth/time.
	timeOnce  sync.Once
	timeDelta time.Duration
}

// NewClient creates a Client from the given options. The application key is
// required; the consumer key may be empty as long as only unsigned calls are
// issued (the connect handshake).
func NewClient(opts Options) (*Client, error) {
	if opts.ApplicationKey == "" {
		return nil, ctlerrors.New(ctlerrors.CodeConfiguration, "application key is not set")
	}

	baseURL, err := ResolveEndpoint(opts.Endpoint)
	if err != nil {
		return nil, err
	}

	limit := opts.RateLimit
	if limit <= 0 {
		limit = DefaultRateLimit
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	return &Client{
		baseURL:           baseURL,
		applicationKey:    opts.ApplicationKey,
		applicationSecret: opts.ApplicationSecret,
		consumerKey:       opts.ConsumerKey,
		http:              httpClient,
		limiter:           rate.NewLimiter(rate.Limit(limit), int(limit)),
	}, nil
}

// Get issues a signed GET and decodes the JSON response into out.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.call(ctx, http.MethodGet, path, nil, out, true)
}

// Post issues a signed POST. A nil body sends an empty payload, which some
// endpoints (zone refresh) expect. The JSON response is decoded into out
// unless out is nil.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.call(ctx, http.MethodPost, path, body, out, true)
}

// Put issues a signed PUT, with the same body and response handling as Post.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.call(ctx, http.MethodPut, path, body, out, true)
}

// Delete issues a signed DELETE. A remote 404 is treated as success so that
// deleting an already-gone resource is idempotent.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.call(ctx, http.MethodDelete, path, nil, nil, true)
}

// GetUnauth issues a GET authenticated with the application key only.
func (c *Client) GetUnauth(ctx context.Context, path string, out any) error {
	return c.call(ctx, http.MethodGet, path, nil, out, false)
}

// PostUnauth issues a POST authenticated with the application key only. It is
// used by the consumer-key handshake, before any consumer key exists.
func (c *Client) PostUnauth(ctx context.Context, path string, body, out any) error {
	return c.call(ctx, http.MethodPost, path, body, out, false)
}

func (c *Client) call(ctx context.Context, method, path string, body, out any, signed bool) error {
	if signed && (c.applicationSecret == "" || c.consumerKey == "") {
		return ctlerrors.New(ctlerrors.CodeConfiguration, "signed requests require the application key, the application secret and a consumer key; run 'ovhctl connect' first")
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return ctlerrors.Wrap(ctlerrors.CodeAPI, err, "request canceled while rate limited")
	}

	payload := ""
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return ctlerrors.Wrap(ctlerrors.CodeAPI, err, "could not serialize request body")
		}
		payload = string(raw)
	}

	url := c.baseURL + "/" + strings.TrimPrefix(path, "/")
	req, err := http.NewRequestWithContext(ctx, method, url, strings.NewReader(payload))
	if err != nil {
		return ctlerrors.Wrap(ctlerrors.CodeAPI, err, "could not create request for %q", url)
	}

	req.Header.Set("User-Agent", version.UserAgent())
	req.Header.Set(HeaderApplication, c.applicationKey)
	if payload != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if signed {
		timestamp := c.now(ctx).Unix()
		req.Header.Set(HeaderTimestamp, strconv.FormatInt(timestamp, 10))
		req.Header.Set(HeaderConsumer, c.consumerKey)
		req.Header.Set(HeaderSignature, Sign(c.applicationSecret, c.consumerKey, method, url, payload, timestamp))
	}

	requestID := uuid.NewString()
	slog.Debug("issuing api request", "id", requestID, "method", method, "url", url, "signed", signed)

	start := time.Now()
	resp, err := c.http.Do(req)
	requestDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())
	if err != nil {
		requestsTotal.WithLabelValues(method, "error").Inc()
		return ctlerrors.Wrap(ctlerrors.CodeAPI, err, "could not execute the request %q", url)
	}
	defer resp.Body.Close() //nolint:errcheck

	requestsTotal.WithLabelValues(method, strconv.Itoa(resp.StatusCode)).Inc()
	slog.Debug("api response received", "id", requestID, "status", resp.StatusCode)

	if method == http.MethodDelete && resp.StatusCode == http.StatusNotFound {
		return nil
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		return ctlerrors.Remote(ctlerrors.CodeAPI, resp.StatusCode, strings.TrimSpace(string(raw)), "could not execute the request %q", url)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return ctlerrors.Wrap(ctlerrors.CodeAPI, err, "could not deserialize the payload of %q", url)
	}
	return nil
}

// now returns the current time adjusted by the remote clock delta. The delta
// is fetched once per Client from the unsigned /auth/time endpoint; when the
// fetch fails the local clock is used and signatures may be rejected if the
// local clock skews beyond the server's acceptance window.
func (c *Client) now(ctx context.Context) time.Time {
	c.timeOnce.Do(func() {
		var serverTime int64
		if err := c.GetUnauth(ctx, "auth/time", &serverTime); err != nil {
			slog.Debug("could not fetch remote time, using the local clock", "error", err)
			return
		}
		c.timeDelta = time.Until(time.Unix(serverTime, 0))
	})
	return time.Now().Add(c.timeDelta)
}

// String implements fmt.Stringer without leaking secrets.
func (c *Client) String() string {
	return fmt.Sprintf("ovh.Client(%s)", c.baseURL)
}
