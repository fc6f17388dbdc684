package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/hashicorp/go-hclog"
)

// AuthTypeBearer is the default Authorization scheme.
const AuthTypeBearer = "Bearer"

// Request describes a single call against a Caller's base URL.
type Request struct {
	// Method is one of GET/POST/PUT/DELETE.
	Method string

	// Path is appended to the base URL. Leading slashes are optional.
	Path string

	// Token is the caller-supplied bearer credential. When empty, no
	// Authorization header is sent. The token is opaque to this client
	// and forwarded verbatim.
	Token string

	// AuthType is the Authorization scheme. Default: AuthTypeBearer.
	AuthType string

	// Query parameters, appended to the URL.
	Query url.Values

	// Body is JSON-marshaled when non-nil.
	Body any
}

// Caller performs JSON HTTP calls against a single base URL.
type Caller struct {
	baseURL string
	client  *http.Client
	logger  hclog.Logger
}

// NewCaller builds a Caller from cfg. The base URL is normalized to have
// no trailing slash.
func NewCaller(cfg Config) (*Caller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid caller config: %w", err)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Caller{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		client:  cfg.newHTTPClient(),
		logger:  logger,
	}, nil
}

// BaseURL returns the normalized base URL the Caller is pinned to.
func (c *Caller) BaseURL() string { return c.baseURL }

// HTTPClient returns the underlying http.Client.
func (c *Caller) HTTPClient() *http.Client { return c.client }

// Do performs one attempt of req. On a 2xx status the response body is
// decoded into out when out is non-nil; decode failures are a
// RemoteError. Non-2xx statuses and transport failures are classified
// per the package taxonomy.
func (c *Caller) Do(ctx context.Context, req Request, out any) error {
	endpoint := c.baseURL + "/" + strings.TrimLeft(req.Path, "/")
	if len(req.Query) > 0 {
		endpoint += "?" + req.Query.Encode()
	}

	var bodyReader io.Reader
	if req.Body != nil {
		encoded, err := json.Marshal(req.Body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(encoded)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, endpoint, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Accept", "application/json")
	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if req.Token != "" {
		authType := req.AuthType
		if authType == "" {
			authType = AuthTypeBearer
		}
		httpReq.Header.Set("Authorization", authType+" "+req.Token)
	}

	c.logger.Debug("sending request", "method", req.Method, "path", req.Path)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return &TransportError{Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Err: err}
	}

	c.logger.Debug("received response",
		"method", req.Method,
		"path", req.Path,
		"status", resp.StatusCode,
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return statusError(resp.StatusCode, responseDetail(resp, respBody))
	}

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return &RemoteError{Detail: fmt.Sprintf("failed to decode response: %v", err)}
		}
	}
	return nil
}

// responseDetail extracts the server-provided error detail: the "detail"
// field of a JSON error body when present, the raw body text otherwise.
func responseDetail(resp *http.Response, body []byte) string {
	contentType := resp.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "application/json") {
		var errBody struct {
			Detail json.RawMessage `json:"detail"`
		}
		if err := json.Unmarshal(body, &errBody); err == nil && len(errBody.Detail) > 0 {
			var detail string
			if err := json.Unmarshal(errBody.Detail, &detail); err == nil {
				return detail
			}
			return string(errBody.Detail)
		}
	}
	return string(body)
}
