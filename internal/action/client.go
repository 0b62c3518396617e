package action

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"

	werrors "github.com/trueinfluence/writeit/internal/errors"
	"github.com/trueinfluence/writeit/internal/logger"
)

// EndpointPrefix is the fixed path prefix of the generation endpoint.
const EndpointPrefix = "/api/write/"

// RequestIDHeader carries a per-request identifier for log correlation.
const RequestIDHeader = "X-Request-ID"

// Sender performs one action call.
type Sender interface {
	Send(ctx context.Context, slug string, req Request) (Response, error)
}

// Client sends action requests over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a client for the server at baseURL. The default
// http.Client has no timeout: the call waits until the server answers.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		log:        logger.ComponentLogger("Dispatcher"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Endpoint returns the URL for slug.
func (c *Client) Endpoint(slug string) string {
	return c.baseURL + EndpointPrefix + url.PathEscape(slug)
}

// Send posts req to the slug's endpoint. Transport failures, unparseable
// bodies and a non-empty error field all come back as errors; the HTTP status
// itself is not checked, the body decides.
func (c *Client) Send(ctx context.Context, slug string, req Request) (Response, error) {
	endpoint := c.Endpoint(slug)

	body, err := json.Marshal(req)
	if err != nil {
		return Response{}, werrors.E(werrors.Op("action.Send"), werrors.KindInvalid, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return Response{}, werrors.TransportFailed(endpoint, err)
	}
	requestID := uuid.NewString()
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set(RequestIDHeader, requestID)

	log := c.log.With("requestID", requestID, "kind", string(req.Type))
	log.Debug("sending action", "endpoint", endpoint, "topic", req.Topic)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		log.Warn("transport failure", "error", err)
		return Response{}, werrors.TransportFailed(endpoint, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Warn("failed to read body", "status", resp.StatusCode, "error", err)
		return Response{}, werrors.TransportFailed(endpoint, err)
	}

	var out Response
	if err := json.Unmarshal(data, &out); err != nil {
		log.Warn("malformed response", "status", resp.StatusCode, "error", err)
		return Response{}, werrors.MalformedResponse(resp.StatusCode, err)
	}

	if out.Failed() {
		log.Info("server reported error", "status", resp.StatusCode, "error", out.Error)
		return out, werrors.RemoteFailure(out.Error)
	}

	log.Debug("action completed", "status", resp.StatusCode, "bytes", len(out.Content))
	return out, nil
}
