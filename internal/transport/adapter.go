// Package transport executes raw HTTP calls against the gateway and
// normalizes responses. It optionally follows redirects by hand for
// environments whose HTTP client is configured not to follow them.
package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	pkgerrors "github.com/vikijel/gopayrest/pkg/errors"
	"github.com/vikijel/gopayrest/ports"
)

// DefaultMaxRedirects bounds redirect-following in both modes
const DefaultMaxRedirects = 3

// Response is the normalized result of one gateway call
type Response struct {
	Body        []byte
	StatusCode  int
	ContentType string
	JSON        map[string]interface{}
}

// Adapter wraps an HTTP client with request encoding, response
// normalization and bounded redirect-following
type Adapter struct {
	client       ports.HTTPClient
	autoFollow   bool
	maxRedirects int
	logger       ports.Logger
}

// New creates a transport adapter. When autoFollow is true the injected
// client is trusted to follow redirects itself (with its own hop cap);
// when false the adapter inspects 301/302 responses and re-issues the
// request against the Location target, up to maxRedirects hops.
func New(client ports.HTTPClient, autoFollow bool, maxRedirects int, logger ports.Logger) *Adapter {
	if maxRedirects <= 0 {
		maxRedirects = DefaultMaxRedirects
	}
	return &Adapter{
		client:       client,
		autoFollow:   autoFollow,
		maxRedirects: maxRedirects,
		logger:       logger,
	}
}

// Execute issues a single GET or POST request. The body may be nil, a
// string, []byte or url.Values (form-encoded). Headers are sent as-is.
func (a *Adapter) Execute(ctx context.Context, rawURL, method string, body interface{}, headers map[string]string) (*Response, error) {
	if strings.TrimSpace(rawURL) == "" {
		return nil, pkgerrors.NewTransportError("request url cannot be empty", nil)
	}

	method = strings.ToUpper(method)
	if method != http.MethodGet && method != http.MethodPost {
		return nil, pkgerrors.NewTransportError("request method '"+method+"' is not supported", nil)
	}

	payload, err := encodeBody(body)
	if err != nil {
		return nil, err
	}

	current, err := url.Parse(rawURL)
	if err != nil {
		return nil, pkgerrors.NewTransportError("invalid request url", err)
	}

	requestID := uuid.NewString()

	for hop := 0; ; hop++ {
		if hop > a.maxRedirects {
			return nil, pkgerrors.NewTransportError(fmt.Sprintf("maximum of %d redirects exhausted", a.maxRedirects), nil)
		}

		resp, err := a.issue(ctx, current.String(), method, payload, headers, requestID, hop)
		if err != nil {
			return nil, err
		}

		if a.autoFollow || (resp.StatusCode != http.StatusMovedPermanently && resp.StatusCode != http.StatusFound) {
			return normalize(resp)
		}

		next, ok := resolveLocation(current, resp.Header.Get("Location"))
		if !ok {
			// 301/302 without a usable Location: best-effort fallback
			return normalize(resp)
		}

		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		a.logger.Debug("following gateway redirect",
			ports.String("request_id", requestID),
			ports.Int("hop", hop+1),
			ports.String("location", next.String()),
		)
		current = next
	}
}

// issue performs one HTTP round trip
func (a *Adapter) issue(ctx context.Context, rawURL, method, payload string, headers map[string]string, requestID string, hop int) (*http.Response, error) {
	var bodyReader io.Reader
	if method == http.MethodPost {
		bodyReader = strings.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, bodyReader)
	if err != nil {
		return nil, pkgerrors.NewTransportError("failed to create request", err)
	}

	for key, val := range headers {
		req.Header.Set(key, val)
	}

	a.logger.Debug("issuing gateway request",
		ports.String("request_id", requestID),
		ports.String("method", method),
		ports.String("url", rawURL),
		ports.Int("hop", hop),
	)

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, pkgerrors.NewTransportError("request to gateway failed", err)
	}
	return resp, nil
}

// normalize drains the response into the adapter's result shape.
// JSON decoding is best effort: anything that is not a JSON object
// yields an empty map rather than an error.
func normalize(resp *http.Response) (*Response, error) {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, pkgerrors.NewTransportError("failed to read response body", err)
	}

	contentType := resp.Header.Get("Content-Type")
	if idx := strings.Index(contentType, ";"); idx >= 0 {
		contentType = contentType[:idx]
	}
	contentType = strings.TrimSpace(contentType)

	decoded := map[string]interface{}{}
	if len(body) > 0 {
		if err := json.Unmarshal(body, &decoded); err != nil {
			decoded = map[string]interface{}{}
		}
	}

	return &Response{
		Body:        body,
		StatusCode:  resp.StatusCode,
		ContentType: contentType,
		JSON:        decoded,
	}, nil
}

// resolveLocation builds the next absolute URL from a Location header,
// filling in scheme, host and path missing from the header with the
// parts of the previous effective URL
func resolveLocation(prev *url.URL, location string) (*url.URL, bool) {
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, false
	}

	next, err := url.Parse(location)
	if err != nil {
		return nil, false
	}

	if next.Scheme == "" {
		next.Scheme = prev.Scheme
	}
	if next.Host == "" {
		next.Host = prev.Host
	}
	if next.Path == "" {
		next.Path = prev.Path
	}

	return next, true
}

// encodeBody turns the supported body kinds into the wire string
func encodeBody(body interface{}) (string, error) {
	switch b := body.(type) {
	case nil:
		return "", nil
	case string:
		return b, nil
	case []byte:
		return string(b), nil
	case url.Values:
		return b.Encode(), nil
	default:
		return "", pkgerrors.NewTransportError("unsupported request body type", nil)
	}
}
