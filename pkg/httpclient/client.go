// Package httpclient executes saved requests over HTTP.
package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/blackcoderx/pigeon/pkg/errdef"
	"github.com/blackcoderx/pigeon/pkg/storage"
	"golang.org/x/net/http/httpguts"
	"golang.org/x/time/rate"
)

// Client sends requests, pacing them through a rate limiter.
type Client struct {
	client  *http.Client
	limiter *rate.Limiter
}

// Response is the result of executing a request.
type Response struct {
	StatusCode int
	Status     string
	Headers    []storage.Header
	Body       string
	Duration   time.Duration
}

// New creates a client. A non-positive perSecond disables pacing.
func New(timeout time.Duration, perSecond float64) *Client {
	limit := rate.Inf
	if perSecond > 0 {
		limit = rate.Limit(perSecond)
	}
	return &Client{
		client:  &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(limit, 1),
	}
}

// FoldHeaders converts the ordered header list into an http.Header.
// It fails on the first header whose name or value is not valid on the wire.
func FoldHeaders(headers []storage.Header) (http.Header, error) {
	out := make(http.Header, len(headers))
	for _, h := range headers {
		if !httpguts.ValidHeaderFieldName(h.Name) {
			return nil, errdef.New(errdef.CodeHTTP, "invalid header name %q", h.Name)
		}
		if !httpguts.ValidHeaderFieldValue(h.Value) {
			return nil, errdef.New(errdef.CodeHTTP, "invalid value for header %q", h.Name)
		}
		out.Add(h.Name, h.Value)
	}
	return out, nil
}

// BuildURL substitutes {name} path parameters and appends query parameters.
func BuildURL(req storage.Request) (string, error) {
	raw := req.URL
	for key, value := range req.PathParams {
		raw = strings.ReplaceAll(raw, "{"+key+"}", url.PathEscape(value))
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", errdef.Wrap(errdef.CodeHTTP, err, "parse url")
	}
	if len(req.QueryParams) > 0 {
		q := u.Query()
		for key, value := range req.QueryParams {
			q.Set(key, value)
		}
		u.RawQuery = q.Encode()
	}
	return u.String(), nil
}

// Execute sends req and reads the whole response body.
func (c *Client) Execute(ctx context.Context, req storage.Request) (*Response, error) {
	if req.Protocol != nil && *req.Protocol != storage.ProtocolHTTP {
		return nil, errdef.New(errdef.CodeHTTP, "protocol %s is not supported", *req.Protocol)
	}

	headers, err := FoldHeaders(req.Headers)
	if err != nil {
		return nil, err
	}

	target, err := BuildURL(req)
	if err != nil {
		return nil, err
	}

	var bodyReader io.Reader
	if req.Body != nil {
		bodyReader = strings.NewReader(*req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method.String(), target, bodyReader)
	if err != nil {
		return nil, errdef.Wrap(errdef.CodeHTTP, err, "create request")
	}
	httpReq.Header = headers

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, errdef.Wrap(errdef.CodeHTTP, err, "wait for rate limiter")
	}

	startTime := time.Now()
	httpResp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, errdef.Wrap(errdef.CodeHTTP, err, "execute request")
	}
	defer httpResp.Body.Close()

	bodyBytes, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, errdef.Wrap(errdef.CodeHTTP, err, "read response")
	}

	keys := make([]string, 0, len(httpResp.Header))
	for key := range httpResp.Header {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	respHeaders := make([]storage.Header, 0, len(keys))
	for _, key := range keys {
		for _, value := range httpResp.Header[key] {
			respHeaders = append(respHeaders, storage.Header{Name: key, Value: value})
		}
	}

	return &Response{
		StatusCode: httpResp.StatusCode,
		Status:     httpResp.Status,
		Headers:    respHeaders,
		Body:       string(bodyBytes),
		Duration:   time.Since(startTime),
	}, nil
}

// FormatResponse formats the response for plain-text display.
func (r *Response) FormatResponse() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Status: %s (%dms)\n\n", r.Status, r.Duration.Milliseconds()))

	sb.WriteString("Headers:\n")
	for _, h := range r.Headers {
		sb.WriteString(fmt.Sprintf("  %s: %s\n", h.Name, h.Value))
	}
	sb.WriteString("\n")

	sb.WriteString("Body:\n")
	var prettyJSON bytes.Buffer
	if err := json.Indent(&prettyJSON, []byte(r.Body), "", "  "); err == nil {
		sb.WriteString(prettyJSON.String())
	} else {
		sb.WriteString(r.Body)
	}

	return sb.String()
}
