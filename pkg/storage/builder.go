package storage

import (
	"errors"
	"fmt"
)

// ErrMissingField is returned by Build when a required field was never supplied.
var ErrMissingField = errors.New("missing required field")

// RequestBuilder assembles a Request. Name, method and url are required.
type RequestBuilder struct {
	name        *string
	method      *Method
	url         *string
	protocol    *Protocol
	headers     []Header
	body        *string
	pathParams  map[string]string
	queryParams map[string]string
}

// NewRequestBuilder returns an empty builder.
func NewRequestBuilder() *RequestBuilder {
	return &RequestBuilder{}
}

func (b *RequestBuilder) Name(name string) *RequestBuilder {
	b.name = &name
	return b
}

func (b *RequestBuilder) Method(method Method) *RequestBuilder {
	b.method = &method
	return b
}

func (b *RequestBuilder) URL(url string) *RequestBuilder {
	b.url = &url
	return b
}

func (b *RequestBuilder) Protocol(p Protocol) *RequestBuilder {
	b.protocol = &p
	return b
}

// Headers replaces the header list.
func (b *RequestBuilder) Headers(headers []Header) *RequestBuilder {
	b.headers = append([]Header(nil), headers...)
	return b
}

// Header appends a single header, keeping insertion order.
func (b *RequestBuilder) Header(name, value string) *RequestBuilder {
	b.headers = append(b.headers, Header{Name: name, Value: value})
	return b
}

func (b *RequestBuilder) Body(body string) *RequestBuilder {
	b.body = &body
	return b
}

func (b *RequestBuilder) PathParams(params map[string]string) *RequestBuilder {
	b.pathParams = params
	return b
}

func (b *RequestBuilder) PathParam(key, value string) *RequestBuilder {
	if b.pathParams == nil {
		b.pathParams = make(map[string]string)
	}
	b.pathParams[key] = value
	return b
}

func (b *RequestBuilder) QueryParams(params map[string]string) *RequestBuilder {
	b.queryParams = params
	return b
}

func (b *RequestBuilder) QueryParam(key, value string) *RequestBuilder {
	if b.queryParams == nil {
		b.queryParams = make(map[string]string)
	}
	b.queryParams[key] = value
	return b
}

// Build returns the Request, or ErrMissingField if name, method or url is unset.
func (b *RequestBuilder) Build() (Request, error) {
	switch {
	case b.name == nil:
		return Request{}, fmt.Errorf("request: %w: name", ErrMissingField)
	case b.method == nil:
		return Request{}, fmt.Errorf("request: %w: method", ErrMissingField)
	case b.url == nil:
		return Request{}, fmt.Errorf("request: %w: url", ErrMissingField)
	}

	headers := b.headers
	if headers == nil {
		headers = []Header{}
	}

	return Request{
		Name:        *b.name,
		Protocol:    b.protocol,
		URL:         *b.url,
		Method:      *b.method,
		Headers:     headers,
		Body:        b.body,
		PathParams:  b.pathParams,
		QueryParams: b.queryParams,
	}, nil
}
