package mocks

import (
	"bytes"
	"io"
	"net/http"
)

// HTTPClient is a mock implementation of ports.HTTPClient for testing
type HTTPClient struct {
	DoFunc func(req *http.Request) (*http.Response, error)
	Calls  []*http.Request
}

// NewHTTPClient creates a mock HTTP client
func NewHTTPClient(doFunc func(req *http.Request) (*http.Response, error)) *HTTPClient {
	return &HTTPClient{
		DoFunc: doFunc,
		Calls:  []*http.Request{},
	}
}

// Do executes the mock function and captures the call
func (m *HTTPClient) Do(req *http.Request) (*http.Response, error) {
	m.Calls = append(m.Calls, req)
	if m.DoFunc != nil {
		return m.DoFunc(req)
	}
	return &http.Response{
		StatusCode: 200,
		Body:       io.NopCloser(bytes.NewBufferString(`{"status":"ok"}`)),
		Header:     make(http.Header),
	}, nil
}

// Reset clears captured calls
func (m *HTTPClient) Reset() {
	m.Calls = []*http.Request{}
}
