package mocks

import (
	"bytes"
	"io"
	"net/http"
)

// HTTPClient is a mock implementation of ports.HTTPClient for testing
type HTTPClient struct {
	DoFunc    func(req *http.Request) (*http.Response, error)
	Responses []*http.Response
	Calls     []*http.Request
}

// NewHTTPClient creates a new mock HTTP client
func NewHTTPClient(doFunc func(req *http.Request) (*http.Response, error)) *HTTPClient {
	return &HTTPClient{
		DoFunc: doFunc,
		Calls:  []*http.Request{},
	}
}

// NewScriptedHTTPClient creates a mock that serves the given responses in order
func NewScriptedHTTPClient(responses ...*http.Response) *HTTPClient {
	return &HTTPClient{
		Responses: responses,
		Calls:     []*http.Request{},
	}
}

// Do executes the mock function and captures the call
func (m *HTTPClient) Do(req *http.Request) (*http.Response, error) {
	m.Calls = append(m.Calls, req)
	if m.DoFunc != nil {
		return m.DoFunc(req)
	}
	if len(m.Responses) > 0 {
		resp := m.Responses[0]
		if len(m.Responses) > 1 {
			m.Responses = m.Responses[1:]
		}
		return resp, nil
	}
	return JSONResponse(http.StatusOK, `{"status":"ok"}`), nil
}

// Reset clears captured calls
func (m *HTTPClient) Reset() {
	m.Calls = []*http.Request{}
}

// JSONResponse builds an *http.Response with a JSON body
func JSONResponse(status int, body string) *http.Response {
	header := make(http.Header)
	header.Set("Content-Type", "application/json")
	return &http.Response{
		StatusCode: status,
		Header:     header,
		Body:       io.NopCloser(bytes.NewBufferString(body)),
	}
}

// RedirectResponse builds an *http.Response carrying a Location header
func RedirectResponse(status int, location string) *http.Response {
	header := make(http.Header)
	if location != "" {
		header.Set("Location", location)
	}
	return &http.Response{
		StatusCode: status,
		Header:     header,
		Body:       io.NopCloser(bytes.NewBufferString("")),
	}
}
