package transport

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vikijel/gopayrest/internal/mocks"
	pkgerrors "github.com/vikijel/gopayrest/pkg/errors"
)

func newTestAdapter(client *mocks.HTTPClient, autoFollow bool) *Adapter {
	return New(client, autoFollow, DefaultMaxRedirects, mocks.NewLogger())
}

func TestExecute_EmptyURL(t *testing.T) {
	adapter := newTestAdapter(mocks.NewHTTPClient(nil), true)

	_, err := adapter.Execute(context.Background(), "  ", http.MethodGet, nil, nil)

	require.Error(t, err)
	var transportErr *pkgerrors.TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Contains(t, transportErr.Message, "url cannot be empty")
}

func TestExecute_UnsupportedMethod(t *testing.T) {
	client := mocks.NewHTTPClient(nil)
	adapter := newTestAdapter(client, true)

	_, err := adapter.Execute(context.Background(), "https://example.com", "DELETE", nil, nil)

	require.Error(t, err)
	var transportErr *pkgerrors.TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Contains(t, transportErr.Message, "not supported")
	assert.Empty(t, client.Calls, "no request should be issued for an unsupported method")
}

func TestExecute_ContentTypeSplit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	adapter := New(&http.Client{}, true, DefaultMaxRedirects, mocks.NewLogger())

	resp, err := adapter.Execute(context.Background(), server.URL, http.MethodGet, nil, nil)

	require.NoError(t, err)
	assert.Equal(t, "application/json", resp.ContentType)
	assert.Equal(t, true, resp.JSON["ok"])
}

func TestExecute_NonJSONBodyDecodesToEmptyMap(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<html>not json</html>"))
	}))
	defer server.Close()

	adapter := New(&http.Client{}, true, DefaultMaxRedirects, mocks.NewLogger())

	resp, err := adapter.Execute(context.Background(), server.URL, http.MethodGet, nil, nil)

	require.NoError(t, err)
	assert.Empty(t, resp.JSON)
	assert.Equal(t, "<html>not json</html>", string(resp.Body))
}

func TestExecute_EmptyBodyDecodesToEmptyMap(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	adapter := New(&http.Client{}, true, DefaultMaxRedirects, mocks.NewLogger())

	resp, err := adapter.Execute(context.Background(), server.URL, http.MethodGet, nil, nil)

	require.NoError(t, err)
	assert.NotNil(t, resp.JSON)
	assert.Empty(t, resp.JSON)
}

func TestExecute_FormEncodesURLValues(t *testing.T) {
	var received string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		received = string(body)
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	adapter := New(&http.Client{}, true, DefaultMaxRedirects, mocks.NewLogger())

	body := url.Values{
		"grant_type": {"client_credentials"},
		"scope":      {"payment-all"},
	}
	_, err := adapter.Execute(context.Background(), server.URL, http.MethodPost, body, nil)

	require.NoError(t, err)
	assert.Equal(t, "grant_type=client_credentials&scope=payment-all", received)
}

func TestExecute_RawStringBodyPassedThrough(t *testing.T) {
	var received string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		received = string(body)
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	adapter := New(&http.Client{}, true, DefaultMaxRedirects, mocks.NewLogger())

	_, err := adapter.Execute(context.Background(), server.URL, http.MethodPost, `{"amount":100}`, nil)

	require.NoError(t, err)
	assert.Equal(t, `{"amount":100}`, received)
}

func TestExecute_UnsupportedBodyType(t *testing.T) {
	adapter := newTestAdapter(mocks.NewHTTPClient(nil), true)

	_, err := adapter.Execute(context.Background(), "https://example.com", http.MethodPost, 42, nil)

	require.Error(t, err)
	var transportErr *pkgerrors.TransportError
	require.ErrorAs(t, err, &transportErr)
}

func TestExecute_ManualRedirect_FollowsChain(t *testing.T) {
	client := mocks.NewScriptedHTTPClient(
		mocks.RedirectResponse(http.StatusMovedPermanently, "https://example.com/a"),
		mocks.RedirectResponse(http.StatusFound, "https://example.com/b"),
		mocks.RedirectResponse(http.StatusMovedPermanently, "https://example.com/c"),
		mocks.JSONResponse(http.StatusOK, `{"done":true}`),
	)
	adapter := newTestAdapter(client, false)

	resp, err := adapter.Execute(context.Background(), "https://example.com/start", http.MethodGet, nil, nil)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, resp.JSON["done"])
	require.Len(t, client.Calls, 4)
	assert.Equal(t, "https://example.com/a", client.Calls[1].URL.String())
	assert.Equal(t, "https://example.com/b", client.Calls[2].URL.String())
	assert.Equal(t, "https://example.com/c", client.Calls[3].URL.String())
}

func TestExecute_ManualRedirect_ExhaustsAtFourHops(t *testing.T) {
	client := mocks.NewScriptedHTTPClient(
		mocks.RedirectResponse(http.StatusMovedPermanently, "https://example.com/a"),
		mocks.RedirectResponse(http.StatusMovedPermanently, "https://example.com/b"),
		mocks.RedirectResponse(http.StatusMovedPermanently, "https://example.com/c"),
		mocks.RedirectResponse(http.StatusMovedPermanently, "https://example.com/d"),
		mocks.JSONResponse(http.StatusOK, `{"done":true}`),
	)
	adapter := newTestAdapter(client, false)

	_, err := adapter.Execute(context.Background(), "https://example.com/start", http.MethodGet, nil, nil)

	require.Error(t, err)
	var transportErr *pkgerrors.TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Contains(t, transportErr.Message, "redirects exhausted")
	assert.Len(t, client.Calls, 4, "the fifth request must never be issued")
}

func TestExecute_ManualRedirect_RelativeLocation(t *testing.T) {
	client := mocks.NewScriptedHTTPClient(
		mocks.RedirectResponse(http.StatusFound, "/moved"),
		mocks.JSONResponse(http.StatusOK, `{}`),
	)
	adapter := newTestAdapter(client, false)

	_, err := adapter.Execute(context.Background(), "https://gw.example.com/api/start", http.MethodGet, nil, nil)

	require.NoError(t, err)
	require.Len(t, client.Calls, 2)
	assert.Equal(t, "https://gw.example.com/moved", client.Calls[1].URL.String())
}

func TestExecute_ManualRedirect_MissingLocationReturnsBody(t *testing.T) {
	client := mocks.NewScriptedHTTPClient(
		mocks.RedirectResponse(http.StatusMovedPermanently, ""),
	)
	adapter := newTestAdapter(client, false)

	resp, err := adapter.Execute(context.Background(), "https://example.com/start", http.MethodGet, nil, nil)

	require.NoError(t, err)
	assert.Equal(t, http.StatusMovedPermanently, resp.StatusCode)
	assert.Len(t, client.Calls, 1)
}

func TestExecute_AutoFollowDelegatesToClient(t *testing.T) {
	client := mocks.NewScriptedHTTPClient(
		mocks.RedirectResponse(http.StatusMovedPermanently, "https://example.com/elsewhere"),
	)
	adapter := newTestAdapter(client, true)

	resp, err := adapter.Execute(context.Background(), "https://example.com/start", http.MethodGet, nil, nil)

	require.NoError(t, err)
	assert.Equal(t, http.StatusMovedPermanently, resp.StatusCode)
	assert.Len(t, client.Calls, 1, "auto-follow mode must not loop in the adapter")
}

func TestResolveLocation(t *testing.T) {
	prev, _ := url.Parse("https://gw.example.com/api/payments")

	tests := []struct {
		name     string
		location string
		want     string
		ok       bool
	}{
		{name: "absolute", location: "https://other.example.com/x", want: "https://other.example.com/x", ok: true},
		{name: "path only", location: "/oauth2/token", want: "https://gw.example.com/oauth2/token", ok: true},
		{name: "query only", location: "?retry=1", want: "https://gw.example.com/api/payments?retry=1", ok: true},
		{name: "empty", location: "", ok: false},
		{name: "whitespace", location: "   ", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, ok := resolveLocation(prev, tt.location)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, next.String())
			}
		})
	}
}
