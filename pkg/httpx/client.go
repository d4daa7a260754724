package httpx

import (
	"crypto/tls"
	"fmt"
	"net"
	"net/http"
	"time"
)

// Config holds HTTP client configuration tuned for the payment gateway
type Config struct {
	// Connection pooling
	MaxIdleConns        int
	MaxIdleConnsPerHost int
	MaxConnsPerHost     int
	IdleConnTimeout     time.Duration

	// Timeouts
	DialTimeout           time.Duration // TCP connection timeout
	Timeout               time.Duration // Total request timeout
	TLSHandshakeTimeout   time.Duration
	ResponseHeaderTimeout time.Duration

	// Keep-alive
	KeepAlive time.Duration

	// TLS
	MinTLSVersion uint16
}

// GatewayConfig returns the configuration used against the GoPay API.
// The gateway is a single host, so the pool is tuned for one endpoint.
// Connect and total timeouts match the reference integration (30s/120s).
func GatewayConfig() *Config {
	return &Config{
		MaxIdleConns:        20,
		MaxIdleConnsPerHost: 20,
		MaxConnsPerHost:     50,
		IdleConnTimeout:     90 * time.Second,

		DialTimeout:           30 * time.Second,
		Timeout:               120 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: 120 * time.Second,

		KeepAlive: 60 * time.Second,

		MinTLSVersion: tls.VersionTLS12,
	}
}

// New creates an HTTP client with the given configuration that follows
// redirects the standard library way (capped at maxRedirects hops)
func New(cfg *Config, maxRedirects int) *http.Client {
	client := newClient(cfg)
	client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
		if len(via) > maxRedirects {
			return fmt.Errorf("stopped after %d redirects", maxRedirects)
		}
		return nil
	}
	return client
}

// NewNoRedirect creates an HTTP client that never follows redirects,
// returning the 3xx response itself. Used by the transport adapter
// when it follows redirects manually.
func NewNoRedirect(cfg *Config) *http.Client {
	client := newClient(cfg)
	client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
		return http.ErrUseLastResponse
	}
	return client
}

func newClient(cfg *Config) *http.Client {
	dialer := &net.Dialer{
		Timeout:   cfg.DialTimeout,
		KeepAlive: cfg.KeepAlive,
	}

	transport := &http.Transport{
		Proxy:       http.ProxyFromEnvironment,
		DialContext: dialer.DialContext,

		MaxIdleConns:        cfg.MaxIdleConns,
		MaxIdleConnsPerHost: cfg.MaxIdleConnsPerHost,
		MaxConnsPerHost:     cfg.MaxConnsPerHost,
		IdleConnTimeout:     cfg.IdleConnTimeout,

		TLSHandshakeTimeout:   cfg.TLSHandshakeTimeout,
		ResponseHeaderTimeout: cfg.ResponseHeaderTimeout,

		TLSClientConfig: &tls.Config{
			MinVersion: cfg.MinTLSVersion,
		},

		ForceAttemptHTTP2: true,
	}

	return &http.Client{
		Transport: transport,
		Timeout:   cfg.Timeout,
	}
}
