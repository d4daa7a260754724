package gopayrest

import (
	"fmt"
	"strings"

	pkgerrors "github.com/vikijel/gopayrest/pkg/errors"
)

// Mode selects the gateway environment
type Mode string

const (
	ModeTest       Mode = "test"
	ModeProduction Mode = "production"
)

// Fixed environment URLs
const (
	APIURLTest       = "https://gw.sandbox.gopay.com/api"
	APIURLProduction = "https://gate.gopay.cz/api"
	JSURLTest        = "https://gw.sandbox.gopay.com/gp-gw/js/embed.js"
	JSURLProduction  = "https://gate.gopay.cz/gp-gw/js/embed.js"
)

// DeriveURLs returns the API base URL and checkout script URL for a mode
func DeriveURLs(mode Mode) (apiURL, jsURL string) {
	if mode == ModeProduction {
		return APIURLProduction, JSURLProduction
	}
	return APIURLTest, JSURLTest
}

// Config holds the gateway account credentials and environment.
// Construct one per logical account+mode pair. Setters validate input
// and re-derive dependent fields; getters are pure reads.
type Config struct {
	clientID     string
	clientSecret string
	goID         string
	mode         Mode
	lang         string
	currency     string
	apiURL       string
	jsURL        string
}

// NewConfig creates a validated config. Language defaults to EN and
// currency to EUR; both can be changed with setters.
func NewConfig(clientID, clientSecret, goID string, mode Mode) (*Config, error) {
	c := &Config{
		lang:     "EN",
		currency: "EUR",
	}

	if err := c.SetClientID(clientID); err != nil {
		return nil, err
	}
	if err := c.SetClientSecret(clientSecret); err != nil {
		return nil, err
	}
	if err := c.SetGoID(goID); err != nil {
		return nil, err
	}
	if err := c.SetMode(mode); err != nil {
		return nil, err
	}

	return c, nil
}

// SetClientID sets the OAuth2 client id
func (c *Config) SetClientID(clientID string) error {
	if strings.TrimSpace(clientID) == "" {
		return pkgerrors.NewConfigError("client_id", "client id cannot be empty")
	}
	c.clientID = clientID
	return nil
}

// ClientID returns the OAuth2 client id
func (c *Config) ClientID() string {
	return c.clientID
}

// SetClientSecret sets the OAuth2 client secret
func (c *Config) SetClientSecret(clientSecret string) error {
	if strings.TrimSpace(clientSecret) == "" {
		return pkgerrors.NewConfigError("client_secret", "client secret cannot be empty")
	}
	c.clientSecret = clientSecret
	return nil
}

// SetGoID sets the GoID, the gateway account used as settlement target
func (c *Config) SetGoID(goID string) error {
	if strings.TrimSpace(goID) == "" {
		return pkgerrors.NewConfigError("goid", "GoID cannot be empty")
	}
	c.goID = goID
	return nil
}

// GoID returns the gateway account identifier
func (c *Config) GoID() string {
	return c.goID
}

// SetMode switches between test and production and re-derives both the
// API base URL and the checkout script URL
func (c *Config) SetMode(mode Mode) error {
	if err := c.SetModeKeepURLs(mode); err != nil {
		return err
	}
	c.apiURL, c.jsURL = DeriveURLs(mode)
	return nil
}

// SetModeKeepURLs switches the mode without touching the URLs, for
// setups that override one or both of them explicitly
func (c *Config) SetModeKeepURLs(mode Mode) error {
	if mode != ModeTest && mode != ModeProduction {
		return pkgerrors.NewConfigError("mode", fmt.Sprintf("mode '%s' is not supported", mode))
	}
	c.mode = mode
	return nil
}

// Mode returns the configured mode
func (c *Config) Mode() Mode {
	return c.mode
}

// IsMode reports whether the config uses the given mode
func (c *Config) IsMode(mode Mode) bool {
	return c.mode == mode
}

// SetAPIURL overrides the API base URL; the trailing slash is dropped
func (c *Config) SetAPIURL(apiURL string) error {
	if strings.TrimSpace(apiURL) == "" {
		return pkgerrors.NewConfigError("api_url", "api url cannot be empty")
	}
	c.apiURL = strings.TrimRight(apiURL, "/")
	return nil
}

// APIURL returns the API base URL joined with path
func (c *Config) APIURL(path string) string {
	return c.apiURL + path
}

// SetJSURL overrides the checkout script URL
func (c *Config) SetJSURL(jsURL string) error {
	if strings.TrimSpace(jsURL) == "" {
		return pkgerrors.NewConfigError("js_url", "js url cannot be empty")
	}
	c.jsURL = jsURL
	return nil
}

// JSURL returns the checkout script URL
func (c *Config) JSURL() string {
	return c.jsURL
}

// SetLang normalizes and sets the checkout language (2-letter code)
func (c *Config) SetLang(lang string) error {
	if strings.TrimSpace(lang) == "" {
		return pkgerrors.NewConfigError("lang", "lang cannot be empty")
	}
	if len(lang) > 2 {
		lang = lang[:2]
	}
	c.lang = strings.ToUpper(lang)
	return nil
}

// Lang returns the configured language
func (c *Config) Lang() string {
	return c.lang
}

// SetCurrency sets the default 3-letter currency code
func (c *Config) SetCurrency(currency string) error {
	if len(currency) != 3 {
		return pkgerrors.NewConfigError("currency", "invalid currency code")
	}
	c.currency = strings.ToUpper(currency)
	return nil
}

// Currency returns the default currency
func (c *Config) Currency() string {
	return c.currency
}

// String renders the config for diagnostics. In production mode the
// client secret is replaced by a mask of equal length so it cannot
// leak into logs.
func (c *Config) String() string {
	secret := c.clientSecret
	if c.IsMode(ModeProduction) {
		secret = strings.Repeat("*", len(secret))
	}
	return fmt.Sprintf(
		"gopay config: client_id=%s client_secret=%s goid=%s mode=%s lang=%s currency=%s api_url=%s js_url=%s",
		c.clientID, secret, c.goID, c.mode, c.lang, c.currency, c.apiURL, c.jsURL,
	)
}
