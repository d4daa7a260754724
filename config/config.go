// Package config loads GoPay client settings from the environment,
// for applications that configure the client via GOPAY_* variables.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	gopayrest "github.com/vikijel/gopayrest"
)

// Settings holds everything needed to build a client
type Settings struct {
	ClientID     string
	ClientSecret string
	GoID         string
	Mode         gopayrest.Mode
	Lang         string
	Currency     string
	LogLevel     string
}

// Load reads settings from the environment. A .env file in the working
// directory is applied first when present.
func Load() (*Settings, error) {
	// Missing .env is fine; explicit env vars win anyway
	_ = godotenv.Load()

	s := &Settings{
		ClientID:     getEnv("GOPAY_CLIENT_ID", ""),
		ClientSecret: getEnv("GOPAY_CLIENT_SECRET", ""),
		GoID:         getEnv("GOPAY_GOID", ""),
		Mode:         gopayrest.Mode(getEnv("GOPAY_MODE", string(gopayrest.ModeTest))),
		Lang:         getEnv("GOPAY_LANG", "EN"),
		Currency:     getEnv("GOPAY_CURRENCY", "EUR"),
		LogLevel:     getEnv("GOPAY_LOG_LEVEL", "info"),
	}

	var missing []string
	if s.ClientID == "" {
		missing = append(missing, "GOPAY_CLIENT_ID")
	}
	if s.ClientSecret == "" {
		missing = append(missing, "GOPAY_CLIENT_SECRET")
	}
	if s.GoID == "" {
		missing = append(missing, "GOPAY_GOID")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	return s, nil
}

// Config builds a validated gateway config from the settings
func (s *Settings) Config() (*gopayrest.Config, error) {
	cfg, err := gopayrest.NewConfig(s.ClientID, s.ClientSecret, s.GoID, s.Mode)
	if err != nil {
		return nil, err
	}
	if err := cfg.SetLang(s.Lang); err != nil {
		return nil, err
	}
	if err := cfg.SetCurrency(s.Currency); err != nil {
		return nil, err
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
