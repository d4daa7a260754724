package observability

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	pkgerrors "github.com/vikijel/gopayrest/pkg/errors"
)

var (
	apiRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gopay_api_requests_total",
			Help: "Total number of GoPay API operations",
		},
		[]string{"operation", "outcome"},
	)

	apiRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gopay_api_request_duration_seconds",
			Help:    "Duration of GoPay API operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	tokenFetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gopay_token_fetches_total",
			Help: "Total number of OAuth2 token fetches (cache misses)",
		},
		[]string{"scope"},
	)
)

// ObserveAPIRequest records one finished API operation
func ObserveAPIRequest(operation string, duration time.Duration, err error) {
	apiRequestDuration.WithLabelValues(operation).Observe(duration.Seconds())
	apiRequestsTotal.WithLabelValues(operation, outcome(err)).Inc()
}

// ObserveTokenFetch records one OAuth2 token fetch attempt
func ObserveTokenFetch(scope string) {
	tokenFetchesTotal.WithLabelValues(scope).Inc()
}

func outcome(err error) string {
	if err == nil {
		return "ok"
	}

	var validationErr *pkgerrors.ValidationError
	var authErr *pkgerrors.AuthError
	var transportErr *pkgerrors.TransportError
	var contractErr *pkgerrors.ContractError

	switch {
	case errors.As(err, &validationErr):
		return "validation_error"
	case errors.As(err, &authErr):
		return "auth_error"
	case errors.As(err, &transportErr):
		return "transport_error"
	case errors.As(err, &contractErr):
		return "contract_error"
	default:
		return "error"
	}
}
