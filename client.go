// Package gopayrest is a client for the GoPay payment gateway REST API.
//
// A Client authenticates with OAuth2 client credentials, caches one
// bearer token per scope, and exposes the payment lifecycle operations
// (create, state, refund, capture, void, recurrence). Responses are
// validated against the shape the gateway documents for each operation;
// any deviation, including the gateway's own error responses, surfaces
// as a ContractError carrying the raw body.
package gopayrest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/vikijel/gopayrest/internal/auth"
	"github.com/vikijel/gopayrest/internal/transport"
	pkgerrors "github.com/vikijel/gopayrest/pkg/errors"
	"github.com/vikijel/gopayrest/pkg/httpx"
	"github.com/vikijel/gopayrest/pkg/logging"
	"github.com/vikijel/gopayrest/pkg/observability"
	"github.com/vikijel/gopayrest/ports"
)

// MaxRedirects bounds redirect-following in both redirect modes
const MaxRedirects = transport.DefaultMaxRedirects

// Client talks to one GoPay account in one mode. It performs at most
// one authentication round trip (on token cache miss) plus one API
// round trip per operation, both blocking.
//
// A Client is not safe for concurrent use; the token cache is mutable
// per-instance state. Serialize access externally if shared.
type Client struct {
	cfg       *Config
	transport *transport.Adapter
	tokens    *auth.TokenSource
	logger    ports.Logger
}

type clientOptions struct {
	httpClient      ports.HTTPClient
	logger          ports.Logger
	manualRedirects bool
	maxRedirects    int
}

// Option customizes a Client
type Option func(*clientOptions)

// WithHTTPClient injects the HTTP executor. When manual redirects are
// enabled the executor must not follow redirects on its own.
func WithHTTPClient(client ports.HTTPClient) Option {
	return func(o *clientOptions) {
		o.httpClient = client
	}
}

// WithLogger injects a logger; the default discards everything
func WithLogger(logger ports.Logger) Option {
	return func(o *clientOptions) {
		o.logger = logger
	}
}

// WithManualRedirects makes the transport adapter follow 301/302
// responses itself instead of relying on the HTTP client. Meant for
// restricted environments whose client cannot auto-follow.
func WithManualRedirects() Option {
	return func(o *clientOptions) {
		o.manualRedirects = true
	}
}

// WithMaxRedirects overrides the redirect hop cap (default 3)
func WithMaxRedirects(n int) Option {
	return func(o *clientOptions) {
		o.maxRedirects = n
	}
}

// New creates a Client for the given config
func New(cfg *Config, opts ...Option) *Client {
	options := clientOptions{
		logger:       logging.NewNop(),
		maxRedirects: MaxRedirects,
	}
	for _, opt := range opts {
		opt(&options)
	}

	if options.httpClient == nil {
		if options.manualRedirects {
			options.httpClient = httpx.NewNoRedirect(httpx.GatewayConfig())
		} else {
			options.httpClient = httpx.New(httpx.GatewayConfig(), options.maxRedirects)
		}
	}

	adapter := transport.New(options.httpClient, !options.manualRedirects, options.maxRedirects, options.logger)

	return &Client{
		cfg:       cfg,
		transport: adapter,
		tokens:    auth.NewTokenSource(adapter, cfg.APIURL(""), cfg.clientID, cfg.clientSecret, options.logger),
		logger:    options.logger,
	}
}

// Config returns the client's configuration
func (c *Client) Config() *Config {
	return c.cfg
}

// CreatePayment creates a standard payment and returns the gateway's
// payment object, whose GwURL is the checkout URL for the payer
func (c *Client) CreatePayment(ctx context.Context, req *PaymentRequest) (*Payment, error) {
	start := time.Now()
	payment, err := c.createPayment(ctx, req)
	observability.ObserveAPIRequest("create_payment", time.Since(start), err)
	return payment, err
}

func (c *Client) createPayment(ctx context.Context, req *PaymentRequest) (*Payment, error) {
	if err := validatePaymentRequest(req, true); err != nil {
		return nil, err
	}

	body := c.fillDefaults(req, true)

	resp, err := c.apiCall(ctx, "/payments/payment", http.MethodPost, &body, ScopePaymentCreate, "")
	if err != nil {
		return nil, err
	}

	payment := decodePayment(resp)
	if payment.State != StateCreated || payment.ID == 0 || payment.GwURL == "" {
		return nil, pkgerrors.NewContractError("create_payment", "payment creation failed", resp.StatusCode, resp.Body)
	}

	c.logger.Info("payment created",
		ports.Int64("payment_id", payment.ID),
		ports.String("order_number", payment.OrderNumber),
	)

	return payment, nil
}

// PaymentState fetches the current state of a payment
func (c *Client) PaymentState(ctx context.Context, paymentID int64) (*Payment, error) {
	start := time.Now()
	payment, err := c.paymentState(ctx, paymentID)
	observability.ObserveAPIRequest("payment_state", time.Since(start), err)
	return payment, err
}

func (c *Client) paymentState(ctx context.Context, paymentID int64) (*Payment, error) {
	path := fmt.Sprintf("/payments/payment/%d", paymentID)

	resp, err := c.apiCall(ctx, path, http.MethodGet, nil, ScopePaymentAll, "")
	if err != nil {
		return nil, err
	}

	payment := decodePayment(resp)
	if payment.ID == 0 || payment.ID != paymentID || payment.State == "" {
		return nil, pkgerrors.NewContractError("payment_state", "cannot get payment state", resp.StatusCode, resp.Body)
	}

	return payment, nil
}

// RefundPayment refunds amount cents of a payment. An amount of zero
// refunds the full amount, which is fetched with PaymentState first.
func (c *Client) RefundPayment(ctx context.Context, paymentID int64, amount int64) (*Payment, error) {
	start := time.Now()
	payment, err := c.refundPayment(ctx, paymentID, amount)
	observability.ObserveAPIRequest("refund_payment", time.Since(start), err)
	return payment, err
}

func (c *Client) refundPayment(ctx context.Context, paymentID int64, amount int64) (*Payment, error) {
	if amount <= 0 {
		state, err := c.paymentState(ctx, paymentID)
		if err != nil {
			return nil, err
		}
		amount = state.Amount
	}

	path := fmt.Sprintf("/payments/payment/%d/refund", paymentID)
	params := map[string]int64{"amount": amount}

	// The gateway expects a form content-type header here while the
	// body stays JSON-encoded, same as every other operation.
	resp, err := c.apiCall(ctx, path, http.MethodPost, params, ScopePaymentAll, "application/x-www-form-urlencoded")
	if err != nil {
		return nil, err
	}

	payment := decodePayment(resp)
	if payment.ID == 0 || payment.ID != paymentID || payment.Result != ResultFinished {
		return nil, pkgerrors.NewContractError("refund_payment", "cannot refund payment", resp.StatusCode, resp.Body)
	}

	return payment, nil
}

// DemandRecurrence charges a follow-up payment against a previously
// created recurring-payment agreement
func (c *Client) DemandRecurrence(ctx context.Context, parentPaymentID int64, req *PaymentRequest) (*Payment, error) {
	start := time.Now()
	payment, err := c.demandRecurrence(ctx, parentPaymentID, req)
	observability.ObserveAPIRequest("demand_recurrence", time.Since(start), err)
	return payment, err
}

func (c *Client) demandRecurrence(ctx context.Context, parentPaymentID int64, req *PaymentRequest) (*Payment, error) {
	if err := validatePaymentRequest(req, false); err != nil {
		return nil, err
	}

	body := c.fillDefaults(req, false)

	path := fmt.Sprintf("/payments/payment/%d/create-recurrence", parentPaymentID)

	resp, err := c.apiCall(ctx, path, http.MethodPost, &body, ScopePaymentAll, "")
	if err != nil {
		return nil, err
	}

	payment := decodePayment(resp)
	if payment.State != StateCreated || payment.ID == 0 {
		return nil, pkgerrors.NewContractError("demand_recurrence", "recurrence demand failed", resp.StatusCode, resp.Body)
	}

	return payment, nil
}

// VoidRecurrence cancels a recurring-payment agreement
func (c *Client) VoidRecurrence(ctx context.Context, paymentID int64) (*Payment, error) {
	start := time.Now()
	payment, err := c.finishedResultCall(ctx, "void_recurrence", paymentID, "void-recurrence")
	observability.ObserveAPIRequest("void_recurrence", time.Since(start), err)
	return payment, err
}

// CapturePreauthorizedPayment settles a previously reserved amount
func (c *Client) CapturePreauthorizedPayment(ctx context.Context, paymentID int64) (*Payment, error) {
	start := time.Now()
	payment, err := c.finishedResultCall(ctx, "capture_preauthorized_payment", paymentID, "capture")
	observability.ObserveAPIRequest("capture_preauthorized_payment", time.Since(start), err)
	return payment, err
}

// VoidPreauthorizedPayment cancels a previously reserved amount
func (c *Client) VoidPreauthorizedPayment(ctx context.Context, paymentID int64) (*Payment, error) {
	start := time.Now()
	payment, err := c.finishedResultCall(ctx, "void_preauthorized_payment", paymentID, "void-authorization")
	observability.ObserveAPIRequest("void_preauthorized_payment", time.Since(start), err)
	return payment, err
}

// finishedResultCall covers the empty-body operations whose contract
// is "id matches, result is FINISHED"
func (c *Client) finishedResultCall(ctx context.Context, operation string, paymentID int64, action string) (*Payment, error) {
	path := fmt.Sprintf("/payments/payment/%d/%s", paymentID, action)

	resp, err := c.apiCall(ctx, path, http.MethodPost, nil, ScopePaymentAll, "")
	if err != nil {
		return nil, err
	}

	payment := decodePayment(resp)
	if payment.ID == 0 || payment.ID != paymentID || payment.Result != ResultFinished {
		return nil, pkgerrors.NewContractError(operation, "operation did not finish", resp.StatusCode, resp.Body)
	}

	return payment, nil
}

// fillDefaults copies the request and completes the fields the gateway
// requires but callers may omit. The settlement target always points
// at the configured GoID, regardless of caller input.
func (c *Client) fillDefaults(req *PaymentRequest, withTargetAndLang bool) PaymentRequest {
	body := *req

	if body.OrderDescription == "" {
		body.OrderDescription = body.OrderNumber
	}
	if body.Currency == "" {
		body.Currency = c.cfg.Currency()
	}
	if withTargetAndLang {
		if body.Lang == "" {
			body.Lang = c.cfg.Lang()
		}
		body.Target = &Target{Type: TargetTypeAccount, GoID: c.cfg.GoID()}
	}

	return body
}

// apiCall composes and issues one authorized API request. Params are
// always JSON-encoded, even when the content-type header says
// form-urlencoded; the gateway expects exactly that.
func (c *Client) apiCall(ctx context.Context, path, method string, params interface{}, scope, contentType string) (*transport.Response, error) {
	if strings.TrimSpace(path) == "" {
		return nil, pkgerrors.NewTransportError("api path cannot be empty", nil)
	}

	if scope == "" {
		scope = ScopePaymentCreate
	}

	if contentType == "" {
		if params == nil {
			contentType = "application/x-www-form-urlencoded"
		} else {
			contentType = "application/json"
		}
	}

	token, err := c.tokens.Token(ctx, scope)
	if err != nil {
		return nil, err
	}

	var body interface{}
	if method == http.MethodPost {
		encoded := []byte("{}")
		if params != nil {
			encoded, err = json.Marshal(params)
			if err != nil {
				return nil, pkgerrors.NewTransportError("failed to encode request params", err)
			}
		}
		body = encoded
	}

	headers := map[string]string{
		"Accept":        "application/json",
		"Content-Type":  contentType + `; charset="utf-8"`,
		"Authorization": "Bearer " + token,
	}

	return c.transport.Execute(ctx, c.cfg.APIURL(path), method, body, headers)
}

// validatePaymentRequest checks the preconditions shared by
// CreatePayment and DemandRecurrence before any network call
func validatePaymentRequest(req *PaymentRequest, requireCallback bool) error {
	if req == nil {
		return pkgerrors.NewValidationError("request", "payment request is required")
	}

	if req.Amount <= 0 {
		return pkgerrors.NewValidationError("amount", "missing amount or amount is invalid")
	}

	if req.OrderNumber == "" {
		return pkgerrors.NewValidationError("order_number", "missing order_number")
	}

	if len(req.Items) == 0 || req.Items[0].Name == "" || req.Items[0].Amount == 0 {
		return pkgerrors.NewValidationError("items", "missing item properties")
	}

	if requireCallback {
		if req.Callback == nil || req.Callback.ReturnURL == "" {
			return pkgerrors.NewValidationError("callback.return_url", "missing callback return_url")
		}
		if req.Callback.NotificationURL == "" {
			return pkgerrors.NewValidationError("callback.notification_url", "missing callback notification_url")
		}
	}

	if req.Payer != nil {
		if req.Payer.AllowedPaymentInstruments != nil && len(req.Payer.AllowedPaymentInstruments) == 0 {
			return pkgerrors.NewValidationError("payer.allowed_payment_instruments", "allowed_payment_instruments cannot be set to empty")
		}
		if req.Payer.AllowedSwifts != nil && len(req.Payer.AllowedSwifts) == 0 {
			return pkgerrors.NewValidationError("payer.allowed_swifts", "allowed_swifts cannot be set to empty")
		}
		if req.Payer.Contact != nil && req.Payer.Contact.Email == "" {
			return pkgerrors.NewValidationError("payer.contact.email", "missing contact's email")
		}
	}

	if req.Recurrence != nil {
		if req.Recurrence.Cycle == "" {
			return pkgerrors.NewValidationError("recurrence.recurrence_cycle", "missing recurrence_cycle")
		}
		if req.Recurrence.Period == 0 {
			return pkgerrors.NewValidationError("recurrence.recurrence_period", "missing recurrence_period")
		}
		if req.Recurrence.DateTo == "" {
			return pkgerrors.NewValidationError("recurrence.recurrence_date_to", "missing recurrence_date_to")
		}
	}

	return nil
}

// decodePayment decodes the response body into a Payment, best effort.
// A body that is not the expected JSON yields a zero Payment, which the
// per-operation shape checks turn into a ContractError.
func decodePayment(resp *transport.Response) *Payment {
	var payment Payment
	if len(resp.Body) > 0 {
		_ = json.Unmarshal(resp.Body, &payment)
	}
	return &payment
}
