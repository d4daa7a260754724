package gopayrest

// OAuth2 scopes enforced by the gateway per endpoint
const (
	ScopePaymentCreate = "payment-create"
	ScopePaymentAll    = "payment-all"
)

// Payment states returned by the gateway
const (
	StateCreated           = "CREATED"
	StatePaid              = "PAID"
	StateCanceled          = "CANCELED"
	StateTimeouted         = "TIMEOUTED"
	StateAuthorized        = "AUTHORIZED"
	StateRefunded          = "REFUNDED"
	StatePartiallyRefunded = "PARTIALLY_REFUNDED"
)

// ResultFinished marks a completed refund/capture/void operation
const ResultFinished = "FINISHED"

// TargetTypeAccount is the only supported settlement target type
const TargetTypeAccount = "ACCOUNT"

// PaymentInstruments maps payment instrument codes to labels
var PaymentInstruments = map[string]string{
	"BANK_ACCOUNT": "Bankovní převody",
	"GOPAY":        "GoPay účet",
	"MPAYMENT":     "Mplatba",
	"PAYMENT_CARD": "Platební karty",
	"PAYPAL":       "PayPal účet",
	"PAYSAFECARD":  "paysafecard",
	"PRSMS":        "Premium SMS",
	"SUPERCASH":    "superCASH",
}

// Swifts maps supported bank SWIFT codes to labels
var Swifts = map[string]string{
	"BREXCZPP":     "mBank",
	"CEKOCZPP":     "ČSOB",
	"CEKOCZPP-ERA": "ERA",
	"CEKOSKBX":     "ČSOB SK",
	"FIOBCZPP":     "FIO Banka",
	"GIBACZPX":     "Česká spořitelna",
	"GIBASKBX":     "Slovenská spořitelna",
	"KOMBCZPP":     "Komerční Banka",
	"LUBASKBX":     "Sberbank Slovensko",
	"OTPVSKBX":     "OTP Banka",
	"POBNSKBA":     "Poštová Banka",
	"RZBCCZPP":     "Raiffeisenbank",
	"SUBASKBX":     "Všeobecná úverová banka Banka",
	"TATRSKBX":     "Tatra Banka",
	"UNCRSKBX":     "Unicredit Bank SK",
}

// Currencies maps supported currency codes to labels
var Currencies = map[string]string{
	"CZK": "Česká koruna",
	"EUR": "Euro",
}

// Langs maps supported checkout language codes to labels
var Langs = map[string]string{
	"CS": "Čeština",
	"DE": "German",
	"EN": "English",
	"RU": "Russian",
	"SK": "Slovak",
}

// Target is the settlement target of a payment. It is always filled by
// the client from the configured GoID; caller-supplied values are
// overwritten.
type Target struct {
	Type string `json:"type"`
	GoID string `json:"goid"`
}

// Item is one order line. Amount is in cents.
type Item struct {
	Name   string `json:"name"`
	Amount int64  `json:"amount"`
	Count  int64  `json:"count,omitempty"`
}

// Callback carries the URLs the gateway redirects and notifies to
type Callback struct {
	ReturnURL       string `json:"return_url"`
	NotificationURL string `json:"notification_url"`
}

// Contact identifies the payer. Email is required when the block is
// present.
type Contact struct {
	FirstName   string `json:"first_name,omitempty"`
	LastName    string `json:"last_name,omitempty"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number,omitempty"`
	City        string `json:"city,omitempty"`
	Street      string `json:"street,omitempty"`
	PostalCode  string `json:"postal_code,omitempty"`
	CountryCode string `json:"country_code,omitempty"`
}

// Payer restricts or preselects payment instruments
type Payer struct {
	DefaultPaymentInstrument  string   `json:"default_payment_instrument,omitempty"`
	AllowedPaymentInstruments []string `json:"allowed_payment_instruments,omitempty"`
	DefaultSwift              string   `json:"default_swift,omitempty"`
	AllowedSwifts             []string `json:"allowed_swifts,omitempty"`
	Contact                   *Contact `json:"contact,omitempty"`
}

// Recurrence describes a recurring payment agreement
type Recurrence struct {
	Cycle  string `json:"recurrence_cycle"`
	Period int    `json:"recurrence_period"`
	DateTo string `json:"recurrence_date_to"`
	State  string `json:"recurrence_state,omitempty"`
}

// PaymentRequest is the input of CreatePayment and DemandRecurrence.
// Amount and item amounts are in cents. Missing OrderDescription,
// Currency and Lang are filled from the order number and the config
// defaults before sending.
type PaymentRequest struct {
	Payer            *Payer      `json:"payer,omitempty"`
	Target           *Target     `json:"target,omitempty"`
	Amount           int64       `json:"amount"`
	Currency         string      `json:"currency,omitempty"`
	OrderNumber      string      `json:"order_number"`
	OrderDescription string      `json:"order_description,omitempty"`
	Items            []Item      `json:"items"`
	Callback         *Callback   `json:"callback,omitempty"`
	Recurrence       *Recurrence `json:"recurrence,omitempty"`
	PreAuthorization bool        `json:"preauthorization,omitempty"`
	Lang             string      `json:"lang,omitempty"`
}

// Payment mirrors the gateway's payment JSON. Fields keep the
// gateway's own names; which of them are present depends on the
// operation (refund/capture/void responses carry only id and result).
type Payment struct {
	ID               int64       `json:"id"`
	OrderNumber      string      `json:"order_number,omitempty"`
	OrderDescription string      `json:"order_description,omitempty"`
	State            string      `json:"state,omitempty"`
	Result           string      `json:"result,omitempty"`
	Amount           int64       `json:"amount,omitempty"`
	Currency         string      `json:"currency,omitempty"`
	GwURL            string      `json:"gw_url,omitempty"`
	Payer            *Payer      `json:"payer,omitempty"`
	Target           *Target     `json:"target,omitempty"`
	Recurrence       *Recurrence `json:"recurrence,omitempty"`
	Lang             string      `json:"lang,omitempty"`
}
