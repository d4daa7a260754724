package gopayrest

import (
	"html/template"
	"strings"
)

// DefaultPaymentButtonLabel is used when PaymentForm gets no label
const DefaultPaymentButtonLabel = "Zaplatit"

var paymentFormTemplate = template.Must(template.New("gopay-payment-form").Parse(
	`<form action="{{.GwURL}}" method="post" id="gopay-payment-button">
	<button name="pay" type="submit">{{.Label}}</button>
	<script type="text/javascript" src="{{.JSURL}}"></script>
</form>`))

// PaymentForm renders the checkout redirect snippet: a form posting to
// the payment's GwURL (from CreatePayment) with the mode-appropriate
// gateway script attached
func (c *Client) PaymentForm(gwURL, label string) (string, error) {
	if label == "" {
		label = DefaultPaymentButtonLabel
	}

	var out strings.Builder
	err := paymentFormTemplate.Execute(&out, struct {
		GwURL string
		Label string
		JSURL string
	}{
		GwURL: gwURL,
		Label: label,
		JSURL: c.cfg.JSURL(),
	})
	if err != nil {
		return "", err
	}

	return out.String(), nil
}
