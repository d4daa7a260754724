// Command gopay is a small demo client for manual testing against the
// GoPay sandbox. Credentials come from GOPAY_* environment variables
// (or a .env file).
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	gopayrest "github.com/vikijel/gopayrest"
	"github.com/vikijel/gopayrest/config"
	"github.com/vikijel/gopayrest/pkg/logging"
	"github.com/vikijel/gopayrest/pkg/money"
)

func main() {
	var (
		op        = flag.String("op", "state", "operation: create, state, refund, capture, void, void-recurrence")
		paymentID = flag.Int64("id", 0, "payment id (state/refund/capture/void)")
		amount    = flag.String("amount", "", "amount in major units, e.g. 10.50 (create; optional for refund)")
		order     = flag.String("order", "", "order number (create)")
		name      = flag.String("name", "", "item name (create)")
		returnURL = flag.String("return-url", "", "callback return url (create)")
		notifyURL = flag.String("notify-url", "", "callback notification url (create)")
	)
	flag.Parse()

	if err := run(*op, *paymentID, *amount, *order, *name, *returnURL, *notifyURL); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(op string, paymentID int64, amount, order, name, returnURL, notifyURL string) error {
	settings, err := config.Load()
	if err != nil {
		return err
	}

	cfg, err := settings.Config()
	if err != nil {
		return err
	}

	logger, err := logging.NewDevelopment()
	if err != nil {
		return err
	}

	client := gopayrest.New(cfg, gopayrest.WithLogger(logger))
	ctx := context.Background()

	var payment *gopayrest.Payment

	switch op {
	case "create":
		cents, err := money.ParseMajor(amount)
		if err != nil {
			return fmt.Errorf("invalid amount: %w", err)
		}
		payment, err = client.CreatePayment(ctx, &gopayrest.PaymentRequest{
			Amount:      cents,
			OrderNumber: order,
			Items:       []gopayrest.Item{{Name: name, Amount: cents}},
			Callback: &gopayrest.Callback{
				ReturnURL:       returnURL,
				NotificationURL: notifyURL,
			},
		})
		if err != nil {
			return err
		}

	case "state":
		payment, err = client.PaymentState(ctx, paymentID)
		if err != nil {
			return err
		}

	case "refund":
		var cents int64
		if amount != "" {
			cents, err = money.ParseMajor(amount)
			if err != nil {
				return fmt.Errorf("invalid amount: %w", err)
			}
		}
		payment, err = client.RefundPayment(ctx, paymentID, cents)
		if err != nil {
			return err
		}

	case "capture":
		payment, err = client.CapturePreauthorizedPayment(ctx, paymentID)
		if err != nil {
			return err
		}

	case "void":
		payment, err = client.VoidPreauthorizedPayment(ctx, paymentID)
		if err != nil {
			return err
		}

	case "void-recurrence":
		payment, err = client.VoidRecurrence(ctx, paymentID)
		if err != nil {
			return err
		}

	default:
		return fmt.Errorf("unknown operation %q", op)
	}

	out, err := json.MarshalIndent(payment, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))

	return nil
}
