// Package payments adapts external payment processors to
// services.PaymentProcessor.
package payments

import (
	"context"
	"errors"

	"github.com/ahmetcoskunkizilkaya/lapsell-backend/internal/services"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
)

var ErrNotConfigured = errors.New("payment processor is not configured")

// Stripe creates card payment intents through the Stripe API.
type Stripe struct {
	client *paymentintent.Client
}

// New returns a Stripe processor, or a processor that always fails with
// ErrNotConfigured when secretKey is empty.
func New(secretKey string) services.PaymentProcessor {
	if secretKey == "" {
		return unconfigured{}
	}
	return &Stripe{
		client: &paymentintent.Client{
			B:   stripe.GetBackend(stripe.APIBackend),
			Key: secretKey,
		},
	}
}

func (s *Stripe) CreatePaymentIntent(ctx context.Context, req services.PaymentIntentRequest) (string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(req.Amount),
		Currency:           stripe.String(req.Currency),
		PaymentMethodTypes: stripe.StringSlice(req.PaymentMethodTypes),
	}
	params.Context = ctx

	intent, err := s.client.New(params)
	if err != nil {
		return "", err
	}
	return intent.ClientSecret, nil
}

type unconfigured struct{}

func (unconfigured) CreatePaymentIntent(context.Context, services.PaymentIntentRequest) (string, error) {
	return "", ErrNotConfigured
}
