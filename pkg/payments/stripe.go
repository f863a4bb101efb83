package payments

import (
	"context"
	"fmt"
	"math"

	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/paymentintent"
)

// Intent carries the client-facing result of a payment intent creation.
type Intent struct {
	ID           string
	ClientSecret string
	Amount       int64
	Currency     string
}

// Gateway abstracts the external payment provider.
type Gateway interface {
	CreateIntent(ctx context.Context, price float64) (*Intent, error)
}

// stripeGateway implements Gateway against the Stripe API.
type stripeGateway struct {
	currency string
}

// NewStripeGateway configures the Stripe SDK with the secret key.
func NewStripeGateway(secretKey, currency string) Gateway {
	stripe.Key = secretKey
	if currency == "" {
		currency = string(stripe.CurrencyUSD)
	}
	return &stripeGateway{currency: currency}
}

// MinorUnits converts a currency amount into integer minor units.
func MinorUnits(price float64) int64 {
	return int64(math.Round(price * 100))
}

// CreateIntent requests a card payment intent for the given amount.
// No idempotency key is attached; repeated calls create distinct intents.
func (g *stripeGateway) CreateIntent(ctx context.Context, price float64) (*Intent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(MinorUnits(price)),
		Currency:           stripe.String(g.currency),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	params.Context = ctx

	pi, err := paymentintent.New(params)
	if err != nil {
		return nil, fmt.Errorf("create payment intent: %w", err)
	}

	return &Intent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		Amount:       pi.Amount,
		Currency:     string(pi.Currency),
	}, nil
}
