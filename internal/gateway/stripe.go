package gateway

import (
	"context"
	"fmt"
	"time"

	stripe "github.com/stripe/stripe-go/v72"
	"github.com/stripe/stripe-go/v72/client"

	"github.com/esp-dakar/espeat-api/internal/config"
)

// StripeGateway charges the card channel through Stripe PaymentIntents.
type StripeGateway struct {
	api *client.API
}

func NewStripeGateway(conf *config.StripeConfig) *StripeGateway {
	api := &client.API{}
	api.Init(conf.APIKey, nil)

	return &StripeGateway{
		api: api,
	}
}

func (g *StripeGateway) Charge(ctx context.Context, req ChargeRequest) (Receipt, error) {
	params := &stripe.PaymentIntentParams{
		Amount:        stripe.Int64(int64(req.Amount)),
		Currency:      stripe.String("xof"),
		PaymentMethod: stripe.String(req.CardToken),
		Confirm:       stripe.Bool(true),
		Description:   stripe.String(req.Description),
	}
	params.Context = ctx

	intent, err := g.api.PaymentIntents.New(params)
	if err != nil {
		return Receipt{}, fmt.Errorf("stripe.PaymentIntents.New -> %w", err)
	}

	if intent.Status != stripe.PaymentIntentStatusSucceeded {
		return Receipt{}, ErrPaymentDeclined
	}

	return Receipt{
		Reference: intent.ID,
		Provider:  "stripe",
		PaidAt:    time.Now(),
	}, nil
}
