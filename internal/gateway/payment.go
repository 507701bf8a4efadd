package gateway

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/esp-dakar/espeat-api/internal/config"
	"github.com/esp-dakar/espeat-api/internal/domain"
)

var (
	ErrPaymentDeclined    = errors.New("payment declined by provider")
	ErrUnsupportedChannel = errors.New("unsupported payment channel")
)

type ChargeRequest struct {
	Amount      int    // integer currency units
	Channel     string // "wave", "orange_money", or "card"
	PhoneNumber string
	CardToken   string // card channel only
	Description string
}

type Receipt struct {
	Reference string
	Provider  string
	PaidAt    time.Time
}

// PaymentGateway is the request/response boundary in front of the payment
// providers. Implementations must respect ctx cancellation; callers own the
// retry policy.
type PaymentGateway interface {
	Charge(ctx context.Context, req ChargeRequest) (Receipt, error)
}

// Router dispatches a charge to the provider matching its channel and
// retries transient failures with a bounded, per-attempt timeout.
type Router struct {
	card        PaymentGateway
	mobileMoney PaymentGateway

	attemptTimeout time.Duration
	maxAttempts    int
	retryDelay     time.Duration
}

func NewRouter(conf *config.PaymentConfig, card, mobileMoney PaymentGateway) *Router {
	return &Router{
		card:           card,
		mobileMoney:    mobileMoney,
		attemptTimeout: time.Duration(conf.AttemptTimeoutSeconds) * time.Second,
		maxAttempts:    conf.MaxAttempts,
		retryDelay:     time.Duration(conf.RetryDelayMs) * time.Millisecond,
	}
}

func (r *Router) Charge(ctx context.Context, req ChargeRequest) (Receipt, error) {
	var provider PaymentGateway
	switch req.Channel {
	case domain.ChannelCard:
		provider = r.card
	case domain.ChannelWave, domain.ChannelOrangeMoney:
		provider = r.mobileMoney
	default:
		return Receipt{}, ErrUnsupportedChannel
	}

	var lastErr error
	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		attemptCtx, cancel := context.WithTimeout(ctx, r.attemptTimeout)
		receipt, err := provider.Charge(attemptCtx, req)
		cancel()

		if err == nil {
			return receipt, nil
		}

		// A decline is final; only transient failures are retried.
		if errors.Is(err, ErrPaymentDeclined) {
			return Receipt{}, err
		}

		lastErr = err
		zap.L().Warn("payment attempt failed",
			zap.String("channel", req.Channel),
			zap.Int("attempt", attempt),
			zap.Error(err),
		)

		if attempt < r.maxAttempts {
			select {
			case <-ctx.Done():
				return Receipt{}, ctx.Err()
			case <-time.After(r.retryDelay):
			}
		}
	}

	return Receipt{}, fmt.Errorf("payment failed after %d attempts -> %w", r.maxAttempts, lastErr)
}
