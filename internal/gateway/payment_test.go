package gateway

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/esp-dakar/espeat-api/internal/config"
	"github.com/esp-dakar/espeat-api/internal/domain"
)

type scriptedGateway struct {
	results []error
	calls   int
}

func (g *scriptedGateway) Charge(ctx context.Context, req ChargeRequest) (Receipt, error) {
	if err := ctx.Err(); err != nil {
		return Receipt{}, err
	}

	err := g.results[g.calls]
	g.calls++
	if err != nil {
		return Receipt{}, err
	}

	return Receipt{Reference: "ok", Provider: req.Channel}, nil
}

type slowGateway struct{}

func (slowGateway) Charge(ctx context.Context, _ ChargeRequest) (Receipt, error) {
	<-ctx.Done()

	return Receipt{}, ctx.Err()
}

func testRouterConfig() *config.PaymentConfig {
	return &config.PaymentConfig{
		AttemptTimeoutSeconds: 1,
		MaxAttempts:           3,
		RetryDelayMs:          1,
	}
}

func TestRouter_Charge(t *testing.T) {
	t.Run("routes card charges to the card provider", func(t *testing.T) {
		card := &scriptedGateway{results: []error{nil}}
		mobile := &scriptedGateway{results: []error{nil}}
		router := NewRouter(testRouterConfig(), card, mobile)

		_, err := router.Charge(context.Background(), ChargeRequest{
			Amount:    100,
			Channel:   domain.ChannelCard,
			CardToken: "tok_visa",
		})

		require.NoError(t, err)
		assert.Equal(t, 1, card.calls)
		assert.Zero(t, mobile.calls)
	})

	t.Run("routes wave and orange_money to the mobile provider", func(t *testing.T) {
		for _, channel := range []string{domain.ChannelWave, domain.ChannelOrangeMoney} {
			card := &scriptedGateway{results: []error{nil}}
			mobile := &scriptedGateway{results: []error{nil}}
			router := NewRouter(testRouterConfig(), card, mobile)

			_, err := router.Charge(context.Background(), ChargeRequest{
				Amount:      100,
				Channel:     channel,
				PhoneNumber: "771234567",
			})

			require.NoError(t, err)
			assert.Equal(t, 1, mobile.calls)
			assert.Zero(t, card.calls)
		}
	})

	t.Run("retries transient failures", func(t *testing.T) {
		transient := errors.New("connection reset")
		mobile := &scriptedGateway{results: []error{transient, transient, nil}}
		router := NewRouter(testRouterConfig(), &scriptedGateway{}, mobile)

		receipt, err := router.Charge(context.Background(), ChargeRequest{
			Amount:      100,
			Channel:     domain.ChannelWave,
			PhoneNumber: "771234567",
		})

		require.NoError(t, err)
		assert.Equal(t, "ok", receipt.Reference)
		assert.Equal(t, 3, mobile.calls)
	})

	t.Run("gives up after max attempts", func(t *testing.T) {
		transient := errors.New("connection reset")
		mobile := &scriptedGateway{results: []error{transient, transient, transient}}
		router := NewRouter(testRouterConfig(), &scriptedGateway{}, mobile)

		_, err := router.Charge(context.Background(), ChargeRequest{
			Amount:      100,
			Channel:     domain.ChannelWave,
			PhoneNumber: "771234567",
		})

		require.Error(t, err)
		assert.ErrorIs(t, err, transient)
		assert.Equal(t, 3, mobile.calls)
	})

	t.Run("a decline is final", func(t *testing.T) {
		mobile := &scriptedGateway{results: []error{ErrPaymentDeclined}}
		router := NewRouter(testRouterConfig(), &scriptedGateway{}, mobile)

		_, err := router.Charge(context.Background(), ChargeRequest{
			Amount:      100,
			Channel:     domain.ChannelWave,
			PhoneNumber: "771234567",
		})

		assert.ErrorIs(t, err, ErrPaymentDeclined)
		assert.Equal(t, 1, mobile.calls)
	})

	t.Run("rejects an unknown channel", func(t *testing.T) {
		router := NewRouter(testRouterConfig(), &scriptedGateway{}, &scriptedGateway{})

		_, err := router.Charge(context.Background(), ChargeRequest{
			Amount:  100,
			Channel: "cash",
		})

		assert.ErrorIs(t, err, ErrUnsupportedChannel)
	})

	t.Run("attempt timeout cancels a hanging provider", func(t *testing.T) {
		conf := &config.PaymentConfig{
			AttemptTimeoutSeconds: 1,
			MaxAttempts:           1,
			RetryDelayMs:          1,
		}
		router := NewRouter(conf, &scriptedGateway{}, slowGateway{})

		start := time.Now()
		_, err := router.Charge(context.Background(), ChargeRequest{
			Amount:      100,
			Channel:     domain.ChannelWave,
			PhoneNumber: "771234567",
		})

		require.Error(t, err)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
		assert.Less(t, time.Since(start), 3*time.Second)
	})
}

func TestMobileMoneyGateway_Charge(t *testing.T) {
	t.Run("acknowledges a well-formed charge", func(t *testing.T) {
		gw := NewMobileMoneyGateway()

		receipt, err := gw.Charge(context.Background(), ChargeRequest{
			Amount:      150,
			Channel:     domain.ChannelOrangeMoney,
			PhoneNumber: "771234567",
		})

		require.NoError(t, err)
		assert.Equal(t, domain.ChannelOrangeMoney, receipt.Provider)
		assert.NotEmpty(t, receipt.Reference)
	})

	t.Run("declines a missing phone number", func(t *testing.T) {
		gw := NewMobileMoneyGateway()

		_, err := gw.Charge(context.Background(), ChargeRequest{
			Amount:  150,
			Channel: domain.ChannelWave,
		})

		assert.ErrorIs(t, err, ErrPaymentDeclined)
	})

	t.Run("declines a non-positive amount", func(t *testing.T) {
		gw := NewMobileMoneyGateway()

		_, err := gw.Charge(context.Background(), ChargeRequest{
			Channel:     domain.ChannelWave,
			PhoneNumber: "771234567",
		})

		assert.ErrorIs(t, err, ErrPaymentDeclined)
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		gw := NewMobileMoneyGateway()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := gw.Charge(ctx, ChargeRequest{
			Amount:      150,
			Channel:     domain.ChannelWave,
			PhoneNumber: "771234567",
		})

		assert.ErrorIs(t, err, context.Canceled)
	})
}
