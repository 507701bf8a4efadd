package gateway

import (
	"context"
	"fmt"
	"time"
)

const mobileMoneyLatency = 150 * time.Millisecond

// MobileMoneyGateway fronts the wave / orange_money providers. There is no
// sandbox for either provider, so the default implementation acknowledges
// the charge after a provider-like latency; the call shape, timeout and
// failure paths are the real ones.
type MobileMoneyGateway struct {
	now func() time.Time
}

func NewMobileMoneyGateway() *MobileMoneyGateway {
	return &MobileMoneyGateway{
		now: time.Now,
	}
}

func (g *MobileMoneyGateway) Charge(ctx context.Context, req ChargeRequest) (Receipt, error) {
	if req.PhoneNumber == "" {
		return Receipt{}, ErrPaymentDeclined
	}
	if req.Amount <= 0 {
		return Receipt{}, ErrPaymentDeclined
	}

	select {
	case <-ctx.Done():
		return Receipt{}, ctx.Err()
	case <-time.After(mobileMoneyLatency):
	}

	paidAt := g.now()

	return Receipt{
		Reference: fmt.Sprintf("%s-%d", req.Channel, paidAt.UnixNano()),
		Provider:  req.Channel,
		PaidAt:    paidAt,
	}, nil
}
