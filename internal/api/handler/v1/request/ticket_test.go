package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPurchaseTicketsRequest_Validate(t *testing.T) {
	t.Run("accepts a mobile money purchase", func(t *testing.T) {
		req := PurchaseTicketsRequest{
			NdekkiCount: 2,
			RepasCount:  1,
			Channel:     "wave",
			PhoneNumber: "771234567",
		}
		assert.NoError(t, req.Validate())
	})

	t.Run("accepts a card purchase", func(t *testing.T) {
		req := PurchaseTicketsRequest{
			RepasCount: 1,
			Channel:    "card",
			CardToken:  "tok_visa",
		}
		assert.NoError(t, req.Validate())
	})

	t.Run("rejects zero tickets", func(t *testing.T) {
		req := PurchaseTicketsRequest{Channel: "wave", PhoneNumber: "771234567"}
		assert.ErrorIs(t, req.Validate(), errNoTickets)
	})

	t.Run("rejects an unknown channel", func(t *testing.T) {
		req := PurchaseTicketsRequest{NdekkiCount: 1, Channel: "cash"}
		assert.Error(t, req.Validate())
	})

	t.Run("mobile money needs a phone number", func(t *testing.T) {
		req := PurchaseTicketsRequest{NdekkiCount: 1, Channel: "orange_money"}
		assert.Error(t, req.Validate())
	})

	t.Run("card needs a token", func(t *testing.T) {
		req := PurchaseTicketsRequest{NdekkiCount: 1, Channel: "card"}
		assert.Error(t, req.Validate())
	})
}

func TestShareTicketsRequest_Validate(t *testing.T) {
	t.Run("accepts a share", func(t *testing.T) {
		req := ShareTicketsRequest{
			RecipientStudentNumber: "ESP2023002",
			NdekkiCount:            2,
		}
		assert.NoError(t, req.Validate())
	})

	t.Run("rejects a missing recipient", func(t *testing.T) {
		req := ShareTicketsRequest{NdekkiCount: 2}
		assert.Error(t, req.Validate())
	})

	t.Run("rejects zero tickets", func(t *testing.T) {
		req := ShareTicketsRequest{RecipientStudentNumber: "ESP2023002"}
		assert.ErrorIs(t, req.Validate(), errNoTickets)
	})
}
