package request

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveMenuRequest_Validate(t *testing.T) {
	valid := SaveMenuRequest{
		Date:         "2025-01-15",
		NdekkiDishes: []string{"Pain + Lait + Stick de café"},
		RepasDishes:  []string{"Thiéboudienne", "Yassa Poulet"},
	}

	t.Run("accepts a complete menu", func(t *testing.T) {
		require.NoError(t, valid.Validate())
		assert.Equal(t, time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), valid.ParsedDate())
	})

	t.Run("rejects a missing date", func(t *testing.T) {
		req := valid
		req.Date = ""
		assert.Error(t, req.Validate())
	})

	t.Run("rejects a malformed date", func(t *testing.T) {
		req := valid
		req.Date = "15/01/2025"
		assert.ErrorIs(t, req.Validate(), errInvalidMenuDate)
	})

	t.Run("rejects empty dish lists", func(t *testing.T) {
		req := valid
		req.NdekkiDishes = nil
		assert.Error(t, req.Validate())

		req = valid
		req.RepasDishes = []string{}
		assert.Error(t, req.Validate())
	})

	t.Run("rejects a blank dish", func(t *testing.T) {
		req := valid
		req.RepasDishes = []string{"Thiéboudienne", ""}
		assert.Error(t, req.Validate())
	})
}

func TestSubmitPropositionRequest_Validate(t *testing.T) {
	valid := SubmitPropositionRequest{
		RestaurantID: 1,
		MenuType:     "repas",
		Content:      "Ajouter du Ngalax comme dessert",
		TargetDate:   "2025-01-20",
	}

	t.Run("accepts a complete proposition", func(t *testing.T) {
		assert.NoError(t, valid.Validate())
	})

	t.Run("rejects an unknown menu type", func(t *testing.T) {
		req := valid
		req.MenuType = "dessert"
		assert.Error(t, req.Validate())
	})

	t.Run("rejects empty content", func(t *testing.T) {
		req := valid
		req.Content = ""
		assert.Error(t, req.Validate())
	})

	t.Run("rejects a malformed target date", func(t *testing.T) {
		req := valid
		req.TargetDate = "someday"
		assert.ErrorIs(t, req.Validate(), errInvalidTargetDate)
	})
}

func TestReviewPropositionRequest_Validate(t *testing.T) {
	assert.NoError(t, (&ReviewPropositionRequest{Decision: "accepted"}).Validate())
	assert.NoError(t, (&ReviewPropositionRequest{Decision: "refused", Reply: "ok"}).Validate())
	assert.Error(t, (&ReviewPropositionRequest{}).Validate())
	assert.Error(t, (&ReviewPropositionRequest{Decision: "maybe"}).Validate())
}

func TestScanTicketRequest_Validate(t *testing.T) {
	valid := ScanTicketRequest{
		StudentNumber: "ESP2023001",
		TicketType:    "ndekki",
		Count:         1,
	}

	assert.NoError(t, valid.Validate())

	req := valid
	req.StudentNumber = ""
	assert.Error(t, req.Validate())

	req = valid
	req.TicketType = "brunch"
	assert.Error(t, req.Validate())

	req = valid
	req.Count = 0
	assert.Error(t, req.Validate())
}
