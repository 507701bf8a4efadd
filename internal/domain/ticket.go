package domain

import "time"

type TicketType string

const (
	TicketNdekki TicketType = "ndekki"
	TicketRepas  TicketType = "repas"
)

// Unit prices in integer currency units (CFA francs). A repas ticket costs
// exactly double a ndekki ticket.
const (
	PriceNdekki = 50
	PriceRepas  = 100
)

const (
	ChannelWave        = "wave"
	ChannelOrangeMoney = "orange_money"
	ChannelCard        = "card"
)

type TicketPurchase struct {
	ID          uint      `json:"id"`
	UserID      uint      `json:"user_id"`
	NdekkiCount int       `json:"ndekki_count"`
	RepasCount  int       `json:"repas_count"`
	Amount      int       `json:"amount"`
	Channel     string    `json:"channel"`
	PhoneNumber string    `json:"phone_number,omitempty"`
	Reference   string    `json:"reference"`
	CreatedAt   time.Time `json:"created_at"`
}

// TotalPrice is the server-side price computation: count times fixed unit
// price per type, summed.
func TotalPrice(ndekkiCount, repasCount int) int {
	return ndekkiCount*PriceNdekki + repasCount*PriceRepas
}

type TicketShare struct {
	ID            uint      `json:"id"`
	SenderID      uint      `json:"sender_id"`
	RecipientID   uint      `json:"recipient_id"`
	RecipientName string    `json:"recipient_name,omitempty"`
	NdekkiCount   int       `json:"ndekki_count"`
	RepasCount    int       `json:"repas_count"`
	CreatedAt     time.Time `json:"created_at"`
}
