package request

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/esp-dakar/espeat-api/internal/domain"
)

var errNoTickets = errors.New("at least one ticket is required")

type PurchaseTicketsRequest struct {
	NdekkiCount int    `json:"ndekki_count"`
	RepasCount  int    `json:"repas_count"`
	Channel     string `json:"channel"`
	PhoneNumber string `json:"phone_number,omitempty"`
	CardToken   string `json:"card_token,omitempty"`
}

func (req *PurchaseTicketsRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.NdekkiCount, validation.Min(0)),
		validation.Field(&req.RepasCount, validation.Min(0)),
		validation.Field(&req.Channel, validation.Required, validation.In(
			domain.ChannelWave, domain.ChannelOrangeMoney, domain.ChannelCard,
		)),
	)
	if err != nil {
		return err
	}

	if req.NdekkiCount <= 0 && req.RepasCount <= 0 {
		return errNoTickets
	}

	switch req.Channel {
	case domain.ChannelWave, domain.ChannelOrangeMoney:
		return validation.ValidateStruct(req,
			validation.Field(&req.PhoneNumber, validation.Required),
		)
	case domain.ChannelCard:
		return validation.ValidateStruct(req,
			validation.Field(&req.CardToken, validation.Required),
		)
	}

	return nil
}

type ShareTicketsRequest struct {
	RecipientStudentNumber string `json:"recipient_student_number"`
	NdekkiCount            int    `json:"ndekki_count"`
	RepasCount             int    `json:"repas_count"`
}

func (req *ShareTicketsRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.RecipientStudentNumber, validation.Required),
		validation.Field(&req.NdekkiCount, validation.Min(0)),
		validation.Field(&req.RepasCount, validation.Min(0)),
	)
	if err != nil {
		return err
	}

	if req.NdekkiCount <= 0 && req.RepasCount <= 0 {
		return errNoTickets
	}

	return nil
}
