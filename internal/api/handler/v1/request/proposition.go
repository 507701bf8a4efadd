package request

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/esp-dakar/espeat-api/internal/domain"
)

var errInvalidTargetDate = errors.New("target_date must be formatted as YYYY-MM-DD")

type SubmitPropositionRequest struct {
	RestaurantID uint   `json:"restaurant_id"`
	MenuType     string `json:"menu_type"`
	Content      string `json:"content"`
	TargetDate   string `json:"target_date"`
}

func (req *SubmitPropositionRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.RestaurantID, validation.Required),
		validation.Field(&req.MenuType, validation.Required, validation.In(
			string(domain.TicketNdekki), string(domain.TicketRepas),
		)),
		validation.Field(&req.Content, validation.Required, validation.Length(1, 500)),
		validation.Field(&req.TargetDate, validation.Required),
	)
	if err != nil {
		return err
	}

	if _, err := time.Parse(menuDateLayout, req.TargetDate); err != nil {
		return errInvalidTargetDate
	}

	return nil
}

// ParsedTargetDate assumes Validate has passed.
func (req *SubmitPropositionRequest) ParsedTargetDate() time.Time {
	date, _ := time.Parse(menuDateLayout, req.TargetDate)

	return date
}

type ReviewPropositionRequest struct {
	Decision string `json:"decision"`
	Reply    string `json:"reply,omitempty"`
}

func (req *ReviewPropositionRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Decision, validation.Required, validation.In(
			domain.PropositionAccepted, domain.PropositionRefused,
		)),
		validation.Field(&req.Reply, validation.Length(0, 500)),
	)
}
