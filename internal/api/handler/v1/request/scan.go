package request

import (
	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/esp-dakar/espeat-api/internal/domain"
)

type ScanTicketRequest struct {
	StudentNumber string `json:"student_number"`
	TicketType    string `json:"ticket_type"`
	Count         int    `json:"count"`
}

func (req *ScanTicketRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.StudentNumber, validation.Required),
		validation.Field(&req.TicketType, validation.Required, validation.In(
			string(domain.TicketNdekki), string(domain.TicketRepas),
		)),
		validation.Field(&req.Count, validation.Required, validation.Min(1)),
	)
}
