package request

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
)

const menuDateLayout = "2006-01-02"

var errInvalidMenuDate = errors.New("date must be formatted as YYYY-MM-DD")

type SaveMenuRequest struct {
	Date         string   `json:"date"`
	NdekkiDishes []string `json:"ndekki_dishes"`
	RepasDishes  []string `json:"repas_dishes"`
}

func (req *SaveMenuRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.Date, validation.Required),
		validation.Field(&req.NdekkiDishes, validation.Required, validation.Each(validation.Required)),
		validation.Field(&req.RepasDishes, validation.Required, validation.Each(validation.Required)),
	)
	if err != nil {
		return err
	}

	if _, err := time.Parse(menuDateLayout, req.Date); err != nil {
		return errInvalidMenuDate
	}

	return nil
}

// ParsedDate assumes Validate has passed.
func (req *SaveMenuRequest) ParsedDate() time.Time {
	date, _ := time.Parse(menuDateLayout, req.Date)

	return date
}
