package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/esp-dakar/espeat-api/internal/domain"
)

type CreateUserRequest struct {
	Email         string `json:"email"`
	Password      string `json:"password"`
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	Role          string `json:"role"`
	StudentNumber string `json:"student_number,omitempty"`
}

func (req *CreateUserRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.Email, validation.Required, is.Email),
		validation.Field(&req.Password, validation.Required),
		validation.Field(&req.FirstName, validation.Required),
		validation.Field(&req.LastName, validation.Required),
		validation.Field(&req.Role, validation.Required, validation.In(
			domain.RoleStudent, domain.RoleAgent, domain.RoleManager, domain.RoleRestaurateur,
		)),
	)
	if err != nil {
		return err
	}

	if req.Role == domain.RoleStudent && req.StudentNumber == "" {
		return errMissingStudentNumber
	}

	return nil
}

// UpdateUserRequest carries a partial update, absent fields stay untouched.
type UpdateUserRequest struct {
	Email         *string `json:"email,omitempty"`
	Password      *string `json:"password,omitempty"`
	FirstName     *string `json:"first_name,omitempty"`
	LastName      *string `json:"last_name,omitempty"`
	Role          *string `json:"role,omitempty"`
	StudentNumber *string `json:"student_number,omitempty"`
}

func (req *UpdateUserRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Email, is.Email),
		validation.Field(&req.Role, validation.In(
			domain.RoleStudent, domain.RoleAgent, domain.RoleManager, domain.RoleRestaurateur,
		)),
	)
}
