package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validSignup() SignupRequest {
	return SignupRequest{
		Email:           "aminata.diop@esp.sn",
		Password:        "passer123",
		ConfirmPassword: "passer123",
		FirstName:       "Aminata",
		LastName:        "Diop",
		Role:            "student",
		StudentNumber:   "ESP2023001",
	}
}

func TestSignupRequest_Validate(t *testing.T) {
	t.Run("accepts a well-formed request", func(t *testing.T) {
		req := validSignup()
		assert.NoError(t, req.Validate())
	})

	t.Run("rejects a malformed email", func(t *testing.T) {
		req := validSignup()
		req.Email = "not-an-email"
		assert.Error(t, req.Validate())
	})

	t.Run("rejects an unknown role", func(t *testing.T) {
		req := validSignup()
		req.Role = "admin"
		assert.Error(t, req.Validate())
	})

	t.Run("password needs a letter, a digit and 8 characters", func(t *testing.T) {
		for _, password := range []string{"short1", "onlyletters", "12345678"} {
			req := validSignup()
			req.Password = password
			req.ConfirmPassword = password
			assert.ErrorIs(t, req.Validate(), errInvalidPassword, password)
		}
	})

	t.Run("rejects a confirm password mismatch", func(t *testing.T) {
		req := validSignup()
		req.ConfirmPassword = "different123"
		assert.ErrorIs(t, req.Validate(), errConfirmPasswordMismatch)
	})

	t.Run("students need a student number", func(t *testing.T) {
		req := validSignup()
		req.StudentNumber = ""
		assert.ErrorIs(t, req.Validate(), errMissingStudentNumber)
	})

	t.Run("non-students do not", func(t *testing.T) {
		req := validSignup()
		req.Role = "agent"
		req.StudentNumber = ""
		assert.NoError(t, req.Validate())
	})
}

func TestLoginRequest_Validate(t *testing.T) {
	t.Run("accepts email and password", func(t *testing.T) {
		req := LoginRequest{Email: "aminata.diop@esp.sn", Password: "passer123"}
		assert.NoError(t, req.Validate())
	})

	t.Run("rejects missing fields", func(t *testing.T) {
		assert.Error(t, (&LoginRequest{Email: "aminata.diop@esp.sn"}).Validate())
		assert.Error(t, (&LoginRequest{Password: "passer123"}).Validate())
	})
}
