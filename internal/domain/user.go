package domain

import "time"

const (
	RoleStudent      = "student"
	RoleAgent        = "agent"
	RoleManager      = "manager"
	RoleRestaurateur = "restaurateur"
)

var Roles = []string{RoleStudent, RoleAgent, RoleManager, RoleRestaurateur}

type User struct {
	ID            uint      `json:"id"`
	Email         string    `json:"email"`
	Password      string    `json:"-"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	Role          string    `json:"role"`
	StudentNumber string    `json:"student_number,omitempty"`
	Balance       Balance   `json:"balance"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Balance holds the meal-ticket counts of a student. Ndekki is the light
// (breakfast) ticket, repas the full-meal one. Non-students keep zeroes.
type Balance struct {
	Ndekki int `json:"ndekki"`
	Repas  int `json:"repas"`
}

func (u User) IsStudent() bool {
	return u.Role == RoleStudent
}

func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}
