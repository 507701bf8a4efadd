package domain

import "time"

const (
	ScanValid   = "valid"
	ScanInvalid = "invalid"
)

// TicketScan records one validation attempt at the restaurant entrance.
// Invalid attempts are kept too, with StudentID left nil when the student
// number did not resolve.
type TicketScan struct {
	ID            uint       `json:"id"`
	AgentID       uint       `json:"agent_id"`
	StudentID     *uint      `json:"student_id,omitempty"`
	StudentName   string     `json:"student_name,omitempty"`
	StudentNumber string     `json:"student_number"`
	TicketType    TicketType `json:"ticket_type"`
	Count         int        `json:"count"`
	Status        string     `json:"status"`
	CreatedAt     time.Time  `json:"created_at"`
}
