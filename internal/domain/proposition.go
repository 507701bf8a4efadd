package domain

import "time"

const (
	PropositionPending  = "pending"
	PropositionAccepted = "accepted"
	PropositionRefused  = "refused"
)

// MenuProposition is a student-submitted menu suggestion reviewed by the
// restaurateur of the target restaurant.
type MenuProposition struct {
	ID           uint       `json:"id"`
	StudentID    uint       `json:"student_id"`
	StudentName  string     `json:"student_name,omitempty"`
	RestaurantID uint       `json:"restaurant_id"`
	MenuType     TicketType `json:"menu_type"`
	Content      string     `json:"content"`
	TargetDate   time.Time  `json:"target_date"`
	Status       string     `json:"status"`
	Reply        string     `json:"reply,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (p *MenuProposition) Accept(reply string) {
	if p.Status == PropositionPending {
		p.Status = PropositionAccepted
		p.Reply = reply
	}
}

func (p *MenuProposition) Refuse(reply string) {
	if p.Status == PropositionPending {
		p.Status = PropositionRefused
		p.Reply = reply
	}
}
