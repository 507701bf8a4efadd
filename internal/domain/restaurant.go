package domain

type Restaurant struct {
	ID       uint         `json:"id"`
	Name     string       `json:"name"`
	Location string       `json:"location"`
	Hours    ServiceHours `json:"hours"`
}

// ServiceHours are display strings, e.g. "06h-10h".
type ServiceHours struct {
	Morning string `json:"morning"`
	Midday  string `json:"midday"`
	Evening string `json:"evening"`
}
