// Package catalog holds the entities owned by the external store: clients
// and the service menu. The engine reads them but never drives their
// lifecycle.
package catalog

// Client is the person an appointment is booked for.
type Client struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Phone     string `json:"phone,omitempty"`
	Instagram string `json:"instagram,omitempty"`
}

// Service is an entry in the salon's service menu.
type Service struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Category    string  `json:"category,omitempty"`
	Price       float64 `json:"price"`
	DurationMin int     `json:"duration_min"`
	Color       string  `json:"color,omitempty"`
	IsActive    bool    `json:"is_active"`
}
