package models

// Order is computed on demand from user, cart, and menu prices; it is never
// persisted by this service.
type Order struct {
	Email         string `json:"email"`
	StreetAddress string `json:"streetAddress"`
	Products      Cart   `json:"products"`
	TotalPrice    int    `json:"totalPrice"`
	Currency      string `json:"currency"`
}
