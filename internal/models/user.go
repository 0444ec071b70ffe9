package models

// User is a customer account, stored one file per email address.
//
// HashedPassword carries the keyed password hash inside the store; it is
// cleared before the user is ever written to a response, and omitempty keeps
// the cleared field out of the wire shape.
type User struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	HashedPassword string `json:"hashedPassword,omitempty"`
	StreetAddress  string `json:"streetAddress"`
}
