package models

import "time"

// Token is a bearer session record. A token whose ExpiresAt is in the past
// is invalid regardless of whether the record still exists; expiry is
// checked on use, not purged eagerly.
type Token struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Live reports whether the token is still valid at the given instant.
func (t Token) Live(now time.Time) bool {
	return t.ExpiresAt.After(now)
}
