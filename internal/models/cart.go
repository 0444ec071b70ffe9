package models

// CartItem is one line of a shopping cart. A cart holds at most one line per
// distinct menu item; repeat adds merge into the existing line.
type CartItem struct {
	MenuItem string `json:"menuItem"`
	Quantity int    `json:"quantity"`
}

// Cart is the ordered list of lines, persisted keyed by the owner's email.
// Insertion order is preserved.
type Cart []CartItem
