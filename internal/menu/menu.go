// Package menu holds the static, read-only pizza catalog.
package menu

// Item is one orderable product. Prices are whole currency units.
type Item struct {
	Name  string `json:"name"`
	Price int    `json:"price"`
}

// Catalog is an immutable set of menu items with index lookups.
type Catalog struct {
	items []Item
	price map[string]int
}

// NewCatalog builds a catalog from the given items. The slice is copied.
func NewCatalog(items []Item) *Catalog {
	c := &Catalog{
		items: make([]Item, len(items)),
		price: make(map[string]int, len(items)),
	}
	copy(c.items, items)
	for _, item := range items {
		c.price[item.Name] = item.Price
	}
	return c
}

// Default returns the production menu.
func Default() *Catalog {
	return NewCatalog([]Item{
		{Name: "Margherita", Price: 179},
		{Name: "Prosciutto", Price: 219},
		{Name: "Quattro Formaggi", Price: 239},
		{Name: "Diavola", Price: 229},
		{Name: "Hawaii", Price: 209},
		{Name: "Vegetariana", Price: 199},
	})
}

// Items returns the catalog contents in menu order.
func (c *Catalog) Items() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// Has reports whether an item with the given name is on the menu.
func (c *Catalog) Has(name string) bool {
	_, ok := c.price[name]
	return ok
}

// Price returns the unit price of the named item.
func (c *Catalog) Price(name string) (int, bool) {
	p, ok := c.price[name]
	return p, ok
}
