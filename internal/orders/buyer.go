package orders

// Buyer is the purchaser record attached to a ship request: a display name
// plus whatever attributes the shop sent along.
type Buyer struct {
	// Name is the buyer's display name, taken from shop_username. Empty when
	// the shop did not supply one; the payload builder then falls back to the
	// order's own buyer_name field.
	Name string

	data map[string]any
}

// NewBuyer wraps a raw buyer attribute map.
func NewBuyer(data map[string]any) *Buyer {
	b := &Buyer{data: data}
	if name, ok := data["shop_username"].(string); ok {
		b.Name = name
	}
	return b
}

// Get looks up a buyer attribute by key.
func (b *Buyer) Get(key string) (any, bool) {
	v, ok := b.data[key]
	return v, ok
}

// Has reports whether the buyer attribute exists.
func (b *Buyer) Has(key string) bool {
	_, ok := b.data[key]
	return ok
}
