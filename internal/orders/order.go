package orders

// Order wraps a numeric order id and the raw key-value payload that came with
// it. The payload is heterogeneous by nature (shop exports differ), so beyond
// the id everything is reached through accessors over an open map. Orders are
// immutable after construction aside from the lazy Load.
type Order struct {
	id     int
	data   map[string]any
	loader func(id int) map[string]any
}

// NewOrder wraps an id and an already-loaded payload.
func NewOrder(id int, data map[string]any) *Order {
	return &Order{id: id, data: data}
}

// NewAPIOrder builds an order from an inbound API request. The payload is
// supplied at construction; Load is a no-op in this variant, kept so callers
// can treat API-driven and store-driven orders uniformly.
func NewAPIOrder(id int, payload map[string]any) *Order {
	return &Order{
		id:   id,
		data: payload,
		loader: func(int) map[string]any {
			return payload
		},
	}
}

// ID returns the numeric order identifier, distinct from the payload.
func (o *Order) ID() int { return o.id }

// Data returns the raw payload map. Callers must not mutate it.
func (o *Order) Data() map[string]any { return o.data }

// Load fills the payload from the order's data source if it was not supplied
// up front. Deployments where order data lives elsewhere plug in via the
// loader; with API-driven orders the data is always already present.
func (o *Order) Load() {
	if len(o.data) > 0 || o.loader == nil {
		return
	}
	o.data = o.loader(o.id)
}

// Get looks up a payload field by key.
func (o *Order) Get(key string) (any, bool) {
	v, ok := o.data[key]
	return v, ok
}

// String looks up a payload field and returns it only if it is a non-empty
// string.
func (o *Order) String(key string) (string, bool) {
	v, ok := o.data[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}
