package validation

// ShipRequest is the payload for POST /api/ship. Order and buyer arrive as
// open maps: beyond the handful of fields the payload builder reads, shop
// integrations attach arbitrary keys that pass through untouched.
type ShipRequest struct {
	Order map[string]any `json:"order" validate:"required"`
	Buyer map[string]any `json:"buyer" validate:"required"`
}
