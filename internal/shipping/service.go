package shipping

import (
	"context"

	"github.com/desuex/fba-shipping/internal/orders"
)

// FulfillmentAPI is the outbound surface the service needs. *Client is the
// production implementation; tests substitute fakes.
type FulfillmentAPI interface {
	CreateFulfillmentOrder(ctx context.Context, payload *FulfillmentPayload) error
	TrackingNumber(ctx context.Context, fulfillmentOrderID string) (string, error)
}

// Service turns inbound orders into fulfillment network submissions and
// answers tracking lookups. Stateless; safe for concurrent use.
type Service struct {
	client FulfillmentAPI
}

// NewService wires the service to a fulfillment API client.
func NewService(client FulfillmentAPI) *Service {
	return &Service{client: client}
}

// Ship validates and submits the order to the fulfillment network, returning
// the seller fulfillment order id on success. FBA assigns tracking numbers
// asynchronously after packing, so none is available here; callers poll the
// tracking endpoint with the returned id instead.
func (s *Service) Ship(ctx context.Context, order *orders.Order, buyer *orders.Buyer) (string, error) {
	orderData := prepareOrderData(order)

	fulfillmentOrderID, ok := orderData["order_unique"].(string)
	if !ok || fulfillmentOrderID == "" {
		return "", NewValidationError("Order unique ID is required")
	}

	payload, err := BuildPayload(orderData, buyer, fulfillmentOrderID)
	if err != nil {
		return "", err
	}

	if err := s.client.CreateFulfillmentOrder(ctx, payload); err != nil {
		return "", err
	}
	return fulfillmentOrderID, nil
}

// CheckTrackingStatus returns the order's tracking number if the fulfillment
// network has assigned one, or empty string while it is still processing.
func (s *Service) CheckTrackingStatus(ctx context.Context, fulfillmentOrderID string) (string, error) {
	return s.client.TrackingNumber(ctx, fulfillmentOrderID)
}

func prepareOrderData(order *orders.Order) map[string]any {
	if len(order.Data()) == 0 {
		order.Load()
	}
	return order.Data()
}
