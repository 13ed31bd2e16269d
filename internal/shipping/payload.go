package shipping

import (
	"strconv"
	"time"

	"github.com/desuex/fba-shipping/internal/orders"
)

// shippingSpeedCategory is fixed: nothing in the inbound order selects a speed.
const shippingSpeedCategory = "Standard"

const defaultOrderComment = "Thank you for your order"

// FulfillmentPayload is the createFulfillmentOrder request body.
type FulfillmentPayload struct {
	SellerFulfillmentOrderID string             `json:"sellerFulfillmentOrderId"`
	DisplayableOrderID       string             `json:"displayableOrderId"`
	DisplayableOrderDate     string             `json:"displayableOrderDate"`
	DisplayableOrderComment  string             `json:"displayableOrderComment"`
	ShippingSpeedCategory    string             `json:"shippingSpeedCategory"`
	DestinationAddress       DestinationAddress `json:"destinationAddress"`
	Items                    []Item             `json:"items"`
}

// DestinationAddress is the ship-to block. AddressLine1, City and CountryCode
// are required by the FBA API; the rest may be empty.
type DestinationAddress struct {
	Name          string `json:"name"`
	AddressLine1  string `json:"addressLine1"`
	City          string `json:"city"`
	StateOrRegion string `json:"stateOrRegion"`
	PostalCode    string `json:"postalCode"`
	CountryCode   string `json:"countryCode"`
}

// Item is one fulfillment order line.
type Item struct {
	SellerSKU                    string `json:"sellerSku"`
	SellerFulfillmentOrderItemID string `json:"sellerFulfillmentOrderItemId"`
	Quantity                     int    `json:"quantity"`
}

// date layouts accepted for order_date, tried in order.
var orderDateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// BuildPayload maps raw order data plus the buyer record into the FBA request
// shape. Pure: no I/O, no mutation of the inputs. Required address fields are
// checked here so a bad order fails before any network call.
func BuildPayload(orderData map[string]any, buyer *orders.Buyer, fulfillmentOrderID string) (*FulfillmentPayload, error) {
	name := stringField(orderData, "buyer_name")
	if name == "" && buyer != nil {
		name = buyer.Name
	}

	street := stringField(orderData, "shipping_street")
	if street == "" {
		return nil, NewValidationError("Missing Street")
	}
	city := stringField(orderData, "shipping_city")
	if city == "" {
		return nil, NewValidationError("Missing City")
	}
	country := stringField(orderData, "shipping_country")
	if country == "" {
		return nil, NewValidationError("Missing Country")
	}

	comment := stringField(orderData, "comments")
	if comment == "" {
		comment = defaultOrderComment
	}

	return &FulfillmentPayload{
		SellerFulfillmentOrderID: fulfillmentOrderID,
		DisplayableOrderID:       fulfillmentOrderID,
		DisplayableOrderDate:     orderDate(orderData),
		DisplayableOrderComment:  comment,
		ShippingSpeedCategory:    shippingSpeedCategory,
		DestinationAddress: DestinationAddress{
			Name:          name,
			AddressLine1:  street,
			City:          city,
			StateOrRegion: stringField(orderData, "shipping_state"),
			PostalCode:    stringField(orderData, "shipping_zip"),
			CountryCode:   country,
		},
		Items: buildItems(orderData),
	}, nil
}

// orderDate renders order_date as UTC RFC3339, defaulting to now when the
// field is absent or unparseable.
func orderDate(orderData map[string]any) string {
	raw := stringField(orderData, "order_date")
	t := time.Now()
	if raw != "" {
		for _, layout := range orderDateLayouts {
			if parsed, err := time.Parse(layout, raw); err == nil {
				t = parsed
				break
			}
		}
	}
	return t.UTC().Format(time.RFC3339)
}

func buildItems(orderData map[string]any) []Item {
	products, _ := orderData["products"].([]any)
	items := make([]Item, 0, len(products))
	for _, raw := range products {
		product, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		items = append(items, Item{
			SellerSKU:                    stringField(product, "product_code"),
			SellerFulfillmentOrderItemID: stringify(product["order_product_id"]),
			Quantity:                     itemQuantity(product),
		})
	}
	return items
}

// itemQuantity reads the amount field, tolerating the historical "ammount"
// misspelling some shop exports still carry, and defaults to 1.
func itemQuantity(product map[string]any) int {
	for _, key := range []string{"amount", "ammount"} {
		if v, ok := product[key]; ok {
			if n, ok := toInt(v); ok {
				return n
			}
		}
	}
	return 1
}

func stringField(data map[string]any, key string) string {
	s, _ := data[key].(string)
	return s
}

// stringify renders an id-like value the way the upstream API expects: whole
// numbers without a fractional part.
func stringify(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		if x == float64(int64(x)) {
			return strconv.FormatInt(int64(x), 10)
		}
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	default:
		return ""
	}
}

func toInt(v any) (int, bool) {
	switch x := v.(type) {
	case float64:
		return int(x), true
	case int:
		return x, true
	case int64:
		return int(x), true
	case string:
		n, err := strconv.Atoi(x)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}
