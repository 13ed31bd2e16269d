package shipping

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/desuex/fba-shipping/internal/auth"
	"github.com/desuex/fba-shipping/internal/config"
)

const fulfillmentOrdersPath = "/fba/outbound/2020-07-01/fulfillmentOrders"

// Client talks to the FBA outbound fulfillment API. Any transport or protocol
// failure comes back as an UpstreamError; auth provider failures propagate as
// their own kind.
type Client struct {
	httpClient *http.Client
	auth       auth.TokenProvider
	baseURL    string
}

// NewClient builds a client against the configured base URL with the
// configured outbound timeout.
func NewClient(cfg *config.Config, provider auth.TokenProvider) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: cfg.HTTPTimeout},
		auth:       provider,
		baseURL:    cfg.BaseURL,
	}
}

// trackingResponse mirrors the slice of the getFulfillmentOrder response we
// care about: shipments, their packages, and each package's tracking number.
type trackingResponse struct {
	Payload struct {
		FulfillmentOrder struct {
			FulfillmentShipments []struct {
				FulfillmentShipmentPackages []struct {
					TrackingNumber string `json:"trackingNumber"`
				} `json:"fulfillmentShipmentPackages"`
			} `json:"fulfillmentShipments"`
		} `json:"fulfillmentOrder"`
	} `json:"payload"`
}

// CreateFulfillmentOrder submits the payload to the fulfillment network. The
// response body is not inspected beyond the status code: FBA does not return a
// tracking number at creation time.
func (c *Client) CreateFulfillmentOrder(ctx context.Context, payload *FulfillmentPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal fulfillment payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+fulfillmentOrdersPath, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if err := c.setHeaders(req); err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &UpstreamError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &UpstreamError{Err: statusError(resp)}
	}
	return nil
}

// TrackingNumber fetches the fulfillment order and scans its shipments in
// order, then each shipment's packages in order, returning the first non-empty
// tracking number. Empty string means the order has no tracking number yet.
func (c *Client) TrackingNumber(ctx context.Context, fulfillmentOrderID string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+fulfillmentOrdersPath+"/"+fulfillmentOrderID, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	if err := c.setHeaders(req); err != nil {
		return "", err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &UpstreamError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &UpstreamError{Err: statusError(resp)}
	}

	var parsed trackingResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode tracking response: %w", err)
	}

	for _, shipment := range parsed.Payload.FulfillmentOrder.FulfillmentShipments {
		for _, pkg := range shipment.FulfillmentShipmentPackages {
			if pkg.TrackingNumber != "" {
				return pkg.TrackingNumber, nil
			}
		}
	}
	return "", nil
}

func (c *Client) setHeaders(req *http.Request) error {
	token, err := c.auth.AccessToken()
	if err != nil {
		return err
	}
	req.Header.Set("x-amz-access-token", token)
	req.Header.Set("Content-Type", "application/json")
	return nil
}

// statusError summarises a non-2xx response, keeping a short body excerpt for
// the operator log.
func statusError(resp *http.Response) error {
	excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	if len(excerpt) == 0 {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, excerpt)
}
