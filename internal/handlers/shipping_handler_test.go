package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/desuex/fba-shipping/internal/auth"
	"github.com/desuex/fba-shipping/internal/config"
	"github.com/desuex/fba-shipping/internal/shipping"
)

// fakeUpstream is a stand-in FBA API counting requests so tests can assert
// that rejected requests never reach the network.
type fakeUpstream struct {
	server   *httptest.Server
	requests atomic.Int64

	trackingBody string // JSON returned for GET fulfillmentOrders/{id}
}

func newFakeUpstream(trackingBody string) *fakeUpstream {
	f := &fakeUpstream{trackingBody: trackingBody}
	f.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.requests.Add(1)
		if r.Method == http.MethodGet {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(f.trackingBody))
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	return f
}

func newTestRouter(t *testing.T, upstream *fakeUpstream) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		BaseURL:     upstream.server.URL,
		AccessToken: "test-token",
		HTTPTimeout: 5 * time.Second,
	}
	service := shipping.NewService(shipping.NewClient(cfg, auth.NewConfigProvider(cfg)))

	r := gin.New()
	r.Use(RequestID())
	RegisterShippingRoutes(r, HandlerConfig{Service: service})
	return r
}

func doRequest(r *gin.Engine, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

const emptyShipments = `{"payload":{"fulfillmentOrder":{"fulfillmentShipments":[]}}}`

func TestShip_Success(t *testing.T) {
	upstream := newFakeUpstream(emptyShipments)
	defer upstream.server.Close()
	r := newTestRouter(t, upstream)

	body := `{
		"order": {
			"order_id": 16400,
			"order_unique": "ORD-1",
			"shipping_street": "1 Main St",
			"shipping_city": "Springfield",
			"shipping_country": "US",
			"products": [{"product_code": "SKU1", "order_product_id": 7, "amount": 2}]
		},
		"buyer": {"shop_username": "acme-shop"}
	}`

	w := doRequest(r, http.MethodPost, "/api/ship", body)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{
		"status": "success",
		"data": {"fulfillment_id": "ORD-1", "message": "Order queued for fulfillment"}
	}`, w.Body.String())
	assert.EqualValues(t, 1, upstream.requests.Load())
	assert.NotEmpty(t, w.Header().Get("X-Request-Id"))
}

func TestShip_MissingBuyerMakesNoUpstreamCall(t *testing.T) {
	upstream := newFakeUpstream(emptyShipments)
	defer upstream.server.Close()
	r := newTestRouter(t, upstream)

	w := doRequest(r, http.MethodPost, "/api/ship", `{"order":{"order_id":1}}`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"status":"error","message":"Missing buyer in request payload"}`, w.Body.String())
	assert.EqualValues(t, 0, upstream.requests.Load())
}

func TestShip_ValidationMessages(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"invalid json", `{oops`, "Invalid JSON Body"},
		{"missing order", `{"buyer":{}}`, "Missing order in request payload"},
		{"missing order_id", `{"order":{},"buyer":{}}`, "Missing order_id in request payload"},
		{
			"missing street",
			`{"order":{"order_id":1,"order_unique":"ORD-1","shipping_city":"X","shipping_country":"US"},"buyer":{}}`,
			"Missing Street",
		},
		{
			"missing order_unique",
			`{"order":{"order_id":1,"shipping_street":"1 Main St","shipping_city":"X","shipping_country":"US"},"buyer":{}}`,
			"Order unique ID is required",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			upstream := newFakeUpstream(emptyShipments)
			defer upstream.server.Close()
			r := newTestRouter(t, upstream)

			w := doRequest(r, http.MethodPost, "/api/ship", tc.body)

			require.Equal(t, http.StatusBadRequest, w.Code)

			var resp struct {
				Status  string `json:"status"`
				Message string `json:"message"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, "error", resp.Status)
			assert.Equal(t, tc.want, resp.Message)
			assert.EqualValues(t, 0, upstream.requests.Load())
		})
	}
}

func TestShip_UpstreamFailureIs500(t *testing.T) {
	upstream := newFakeUpstream(emptyShipments)
	upstream.server.Close() // connection refused
	r := newTestRouter(t, upstream)

	body := `{
		"order": {
			"order_id": 1,
			"order_unique": "ORD-1",
			"shipping_street": "1 Main St",
			"shipping_city": "Springfield",
			"shipping_country": "US"
		},
		"buyer": {}
	}`

	w := doRequest(r, http.MethodPost, "/api/ship", body)

	require.Equal(t, http.StatusInternalServerError, w.Code)

	var resp struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.True(t, strings.HasPrefix(resp.Message, "Amazon FBA API Error"), resp.Message)
}

func TestTracking_Processing(t *testing.T) {
	upstream := newFakeUpstream(emptyShipments)
	defer upstream.server.Close()
	r := newTestRouter(t, upstream)

	w := doRequest(r, http.MethodGet, "/api/tracking?id=ORD-1", "")

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{
		"status": "success",
		"data": {"fulfillment_id": "ORD-1", "tracking_number": null, "state": "PROCESSING"}
	}`, w.Body.String())
}

func TestTracking_Shipped(t *testing.T) {
	upstream := newFakeUpstream(`{
		"payload": {"fulfillmentOrder": {"fulfillmentShipments": [
			{"fulfillmentShipmentPackages": [{"trackingNumber": "TN-42"}]}
		]}}
	}`)
	defer upstream.server.Close()
	r := newTestRouter(t, upstream)

	w := doRequest(r, http.MethodGet, "/api/tracking?id=ORD-1", "")

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{
		"status": "success",
		"data": {"fulfillment_id": "ORD-1", "tracking_number": "TN-42", "state": "SHIPPED"}
	}`, w.Body.String())
}

func TestTracking_MissingID(t *testing.T) {
	upstream := newFakeUpstream(emptyShipments)
	defer upstream.server.Close()
	r := newTestRouter(t, upstream)

	w := doRequest(r, http.MethodGet, "/api/tracking", "")

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"status":"error","message":"Missing \"id\" query parameter"}`, w.Body.String())
	assert.EqualValues(t, 0, upstream.requests.Load())
}

func TestUnmatchedRouteIs404(t *testing.T) {
	upstream := newFakeUpstream(emptyShipments)
	defer upstream.server.Close()
	r := newTestRouter(t, upstream)

	w := doRequest(r, http.MethodGet, "/api/nope", "")

	require.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"status":"error","message":"Not Found"}`, w.Body.String())
}
