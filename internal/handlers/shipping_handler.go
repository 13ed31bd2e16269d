package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/desuex/fba-shipping/internal/metrics"
	"github.com/desuex/fba-shipping/internal/orders"
	"github.com/desuex/fba-shipping/internal/shipping"
	"github.com/desuex/fba-shipping/internal/validation"
)

// ShippingService is the application surface the facade drives.
// *shipping.Service is the production implementation.
type ShippingService interface {
	Ship(ctx context.Context, order *orders.Order, buyer *orders.Buyer) (string, error)
	CheckTrackingStatus(ctx context.Context, fulfillmentOrderID string) (string, error)
}

// HandlerConfig groups dependencies for the shipping routes. Metrics may be
// nil.
type HandlerConfig struct {
	Service ShippingService
	Metrics *metrics.Publisher
}

type successEnvelope struct {
	Status string `json:"status"`
	Data   any    `json:"data"`
}

type errorEnvelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type shipResult struct {
	FulfillmentID string `json:"fulfillment_id"`
	Message       string `json:"message"`
}

type trackingResult struct {
	FulfillmentID  string  `json:"fulfillment_id"`
	TrackingNumber *string `json:"tracking_number"`
	State          string  `json:"state"`
}

// RegisterShippingRoutes registers the ship and tracking endpoints plus the
// 404 fallback envelope.
func RegisterShippingRoutes(r *gin.Engine, cfg HandlerConfig) {
	v := validation.New()

	r.POST("/api/ship", func(c *gin.Context) {
		ctx := c.Request.Context()

		var req validation.ShipRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			writeError(c, http.StatusBadRequest, err.Error())
			cfg.Metrics.CountRequest(ctx, "Ship", metrics.OutcomeValidationError)
			return
		}

		orderID, err := validation.OrderID(&req)
		if err != nil {
			writeError(c, http.StatusBadRequest, err.Error())
			cfg.Metrics.CountRequest(ctx, "Ship", metrics.OutcomeValidationError)
			return
		}

		order := orders.NewAPIOrder(orderID, req.Order)
		buyer := orders.NewBuyer(req.Buyer)

		slog.InfoContext(ctx, "shipping order",
			"request_id", requestID(c), "order_id", orderID)

		fulfillmentID, err := cfg.Service.Ship(ctx, order, buyer)
		if err != nil {
			status, outcome := classify(err)
			slog.ErrorContext(ctx, "ship failed",
				"request_id", requestID(c), "order_id", orderID, "error", err)
			writeError(c, status, err.Error())
			cfg.Metrics.CountRequest(ctx, "Ship", outcome)
			return
		}

		c.JSON(http.StatusOK, successEnvelope{
			Status: "success",
			Data: shipResult{
				FulfillmentID: fulfillmentID,
				Message:       "Order queued for fulfillment",
			},
		})
		cfg.Metrics.CountRequest(ctx, "Ship", metrics.OutcomeSuccess)
	})

	r.GET("/api/tracking", func(c *gin.Context) {
		ctx := c.Request.Context()

		fulfillmentID := c.Query("id")
		if fulfillmentID == "" {
			writeError(c, http.StatusBadRequest, `Missing "id" query parameter`)
			cfg.Metrics.CountRequest(ctx, "Tracking", metrics.OutcomeValidationError)
			return
		}

		tracking, err := cfg.Service.CheckTrackingStatus(ctx, fulfillmentID)
		if err != nil {
			status, outcome := classify(err)
			slog.ErrorContext(ctx, "tracking lookup failed",
				"request_id", requestID(c), "fulfillment_id", fulfillmentID, "error", err)
			writeError(c, status, err.Error())
			cfg.Metrics.CountRequest(ctx, "Tracking", outcome)
			return
		}

		result := trackingResult{
			FulfillmentID: fulfillmentID,
			State:         "PROCESSING",
		}
		if tracking != "" {
			result.TrackingNumber = &tracking
			result.State = "SHIPPED"
		}

		c.JSON(http.StatusOK, successEnvelope{Status: "success", Data: result})
		cfg.Metrics.CountRequest(ctx, "Tracking", metrics.OutcomeSuccess)
	})

	r.NoRoute(func(c *gin.Context) {
		writeError(c, http.StatusNotFound, "Not Found")
	})
}

// classify maps the error taxonomy to an HTTP status and a metrics outcome:
// validation failures are the client's fault, everything else (upstream,
// configuration) is internal.
func classify(err error) (int, string) {
	var verr *shipping.ValidationError
	if errors.As(err, &verr) {
		return http.StatusBadRequest, metrics.OutcomeValidationError
	}
	var uerr *shipping.UpstreamError
	if errors.As(err, &uerr) {
		return http.StatusInternalServerError, metrics.OutcomeUpstreamError
	}
	return http.StatusInternalServerError, metrics.OutcomeError
}

func writeError(c *gin.Context, status int, msg string) {
	c.JSON(status, errorEnvelope{Status: "error", Message: msg})
}

func requestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}
