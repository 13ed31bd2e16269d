package metrics

import (
	"context"
	"errors"
	"log/slog"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cwtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"github.com/aws/smithy-go"
)

// Namespace groups this service's metrics in CloudWatch.
const Namespace = "FBAShipping"

// Request outcome dimension values.
const (
	OutcomeSuccess         = "success"
	OutcomeValidationError = "validation_error"
	OutcomeUpstreamError   = "upstream_error"
	OutcomeError           = "error"
)

// Publisher emits request-outcome counters. A nil Publisher is valid and does
// nothing, so callers never have to branch on whether metrics are enabled.
// Publish failures are logged and swallowed: observability must not fail the
// request it observes.
type Publisher struct {
	client    CloudWatchAPI
	namespace string
}

// NewPublisher returns a Publisher bound to a namespace.
func NewPublisher(client CloudWatchAPI, namespace string) *Publisher {
	return &Publisher{
		client:    client,
		namespace: namespace,
	}
}

// CountRequest records one request against an endpoint with its outcome.
func (p *Publisher) CountRequest(ctx context.Context, endpoint, outcome string) {
	if p == nil || p.client == nil {
		return
	}

	input := &cloudwatch.PutMetricDataInput{
		Namespace: sdkaws.String(p.namespace),
		MetricData: []cwtypes.MetricDatum{
			{
				MetricName: sdkaws.String("Requests"),
				Value:      sdkaws.Float64(1),
				Unit:       cwtypes.StandardUnitCount,
				Dimensions: []cwtypes.Dimension{
					{Name: sdkaws.String("Endpoint"), Value: sdkaws.String(endpoint)},
					{Name: sdkaws.String("Outcome"), Value: sdkaws.String(outcome)},
				},
			},
		},
	}

	if _, err := p.client.PutMetricData(ctx, input); err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) {
			slog.WarnContext(ctx, "metric publish failed",
				"code", apiErr.ErrorCode(), "endpoint", endpoint, "outcome", outcome)
			return
		}
		slog.WarnContext(ctx, "metric publish failed",
			"error", err, "endpoint", endpoint, "outcome", outcome)
	}
}
