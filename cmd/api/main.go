package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
	"github.com/gin-gonic/gin"

	"github.com/desuex/fba-shipping/internal/auth"
	"github.com/desuex/fba-shipping/internal/config"
	"github.com/desuex/fba-shipping/internal/handlers"
	"github.com/desuex/fba-shipping/internal/metrics"
	"github.com/desuex/fba-shipping/internal/shipping"
)

func setupRouter(cfg handlers.HandlerConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(handlers.RequestID())

	// health
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	handlers.RegisterShippingRoutes(r, cfg)

	return r
}

func main() {
	initLogger()

	cfg := config.FromEnv()

	provider := auth.NewConfigProvider(cfg)
	client := shipping.NewClient(cfg, provider)
	service := shipping.NewService(client)

	handlerCfg := handlers.HandlerConfig{
		Service: service,
		Metrics: newMetricsPublisher(context.Background()),
	}

	r := setupRouter(handlerCfg)

	// if environment variable RUN_LOCAL is set to "true", run local HTTP server for development.
	if os.Getenv("RUN_LOCAL") == "true" {
		log.Printf("running local server on %s", cfg.ListenAddr)
		if err := r.Run(cfg.ListenAddr); err != nil {
			log.Fatalf("failed to run local server: %v", err)
		}
		return
	}

	// lambda adapter
	adapter := ginadapter.New(r)

	lambda.Start(func(ctx context.Context, req events.APIGatewayProxyRequest) (interface{}, error) {
		return adapter.ProxyWithContext(ctx, req)
	})
}

func initLogger() {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
}

// newMetricsPublisher returns nil when metrics are disabled or AWS config
// cannot be loaded; the publisher is nil-safe so the rest of the service does
// not care.
func newMetricsPublisher(ctx context.Context) *metrics.Publisher {
	if os.Getenv("METRICS_DISABLED") == "true" {
		return nil
	}
	client, err := metrics.NewCloudWatchClient(ctx)
	if err != nil {
		slog.Warn("metrics disabled: failed to init CloudWatch client", "error", err)
		return nil
	}
	return metrics.NewPublisher(client, metrics.Namespace)
}
