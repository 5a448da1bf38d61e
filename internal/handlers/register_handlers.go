package handlers

import (
	"fmt"

	"github.com/SscSPs/donation_payment_app/cmd/docs"
	portssvc "github.com/SscSPs/donation_payment_app/internal/core/ports/services"
	"github.com/SscSPs/donation_payment_app/internal/middleware"
	"github.com/SscSPs/donation_payment_app/internal/platform/config"
	"github.com/SscSPs/donation_payment_app/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	posthogClient *utils.PosthogClientWrapper,
) error {
	RegisterValidators()

	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	webhookLimiter, err := middleware.NewMemoryLimiter(cfg.WebhookRateLimit)
	if err != nil {
		return fmt.Errorf("invalid WEBHOOK_RATE_LIMIT %q: %w", cfg.WebhookRateLimit, err)
	}
	checkoutLimiter, err := middleware.NewMemoryLimiter(cfg.CheckoutRateLimit)
	if err != nil {
		return fmt.Errorf("invalid CHECKOUT_RATE_LIMIT %q: %w", cfg.CheckoutRateLimit, err)
	}

	// Public routes: gateway callbacks and donor checkout
	public := r.Group("")
	RegisterWebhookRoutes(public, services.Reconciler, middleware.RateLimit(webhookLimiter))
	RegisterDonationRoutes(public, services.Donation, middleware.RateLimit(checkoutLimiter))

	setupAPIV1Routes(r, cfg, services, posthogClient)

	setupSwaggerRoutes(r, cfg)
	return nil
}

// setupAPIV1Routes configures the operator API behind AuthMiddleware
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	posthogClient *utils.PosthogClientWrapper,
) {
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret, cfg.JWTIssuer), middleware.PosthogMiddleware(posthogClient))
	RegisterOperatorRoutes(v1, services.Donation)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
