// router.go - Wires middleware and handlers into a Gin engine

package router

import (
	"healthtrack-backend/config"
	"healthtrack-backend/creem"
	"healthtrack-backend/handlers"
	"healthtrack-backend/metrics"
	"healthtrack-backend/middleware"
	"healthtrack-backend/realtime"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Deps are the long-lived collaborators the router hands to handlers.
type Deps struct {
	Log         *zap.Logger
	Hub         *realtime.Hub
	Creem       *creem.Client
	RateLimiter *middleware.RateLimiter
}

func SetupRouter(cfg *config.Config, deps Deps) *gin.Engine {
	if deps.Log == nil {
		deps.Log = zap.NewNop()
	}
	if deps.Hub == nil {
		deps.Hub = realtime.NewHub(deps.Log)
	}
	if deps.Creem == nil {
		deps.Creem = creem.NewClient(cfg.CreemAPIURL, cfg.CreemAPIKey, cfg.HTTPTimeout)
	}
	if deps.RateLimiter == nil {
		deps.RateLimiter = middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, deps.Log)
	}

	provisioner := middleware.NewProvisioner(deps.Log)
	api := &handlers.API{
		Log:           deps.Log,
		Hub:           deps.Hub,
		Creem:         deps.Creem,
		Provisioner:   provisioner,
		ProductID:     cfg.CreemProductID,
		SuccessURL:    cfg.PaymentSuccessURL,
		WebhookSecret: cfg.CreemWebhookSecret,
	}
	auth := middleware.AuthOptions{Secret: cfg.SupabaseJWTSecret, Audience: cfg.SupabaseJWTAudience}
	limit := deps.RateLimiter.Handler()

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(deps.Log), metrics.Middleware())

	r.GET("/healthz", api.Health)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	// Public: Creem calls this without a user token.
	r.POST("/api/payment/webhook", limit, api.PaymentWebhook)

	// Realtime accepts ?token= because browsers cannot set upgrade headers.
	wsAuth := auth
	wsAuth.AllowQueryToken = true
	r.GET("/api/realtime", middleware.AuthMiddleware(wsAuth), provisioner.Handler(), api.Realtime)

	protected := r.Group("/api")
	protected.Use(middleware.AuthMiddleware(auth), limit, provisioner.Handler())
	{
		protected.POST("/auth/sync", api.SyncUser)
		protected.GET("/auth/me", api.GetMe)
		protected.PUT("/auth/me", api.UpdateMe)
		protected.DELETE("/auth/me", api.DeleteMe)

		protected.GET("/measurements", api.ListMeasurements)
		protected.GET("/measurements/latest", api.LatestMeasurement)
		protected.POST("/measurements", api.CreateMeasurement)
		protected.PUT("/measurements/:id", api.UpdateMeasurement)
		protected.DELETE("/measurements/:id", api.DeleteMeasurement)

		protected.GET("/diseases", api.ListDiseases)
		protected.POST("/diseases", api.CreateDisease)
		protected.GET("/diseases/medications", api.ListMedications)
		protected.POST("/diseases/medications", api.CreateMedication)
		protected.PUT("/diseases/medications/:id", api.UpdateMedication)
		protected.DELETE("/diseases/medications/:id", api.DeleteMedication)
		protected.GET("/diseases/:id", api.GetDisease)
		protected.PUT("/diseases/:id", api.UpdateDisease)
		protected.DELETE("/diseases/:id", api.DeleteDisease)

		protected.POST("/payment/checkout", api.CreateCheckout)
		protected.GET("/payment", api.ListPayments)
		protected.GET("/payment/status", api.PaymentStatus)
	}

	return r
}
