// Package app wires the storefront's dependencies together and runs the
// HTTP server.
package app

import (
	"context"
	"net/http"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/app"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/wearwow/storefront/fixture"
	"github.com/wearwow/storefront/internal/api"
	"github.com/wearwow/storefront/internal/domain/catalog"
	"github.com/wearwow/storefront/internal/storage/memory"
	"github.com/wearwow/storefront/pkg/health"
	"github.com/wearwow/storefront/pkg/httpmiddleware"
)

// Run creates all dependencies, starts the HTTP server, and handles
// graceful shutdown. It is the single wiring point for the application.
func Run(ctx context.Context, lg *zap.Logger, m *app.Telemetry, cfg *Config) error {
	lg.Info("Initializing", zap.String("addr", cfg.Addr))

	// Embedded dataset: products, categories, banners, orders,
	// notifications, and the demo user.
	fx, err := fixture.Load()
	if err != nil {
		return errors.Wrap(err, "load fixture")
	}
	lg.Info("Fixture loaded",
		zap.Int("products", len(fx.Products)),
		zap.Int("categories", len(fx.Categories)),
		zap.Int("orders", len(fx.Orders)),
	)

	// Repositories over the fixture.
	catalogRepo := memory.NewCatalogRepository(fx.Products, fx.Categories, fx.Banners)
	orderRepo := memory.NewOrderRepository(fx.Orders)
	notificationRepo := memory.NewNotificationRepository(fx.Notifications)

	// Shopper sessions.
	sessions := memory.NewSessionManager(cfg.Session.TTL, cfg.Session.Max)
	sessions.StartCleanup(ctx)

	rotator := catalog.NewRotator(fx.Banners, cfg.Banner.RotateInterval)

	// Health check service.
	healthSvc := health.New()
	healthSvc.AddLivenessCheck("goroutines", time.Second, health.GoroutineCountCheck(10000))
	healthSvc.AddReadinessCheck("catalog", time.Second, func(context.Context) error {
		if catalogRepo.Size() == 0 {
			return errors.New("catalog is empty")
		}
		return nil
	})
	healthSvc.Start(ctx, 10*time.Second)
	healthSvc.SetReady(true)

	// HTTP routes.
	h := api.NewHandler(
		api.Config{
			LoginDelay: cfg.Auth.LoginDelay,
			SessionTTL: cfg.Session.TTL,
		},
		catalogRepo,
		orderRepo,
		notificationRepo,
		sessions,
		rotator,
		fx.User,
	)

	mux := http.NewServeMux()
	mux.HandleFunc("/livez", healthSvc.LiveEndpoint)
	mux.HandleFunc("/readyz", healthSvc.ReadyEndpoint)
	mux.Handle("/api/", h.Router())

	server := &http.Server{
		ReadHeaderTimeout: time.Second,
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20,
		Addr:              cfg.Addr,
		Handler: httpmiddleware.Wrap(mux,
			httpmiddleware.Recovery(),
			httpmiddleware.CORS(httpmiddleware.CORSConfig{
				AllowOrigins:     cfg.CORS.Origins,
				AllowHeaders:     []string{"Content-Type"},
				AllowCredentials: cfg.CORS.AllowCredentials,
				MaxAge:           86400,
			}),
			httpmiddleware.RateLimitWithCleanup(ctx, httpmiddleware.RateLimitConfig{
				Max:    cfg.RateLimit.Max,
				Window: cfg.RateLimit.Window,
			}),
			httpmiddleware.RequestID(),
			httpmiddleware.InjectLogger(zctx.From(ctx)),
			httpmiddleware.Instrument("storefront-api", m),
			httpmiddleware.LogRequests(),
		),
	}

	// Graceful shutdown: wait for context cancellation, drain, then stop.
	shutdownDone := make(chan struct{})
	go func() {
		<-ctx.Done()
		healthSvc.SetReady(false)
		lg.Info("Readiness set to false, draining", zap.Duration("delay", cfg.Graceful.ReadinessDelay))
		time.Sleep(cfg.Graceful.ReadinessDelay)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Graceful.ShutdownTimeout)
		defer cancel()

		lg.Info("Shutting down server", zap.Duration("timeout", cfg.Graceful.ShutdownTimeout))
		if err := server.Shutdown(shutdownCtx); err != nil {
			lg.Error("Server shutdown error", zap.Error(err))
		}
		healthSvc.Stop()
		close(shutdownDone)
	}()

	lg.Info("Server listening", zap.String("addr", cfg.Addr))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "server")
	}
	<-shutdownDone
	return nil
}
