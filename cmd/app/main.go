package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"portico/cmd/fx/checkout_fx"
	"portico/cmd/fx/clients_fx"
	"portico/cmd/fx/communities_fx"
	"portico/cmd/fx/db_fx"
	"portico/cmd/fx/spaces_fx"
	"portico/cmd/fx/webhooks_fx"
	"portico/internal/api/controllers"
	"portico/internal/config"
	"portico/internal/infra"
	"portico/pkg/middleware"
	"portico/pkg/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

func main() {
	app := fx.New(
		db_fx.Module,
		clients_fx.Module,
		communities_fx.Module,
		checkout_fx.Module,
		spaces_fx.Module,
		webhooks_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(infra.Migrate),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine, cfg *config.Config, log *slog.Logger) {
	srv := &http.Server{
		Addr:    ":" + cfg.App.Port,
		Handler: engine,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info("starting HTTP server", "port", cfg.App.Port)
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("HTTP server stopped", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("stopping HTTP server")
			return srv.Shutdown(ctx)
		},
	})
}

func ProvideRouter(
	cfg *config.Config,
	db *gorm.DB,
	communityController *controllers.CommunityController,
	checkoutController *controllers.CheckoutController,
	spaceController *controllers.SpaceController,
	paymentWebhookController *controllers.PaymentWebhookController,
	identityWebhookController *controllers.IdentityWebhookController) *gin.Engine {

	if cfg.App.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.CORSMiddleware())
	r.Use(gin.Recovery())

	RegisterRoutes(r, cfg, db,
		communityController, checkoutController, spaceController,
		paymentWebhookController, identityWebhookController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	cfg *config.Config,
	db *gorm.DB,
	communityController *controllers.CommunityController,
	checkoutController *controllers.CheckoutController,
	spaceController *controllers.SpaceController,
	paymentWebhookController *controllers.PaymentWebhookController,
	identityWebhookController *controllers.IdentityWebhookController) {

	r.GET("/health", func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			utils.RespondError(c, http.StatusServiceUnavailable, "Database unreachable")
			return
		}
		utils.RespondSuccess(c, nil, "ok")
	})

	api := r.Group("/api/v1")

	api.GET("/communities", communityController.ListCommunities)
	api.GET("/communities/:slug", communityController.GetCommunityBySlug)

	sessionSecret := []byte(cfg.Identity.SessionSecret)

	authed := api.Group("")
	authed.Use(middleware.AuthMiddleware(sessionSecret))
	authed.POST("/checkout/session", checkoutController.CreateSession)
	authed.POST("/checkout/confirm", checkoutController.ConfirmCheckout)
	authed.GET("/spaces/:spaceId", spaceController.GetSpaceFeed)

	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware(sessionSecret), middleware.RoleMiddleware("admin"))
	admin.POST("/communities", communityController.CreateCommunity)
	admin.PUT("/communities/:slug", communityController.UpdateCommunity)

	webhooks := r.Group("/webhooks")
	webhooks.POST("/payment", paymentWebhookController.HandleWebhook)
	webhooks.POST("/identity", identityWebhookController.HandleWebhook)
}
