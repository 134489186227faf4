package webhooks_fx

import (
	"portico/internal/api/controllers"
	"portico/internal/clients/circle"
	"portico/internal/config"
	"portico/internal/repositories"
	"portico/internal/services"

	"go.uber.org/fx"
)

var Module = fx.Provide(
	provideReconciliationService, provideIdentityService,
	providePaymentWebhookController, provideIdentityWebhookController)

func provideReconciliationService(
	subscriptionRepo repositories.SubscriptionRepository,
	circleAdmin circle.AdminClient,
) services.ReconciliationServiceInterface {
	return services.NewReconciliationService(subscriptionRepo, circleAdmin)
}

func provideIdentityService(
	userRepo repositories.UserRepository,
	circleAdmin circle.AdminClient,
) services.IdentityServiceInterface {
	return services.NewIdentityService(userRepo, circleAdmin)
}

func providePaymentWebhookController(
	reconciliation services.ReconciliationServiceInterface,
	cfg *config.Config,
) *controllers.PaymentWebhookController {
	return controllers.NewPaymentWebhookController(reconciliation, cfg)
}

func provideIdentityWebhookController(
	identityService services.IdentityServiceInterface,
	cfg *config.Config,
) *controllers.IdentityWebhookController {
	return controllers.NewIdentityWebhookController(identityService, cfg)
}
