package checkout_fx

import (
	"portico/internal/api/controllers"
	"portico/internal/clients/circle"
	"portico/internal/clients/payments"
	"portico/internal/config"
	"portico/internal/repositories"
	"portico/internal/services"

	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Provide(
	provideUserRepo, provideSubscriptionRepo,
	provideCheckoutService, provideProvisioningService, provideCheckoutController)

func provideUserRepo(db *gorm.DB) repositories.UserRepository {
	return repositories.NewUserRepository(db)
}

func provideSubscriptionRepo(db *gorm.DB) repositories.SubscriptionRepository {
	return repositories.NewSubscriptionRepository(db)
}

func provideCheckoutService(
	communityRepo repositories.CommunityRepository,
	gateway payments.Gateway,
	cfg *config.Config,
) services.CheckoutServiceInterface {
	return services.NewCheckoutService(communityRepo, gateway, cfg)
}

func provideProvisioningService(
	userRepo repositories.UserRepository,
	communityRepo repositories.CommunityRepository,
	subscriptionRepo repositories.SubscriptionRepository,
	gateway payments.Gateway,
	circleAdmin circle.AdminClient,
) services.ProvisioningServiceInterface {
	return services.NewProvisioningService(userRepo, communityRepo, subscriptionRepo, gateway, circleAdmin)
}

func provideCheckoutController(
	checkoutService services.CheckoutServiceInterface,
	provisioningService services.ProvisioningServiceInterface,
) *controllers.CheckoutController {
	return controllers.NewCheckoutController(checkoutService, provisioningService)
}
