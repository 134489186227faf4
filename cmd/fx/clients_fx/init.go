package clients_fx

import (
	"portico/internal/clients/circle"
	"portico/internal/clients/payments"
	"portico/internal/config"

	"go.uber.org/fx"
)

var Module = fx.Provide(
	providePaymentGateway, provideCircleAdmin, provideCircleMembers)

func providePaymentGateway(cfg *config.Config) payments.Gateway {
	return payments.NewClient(cfg.Payment.SecretKey, cfg.Payment.BaseURL)
}

func provideCircleAdmin(cfg *config.Config) circle.AdminClient {
	return circle.NewAdminClient(cfg.Circle.AdminToken, cfg.Circle.AdminBaseURL)
}

func provideCircleMembers(cfg *config.Config) circle.MemberClient {
	return circle.NewMemberClient(cfg.Circle.AdminToken, cfg.Circle.MemberBaseURL)
}
