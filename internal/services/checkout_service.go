package services

import (
	"context"
	"log/slog"
	"strconv"

	"portico/internal/clients/payments"
	"portico/internal/config"
	"portico/internal/models/db_models"
	"portico/internal/models/request_models"
	"portico/internal/models/response_models"
	"portico/internal/repositories"
	"portico/pkg/utils"
)

type CheckoutServiceInterface interface {
	CreateSession(ctx context.Context, userID, email string, req request_models.CreateCheckoutSessionRequest) (response_models.CheckoutSessionResponse, error)
}

func NewCheckoutService(
	communityRepo repositories.CommunityRepository,
	gateway payments.Gateway,
	cfg *config.Config,
) CheckoutServiceInterface {
	return &CheckoutService{
		communityRepo:   communityRepo,
		gateway:         gateway,
		frontendBaseURL: cfg.App.FrontendBaseURL,
	}
}

type CheckoutService struct {
	communityRepo   repositories.CommunityRepository
	gateway         payments.Gateway
	frontendBaseURL string
}

// CreateSession opens a hosted checkout for one of the community's plans.
// Confirmation happens later via the confirm endpoint, once the gateway
// redirects back with the session id filled into the success URL.
func (s *CheckoutService) CreateSession(ctx context.Context, userID, email string, req request_models.CreateCheckoutSessionRequest) (response_models.CheckoutSessionResponse, error) {
	community, err := s.communityRepo.FindBySlug(ctx, req.Slug)
	if err != nil {
		slog.Error("error fetching community", "slug", req.Slug, "error", err)
		return response_models.CheckoutSessionResponse{}, utils.ErrDatabaseError
	}
	if community == nil {
		return response_models.CheckoutSessionResponse{}, utils.ErrCommunityNotFound
	}

	priceID := community.PriceForPlan(db_models.PlanType(req.PlanType))
	if priceID == "" {
		return response_models.CheckoutSessionResponse{}, utils.ErrPlanNotOffered
	}

	session, err := s.gateway.CreateCheckoutSession(ctx, payments.CheckoutSessionParams{
		PriceID:           priceID,
		SuccessURL:        s.frontendBaseURL + "/checkout/confirm?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:         s.frontendBaseURL + "/communities/" + community.Slug,
		ClientReferenceID: userID,
		CustomerEmail:     email,
		Metadata: map[string]string{
			"community_slug": community.Slug,
			"space_id":       strconv.FormatInt(community.CircleSpaceID, 10),
		},
	})
	if err != nil {
		slog.Error("checkout session creation failed", "slug", req.Slug, "error", err)
		return response_models.CheckoutSessionResponse{}, err
	}

	return response_models.CheckoutSessionResponse{
		SessionID: session.ID,
		URL:       session.URL,
	}, nil
}
