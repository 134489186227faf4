package services

import (
	"context"
	"testing"

	"portico/internal/config"
	"portico/internal/models/db_models"
	"portico/internal/models/request_models"
	"portico/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func checkoutConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{FrontendBaseURL: "https://app.example.com"},
	}
}

func TestCreateSessionForMonthlyPlan(t *testing.T) {
	communities := newFakeCommunityRepository(testCommunity(t))
	gateway := &fakeGateway{}

	svc := NewCheckoutService(communities, gateway, checkoutConfig())
	resp, err := svc.CreateSession(context.Background(), "usr_42", "jo@example.com", request_models.CreateCheckoutSessionRequest{
		Slug:     "solas-nua",
		PlanType: "monthly",
	})

	require.NoError(t, err)
	assert.Equal(t, "cs_new", resp.SessionID)
	assert.NotEmpty(t, resp.URL)

	require.Len(t, gateway.created, 1)
	params := gateway.created[0]
	assert.Equal(t, "price_month", params.PriceID)
	assert.Equal(t, "usr_42", params.ClientReferenceID)
	assert.Equal(t, "jo@example.com", params.CustomerEmail)
	assert.Equal(t, "https://app.example.com/checkout/confirm?session_id={CHECKOUT_SESSION_ID}", params.SuccessURL)
	assert.Equal(t, "https://app.example.com/communities/solas-nua", params.CancelURL)
	assert.Equal(t, "solas-nua", params.Metadata["community_slug"])
	assert.Equal(t, "2222222", params.Metadata["space_id"])
}

func TestCreateSessionForAnnualPlan(t *testing.T) {
	communities := newFakeCommunityRepository(testCommunity(t))
	gateway := &fakeGateway{}

	svc := NewCheckoutService(communities, gateway, checkoutConfig())
	_, err := svc.CreateSession(context.Background(), "usr_42", "jo@example.com", request_models.CreateCheckoutSessionRequest{
		Slug:     "solas-nua",
		PlanType: "annual",
	})

	require.NoError(t, err)
	require.Len(t, gateway.created, 1)
	assert.Equal(t, "price_year", gateway.created[0].PriceID)
}

func TestCreateSessionPlanWithoutPrice(t *testing.T) {
	community := testCommunity(t)
	community.AnnualPriceID = nil
	communities := newFakeCommunityRepository(community)
	gateway := &fakeGateway{}

	svc := NewCheckoutService(communities, gateway, checkoutConfig())
	_, err := svc.CreateSession(context.Background(), "usr_42", "jo@example.com", request_models.CreateCheckoutSessionRequest{
		Slug:     "solas-nua",
		PlanType: string(db_models.PlanAnnual),
	})

	require.ErrorIs(t, err, utils.ErrPlanNotOffered)
	assert.Empty(t, gateway.created)
}

func TestCreateSessionUnknownCommunity(t *testing.T) {
	communities := newFakeCommunityRepository()
	gateway := &fakeGateway{}

	svc := NewCheckoutService(communities, gateway, checkoutConfig())
	_, err := svc.CreateSession(context.Background(), "usr_42", "jo@example.com", request_models.CreateCheckoutSessionRequest{
		Slug:     "ghost",
		PlanType: "monthly",
	})

	require.ErrorIs(t, err, utils.ErrCommunityNotFound)
}
