package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"portico/internal/clients/circle"
	"portico/internal/clients/payments"
	"portico/internal/models/db_models"
	"portico/internal/models/request_models"
	"portico/internal/models/response_models"
	"portico/internal/repositories"
	"portico/pkg/utils"

	"gorm.io/datatypes"
)

// Caller is the authenticated identity confirming a checkout.
type Caller struct {
	UserID string
	Email  string
	Name   string
}

type ProvisioningServiceInterface interface {
	// ConfirmCheckout runs the forward provisioning path. Precondition
	// violations come back as sentinel errors; once mutations begin the
	// outcome is always a ProvisionResult with a nil error.
	ConfirmCheckout(ctx context.Context, caller Caller, req request_models.ConfirmCheckoutRequest) (response_models.ProvisionResult, error)
}

func NewProvisioningService(
	userRepo repositories.UserRepository,
	communityRepo repositories.CommunityRepository,
	subscriptionRepo repositories.SubscriptionRepository,
	gateway payments.Gateway,
	circleAdmin circle.AdminClient,
) ProvisioningServiceInterface {
	return &ProvisioningService{
		userRepo:         userRepo,
		communityRepo:    communityRepo,
		subscriptionRepo: subscriptionRepo,
		gateway:          gateway,
		circleAdmin:      circleAdmin,
	}
}

type ProvisioningService struct {
	userRepo         repositories.UserRepository
	communityRepo    repositories.CommunityRepository
	subscriptionRepo repositories.SubscriptionRepository
	gateway          payments.Gateway
	circleAdmin      circle.AdminClient
}

func (p *ProvisioningService) ConfirmCheckout(ctx context.Context, caller Caller, req request_models.ConfirmCheckoutRequest) (response_models.ProvisionResult, error) {
	var zero response_models.ProvisionResult

	if caller.UserID == "" || caller.Email == "" {
		return zero, fmt.Errorf("%w: caller identity incomplete", utils.ErrInvalidInput)
	}

	session, err := p.gateway.GetCheckoutSession(ctx, req.SessionID)
	if err != nil {
		slog.Error("checkout session retrieval failed", "session_id", req.SessionID, "error", err)
		return zero, err
	}
	if session.ClientReferenceID != caller.UserID {
		return zero, utils.ErrSessionMismatch
	}
	if !session.Paid() {
		return zero, utils.ErrSessionUnpaid
	}

	community, err := p.communityRepo.FindBySlug(ctx, req.CommunitySlug)
	if err != nil {
		slog.Error("error fetching community", "slug", req.CommunitySlug, "error", err)
		return zero, utils.ErrDatabaseError
	}
	if community == nil {
		return zero, fmt.Errorf("%w: unknown community %q", utils.ErrInvalidInput, req.CommunitySlug)
	}
	if community.CircleSpaceID != req.SpaceID {
		return zero, utils.ErrSpaceMismatch
	}

	plan, ok := community.PlanForPrice(session.PriceID)
	if !ok {
		return zero, utils.ErrUnknownPrice
	}

	// Preconditions hold; everything below reports through the result.
	result := p.provision(ctx, caller, community, session, plan)
	return result, nil
}

func (p *ProvisioningService) provision(
	ctx context.Context,
	caller Caller,
	community *db_models.Community,
	session *payments.CheckoutSession,
	plan db_models.PlanType,
) response_models.ProvisionResult {
	if err := p.userRepo.Upsert(ctx, &db_models.User{
		ID:                caller.UserID,
		Email:             caller.Email,
		Name:              caller.Name,
		PaymentCustomerID: session.CustomerID,
	}); err != nil {
		slog.Error("user upsert failed", "user_id", caller.UserID, "error", err)
		return provisionFailure("could not record your account")
	}

	metadata, _ := json.Marshal(map[string]string{
		"checkout_session_id": session.ID,
		"community_slug":      community.Slug,
	})
	sub := &db_models.Subscription{
		UserID:                caller.UserID,
		CommunityID:           community.ID,
		Status:                db_models.SubStatusActive,
		PaymentSubscriptionID: session.SubscriptionID,
		PaymentCustomerID:     session.CustomerID,
		PlanType:              plan,
		StartedAt:             time.Now().Unix(),
		EndedAt:               nil,
		Metadata:              datatypes.JSON(metadata),
	}
	if err := p.subscriptionRepo.Upsert(ctx, sub); err != nil {
		slog.Error("subscription upsert failed", "user_id", caller.UserID, "community_id", community.ID, "error", err)
		return provisionFailure("could not record your subscription")
	}

	memberID, ok := p.resolveMemberID(ctx, caller, sub.ID)
	if !ok {
		return provisionFailure("could not provision your membership")
	}

	if err := p.circleAdmin.AddSpaceMember(ctx, memberID, community.CircleSpaceID); err != nil && !errors.Is(err, circle.ErrAlreadyMember) {
		slog.Error("space attach failed", "member_id", memberID, "space_id", community.CircleSpaceID, "error", err)
		p.markProvisioningFailed(ctx, sub.ID)
		return provisionFailure("could not grant access to the community space")
	}

	return response_models.ProvisionResult{
		Success:     true,
		RedirectURL: fmt.Sprintf("/platform-space/%d", community.CircleSpaceID),
	}
}

// resolveMemberID returns the platform member id for the caller, creating the
// member when the directory has no match. The cached id on the user row is
// trusted without re-verification.
func (p *ProvisioningService) resolveMemberID(ctx context.Context, caller Caller, subID uint) (int64, bool) {
	stored, err := p.userRepo.FindByID(ctx, caller.UserID)
	if err != nil || stored == nil {
		slog.Error("user reload failed", "user_id", caller.UserID, "error", err)
		p.markProvisioningFailed(ctx, subID)
		return 0, false
	}
	if stored.CircleMemberID != nil {
		return *stored.CircleMemberID, true
	}

	var memberID int64
	member, err := p.circleAdmin.SearchMemberByEmail(ctx, caller.Email)
	switch {
	case err == nil:
		memberID = member.ID
	case errors.Is(err, circle.ErrMemberNotFound):
		created, createErr := p.circleAdmin.CreateMember(ctx, circle.CreateMemberParams{
			Email: caller.Email,
			Name:  caller.Name,
			// No invitation mail; the buyer is already mid-flow.
			SkipInvitation: true,
		})
		if createErr != nil {
			slog.Error("member creation failed", "email", caller.Email, "error", createErr)
			p.markProvisioningFailed(ctx, subID)
			return 0, false
		}
		memberID = created.ID
	default:
		slog.Error("member search failed", "email", caller.Email, "error", err)
		p.markProvisioningFailed(ctx, subID)
		return 0, false
	}

	if err := p.userRepo.SetCircleMemberID(ctx, caller.UserID, memberID); err != nil {
		slog.Error("member id cache write failed", "user_id", caller.UserID, "error", err)
		p.markProvisioningFailed(ctx, subID)
		return 0, false
	}
	return memberID, true
}

// markProvisioningFailed is the compensation step. It only fires while the
// row still reads active, so a more specific failure state is never
// overwritten, and its own failure is logged rather than raised.
func (p *ProvisioningService) markProvisioningFailed(ctx context.Context, subID uint) {
	if subID == 0 {
		return
	}
	if err := p.subscriptionRepo.TransitionStatus(ctx, subID, db_models.SubStatusActive, db_models.SubStatusProvisioningFailed); err != nil {
		slog.Error("compensation write failed", "subscription_id", subID, "error", err)
	}
}

func provisionFailure(message string) response_models.ProvisionResult {
	return response_models.ProvisionResult{
		Success: false,
		Error:   message,
	}
}
