package services

import (
	"context"
	"log/slog"

	"portico/internal/clients/circle"
	"portico/internal/models/db_models"
	"portico/internal/models/request_models"
	"portico/internal/models/response_models"
	"portico/internal/repositories"
	"portico/pkg/utils"

	"github.com/lib/pq"
)

type CommunityServiceInterface interface {
	ListCommunities(ctx context.Context) ([]response_models.CommunityResponse, error)
	GetCommunityBySlug(ctx context.Context, slug string) (response_models.CommunityResponse, error)
	CreateCommunity(ctx context.Context, req request_models.CreateCommunityRequest) (response_models.CommunityResponse, error)
	UpdateCommunity(ctx context.Context, slug string, req request_models.UpdateCommunityRequest) (response_models.CommunityResponse, error)
}

func NewCommunityService(communityRepo repositories.CommunityRepository, circleAdmin circle.AdminClient) CommunityServiceInterface {
	return &CommunityService{
		communityRepo: communityRepo,
		circleAdmin:   circleAdmin,
	}
}

type CommunityService struct {
	communityRepo repositories.CommunityRepository
	circleAdmin   circle.AdminClient
}

func (s *CommunityService) ListCommunities(ctx context.Context) ([]response_models.CommunityResponse, error) {
	communities, err := s.communityRepo.ListAll(ctx)
	if err != nil {
		slog.Error("error listing communities", "error", err)
		return nil, utils.ErrDatabaseError
	}

	responses := make([]response_models.CommunityResponse, 0, len(communities))
	for i := range communities {
		responses = append(responses, toCommunityResponse(&communities[i]))
	}

	return responses, nil
}

func (s *CommunityService) GetCommunityBySlug(ctx context.Context, slug string) (response_models.CommunityResponse, error) {
	community, err := s.communityRepo.FindBySlug(ctx, slug)
	if err != nil {
		slog.Error("error fetching community", "slug", slug, "error", err)
		return response_models.CommunityResponse{}, utils.ErrDatabaseError
	}

	if community == nil {
		return response_models.CommunityResponse{}, utils.ErrCommunityNotFound
	}

	return toCommunityResponse(community), nil
}

func (s *CommunityService) CreateCommunity(ctx context.Context, req request_models.CreateCommunityRequest) (response_models.CommunityResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return response_models.CommunityResponse{}, err
	}

	existing, err := s.communityRepo.FindBySlug(ctx, req.Slug)
	if err != nil {
		slog.Error("error checking community slug", "slug", req.Slug, "error", err)
		return response_models.CommunityResponse{}, utils.ErrDatabaseError
	}
	if existing != nil {
		return response_models.CommunityResponse{}, utils.ErrCommunityExists
	}

	// The space mapping must point at something real before anyone can buy
	// into it.
	if _, err := s.circleAdmin.GetSpace(ctx, req.CircleSpaceID); err != nil {
		slog.Error("space lookup failed", "space_id", req.CircleSpaceID, "error", err)
		return response_models.CommunityResponse{}, utils.ErrSpaceUnavailable
	}

	community := &db_models.Community{
		Slug:           req.Slug,
		Name:           req.Name,
		Description:    req.Description,
		ImageURL:       req.ImageURL,
		Benefits:       pq.StringArray(req.Benefits),
		CircleSpaceID:  req.CircleSpaceID,
		MonthlyPriceID: req.MonthlyPriceID,
		AnnualPriceID:  req.AnnualPriceID,
	}

	if err := s.communityRepo.Create(ctx, community); err != nil {
		slog.Error("error creating community", "slug", req.Slug, "error", err)
		return response_models.CommunityResponse{}, utils.ErrDatabaseError
	}

	return toCommunityResponse(community), nil
}

func (s *CommunityService) UpdateCommunity(ctx context.Context, slug string, req request_models.UpdateCommunityRequest) (response_models.CommunityResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return response_models.CommunityResponse{}, err
	}

	community, err := s.communityRepo.FindBySlug(ctx, slug)
	if err != nil {
		slog.Error("error fetching community", "slug", slug, "error", err)
		return response_models.CommunityResponse{}, utils.ErrDatabaseError
	}
	if community == nil {
		return response_models.CommunityResponse{}, utils.ErrCommunityNotFound
	}

	community.Name = req.Name
	community.Description = req.Description
	community.ImageURL = req.ImageURL
	community.Benefits = pq.StringArray(req.Benefits)
	community.MonthlyPriceID = req.MonthlyPriceID
	community.AnnualPriceID = req.AnnualPriceID

	if err := s.communityRepo.Update(ctx, community); err != nil {
		slog.Error("error updating community", "slug", slug, "error", err)
		return response_models.CommunityResponse{}, utils.ErrDatabaseError
	}

	return toCommunityResponse(community), nil
}

func toCommunityResponse(c *db_models.Community) response_models.CommunityResponse {
	plans := make([]string, 0, 2)
	for _, plan := range []db_models.PlanType{db_models.PlanMonthly, db_models.PlanAnnual} {
		if c.PriceForPlan(plan) != "" {
			plans = append(plans, string(plan))
		}
	}

	return response_models.CommunityResponse{
		Slug:        c.Slug,
		Name:        c.Name,
		Description: c.Description,
		ImageURL:    c.ImageURL,
		Benefits:    []string(c.Benefits),
		SpaceID:     c.CircleSpaceID,
		Plans:       plans,
	}
}
