package controllers

import (
	"net/http"
	"portico/internal/models/request_models"
	"portico/internal/services"
	"portico/pkg/utils"

	"github.com/gin-gonic/gin"
)

type CommunityController struct {
	communityService services.CommunityServiceInterface
}

func NewCommunityController(communityService services.CommunityServiceInterface) *CommunityController {
	return &CommunityController{
		communityService: communityService,
	}
}

// ListCommunities godoc
// @Summary List communities
// @Description Fetch the public catalog of communities open for membership
// @Tags Communities
// @Accept json
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Router /communities [get]
func (cc *CommunityController) ListCommunities(c *gin.Context) {
	communities, err := cc.communityService.ListCommunities(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, communities, "Communities fetched successfully")
}

// GetCommunityBySlug godoc
// @Summary Get a community
// @Description Fetch a single community by its slug
// @Tags Communities
// @Accept json
// @Produce json
// @Param slug path string true "Community slug"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /communities/{slug} [get]
func (cc *CommunityController) GetCommunityBySlug(c *gin.Context) {
	slug := c.Param("slug")
	if slug == "" {
		utils.RespondError(c, http.StatusBadRequest, "Community slug is required")
		return
	}

	community, err := cc.communityService.GetCommunityBySlug(c.Request.Context(), slug)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, community, "Community fetched successfully")
}

// CreateCommunity godoc
// @Summary Create a community
// @Description Register a new community backed by an existing platform space
// @Tags Communities
// @Accept json
// @Produce json
// @Param request body request_models.CreateCommunityRequest true "Community payload"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/communities [post]
func (cc *CommunityController) CreateCommunity(c *gin.Context) {
	var req request_models.CreateCommunityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	community, err := cc.communityService.CreateCommunity(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, community, "Community created successfully")
}

// UpdateCommunity godoc
// @Summary Update a community
// @Description Update the listing details of an existing community
// @Tags Communities
// @Accept json
// @Produce json
// @Param slug path string true "Community slug"
// @Param request body request_models.UpdateCommunityRequest true "Community payload"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /admin/communities/{slug} [put]
func (cc *CommunityController) UpdateCommunity(c *gin.Context) {
	slug := c.Param("slug")
	if slug == "" {
		utils.RespondError(c, http.StatusBadRequest, "Community slug is required")
		return
	}

	var req request_models.UpdateCommunityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	community, err := cc.communityService.UpdateCommunity(c.Request.Context(), slug, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, community, "Community updated successfully")
}
