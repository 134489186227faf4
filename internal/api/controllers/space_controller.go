package controllers

import (
	"net/http"
	"portico/internal/services"
	"portico/pkg/utils"
	"strconv"

	"github.com/gin-gonic/gin"
)

type SpaceController struct {
	spaceService services.SpaceServiceInterface
}

func NewSpaceController(spaceService services.SpaceServiceInterface) *SpaceController {
	return &SpaceController{
		spaceService: spaceService,
	}
}

// GetSpaceFeed godoc
// @Summary Get a space feed
// @Description Fetch space details and a page of posts on behalf of the signed-in member
// @Tags Spaces
// @Accept json
// @Produce json
// @Param spaceId path int true "Platform space ID"
// @Param page query int false "Page number" default(1)
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Security BearerAuth
// @Router /spaces/{spaceId} [get]
func (s *SpaceController) GetSpaceFeed(c *gin.Context) {
	spaceID, err := strconv.ParseInt(c.Param("spaceId"), 10, 64)
	if err != nil || spaceID <= 0 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid space ID")
		return
	}

	pageStr := c.DefaultQuery("page", "1")
	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid page number")
		return
	}

	email := c.GetString("email")
	if email == "" {
		utils.RespondError(c, http.StatusUnauthorized, "Signed-in user identity is incomplete")
		return
	}

	feed, err := s.spaceService.GetSpaceFeed(c.Request.Context(), email, spaceID, page)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, feed, "Space feed fetched successfully")
}
