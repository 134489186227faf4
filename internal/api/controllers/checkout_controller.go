package controllers

import (
	"net/http"
	"portico/internal/models/request_models"
	"portico/internal/services"
	"portico/pkg/utils"

	"github.com/gin-gonic/gin"
)

type CheckoutController struct {
	checkoutService     services.CheckoutServiceInterface
	provisioningService services.ProvisioningServiceInterface
}

func NewCheckoutController(
	checkoutService services.CheckoutServiceInterface,
	provisioningService services.ProvisioningServiceInterface,
) *CheckoutController {
	return &CheckoutController{
		checkoutService:     checkoutService,
		provisioningService: provisioningService,
	}
}

// CreateSession godoc
// @Summary Create a checkout session
// @Description Start a hosted checkout session for a community membership plan
// @Tags Checkout
// @Accept json
// @Produce json
// @Param request body request_models.CreateCheckoutSessionRequest true "Checkout session payload"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /checkout/session [post]
func (cc *CheckoutController) CreateSession(c *gin.Context) {
	var req request_models.CreateCheckoutSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	userID := c.GetString("user_id")
	email := c.GetString("email")
	if userID == "" || email == "" {
		utils.RespondError(c, http.StatusUnauthorized, "Signed-in user identity is incomplete")
		return
	}

	session, err := cc.checkoutService.CreateSession(c.Request.Context(), userID, email, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, session, "Checkout session created successfully")
}

// ConfirmCheckout godoc
// @Summary Confirm a paid checkout session
// @Description Verify a completed checkout session and provision community access
// @Tags Checkout
// @Accept json
// @Produce json
// @Param request body request_models.ConfirmCheckoutRequest true "Checkout confirmation payload"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Security BearerAuth
// @Router /checkout/confirm [post]
func (cc *CheckoutController) ConfirmCheckout(c *gin.Context) {
	var req request_models.ConfirmCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	caller := services.Caller{
		UserID: c.GetString("user_id"),
		Email:  c.GetString("email"),
		Name:   c.GetString("name"),
	}

	result, err := cc.provisioningService.ConfirmCheckout(c.Request.Context(), caller, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, result, "Checkout confirmation processed")
}
