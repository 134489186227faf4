package controllers

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"portico/internal/config"
	"portico/internal/models/request_models"
	"portico/internal/services"
	"portico/pkg/utils"
	"portico/pkg/webhooksig"

	"github.com/gin-gonic/gin"
)

type IdentityWebhookController struct {
	identityService services.IdentityServiceInterface
	verifier        *webhooksig.Verifier
}

func NewIdentityWebhookController(
	identityService services.IdentityServiceInterface,
	cfg *config.Config,
) *IdentityWebhookController {
	return &IdentityWebhookController{
		identityService: identityService,
		verifier:        webhooksig.NewVerifier(cfg.Identity.WebhookSecret),
	}
}

// HandleWebhook ingests identity-provider events. Only user.created is acted
// on; everything else is acknowledged and dropped. Transient failures answer
// 5xx so the provider redelivers.
func (ic *IdentityWebhookController) HandleWebhook(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Could not read request body")
		return
	}

	err = ic.verifier.Verify(
		c.GetHeader(webhooksig.HeaderID),
		c.GetHeader(webhooksig.HeaderTimestamp),
		c.GetHeader(webhooksig.HeaderSignature),
		body,
	)
	if err != nil {
		slog.Warn("identity webhook rejected", "error", err, "trace_id", c.GetString("trace_id"))
		utils.RespondError(c, http.StatusBadRequest, "Invalid webhook signature")
		return
	}

	var event request_models.IdentityWebhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid event payload")
		return
	}

	if event.Type != "user.created" {
		slog.Info("identity webhook ignored", "type", event.Type)
		utils.RespondSuccess(c, nil, "Event ignored")
		return
	}

	if err := ic.identityService.HandleUserCreated(c.Request.Context(), event.Data); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Event processed")
}
