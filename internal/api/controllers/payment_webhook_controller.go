package controllers

import (
	"io"
	"log/slog"
	"net/http"
	"portico/internal/clients/payments"
	"portico/internal/config"
	"portico/internal/models/db_models"
	"portico/internal/services"
	"portico/pkg/utils"
	"portico/pkg/webhooksig"

	"github.com/gin-gonic/gin"
)

// maxWebhookBody caps how much of a delivery we read. Gateway events are a few
// KB; anything larger is not a legitimate delivery.
const maxWebhookBody = 1 << 20

type PaymentWebhookController struct {
	reconciliation services.ReconciliationServiceInterface
	verifier       *webhooksig.Verifier
}

func NewPaymentWebhookController(
	reconciliation services.ReconciliationServiceInterface,
	cfg *config.Config,
) *PaymentWebhookController {
	return &PaymentWebhookController{
		reconciliation: reconciliation,
		verifier:       webhooksig.NewVerifier(cfg.Payment.WebhookSecret),
	}
}

// HandleWebhook ingests payment-gateway events. The signature is checked
// against the raw body before anything is parsed; a delivery that fails
// verification is rejected without side effects. Processing errors answer 5xx
// so the gateway redelivers; everything else is acknowledged with 200.
func (pc *PaymentWebhookController) HandleWebhook(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Could not read request body")
		return
	}

	err = pc.verifier.Verify(
		c.GetHeader(webhooksig.HeaderID),
		c.GetHeader(webhooksig.HeaderTimestamp),
		c.GetHeader(webhooksig.HeaderSignature),
		body,
	)
	if err != nil {
		slog.Warn("payment webhook rejected", "error", err, "trace_id", c.GetString("trace_id"))
		utils.RespondError(c, http.StatusBadRequest, "Invalid webhook signature")
		return
	}

	event, err := payments.ParseEvent(body)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid event payload")
		return
	}

	switch event.Type {
	case payments.EventSubscriptionUpdated:
		pc.handleSubscriptionUpdated(c, event)
	case payments.EventSubscriptionDeleted:
		pc.handleSubscriptionDeleted(c, event)
	case payments.EventInvoicePaymentFailed:
		pc.handleInvoicePaymentFailed(c, event)
	default:
		slog.Info("payment webhook ignored", "type", event.Type, "event_id", event.ID)
		utils.RespondSuccess(c, nil, "Event ignored")
	}
}

func (pc *PaymentWebhookController) handleSubscriptionUpdated(c *gin.Context, event *payments.Event) {
	sub, err := event.Subscription()
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid subscription payload")
		return
	}

	status, ok := db_models.SubscriptionStatusFromGateway(sub.Status)
	if !ok {
		slog.Info("payment webhook skipped: unrecognized subscription status",
			"status", sub.Status, "subscription", sub.ID, "event_id", event.ID)
		utils.RespondSuccess(c, nil, "Event ignored")
		return
	}

	if err := pc.reconciliation.Apply(c.Request.Context(), sub.ID, status, sub.CancelAt); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Event processed")
}

func (pc *PaymentWebhookController) handleSubscriptionDeleted(c *gin.Context, event *payments.Event) {
	sub, err := event.Subscription()
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid subscription payload")
		return
	}

	if err := pc.reconciliation.Apply(c.Request.Context(), sub.ID, db_models.SubStatusCanceled, nil); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Event processed")
}

func (pc *PaymentWebhookController) handleInvoicePaymentFailed(c *gin.Context, event *payments.Event) {
	invoice, err := event.Invoice()
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid invoice payload")
		return
	}

	ref := invoice.Subscription.String()
	if ref == "" {
		slog.Info("payment webhook skipped: invoice without subscription reference",
			"invoice", invoice.ID, "event_id", event.ID)
		utils.RespondSuccess(c, nil, "Event ignored")
		return
	}

	if err := pc.reconciliation.Apply(c.Request.Context(), ref, db_models.SubStatusPastDue, nil); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Event processed")
}
