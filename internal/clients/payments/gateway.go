// Package payments wraps the hosted-checkout payment gateway. The gateway
// charges cards, owns subscription billing state and reports lifecycle
// changes through signed webhooks; this package only creates and reads
// checkout sessions.
package payments

import (
	"context"
	"fmt"
)

type Gateway interface {
	CreateCheckoutSession(ctx context.Context, params CheckoutSessionParams) (*CheckoutSession, error)
	GetCheckoutSession(ctx context.Context, sessionID string) (*CheckoutSession, error)
}

type CheckoutSessionParams struct {
	PriceID           string
	SuccessURL        string
	CancelURL         string
	ClientReferenceID string
	CustomerEmail     string
	Metadata          map[string]string
}

type CheckoutSession struct {
	ID                string
	URL               string
	ClientReferenceID string
	PaymentStatus     string
	CustomerID        string
	SubscriptionID    string
	PriceID           string
	Metadata          map[string]string
}

const PaymentStatusPaid = "paid"

// Paid reports whether the gateway collected the first charge.
func (s *CheckoutSession) Paid() bool {
	return s.PaymentStatus == PaymentStatusPaid
}

// APIError is a non-2xx gateway reply. The raw body is kept for logs; it is
// never shown to end users.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("payment gateway: status=%d body=%s", e.Status, e.Body)
}
