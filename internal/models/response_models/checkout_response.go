package response_models

type CheckoutSessionResponse struct {
	SessionID string `json:"session_id"`
	URL       string `json:"url"`
}

// ProvisionResult is the all-or-nothing outcome of a checkout confirmation.
// Failures after the preconditions surface here, never as transport errors.
type ProvisionResult struct {
	Success     bool   `json:"success"`
	Error       string `json:"error,omitempty"`
	RedirectURL string `json:"redirect_url,omitempty"`
}
