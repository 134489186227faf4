package request_models

// IdentityWebhookEvent is the identity provider's webhook envelope.
type IdentityWebhookEvent struct {
	Type string           `json:"type"`
	Data IdentityUserData `json:"data"`
}

type IdentityUserData struct {
	ID             string          `json:"id"`
	EmailAddresses []IdentityEmail `json:"email_addresses"`
	FirstName      string          `json:"first_name"`
	LastName       string          `json:"last_name"`
}

type IdentityEmail struct {
	EmailAddress string `json:"email_address"`
}

// PrimaryEmail is the first listed address, which the provider orders
// primary-first.
func (d IdentityUserData) PrimaryEmail() string {
	if len(d.EmailAddresses) == 0 {
		return ""
	}
	return d.EmailAddresses[0].EmailAddress
}
