package payments

import (
	"bytes"
	"encoding/json"
	"errors"
)

// Event is the gateway's webhook envelope. The payload object stays raw until
// the handler knows which shape the event type carries.
type Event struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object json.RawMessage `json:"object"`
	} `json:"data"`
}

const (
	EventSubscriptionUpdated  = "customer.subscription.updated"
	EventSubscriptionDeleted  = "customer.subscription.deleted"
	EventInvoicePaymentFailed = "invoice.payment_failed"
)

func ParseEvent(payload []byte) (*Event, error) {
	var event Event
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, err
	}
	if event.Type == "" {
		return nil, errors.New("webhook event missing type")
	}
	return &event, nil
}

type SubscriptionObject struct {
	ID         string `json:"id"`
	Status     string `json:"status"`
	CustomerID string `json:"customer"`

	// CancelAt is the scheduled end of access as a unix timestamp, set while
	// a cancellation is pending at period end.
	CancelAt *int64 `json:"cancel_at"`
}

func (e *Event) Subscription() (*SubscriptionObject, error) {
	var sub SubscriptionObject
	if err := json.Unmarshal(e.Data.Object, &sub); err != nil {
		return nil, err
	}
	if sub.ID == "" {
		return nil, errors.New("subscription payload missing id")
	}
	return &sub, nil
}

type InvoiceObject struct {
	ID           string          `json:"id"`
	CustomerID   string          `json:"customer"`
	Subscription SubscriptionRef `json:"subscription"`
}

func (e *Event) Invoice() (*InvoiceObject, error) {
	var inv InvoiceObject
	if err := json.Unmarshal(e.Data.Object, &inv); err != nil {
		return nil, err
	}
	return &inv, nil
}

// SubscriptionRef accepts both reference shapes invoices carry: a bare id
// string or an embedded subscription object with an id field.
type SubscriptionRef string

func (r *SubscriptionRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*r = ""
		return nil
	}

	if data[0] == '"' {
		var id string
		if err := json.Unmarshal(data, &id); err != nil {
			return err
		}
		*r = SubscriptionRef(id)
		return nil
	}

	var obj struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*r = SubscriptionRef(obj.ID)
	return nil
}

func (r SubscriptionRef) String() string {
	return string(r)
}
