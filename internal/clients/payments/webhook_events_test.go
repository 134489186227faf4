package payments

import "testing"

func TestParseEventSubscription(t *testing.T) {
	payload := []byte(`{
		"id": "evt_1",
		"type": "customer.subscription.updated",
		"data": {"object": {"id": "sub_7", "status": "past_due", "customer": "cus_9", "cancel_at": 1700000000}}
	}`)

	event, err := ParseEvent(payload)
	if err != nil {
		t.Fatalf("ParseEvent: %v", err)
	}
	if event.Type != EventSubscriptionUpdated {
		t.Errorf("type = %q", event.Type)
	}

	sub, err := event.Subscription()
	if err != nil {
		t.Fatalf("Subscription: %v", err)
	}
	if sub.ID != "sub_7" || sub.Status != "past_due" {
		t.Errorf("sub = %+v", sub)
	}
	if sub.CancelAt == nil || *sub.CancelAt != 1700000000 {
		t.Errorf("cancel_at = %v", sub.CancelAt)
	}
}

func TestParseEventRejectsMissingType(t *testing.T) {
	if _, err := ParseEvent([]byte(`{"id": "evt_1"}`)); err == nil {
		t.Error("expected error for missing type")
	}
	if _, err := ParseEvent([]byte(`not json`)); err == nil {
		t.Error("expected error for malformed payload")
	}
}

func TestInvoiceSubscriptionRefShapes(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    string
	}{
		{
			name:    "bare string",
			payload: `{"id": "in_1", "customer": "cus_9", "subscription": "sub_7"}`,
			want:    "sub_7",
		},
		{
			name:    "embedded object",
			payload: `{"id": "in_1", "customer": "cus_9", "subscription": {"id": "sub_7", "status": "past_due"}}`,
			want:    "sub_7",
		},
		{
			name:    "null",
			payload: `{"id": "in_1", "customer": "cus_9", "subscription": null}`,
			want:    "",
		},
		{
			name:    "absent",
			payload: `{"id": "in_1", "customer": "cus_9"}`,
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event, err := ParseEvent([]byte(`{"id": "evt_2", "type": "invoice.payment_failed", "data": {"object": ` + tt.payload + `}}`))
			if err != nil {
				t.Fatalf("ParseEvent: %v", err)
			}
			inv, err := event.Invoice()
			if err != nil {
				t.Fatalf("Invoice: %v", err)
			}
			if got := inv.Subscription.String(); got != tt.want {
				t.Errorf("subscription ref = %q, want %q", got, tt.want)
			}
		})
	}
}
