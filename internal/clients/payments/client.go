package payments

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

type client struct {
	secretKey  string
	baseURL    string
	httpClient *http.Client
}

func NewClient(secretKey, baseURL string) Gateway {
	return &client{
		secretKey: secretKey,
		baseURL:   strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

func (c *client) CreateCheckoutSession(ctx context.Context, params CheckoutSessionParams) (*CheckoutSession, error) {
	if strings.TrimSpace(params.PriceID) == "" {
		return nil, errors.New("price id is required")
	}

	form := url.Values{}
	form.Set("mode", "subscription")
	form.Set("line_items[0][price]", params.PriceID)
	form.Set("line_items[0][quantity]", "1")
	form.Set("success_url", params.SuccessURL)
	form.Set("cancel_url", params.CancelURL)
	form.Set("client_reference_id", params.ClientReferenceID)
	if params.CustomerEmail != "" {
		form.Set("customer_email", params.CustomerEmail)
	}
	for key, val := range params.Metadata {
		form.Set("metadata["+key+"]", val)
	}

	body, err := c.do(ctx, http.MethodPost, "/v1/checkout/sessions", form)
	if err != nil {
		return nil, err
	}
	return parseCheckoutSession(body)
}

func (c *client) GetCheckoutSession(ctx context.Context, sessionID string) (*CheckoutSession, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, errors.New("session id is required")
	}

	// Line items are not embedded by default; the expansion carries the
	// purchased price id.
	path := "/v1/checkout/sessions/" + url.PathEscape(sessionID) + "?expand[]=line_items"
	body, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	return parseCheckoutSession(body)
}

func (c *client) do(ctx context.Context, method, path string, form url.Values) ([]byte, error) {
	var payload io.Reader
	if form != nil {
		payload = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Accept", "application/json")
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{Status: resp.StatusCode, Body: string(body)}
	}
	return body, nil
}

func parseCheckoutSession(body []byte) (*CheckoutSession, error) {
	type rawSession struct {
		ID                string            `json:"id"`
		URL               string            `json:"url"`
		ClientReferenceID string            `json:"client_reference_id"`
		PaymentStatus     string            `json:"payment_status"`
		Customer          string            `json:"customer"`
		Subscription      string            `json:"subscription"`
		Metadata          map[string]string `json:"metadata"`
		LineItems         struct {
			Data []struct {
				Price struct {
					ID string `json:"id"`
				} `json:"price"`
			} `json:"data"`
		} `json:"line_items"`
	}

	var raw rawSession
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, err
	}
	if strings.TrimSpace(raw.ID) == "" {
		return nil, errors.New("checkout session response missing id")
	}

	session := &CheckoutSession{
		ID:                raw.ID,
		URL:               raw.URL,
		ClientReferenceID: raw.ClientReferenceID,
		PaymentStatus:     raw.PaymentStatus,
		CustomerID:        raw.Customer,
		SubscriptionID:    raw.Subscription,
		Metadata:          raw.Metadata,
	}
	if len(raw.LineItems.Data) > 0 {
		session.PriceID = raw.LineItems.Data[0].Price.ID
	}
	return session, nil
}
