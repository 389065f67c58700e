// Package payment is the bridge to the hosted card-payment processor. The
// core only ever needs two calls: create an intent for a booking's amount and
// confirm it with card details. Calls are at-least-once-attempted and carry
// no idempotency key; a retry after a network failure can double-charge, a
// known gap surfaced by the reconcile worker rather than fixed here.
package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/alhaqtravel/umrah-booking/internal/domain"
	"github.com/alhaqtravel/umrah-booking/internal/observability"
)

type Client struct {
	baseURL   string
	secretKey string
	http      *http.Client
	logger    observability.Logger
}

func NewClient(baseURL, secretKey string, logger observability.Logger) *Client {
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		secretKey: secretKey,
		http:      &http.Client{Timeout: 30 * time.Second},
		logger:    logger,
	}
}

type intentResponse struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Status       string `json:"status"`
	Error        *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// CreateIntent registers a charge for the booking's exact amount and returns
// the client secret the confirmation step needs.
func (c *Client) CreateIntent(ctx context.Context, amountCents int64, bookingID uuid.UUID, customerEmail string) (string, error) {
	form := url.Values{}
	form.Set("amount", fmt.Sprintf("%d", amountCents))
	form.Set("currency", "usd")
	form.Set("receipt_email", customerEmail)
	form.Set("metadata[booking_id]", bookingID.String())

	resp, err := c.post(ctx, c.baseURL+"/v1/payment_intents", form)
	if err != nil {
		return "", err
	}
	return resp.ClientSecret, nil
}

// ConfirmCardPayment submits the card against a previously created intent.
// A decline comes back as *domain.PaymentError with the processor's message
// untouched.
func (c *Client) ConfirmCardPayment(ctx context.Context, clientSecret string, card domain.CardDetails, billing domain.BillingDetails) error {
	intentID, ok := intentIDFromSecret(clientSecret)
	if !ok {
		return &domain.PaymentError{Message: "invalid client secret"}
	}

	form := url.Values{}
	form.Set("client_secret", clientSecret)
	form.Set("payment_method_data[type]", "card")
	form.Set("payment_method_data[card][number]", card.Number)
	form.Set("payment_method_data[card][exp_month]", card.ExpMonth)
	form.Set("payment_method_data[card][exp_year]", card.ExpYear)
	form.Set("payment_method_data[card][cvc]", card.CVC)
	form.Set("payment_method_data[billing_details][name]", billing.Name)
	form.Set("payment_method_data[billing_details][email]", billing.Email)

	resp, err := c.post(ctx, c.baseURL+"/v1/payment_intents/"+intentID+"/confirm", form)
	if err != nil {
		return err
	}
	if resp.Status != "succeeded" {
		return &domain.PaymentError{Message: "payment not completed: " + resp.Status}
	}
	return nil
}

func (c *Client) post(ctx context.Context, endpoint string, form url.Values) (*intentResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Bearer "+c.secretKey)

	httpResp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error("payment bridge call failed", err)
		return nil, err
	}
	defer httpResp.Body.Close()

	var resp intentResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return nil, err
	}
	if httpResp.StatusCode >= 400 {
		msg := "payment failed"
		if resp.Error != nil && resp.Error.Message != "" {
			msg = resp.Error.Message
		}
		return nil, &domain.PaymentError{Message: msg}
	}
	return &resp, nil
}

// intentIDFromSecret recovers the intent id from a "pi_xxx_secret_yyy"
// client secret.
func intentIDFromSecret(clientSecret string) (string, bool) {
	id, _, found := strings.Cut(clientSecret, "_secret_")
	if !found || id == "" {
		return "", false
	}
	return id, true
}
