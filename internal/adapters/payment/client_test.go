package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alhaqtravel/umrah-booking/internal/domain"
	"github.com/alhaqtravel/umrah-booking/internal/observability"
)

func TestCreateIntent(t *testing.T) {
	bookingID := uuid.New()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/payment_intents", r.URL.Path)
		assert.Equal(t, "Bearer sk_test_123", r.Header.Get("Authorization"))

		require.NoError(t, r.ParseForm())
		assert.Equal(t, "700000", r.PostForm.Get("amount"))
		assert.Equal(t, "usd", r.PostForm.Get("currency"))
		assert.Equal(t, "ahmed@example.com", r.PostForm.Get("receipt_email"))
		assert.Equal(t, bookingID.String(), r.PostForm.Get("metadata[booking_id]"))

		json.NewEncoder(w).Encode(map[string]string{
			"id":            "pi_001",
			"client_secret": "pi_001_secret_xyz",
			"status":        "requires_confirmation",
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "sk_test_123", observability.NewLogger())
	secret, err := c.CreateIntent(context.Background(), 700000, bookingID, "ahmed@example.com")
	require.NoError(t, err)
	assert.Equal(t, "pi_001_secret_xyz", secret)
}

func TestConfirmCardPaymentSucceeded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/payment_intents/pi_001/confirm", r.URL.Path)

		require.NoError(t, r.ParseForm())
		assert.Equal(t, "card", r.PostForm.Get("payment_method_data[type]"))
		assert.Equal(t, "4242424242424242", r.PostForm.Get("payment_method_data[card][number]"))
		assert.Equal(t, "Ahmed Khan", r.PostForm.Get("payment_method_data[billing_details][name]"))

		json.NewEncoder(w).Encode(map[string]string{"id": "pi_001", "status": "succeeded"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "sk_test_123", observability.NewLogger())
	err := c.ConfirmCardPayment(context.Background(), "pi_001_secret_xyz",
		domain.CardDetails{Number: "4242424242424242", ExpMonth: "12", ExpYear: "2030", CVC: "123"},
		domain.BillingDetails{Name: "Ahmed Khan", Email: "ahmed@example.com"})
	require.NoError(t, err)
}

func TestConfirmCardPaymentDeclined(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]string{"message": "Your card was declined."},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "sk_test_123", observability.NewLogger())
	err := c.ConfirmCardPayment(context.Background(), "pi_001_secret_xyz", domain.CardDetails{}, domain.BillingDetails{})

	var perr *domain.PaymentError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "Your card was declined.", perr.Message)
}

func TestConfirmCardPaymentIncompleteStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"id": "pi_001", "status": "requires_action"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "sk_test_123", observability.NewLogger())
	err := c.ConfirmCardPayment(context.Background(), "pi_001_secret_xyz", domain.CardDetails{}, domain.BillingDetails{})

	var perr *domain.PaymentError
	require.ErrorAs(t, err, &perr)
	assert.Contains(t, perr.Message, "requires_action")
}

func TestConfirmCardPaymentBadSecret(t *testing.T) {
	c := NewClient("http://unused.invalid", "sk_test_123", observability.NewLogger())
	err := c.ConfirmCardPayment(context.Background(), "garbage", domain.CardDetails{}, domain.BillingDetails{})

	var perr *domain.PaymentError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "invalid client secret", perr.Message)
}
