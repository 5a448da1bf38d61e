package midtrans

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/donation_payment_app/internal/apperrors"
	"github.com/SscSPs/donation_payment_app/internal/core/domain"
	"github.com/midtrans/midtrans-go/snap"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const snapTransactionsPath = "/snap/v1/transactions"

func checkoutRequest() domain.CheckoutRequest {
	return domain.CheckoutRequest{
		OrderID:      "DPF-20250101123000-AB12X",
		Amount:       decimal.RequireFromString("50000.00"),
		DonorName:    "Budi",
		DonorEmail:   "budi@example.com",
		ItemName:     "Clean water for Lombok",
		DonationCode: "DON-20250101-0001",
	}
}

func TestCreateCheckoutSession_Success(t *testing.T) {
	var got snap.Request
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, snapTransactionsPath, r.URL.Path)
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "SB-Mid-server-key", user)
		assert.Empty(t, pass)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"token":"snap-token","redirect_url":"https://app.sandbox.midtrans.com/snap/v2/vtweb/snap-token"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL+"/", "SB-Mid-server-key", time.Second)
	session, err := client.CreateCheckoutSession(context.Background(), checkoutRequest())

	require.NoError(t, err)
	assert.Equal(t, "snap-token", session.SessionToken)
	assert.Contains(t, session.RedirectURL, "snap-token")
	assert.Equal(t, "DPF-20250101123000-AB12X", got.TransactionDetails.OrderID)
	assert.Equal(t, int64(50000), got.TransactionDetails.GrossAmt)
	require.NotNil(t, got.Items)
	require.Len(t, *got.Items, 1)
	assert.Equal(t, got.TransactionDetails.GrossAmt, (*got.Items)[0].Price)
	assert.Equal(t, "DON-20250101-0001", (*got.Items)[0].ID)
	require.NotNil(t, got.CustomerDetail)
	assert.Equal(t, "budi@example.com", got.CustomerDetail.Email)
}

func TestCreateCheckoutSession_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{"validation error", http.StatusBadRequest, `{"error_messages":["transaction_details.gross_amount is required"]}`, apperrors.ErrGatewayRejected},
		{"unauthorized", http.StatusUnauthorized, `{"error_messages":["Access denied"]}`, apperrors.ErrGatewayRejected},
		{"server error", http.StatusInternalServerError, `oops`, apperrors.ErrGatewayUnavailable},
		{"server error with json", http.StatusServiceUnavailable, `{"error_messages":["try again"]}`, apperrors.ErrGatewayUnavailable},
		{"malformed body", http.StatusCreated, `not json`, apperrors.ErrGatewayUnavailable},
		{"missing token", http.StatusCreated, `{"redirect_url":"x"}`, apperrors.ErrGatewayRejected},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			session, err := NewClient(server.URL, "key", time.Second).CreateCheckoutSession(context.Background(), checkoutRequest())
			assert.Nil(t, session)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCreateCheckoutSession_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := NewClient(url, "key", time.Second).CreateCheckoutSession(context.Background(), checkoutRequest())
	assert.ErrorIs(t, err, apperrors.ErrGatewayUnavailable)
}

func TestCreateCheckoutSession_RejectsFractionalAmount(t *testing.T) {
	req := checkoutRequest()
	req.Amount = decimal.RequireFromString("100.50")

	_, err := NewClient("http://unused", "key", time.Second).CreateCheckoutSession(context.Background(), req)
	assert.ErrorIs(t, err, apperrors.ErrGatewayRejected)
}

func TestCreateCheckoutSession_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewClient("http://unused", "key", time.Second).CreateCheckoutSession(ctx, checkoutRequest())
	assert.ErrorIs(t, err, apperrors.ErrGatewayUnavailable)
}

func TestTruncateName(t *testing.T) {
	long := "Pembangunan masjid dan sekolah di desa terpencil wilayah timur"
	assert.Len(t, []rune(truncateName(long)), 50)
	assert.Equal(t, "short", truncateName("short"))
}
