// Package midtrans opens Snap checkout sessions through the Midtrans Go SDK.
package midtrans

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/SscSPs/donation_payment_app/internal/apperrors"
	"github.com/SscSPs/donation_payment_app/internal/core/domain"
	portssvc "github.com/SscSPs/donation_payment_app/internal/core/ports/services"
	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
)

type Client struct {
	snap snap.Client
}

var _ portssvc.GatewayClient = (*Client)(nil)

// NewClient returns a Snap client. baseURL is the Snap host, e.g. https://app.sandbox.midtrans.com.
// The production environment is selected when baseURL is the production Snap host.
func NewClient(baseURL, serverKey string, timeout time.Duration) *Client {
	baseURL = strings.TrimRight(baseURL, "/")
	env := midtrans.Sandbox
	if baseURL == midtrans.Production.SnapURL() {
		env = midtrans.Production
	}

	httpClient := midtrans.GetHttpClient(env)
	httpClient.HttpClient = &http.Client{Timeout: timeout}

	var c snap.Client
	c.New(serverKey, env)
	c.HttpClient = hostRewriter{
		HttpClient: httpClient,
		from:       env.SnapURL(),
		to:         baseURL,
	}
	return &Client{snap: c}
}

// hostRewriter sends SDK calls to a configured Snap host instead of the environment default.
type hostRewriter struct {
	midtrans.HttpClient
	from, to string
}

func (h hostRewriter) Call(method, url string, apiKey *string, options *midtrans.ConfigOptions, body io.Reader, result interface{}) *midtrans.Error {
	if h.to != "" {
		url = h.to + strings.TrimPrefix(url, h.from)
	}
	return h.HttpClient.Call(method, url, apiKey, options, body, result)
}

// Snap rejects item names longer than 50 characters.
func truncateName(name string) string {
	r := []rune(name)
	if len(r) > 50 {
		return string(r[:50])
	}
	return string(r)
}

// CreateCheckoutSession opens a Snap transaction for the order. The SDK call takes no
// context, so ctx is only checked before the call and the client timeout bounds it.
func (c *Client) CreateCheckoutSession(ctx context.Context, req domain.CheckoutRequest) (*domain.CheckoutSession, error) {
	if !req.Amount.IsInteger() {
		return nil, fmt.Errorf("%w: gross amount %s must be a whole number", apperrors.ErrGatewayRejected, req.Amount)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrGatewayUnavailable, err)
	}

	gross := req.Amount.IntPart()
	itemName := req.ItemName
	if itemName == "" {
		itemName = "Donation"
	}
	items := []midtrans.ItemDetails{{
		ID:    req.DonationCode,
		Name:  truncateName(itemName),
		Price: gross,
		Qty:   1,
	}}

	resp, snapErr := c.snap.CreateTransaction(&snap.Request{
		TransactionDetails: midtrans.TransactionDetails{OrderID: req.OrderID, GrossAmt: gross},
		CustomerDetail:     &midtrans.CustomerDetails{FName: req.DonorName, Email: req.DonorEmail},
		Items:              &items,
	})
	if snapErr != nil {
		return nil, mapSnapError(snapErr)
	}
	if resp == nil || resp.Token == "" || resp.RedirectURL == "" {
		detail := ""
		if resp != nil {
			detail = strings.Join(resp.ErrorMessages, "; ")
		}
		return nil, fmt.Errorf("%w: snap response missing token: %s", apperrors.ErrGatewayRejected, detail)
	}

	return &domain.CheckoutSession{
		SessionToken: resp.Token,
		RedirectURL:  resp.RedirectURL,
	}, nil
}

// mapSnapError classifies an SDK error. Only 4xx answers are rejections; transport
// failures, 5xx and unreadable bodies leave the gateway unavailable.
func mapSnapError(err *midtrans.Error) error {
	if err.StatusCode >= 400 && err.StatusCode < 500 {
		return fmt.Errorf("%w: snap returned %d: %s", apperrors.ErrGatewayRejected, err.StatusCode, err.Message)
	}
	return fmt.Errorf("%w: snap returned %d: %s", apperrors.ErrGatewayUnavailable, err.StatusCode, err.Message)
}
