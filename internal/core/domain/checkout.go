package domain

import "github.com/shopspring/decimal"

// CheckoutRequest is what the gateway needs to open a hosted payment page.
type CheckoutRequest struct {
	OrderID      string
	Amount       decimal.Decimal
	DonorName    string
	DonorEmail   string
	ItemName     string
	DonationCode string
}

// CheckoutSession is returned by the gateway after a checkout is opened.
type CheckoutSession struct {
	SessionToken         string
	RedirectURL          string
	GatewayTransactionID string
}
