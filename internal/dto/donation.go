package dto

import (
	"time"

	"github.com/SscSPs/donation_payment_app/internal/core/domain"
	"github.com/SscSPs/donation_payment_app/internal/utils"
	"github.com/shopspring/decimal"
)

// CreateDonationRequest defines the data a donor submits to start a donation.
type CreateDonationRequest struct {
	ProgramID     *string         `json:"programId" binding:"omitempty,uuid"`
	Amount        decimal.Decimal `json:"amount" binding:"required,positive_decimal" swaggertype:"string" example:"50000"`
	DonorName     string          `json:"donorName" binding:"required,max=120"`
	DonorEmail    string          `json:"donorEmail" binding:"omitempty,email"`
	Message       string          `json:"message" binding:"max=500"`
	PaymentSource string          `json:"paymentSource" binding:"required,oneof=gateway manual"`
	ProofURL      string          `json:"proofUrl" binding:"omitempty,url"` // Required for manual payments
}

// CheckoutResponse is returned to the donor after a donation is created.
type CheckoutResponse struct {
	DonationCode string  `json:"donationCode"`
	Status       string  `json:"status"`
	Amount       string  `json:"amount"`
	SessionToken *string `json:"sessionToken,omitempty"`
	RedirectURL  *string `json:"redirectUrl,omitempty"`
}

// PublicDonationResponse is the donor-facing status view. It carries no donor details.
type PublicDonationResponse struct {
	DonationCode string     `json:"donationCode"`
	ProgramID    *string    `json:"programId,omitempty"`
	Amount       string     `json:"amount"`
	Status       string     `json:"status"`
	PaidAt       *time.Time `json:"paidAt,omitempty"`
}

// DonationResponse is the operator view of a donation.
type DonationResponse struct {
	DonationID           string     `json:"donationID"`
	DonationCode         string     `json:"donationCode"`
	ProgramID            *string    `json:"programID,omitempty"`
	Amount               string     `json:"amount"`
	Status               string     `json:"status"`
	PaymentSource        string     `json:"paymentSource"`
	DonorName            string     `json:"donorName"`
	DonorEmail           string     `json:"donorEmail,omitempty"`
	Message              string     `json:"message,omitempty"`
	ProofURL             string     `json:"proofURL,omitempty"`
	GatewayOrderID       *string    `json:"gatewayOrderID,omitempty"`
	GatewayTransactionID *string    `json:"gatewayTransactionID,omitempty"`
	PaidAt               *time.Time `json:"paidAt,omitempty"`
	ConfirmedBy          *string    `json:"confirmedBy,omitempty"`
	CreatedAt            time.Time  `json:"createdAt"`
	LastUpdatedAt        time.Time  `json:"lastUpdatedAt"`
	LastUpdatedBy        string     `json:"lastUpdatedBy"`
}

// ListDonationsParams defines the query parameters for listing donations.
type ListDonationsParams struct {
	Status    string  `form:"status" binding:"omitempty,oneof=pending paid failed expired"`
	Limit     int     `form:"limit" binding:"omitempty,min=1,max=100"`
	NextToken *string `form:"nextToken"`
}

// ListDonationsResponse wraps a page of donations.
type ListDonationsResponse struct {
	Donations []DonationResponse `json:"donations"`
	NextToken *string            `json:"nextToken,omitempty"`
}

// ToCheckoutResponse converts a domain.Donation to CheckoutResponse DTO.
func ToCheckoutResponse(d *domain.Donation) CheckoutResponse {
	return CheckoutResponse{
		DonationCode: d.DonationCode,
		Status:       string(d.Status),
		Amount:       utils.FormatAmount(d.Amount),
		SessionToken: d.SessionToken,
		RedirectURL:  d.RedirectURL,
	}
}

// ToPublicDonationResponse converts a domain.Donation to PublicDonationResponse DTO.
func ToPublicDonationResponse(d *domain.Donation) PublicDonationResponse {
	return PublicDonationResponse{
		DonationCode: d.DonationCode,
		ProgramID:    d.ProgramID,
		Amount:       utils.FormatAmount(d.Amount),
		Status:       string(d.Status),
		PaidAt:       d.PaidAt,
	}
}

// ToDonationResponse converts a domain.Donation to DonationResponse DTO.
func ToDonationResponse(d *domain.Donation) DonationResponse {
	return DonationResponse{
		DonationID:           d.DonationID,
		DonationCode:         d.DonationCode,
		ProgramID:            d.ProgramID,
		Amount:               utils.FormatAmount(d.Amount),
		Status:               string(d.Status),
		PaymentSource:        string(d.PaymentSource),
		DonorName:            d.DonorName,
		DonorEmail:           d.DonorEmail,
		Message:              d.Message,
		ProofURL:             d.ProofURL,
		GatewayOrderID:       d.GatewayOrderID,
		GatewayTransactionID: d.GatewayTransactionID,
		PaidAt:               d.PaidAt,
		ConfirmedBy:          d.ConfirmedBy,
		CreatedAt:            d.CreatedAt,
		LastUpdatedAt:        d.LastUpdatedAt,
		LastUpdatedBy:        d.LastUpdatedBy,
	}
}

// ToDonationResponses converts a slice of domain.Donation to []DonationResponse.
func ToDonationResponses(donations []domain.Donation) []DonationResponse {
	responses := make([]DonationResponse, len(donations))
	for i, d := range donations {
		responses[i] = ToDonationResponse(&d)
	}
	return responses
}
