package domain

import (
	"time"

	"github.com/google/uuid"
)

type Invoice struct {
	ID              uuid.UUID  `json:"id" db:"id"`
	UserID          uuid.UUID  `json:"user_id" db:"user_id"`
	Title           string     `json:"title" db:"title"`
	Amount          float64    `json:"amount" db:"amount"`
	Status          string     `json:"status" db:"status"`
	StripeSessionID *string    `json:"stripe_session_id,omitempty" db:"stripe_session_id"`
	AmountTotal     *int64     `json:"amount_total,omitempty" db:"amount_total"`
	PaidAt          *time.Time `json:"paid_at,omitempty" db:"paid_at"`
	CreatedAt       time.Time  `json:"created_at" db:"created_at"`
}

const (
	InvoiceStatusOpen = "open"
	InvoiceStatusPaid = "paid"
)

type CheckoutInput struct {
	// Amount is in the smallest currency unit (cents).
	Amount      int64  `json:"amount"`
	Currency    string `json:"currency"`
	Title       string `json:"title"`
	Description string `json:"description"`
	InvoiceID   string `json:"invoice_id"`
	SuccessURL  string `json:"success_url"`
	CancelURL   string `json:"cancel_url"`
}
