package model

import (
	"time"

	"github.com/muhammadheryan/pos-terminal/constant"
)

type CheckoutItem struct {
	ProductID ProductID `json:"product_id" validate:"required"`
	Quantity  int64     `json:"quantity" validate:"gt=0"`
}

// CheckoutRequest is the body of POST /transaction.
type CheckoutRequest struct {
	CashierID     uint64                 `json:"cashier_id" validate:"required"`
	PaidAmount    int64                  `json:"paid_amount" validate:"gte=0"`
	PaymentMethod constant.PaymentMethod `json:"payment_method" validate:"payment_method"`
	Items         []CheckoutItem         `json:"items" validate:"required,min=1,dive"`
}

type ReceiptItem struct {
	ProductID ProductID `json:"product_id"`
	Quantity  int64     `json:"quantity"`
	Price     float64   `json:"price"`
	Subtotal  float64   `json:"subtotal"`
}

// TransactionReceipt is the transaction record the backend returns on success.
type TransactionReceipt struct {
	ID            uint64        `json:"id"`
	InvoiceNumber string        `json:"invoice_number"`
	CashierID     uint64        `json:"cashier_id"`
	TotalAmount   float64       `json:"total_amount"`
	PaidAmount    float64       `json:"paid_amount"`
	ChangeAmount  float64       `json:"change_amount"`
	PaymentMethod string        `json:"payment_method"`
	Status        string        `json:"status"`
	Items         []ReceiptItem `json:"items"`
}

type CheckoutPreview struct {
	PaymentMethod    constant.PaymentMethod `json:"payment_method"`
	Total            int64                  `json:"total"`
	Tendered         int64                  `json:"tendered"`
	Change           int64                  `json:"change"`
	ChangeApplicable bool                   `json:"change_applicable"`
	Valid            bool                   `json:"valid"`
	Violations       []string               `json:"violations,omitempty"`
}

type CheckoutResult struct {
	State   constant.CheckoutState `json:"state"`
	Total   int64                  `json:"total"`
	Paid    int64                  `json:"paid"`
	Change  int64                  `json:"change"`
	Receipt *TransactionReceipt    `json:"receipt,omitempty"`
}

// CheckoutStatus is what the coordinator reports between submissions.
type CheckoutStatus struct {
	State   constant.CheckoutState `json:"state"`
	Message string                 `json:"message,omitempty"`
	Result  *CheckoutResult        `json:"result,omitempty"`
}

// JournalEntry is one recorded checkout attempt.
type JournalEntry struct {
	ID            uint64                 `db:"id" json:"id"`
	SessionID     string                 `db:"session_id" json:"session_id"`
	CashierID     uint64                 `db:"cashier_id" json:"cashier_id"`
	PaymentMethod constant.PaymentMethod `db:"payment_method" json:"payment_method"`
	TotalAmount   int64                  `db:"total_amount" json:"total_amount"`
	PaidAmount    int64                  `db:"paid_amount" json:"paid_amount"`
	Status        constant.CheckoutState `db:"status" json:"status"`
	Message       string                 `db:"message" json:"message,omitempty"`
	InvoiceNumber string                 `db:"invoice_number" json:"invoice_number,omitempty"`
	CreatedAt     time.Time              `db:"created_at" json:"created_at"`
	Items         []CheckoutItem         `db:"-" json:"items,omitempty"`
}

// ReceiptEvent is published after the backend accepts a transaction.
type ReceiptEvent struct {
	SessionID     string                 `json:"session_id"`
	CashierID     uint64                 `json:"cashier_id"`
	InvoiceNumber string                 `json:"invoice_number"`
	PaymentMethod constant.PaymentMethod `json:"payment_method"`
	Total         int64                  `json:"total"`
	Paid          int64                  `json:"paid"`
	Change        int64                  `json:"change"`
	Items         []CheckoutItem         `json:"items"`
	CompletedAt   time.Time              `json:"completed_at"`
}
