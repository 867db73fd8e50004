package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentType string

const (
	PaymentTypeDisbursement PaymentType = "disbursement"
	PaymentTypeRepayment    PaymentType = "repayment"
)

type PayerRole string

const (
	PayerBorrower  PayerRole = "borrower"
	PayerGuarantor PayerRole = "guarantor"
)

// Payment is one entry in a loan's append-only ledger. Disbursements and
// repayments share the same sequence; ID is the insertion order and breaks
// ties between payments on the same date.
type Payment struct {
	ID     int64           `json:"id"`
	LoanID int64           `json:"loanId"`
	Amount decimal.Decimal `json:"amount"`
	Date   time.Time       `json:"date"`
	Type   PaymentType     `json:"type"`
	Method PaymentMethod   `json:"method"`

	// Set when the payment settles a guarantor debt rather than the loan
	// itself.
	GuarantorDebtID int64     `json:"guarantorDebtId,omitempty"`
	PaidBy          PayerRole `json:"paidBy,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

func (p *Payment) Validate() error {
	if p.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}
	if p.Date.IsZero() {
		return ErrInvalidDate
	}
	if p.Type != PaymentTypeDisbursement && p.Type != PaymentTypeRepayment {
		return ErrInvalidPaymentType
	}
	return p.Method.Validate()
}
