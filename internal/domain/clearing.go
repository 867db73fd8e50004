package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type ClearingFileStatus string

const (
	ClearingStatusPending   ClearingFileStatus = "pending"
	ClearingStatusConfirmed ClearingFileStatus = "confirmed"
	ClearingStatusCancelled ClearingFileStatus = "cancelled"
)

// ClearingFile is a generated bank submission. Content is immutable history
// once written; only Status moves, after the bank accepts or rejects it.
type ClearingFile struct {
	ID          string             `json:"id"`
	ChargeDate  time.Time          `json:"chargeDate"`
	FileName    string             `json:"fileName"`
	Content     []byte             `json:"content"`
	RecordCount int                `json:"recordCount"`
	TotalAmount decimal.Decimal    `json:"totalAmount"`
	Status      ClearingFileStatus `json:"status"`
	CreatedAt   time.Time          `json:"createdAt"`
}
