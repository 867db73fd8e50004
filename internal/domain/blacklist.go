package domain

import "time"

type BlacklistType string

const (
	BlacklistBorrower  BlacklistType = "borrower"
	BlacklistGuarantor BlacklistType = "guarantor"
)

// BlacklistEntry blocks a person from new activity. At most one active
// entry may exist per (Type, PersonID); unblocking deactivates the entry
// instead of deleting it so the history survives.
type BlacklistEntry struct {
	ID          int64         `json:"id"`
	Type        BlacklistType `json:"type"`
	PersonID    int64         `json:"personId"`
	Reason      string        `json:"reason"`
	BlockedAt   time.Time     `json:"blockedAt"`
	UnblockedAt *time.Time    `json:"unblockedAt,omitempty"`
	Active      bool          `json:"active"`
}
