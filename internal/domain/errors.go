package domain

import (
	"errors"
	"fmt"
)

// Error taxonomy. Every expected failure wraps exactly one of these, so
// callers can branch on the category with errors.Is without matching
// message text.
var (
	ErrValidation = errors.New("validation error")
	ErrConflict   = errors.New("conflict")
	ErrState      = errors.New("invalid state")
	ErrIntegrity  = errors.New("integrity error")
	ErrEncoding   = errors.New("encoding error")
	ErrNotFound   = errors.New("not found")
)

// Specific errors. Each one also matches its taxonomy category via errors.Is.
var (
	ErrBorrowerNotFound  = fmt.Errorf("%w: borrower", ErrNotFound)
	ErrLoanNotFound      = fmt.Errorf("%w: loan", ErrNotFound)
	ErrDepositorNotFound = fmt.Errorf("%w: depositor", ErrNotFound)
	ErrDepositNotFound   = fmt.Errorf("%w: deposit", ErrNotFound)
	ErrDonationNotFound  = fmt.Errorf("%w: donation", ErrNotFound)
	ErrGuarantorNotFound = fmt.Errorf("%w: guarantor", ErrNotFound)
	ErrDebtNotFound      = fmt.Errorf("%w: guarantor debt", ErrNotFound)
	ErrPaymentNotFound   = fmt.Errorf("%w: payment", ErrNotFound)

	ErrNameRequired      = fmt.Errorf("%w: name is required", ErrValidation)
	ErrNameTooLong       = fmt.Errorf("%w: name exceeds maximum length", ErrValidation)
	ErrInvalidAmount     = fmt.Errorf("%w: amount must be positive", ErrValidation)
	ErrInvalidDate       = fmt.Errorf("%w: invalid date", ErrValidation)
	ErrInvalidNationalID = fmt.Errorf("%w: invalid national id", ErrValidation)
	ErrInvalidDueDay     = fmt.Errorf("%w: day of month must be between 1 and 31", ErrValidation)
	ErrInvalidLoanType   = fmt.Errorf("%w: loan type must be fixed or flexible", ErrValidation)

	ErrInvalidPaymentType = fmt.Errorf("%w: payment type must be disbursement or repayment", ErrValidation)

	ErrInvalidRecurringMonths = fmt.Errorf("%w: recurring months must be at least 1", ErrValidation)

	ErrDuplicateNationalID = fmt.Errorf("%w: national id already registered", ErrConflict)
	ErrDuplicateName       = fmt.Errorf("%w: name already registered", ErrConflict)

	ErrAmountExceedsBalance   = fmt.Errorf("%w: amount exceeds balance", ErrState)
	ErrBorrowerHasActiveLoans = fmt.Errorf("%w: borrower has active loans", ErrState)
	ErrLoanAlreadyTransferred = fmt.Errorf("%w: loan already transferred to guarantors", ErrState)
	ErrGuarantorBlacklisted   = fmt.Errorf("%w: guarantor is blacklisted", ErrState)
	ErrDepositWithdrawn       = fmt.Errorf("%w: deposit already fully withdrawn", ErrState)
	ErrRecurringTemplate      = fmt.Errorf("%w: operation not valid for a recurring template", ErrState)

	ErrSplitMismatch  = fmt.Errorf("%w: guarantor split does not match loan balance", ErrIntegrity)
	ErrDueDateInPast  = fmt.Errorf("%w: installment due date is in the past", ErrIntegrity)
	ErrEmptySplit     = fmt.Errorf("%w: guarantor split is empty", ErrIntegrity)
	ErrAlreadyBlocked = fmt.Errorf("%w: person already has an active blacklist entry", ErrConflict)
)
