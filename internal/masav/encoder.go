package masav

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sh5616107/gemach-management-system-sub001/internal/domain"
)

// Transaction type codes expected by the portal.
const (
	TypeDebit  = "006"
	TypeCredit = "007"
)

const (
	headerTag      = "K"
	transactionTag = "1"
	summaryTag     = "5"
	endSentinel    = '9'
	footerTag      = "KOT"
	currencyMarker = "00" // NIS
)

// Params identifies the submitting institution and the file being built.
type Params struct {
	InstitutionCode string // 8 digits
	SenderCode      string // 5 digits
	InstitutionName string
	ChargeDate      time.Time
	CreationDate    time.Time
	Serial          int    // per-day file serial
	TypeCode        string // TypeDebit or TypeCredit
}

// Charge is one debit or credit line: the payee's account and the amount
// pulled from the ledger at build time.
type Charge struct {
	BankCode   string
	BranchCode string
	Account    string
	NationalID string
	PayeeName  string
	Amount     decimal.Decimal
	Reference  string
}

// Encode builds the complete file: header, one record per charge, summary,
// end record. Any bad field aborts with an encoding error and no bytes.
func Encode(p Params, charges []Charge) ([]byte, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	if len(charges) == 0 {
		return nil, fmt.Errorf("%w: no charges to encode", domain.ErrEncoding)
	}

	var buf bytes.Buffer
	writeRecord(&buf, headerRecord(p))

	total := decimal.Zero
	for i, c := range charges {
		rec, err := transactionRecord(p, c)
		if err != nil {
			return nil, fmt.Errorf("charge %d: %w", i+1, err)
		}
		writeRecord(&buf, rec)
		total = total.Add(c.Amount)
	}

	rec, err := summaryRecord(p, total, len(charges))
	if err != nil {
		return nil, err
	}
	writeRecord(&buf, rec)
	writeRecord(&buf, strings.Repeat(string(endSentinel), recordLen))

	return buf.Bytes(), nil
}

func (p Params) validate() error {
	if len(p.InstitutionCode) != 8 {
		return fmt.Errorf("%w: institution code must be 8 digits", domain.ErrEncoding)
	}
	if len(p.SenderCode) != 5 {
		return fmt.Errorf("%w: sender code must be 5 digits", domain.ErrEncoding)
	}
	if p.TypeCode != TypeDebit && p.TypeCode != TypeCredit {
		return fmt.Errorf("%w: unknown transaction type code %q", domain.ErrEncoding, p.TypeCode)
	}
	if p.ChargeDate.IsZero() || p.CreationDate.IsZero() {
		return fmt.Errorf("%w: charge and creation dates are required", domain.ErrEncoding)
	}
	if p.Serial < 0 || p.Serial > 999 {
		return fmt.Errorf("%w: serial out of range", domain.ErrEncoding)
	}
	return nil
}

func writeRecord(buf *bytes.Buffer, rec string) {
	buf.WriteString(rec)
	buf.WriteString("\r\n")
}

// Header layout: tag 1, institution 8, currency 2, charge date 6, zero,
// serial 3, zero, creation date 6, sender 5, zeros 6, name 30, blanks 56,
// footer tag 3.
func headerRecord(p Params) string {
	var b strings.Builder
	b.WriteString(headerTag)
	b.WriteString(p.InstitutionCode)
	b.WriteString(currencyMarker)
	b.WriteString(FormatDate(p.ChargeDate))
	b.WriteString("0")
	b.WriteString(fmt.Sprintf("%03d", p.Serial))
	b.WriteString("0")
	b.WriteString(FormatDate(p.CreationDate))
	b.WriteString(p.SenderCode)
	b.WriteString(strings.Repeat("0", 6))
	b.WriteString(padText(p.InstitutionName, 30))
	b.WriteString(strings.Repeat(" ", 56))
	b.WriteString(footerTag)
	return b.String()
}

func transactionRecord(p Params, c Charge) (string, error) {
	bank, err := padNumber(c.BankCode, bankWidth)
	if err != nil {
		return "", err
	}
	branch, err := padNumber(c.BranchCode, branchWidth)
	if err != nil {
		return "", err
	}
	account, err := padNumber(c.Account, accountWidth)
	if err != nil {
		return "", err
	}
	nationalID, err := stripNationalID(c.NationalID)
	if err != nil {
		return "", err
	}
	amount, err := FormatAmount(c.Amount)
	if err != nil {
		return "", err
	}
	reference, err := padNumber(c.Reference, referenceWidth)
	if err != nil {
		return "", err
	}

	// Layout: tag 1, institution 8, currency 2, zeros 6, bank 2, branch 3,
	// account type 4, account 9, zero, national id 9, name 16, amount 13,
	// reference 20, bank reference 8, type code 3, blanks 23.
	var b strings.Builder
	b.WriteString(transactionTag)
	b.WriteString(p.InstitutionCode)
	b.WriteString(currencyMarker)
	b.WriteString(strings.Repeat("0", 6))
	b.WriteString(bank)
	b.WriteString(branch)
	b.WriteString(strings.Repeat("0", 4))
	b.WriteString(account)
	b.WriteString("0")
	b.WriteString(nationalID)
	b.WriteString(padName(c.PayeeName, nameWidth))
	b.WriteString(amount)
	b.WriteString(reference)
	b.WriteString(strings.Repeat("0", 8))
	b.WriteString(p.TypeCode)
	b.WriteString(strings.Repeat(" ", 23))
	return b.String(), nil
}

func summaryRecord(p Params, total decimal.Decimal, count int) (string, error) {
	minor := total.Shift(2).Round(0)
	totalField, err := padNumber(minor.String(), totalWidth)
	if err != nil {
		return "", err
	}
	countField, err := padNumber(strconv.Itoa(count), countWidth)
	if err != nil {
		return "", err
	}

	// Layout: tag 1, institution 8, currency 2, charge date 6, zero,
	// serial 3, zero, total 15, zeros 15, count 7, zeros 7, blanks 62.
	var b strings.Builder
	b.WriteString(summaryTag)
	b.WriteString(p.InstitutionCode)
	b.WriteString(currencyMarker)
	b.WriteString(FormatDate(p.ChargeDate))
	b.WriteString("0")
	b.WriteString(fmt.Sprintf("%03d", p.Serial))
	b.WriteString("0")
	b.WriteString(totalField)
	b.WriteString(strings.Repeat("0", 15))
	b.WriteString(countField)
	b.WriteString(strings.Repeat("0", 7))
	b.WriteString(strings.Repeat(" ", 62))
	return b.String(), nil
}
