package store

import (
	"time"

	"github.com/sh5616107/gemach-management-system-sub001/internal/domain"
)

// Mutators apply already-validated changes to the in-memory snapshot.
// Services validate first, call one or more mutators, then Save once.

func (s *Store) AddBorrower(b *domain.Borrower) *domain.Borrower {
	b.ID = s.NextID()
	b.CreatedAt = time.Now()
	b.UpdatedAt = b.CreatedAt
	s.snap.Borrowers = append(s.snap.Borrowers, b)
	return b
}

func (s *Store) UpdateBorrower(b *domain.Borrower) {
	b.UpdatedAt = time.Now()
}

func (s *Store) DeleteBorrower(id int64) {
	s.snap.Borrowers = deleteByID(s.snap.Borrowers, id, func(b *domain.Borrower) int64 { return b.ID })
}

func (s *Store) AddLoan(l *domain.Loan) *domain.Loan {
	l.ID = s.NextID()
	l.CreatedAt = time.Now()
	l.UpdatedAt = l.CreatedAt
	s.snap.Loans = append(s.snap.Loans, l)
	return l
}

func (s *Store) UpdateLoan(l *domain.Loan) {
	l.UpdatedAt = time.Now()
}

func (s *Store) DeleteLoan(id int64) {
	s.snap.Loans = deleteByID(s.snap.Loans, id, func(l *domain.Loan) int64 { return l.ID })
	s.snap.Payments = deleteAllBy(s.snap.Payments, func(p *domain.Payment) bool { return p.LoanID == id })
}

func (s *Store) AddPayment(p *domain.Payment) *domain.Payment {
	p.ID = s.NextID()
	p.CreatedAt = time.Now()
	s.snap.Payments = append(s.snap.Payments, p)
	return p
}

func (s *Store) AddDepositor(d *domain.Depositor) *domain.Depositor {
	d.ID = s.NextID()
	d.CreatedAt = time.Now()
	d.UpdatedAt = d.CreatedAt
	s.snap.Depositors = append(s.snap.Depositors, d)
	return d
}

func (s *Store) UpdateDepositor(d *domain.Depositor) {
	d.UpdatedAt = time.Now()
}

func (s *Store) DeleteDepositor(id int64) {
	s.snap.Depositors = deleteByID(s.snap.Depositors, id, func(d *domain.Depositor) int64 { return d.ID })
}

func (s *Store) AddDeposit(d *domain.Deposit) *domain.Deposit {
	d.ID = s.NextID()
	d.CreatedAt = time.Now()
	d.UpdatedAt = d.CreatedAt
	s.snap.Deposits = append(s.snap.Deposits, d)
	return d
}

func (s *Store) UpdateDeposit(d *domain.Deposit) {
	d.UpdatedAt = time.Now()
}

func (s *Store) DeleteDeposit(id int64) {
	s.snap.Deposits = deleteByID(s.snap.Deposits, id, func(d *domain.Deposit) int64 { return d.ID })
	s.snap.Withdrawals = deleteAllBy(s.snap.Withdrawals, func(w *domain.Withdrawal) bool { return w.DepositID == id })
}

func (s *Store) AddWithdrawal(w *domain.Withdrawal) *domain.Withdrawal {
	w.ID = s.NextID()
	w.CreatedAt = time.Now()
	s.snap.Withdrawals = append(s.snap.Withdrawals, w)
	return w
}

func (s *Store) DeleteWithdrawal(id int64) {
	s.snap.Withdrawals = deleteByID(s.snap.Withdrawals, id, func(w *domain.Withdrawal) int64 { return w.ID })
}

func (s *Store) AddDonation(d *domain.Donation) *domain.Donation {
	d.ID = s.NextID()
	d.CreatedAt = time.Now()
	d.UpdatedAt = d.CreatedAt
	s.snap.Donations = append(s.snap.Donations, d)
	return d
}

func (s *Store) UpdateDonation(d *domain.Donation) {
	d.UpdatedAt = time.Now()
}

func (s *Store) DeleteDonation(id int64) {
	s.snap.Donations = deleteByID(s.snap.Donations, id, func(d *domain.Donation) int64 { return d.ID })
}

func (s *Store) AddGuarantor(g *domain.Guarantor) *domain.Guarantor {
	g.ID = s.NextID()
	g.CreatedAt = time.Now()
	g.UpdatedAt = g.CreatedAt
	s.snap.Guarantors = append(s.snap.Guarantors, g)
	return g
}

func (s *Store) UpdateGuarantor(g *domain.Guarantor) {
	g.UpdatedAt = time.Now()
}

func (s *Store) DeleteGuarantor(id int64) {
	s.snap.Guarantors = deleteByID(s.snap.Guarantors, id, func(g *domain.Guarantor) int64 { return g.ID })
}

func (s *Store) AddGuarantorDebt(d *domain.GuarantorDebt) *domain.GuarantorDebt {
	d.ID = s.NextID()
	d.CreatedAt = time.Now()
	d.UpdatedAt = d.CreatedAt
	s.snap.GuarantorDebts = append(s.snap.GuarantorDebts, d)
	return d
}

func (s *Store) UpdateGuarantorDebt(d *domain.GuarantorDebt) {
	d.UpdatedAt = time.Now()
}

func (s *Store) AddBlacklistEntry(e *domain.BlacklistEntry) *domain.BlacklistEntry {
	e.ID = s.NextID()
	s.snap.Blacklist = append(s.snap.Blacklist, e)
	return e
}

func (s *Store) AddClearingFile(f *domain.ClearingFile) *domain.ClearingFile {
	s.snap.ClearingFiles = append(s.snap.ClearingFiles, f)
	return f
}

func deleteByID[T any](items []*T, id int64, idOf func(*T) int64) []*T {
	out := items[:0]
	for _, it := range items {
		if idOf(it) != id {
			out = append(out, it)
		}
	}
	return out
}

func deleteAllBy[T any](items []*T, match func(*T) bool) []*T {
	out := items[:0]
	for _, it := range items {
		if !match(it) {
			out = append(out, it)
		}
	}
	return out
}
