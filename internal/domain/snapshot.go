package domain

// SnapshotVersion is the current on-disk format version. Load upgrades
// older snapshots through Migrate before anything reads them.
const SnapshotVersion = 3

// Snapshot is the whole ledger: every collection plus the id sequence.
// It is owned by the store; other components read it or call store
// mutators, never both.
type Snapshot struct {
	Version int `json:"version"`

	Borrowers      []*Borrower       `json:"borrowers"`
	Loans          []*Loan           `json:"loans"`
	Payments       []*Payment        `json:"payments"`
	Depositors     []*Depositor      `json:"depositors"`
	Deposits       []*Deposit        `json:"deposits"`
	Withdrawals    []*Withdrawal     `json:"withdrawals"`
	Donations      []*Donation       `json:"donations"`
	Guarantors     []*Guarantor      `json:"guarantors"`
	GuarantorDebts []*GuarantorDebt  `json:"guarantorDebts"`
	Blacklist      []*BlacklistEntry `json:"blacklist"`
	ClearingFiles  []*ClearingFile   `json:"clearingFiles"`

	// NextID is the next entity id to hand out. Ids are global across
	// collections so a payment's id doubles as its insertion order.
	NextID int64 `json:"nextId"`
}

// NewSnapshot returns an empty current-version snapshot.
func NewSnapshot() *Snapshot {
	return &Snapshot{Version: SnapshotVersion, NextID: 1}
}

func (s *Snapshot) BorrowerByID(id int64) *Borrower {
	for _, b := range s.Borrowers {
		if b.ID == id {
			return b
		}
	}
	return nil
}

func (s *Snapshot) LoanByID(id int64) *Loan {
	for _, l := range s.Loans {
		if l.ID == id {
			return l
		}
	}
	return nil
}

func (s *Snapshot) PaymentsByLoan(loanID int64) []*Payment {
	var out []*Payment
	for _, p := range s.Payments {
		if p.LoanID == loanID {
			out = append(out, p)
		}
	}
	return out
}

func (s *Snapshot) LoansByBorrower(borrowerID int64) []*Loan {
	var out []*Loan
	for _, l := range s.Loans {
		if l.BorrowerID == borrowerID {
			out = append(out, l)
		}
	}
	return out
}

func (s *Snapshot) DepositorByID(id int64) *Depositor {
	for _, d := range s.Depositors {
		if d.ID == id {
			return d
		}
	}
	return nil
}

func (s *Snapshot) DepositByID(id int64) *Deposit {
	for _, d := range s.Deposits {
		if d.ID == id {
			return d
		}
	}
	return nil
}

func (s *Snapshot) WithdrawalsByDeposit(depositID int64) []*Withdrawal {
	var out []*Withdrawal
	for _, w := range s.Withdrawals {
		if w.DepositID == depositID {
			out = append(out, w)
		}
	}
	return out
}

func (s *Snapshot) DonationByID(id int64) *Donation {
	for _, d := range s.Donations {
		if d.ID == id {
			return d
		}
	}
	return nil
}

func (s *Snapshot) GuarantorByID(id int64) *Guarantor {
	for _, g := range s.Guarantors {
		if g.ID == id {
			return g
		}
	}
	return nil
}

func (s *Snapshot) DebtByID(id int64) *GuarantorDebt {
	for _, d := range s.GuarantorDebts {
		if d.ID == id {
			return d
		}
	}
	return nil
}

func (s *Snapshot) DebtsByLoan(loanID int64) []*GuarantorDebt {
	var out []*GuarantorDebt
	for _, d := range s.GuarantorDebts {
		if d.OriginalLoanID == loanID {
			out = append(out, d)
		}
	}
	return out
}

// ActiveBlacklistEntry returns the single active entry for a person, or nil.
func (s *Snapshot) ActiveBlacklistEntry(t BlacklistType, personID int64) *BlacklistEntry {
	for _, e := range s.Blacklist {
		if e.Active && e.Type == t && e.PersonID == personID {
			return e
		}
	}
	return nil
}
