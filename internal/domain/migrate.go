package domain

import "fmt"

// Migrate upgrades a loaded snapshot to SnapshotVersion, one version step
// at a time. It runs exactly once, at load; nothing else may touch the
// snapshot until it returns. Legacy denormalized fields (a deposit carrying
// its depositor's name and phone) are dropped on the floor by decoding and
// resolved through the owning depositor from here on.
func Migrate(s *Snapshot) error {
	if s.Version > SnapshotVersion {
		return fmt.Errorf("%w: snapshot version %d is newer than supported %d",
			ErrState, s.Version, SnapshotVersion)
	}
	if s.Version == 0 {
		s.Version = 1
	}
	for s.Version < SnapshotVersion {
		switch s.Version {
		case 1:
			migratePaymentIDs(s)
		case 2:
			migrateDefaults(s)
		}
		s.Version++
	}
	fixSequence(s)
	return nil
}

// v1 snapshots stored payments without ids; the slice order is the
// insertion order, which later tie-breaks same-date repayments.
func migratePaymentIDs(s *Snapshot) {
	for _, p := range s.Payments {
		if p.ID == 0 {
			p.ID = s.NextID
			s.NextID++
		}
	}
}

// v2 snapshots predate explicit statuses on some records.
func migrateDefaults(s *Snapshot) {
	for _, l := range s.Loans {
		if l.Status == "" {
			l.Status = LoanStatusActive
		}
	}
	for _, d := range s.Deposits {
		if d.Status == "" {
			d.Status = DepositStatusActive
		}
	}
	for _, g := range s.Guarantors {
		if g.Status == "" {
			g.Status = GuarantorStatusActive
		}
	}
	for _, d := range s.GuarantorDebts {
		if d.Status == "" {
			d.Status = DebtStatusActive
		}
	}
	for _, f := range s.ClearingFiles {
		if f.Status == "" {
			f.Status = ClearingStatusPending
		}
	}
}

// fixSequence guarantees NextID is past every id already in use, whatever
// version the snapshot came from.
func fixSequence(s *Snapshot) {
	max := s.NextID
	bump := func(id int64) {
		if id >= max {
			max = id + 1
		}
	}
	for _, b := range s.Borrowers {
		bump(b.ID)
	}
	for _, l := range s.Loans {
		bump(l.ID)
	}
	for _, p := range s.Payments {
		bump(p.ID)
	}
	for _, d := range s.Depositors {
		bump(d.ID)
	}
	for _, d := range s.Deposits {
		bump(d.ID)
	}
	for _, w := range s.Withdrawals {
		bump(w.ID)
	}
	for _, d := range s.Donations {
		bump(d.ID)
	}
	for _, g := range s.Guarantors {
		bump(g.ID)
	}
	for _, d := range s.GuarantorDebts {
		bump(d.ID)
	}
	for _, e := range s.Blacklist {
		bump(e.ID)
	}
	if max < 1 {
		max = 1
	}
	s.NextID = max
}
