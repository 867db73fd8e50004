package domain

import (
	"errors"
	"testing"
)

func TestMigrate_BackfillsPaymentIDs(t *testing.T) {
	snap := &Snapshot{
		Version: 1,
		NextID:  1,
		Payments: []*Payment{
			{LoanID: 5, Amount: amt("100")},
			{LoanID: 5, Amount: amt("200")},
			{LoanID: 5, Amount: amt("300")},
		},
	}

	if err := Migrate(snap); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	// Ids follow insertion order so same-date tie-breaks stay stable.
	for i, p := range snap.Payments {
		if p.ID != int64(i+1) {
			t.Errorf("payment %d: id = %d, want %d", i, p.ID, i+1)
		}
	}
	if snap.Version != SnapshotVersion {
		t.Errorf("version = %d, want %d", snap.Version, SnapshotVersion)
	}
	if snap.NextID != 4 {
		t.Errorf("next id = %d, want 4", snap.NextID)
	}
}

func TestMigrate_DefaultsStatuses(t *testing.T) {
	snap := &Snapshot{
		Version:        2,
		Loans:          []*Loan{{ID: 1, Amount: amt("100")}},
		Deposits:       []*Deposit{{ID: 2, Amount: amt("100")}},
		Guarantors:     []*Guarantor{{ID: 3}},
		GuarantorDebts: []*GuarantorDebt{{ID: 4, Amount: amt("50")}},
	}

	if err := Migrate(snap); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	if snap.Loans[0].Status != LoanStatusActive {
		t.Errorf("loan status = %q, want active", snap.Loans[0].Status)
	}
	if snap.Deposits[0].Status != DepositStatusActive {
		t.Errorf("deposit status = %q, want active", snap.Deposits[0].Status)
	}
	if snap.Guarantors[0].Status != GuarantorStatusActive {
		t.Errorf("guarantor status = %q, want active", snap.Guarantors[0].Status)
	}
	if snap.GuarantorDebts[0].Status != DebtStatusActive {
		t.Errorf("debt status = %q, want active", snap.GuarantorDebts[0].Status)
	}
}

func TestMigrate_FixesSequencePastExistingIDs(t *testing.T) {
	snap := &Snapshot{
		Version:   SnapshotVersion,
		NextID:    1,
		Borrowers: []*Borrower{{ID: 41}},
		Loans:     []*Loan{{ID: 57, Amount: amt("100"), Status: LoanStatusActive}},
	}

	if err := Migrate(snap); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if snap.NextID != 58 {
		t.Errorf("next id = %d, want 58", snap.NextID)
	}
}

func TestMigrate_RejectsNewerSnapshot(t *testing.T) {
	snap := &Snapshot{Version: SnapshotVersion + 1}
	err := Migrate(snap)
	if !errors.Is(err, ErrState) {
		t.Errorf("got %v, want state error", err)
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	snap := &Snapshot{
		Version:  1,
		NextID:   1,
		Payments: []*Payment{{LoanID: 5, Amount: amt("100")}},
	}
	if err := Migrate(snap); err != nil {
		t.Fatalf("first migrate: %v", err)
	}
	id, next := snap.Payments[0].ID, snap.NextID
	if err := Migrate(snap); err != nil {
		t.Fatalf("second migrate: %v", err)
	}
	if snap.Payments[0].ID != id || snap.NextID != next {
		t.Error("second migrate changed an already-current snapshot")
	}
}
