package service

import (
	"bytes"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sh5616107/gemach-management-system-sub001/internal/config"
	"github.com/sh5616107/gemach-management-system-sub001/internal/domain"
	"github.com/sh5616107/gemach-management-system-sub001/internal/store"
	"github.com/sh5616107/gemach-management-system-sub001/internal/testutil"
)

func setupClearingTest(t *testing.T) (*ClearingService, *store.Store, *domain.Loan) {
	st := testutil.NewStore(t)
	b := st.AddBorrower(&domain.Borrower{
		Name:       "Levi",
		NationalID: "123456782",
		Bank:       &domain.BankDetails{BankCode: "12", BranchCode: "690", Account: "123456"},
	})
	loan := st.AddLoan(&domain.Loan{
		BorrowerID: b.ID,
		Amount:     testutil.Amount(t, "12000"),
		LoanDate:   testutil.Date(2024, 1, 1),
		ReturnDate: testutil.Date(2025, 1, 1),
		Type:       domain.LoanTypeFixed,
		Status:     domain.LoanStatusActive,
		AutoPay:    &domain.AutoPayment{Amount: testutil.Amount(t, "500"), DayOfMonth: 10},
	})
	require.NoError(t, st.Save())

	svc := NewClearingService(st, config.Masav{
		InstitutionCode: "12345678",
		SenderCode:      "54321",
		InstitutionName: "Gemach",
	}, zerolog.Nop())
	svc.now = func() time.Time { return testutil.Date(2024, 6, 1) }
	return svc, st, loan
}

func enabled() config.Settings {
	return config.Settings{EnableClearing: true}
}

func TestBuildFile_DisabledBySettings(t *testing.T) {
	svc, _, loan := setupClearingTest(t)
	_, err := svc.BuildFile(config.Settings{}, testutil.Date(2024, 7, 10), 1, []int64{loan.ID})
	assert.ErrorIs(t, err, domain.ErrState)
}

func TestBuildFile_StoresPendingFile(t *testing.T) {
	svc, st, loan := setupClearingTest(t)

	file, err := svc.BuildFile(enabled(), testutil.Date(2024, 7, 10), 1, []int64{loan.ID})
	require.NoError(t, err)

	assert.Equal(t, domain.ClearingStatusPending, file.Status)
	assert.Equal(t, "msv_240710.001", file.FileName)
	assert.Equal(t, 1, file.RecordCount)
	assert.True(t, file.TotalAmount.Equal(testutil.Amount(t, "500")))
	assert.NotEmpty(t, file.ID)

	records := bytes.Split(file.Content, []byte("\r\n"))
	require.Len(t, records, 5) // header, tx, summary, end, trailing empty
	for _, rec := range records[:4] {
		assert.Len(t, rec, 128)
	}

	require.Len(t, st.Snapshot().ClearingFiles, 1)
}

func TestBuildFile_ChargeCappedAtBalance(t *testing.T) {
	svc, st, loan := setupClearingTest(t)
	// Repay down to 300; the 500 standing order must charge only 300.
	st.AddPayment(&domain.Payment{
		LoanID: loan.ID,
		Amount: testutil.Amount(t, "11700"),
		Date:   testutil.Date(2024, 5, 1),
		Type:   domain.PaymentTypeRepayment,
		Method: domain.CashPayment(),
	})
	require.NoError(t, st.Save())

	file, err := svc.BuildFile(enabled(), testutil.Date(2024, 7, 10), 1, []int64{loan.ID})
	require.NoError(t, err)
	assert.True(t, file.TotalAmount.Equal(testutil.Amount(t, "300")))
}

func TestBuildFile_FailFastStoresNothing(t *testing.T) {
	svc, st, loan := setupClearingTest(t)
	// Second loan without an auto-payment template poisons the batch.
	bad := st.AddLoan(&domain.Loan{
		BorrowerID: loan.BorrowerID,
		Amount:     testutil.Amount(t, "100"),
		LoanDate:   testutil.Date(2024, 1, 1),
		ReturnDate: testutil.Date(2025, 1, 1),
		Type:       domain.LoanTypeFixed,
		Status:     domain.LoanStatusActive,
	})
	require.NoError(t, st.Save())

	_, err := svc.BuildFile(enabled(), testutil.Date(2024, 7, 10), 1, []int64{loan.ID, bad.ID})
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Empty(t, st.Snapshot().ClearingFiles, "a failed build stores nothing")
}

func TestUpdateStatus(t *testing.T) {
	svc, _, loan := setupClearingTest(t)
	file, err := svc.BuildFile(enabled(), testutil.Date(2024, 7, 10), 1, []int64{loan.ID})
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(file.ID, domain.ClearingStatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, domain.ClearingStatusConfirmed, updated.Status)

	_, err = svc.UpdateStatus(file.ID, "shredded")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.UpdateStatus("no-such-id", domain.ClearingStatusCancelled)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
