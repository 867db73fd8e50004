package service

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sh5616107/gemach-management-system-sub001/internal/config"
	"github.com/sh5616107/gemach-management-system-sub001/internal/domain"
	"github.com/sh5616107/gemach-management-system-sub001/internal/testutil"
)

func setupDepositTest(t *testing.T) (*DepositService, *domain.Depositor) {
	st := testutil.NewStore(t)
	svc := NewDepositService(st, zerolog.Nop())
	dep, err := svc.CreateDepositor(config.Settings{}, CreateDepositorInput{Name: "Katz"})
	require.NoError(t, err)
	return svc, dep
}

func TestWithdraw_NeverExceedsDeposit(t *testing.T) {
	svc, depositor := setupDepositTest(t)

	d, err := svc.CreateDeposit(CreateDepositInput{
		DepositorID: depositor.ID,
		Amount:      testutil.Amount(t, "3000"),
		Date:        testutil.Date(2024, 1, 1),
	})
	require.NoError(t, err)

	_, err = svc.Withdraw(d.ID, WithdrawInput{Amount: testutil.Amount(t, "2000"), Date: testutil.Date(2024, 2, 1)})
	require.NoError(t, err)

	_, err = svc.Withdraw(d.ID, WithdrawInput{Amount: testutil.Amount(t, "1000.01"), Date: testutil.Date(2024, 3, 1)})
	assert.ErrorIs(t, err, domain.ErrAmountExceedsBalance)

	balance, err := svc.Balance(d.ID)
	require.NoError(t, err)
	assert.True(t, balance.Equal(testutil.Amount(t, "1000")))
}

func TestWithdraw_ExactRemainderClosesDeposit(t *testing.T) {
	svc, depositor := setupDepositTest(t)

	d, err := svc.CreateDeposit(CreateDepositInput{
		DepositorID: depositor.ID,
		Amount:      testutil.Amount(t, "3000"),
		Date:        testutil.Date(2024, 1, 1),
	})
	require.NoError(t, err)

	_, err = svc.Withdraw(d.ID, WithdrawInput{Amount: testutil.Amount(t, "3000"), Date: testutil.Date(2024, 2, 1)})
	require.NoError(t, err)
	assert.Equal(t, domain.DepositStatusWithdrawn, d.Status)

	_, err = svc.Withdraw(d.ID, WithdrawInput{Amount: testutil.Amount(t, "1"), Date: testutil.Date(2024, 3, 1)})
	assert.ErrorIs(t, err, domain.ErrDepositWithdrawn)
}

func TestWithdraw_TemplateRejected(t *testing.T) {
	svc, depositor := setupDepositTest(t)

	tpl, err := svc.CreateDeposit(CreateDepositInput{
		DepositorID:  depositor.ID,
		Amount:       testutil.Amount(t, "500"),
		Date:         testutil.Date(2024, 1, 1),
		IsRecurring:  true,
		RecurringDay: 10,
	})
	require.NoError(t, err)

	_, err = svc.Withdraw(tpl.ID, WithdrawInput{Amount: testutil.Amount(t, "100"), Date: testutil.Date(2024, 2, 1)})
	assert.ErrorIs(t, err, domain.ErrRecurringTemplate)

	_, err = svc.Balance(tpl.ID)
	assert.ErrorIs(t, err, domain.ErrRecurringTemplate)
}

func TestCreateDeposit_Validation(t *testing.T) {
	svc, depositor := setupDepositTest(t)

	_, err := svc.CreateDeposit(CreateDepositInput{
		DepositorID: depositor.ID,
		Amount:      testutil.Amount(t, "-10"),
		Date:        testutil.Date(2024, 1, 1),
	})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.CreateDeposit(CreateDepositInput{
		DepositorID: 999,
		Amount:      testutil.Amount(t, "10"),
		Date:        testutil.Date(2024, 1, 1),
	})
	assert.ErrorIs(t, err, domain.ErrDepositorNotFound)

	_, err = svc.CreateDeposit(CreateDepositInput{
		DepositorID:  depositor.ID,
		Amount:       testutil.Amount(t, "10"),
		Date:         testutil.Date(2024, 1, 1),
		IsRecurring:  true,
		RecurringDay: 32,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidDueDay)
}

func TestDeleteDepositor_BlockedWhileHoldingFunds(t *testing.T) {
	svc, depositor := setupDepositTest(t)
	_, err := svc.CreateDeposit(CreateDepositInput{
		DepositorID: depositor.ID,
		Amount:      testutil.Amount(t, "3000"),
		Date:        testutil.Date(2024, 1, 1),
	})
	require.NoError(t, err)

	err = svc.DeleteDepositor(depositor.ID)
	if !errors.Is(err, domain.ErrState) {
		t.Errorf("got %v, want state error", err)
	}
}

func TestCreateDepositor_DuplicateName(t *testing.T) {
	svc, _ := setupDepositTest(t)
	_, err := svc.CreateDepositor(config.Settings{}, CreateDepositorInput{Name: "katz"})
	assert.ErrorIs(t, err, domain.ErrDuplicateName)
}
