package service

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sh5616107/gemach-management-system-sub001/internal/config"
	"github.com/sh5616107/gemach-management-system-sub001/internal/domain"
	"github.com/sh5616107/gemach-management-system-sub001/internal/testutil"
)

func TestBlacklist_OneActiveEntryPerPerson(t *testing.T) {
	st := testutil.NewStore(t)
	svc := NewGuarantorService(st, zerolog.Nop())
	svc.now = func() time.Time { return testutil.Date(2024, 6, 1) }
	g := testutil.AddGuarantor(t, st, "Aharon")

	entry, err := svc.Blacklist(domain.BlacklistGuarantor, g.ID, "defaulted on debt 7")
	require.NoError(t, err)
	assert.True(t, entry.Active)
	assert.Equal(t, domain.GuarantorStatusBlacklisted, g.Status)

	_, err = svc.Blacklist(domain.BlacklistGuarantor, g.ID, "again")
	assert.ErrorIs(t, err, domain.ErrAlreadyBlocked)
	assert.ErrorIs(t, err, domain.ErrConflict)

	// Unblocking reopens the person and keeps the entry as history.
	require.NoError(t, svc.Unblock(domain.BlacklistGuarantor, g.ID))
	assert.False(t, entry.Active)
	require.NotNil(t, entry.UnblockedAt)
	assert.Equal(t, domain.GuarantorStatusActive, g.Status)
	assert.Nil(t, st.Snapshot().ActiveBlacklistEntry(domain.BlacklistGuarantor, g.ID))

	// A fresh block after an unblock is allowed again.
	_, err = svc.Blacklist(domain.BlacklistGuarantor, g.ID, "defaulted once more")
	require.NoError(t, err)
}

func TestBlacklist_UnknownPerson(t *testing.T) {
	st := testutil.NewStore(t)
	svc := NewGuarantorService(st, zerolog.Nop())

	_, err := svc.Blacklist(domain.BlacklistGuarantor, 404, "missing")
	assert.ErrorIs(t, err, domain.ErrGuarantorNotFound)

	_, err = svc.Blacklist(domain.BlacklistBorrower, 404, "missing")
	assert.ErrorIs(t, err, domain.ErrBorrowerNotFound)
}

func TestCreateGuarantor_Conflicts(t *testing.T) {
	st := testutil.NewStore(t)
	svc := NewGuarantorService(st, zerolog.Nop())

	_, err := svc.CreateGuarantor(config.Settings{}, GuarantorInput{Name: "Aharon", NationalID: "123456782"})
	require.NoError(t, err)

	_, err = svc.CreateGuarantor(config.Settings{}, GuarantorInput{Name: "aharon"})
	assert.ErrorIs(t, err, domain.ErrDuplicateName)

	_, err = svc.CreateGuarantor(config.Settings{}, GuarantorInput{Name: "Someone Else", NationalID: "123456782"})
	assert.ErrorIs(t, err, domain.ErrDuplicateNationalID)
}

func TestCreateGuarantor_NationalIDChecksum(t *testing.T) {
	st := testutil.NewStore(t)
	svc := NewGuarantorService(st, zerolog.Nop())
	strict := config.Settings{RequireNationalID: true}

	_, err := svc.CreateGuarantor(strict, GuarantorInput{Name: "Aharon", NationalID: "123456789"})
	assert.ErrorIs(t, err, domain.ErrInvalidNationalID)

	// The same input passes when the settings flag is off.
	_, err = svc.CreateGuarantor(config.Settings{}, GuarantorInput{Name: "Aharon", NationalID: "123456789"})
	assert.NoError(t, err)
}

func TestDeleteGuarantor_BlockedByLiveDebt(t *testing.T) {
	st := testutil.NewStore(t)
	svc := NewGuarantorService(st, zerolog.Nop())
	g := testutil.AddGuarantor(t, st, "Aharon")
	st.AddGuarantorDebt(&domain.GuarantorDebt{
		OriginalLoanID: 7, GuarantorID: g.ID,
		Amount: testutil.Amount(t, "1000"), Status: domain.DebtStatusActive,
	})
	require.NoError(t, st.Save())

	err := svc.DeleteGuarantor(g.ID)
	assert.ErrorIs(t, err, domain.ErrState)
}
