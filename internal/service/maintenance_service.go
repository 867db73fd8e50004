package service

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/sh5616107/gemach-management-system-sub001/internal/domain"
	"github.com/sh5616107/gemach-management-system-sub001/internal/store"
	"github.com/sh5616107/gemach-management-system-sub001/internal/util"
)

// MaintenanceService runs the engine-start passes: materializing recurring
// deposits and loans, and sweeping guarantor debts for overdue ones. Both
// passes are idempotent; running them twice on the same day changes
// nothing the second time.
type MaintenanceService struct {
	store      *store.Store
	guarantors *GuarantorService
	log        zerolog.Logger
	now        func() time.Time
}

func NewMaintenanceService(st *store.Store, guarantors *GuarantorService, log zerolog.Logger) *MaintenanceService {
	return &MaintenanceService{store: st, guarantors: guarantors, log: log, now: time.Now}
}

// MaintenanceResult reports what a pass did.
type MaintenanceResult struct {
	CreatedDeposits []*domain.Deposit
	CreatedLoans    []*domain.Loan
	// OverdueDebts lists debts newly or still overdue; the caller decides
	// whether to blacklist their guarantors.
	OverdueDebts []*domain.GuarantorDebt
}

// Run executes one maintenance pass and persists the outcome.
func (s *MaintenanceService) Run() (*MaintenanceResult, error) {
	today := domain.Today(s.now())
	res := &MaintenanceResult{}

	res.CreatedDeposits = s.generateRecurringDeposits(today)
	res.CreatedLoans = s.generateRecurringLoans(today)
	res.OverdueDebts = s.scanOverdue(today)
	s.guarantors.RefreshDerivedFields()

	if err := s.store.Save(); err != nil {
		return res, fmt.Errorf("persist maintenance pass: %w", err)
	}
	s.log.Info().
		Int("deposits", len(res.CreatedDeposits)).
		Int("loans", len(res.CreatedLoans)).
		Int("overdue", len(res.OverdueDebts)).
		Msg("maintenance pass complete")
	return res, nil
}

// generateRecurringDeposits walks every template and materializes the
// instances due up to today, advancing the template's lastRecurringDate.
// A stale template catches up one instance per missed month in a single
// pass; each instance lands on a distinct calendar day.
func (s *MaintenanceService) generateRecurringDeposits(today time.Time) []*domain.Deposit {
	snap := s.store.Snapshot()
	var created []*domain.Deposit

	for _, tpl := range snap.Deposits {
		if !tpl.IsRecurring {
			continue
		}
		last := tpl.Date
		if tpl.LastRecurringDate != nil {
			last = *tpl.LastRecurringDate
		}
		for {
			next := util.NextMonthlyDate(last, tpl.RecurringDay)
			if next.After(today) {
				break
			}
			if tpl.RecurringEndDate != nil && next.After(*tpl.RecurringEndDate) {
				break
			}
			if !s.depositInstanceExists(tpl.ID, next) {
				inst := &domain.Deposit{
					DepositorID:  tpl.DepositorID,
					Amount:       tpl.Amount,
					Date:         next,
					PeriodMonths: tpl.PeriodMonths,
					Method:       tpl.Method,
					Status:       domain.DepositStatusActive,
					TemplateID:   tpl.ID,
				}
				s.store.AddDeposit(inst)
				created = append(created, inst)
			}
			last = next
			n := next
			tpl.LastRecurringDate = &n
			s.store.UpdateDeposit(tpl)
		}
	}
	return created
}

func (s *MaintenanceService) depositInstanceExists(templateID int64, date time.Time) bool {
	for _, d := range s.store.Snapshot().Deposits {
		if d.TemplateID == templateID && util.SameDay(d.Date, date) {
			return true
		}
	}
	return false
}

// generateRecurringLoans materializes monthly loan instances. A series is
// identified by (borrower, amount, day of month); generation stops when
// the planned count is reached or an instance already exists for today.
func (s *MaintenanceService) generateRecurringLoans(today time.Time) []*domain.Loan {
	snap := s.store.Snapshot()
	var created []*domain.Loan

	type seriesKey struct {
		borrowerID int64
		amount     string
		day        int
	}
	series := make(map[seriesKey][]*domain.Loan)
	order := make([]seriesKey, 0)
	for _, l := range snap.Loans {
		if l.Recurring == nil {
			continue
		}
		k := seriesKey{l.BorrowerID, l.Amount.String(), l.Recurring.DayOfMonth}
		if _, seen := series[k]; !seen {
			order = append(order, k)
		}
		series[k] = append(series[k], l)
	}

	for _, k := range order {
		loans := series[k]
		planned := loans[0].Recurring.Months
		for {
			if len(loans) >= planned {
				break
			}
			latest := loans[0]
			for _, l := range loans[1:] {
				if l.LoanDate.After(latest.LoanDate) {
					latest = l
				}
			}
			if util.SameDay(latest.LoanDate, today) {
				break
			}
			next := util.NextMonthlyDate(latest.LoanDate, k.day)
			if next.After(today) {
				break
			}
			inst := &domain.Loan{
				BorrowerID: latest.BorrowerID,
				Amount:     latest.Amount,
				LoanDate:   next,
				ReturnDate: util.NextMonthlyDate(next, k.day),
				Type:       latest.Type,
				Recurring:  &domain.RecurringLoanPlan{DayOfMonth: k.day, Months: planned},
				AutoPay:    latest.AutoPay,
				Status:     domain.LoanStatusActive,
			}
			s.store.AddLoan(inst)
			s.store.AddPayment(&domain.Payment{
				LoanID: inst.ID,
				Amount: inst.Amount,
				Date:   next,
				Type:   domain.PaymentTypeDisbursement,
				Method: domain.CashPayment(),
			})
			loans = append(loans, inst)
			created = append(created, inst)
		}
	}
	return created
}

// scanOverdue marks unpaid guarantor debts whose schedule has slipped.
// Debts of already-blacklisted guarantors are skipped; blacklisting the
// returned candidates is a separate explicit call.
func (s *MaintenanceService) scanOverdue(today time.Time) []*domain.GuarantorDebt {
	snap := s.store.Snapshot()
	var overdue []*domain.GuarantorDebt

	for _, d := range snap.GuarantorDebts {
		if d.Status == domain.DebtStatusPaid {
			continue
		}
		if snap.ActiveBlacklistEntry(domain.BlacklistGuarantor, d.GuarantorID) != nil {
			continue
		}
		balance := domain.DebtBalance(d, snap.Payments)
		if d.OverdueOn(today, balance) {
			if d.Status != domain.DebtStatusOverdue {
				d.Status = domain.DebtStatusOverdue
				s.store.UpdateGuarantorDebt(d)
			}
			overdue = append(overdue, d)
		}
	}
	return overdue
}
