package dashboard

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"loan-backoffice/internal/apperr"
	"loan-backoffice/internal/domain/analytics"
	"loan-backoffice/internal/domain/borrower"
	"loan-backoffice/internal/domain/loan"
)

// trailing monthly snapshots shown on the dashboard chart
const monthlyWindow = 12

type Usecase struct {
	loans     loan.Repository
	borrowers borrower.Repository
	analytics analytics.Repository
	log       *logrus.Logger
	now       func() time.Time
}

func NewUsecase(loans loan.Repository, borrowers borrower.Repository, snapshots analytics.Repository, log *logrus.Logger) *Usecase {
	return &Usecase{loans: loans, borrowers: borrowers, analytics: snapshots, log: log, now: time.Now}
}

func monthStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// Stats is computed from live aggregate queries on every call.
func (u *Usecase) Stats(ctx context.Context) (*Stats, error) {
	totalLoans, err := u.loans.Count(ctx, loan.Filter{})
	if err != nil {
		return nil, apperr.Internal("count loans", err)
	}
	totalBorrowers, err := u.borrowers.Count(ctx)
	if err != nil {
		return nil, apperr.Internal("count borrowers", err)
	}
	totalAmount, err := u.loans.SumAmount(ctx, loan.Filter{})
	if err != nil {
		return nil, apperr.Internal("sum loans", err)
	}
	defaulted, err := u.loans.Count(ctx, loan.Filter{Status: loan.StatusDefaulted})
	if err != nil {
		return nil, apperr.Internal("count defaulted loans", err)
	}
	snaps, err := u.analytics.Latest(ctx, analytics.MetricLoanVolume, analytics.DimensionMonthly, monthlyWindow)
	if err != nil {
		return nil, apperr.Internal("load loan volume", err)
	}

	monthly := make([]MonthlyPoint, len(snaps))
	for i, s := range snaps {
		// Latest is newest first
		monthly[len(snaps)-1-i] = MonthlyPoint{Month: s.DimensionValue, Amount: s.MetricValue.StringFixed(2)}
	}
	return &Stats{
		TotalLoans:     totalLoans,
		TotalBorrowers: totalBorrowers,
		TotalAmount:    totalAmount.StringFixed(2),
		DefaultedLoans: defaulted,
		MonthlyLoans:   monthly,
	}, nil
}

func (u *Usecase) Analytics(ctx context.Context) (*Analytics, error) {
	now := u.now().UTC()
	start := monthStart(now)
	thisMonth := loan.Filter{From: start, To: start.AddDate(0, 1, 0)}

	active, err := u.loans.Count(ctx, loan.Filter{Status: loan.StatusActive})
	if err != nil {
		return nil, apperr.Internal("count active loans", err)
	}
	borrowers, err := u.borrowers.Count(ctx)
	if err != nil {
		return nil, apperr.Internal("count borrowers", err)
	}
	monthLoans, err := u.loans.Count(ctx, thisMonth)
	if err != nil {
		return nil, apperr.Internal("count month loans", err)
	}
	monthAmount, err := u.loans.SumAmount(ctx, thisMonth)
	if err != nil {
		return nil, apperr.Internal("sum month loans", err)
	}
	total, err := u.loans.SumAmount(ctx, loan.Filter{})
	if err != nil {
		return nil, apperr.Internal("sum loans", err)
	}
	counts, err := u.loans.CountByStatus(ctx)
	if err != nil {
		return nil, apperr.Internal("count by status", err)
	}

	byStatus := make(map[string]int64, len(loan.Statuses))
	for _, s := range loan.Statuses {
		byStatus[string(s)] = 0
	}
	for _, c := range counts {
		byStatus[string(c.Status)] = c.Count
	}
	return &Analytics{
		TotalActiveLoans: active,
		TotalBorrowers:   borrowers,
		CurrentMonth:     MonthFigures{Loans: monthLoans, Amount: monthAmount.StringFixed(2)},
		LoansByStatus:    byStatus,
		TotalAmount:      total.StringFixed(2),
		LastUpdated:      now,
	}, nil
}

// SnapshotLoanVolume stores the loan volume of the previous and the current
// month. Recomputing the previous month picks up loans created after the last
// run inside it. Points are overwritten on every run.
func (u *Usecase) SnapshotLoanVolume(ctx context.Context) error {
	current := monthStart(u.now())
	for _, start := range []time.Time{current.AddDate(0, -1, 0), current} {
		if err := u.snapshotMonth(ctx, start); err != nil {
			return err
		}
	}
	return nil
}

func (u *Usecase) snapshotMonth(ctx context.Context, start time.Time) error {
	sum, err := u.loans.SumAmount(ctx, loan.Filter{From: start, To: start.AddDate(0, 1, 0)})
	if err != nil {
		return err
	}
	snap := &analytics.Snapshot{
		MetricType:     analytics.MetricLoanVolume,
		MetricValue:    sum,
		Dimension:      analytics.DimensionMonthly,
		DimensionValue: start.Format(analytics.MonthLayout),
	}
	if err := u.analytics.Upsert(ctx, snap); err != nil {
		return err
	}
	u.log.WithFields(logrus.Fields{"month": snap.DimensionValue, "value": sum.StringFixed(2)}).Info("loan volume snapshot stored")
	return nil
}
