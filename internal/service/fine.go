package service

import (
	"context"
	"time"

	"github.com/Astemirdum/circulation-service/config"
	"github.com/Astemirdum/circulation-service/internal/errs"
	"github.com/Astemirdum/circulation-service/internal/model"
	"github.com/Astemirdum/circulation-service/internal/repository"
	"go.uber.org/zap"
)

// fineEngine assesses and settles fines. Overdue accrual is monotonic: the
// amount only ever grows toward the cap, so the return path and the
// background sweep can both assess the same loan safely.
type fineEngine struct {
	policy config.Policy
	log    *zap.Logger
}

func newFineEngine(policy config.Policy, log *zap.Logger) *fineEngine {
	return &fineEngine{policy: policy, log: log.Named("fines")}
}

// daysLate counts whole calendar days between the due date and asOf.
// Same-day returns are never late.
func daysLate(due, asOf time.Time) int {
	d := startOfDay(asOf).Sub(startOfDay(due))
	if d <= 0 {
		return 0
	}
	return int(d / (24 * time.Hour))
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// overdueAmount is daysLate * daily rate, capped.
func (f *fineEngine) overdueAmount(days int) float64 {
	amount := float64(days) * f.policy.DailyFineRate
	if amount > f.policy.MaxOverdueFine {
		amount = f.policy.MaxOverdueFine
	}
	return amount
}

func (f *fineEngine) assessOverdue(ctx context.Context, r repository.Repository, loan model.Loan, days int) (model.Fine, error) {
	fine, err := r.UpsertOverdueFine(ctx, loan.ID, loan.MemberID, f.overdueAmount(days))
	if err != nil {
		return model.Fine{}, err
	}
	f.log.Info("overdue fine assessed",
		zap.String("loanUID", loan.LoanUID),
		zap.Int("daysLate", days),
		zap.Float64("amount", fine.Amount),
	)
	return fine, nil
}

func (f *fineEngine) assessDamage(ctx context.Context, r repository.Repository, loan model.Loan) (model.Fine, error) {
	return r.CreateFine(ctx, model.Fine{
		LoanID:   loan.ID,
		MemberID: loan.MemberID,
		Amount:   f.policy.DamageFine,
		Reason:   model.FineDamaged,
	})
}

func (f *fineEngine) assessLost(ctx context.Context, r repository.Repository, loan model.Loan, replacementFee float64) (model.Fine, error) {
	return r.CreateFine(ctx, model.Fine{
		LoanID:   loan.ID,
		MemberID: loan.MemberID,
		Amount:   replacementFee,
		Reason:   model.FineLost,
	})
}

// settle applies a payment to a fine. Fines on an open loan cannot be
// settled yet: the overdue amount is still accruing.
func (f *fineEngine) settle(ctx context.Context, r repository.Repository, fineID int, amount float64) (model.Fine, error) {
	fine, err := r.GetFine(ctx, fineID)
	if err != nil {
		return model.Fine{}, err
	}
	loan, err := r.GetLoanByUID(ctx, fine.LoanUID)
	if err != nil {
		return model.Fine{}, err
	}
	if loan.Active() {
		return model.Fine{}, errs.ErrPaymentBeforeReturn
	}
	return r.ApplyPayment(ctx, fineID, amount)
}

// maybeBlock blocks the member when their outstanding balance reaches the
// threshold. Reports whether a block was applied. Unblocking is a staff
// decision, never automatic.
func (f *fineEngine) maybeBlock(ctx context.Context, r repository.Repository, memberID int) (bool, error) {
	balance, err := r.OutstandingBalance(ctx, memberID)
	if err != nil {
		return false, err
	}
	if balance < f.policy.FineThreshold {
		return false, nil
	}
	member, err := r.GetMember(ctx, memberID)
	if err != nil {
		return false, err
	}
	if member.Status == model.MemberBlocked {
		return false, nil
	}
	if err := r.UpdateMemberStatus(ctx, memberID, model.MemberBlocked); err != nil {
		return false, err
	}
	f.log.Warn("member blocked over fines",
		zap.Int("memberID", memberID),
		zap.Float64("balance", balance),
	)
	return true, nil
}
