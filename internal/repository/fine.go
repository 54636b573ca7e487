package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Astemirdum/circulation-service/internal/errs"
	"github.com/Astemirdum/circulation-service/internal/model"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const fineColumns = `f.id, f.loan_id, l.loan_uid, f.member_id, f.amount, f.amount_paid, f.reason, f.status`

func (r *repository) CreateFine(ctx context.Context, fine model.Fine) (model.Fine, error) {
	q := fmt.Sprintf(`with f as (
		insert into %s (loan_id, member_id, amount, reason, status)
		values ($1, $2, $3, $4, $5)
		returning *
	)
	select %s from f join %s l on l.id = f.loan_id`, finesTableName, fineColumns, loansTableName)

	var created model.Fine
	if err := sqlx.GetContext(ctx, r.ext(), &created, q,
		fine.LoanID, fine.MemberID, fine.Amount, fine.Reason, model.FineUnpaid); err != nil {
		r.log.Error("CreateFine", zap.Int("loanID", fine.LoanID), zap.Error(err))
		return model.Fine{}, wrapPgErr(err)
	}
	return created, nil
}

// UpsertOverdueFine keeps at most one Overdue fine per loan and only ever
// raises its amount. Safe to run from both the return path and the
// periodic accrual sweep.
func (r *repository) UpsertOverdueFine(ctx context.Context, loanID, memberID int, amount float64) (model.Fine, error) {
	q := fmt.Sprintf(`with f as (
		insert into %s (loan_id, member_id, amount, reason, status)
		values ($1, $2, $3, 'Overdue', 'Unpaid')
		on conflict (loan_id) where reason = 'Overdue'
		do update set
			amount = greatest(%s.amount, excluded.amount),
			status = case
				when %s.amount_paid >= greatest(%s.amount, excluded.amount) then 'Paid'
				else %s.status
			end
		returning *
	)
	select %s from f join %s l on l.id = f.loan_id`,
		finesTableName, finesTableName, finesTableName, finesTableName, finesTableName,
		fineColumns, loansTableName)

	var fine model.Fine
	if err := sqlx.GetContext(ctx, r.ext(), &fine, q, loanID, memberID, amount); err != nil {
		r.log.Error("UpsertOverdueFine", zap.Int("loanID", loanID), zap.Error(err))
		return model.Fine{}, wrapPgErr(err)
	}
	return fine, nil
}

func (r *repository) GetFine(ctx context.Context, fineID int) (model.Fine, error) {
	q := fmt.Sprintf(`select %s from %s f join %s l on l.id = f.loan_id where f.id = $1`,
		fineColumns, finesTableName, loansTableName)

	var fine model.Fine
	if err := sqlx.GetContext(ctx, r.ext(), &fine, q, fineID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Fine{}, errs.ErrNotFound
		}
		return model.Fine{}, err
	}
	return fine, nil
}

// ApplyPayment records a partial or full payment. The guard in the where
// clause makes overpayment impossible even under concurrent payments.
func (r *repository) ApplyPayment(ctx context.Context, fineID int, amount float64) (model.Fine, error) {
	q := fmt.Sprintf(`with f as (
		update %s
		set amount_paid = amount_paid + $2,
			status = case when amount_paid + $2 >= amount then 'Paid' else 'PartiallyPaid' end
		where id = $1 and amount_paid + $2 <= amount
		returning *
	)
	select %s from f join %s l on l.id = f.loan_id`, finesTableName, fineColumns, loansTableName)

	var fine model.Fine
	if err := sqlx.GetContext(ctx, r.ext(), &fine, q, fineID, amount); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			if _, getErr := r.GetFine(ctx, fineID); getErr != nil {
				return model.Fine{}, getErr
			}
			return model.Fine{}, errs.ErrOverpayment
		}
		return model.Fine{}, err
	}
	return fine, nil
}

func (r *repository) OutstandingBalance(ctx context.Context, memberID int) (float64, error) {
	q := fmt.Sprintf(`select coalesce(sum(amount - amount_paid), 0)
	from %s where member_id = $1 and status <> $2`, finesTableName)

	var balance float64
	if err := sqlx.GetContext(ctx, r.ext(), &balance, q, memberID, model.FinePaid); err != nil {
		return 0, err
	}
	return balance, nil
}

func (r *repository) ListFinesByMember(ctx context.Context, memberID int) ([]model.Fine, error) {
	q := fmt.Sprintf(`select %s from %s f join %s l on l.id = f.loan_id
	where f.member_id = $1
	order by f.id desc`, fineColumns, finesTableName, loansTableName)

	var fines []model.Fine
	if err := sqlx.SelectContext(ctx, r.ext(), &fines, q, memberID); err != nil {
		return nil, err
	}
	return fines, nil
}

func (r *repository) HasUnpaidFines(ctx context.Context, memberID int) (bool, error) {
	q := fmt.Sprintf(`select count(*) from %s where member_id = $1 and status <> $2`, finesTableName)
	var count int
	if err := sqlx.GetContext(ctx, r.ext(), &count, q, memberID, model.FinePaid); err != nil {
		return false, err
	}
	return count > 0, nil
}
