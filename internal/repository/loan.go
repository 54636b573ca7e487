package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Astemirdum/circulation-service/internal/errs"
	"github.com/Astemirdum/circulation-service/internal/model"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	sq "github.com/Masterminds/squirrel"
)

const loanColumns = `id, loan_uid, barcode, member_id, issue_date, due_date, return_date, renewal_count, condition_on_return`

func (r *repository) CreateLoan(ctx context.Context, loan model.Loan) (model.Loan, error) {
	q, args, err := qb.Insert(loansTableName).
		Columns("loan_uid", "barcode", "member_id", "issue_date", "due_date", "renewal_count").
		Values(loan.LoanUID, loan.Barcode, loan.MemberID, loan.IssueDate, loan.DueDate, loan.RenewalCount).
		Suffix("returning " + loanColumns).
		ToSql()
	if err != nil {
		return model.Loan{}, err
	}
	var created model.Loan
	if err := sqlx.GetContext(ctx, r.ext(), &created, q, args...); err != nil {
		r.log.Error("CreateLoan", zap.String("q", q), zap.Any("args", args))
		return model.Loan{}, wrapPgErr(err)
	}
	return created, nil
}

func (r *repository) GetLoanByUID(ctx context.Context, loanUID string) (model.Loan, error) {
	q, args, err := qb.Select(loanColumns).
		From(loansTableName).
		Where(sq.Eq{"loan_uid": loanUID}).
		ToSql()
	if err != nil {
		return model.Loan{}, err
	}
	var loan model.Loan
	if err := sqlx.GetContext(ctx, r.ext(), &loan, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Loan{}, errs.ErrNotFound
		}
		return model.Loan{}, err
	}
	return loan, nil
}

func (r *repository) GetActiveLoanByBarcode(ctx context.Context, barcode string) (model.Loan, error) {
	q, args, err := qb.Select(loanColumns).
		From(loansTableName).
		Where(sq.Eq{"barcode": barcode}).
		Where("return_date is null").
		ToSql()
	if err != nil {
		return model.Loan{}, err
	}
	var loan model.Loan
	if err := sqlx.GetContext(ctx, r.ext(), &loan, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Loan{}, errs.ErrNoActiveLoan
		}
		return model.Loan{}, err
	}
	return loan, nil
}

// CloseLoan stamps the return atomically: a loan already closed by a
// concurrent return affects no rows.
func (r *repository) CloseLoan(ctx context.Context, loanID int, returnedAt time.Time, condition model.Condition) (model.Loan, error) {
	q := fmt.Sprintf(`update %s
	set return_date = $2, condition_on_return = $3
	where id = $1 and return_date is null
	returning `+loanColumns, loansTableName)

	var loan model.Loan
	if err := sqlx.GetContext(ctx, r.ext(), &loan, q, loanID, returnedAt, condition); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Loan{}, errs.ErrAlreadyReturned
		}
		return model.Loan{}, err
	}
	return loan, nil
}

func (r *repository) RenewLoan(ctx context.Context, loanID int, dueDate time.Time) (model.Loan, error) {
	q := fmt.Sprintf(`update %s
	set due_date = $2, renewal_count = renewal_count + 1
	where id = $1 and return_date is null
	returning `+loanColumns, loansTableName)

	var loan model.Loan
	if err := sqlx.GetContext(ctx, r.ext(), &loan, q, loanID, dueDate); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Loan{}, errs.ErrAlreadyReturned
		}
		return model.Loan{}, err
	}
	return loan, nil
}

func (r *repository) CountActiveLoans(ctx context.Context, memberID int) (int, error) {
	q := fmt.Sprintf(`select count(*) from %s where member_id = $1 and return_date is null`, loansTableName)
	var count int
	if err := sqlx.GetContext(ctx, r.ext(), &count, q, memberID); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *repository) ListLoansByMember(ctx context.Context, memberID int) (model.LoanHistory, error) {
	q, args, err := qb.Select(loanColumns).
		From(loansTableName).
		Where(sq.Eq{"member_id": memberID}).
		OrderBy("issue_date desc", "id desc").
		ToSql()
	if err != nil {
		return model.LoanHistory{}, err
	}
	var loans []model.Loan
	if err := sqlx.SelectContext(ctx, r.ext(), &loans, q, args...); err != nil {
		return model.LoanHistory{}, err
	}
	history := model.LoanHistory{
		ActiveLoans: make([]model.Loan, 0),
		PastLoans:   make([]model.Loan, 0),
	}
	for _, loan := range loans {
		if loan.Active() {
			history.ActiveLoans = append(history.ActiveLoans, loan)
		} else {
			history.PastLoans = append(history.PastLoans, loan)
		}
	}
	return history, nil
}

func (r *repository) ListLoansByItem(ctx context.Context, barcode string) ([]model.Loan, error) {
	q, args, err := qb.Select(loanColumns).
		From(loansTableName).
		Where(sq.Eq{"barcode": barcode}).
		OrderBy("issue_date desc", "id desc").
		ToSql()
	if err != nil {
		return nil, err
	}
	var loans []model.Loan
	if err := sqlx.SelectContext(ctx, r.ext(), &loans, q, args...); err != nil {
		return nil, err
	}
	return loans, nil
}

func (r *repository) ListOverdueLoans(ctx context.Context, asOf time.Time) ([]model.Loan, error) {
	q, args, err := qb.Select(loanColumns).
		From(loansTableName).
		Where("return_date is null").
		Where(sq.Lt{"due_date": asOf}).
		OrderBy("due_date asc").
		ToSql()
	if err != nil {
		return nil, err
	}
	var loans []model.Loan
	if err := sqlx.SelectContext(ctx, r.ext(), &loans, q, args...); err != nil {
		return nil, err
	}
	return loans, nil
}
