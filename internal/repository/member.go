package repository

import (
	"context"
	"database/sql"

	"github.com/Astemirdum/circulation-service/internal/errs"
	"github.com/Astemirdum/circulation-service/internal/model"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	sq "github.com/Masterminds/squirrel"
)

func (r *repository) GetMember(ctx context.Context, memberID int) (model.Member, error) {
	q, args, err := qb.Select("id", "email", "full_name", "status").
		From(membersTableName).
		Where(sq.Eq{"id": memberID}).
		ToSql()
	if err != nil {
		return model.Member{}, err
	}
	var m model.Member
	if err := sqlx.GetContext(ctx, r.ext(), &m, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Member{}, errs.ErrNotFound
		}
		return model.Member{}, err
	}
	return m, nil
}

func (r *repository) UpdateMemberStatus(ctx context.Context, memberID int, status model.MemberStatus) error {
	q, args, err := qb.Update(membersTableName).
		Set("status", status).
		Where(sq.Eq{"id": memberID}).
		ToSql()
	if err != nil {
		return err
	}
	res, err := r.ext().ExecContext(ctx, q, args...)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func (r *repository) DeleteMember(ctx context.Context, memberID int) error {
	q, args, err := qb.Delete(membersTableName).
		Where(sq.Eq{"id": memberID}).
		ToSql()
	if err != nil {
		return err
	}
	res, err := r.ext().ExecContext(ctx, q, args...)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errs.ErrNotFound
	}
	return nil
}
