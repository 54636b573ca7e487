package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Astemirdum/circulation-service/internal/errs"
	"github.com/Astemirdum/circulation-service/internal/model"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	sq "github.com/Masterminds/squirrel"
)

const reservationColumns = `id, reservation_uid, book_id, member_id, status, reservation_date, fulfilled_at, 0 as queue_position`

// queuePositionExpr ranks Pending reservations per title: reservation_date
// ascending, ties broken by id (insertion order).
const queuePositionExpr = `case when r.status = 'Pending' then (
	select count(*) + 1 from reservations r2
	where r2.book_id = r.book_id and r2.status = 'Pending'
	  and (r2.reservation_date < r.reservation_date
	       or (r2.reservation_date = r.reservation_date and r2.id < r.id))
) else 0 end as queue_position`

func (r *repository) CreateReservation(ctx context.Context, bookID, memberID int) (model.Reservation, error) {
	q, args, err := qb.Insert(reservationsTableName).
		Columns("reservation_uid", "book_id", "member_id", "status", "reservation_date").
		Values(uuid.New().String(), bookID, memberID, model.ReservationPending, time.Now().UTC()).
		Suffix("returning " + reservationColumns).
		ToSql()
	if err != nil {
		return model.Reservation{}, err
	}
	var res model.Reservation
	if err := sqlx.GetContext(ctx, r.ext(), &res, q, args...); err != nil {
		r.log.Error("CreateReservation", zap.String("q", q), zap.Any("args", args))
		return model.Reservation{}, wrapPgErr(err)
	}
	return res, nil
}

func (r *repository) GetReservationByUID(ctx context.Context, reservationUID string) (model.Reservation, error) {
	q := fmt.Sprintf(`select r.id, r.reservation_uid, r.book_id, r.member_id, r.status, r.reservation_date, r.fulfilled_at, %s
	from %s r where r.reservation_uid = $1`, queuePositionExpr, reservationsTableName)

	var res model.Reservation
	if err := sqlx.GetContext(ctx, r.ext(), &res, q, reservationUID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Reservation{}, errs.ErrNotFound
		}
		return model.Reservation{}, err
	}
	return res, nil
}

func (r *repository) NextPendingReservation(ctx context.Context, bookID int) (model.Reservation, error) {
	q, args, err := qb.Select(reservationColumns).
		From(reservationsTableName).
		Where(sq.Eq{"book_id": bookID, "status": model.ReservationPending}).
		OrderBy("reservation_date asc", "id asc").
		Limit(1).
		ToSql()
	if err != nil {
		return model.Reservation{}, err
	}
	var res model.Reservation
	if err := sqlx.GetContext(ctx, r.ext(), &res, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Reservation{}, errs.ErrNotFound
		}
		return model.Reservation{}, err
	}
	return res, nil
}

func (r *repository) HasPendingReservations(ctx context.Context, bookID int) (bool, error) {
	q := fmt.Sprintf(`select count(*) from %s where book_id = $1 and status = $2`, reservationsTableName)
	var count int
	if err := sqlx.GetContext(ctx, r.ext(), &count, q, bookID, model.ReservationPending); err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repository) GetFulfilledReservation(ctx context.Context, bookID, memberID int) (model.Reservation, error) {
	q, args, err := qb.Select(reservationColumns).
		From(reservationsTableName).
		Where(sq.Eq{"book_id": bookID, "member_id": memberID, "status": model.ReservationFulfilled}).
		ToSql()
	if err != nil {
		return model.Reservation{}, err
	}
	var res model.Reservation
	if err := sqlx.GetContext(ctx, r.ext(), &res, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Reservation{}, errs.ErrNotFound
		}
		return model.Reservation{}, err
	}
	return res, nil
}

// SetReservationStatus moves the reservation iff its current status is in
// fromAllowed, mirroring the item CAS discipline.
func (r *repository) SetReservationStatus(ctx context.Context, reservationID int, fromAllowed []model.ReservationStatus, to model.ReservationStatus) error {
	upd := qb.Update(reservationsTableName).
		Set("status", to).
		Where(sq.Eq{"id": reservationID}).
		Where(sq.Eq{"status": fromAllowed})
	if to == model.ReservationFulfilled {
		upd = upd.Set("fulfilled_at", time.Now().UTC())
	}
	q, args, err := upd.ToSql()
	if err != nil {
		return err
	}
	res, err := r.ext().ExecContext(ctx, q, args...)
	if err != nil {
		return wrapPgErr(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errs.ErrConflict
	}
	return nil
}

func (r *repository) QueuePosition(ctx context.Context, reservationID int) (int, error) {
	q := fmt.Sprintf(`select pos from (
		select id, row_number() over (order by reservation_date asc, id asc) as pos
		from %s
		where book_id = (select book_id from %s where id = $1) and status = $2
	) ranked where id = $1`, reservationsTableName, reservationsTableName)

	var pos int
	if err := sqlx.GetContext(ctx, r.ext(), &pos, q, reservationID, model.ReservationPending); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, errs.ErrNotFound
		}
		return 0, err
	}
	return pos, nil
}

func (r *repository) ListReservationsByMember(ctx context.Context, memberID int) ([]model.Reservation, error) {
	q := fmt.Sprintf(`select r.id, r.reservation_uid, r.book_id, r.member_id, r.status, r.reservation_date, r.fulfilled_at, %s
	from %s r
	where r.member_id = $1 and r.status in ('Pending', 'Fulfilled')
	order by r.reservation_date asc, r.id asc`, queuePositionExpr, reservationsTableName)

	var items []model.Reservation
	if err := sqlx.SelectContext(ctx, r.ext(), &items, q, memberID); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) ListReservationsByBook(ctx context.Context, bookID int) ([]model.Reservation, error) {
	q := fmt.Sprintf(`select r.id, r.reservation_uid, r.book_id, r.member_id, r.status, r.reservation_date, r.fulfilled_at, %s
	from %s r
	where r.book_id = $1 and r.status in ('Pending', 'Fulfilled')
	order by r.reservation_date asc, r.id asc`, queuePositionExpr, reservationsTableName)

	var items []model.Reservation
	if err := sqlx.SelectContext(ctx, r.ext(), &items, q, bookID); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) ListStaleFulfilled(ctx context.Context, cutoff time.Time) ([]model.Reservation, error) {
	q, args, err := qb.Select(reservationColumns).
		From(reservationsTableName).
		Where(sq.Eq{"status": model.ReservationFulfilled}).
		Where(sq.Lt{"fulfilled_at": cutoff}).
		OrderBy("fulfilled_at asc").
		ToSql()
	if err != nil {
		return nil, err
	}
	var items []model.Reservation
	if err := sqlx.SelectContext(ctx, r.ext(), &items, q, args...); err != nil {
		return nil, err
	}
	return items, nil
}
