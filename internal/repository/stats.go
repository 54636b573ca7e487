package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Astemirdum/circulation-service/internal/model"
	"github.com/Astemirdum/circulation-service/pkg/kafka"
	"github.com/jmoiron/sqlx"
)

func (r *repository) Stats(ctx context.Context) (model.DashboardStats, error) {
	q := fmt.Sprintf(`select
	(select count(*) from %[1]s)                                            as total_members,
	(select count(*) from %[2]s)                                            as total_titles,
	(select count(*) from %[3]s)                                            as total_items,
	(select count(*) from %[3]s where status = 'Available')                 as available_items,
	(select count(*) from %[3]s where status = 'Borrowed')                  as borrowed_items,
	(select count(*) from %[3]s where status = 'Reserved')                  as reserved_items,
	(select count(*) from %[4]s where return_date is null)                  as active_loans,
	(select count(*) from %[5]s where status = 'Pending')                   as pending_reservations,
	(select coalesce(sum(amount - amount_paid), 0) from %[6]s where status <> 'Paid') as outstanding_fines`,
		membersTableName, booksTableName, bookItemsTableName, loansTableName, reservationsTableName, finesTableName)

	var stats model.DashboardStats
	if err := sqlx.GetContext(ctx, r.ext(), &stats, q); err != nil {
		return model.DashboardStats{}, err
	}
	return stats, nil
}

func (r *repository) OverdueReport(ctx context.Context, asOf time.Time) ([]model.OverdueReportItem, error) {
	q := fmt.Sprintf(`select loan_uid, barcode, member_id,
	to_char(due_date, 'YYYY-MM-DD') as due_date,
	greatest(0, (extract(epoch from date_trunc('day', $1::timestamptz) - date_trunc('day', due_date)) / 86400)::int) as days_overdue
	from %s
	where return_date is null and due_date < $1
	order by due_date asc`, loansTableName)

	var items []model.OverdueReportItem
	if err := sqlx.SelectContext(ctx, r.ext(), &items, q, asOf); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) InsertEvent(ctx context.Context, event kafka.EventCirculation) error {
	q, args, err := qb.Insert(eventsTableName).
		Columns("type", "member_id", "book_id", "barcode", "loan_uid", "reservation_uid", "amount", "occurred_at").
		Values(event.Type, event.MemberID, event.BookID, event.Barcode, event.LoanUID, event.ReservationUID, event.Amount, event.OccurredAt).
		ToSql()
	if err != nil {
		return err
	}
	if _, err := r.ext().ExecContext(ctx, q, args...); err != nil {
		return err
	}
	return nil
}

func (r *repository) ListEvents(ctx context.Context, limit int) ([]model.CirculationEvent, error) {
	q, args, err := qb.Select("id", "type", "member_id", "book_id", "barcode", "loan_uid", "reservation_uid", "amount", "occurred_at").
		From(eventsTableName).
		OrderBy("occurred_at desc", "id desc").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, err
	}
	var events []model.CirculationEvent
	if err := sqlx.SelectContext(ctx, r.ext(), &events, q, args...); err != nil {
		return nil, err
	}
	return events, nil
}
