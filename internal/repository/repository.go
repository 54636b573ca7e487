package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Astemirdum/circulation-service/internal/errs"
	"github.com/Astemirdum/circulation-service/internal/model"
	"github.com/Astemirdum/circulation-service/pkg/kafka"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	sq "github.com/Masterminds/squirrel"
	"go.uber.org/zap"
)

// Repository is the single persistence boundary of the circulation engine.
// WithinTx yields a Repository bound to one transaction; every multi-step
// circulation operation runs through it so partial writes never survive.
type Repository interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, r Repository) error) error
	// LockBook serializes queue mutations per title for the rest of the
	// transaction. Lock waits are bounded by the configured lock_timeout.
	LockBook(ctx context.Context, bookID int) error

	GetMember(ctx context.Context, memberID int) (model.Member, error)
	UpdateMemberStatus(ctx context.Context, memberID int, status model.MemberStatus) error
	DeleteMember(ctx context.Context, memberID int) error

	GetBook(ctx context.Context, bookID int) (model.Book, error)
	GetItem(ctx context.Context, barcode string) (model.BookItem, error)
	AddItem(ctx context.Context, bookID int, barcode string) (model.BookItem, error)
	RemoveItem(ctx context.Context, barcode string) error
	// TransitionItem atomically moves the item to the target status iff its
	// current status is in fromAllowed (compare-and-swap on status).
	TransitionItem(ctx context.Context, barcode string, fromAllowed []model.ItemStatus, to model.ItemStatus) (model.BookItem, error)
	AvailableCopies(ctx context.Context, bookID int) (int, error)
	GetReservedItem(ctx context.Context, bookID int) (model.BookItem, error)

	CreateLoan(ctx context.Context, loan model.Loan) (model.Loan, error)
	GetLoanByUID(ctx context.Context, loanUID string) (model.Loan, error)
	GetActiveLoanByBarcode(ctx context.Context, barcode string) (model.Loan, error)
	CloseLoan(ctx context.Context, loanID int, returnedAt time.Time, condition model.Condition) (model.Loan, error)
	RenewLoan(ctx context.Context, loanID int, dueDate time.Time) (model.Loan, error)
	CountActiveLoans(ctx context.Context, memberID int) (int, error)
	ListLoansByMember(ctx context.Context, memberID int) (model.LoanHistory, error)
	ListLoansByItem(ctx context.Context, barcode string) ([]model.Loan, error)
	ListOverdueLoans(ctx context.Context, asOf time.Time) ([]model.Loan, error)

	CreateReservation(ctx context.Context, bookID, memberID int) (model.Reservation, error)
	GetReservationByUID(ctx context.Context, reservationUID string) (model.Reservation, error)
	NextPendingReservation(ctx context.Context, bookID int) (model.Reservation, error)
	HasPendingReservations(ctx context.Context, bookID int) (bool, error)
	GetFulfilledReservation(ctx context.Context, bookID, memberID int) (model.Reservation, error)
	SetReservationStatus(ctx context.Context, reservationID int, fromAllowed []model.ReservationStatus, to model.ReservationStatus) error
	QueuePosition(ctx context.Context, reservationID int) (int, error)
	ListReservationsByMember(ctx context.Context, memberID int) ([]model.Reservation, error)
	ListReservationsByBook(ctx context.Context, bookID int) ([]model.Reservation, error)
	ListStaleFulfilled(ctx context.Context, cutoff time.Time) ([]model.Reservation, error)

	CreateFine(ctx context.Context, fine model.Fine) (model.Fine, error)
	UpsertOverdueFine(ctx context.Context, loanID, memberID int, amount float64) (model.Fine, error)
	GetFine(ctx context.Context, fineID int) (model.Fine, error)
	ApplyPayment(ctx context.Context, fineID int, amount float64) (model.Fine, error)
	OutstandingBalance(ctx context.Context, memberID int) (float64, error)
	ListFinesByMember(ctx context.Context, memberID int) ([]model.Fine, error)
	HasUnpaidFines(ctx context.Context, memberID int) (bool, error)

	Stats(ctx context.Context) (model.DashboardStats, error)
	OverdueReport(ctx context.Context, asOf time.Time) ([]model.OverdueReportItem, error)
	InsertEvent(ctx context.Context, event kafka.EventCirculation) error
	ListEvents(ctx context.Context, limit int) ([]model.CirculationEvent, error)
}

type repository struct {
	db          *sqlx.DB
	tx          *sqlx.Tx
	lockTimeout time.Duration
	log         *zap.Logger
}

func NewRepository(db *sqlx.DB, lockTimeout time.Duration, log *zap.Logger) (*repository, error) {
	return &repository{
		db:          db,
		lockTimeout: lockTimeout,
		log:         log.Named("repo"),
	}, nil
}

const (
	membersTableName      = `members`
	booksTableName        = `books`
	bookItemsTableName    = `book_items`
	loansTableName        = `loans`
	reservationsTableName = `reservations`
	finesTableName        = `fines`
	eventsTableName       = `circulation_events`
)

var qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// ext is the query target: the open transaction when there is one,
// otherwise the pool.
func (r *repository) ext() sqlx.ExtContext {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

func (r *repository) WithinTx(ctx context.Context, fn func(ctx context.Context, r Repository) error) error {
	if r.tx != nil {
		return fn(ctx, r)
	}
	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{})
	if err != nil {
		return errors.Wrap(err, "begin tx")
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, fmt.Sprintf("set local lock_timeout = '%dms'", r.lockTimeout.Milliseconds())); err != nil {
		return errors.Wrap(err, "set lock_timeout")
	}

	txRepo := &repository{
		db:          r.db,
		tx:          tx,
		lockTimeout: r.lockTimeout,
		log:         r.log,
	}
	if err := fn(ctx, txRepo); err != nil {
		return wrapPgErr(err)
	}
	if err := tx.Commit(); err != nil {
		return wrapPgErr(errors.Wrap(err, "commit"))
	}
	return nil
}

func (r *repository) LockBook(ctx context.Context, bookID int) error {
	q := fmt.Sprintf(`select id from %s where id = $1 for update`, booksTableName)
	var id int
	if err := sqlx.GetContext(ctx, r.ext(), &id, q, bookID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return errs.ErrNotFound
		}
		return wrapPgErr(err)
	}
	return nil
}

// wrapPgErr maps driver-level conflicts onto the service error taxonomy.
func wrapPgErr(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.LockNotAvailable, pgerrcode.SerializationFailure, pgerrcode.DeadlockDetected:
			return errs.ErrConflict
		case pgerrcode.ForeignKeyViolation:
			return errs.ErrConflict
		case pgerrcode.UniqueViolation:
			switch pgErr.ConstraintName {
			case "uq_reservations_active":
				return errs.ErrDuplicateReservation
			case "book_items_pkey":
				return errs.ErrDuplicateBarcode
			case "uq_loans_active_item":
				return errs.ErrConflict
			}
			return errs.ErrConflict
		}
	}
	return err
}
