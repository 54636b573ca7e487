package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Astemirdum/circulation-service/internal/errs"
	"github.com/Astemirdum/circulation-service/internal/model"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	sq "github.com/Masterminds/squirrel"
)

func (r *repository) GetBook(ctx context.Context, bookID int) (model.Book, error) {
	q := fmt.Sprintf(`select b.id, b.title, b.author,
	(select count(*) from %s i where i.book_id = b.id and i.status = 'Available') as available_copies
	from %s b where b.id = $1`, bookItemsTableName, booksTableName)

	var book model.Book
	if err := sqlx.GetContext(ctx, r.ext(), &book, q, bookID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Book{}, errs.ErrNotFound
		}
		return model.Book{}, err
	}
	return book, nil
}

func (r *repository) GetItem(ctx context.Context, barcode string) (model.BookItem, error) {
	q, args, err := qb.Select("barcode", "book_id", "status", "date_acquired").
		From(bookItemsTableName).
		Where(sq.Eq{"barcode": barcode}).
		ToSql()
	if err != nil {
		return model.BookItem{}, err
	}
	var item model.BookItem
	if err := sqlx.GetContext(ctx, r.ext(), &item, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.BookItem{}, errs.ErrNotFound
		}
		return model.BookItem{}, err
	}
	return item, nil
}

func (r *repository) AddItem(ctx context.Context, bookID int, barcode string) (model.BookItem, error) {
	q, args, err := qb.Insert(bookItemsTableName).
		Columns("barcode", "book_id", "status").
		Values(barcode, bookID, model.ItemAvailable).
		Suffix("returning barcode, book_id, status, date_acquired").
		ToSql()
	if err != nil {
		return model.BookItem{}, err
	}
	var item model.BookItem
	if err := sqlx.GetContext(ctx, r.ext(), &item, q, args...); err != nil {
		r.log.Error("AddItem", zap.String("barcode", barcode), zap.Error(err))
		return model.BookItem{}, wrapAddItemErr(err)
	}
	return item, nil
}

func wrapAddItemErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return errs.ErrDuplicateBarcode
		case pgerrcode.ForeignKeyViolation:
			// the referenced title does not exist
			return errs.ErrNotFound
		}
	}
	return wrapPgErr(err)
}

func (r *repository) RemoveItem(ctx context.Context, barcode string) error {
	q, args, err := qb.Delete(bookItemsTableName).
		Where(sq.Eq{"barcode": barcode}).
		ToSql()
	if err != nil {
		return err
	}
	res, err := r.ext().ExecContext(ctx, q, args...)
	if err != nil {
		return wrapPgErr(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// TransitionItem is the sole writer of book_items.status. The conditional
// update either moves the item in one atomic statement or affects no rows,
// in which case the current row is re-read to tell NotFound from Conflict.
func (r *repository) TransitionItem(ctx context.Context, barcode string, fromAllowed []model.ItemStatus, to model.ItemStatus) (model.BookItem, error) {
	q, args, err := qb.Update(bookItemsTableName).
		Set("status", to).
		Where(sq.Eq{"barcode": barcode}).
		Where(sq.Eq{"status": fromAllowed}).
		Suffix("returning barcode, book_id, status, date_acquired").
		ToSql()
	if err != nil {
		return model.BookItem{}, err
	}
	var item model.BookItem
	if err := sqlx.GetContext(ctx, r.ext(), &item, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			if _, getErr := r.GetItem(ctx, barcode); getErr != nil {
				return model.BookItem{}, getErr
			}
			return model.BookItem{}, errs.ErrConflict
		}
		return model.BookItem{}, wrapPgErr(err)
	}
	return item, nil
}

// GetReservedItem finds a copy of the title currently held for pickup.
func (r *repository) GetReservedItem(ctx context.Context, bookID int) (model.BookItem, error) {
	q, args, err := qb.Select("barcode", "book_id", "status", "date_acquired").
		From(bookItemsTableName).
		Where(sq.Eq{"book_id": bookID, "status": model.ItemReserved}).
		Limit(1).
		ToSql()
	if err != nil {
		return model.BookItem{}, err
	}
	var item model.BookItem
	if err := sqlx.GetContext(ctx, r.ext(), &item, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.BookItem{}, errs.ErrNotFound
		}
		return model.BookItem{}, err
	}
	return item, nil
}

func (r *repository) AvailableCopies(ctx context.Context, bookID int) (int, error) {
	q := fmt.Sprintf(`select count(*) from %s where book_id = $1 and status = $2`, bookItemsTableName)
	var count int
	if err := sqlx.GetContext(ctx, r.ext(), &count, q, bookID, model.ItemAvailable); err != nil {
		return 0, err
	}
	return count, nil
}
