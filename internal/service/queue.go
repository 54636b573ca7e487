package service

import (
	"context"

	"github.com/Astemirdum/circulation-service/internal/errs"
	"github.com/Astemirdum/circulation-service/internal/model"
	"github.com/Astemirdum/circulation-service/internal/repository"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// reservationQueue owns the per-title FIFO of holds. All mutations run
// inside a transaction that already holds the title lock, so queue reads
// and the subsequent status writes observe one consistent snapshot.
type reservationQueue struct {
	log *zap.Logger
}

func newReservationQueue(log *zap.Logger) *reservationQueue {
	return &reservationQueue{log: log.Named("queue")}
}

// enqueue appends the member to the title's queue. Placing a hold while a
// copy sits on the shelf is refused: the member should borrow it directly.
func (q *reservationQueue) enqueue(ctx context.Context, r repository.Repository, bookID, memberID int) (model.Reservation, error) {
	available, err := r.AvailableCopies(ctx, bookID)
	if err != nil {
		return model.Reservation{}, err
	}
	if available > 0 {
		return model.Reservation{}, errs.ErrAvailableCopyExists
	}
	res, err := r.CreateReservation(ctx, bookID, memberID)
	if err != nil {
		return model.Reservation{}, err
	}
	if res.QueuePosition, err = r.QueuePosition(ctx, res.ID); err != nil {
		return model.Reservation{}, err
	}
	q.log.Info("reservation enqueued",
		zap.String("reservationUID", res.ReservationUID),
		zap.Int("bookID", bookID),
		zap.Int("memberID", memberID),
	)
	return res, nil
}

// fulfill promotes the head-of-queue hold once a copy has been earmarked.
func (q *reservationQueue) fulfill(ctx context.Context, r repository.Repository, res model.Reservation) error {
	return r.SetReservationStatus(ctx, res.ID,
		[]model.ReservationStatus{model.ReservationPending}, model.ReservationFulfilled)
}

// collect closes the hold when its member picks the copy up.
func (q *reservationQueue) collect(ctx context.Context, r repository.Repository, res model.Reservation) error {
	return r.SetReservationStatus(ctx, res.ID,
		[]model.ReservationStatus{model.ReservationFulfilled}, model.ReservationCollected)
}

// cancel removes an active hold. Returns the reservation's status at the
// time of cancellation so the caller knows whether a copy was earmarked.
func (q *reservationQueue) cancel(ctx context.Context, r repository.Repository, res model.Reservation) error {
	if res.Status.Terminal() {
		return errs.ErrAlreadyTerminal
	}
	return r.SetReservationStatus(ctx, res.ID,
		[]model.ReservationStatus{model.ReservationPending, model.ReservationFulfilled},
		model.ReservationCancelled)
}

// expire times out a stale Fulfilled hold.
func (q *reservationQueue) expire(ctx context.Context, r repository.Repository, res model.Reservation) error {
	return r.SetReservationStatus(ctx, res.ID,
		[]model.ReservationStatus{model.ReservationFulfilled}, model.ReservationExpired)
}

// next returns the head of the Pending queue, or found=false when empty.
func (q *reservationQueue) next(ctx context.Context, r repository.Repository, bookID int) (model.Reservation, bool, error) {
	res, err := r.NextPendingReservation(ctx, bookID)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return model.Reservation{}, false, nil
		}
		return model.Reservation{}, false, err
	}
	return res, true, nil
}
