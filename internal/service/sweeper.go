package service

import (
	"context"
	"time"

	"github.com/Astemirdum/circulation-service/internal/errs"
	"github.com/Astemirdum/circulation-service/internal/model"
	"github.com/Astemirdum/circulation-service/internal/repository"
	"github.com/Astemirdum/circulation-service/pkg/kafka"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// RunSweeper drives periodic maintenance until ctx is cancelled: overdue
// fine accrual and expiry of uncollected holds.
func (s *Service) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.log.Info("sweeper started", zap.Duration("interval", interval))
	for {
		select {
		case <-ctx.Done():
			s.log.Info("sweeper stopped")
			return
		case <-ticker.C:
			summary, err := s.Sweep(ctx)
			if err != nil {
				s.log.Error("sweep", zap.Error(err))
				continue
			}
			s.log.Info("sweep done",
				zap.Int("finesAccrued", summary.FinesAccrued),
				zap.Int("holdsExpired", summary.HoldsExpired),
			)
		}
	}
}

// Sweep runs one maintenance pass. Both halves are idempotent, so an
// operator can trigger it by hand between ticks.
func (s *Service) Sweep(ctx context.Context) (model.SweepSummary, error) {
	var summary model.SweepSummary

	accrued, err := s.accrueOverdueFines(ctx)
	if err != nil {
		return summary, err
	}
	summary.FinesAccrued = accrued

	expired, err := s.expireStaleHolds(ctx)
	if err != nil {
		return summary, err
	}
	summary.HoldsExpired = expired
	return summary, nil
}

// accrueOverdueFines raises the overdue fine on every late open loan to
// its current value. Each loan gets its own transaction so one hot title
// cannot stall the whole pass.
func (s *Service) accrueOverdueFines(ctx context.Context) (int, error) {
	now := time.Now().UTC()
	overdue, err := s.repo.ListOverdueLoans(ctx, now)
	if err != nil {
		return 0, err
	}
	accrued := 0
	for _, loan := range overdue {
		loan := loan
		days := daysLate(loan.DueDate, now)
		if days == 0 {
			continue
		}
		err := s.withRetry(ctx, func(ctx context.Context, r repository.Repository) error {
			if _, err := s.fines.assessOverdue(ctx, r, loan, days); err != nil {
				return err
			}
			_, err := s.fines.maybeBlock(ctx, r, loan.MemberID)
			return err
		})
		if err != nil {
			s.log.Warn("accrue overdue fine",
				zap.String("loanUID", loan.LoanUID), zap.Error(err))
			continue
		}
		accrued++
	}
	return accrued, nil
}

// expireStaleHolds times out Fulfilled reservations whose pickup window
// closed and re-routes their earmarked copies.
func (s *Service) expireStaleHolds(ctx context.Context) (int, error) {
	cutoff := time.Now().UTC().AddDate(0, 0, -s.policy.HoldExpiryDays)
	stale, err := s.repo.ListStaleFulfilled(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	expired := 0
	for _, res := range stale {
		res := res
		var events []kafka.EventCirculation
		err := s.withRetry(ctx, func(ctx context.Context, r repository.Repository) error {
			events = events[:0]
			if err := r.LockBook(ctx, res.BookID); err != nil {
				return err
			}
			if err := s.queue.expire(ctx, r, res); err != nil {
				return err
			}
			now := time.Now().UTC()
			events = append(events, kafka.EventCirculation{
				Type:           eventReservationExpired,
				MemberID:       res.MemberID,
				BookID:         res.BookID,
				ReservationUID: res.ReservationUID,
				OccurredAt:     now,
			})
			handedTo, err := s.releaseHeldCopy(ctx, r, res.BookID)
			if err != nil {
				return err
			}
			if handedTo != nil {
				events = append(events, kafka.EventCirculation{
					Type:           eventReservationFulfilled,
					MemberID:       handedTo.MemberID,
					BookID:         handedTo.BookID,
					ReservationUID: handedTo.ReservationUID,
					OccurredAt:     now,
				})
			}
			return nil
		})
		if err != nil {
			// collected or cancelled between the list and the lock
			if errors.Is(err, errs.ErrConflict) {
				continue
			}
			s.log.Warn("expire hold",
				zap.String("reservationUID", res.ReservationUID), zap.Error(err))
			continue
		}
		s.pub.publish(events...)
		expired++
	}
	return expired, nil
}
