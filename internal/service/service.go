package service

import (
	"context"
	"time"

	"github.com/Astemirdum/circulation-service/config"
	"github.com/Astemirdum/circulation-service/internal/errs"
	"github.com/Astemirdum/circulation-service/internal/model"
	"github.com/Astemirdum/circulation-service/internal/repository"
	"github.com/Astemirdum/circulation-service/pkg/kafka"
	"github.com/IBM/sarama"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Service is the circulation facade. Every state-changing operation runs
// inside one transaction with the affected title locked, so staff at
// different desks can hammer the same title without corrupting the queue
// or the copy lifecycle.
type Service struct {
	repo   repository.Repository
	policy config.Policy

	ledger *inventoryLedger
	queue  *reservationQueue
	fines  *fineEngine
	pub    *publisher

	log *zap.Logger
}

func NewService(repo repository.Repository, policy config.Policy, producer sarama.SyncProducer, log *zap.Logger) *Service {
	log = log.Named("service")
	return &Service{
		repo:   repo,
		policy: policy,
		ledger: newInventoryLedger(log),
		queue:  newReservationQueue(log),
		fines:  newFineEngine(policy, log),
		pub:    newPublisher(producer, log),
		log:    log,
	}
}

// withRetry runs fn in a transaction and retries it once when the failure
// was a lock or compare-and-swap conflict. fn must be safe to re-run from
// scratch.
func (s *Service) withRetry(ctx context.Context, fn func(ctx context.Context, r repository.Repository) error) error {
	err := s.repo.WithinTx(ctx, fn)
	if err != nil && errs.IsRetryable(err) {
		s.log.Warn("conflict, retrying once", zap.Error(err))
		err = s.repo.WithinTx(ctx, fn)
	}
	return err
}

// IssueLoan checks the member's standing, claims the copy and opens a loan.
// A Reserved copy is only issued to the member holding its fulfilled
// reservation, which is closed as Collected in the same transaction.
func (s *Service) IssueLoan(ctx context.Context, req model.IssueLoanRequest) (model.Loan, error) {
	var (
		loan   model.Loan
		events []kafka.EventCirculation
	)
	err := s.withRetry(ctx, func(ctx context.Context, r repository.Repository) error {
		events = events[:0]

		member, err := r.GetMember(ctx, req.MemberID)
		if err != nil {
			return err
		}
		if member.Status != model.MemberActive {
			return errs.ErrMemberBlocked
		}
		balance, err := r.OutstandingBalance(ctx, member.ID)
		if err != nil {
			return err
		}
		if balance >= s.policy.FineThreshold {
			return errs.ErrFineLimitExceeded
		}
		active, err := r.CountActiveLoans(ctx, member.ID)
		if err != nil {
			return err
		}
		if active >= s.policy.MaxLoansPerMember {
			return errs.ErrLoanLimitExceeded
		}

		item, err := r.GetItem(ctx, req.Barcode)
		if err != nil {
			return err
		}
		if err := r.LockBook(ctx, item.BookID); err != nil {
			return err
		}

		var hold *model.Reservation
		switch item.Status {
		case model.ItemAvailable:
		case model.ItemReserved:
			res, err := r.GetFulfilledReservation(ctx, item.BookID, member.ID)
			if err != nil {
				if errors.Is(err, errs.ErrNotFound) {
					return errs.ErrReservedForAnotherMember
				}
				return err
			}
			hold = &res
		default:
			return errs.ErrConflict
		}

		if _, err := s.ledger.transition(ctx, r, req.Barcode,
			[]model.ItemStatus{item.Status}, model.ItemBorrowed); err != nil {
			return err
		}

		days := req.Days
		if days <= 0 {
			days = s.policy.LoanPeriodDays
		}
		now := time.Now().UTC()
		loan, err = r.CreateLoan(ctx, model.Loan{
			LoanUID:   uuid.New().String(),
			Barcode:   req.Barcode,
			MemberID:  member.ID,
			IssueDate: now,
			DueDate:   now.AddDate(0, 0, days),
		})
		if err != nil {
			return err
		}

		if hold != nil {
			if err := s.queue.collect(ctx, r, *hold); err != nil {
				return err
			}
		}
		events = append(events, kafka.EventCirculation{
			Type:       eventLoanIssued,
			MemberID:   loan.MemberID,
			BookID:     item.BookID,
			Barcode:    loan.Barcode,
			LoanUID:    loan.LoanUID,
			OccurredAt: now,
		})
		return nil
	})
	if err != nil {
		return model.Loan{}, err
	}
	s.pub.publish(events...)
	return loan, nil
}

// ReturnItem closes the active loan on the copy, assesses any overdue and
// damage fines, then routes the copy: earmarked for the next queued member
// when the queue is non-empty, back to the shelf otherwise.
func (s *Service) ReturnItem(ctx context.Context, req model.ReturnItemRequest) (model.ReturnResult, error) {
	var (
		result model.ReturnResult
		events []kafka.EventCirculation
	)
	err := s.withRetry(ctx, func(ctx context.Context, r repository.Repository) error {
		result = model.ReturnResult{}
		events = events[:0]

		loan, err := r.GetActiveLoanByBarcode(ctx, req.Barcode)
		if err != nil {
			return err
		}
		item, err := r.GetItem(ctx, req.Barcode)
		if err != nil {
			return err
		}
		if err := r.LockBook(ctx, item.BookID); err != nil {
			return err
		}

		now := time.Now().UTC()
		closed, err := r.CloseLoan(ctx, loan.ID, now, req.Condition)
		if err != nil {
			return err
		}
		result.Loan = closed
		events = append(events, kafka.EventCirculation{
			Type:       eventLoanReturned,
			MemberID:   closed.MemberID,
			BookID:     item.BookID,
			Barcode:    closed.Barcode,
			LoanUID:    closed.LoanUID,
			OccurredAt: now,
		})

		if days := daysLate(closed.DueDate, now); days > 0 {
			fine, err := s.fines.assessOverdue(ctx, r, closed, days)
			if err != nil {
				return err
			}
			result.Fines = append(result.Fines, fine)
			events = append(events, fineEvent(fine, item.BookID, closed, now))
		}
		if req.Condition == model.ConditionDamaged {
			fine, err := s.fines.assessDamage(ctx, r, closed)
			if err != nil {
				return err
			}
			result.Fines = append(result.Fines, fine)
			events = append(events, fineEvent(fine, item.BookID, closed, now))
		}
		if len(result.Fines) > 0 {
			blocked, err := s.fines.maybeBlock(ctx, r, closed.MemberID)
			if err != nil {
				return err
			}
			if blocked {
				events = append(events, kafka.EventCirculation{
					Type:       eventMemberBlocked,
					MemberID:   closed.MemberID,
					OccurredAt: now,
				})
			}
		}

		next, found, err := s.queue.next(ctx, r, item.BookID)
		if err != nil {
			return err
		}
		if found {
			if err := s.queue.fulfill(ctx, r, next); err != nil {
				return err
			}
			if _, err := s.ledger.transition(ctx, r, req.Barcode,
				[]model.ItemStatus{model.ItemBorrowed}, model.ItemReserved); err != nil {
				return err
			}
			result.HeldForMember = &next.MemberID
			events = append(events, kafka.EventCirculation{
				Type:           eventReservationFulfilled,
				MemberID:       next.MemberID,
				BookID:         next.BookID,
				Barcode:        req.Barcode,
				ReservationUID: next.ReservationUID,
				OccurredAt:     now,
			})
			return nil
		}
		_, err = s.ledger.transition(ctx, r, req.Barcode,
			[]model.ItemStatus{model.ItemBorrowed}, model.ItemAvailable)
		return err
	})
	if err != nil {
		return model.ReturnResult{}, err
	}
	s.pub.publish(events...)
	return result, nil
}

// RenewLoan extends the due date by one loan period from today. Renewal is
// refused when the renewal limit is reached or another member is queued
// for the title.
func (s *Service) RenewLoan(ctx context.Context, loanUID string) (model.Loan, error) {
	var (
		renewed model.Loan
		event   kafka.EventCirculation
	)
	err := s.withRetry(ctx, func(ctx context.Context, r repository.Repository) error {
		loan, err := r.GetLoanByUID(ctx, loanUID)
		if err != nil {
			return err
		}
		if !loan.Active() {
			return errs.ErrAlreadyReturned
		}
		if loan.RenewalCount >= s.policy.MaxRenewals {
			return errs.ErrRenewalLimitExceeded
		}
		item, err := r.GetItem(ctx, loan.Barcode)
		if err != nil {
			return err
		}
		if err := r.LockBook(ctx, item.BookID); err != nil {
			return err
		}
		pending, err := r.HasPendingReservations(ctx, item.BookID)
		if err != nil {
			return err
		}
		if pending {
			return errs.ErrReservedByOthers
		}
		now := time.Now().UTC()
		renewed, err = r.RenewLoan(ctx, loan.ID, now.AddDate(0, 0, s.policy.LoanPeriodDays))
		if err != nil {
			return err
		}
		event = kafka.EventCirculation{
			Type:       eventLoanRenewed,
			MemberID:   renewed.MemberID,
			BookID:     item.BookID,
			Barcode:    renewed.Barcode,
			LoanUID:    renewed.LoanUID,
			OccurredAt: now,
		}
		return nil
	})
	if err != nil {
		return model.Loan{}, err
	}
	s.pub.publish(event)
	return renewed, nil
}

// MarkLoanLost closes the loan, retires the copy as Lost and bills the
// member the replacement fee. The queue is untouched: there is no copy to
// hand over.
func (s *Service) MarkLoanLost(ctx context.Context, loanUID string, req model.MarkLostRequest) (model.ReturnResult, error) {
	var (
		result model.ReturnResult
		events []kafka.EventCirculation
	)
	err := s.withRetry(ctx, func(ctx context.Context, r repository.Repository) error {
		result = model.ReturnResult{}
		events = events[:0]

		loan, err := r.GetLoanByUID(ctx, loanUID)
		if err != nil {
			return err
		}
		if !loan.Active() {
			return errs.ErrAlreadyReturned
		}
		item, err := r.GetItem(ctx, loan.Barcode)
		if err != nil {
			return err
		}
		if err := r.LockBook(ctx, item.BookID); err != nil {
			return err
		}

		now := time.Now().UTC()
		closed, err := r.CloseLoan(ctx, loan.ID, now, model.ConditionLost)
		if err != nil {
			return err
		}
		result.Loan = closed
		if _, err := s.ledger.transition(ctx, r, loan.Barcode,
			[]model.ItemStatus{model.ItemBorrowed}, model.ItemLost); err != nil {
			return err
		}
		fine, err := s.fines.assessLost(ctx, r, closed, req.ReplacementFee)
		if err != nil {
			return err
		}
		result.Fines = append(result.Fines, fine)
		events = append(events,
			kafka.EventCirculation{
				Type:       eventLoanLost,
				MemberID:   closed.MemberID,
				BookID:     item.BookID,
				Barcode:    closed.Barcode,
				LoanUID:    closed.LoanUID,
				OccurredAt: now,
			},
			fineEvent(fine, item.BookID, closed, now),
		)
		blocked, err := s.fines.maybeBlock(ctx, r, closed.MemberID)
		if err != nil {
			return err
		}
		if blocked {
			events = append(events, kafka.EventCirculation{
				Type:       eventMemberBlocked,
				MemberID:   closed.MemberID,
				OccurredAt: now,
			})
		}
		return nil
	})
	if err != nil {
		return model.ReturnResult{}, err
	}
	s.pub.publish(events...)
	return result, nil
}

// CreateReservation places the member at the tail of the title's queue.
func (s *Service) CreateReservation(ctx context.Context, req model.CreateReservationRequest) (model.Reservation, error) {
	var res model.Reservation
	err := s.withRetry(ctx, func(ctx context.Context, r repository.Repository) error {
		member, err := r.GetMember(ctx, req.MemberID)
		if err != nil {
			return err
		}
		if member.Status != model.MemberActive {
			return errs.ErrMemberBlocked
		}
		if err := r.LockBook(ctx, req.BookID); err != nil {
			return err
		}
		res, err = s.queue.enqueue(ctx, r, req.BookID, member.ID)
		return err
	})
	if err != nil {
		return model.Reservation{}, err
	}
	s.pub.publish(kafka.EventCirculation{
		Type:           eventReservationCreated,
		MemberID:       res.MemberID,
		BookID:         res.BookID,
		ReservationUID: res.ReservationUID,
		OccurredAt:     res.ReservationDate,
	})
	return res, nil
}

// CancelReservation withdraws a hold. Cancelling a Fulfilled hold frees its
// earmarked copy: the queue is re-evaluated and the copy either passes to
// the next member or goes back to the shelf.
func (s *Service) CancelReservation(ctx context.Context, reservationUID string) error {
	var events []kafka.EventCirculation
	err := s.withRetry(ctx, func(ctx context.Context, r repository.Repository) error {
		events = events[:0]

		res, err := r.GetReservationByUID(ctx, reservationUID)
		if err != nil {
			return err
		}
		if res.Status.Terminal() {
			return errs.ErrAlreadyTerminal
		}
		if err := r.LockBook(ctx, res.BookID); err != nil {
			return err
		}
		if err := s.queue.cancel(ctx, r, res); err != nil {
			return err
		}
		now := time.Now().UTC()
		events = append(events, kafka.EventCirculation{
			Type:           eventReservationCancelled,
			MemberID:       res.MemberID,
			BookID:         res.BookID,
			ReservationUID: res.ReservationUID,
			OccurredAt:     now,
		})
		if res.Status != model.ReservationFulfilled {
			return nil
		}
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
		return err
	}
	s.pub.publish(events...)
	return nil
}

// releaseHeldCopy re-routes a Reserved copy after its hold ended: the next
// Pending member inherits it, otherwise it returns to the shelf. Returns
// the reservation that inherited the copy, if any.
func (s *Service) releaseHeldCopy(ctx context.Context, r repository.Repository, bookID int) (*model.Reservation, error) {
	item, err := r.GetReservedItem(ctx, bookID)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	next, found, err := s.queue.next(ctx, r, bookID)
	if err != nil {
		return nil, err
	}
	if found {
		if err := s.queue.fulfill(ctx, r, next); err != nil {
			return nil, err
		}
		return &next, nil
	}
	if _, err := s.ledger.transition(ctx, r, item.Barcode,
		[]model.ItemStatus{model.ItemReserved}, model.ItemAvailable); err != nil {
		return nil, err
	}
	return nil, nil
}

// PayFine records a full or partial payment against a fine.
func (s *Service) PayFine(ctx context.Context, fineID int, req model.PayFineRequest) (model.Fine, error) {
	var fine model.Fine
	err := s.withRetry(ctx, func(ctx context.Context, r repository.Repository) error {
		var err error
		fine, err = s.fines.settle(ctx, r, fineID, req.Amount)
		return err
	})
	if err != nil {
		return model.Fine{}, err
	}
	s.pub.publish(kafka.EventCirculation{
		Type:       eventFinePaid,
		MemberID:   fine.MemberID,
		LoanUID:    fine.LoanUID,
		Amount:     req.Amount,
		OccurredAt: time.Now().UTC(),
	})
	return fine, nil
}

// AddItem registers a new physical copy of an existing title.
func (s *Service) AddItem(ctx context.Context, bookID int, req model.AddItemRequest) (model.BookItem, error) {
	return s.repo.AddItem(ctx, bookID, req.Barcode)
}

// RemoveItem retires a copy from the collection. Copies on loan or held
// for pickup cannot be removed.
func (s *Service) RemoveItem(ctx context.Context, barcode string) error {
	return s.withRetry(ctx, func(ctx context.Context, r repository.Repository) error {
		item, err := r.GetItem(ctx, barcode)
		if err != nil {
			return err
		}
		if item.Status == model.ItemBorrowed || item.Status == model.ItemReserved {
			return errs.ErrConflict
		}
		return r.RemoveItem(ctx, barcode)
	})
}

// DeclareItemStatus records a staff finding about a copy that is not on
// loan: lost or damaged on the shelf, or recovered back to Available.
// Copies on loan go through MarkLoanLost instead, so the open loan is
// closed and billed.
func (s *Service) DeclareItemStatus(ctx context.Context, barcode string, req model.DeclareItemStatusRequest) (model.BookItem, error) {
	var item model.BookItem
	err := s.withRetry(ctx, func(ctx context.Context, r repository.Repository) error {
		var fromAllowed []model.ItemStatus
		switch req.Status {
		case model.ItemAvailable:
			fromAllowed = []model.ItemStatus{model.ItemLost, model.ItemDamaged}
		case model.ItemLost, model.ItemDamaged:
			fromAllowed = []model.ItemStatus{model.ItemAvailable, model.ItemReserved}
		default:
			return errs.ErrConflict
		}
		current, err := r.GetItem(ctx, barcode)
		if err != nil {
			return err
		}
		if err := r.LockBook(ctx, current.BookID); err != nil {
			return err
		}
		item, err = s.ledger.transition(ctx, r, barcode, fromAllowed, req.Status)
		if err != nil {
			return err
		}
		// a copy pulled out of Reserved leaves its fulfilled hold dangling;
		// hand the next copy over or expire the hold
		if current.Status != model.ItemReserved {
			return nil
		}
		return s.reassignOrphanedHold(ctx, r, current.BookID)
	})
	if err != nil {
		return model.BookItem{}, err
	}
	return item, nil
}

// reassignOrphanedHold repairs a fulfilled hold whose earmarked copy was
// pulled from circulation. Another Reserved copy keeps the hold alive;
// otherwise the hold drops back to Pending to await the next return.
func (s *Service) reassignOrphanedHold(ctx context.Context, r repository.Repository, bookID int) error {
	if _, err := r.GetReservedItem(ctx, bookID); err == nil {
		return nil
	} else if !errors.Is(err, errs.ErrNotFound) {
		return err
	}
	reservations, err := r.ListReservationsByBook(ctx, bookID)
	if err != nil {
		return err
	}
	for _, res := range reservations {
		if res.Status != model.ReservationFulfilled {
			continue
		}
		if err := r.SetReservationStatus(ctx, res.ID,
			[]model.ReservationStatus{model.ReservationFulfilled}, model.ReservationPending); err != nil {
			return err
		}
	}
	return nil
}

// UpdateMemberStatus lets staff block or re-activate a member.
func (s *Service) UpdateMemberStatus(ctx context.Context, memberID int, req model.MemberStatusUpdateRequest) error {
	return s.repo.UpdateMemberStatus(ctx, memberID, req.Status)
}

// DeleteMember removes a member record. Members with open loans or unpaid
// fines are kept: the debt trail must survive.
func (s *Service) DeleteMember(ctx context.Context, memberID int) error {
	return s.withRetry(ctx, func(ctx context.Context, r repository.Repository) error {
		if _, err := r.GetMember(ctx, memberID); err != nil {
			return err
		}
		active, err := r.CountActiveLoans(ctx, memberID)
		if err != nil {
			return err
		}
		if active > 0 {
			return errs.ErrHasActiveLoans
		}
		unpaid, err := r.HasUnpaidFines(ctx, memberID)
		if err != nil {
			return err
		}
		if unpaid {
			return errs.ErrHasUnpaidFines
		}
		return r.DeleteMember(ctx, memberID)
	})
}

// SaveEvent persists a consumed audit event.
func (s *Service) SaveEvent(ctx context.Context, event kafka.EventCirculation) error {
	return s.repo.InsertEvent(ctx, event)
}

func fineEvent(fine model.Fine, bookID int, loan model.Loan, at time.Time) kafka.EventCirculation {
	return kafka.EventCirculation{
		Type:       eventFineAssessed,
		MemberID:   fine.MemberID,
		BookID:     bookID,
		Barcode:    loan.Barcode,
		LoanUID:    loan.LoanUID,
		Amount:     fine.Amount,
		OccurredAt: at,
	}
}
