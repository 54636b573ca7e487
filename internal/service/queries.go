package service

import (
	"context"
	"time"

	"github.com/Astemirdum/circulation-service/internal/errs"
	"github.com/Astemirdum/circulation-service/internal/model"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

func (s *Service) GetMember(ctx context.Context, memberID int) (model.Member, error) {
	return s.repo.GetMember(ctx, memberID)
}

func (s *Service) GetLoan(ctx context.Context, loanUID string) (model.Loan, error) {
	return s.repo.GetLoanByUID(ctx, loanUID)
}

func (s *Service) GetReservation(ctx context.Context, reservationUID string) (model.Reservation, error) {
	return s.repo.GetReservationByUID(ctx, reservationUID)
}

func (s *Service) MemberLoans(ctx context.Context, memberID int) (model.LoanHistory, error) {
	if _, err := s.repo.GetMember(ctx, memberID); err != nil {
		return model.LoanHistory{}, err
	}
	return s.repo.ListLoansByMember(ctx, memberID)
}

func (s *Service) MemberReservations(ctx context.Context, memberID int) ([]model.Reservation, error) {
	if _, err := s.repo.GetMember(ctx, memberID); err != nil {
		return nil, err
	}
	return s.repo.ListReservationsByMember(ctx, memberID)
}

func (s *Service) MemberFines(ctx context.Context, memberID int) ([]model.Fine, error) {
	if _, err := s.repo.GetMember(ctx, memberID); err != nil {
		return nil, err
	}
	return s.repo.ListFinesByMember(ctx, memberID)
}

func (s *Service) MemberBalance(ctx context.Context, memberID int) (float64, error) {
	if _, err := s.repo.GetMember(ctx, memberID); err != nil {
		return 0, err
	}
	return s.repo.OutstandingBalance(ctx, memberID)
}

func (s *Service) GetBook(ctx context.Context, bookID int) (model.Book, error) {
	return s.repo.GetBook(ctx, bookID)
}

func (s *Service) BookReservations(ctx context.Context, bookID int) ([]model.Reservation, error) {
	return s.repo.ListReservationsByBook(ctx, bookID)
}

// ItemDetails aggregates everything the desk needs about one copy: its
// status, the open loan on it, the hold it is earmarked for and how many
// sibling copies are on the shelf.
func (s *Service) ItemDetails(ctx context.Context, barcode string) (model.ItemDetails, error) {
	item, err := s.repo.GetItem(ctx, barcode)
	if err != nil {
		return model.ItemDetails{}, err
	}
	details := model.ItemDetails{Item: item}

	gg, ctx := errgroup.WithContext(ctx)
	gg.Go(func() error {
		loan, err := s.repo.GetActiveLoanByBarcode(ctx, barcode)
		if err != nil {
			if errors.Is(err, errs.ErrNoActiveLoan) {
				return nil
			}
			return err
		}
		details.ActiveLoan = &loan
		return nil
	})
	gg.Go(func() error {
		if item.Status != model.ItemReserved {
			return nil
		}
		reservations, err := s.repo.ListReservationsByBook(ctx, item.BookID)
		if err != nil {
			return err
		}
		for i := range reservations {
			if reservations[i].Status == model.ReservationFulfilled {
				details.HeldFor = &reservations[i]
				break
			}
		}
		return nil
	})
	gg.Go(func() error {
		available, err := s.repo.AvailableCopies(ctx, item.BookID)
		if err != nil {
			return err
		}
		details.AvailableCopies = available
		return nil
	})
	if err := gg.Wait(); err != nil {
		return model.ItemDetails{}, err
	}
	return details, nil
}

func (s *Service) ItemHistory(ctx context.Context, barcode string) ([]model.Loan, error) {
	if _, err := s.repo.GetItem(ctx, barcode); err != nil {
		return nil, err
	}
	return s.repo.ListLoansByItem(ctx, barcode)
}

func (s *Service) OverdueReport(ctx context.Context) ([]model.OverdueReportItem, error) {
	return s.repo.OverdueReport(ctx, time.Now().UTC())
}

func (s *Service) Stats(ctx context.Context) (model.DashboardStats, error) {
	return s.repo.Stats(ctx)
}

func (s *Service) Events(ctx context.Context, limit int) ([]model.CirculationEvent, error) {
	if limit <= 0 || limit > 1000 {
		limit = 100
	}
	return s.repo.ListEvents(ctx, limit)
}
