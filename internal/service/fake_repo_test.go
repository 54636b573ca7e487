package service_test

import (
	"context"
	"sort"
	"time"

	"github.com/Astemirdum/circulation-service/internal/errs"
	"github.com/Astemirdum/circulation-service/internal/model"
	"github.com/Astemirdum/circulation-service/internal/repository"
	"github.com/Astemirdum/circulation-service/pkg/kafka"
	"github.com/google/uuid"
)

// fakeRepo is an in-memory Repository with the same error semantics as the
// Postgres implementation: CAS misses report conflicts, duplicate queue
// slots and overpayments are refused.
type fakeRepo struct {
	members      map[int]model.Member
	books        map[int]bool
	items        map[string]model.BookItem
	loans        []*model.Loan
	reservations []*model.Reservation
	fines        []*model.Fine
	events       []kafka.EventCirculation

	loanSeq, resSeq, fineSeq int
}

var _ repository.Repository = (*fakeRepo)(nil)

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		members: make(map[int]model.Member),
		books:   make(map[int]bool),
		items:   make(map[string]model.BookItem),
	}
}

func (f *fakeRepo) addLoan(barcode string, memberID int, due time.Time, renewals int, returned *time.Time) model.Loan {
	f.loanSeq++
	loan := model.Loan{
		ID:           f.loanSeq,
		LoanUID:      uuid.New().String(),
		Barcode:      barcode,
		MemberID:     memberID,
		IssueDate:    due.AddDate(0, 0, -14),
		DueDate:      due,
		ReturnDate:   returned,
		RenewalCount: renewals,
	}
	stored := loan
	f.loans = append(f.loans, &stored)
	return loan
}

func (f *fakeRepo) addReservation(bookID, memberID int, status model.ReservationStatus, at time.Time) model.Reservation {
	f.resSeq++
	res := model.Reservation{
		ID:              f.resSeq,
		ReservationUID:  uuid.New().String(),
		BookID:          bookID,
		MemberID:        memberID,
		Status:          status,
		ReservationDate: at,
	}
	if status == model.ReservationFulfilled {
		fulfilledAt := at
		res.FulfilledAt = &fulfilledAt
	}
	stored := res
	f.reservations = append(f.reservations, &stored)
	return res
}

func (f *fakeRepo) addFine(loanID, memberID int, amount, paid float64, reason model.FineReason) model.Fine {
	f.fineSeq++
	status := model.FineUnpaid
	if paid >= amount {
		status = model.FinePaid
	} else if paid > 0 {
		status = model.FinePartiallyPaid
	}
	fine := model.Fine{ID: f.fineSeq, LoanID: loanID, MemberID: memberID, Amount: amount, AmountPaid: paid, Reason: reason, Status: status}
	if loan := f.loanByID(loanID); loan != nil {
		fine.LoanUID = loan.LoanUID
	}
	stored := fine
	f.fines = append(f.fines, &stored)
	return fine
}

func (f *fakeRepo) addMember(id int, status model.MemberStatus) {
	f.members[id] = model.Member{ID: id, Email: "m@lib.io", FullName: "member", Status: status}
}

func (f *fakeRepo) addBook(id int) { f.books[id] = true }

func (f *fakeRepo) addItemRow(barcode string, bookID int, status model.ItemStatus) {
	f.items[barcode] = model.BookItem{Barcode: barcode, BookID: bookID, Status: status, DateAcquired: time.Now().UTC()}
}

func (f *fakeRepo) WithinTx(ctx context.Context, fn func(ctx context.Context, r repository.Repository) error) error {
	return fn(ctx, f)
}

func (f *fakeRepo) LockBook(_ context.Context, bookID int) error {
	if !f.books[bookID] {
		return errs.ErrNotFound
	}
	return nil
}

func (f *fakeRepo) GetMember(_ context.Context, memberID int) (model.Member, error) {
	m, ok := f.members[memberID]
	if !ok {
		return model.Member{}, errs.ErrNotFound
	}
	return m, nil
}

func (f *fakeRepo) UpdateMemberStatus(_ context.Context, memberID int, status model.MemberStatus) error {
	m, ok := f.members[memberID]
	if !ok {
		return errs.ErrNotFound
	}
	m.Status = status
	f.members[memberID] = m
	return nil
}

func (f *fakeRepo) DeleteMember(_ context.Context, memberID int) error {
	if _, ok := f.members[memberID]; !ok {
		return errs.ErrNotFound
	}
	delete(f.members, memberID)
	return nil
}

func (f *fakeRepo) GetBook(ctx context.Context, bookID int) (model.Book, error) {
	if !f.books[bookID] {
		return model.Book{}, errs.ErrNotFound
	}
	available, _ := f.AvailableCopies(ctx, bookID)
	return model.Book{ID: bookID, Title: "title", Author: "author", AvailableCopies: available}, nil
}

func (f *fakeRepo) GetItem(_ context.Context, barcode string) (model.BookItem, error) {
	item, ok := f.items[barcode]
	if !ok {
		return model.BookItem{}, errs.ErrNotFound
	}
	return item, nil
}

func (f *fakeRepo) AddItem(_ context.Context, bookID int, barcode string) (model.BookItem, error) {
	if !f.books[bookID] {
		return model.BookItem{}, errs.ErrNotFound
	}
	if _, ok := f.items[barcode]; ok {
		return model.BookItem{}, errs.ErrDuplicateBarcode
	}
	item := model.BookItem{Barcode: barcode, BookID: bookID, Status: model.ItemAvailable, DateAcquired: time.Now().UTC()}
	f.items[barcode] = item
	return item, nil
}

func (f *fakeRepo) RemoveItem(_ context.Context, barcode string) error {
	if _, ok := f.items[barcode]; !ok {
		return errs.ErrNotFound
	}
	delete(f.items, barcode)
	return nil
}

func (f *fakeRepo) TransitionItem(_ context.Context, barcode string, fromAllowed []model.ItemStatus, to model.ItemStatus) (model.BookItem, error) {
	item, ok := f.items[barcode]
	if !ok {
		return model.BookItem{}, errs.ErrNotFound
	}
	for _, from := range fromAllowed {
		if item.Status == from {
			item.Status = to
			f.items[barcode] = item
			return item, nil
		}
	}
	return model.BookItem{}, errs.ErrConflict
}

func (f *fakeRepo) AvailableCopies(_ context.Context, bookID int) (int, error) {
	count := 0
	for _, item := range f.items {
		if item.BookID == bookID && item.Status == model.ItemAvailable {
			count++
		}
	}
	return count, nil
}

func (f *fakeRepo) GetReservedItem(_ context.Context, bookID int) (model.BookItem, error) {
	for _, item := range f.items {
		if item.BookID == bookID && item.Status == model.ItemReserved {
			return item, nil
		}
	}
	return model.BookItem{}, errs.ErrNotFound
}

func (f *fakeRepo) CreateLoan(_ context.Context, loan model.Loan) (model.Loan, error) {
	f.loanSeq++
	loan.ID = f.loanSeq
	stored := loan
	f.loans = append(f.loans, &stored)
	return loan, nil
}

func (f *fakeRepo) loanByID(loanID int) *model.Loan {
	for _, loan := range f.loans {
		if loan.ID == loanID {
			return loan
		}
	}
	return nil
}

func (f *fakeRepo) GetLoanByUID(_ context.Context, loanUID string) (model.Loan, error) {
	for _, loan := range f.loans {
		if loan.LoanUID == loanUID {
			return *loan, nil
		}
	}
	return model.Loan{}, errs.ErrNotFound
}

func (f *fakeRepo) GetActiveLoanByBarcode(_ context.Context, barcode string) (model.Loan, error) {
	for _, loan := range f.loans {
		if loan.Barcode == barcode && loan.Active() {
			return *loan, nil
		}
	}
	return model.Loan{}, errs.ErrNoActiveLoan
}

func (f *fakeRepo) CloseLoan(_ context.Context, loanID int, returnedAt time.Time, condition model.Condition) (model.Loan, error) {
	loan := f.loanByID(loanID)
	if loan == nil {
		return model.Loan{}, errs.ErrNotFound
	}
	if !loan.Active() {
		return model.Loan{}, errs.ErrAlreadyReturned
	}
	loan.ReturnDate = &returnedAt
	loan.ConditionOnReturn = &condition
	return *loan, nil
}

func (f *fakeRepo) RenewLoan(_ context.Context, loanID int, dueDate time.Time) (model.Loan, error) {
	loan := f.loanByID(loanID)
	if loan == nil {
		return model.Loan{}, errs.ErrNotFound
	}
	if !loan.Active() {
		return model.Loan{}, errs.ErrAlreadyReturned
	}
	loan.DueDate = dueDate
	loan.RenewalCount++
	return *loan, nil
}

func (f *fakeRepo) CountActiveLoans(_ context.Context, memberID int) (int, error) {
	count := 0
	for _, loan := range f.loans {
		if loan.MemberID == memberID && loan.Active() {
			count++
		}
	}
	return count, nil
}

func (f *fakeRepo) ListLoansByMember(_ context.Context, memberID int) (model.LoanHistory, error) {
	history := model.LoanHistory{ActiveLoans: []model.Loan{}, PastLoans: []model.Loan{}}
	for _, loan := range f.loans {
		if loan.MemberID != memberID {
			continue
		}
		if loan.Active() {
			history.ActiveLoans = append(history.ActiveLoans, *loan)
		} else {
			history.PastLoans = append(history.PastLoans, *loan)
		}
	}
	return history, nil
}

func (f *fakeRepo) ListLoansByItem(_ context.Context, barcode string) ([]model.Loan, error) {
	var loans []model.Loan
	for _, loan := range f.loans {
		if loan.Barcode == barcode {
			loans = append(loans, *loan)
		}
	}
	return loans, nil
}

func (f *fakeRepo) ListOverdueLoans(_ context.Context, asOf time.Time) ([]model.Loan, error) {
	var loans []model.Loan
	for _, loan := range f.loans {
		if loan.Active() && loan.DueDate.Before(asOf) {
			loans = append(loans, *loan)
		}
	}
	return loans, nil
}

func (f *fakeRepo) CreateReservation(_ context.Context, bookID, memberID int) (model.Reservation, error) {
	for _, res := range f.reservations {
		if res.BookID == bookID && res.MemberID == memberID && !res.Status.Terminal() {
			return model.Reservation{}, errs.ErrDuplicateReservation
		}
	}
	f.resSeq++
	res := model.Reservation{
		ID:              f.resSeq,
		ReservationUID:  uuid.New().String(),
		BookID:          bookID,
		MemberID:        memberID,
		Status:          model.ReservationPending,
		ReservationDate: time.Now().UTC(),
	}
	stored := res
	f.reservations = append(f.reservations, &stored)
	return res, nil
}

func (f *fakeRepo) pendingQueue(bookID int) []*model.Reservation {
	var queue []*model.Reservation
	for _, res := range f.reservations {
		if res.BookID == bookID && res.Status == model.ReservationPending {
			queue = append(queue, res)
		}
	}
	sort.Slice(queue, func(i, j int) bool {
		if queue[i].ReservationDate.Equal(queue[j].ReservationDate) {
			return queue[i].ID < queue[j].ID
		}
		return queue[i].ReservationDate.Before(queue[j].ReservationDate)
	})
	return queue
}

func (f *fakeRepo) GetReservationByUID(_ context.Context, reservationUID string) (model.Reservation, error) {
	for _, res := range f.reservations {
		if res.ReservationUID == reservationUID {
			out := *res
			out.QueuePosition = f.position(res)
			return out, nil
		}
	}
	return model.Reservation{}, errs.ErrNotFound
}

func (f *fakeRepo) position(target *model.Reservation) int {
	if target.Status != model.ReservationPending {
		return 0
	}
	for i, res := range f.pendingQueue(target.BookID) {
		if res.ID == target.ID {
			return i + 1
		}
	}
	return 0
}

func (f *fakeRepo) NextPendingReservation(_ context.Context, bookID int) (model.Reservation, error) {
	queue := f.pendingQueue(bookID)
	if len(queue) == 0 {
		return model.Reservation{}, errs.ErrNotFound
	}
	return *queue[0], nil
}

func (f *fakeRepo) HasPendingReservations(_ context.Context, bookID int) (bool, error) {
	return len(f.pendingQueue(bookID)) > 0, nil
}

func (f *fakeRepo) GetFulfilledReservation(_ context.Context, bookID, memberID int) (model.Reservation, error) {
	for _, res := range f.reservations {
		if res.BookID == bookID && res.MemberID == memberID && res.Status == model.ReservationFulfilled {
			return *res, nil
		}
	}
	return model.Reservation{}, errs.ErrNotFound
}

func (f *fakeRepo) SetReservationStatus(_ context.Context, reservationID int, fromAllowed []model.ReservationStatus, to model.ReservationStatus) error {
	for _, res := range f.reservations {
		if res.ID != reservationID {
			continue
		}
		for _, from := range fromAllowed {
			if res.Status == from {
				res.Status = to
				if to == model.ReservationFulfilled {
					now := time.Now().UTC()
					res.FulfilledAt = &now
				}
				return nil
			}
		}
		return errs.ErrConflict
	}
	return errs.ErrConflict
}

func (f *fakeRepo) QueuePosition(_ context.Context, reservationID int) (int, error) {
	for _, res := range f.reservations {
		if res.ID == reservationID {
			return f.position(res), nil
		}
	}
	return 0, errs.ErrNotFound
}

func (f *fakeRepo) ListReservationsByMember(_ context.Context, memberID int) ([]model.Reservation, error) {
	var out []model.Reservation
	for _, res := range f.reservations {
		if res.MemberID == memberID && !res.Status.Terminal() {
			r := *res
			r.QueuePosition = f.position(res)
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListReservationsByBook(_ context.Context, bookID int) ([]model.Reservation, error) {
	var out []model.Reservation
	for _, res := range f.reservations {
		if res.BookID == bookID && !res.Status.Terminal() {
			r := *res
			r.QueuePosition = f.position(res)
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListStaleFulfilled(_ context.Context, cutoff time.Time) ([]model.Reservation, error) {
	var out []model.Reservation
	for _, res := range f.reservations {
		if res.Status == model.ReservationFulfilled && res.FulfilledAt != nil && res.FulfilledAt.Before(cutoff) {
			out = append(out, *res)
		}
	}
	return out, nil
}

func (f *fakeRepo) CreateFine(_ context.Context, fine model.Fine) (model.Fine, error) {
	f.fineSeq++
	fine.ID = f.fineSeq
	fine.Status = model.FineUnpaid
	if loan := f.loanByID(fine.LoanID); loan != nil {
		fine.LoanUID = loan.LoanUID
	}
	stored := fine
	f.fines = append(f.fines, &stored)
	return fine, nil
}

func (f *fakeRepo) UpsertOverdueFine(ctx context.Context, loanID, memberID int, amount float64) (model.Fine, error) {
	for _, fine := range f.fines {
		if fine.LoanID == loanID && fine.Reason == model.FineOverdue {
			if amount > fine.Amount {
				fine.Amount = amount
			}
			if fine.AmountPaid >= fine.Amount {
				fine.Status = model.FinePaid
			}
			return *fine, nil
		}
	}
	return f.CreateFine(ctx, model.Fine{LoanID: loanID, MemberID: memberID, Amount: amount, Reason: model.FineOverdue})
}

func (f *fakeRepo) GetFine(_ context.Context, fineID int) (model.Fine, error) {
	for _, fine := range f.fines {
		if fine.ID == fineID {
			return *fine, nil
		}
	}
	return model.Fine{}, errs.ErrNotFound
}

func (f *fakeRepo) ApplyPayment(_ context.Context, fineID int, amount float64) (model.Fine, error) {
	for _, fine := range f.fines {
		if fine.ID != fineID {
			continue
		}
		if fine.AmountPaid+amount > fine.Amount {
			return model.Fine{}, errs.ErrOverpayment
		}
		fine.AmountPaid += amount
		if fine.AmountPaid >= fine.Amount {
			fine.Status = model.FinePaid
		} else {
			fine.Status = model.FinePartiallyPaid
		}
		return *fine, nil
	}
	return model.Fine{}, errs.ErrNotFound
}

func (f *fakeRepo) OutstandingBalance(_ context.Context, memberID int) (float64, error) {
	var balance float64
	for _, fine := range f.fines {
		if fine.MemberID == memberID && fine.Status != model.FinePaid {
			balance += fine.Outstanding()
		}
	}
	return balance, nil
}

func (f *fakeRepo) ListFinesByMember(_ context.Context, memberID int) ([]model.Fine, error) {
	var out []model.Fine
	for _, fine := range f.fines {
		if fine.MemberID == memberID {
			out = append(out, *fine)
		}
	}
	return out, nil
}

func (f *fakeRepo) HasUnpaidFines(_ context.Context, memberID int) (bool, error) {
	for _, fine := range f.fines {
		if fine.MemberID == memberID && fine.Status != model.FinePaid {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepo) Stats(_ context.Context) (model.DashboardStats, error) {
	return model.DashboardStats{}, nil
}

func (f *fakeRepo) OverdueReport(_ context.Context, _ time.Time) ([]model.OverdueReportItem, error) {
	return nil, nil
}

func (f *fakeRepo) InsertEvent(_ context.Context, event kafka.EventCirculation) error {
	f.events = append(f.events, event)
	return nil
}

func (f *fakeRepo) ListEvents(_ context.Context, limit int) ([]model.CirculationEvent, error) {
	return nil, nil
}
