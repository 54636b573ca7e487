package handler

import (
	"context"

	"github.com/Astemirdum/circulation-service/internal/model"
	"github.com/Astemirdum/circulation-service/internal/service"
	"github.com/Astemirdum/circulation-service/pkg/kafka"
)

//go:generate go run github.com/golang/mock/mockgen -source=service.go -destination=mocks/mock.go

var _ CirculationService = (*service.Service)(nil)

type CirculationService interface {
	IssueLoan(ctx context.Context, req model.IssueLoanRequest) (model.Loan, error)
	ReturnItem(ctx context.Context, req model.ReturnItemRequest) (model.ReturnResult, error)
	RenewLoan(ctx context.Context, loanUID string) (model.Loan, error)
	MarkLoanLost(ctx context.Context, loanUID string, req model.MarkLostRequest) (model.ReturnResult, error)
	GetLoan(ctx context.Context, loanUID string) (model.Loan, error)

	CreateReservation(ctx context.Context, req model.CreateReservationRequest) (model.Reservation, error)
	CancelReservation(ctx context.Context, reservationUID string) error
	GetReservation(ctx context.Context, reservationUID string) (model.Reservation, error)
	BookReservations(ctx context.Context, bookID int) ([]model.Reservation, error)

	PayFine(ctx context.Context, fineID int, req model.PayFineRequest) (model.Fine, error)

	GetMember(ctx context.Context, memberID int) (model.Member, error)
	MemberLoans(ctx context.Context, memberID int) (model.LoanHistory, error)
	MemberReservations(ctx context.Context, memberID int) ([]model.Reservation, error)
	MemberFines(ctx context.Context, memberID int) ([]model.Fine, error)
	MemberBalance(ctx context.Context, memberID int) (float64, error)
	UpdateMemberStatus(ctx context.Context, memberID int, req model.MemberStatusUpdateRequest) error
	DeleteMember(ctx context.Context, memberID int) error

	GetBook(ctx context.Context, bookID int) (model.Book, error)
	AddItem(ctx context.Context, bookID int, req model.AddItemRequest) (model.BookItem, error)
	RemoveItem(ctx context.Context, barcode string) error
	DeclareItemStatus(ctx context.Context, barcode string, req model.DeclareItemStatusRequest) (model.BookItem, error)
	ItemDetails(ctx context.Context, barcode string) (model.ItemDetails, error)
	ItemHistory(ctx context.Context, barcode string) ([]model.Loan, error)

	OverdueReport(ctx context.Context) ([]model.OverdueReportItem, error)
	Stats(ctx context.Context) (model.DashboardStats, error)
	Events(ctx context.Context, limit int) ([]model.CirculationEvent, error)
	Sweep(ctx context.Context) (model.SweepSummary, error)
	SaveEvent(ctx context.Context, event kafka.EventCirculation) error
}
