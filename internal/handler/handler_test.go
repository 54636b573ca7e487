package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Astemirdum/circulation-service/internal/errs"
	"github.com/Astemirdum/circulation-service/internal/handler"
	"github.com/Astemirdum/circulation-service/internal/model"
	"github.com/Astemirdum/circulation-service/pkg/validate"
	"github.com/golang/mock/gomock"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	service_mocks "github.com/Astemirdum/circulation-service/internal/handler/mocks"
)

func TestHandler_IssueLoan(t *testing.T) {
	t.Parallel()
	type response struct {
		expectedCode int
		expectedBody string
	}
	type mockBehavior func(r *service_mocks.MockCirculationService)

	issueDate := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	dueDate := issueDate.AddDate(0, 0, 14)

	var tests = []struct {
		name         string
		requestBody  string
		mockBehavior mockBehavior
		response     response
		wantErr      bool
	}{
		{
			name:        "ok",
			requestBody: `{"memberId":1,"barcode":"B-001"}`,
			mockBehavior: func(r *service_mocks.MockCirculationService) {
				r.EXPECT().
					IssueLoan(context.Background(), model.IssueLoanRequest{MemberID: 1, Barcode: "B-001"}).
					Return(model.Loan{
						LoanUID:   "3f1c7a4e-1111-2222-3333-444455556666",
						Barcode:   "B-001",
						MemberID:  1,
						IssueDate: issueDate,
						DueDate:   dueDate,
					}, nil)
			},
			response: response{
				expectedCode: http.StatusCreated,
				expectedBody: `{"loanUid":"3f1c7a4e-1111-2222-3333-444455556666","barcode":"B-001","memberId":1,"issueDate":"2024-03-10T12:00:00Z","dueDate":"2024-03-24T12:00:00Z","renewalCount":0}`,
			},
			wantErr: false,
		},
		{
			name:        "err. member blocked",
			requestBody: `{"memberId":1,"barcode":"B-001"}`,
			mockBehavior: func(r *service_mocks.MockCirculationService) {
				r.EXPECT().
					IssueLoan(context.Background(), model.IssueLoanRequest{MemberID: 1, Barcode: "B-001"}).
					Return(model.Loan{}, errs.ErrMemberBlocked)
			},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"message":"member is blocked","kind":"MemberBlocked"}`,
			},
			wantErr: true,
		},
		{
			name:        "err. loan limit",
			requestBody: `{"memberId":1,"barcode":"B-001"}`,
			mockBehavior: func(r *service_mocks.MockCirculationService) {
				r.EXPECT().
					IssueLoan(context.Background(), model.IssueLoanRequest{MemberID: 1, Barcode: "B-001"}).
					Return(model.Loan{}, errs.ErrLoanLimitExceeded)
			},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"message":"member has reached the maximum loan limit","kind":"LoanLimitExceeded"}`,
			},
			wantErr: true,
		},
		{
			name:        "err. unknown barcode",
			requestBody: `{"memberId":1,"barcode":"NOPE"}`,
			mockBehavior: func(r *service_mocks.MockCirculationService) {
				r.EXPECT().
					IssueLoan(context.Background(), model.IssueLoanRequest{MemberID: 1, Barcode: "NOPE"}).
					Return(model.Loan{}, errs.ErrNotFound)
			},
			response: response{
				expectedCode: http.StatusNotFound,
				expectedBody: `{"message":"not found","kind":"NotFound"}`,
			},
			wantErr: true,
		},
		{
			name:         "err. barcode required",
			requestBody:  `{"memberId":1}`,
			mockBehavior: func(r *service_mocks.MockCirculationService) {},
			response: response{
				expectedCode: http.StatusBadRequest,
			},
			wantErr: true,
		},
		{
			name:        "err. internal",
			requestBody: `{"memberId":1,"barcode":"B-001"}`,
			mockBehavior: func(r *service_mocks.MockCirculationService) {
				r.EXPECT().
					IssueLoan(context.Background(), model.IssueLoanRequest{MemberID: 1, Barcode: "B-001"}).
					Return(model.Loan{}, errors.New("db internal"))
			},
			response: response{
				expectedCode: http.StatusInternalServerError,
				expectedBody: `{"message":"db internal","kind":"Internal"}`,
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := gomock.NewController(t)
			defer c.Finish()
			svc := service_mocks.NewMockCirculationService(c)
			log := zap.NewExample().Named("test")
			h := handler.New(svc, log)

			e := echo.New()
			e.Validator = validate.NewCustomValidator()
			e.POST("/loans", h.IssueLoan)

			r := httptest.NewRequest(http.MethodPost, "/loans", strings.NewReader(tt.requestBody))
			r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			w := httptest.NewRecorder()

			tt.mockBehavior(svc)
			e.ServeHTTP(w, r)

			require.Equal(t, tt.response.expectedCode, w.Code)
			if tt.response.expectedBody != "" {
				require.Equal(t, tt.response.expectedBody, strings.Trim(w.Body.String(), "\n"))
			}
		})
	}
}

func TestHandler_ReturnItem(t *testing.T) {
	t.Parallel()
	type response struct {
		expectedCode int
		expectedBody string
	}
	type mockBehavior func(r *service_mocks.MockCirculationService)

	issueDate := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	dueDate := issueDate.AddDate(0, 0, 14)
	returnDate := issueDate.AddDate(0, 0, 10)
	condition := model.ConditionGood
	heldFor := 7

	var tests = []struct {
		name         string
		requestBody  string
		mockBehavior mockBehavior
		response     response
	}{
		{
			name:        "ok. held for next in queue",
			requestBody: `{"barcode":"B-001","condition":"Good"}`,
			mockBehavior: func(r *service_mocks.MockCirculationService) {
				r.EXPECT().
					ReturnItem(context.Background(), model.ReturnItemRequest{Barcode: "B-001", Condition: model.ConditionGood}).
					Return(model.ReturnResult{
						Loan: model.Loan{
							LoanUID:           "3f1c7a4e-1111-2222-3333-444455556666",
							Barcode:           "B-001",
							MemberID:          1,
							IssueDate:         issueDate,
							DueDate:           dueDate,
							ReturnDate:        &returnDate,
							ConditionOnReturn: &condition,
						},
						HeldForMember: &heldFor,
					}, nil)
			},
			response: response{
				expectedCode: http.StatusOK,
				expectedBody: `{"loan":{"loanUid":"3f1c7a4e-1111-2222-3333-444455556666","barcode":"B-001","memberId":1,"issueDate":"2024-03-10T12:00:00Z","dueDate":"2024-03-24T12:00:00Z","returnDate":"2024-03-20T12:00:00Z","renewalCount":0,"conditionOnReturn":"Good"},"heldForMemberId":7}`,
			},
		},
		{
			name:        "err. no active loan",
			requestBody: `{"barcode":"B-001","condition":"Good"}`,
			mockBehavior: func(r *service_mocks.MockCirculationService) {
				r.EXPECT().
					ReturnItem(context.Background(), model.ReturnItemRequest{Barcode: "B-001", Condition: model.ConditionGood}).
					Return(model.ReturnResult{}, errs.ErrNoActiveLoan)
			},
			response: response{
				expectedCode: http.StatusNotFound,
				expectedBody: `{"message":"no active loan for this barcode","kind":"NoActiveLoan"}`,
			},
		},
		{
			name:         "err. bad condition",
			requestBody:  `{"barcode":"B-001","condition":"Shredded"}`,
			mockBehavior: func(r *service_mocks.MockCirculationService) {},
			response: response{
				expectedCode: http.StatusBadRequest,
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := gomock.NewController(t)
			defer c.Finish()
			svc := service_mocks.NewMockCirculationService(c)
			log := zap.NewExample().Named("test")
			h := handler.New(svc, log)

			e := echo.New()
			e.Validator = validate.NewCustomValidator()
			e.POST("/loans/return", h.ReturnItem)

			r := httptest.NewRequest(http.MethodPost, "/loans/return", strings.NewReader(tt.requestBody))
			r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			w := httptest.NewRecorder()

			tt.mockBehavior(svc)
			e.ServeHTTP(w, r)

			require.Equal(t, tt.response.expectedCode, w.Code)
			if tt.response.expectedBody != "" {
				require.Equal(t, tt.response.expectedBody, strings.Trim(w.Body.String(), "\n"))
			}
		})
	}
}

func TestHandler_CreateReservation(t *testing.T) {
	t.Parallel()
	type response struct {
		expectedCode int
		expectedBody string
	}
	type mockBehavior func(r *service_mocks.MockCirculationService)

	reservationDate := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	var tests = []struct {
		name         string
		requestBody  string
		mockBehavior mockBehavior
		response     response
	}{
		{
			name:        "ok",
			requestBody: `{"bookId":10,"memberId":1}`,
			mockBehavior: func(r *service_mocks.MockCirculationService) {
				r.EXPECT().
					CreateReservation(context.Background(), model.CreateReservationRequest{BookID: 10, MemberID: 1}).
					Return(model.Reservation{
						ReservationUID:  "9a8b7c6d-1111-2222-3333-444455556666",
						BookID:          10,
						MemberID:        1,
						Status:          model.ReservationPending,
						ReservationDate: reservationDate,
						QueuePosition:   2,
					}, nil)
			},
			response: response{
				expectedCode: http.StatusCreated,
				expectedBody: `{"reservationUid":"9a8b7c6d-1111-2222-3333-444455556666","bookId":10,"memberId":1,"status":"Pending","reservationDate":"2024-03-10T12:00:00Z","queuePosition":2}`,
			},
		},
		{
			name:        "err. duplicate",
			requestBody: `{"bookId":10,"memberId":1}`,
			mockBehavior: func(r *service_mocks.MockCirculationService) {
				r.EXPECT().
					CreateReservation(context.Background(), model.CreateReservationRequest{BookID: 10, MemberID: 1}).
					Return(model.Reservation{}, errs.ErrDuplicateReservation)
			},
			response: response{
				expectedCode: http.StatusConflict,
				expectedBody: `{"message":"member already holds a reservation for this title","kind":"DuplicateReservation"}`,
			},
		},
		{
			name:        "err. available copy exists",
			requestBody: `{"bookId":10,"memberId":1}`,
			mockBehavior: func(r *service_mocks.MockCirculationService) {
				r.EXPECT().
					CreateReservation(context.Background(), model.CreateReservationRequest{BookID: 10, MemberID: 1}).
					Return(model.Reservation{}, errs.ErrAvailableCopyExists)
			},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"message":"an available copy exists: borrow it directly","kind":"AvailableCopyExists"}`,
			},
		},
		{
			name:         "err. bookId required",
			requestBody:  `{"memberId":1}`,
			mockBehavior: func(r *service_mocks.MockCirculationService) {},
			response: response{
				expectedCode: http.StatusBadRequest,
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := gomock.NewController(t)
			defer c.Finish()
			svc := service_mocks.NewMockCirculationService(c)
			log := zap.NewExample().Named("test")
			h := handler.New(svc, log)

			e := echo.New()
			e.Validator = validate.NewCustomValidator()
			e.POST("/reservations", h.CreateReservation)

			r := httptest.NewRequest(http.MethodPost, "/reservations", strings.NewReader(tt.requestBody))
			r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			w := httptest.NewRecorder()

			tt.mockBehavior(svc)
			e.ServeHTTP(w, r)

			require.Equal(t, tt.response.expectedCode, w.Code)
			if tt.response.expectedBody != "" {
				require.Equal(t, tt.response.expectedBody, strings.Trim(w.Body.String(), "\n"))
			}
		})
	}
}

func TestHandler_RenewLoan(t *testing.T) {
	t.Parallel()
	type response struct {
		expectedCode int
		expectedBody string
	}
	type mockBehavior func(r *service_mocks.MockCirculationService)

	const loanUID = "3f1c7a4e-1111-2222-3333-444455556666"

	var tests = []struct {
		name         string
		mockBehavior mockBehavior
		response     response
	}{
		{
			name: "err. renewal limit",
			mockBehavior: func(r *service_mocks.MockCirculationService) {
				r.EXPECT().
					RenewLoan(context.Background(), loanUID).
					Return(model.Loan{}, errs.ErrRenewalLimitExceeded)
			},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"message":"maximum renewal limit reached","kind":"RenewalLimitExceeded"}`,
			},
		},
		{
			name: "err. reserved by others",
			mockBehavior: func(r *service_mocks.MockCirculationService) {
				r.EXPECT().
					RenewLoan(context.Background(), loanUID).
					Return(model.Loan{}, errs.ErrReservedByOthers)
			},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"message":"cannot renew: reserved by another member","kind":"ReservedByOthers"}`,
			},
		},
		{
			name: "err. already returned",
			mockBehavior: func(r *service_mocks.MockCirculationService) {
				r.EXPECT().
					RenewLoan(context.Background(), loanUID).
					Return(model.Loan{}, errs.ErrAlreadyReturned)
			},
			response: response{
				expectedCode: http.StatusConflict,
				expectedBody: `{"message":"loan is already closed","kind":"AlreadyReturned"}`,
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := gomock.NewController(t)
			defer c.Finish()
			svc := service_mocks.NewMockCirculationService(c)
			log := zap.NewExample().Named("test")
			h := handler.New(svc, log)

			e := echo.New()
			e.Validator = validate.NewCustomValidator()
			e.POST("/loans/:loanUid/renew", h.RenewLoan)

			r := httptest.NewRequest(http.MethodPost, "/loans/"+loanUID+"/renew", http.NoBody)
			r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			w := httptest.NewRecorder()

			tt.mockBehavior(svc)
			e.ServeHTTP(w, r)

			require.Equal(t, tt.response.expectedCode, w.Code)
			require.Equal(t, tt.response.expectedBody, strings.Trim(w.Body.String(), "\n"))
		})
	}
}

func TestHandler_UpdateMemberStatus(t *testing.T) {
	t.Parallel()
	type response struct {
		expectedCode int
		expectedBody string
	}
	type mockBehavior func(r *service_mocks.MockCirculationService)

	var tests = []struct {
		name         string
		requestBody  string
		mockBehavior mockBehavior
		response     response
	}{
		{
			name:        "ok",
			requestBody: `{"status":"Blocked"}`,
			mockBehavior: func(r *service_mocks.MockCirculationService) {
				r.EXPECT().
					UpdateMemberStatus(context.Background(), 1, model.MemberStatusUpdateRequest{Status: model.MemberBlocked}).
					Return(nil)
			},
			response: response{
				expectedCode: http.StatusNoContent,
			},
		},
		{
			name:        "err. unknown member",
			requestBody: `{"status":"Active"}`,
			mockBehavior: func(r *service_mocks.MockCirculationService) {
				r.EXPECT().
					UpdateMemberStatus(context.Background(), 1, model.MemberStatusUpdateRequest{Status: model.MemberActive}).
					Return(errs.ErrNotFound)
			},
			response: response{
				expectedCode: http.StatusNotFound,
				expectedBody: `{"message":"not found","kind":"NotFound"}`,
			},
		},
		{
			name:         "err. bad status",
			requestBody:  `{"status":"Suspended"}`,
			mockBehavior: func(r *service_mocks.MockCirculationService) {},
			response: response{
				expectedCode: http.StatusBadRequest,
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := gomock.NewController(t)
			defer c.Finish()
			svc := service_mocks.NewMockCirculationService(c)
			log := zap.NewExample().Named("test")
			h := handler.New(svc, log)

			e := echo.New()
			e.Validator = validate.NewCustomValidator()
			e.PATCH("/members/:id/status", h.UpdateMemberStatus)

			r := httptest.NewRequest(http.MethodPatch, "/members/1/status", strings.NewReader(tt.requestBody))
			r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			w := httptest.NewRecorder()

			tt.mockBehavior(svc)
			e.ServeHTTP(w, r)

			require.Equal(t, tt.response.expectedCode, w.Code)
			if tt.response.expectedBody != "" {
				require.Equal(t, tt.response.expectedBody, strings.Trim(w.Body.String(), "\n"))
			}
		})
	}
}
