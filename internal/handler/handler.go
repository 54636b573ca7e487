package handler

import (
	"net/http"
	"strconv"

	md "github.com/Astemirdum/circulation-service/pkg/middleware"

	"github.com/Astemirdum/circulation-service/internal/errs"
	"github.com/Astemirdum/circulation-service/internal/model"
	"github.com/Astemirdum/circulation-service/pkg/validate"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type Handler struct {
	circulationSvc CirculationService
	log            *zap.Logger
}

func New(circulationSvc CirculationService, log *zap.Logger) *Handler {
	return &Handler{
		circulationSvc: circulationSvc,
		log:            log,
	}
}

func (h *Handler) NewRouter() *echo.Echo {
	e := echo.New()
	const (
		baseRPS = 10
		apiRPS  = 100
	)
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 4 << 10, // 4 KB
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{http.MethodGet, http.MethodOptions, http.MethodHead, http.MethodPut, http.MethodPatch, http.MethodPost, http.MethodDelete},
		AllowCredentials: true,
	}))

	base := e.Group("", md.NewRateLimiter(baseRPS))
	base.GET("/manage/health", h.Health)

	e.Validator = validate.NewCustomValidator()
	api := e.Group("/api/v1",
		middleware.RequestLoggerWithConfig(md.RequestLoggerConfig()),
		middleware.RequestID(),
		md.NewRateLimiter(apiRPS),
	)

	api.POST("/loans", h.IssueLoan)
	api.POST("/loans/return", h.ReturnItem)
	api.GET("/loans/:loanUid", h.GetLoan)
	api.POST("/loans/:loanUid/renew", h.RenewLoan)
	api.POST("/loans/:loanUid/lost", h.MarkLoanLost)

	api.POST("/reservations", h.CreateReservation)
	api.GET("/reservations/:reservationUid", h.GetReservation)
	api.DELETE("/reservations/:reservationUid", h.CancelReservation)

	api.POST("/fines/:id/payments", h.PayFine)

	api.GET("/members/:id", h.GetMember)
	api.GET("/members/:id/loans", h.MemberLoans)
	api.GET("/members/:id/reservations", h.MemberReservations)
	api.GET("/members/:id/fines", h.MemberFines)
	api.GET("/members/:id/balance", h.MemberBalance)
	api.PATCH("/members/:id/status", h.UpdateMemberStatus)
	api.DELETE("/members/:id", h.DeleteMember)

	api.GET("/books/:id", h.GetBook)
	api.GET("/books/:id/reservations", h.BookReservations)
	api.POST("/books/:id/items", h.AddItem)

	api.GET("/items/:barcode", h.ItemDetails)
	api.GET("/items/:barcode/history", h.ItemHistory)
	api.PATCH("/items/:barcode/status", h.DeclareItemStatus)
	api.DELETE("/items/:barcode", h.RemoveItem)

	api.GET("/reports/overdue", h.OverdueReport)
	api.GET("/stats", h.Stats)
	api.GET("/events", h.Events)
	api.POST("/admin/sweep", h.Sweep)

	return e
}

func (h *Handler) Health(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

type errorResponse struct {
	Message string `json:"message"`
	Kind    string `json:"kind"`
}

// respondErr maps the service error taxonomy onto HTTP statuses: policy
// refusals are 400, missing records 404, concurrent or integrity
// conflicts 409.
func (h *Handler) respondErr(c echo.Context, err error) error {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, errs.ErrNotFound),
		errors.Is(err, errs.ErrNoActiveLoan):
		code = http.StatusNotFound
	case errors.Is(err, errs.ErrConflict),
		errors.Is(err, errs.ErrDuplicateReservation),
		errors.Is(err, errs.ErrDuplicateBarcode),
		errors.Is(err, errs.ErrAlreadyReturned),
		errors.Is(err, errs.ErrAlreadyTerminal),
		errors.Is(err, errs.ErrHasActiveLoans),
		errors.Is(err, errs.ErrHasUnpaidFines):
		code = http.StatusConflict
	case errors.Is(err, errs.ErrMemberBlocked),
		errors.Is(err, errs.ErrFineLimitExceeded),
		errors.Is(err, errs.ErrLoanLimitExceeded),
		errors.Is(err, errs.ErrRenewalLimitExceeded),
		errors.Is(err, errs.ErrReservedByOthers),
		errors.Is(err, errs.ErrReservedForAnotherMember),
		errors.Is(err, errs.ErrAvailableCopyExists),
		errors.Is(err, errs.ErrPaymentBeforeReturn),
		errors.Is(err, errs.ErrOverpayment):
		code = http.StatusBadRequest
	default:
		h.log.Error("internal", zap.Error(err))
	}
	return c.JSON(code, errorResponse{Message: err.Error(), Kind: errs.Kind(err)})
}

func (h *Handler) IssueLoan(c echo.Context) error {
	var req model.IssueLoanRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	loan, err := h.circulationSvc.IssueLoan(c.Request().Context(), req)
	if err != nil {
		return h.respondErr(c, err)
	}
	return c.JSON(http.StatusCreated, loan)
}

func (h *Handler) ReturnItem(c echo.Context) error {
	var req model.ReturnItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	result, err := h.circulationSvc.ReturnItem(c.Request().Context(), req)
	if err != nil {
		return h.respondErr(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

func (h *Handler) RenewLoan(c echo.Context) error {
	loan, err := h.circulationSvc.RenewLoan(c.Request().Context(), c.Param("loanUid"))
	if err != nil {
		return h.respondErr(c, err)
	}
	return c.JSON(http.StatusOK, loan)
}

func (h *Handler) MarkLoanLost(c echo.Context) error {
	var req model.MarkLostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	result, err := h.circulationSvc.MarkLoanLost(c.Request().Context(), c.Param("loanUid"), req)
	if err != nil {
		return h.respondErr(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

func (h *Handler) CreateReservation(c echo.Context) error {
	var req model.CreateReservationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	res, err := h.circulationSvc.CreateReservation(c.Request().Context(), req)
	if err != nil {
		return h.respondErr(c, err)
	}
	return c.JSON(http.StatusCreated, res)
}

func (h *Handler) CancelReservation(c echo.Context) error {
	if err := h.circulationSvc.CancelReservation(c.Request().Context(), c.Param("reservationUid")); err != nil {
		return h.respondErr(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) PayFine(c echo.Context) error {
	fineID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.New("fine id is invalid"))
	}
	var req model.PayFineRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	fine, err := h.circulationSvc.PayFine(c.Request().Context(), fineID, req)
	if err != nil {
		return h.respondErr(c, err)
	}
	return c.JSON(http.StatusOK, fine)
}

func (h *Handler) UpdateMemberStatus(c echo.Context) error {
	memberID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.New("member id is invalid"))
	}
	var req model.MemberStatusUpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.circulationSvc.UpdateMemberStatus(c.Request().Context(), memberID, req); err != nil {
		return h.respondErr(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) DeleteMember(c echo.Context) error {
	memberID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.New("member id is invalid"))
	}
	if err := h.circulationSvc.DeleteMember(c.Request().Context(), memberID); err != nil {
		return h.respondErr(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) AddItem(c echo.Context) error {
	bookID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.New("book id is invalid"))
	}
	var req model.AddItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	item, err := h.circulationSvc.AddItem(c.Request().Context(), bookID, req)
	if err != nil {
		return h.respondErr(c, err)
	}
	return c.JSON(http.StatusCreated, item)
}

func (h *Handler) DeclareItemStatus(c echo.Context) error {
	var req model.DeclareItemStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	item, err := h.circulationSvc.DeclareItemStatus(c.Request().Context(), c.Param("barcode"), req)
	if err != nil {
		return h.respondErr(c, err)
	}
	return c.JSON(http.StatusOK, item)
}

func (h *Handler) RemoveItem(c echo.Context) error {
	if err := h.circulationSvc.RemoveItem(c.Request().Context(), c.Param("barcode")); err != nil {
		return h.respondErr(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) Sweep(c echo.Context) error {
	summary, err := h.circulationSvc.Sweep(c.Request().Context())
	if err != nil {
		return h.respondErr(c, err)
	}
	return c.JSON(http.StatusOK, summary)
}
