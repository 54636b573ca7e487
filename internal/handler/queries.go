package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

func (h *Handler) GetLoan(c echo.Context) error {
	loan, err := h.circulationSvc.GetLoan(c.Request().Context(), c.Param("loanUid"))
	if err != nil {
		return h.respondErr(c, err)
	}
	return c.JSON(http.StatusOK, loan)
}

func (h *Handler) GetReservation(c echo.Context) error {
	res, err := h.circulationSvc.GetReservation(c.Request().Context(), c.Param("reservationUid"))
	if err != nil {
		return h.respondErr(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

func (h *Handler) GetMember(c echo.Context) error {
	memberID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.New("member id is invalid"))
	}
	member, err := h.circulationSvc.GetMember(c.Request().Context(), memberID)
	if err != nil {
		return h.respondErr(c, err)
	}
	return c.JSON(http.StatusOK, member)
}

func (h *Handler) MemberLoans(c echo.Context) error {
	memberID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.New("member id is invalid"))
	}
	history, err := h.circulationSvc.MemberLoans(c.Request().Context(), memberID)
	if err != nil {
		return h.respondErr(c, err)
	}
	return c.JSON(http.StatusOK, history)
}

func (h *Handler) MemberReservations(c echo.Context) error {
	memberID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.New("member id is invalid"))
	}
	reservations, err := h.circulationSvc.MemberReservations(c.Request().Context(), memberID)
	if err != nil {
		return h.respondErr(c, err)
	}
	return c.JSON(http.StatusOK, reservations)
}

func (h *Handler) MemberFines(c echo.Context) error {
	memberID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.New("member id is invalid"))
	}
	fines, err := h.circulationSvc.MemberFines(c.Request().Context(), memberID)
	if err != nil {
		return h.respondErr(c, err)
	}
	return c.JSON(http.StatusOK, fines)
}

func (h *Handler) MemberBalance(c echo.Context) error {
	memberID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.New("member id is invalid"))
	}
	balance, err := h.circulationSvc.MemberBalance(c.Request().Context(), memberID)
	if err != nil {
		return h.respondErr(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"memberId": memberID, "outstanding": balance})
}

func (h *Handler) GetBook(c echo.Context) error {
	bookID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.New("book id is invalid"))
	}
	book, err := h.circulationSvc.GetBook(c.Request().Context(), bookID)
	if err != nil {
		return h.respondErr(c, err)
	}
	return c.JSON(http.StatusOK, book)
}

func (h *Handler) BookReservations(c echo.Context) error {
	bookID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.New("book id is invalid"))
	}
	reservations, err := h.circulationSvc.BookReservations(c.Request().Context(), bookID)
	if err != nil {
		return h.respondErr(c, err)
	}
	return c.JSON(http.StatusOK, reservations)
}

func (h *Handler) ItemDetails(c echo.Context) error {
	details, err := h.circulationSvc.ItemDetails(c.Request().Context(), c.Param("barcode"))
	if err != nil {
		return h.respondErr(c, err)
	}
	return c.JSON(http.StatusOK, details)
}

func (h *Handler) ItemHistory(c echo.Context) error {
	loans, err := h.circulationSvc.ItemHistory(c.Request().Context(), c.Param("barcode"))
	if err != nil {
		return h.respondErr(c, err)
	}
	return c.JSON(http.StatusOK, loans)
}

func (h *Handler) OverdueReport(c echo.Context) error {
	report, err := h.circulationSvc.OverdueReport(c.Request().Context())
	if err != nil {
		return h.respondErr(c, err)
	}
	return c.JSON(http.StatusOK, report)
}

func (h *Handler) Stats(c echo.Context) error {
	stats, err := h.circulationSvc.Stats(c.Request().Context())
	if err != nil {
		return h.respondErr(c, err)
	}
	return c.JSON(http.StatusOK, stats)
}

func (h *Handler) Events(c echo.Context) error {
	var limit int
	if limitParam := c.QueryParam("limit"); limitParam != "" {
		var err error
		if limit, err = strconv.Atoi(limitParam); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, errors.New("limit is invalid"))
		}
	}
	events, err := h.circulationSvc.Events(c.Request().Context(), limit)
	if err != nil {
		return h.respondErr(c, err)
	}
	return c.JSON(http.StatusOK, events)
}
