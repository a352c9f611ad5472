package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fitpass/gym-system/internal/api/metrics"
	"github.com/fitpass/gym-system/internal/core/domain"
	"github.com/fitpass/gym-system/internal/core/ports"
)

// ReservationHandler handles HTTP requests for the reservation lifecycle.
type ReservationHandler struct {
	service ports.ReservationService
}

func NewReservationHandler(service ports.ReservationService) *ReservationHandler {
	return &ReservationHandler{service: service}
}

// Create books a slot in a class for the caller (or, for staff, any member).
//
// @Summary      Reserve a slot in a class
// @Tags         reservations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createReservationRequest  true  "Reservation details"
// @Success      201   {object}  reservationResponse
// @Failure      400   {object}  map[string]string
// @Failure      402   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/reservations [post]
func (h *ReservationHandler) Create(c echo.Context) error {
	var req createReservationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	result, err := h.service.Reserve(c.Request().Context(), ports.ReserveInput{
		ClassID:  req.ClassID,
		MemberID: req.MemberID,
		Caller:   caller,
	})
	if err != nil {
		metrics.ReservationDenialsTotal.WithLabelValues(denialReason(err)).Inc()
		return err
	}

	metrics.ReservationsTotal.WithLabelValues(result.DisciplineName).Inc()
	return c.JSON(http.StatusCreated, reservationResponse{
		ReservationID:    result.ReservationID,
		Status:           result.Status,
		Discipline:       result.DisciplineName,
		RemainingCredits: result.RemainingCredits,
		Unlimited:        result.Unlimited,
	})
}

// Cancel cancels an active reservation. The refund outcome depends on how
// far before the class start the cancellation lands.
//
// @Summary      Cancel a reservation
// @Tags         reservations
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Reservation ID"
// @Success      200  {object}  cancelReservationResponse
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /v1/reservations/{id}/cancel [post]
func (h *ReservationHandler) Cancel(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	result, err := h.service.Cancel(c.Request().Context(), ports.CancelInput{
		ReservationID: c.Param("id"),
		Caller:        caller,
	})
	if err != nil {
		return err
	}

	metrics.CancellationsTotal.WithLabelValues(string(result.Outcome)).Inc()
	return c.JSON(http.StatusOK, cancelReservationResponse{
		Status:           string(result.Outcome),
		RemainingCredits: result.RemainingCredits,
		Unlimited:        result.Unlimited,
	})
}

// List returns the caller's reservation history, newest first, with the
// derived state for finished classes. Staff may query any member via the
// member_id query parameter.
//
// @Summary      List reservations
// @Tags         reservations
// @Produce      json
// @Security     BearerAuth
// @Param        member_id  query     string  false  "Member ID (staff only; defaults to caller)"
// @Success      200        {object}  reservationListResponse
// @Failure      403        {object}  map[string]string
// @Router       /v1/reservations [get]
func (h *ReservationHandler) List(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	memberID := c.QueryParam("member_id")
	if memberID == "" {
		memberID = caller.MemberID
	}

	views, err := h.service.List(c.Request().Context(), memberID, caller)
	if err != nil {
		return err
	}

	items := make([]reservationListItem, 0, len(views))
	for _, v := range views {
		items = append(items, reservationListItem{
			ReservationID: v.ReservationID,
			ClassID:       v.ClassID,
			ClassName:     v.ClassName,
			StartTime:     v.StartTime,
			EndTime:       v.EndTime,
			State:         string(v.State),
			CreatedAt:     v.CreatedAt,
		})
	}
	return c.JSON(http.StatusOK, reservationListResponse{Reservations: items})
}

// denialReason maps a refused reservation to a stable metric label.
func denialReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrClassFull):
		return "class_full"
	case errors.Is(err, domain.ErrInsufficientCredits):
		return "insufficient_credits"
	case errors.Is(err, domain.ErrDuplicateReservation):
		return "duplicate"
	case errors.Is(err, domain.ErrClassStarted):
		return "class_started"
	case errors.Is(err, domain.ErrNoActiveMembership):
		return "no_membership"
	case errors.Is(err, domain.ErrForbidden):
		return "forbidden"
	default:
		return string(domain.KindOf(err))
	}
}
