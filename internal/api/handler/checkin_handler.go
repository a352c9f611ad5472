package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/fitpass/gym-system/internal/api/metrics"
	"github.com/fitpass/gym-system/internal/core/domain"
	"github.com/fitpass/gym-system/internal/core/ports"
)

// ScanEnqueuer accepts device-uploaded scan batches for async processing.
type ScanEnqueuer interface {
	EnqueueBatch(events []ports.ScanEvent)
}

// CheckinHandler handles entry decisions at gym checkpoints.
type CheckinHandler struct {
	service ports.CheckinService
	scans   ScanEnqueuer
	access  ports.AccessRepository
}

func NewCheckinHandler(service ports.CheckinService, scans ScanEnqueuer, access ports.AccessRepository) *CheckinHandler {
	return &CheckinHandler{service: service, scans: scans, access: access}
}

// CheckIn decides a single entry attempt synchronously. A denied attempt is
// a successful decision, not an error: the response carries status "denied"
// and the reason.
//
// @Summary      Decide an entry attempt
// @Tags         checkin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      checkinRequest  true  "Entry attempt"
// @Success      200   {object}  checkinResponse
// @Failure      400   {object}  map[string]string
// @Router       /v1/checkin [post]
func (h *CheckinHandler) CheckIn(c echo.Context) error {
	var req checkinRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if (req.Token == "") == (req.MemberID == "") {
		return echo.NewHTTPError(http.StatusBadRequest, "exactly one of token or member_id must be set")
	}

	result, err := h.service.CheckIn(c.Request().Context(), ports.CheckinInput{
		Token:          req.Token,
		MemberID:       req.MemberID,
		CheckpointCode: req.CheckpointCode,
		DisciplineID:   req.DisciplineID,
		Type:           domain.AccessType(req.Type),
	})
	if err != nil {
		return err
	}

	if result.Granted {
		metrics.CheckinsTotal.WithLabelValues(req.Type, "granted").Inc()
		return c.JSON(http.StatusOK, checkinResponse{
			Status:     "granted",
			MemberID:   result.MemberID,
			Discipline: result.Discipline,
		})
	}

	metrics.CheckinsTotal.WithLabelValues(req.Type, "denied").Inc()
	return c.JSON(http.StatusOK, checkinResponse{
		Status:   "denied",
		MemberID: result.MemberID,
		Reason:   result.Reason,
	})
}

// UploadScans accepts a batch of scans buffered by a checkpoint device while
// offline. Events are dispatched to sharded workers; per-member order is
// preserved and exact replays are deduplicated downstream.
//
// @Summary      Upload a batch of buffered checkpoint scans
// @Tags         checkin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      scanBatchRequest  true  "Buffered scans"
// @Success      202   {object}  scanBatchResponse
// @Failure      400   {object}  map[string]string
// @Router       /v1/checkin/scans [post]
func (h *CheckinHandler) UploadScans(c echo.Context) error {
	var req scanBatchRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	events := make([]ports.ScanEvent, 0, len(req.Scans))
	for _, s := range req.Scans {
		events = append(events, ports.ScanEvent{
			Token:     s.Token,
			MemberID:  s.MemberID,
			Site:      s.Site,
			Type:      domain.AccessType(s.Type),
			Timestamp: s.Timestamp,
		})
	}
	h.scans.EnqueueBatch(events)

	return c.JSON(http.StatusAccepted, scanBatchResponse{Accepted: len(events)})
}

// History returns a member's recent access entries, newest first.
//
// @Summary      List a member's access history
// @Tags         checkin
// @Produce      json
// @Security     BearerAuth
// @Param        id     path      string  true   "Member ID"
// @Param        limit  query     int     false  "Max entries (default 50, cap 200)"
// @Success      200    {object}  accessHistoryResponse
// @Failure      403    {object}  map[string]string
// @Router       /v1/members/{id}/access [get]
func (h *CheckinHandler) History(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	entries, err := h.access.ListByMember(c.Request().Context(), c.Param("id"), limit)
	if err != nil {
		return err
	}

	items := make([]accessEntryItem, 0, len(entries))
	for _, e := range entries {
		items = append(items, accessEntryItem{
			Discipline: e.Discipline,
			Type:       string(e.Type),
			Granted:    e.Granted,
			Reason:     e.Reason,
			Timestamp:  e.Timestamp,
		})
	}
	return c.JSON(http.StatusOK, accessHistoryResponse{Entries: items})
}
