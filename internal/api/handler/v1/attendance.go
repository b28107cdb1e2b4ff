package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hadir-app/hadir-api/internal/api/handler/v1/request"
	"github.com/hadir-app/hadir-api/internal/api/handler/v1/response"
	"github.com/hadir-app/hadir-api/internal/domain"
	"github.com/hadir-app/hadir-api/internal/service"
)

type AttendanceService interface {
	RecordScan(ctx context.Context, sessionID uint, qrID string, override *domain.Action) (domain.ScanResult, error)
	GetRoster(ctx context.Context, sessionID uint) (domain.Roster, error)
	GetSummary(ctx context.Context, sessionID uint) (map[string]domain.AttendanceSummary, error)
	GetRecords(ctx context.Context, sessionID uint) ([]domain.AttendanceRecord, error)
	ProposeBulk(ctx context.Context, sessionID uint, kind domain.Action, selected []string) (domain.BulkProposal, error)
	ConfirmBulk(ctx context.Context, token string) (domain.BulkResult, domain.Roster, error)
	CancelBulk(token string) error
	FlushQueue(ctx context.Context) (domain.FlushResult, error)
}

type AttendanceHandler struct {
	svc AttendanceService
}

func NewAttendanceHandler(svc AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{
		svc: svc,
	}
}

// HandleScan godoc
// @Summary      Record a scan or manual toggle
// @Description  Resolves the scan into a check-in or check-out from the participant's prior records, or applies the explicit action when given. A failed write is buffered and reported as queued.
// @Tags         attendance
// @Accept       json
// @Produce      json
// @Param        sessionID  path      int                  true  "session ID"
// @Param        input      body      request.ScanRequest  true  "Scan payload"
// @Success      201        {object}  response.ScanResponse
// @Failure      400        {object}  response.Err
// @Failure      404        {object}  response.Err
// @Failure      500        {object}  response.Err
// @Router       /sessions/{sessionID}/scan [post]
func (h *AttendanceHandler) HandleScan(ctx *gin.Context) {
	sessionID, err := parseIDParam(ctx, "sessionID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	var input request.ScanRequest
	if err = ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err = input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	var override *domain.Action
	if input.Action != "" {
		action := domain.Action(input.Action)
		override = &action
	}

	result, err := h.svc.RecordScan(ctx.Request.Context(), sessionID, input.QRID, override)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSessionNotFound):
			response.RenderErr(ctx, response.ErrNotFound("session", "sessionID", sessionID))
		case errors.Is(err, service.ErrParticipantNotFound):
			response.RenderErr(ctx, response.ErrNotFound("participant", "qrID", input.QRID))
		default:
			err = fmt.Errorf("HandleScan -> h.svc.RecordScan -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusCreated, response.NewScanResponse(result))
}

// HandleGetRoster godoc
// @Summary      Get a session's present/absent roster
// @Tags         attendance
// @Produce      json
// @Param        sessionID  path      int  true  "session ID"
// @Success      200        {object}  response.RosterResponse
// @Failure      400        {object}  response.Err
// @Failure      404        {object}  response.Err
// @Failure      500        {object}  response.Err
// @Router       /sessions/{sessionID}/roster [get]
func (h *AttendanceHandler) HandleGetRoster(ctx *gin.Context) {
	sessionID, err := parseIDParam(ctx, "sessionID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	roster, err := h.svc.GetRoster(ctx.Request.Context(), sessionID)
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("session", "sessionID", sessionID))
			return
		}

		err = fmt.Errorf("HandleGetRoster -> h.svc.GetRoster -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.NewRosterResponse(sessionID, roster))
}

// HandleGetSummary godoc
// @Summary      Get a session's attendance summary
// @Description  Per participant: check-in count, check-out count, and total minutes in session (an open trailing check-in counts up to now).
// @Tags         attendance
// @Produce      json
// @Param        sessionID  path      int  true  "session ID"
// @Success      200        {object}  response.SummaryResponse
// @Failure      400        {object}  response.Err
// @Failure      404        {object}  response.Err
// @Failure      500        {object}  response.Err
// @Router       /sessions/{sessionID}/summary [get]
func (h *AttendanceHandler) HandleGetSummary(ctx *gin.Context) {
	sessionID, err := parseIDParam(ctx, "sessionID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	summary, err := h.svc.GetSummary(ctx.Request.Context(), sessionID)
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("session", "sessionID", sessionID))
			return
		}

		err = fmt.Errorf("HandleGetSummary -> h.svc.GetSummary -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.SummaryResponse{SessionID: sessionID, Users: summary})
}

// HandleGetRecords godoc
// @Summary      Get a session's full attendance record list
// @Tags         attendance
// @Produce      json
// @Param        sessionID  path      int  true  "session ID"
// @Success      200        {array}   domain.AttendanceRecord
// @Failure      400        {object}  response.Err
// @Failure      404        {object}  response.Err
// @Failure      500        {object}  response.Err
// @Router       /sessions/{sessionID}/records [get]
func (h *AttendanceHandler) HandleGetRecords(ctx *gin.Context) {
	sessionID, err := parseIDParam(ctx, "sessionID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	records, err := h.svc.GetRecords(ctx.Request.Context(), sessionID)
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("session", "sessionID", sessionID))
			return
		}

		err = fmt.Errorf("HandleGetRecords -> h.svc.GetRecords -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, records)
}

// HandleProposeBulk godoc
// @Summary      Propose a bulk check-in or check-out
// @Description  First phase of the two-phase bulk flow. Returns a proposal token that must be confirmed before any record is written.
// @Tags         attendance
// @Accept       json
// @Produce      json
// @Param        sessionID  path      int                  true  "session ID"
// @Param        input      body      request.BulkRequest  true  "Bulk action"
// @Success      200        {object}  response.BulkProposalResponse
// @Failure      400        {object}  response.Err
// @Failure      404        {object}  response.Err
// @Failure      500        {object}  response.Err
// @Router       /sessions/{sessionID}/bulk [post]
func (h *AttendanceHandler) HandleProposeBulk(ctx *gin.Context) {
	sessionID, err := parseIDParam(ctx, "sessionID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	var input request.BulkRequest
	if err = ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err = input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	proposal, err := h.svc.ProposeBulk(ctx.Request.Context(), sessionID, domain.Action(input.Kind), input.UserIDs)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSessionNotFound):
			response.RenderErr(ctx, response.ErrNotFound("session", "sessionID", sessionID))
		case errors.Is(err, service.ErrEmptyBulkSelection),
			errors.Is(err, service.ErrUnknownBulkKind),
			errors.Is(err, service.ErrParticipantNotFound):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		default:
			err = fmt.Errorf("HandleProposeBulk -> h.svc.ProposeBulk -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, response.NewBulkProposalResponse(proposal))
}

// HandleConfirmBulk godoc
// @Summary      Confirm a proposed bulk action
// @Description  Executes the proposal as sequential appends. Individual failures are reported without aborting the batch; the response carries the roster recomputed from the store.
// @Tags         attendance
// @Produce      json
// @Param        token  path      string  true  "proposal token"
// @Success      200    {object}  response.BulkResultResponse
// @Failure      404    {object}  response.Err
// @Failure      500    {object}  response.Err
// @Router       /bulk/{token}/confirm [post]
func (h *AttendanceHandler) HandleConfirmBulk(ctx *gin.Context) {
	token := ctx.Param("token")

	result, roster, err := h.svc.ConfirmBulk(ctx.Request.Context(), token)
	if err != nil {
		if errors.Is(err, service.ErrBulkProposalNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("bulk proposal", "token", token))
			return
		}

		err = fmt.Errorf("HandleConfirmBulk -> h.svc.ConfirmBulk -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.BulkResultResponse{
		Result: result,
		Roster: response.NewRosterResponse(result.SessionID, roster),
	})
}

// HandleCancelBulk godoc
// @Summary      Cancel a proposed bulk action
// @Tags         attendance
// @Produce      json
// @Param        token  path      string  true  "proposal token"
// @Success      204    "cancelled"
// @Failure      404    {object}  response.Err
// @Router       /bulk/{token} [delete]
func (h *AttendanceHandler) HandleCancelBulk(ctx *gin.Context) {
	token := ctx.Param("token")

	if err := h.svc.CancelBulk(token); err != nil {
		response.RenderErr(ctx, response.ErrNotFound("bulk proposal", "token", token))
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleFlushQueue godoc
// @Summary      Replay the offline attendance queue
// @Description  Attempts every buffered record in enqueue order; records that still fail stay queued for a later flush.
// @Tags         attendance
// @Produce      json
// @Success      200  {object}  domain.FlushResult
// @Failure      500  {object}  response.Err
// @Router       /attendance/flush [post]
func (h *AttendanceHandler) HandleFlushQueue(ctx *gin.Context) {
	result, err := h.svc.FlushQueue(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("HandleFlushQueue -> h.svc.FlushQueue -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, result)
}
