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

type ParticipantService interface {
	RegisterParticipant(ctx context.Context, participant domain.Participant) (domain.Participant, error)
	ImportParticipants(ctx context.Context, eventID uint, rows []domain.Participant) ([]service.ImportOutcome, error)
	GetParticipants(ctx context.Context, eventID uint) ([]domain.Participant, error)
}

type ParticipantHandler struct {
	svc ParticipantService
}

func NewParticipantHandler(svc ParticipantService) *ParticipantHandler {
	return &ParticipantHandler{
		svc: svc,
	}
}

// HandleCreateParticipant godoc
// @Summary      Register a participant
// @Description  Adds one participant to an event. The QR token is generated server-side when omitted.
// @Tags         participants
// @Accept       json
// @Produce      json
// @Param        eventID  path      int                               true  "event ID"
// @Param        input    body      request.CreateParticipantRequest  true  "Participant details"
// @Success      201      {object}  domain.Participant
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID}/participants [post]
func (h *ParticipantHandler) HandleCreateParticipant(ctx *gin.Context) {
	eventID, err := parseIDParam(ctx, "eventID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	var input request.CreateParticipantRequest
	if err = ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err = input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	participant := domain.Participant{
		EventID: eventID,
		Name:    input.Name,
		Team:    input.Team,
		Group:   input.Group,
		QRID:    input.QRID,
	}

	created, err := h.svc.RegisterParticipant(ctx.Request.Context(), participant)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEventNotFound):
			response.RenderErr(ctx, response.ErrNotFound("event", "eventID", eventID))
		case errors.Is(err, service.ErrDuplicateQRID):
			response.RenderErr(ctx, response.ErrConflict(err))
		default:
			err = fmt.Errorf("HandleCreateParticipant -> h.svc.RegisterParticipant -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusCreated, created)
}

// HandleImportParticipants godoc
// @Summary      Import participants in bulk
// @Description  Registers pre-parsed sheet rows. Rows fail individually; the response reports per-row outcomes.
// @Tags         participants
// @Accept       json
// @Produce      json
// @Param        eventID  path      int                                true  "event ID"
// @Param        input    body      request.ImportParticipantsRequest  true  "Parsed rows"
// @Success      200      {object}  response.ImportResponse
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID}/participants/import [post]
func (h *ParticipantHandler) HandleImportParticipants(ctx *gin.Context) {
	eventID, err := parseIDParam(ctx, "eventID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	var input request.ImportParticipantsRequest
	if err = ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err = input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	rows := make([]domain.Participant, len(input.Rows))
	for i, row := range input.Rows {
		rows[i] = domain.Participant{
			Name:  row.Name,
			Team:  row.Team,
			Group: row.Group,
			QRID:  row.QRID,
		}
	}

	outcomes, err := h.svc.ImportParticipants(ctx.Request.Context(), eventID, rows)
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("event", "eventID", eventID))
			return
		}

		err = fmt.Errorf("HandleImportParticipants -> h.svc.ImportParticipants -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.NewImportResponse(outcomes))
}

// HandleGetParticipants godoc
// @Summary      List an event's participants
// @Tags         participants
// @Produce      json
// @Param        eventID  path      int  true  "event ID"
// @Success      200      {array}   domain.Participant
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID}/participants [get]
func (h *ParticipantHandler) HandleGetParticipants(ctx *gin.Context) {
	eventID, err := parseIDParam(ctx, "eventID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	participants, err := h.svc.GetParticipants(ctx.Request.Context(), eventID)
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("event", "eventID", eventID))
			return
		}

		err = fmt.Errorf("HandleGetParticipants -> h.svc.GetParticipants -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, participants)
}
