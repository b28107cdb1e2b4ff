package response

import (
	"github.com/hadir-app/hadir-api/internal/domain"
	"github.com/hadir-app/hadir-api/internal/service"
)

type ScanResponse struct {
	Action  domain.Action           `json:"action"`
	Queued  bool                    `json:"queued"`
	Message string                  `json:"message"`
	Record  domain.AttendanceRecord `json:"record"`
}

func NewScanResponse(result domain.ScanResult) ScanResponse {
	msg := "attendance recorded"
	if result.Queued {
		msg = "saved temporarily, will sync"
	}

	return ScanResponse{
		Action:  result.Record.Action,
		Queued:  result.Queued,
		Message: msg,
		Record:  result.Record,
	}
}

type RosterResponse struct {
	SessionID uint                 `json:"session_id"`
	Present   []domain.Participant `json:"present"`
	Absent    []domain.Participant `json:"absent"`
}

func NewRosterResponse(sessionID uint, roster domain.Roster) RosterResponse {
	return RosterResponse{
		SessionID: sessionID,
		Present:   roster.Present,
		Absent:    roster.Absent,
	}
}

type SummaryResponse struct {
	SessionID uint                                 `json:"session_id"`
	Users     map[string]domain.AttendanceSummary `json:"users"`
}

type BulkProposalResponse struct {
	Token       string               `json:"token"`
	Kind        domain.Action        `json:"kind"`
	TargetCount int                  `json:"target_count"`
	Targets     []domain.Participant `json:"targets"`
}

func NewBulkProposalResponse(proposal domain.BulkProposal) BulkProposalResponse {
	return BulkProposalResponse{
		Token:       proposal.Token,
		Kind:        proposal.Kind,
		TargetCount: len(proposal.Targets),
		Targets:     proposal.Targets,
	}
}

type BulkResultResponse struct {
	Result domain.BulkResult `json:"result"`
	Roster RosterResponse    `json:"roster"`
}

type ImportResponse struct {
	Imported int                     `json:"imported"`
	Failed   int                     `json:"failed"`
	Outcomes []service.ImportOutcome `json:"outcomes"`
}

func NewImportResponse(outcomes []service.ImportOutcome) ImportResponse {
	resp := ImportResponse{Outcomes: outcomes}
	for _, o := range outcomes {
		if o.Error == "" {
			resp.Imported++
		} else {
			resp.Failed++
		}
	}

	return resp
}
