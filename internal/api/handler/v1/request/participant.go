package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type CreateParticipantRequest struct {
	Name  string `json:"name" binding:"required"`
	Team  string `json:"team"`
	Group string `json:"group"`
	QRID  string `json:"qr_id"` // generated server-side when omitted
}

func (req *CreateParticipantRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.Team, validation.Length(0, 50)),
		validation.Field(&req.Group, validation.Length(0, 50)),
		validation.Field(&req.QRID, validation.Length(0, 64)),
	)
}

type ImportParticipantsRequest struct {
	Rows []CreateParticipantRequest `json:"rows" binding:"required"`
}

func (req *ImportParticipantsRequest) Validate() error {
	if err := validation.ValidateStruct(
		req,
		validation.Field(&req.Rows, validation.Required),
	); err != nil {
		return err
	}

	for i := range req.Rows {
		if err := req.Rows[i].Validate(); err != nil {
			return err
		}
	}

	return nil
}
