package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type CreateEventRequest struct {
	Name  string `json:"name" binding:"required"`
	Logo  string `json:"logo"`
	Color string `json:"color"`
}

func (req *CreateEventRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.Color, validation.Length(0, 20)),
	)
}

type CreateSessionRequest struct {
	SessionName    string `json:"session_name" binding:"required"`
	SessionType    string `json:"session_type" binding:"required"`
	AttendanceMode string `json:"attendance_mode" binding:"required"`
	GroupName      string `json:"group_name"`
}

func (req *CreateSessionRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.SessionName, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.SessionType, validation.Required, validation.Length(1, 50)),
		validation.Field(&req.AttendanceMode, validation.Required, validation.In("All", "Group")),
	)
	if err != nil {
		return err
	}

	if req.AttendanceMode == "Group" {
		return validation.ValidateStruct(
			req,
			validation.Field(&req.GroupName, validation.Required, validation.Length(1, 50)),
		)
	}

	return nil
}
