package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type ScanRequest struct {
	QRID string `json:"qr_id" binding:"required"`
	// Action forces the scan direction; the present/absent roster buttons
	// and bulk flows set it. Empty means toggle from the prior record.
	Action string `json:"action"`
}

func (req *ScanRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.QRID, validation.Required, validation.Length(1, 64)),
		validation.Field(&req.Action, validation.In("check-in", "check-out")),
	)
}

type BulkRequest struct {
	Kind string `json:"kind" binding:"required"`
	// UserIDs selects bulk check-in targets from the absent roster; it is
	// ignored for bulk check-out, which always targets the present roster.
	UserIDs []string `json:"user_ids"`
}

func (req *BulkRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Kind, validation.Required, validation.In("check-in", "check-out")),
	)
}
