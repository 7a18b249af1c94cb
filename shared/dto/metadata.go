package dto

import (
	"sitterhub/shared/constant"
	"sitterhub/shared/model"
	"sitterhub/shared/timezone"
)

// Metadata is the audit trail rendered in responses. Timestamps are in the app timezone.
type Metadata struct {
	CreatedAt  string `json:"created_at"`
	ModifiedAt string `json:"modified_at"`
	CreatedBy  string `json:"created_by,omitempty"`
	ModifiedBy string `json:"modified_by,omitempty"`
}

func (m *Metadata) FromModel(mod model.Metadata) {
	*m = Metadata{
		CreatedAt:  timezone.Format(mod.CreatedAt, constant.DateFormat),
		ModifiedAt: timezone.Format(mod.ModifiedAt, constant.DateFormat),
		CreatedBy:  mod.CreatedBy,
		ModifiedBy: mod.ModifiedBy,
	}
}
