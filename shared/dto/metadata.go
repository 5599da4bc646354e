package dto

import (
	"agenda/shared/constant"
	"agenda/shared/model"
	"agenda/shared/timezone"
)

type Metadata struct {
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

func (m *Metadata) FromModel(model model.Metadata) {
	m.CreatedAt = timezone.Format(model.CreatedAt, constant.DateFormat)

	if !model.UpdatedAt.IsZero() {
		m.UpdatedAt = timezone.Format(model.UpdatedAt, constant.DateFormat)
	}
}
