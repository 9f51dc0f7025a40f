package dto

import (
	"time"

	"github.com/google/uuid"

	m "academix_backend/internals/features/academics/programs/model"
)

/* =============== REQUESTS =============== */

type CreateProgramRequest struct {
	ProgramName        string  `json:"program_name" validate:"required,min=2"`
	ProgramDescription *string `json:"program_description" validate:"omitempty"`
	ProgramMonthlyFee  int64   `json:"program_monthly_fee" validate:"omitempty,gte=0"`
	ProgramIsActive    *bool   `json:"program_is_active" validate:"omitempty"`
}

func (r CreateProgramRequest) ToModel() *m.ProgramModel {
	active := true
	if r.ProgramIsActive != nil {
		active = *r.ProgramIsActive
	}
	return &m.ProgramModel{
		ProgramName:        r.ProgramName,
		ProgramDescription: r.ProgramDescription,
		ProgramMonthlyFee:  r.ProgramMonthlyFee,
		ProgramIsActive:    active,
	}
}

// Update (partial)
type UpdateProgramRequest struct {
	ProgramName        *string `json:"program_name" validate:"omitempty,min=2"`
	ProgramDescription *string `json:"program_description" validate:"omitempty"`
	ProgramMonthlyFee  *int64  `json:"program_monthly_fee" validate:"omitempty,gte=0"`
	ProgramIsActive    *bool   `json:"program_is_active" validate:"omitempty"`
}

func (r UpdateProgramRequest) ApplyTo(mo *m.ProgramModel) {
	if r.ProgramName != nil {
		mo.ProgramName = *r.ProgramName
	}
	if r.ProgramDescription != nil {
		mo.ProgramDescription = r.ProgramDescription
	}
	if r.ProgramMonthlyFee != nil {
		mo.ProgramMonthlyFee = *r.ProgramMonthlyFee
	}
	if r.ProgramIsActive != nil {
		mo.ProgramIsActive = *r.ProgramIsActive
	}
}

/* =============== RESPONSES =============== */

type ProgramResponse struct {
	ProgramID          uuid.UUID  `json:"program_id"`
	ProgramName        string     `json:"program_name"`
	ProgramDescription *string    `json:"program_description,omitempty"`
	ProgramMonthlyFee  int64      `json:"program_monthly_fee"`
	ProgramIsActive    bool       `json:"program_is_active"`
	ProgramCreatedAt   time.Time  `json:"program_created_at"`
	ProgramUpdatedAt   *time.Time `json:"program_updated_at,omitempty"`
}

func FromModel(x m.ProgramModel) ProgramResponse {
	return ProgramResponse{
		ProgramID:          x.ProgramID,
		ProgramName:        x.ProgramName,
		ProgramDescription: x.ProgramDescription,
		ProgramMonthlyFee:  x.ProgramMonthlyFee,
		ProgramIsActive:    x.ProgramIsActive,
		ProgramCreatedAt:   x.ProgramCreatedAt,
		ProgramUpdatedAt:   x.ProgramUpdatedAt,
	}
}

func FromModels(list []m.ProgramModel) []ProgramResponse {
	out := make([]ProgramResponse, 0, len(list))
	for _, it := range list {
		out = append(out, FromModel(it))
	}
	return out
}
