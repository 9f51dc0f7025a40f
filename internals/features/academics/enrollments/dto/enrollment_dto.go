package dto

import (
	"time"

	"github.com/google/uuid"

	m "academix_backend/internals/features/academics/enrollments/model"
)

/* =============== REQUESTS =============== */

type CreateEnrollmentRequest struct {
	EnrollmentStudentID uuid.UUID `json:"enrollment_student_id" validate:"required"`
	EnrollmentProgramID uuid.UUID `json:"enrollment_program_id" validate:"required"`
	EnrollmentStatus    *string   `json:"enrollment_status" validate:"omitempty,oneof=active waiting suspended"`
}

func (r CreateEnrollmentRequest) ToModel() *m.EnrollmentModel {
	status := m.EnrollmentWaiting
	if r.EnrollmentStatus != nil {
		status = m.EnrollmentStatus(*r.EnrollmentStatus)
	}
	return &m.EnrollmentModel{
		EnrollmentStudentID:  r.EnrollmentStudentID,
		EnrollmentProgramID:  r.EnrollmentProgramID,
		EnrollmentStatus:     status,
		EnrollmentEnrolledAt: time.Now(),
	}
}

type UpdateEnrollmentStatusRequest struct {
	EnrollmentStatus string `json:"enrollment_status" validate:"required,oneof=active waiting suspended"`
}

type ListEnrollmentQuery struct {
	StudentID *uuid.UUID `query:"student_id" validate:"omitempty"`
	ProgramID *uuid.UUID `query:"program_id" validate:"omitempty"`
	Status    *string    `query:"status" validate:"omitempty,oneof=active waiting suspended"`
}

/* =============== RESPONSES =============== */

type EnrollmentResponse struct {
	EnrollmentID         uuid.UUID  `json:"enrollment_id"`
	EnrollmentStudentID  uuid.UUID  `json:"enrollment_student_id"`
	EnrollmentProgramID  uuid.UUID  `json:"enrollment_program_id"`
	EnrollmentStatus     string     `json:"enrollment_status"`
	EnrollmentEnrolledAt time.Time  `json:"enrollment_enrolled_at"`
	EnrollmentCreatedAt  time.Time  `json:"enrollment_created_at"`
	EnrollmentUpdatedAt  *time.Time `json:"enrollment_updated_at,omitempty"`
}

func FromModel(x m.EnrollmentModel) EnrollmentResponse {
	return EnrollmentResponse{
		EnrollmentID:         x.EnrollmentID,
		EnrollmentStudentID:  x.EnrollmentStudentID,
		EnrollmentProgramID:  x.EnrollmentProgramID,
		EnrollmentStatus:     string(x.EnrollmentStatus),
		EnrollmentEnrolledAt: x.EnrollmentEnrolledAt,
		EnrollmentCreatedAt:  x.EnrollmentCreatedAt,
		EnrollmentUpdatedAt:  x.EnrollmentUpdatedAt,
	}
}

func FromModels(list []m.EnrollmentModel) []EnrollmentResponse {
	out := make([]EnrollmentResponse, 0, len(list))
	for _, it := range list {
		out = append(out, FromModel(it))
	}
	return out
}
