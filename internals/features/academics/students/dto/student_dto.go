package dto

import (
	"time"

	"github.com/google/uuid"

	m "academix_backend/internals/features/academics/students/model"
)

/* =============== REQUESTS =============== */

type CreateStudentRequest struct {
	StudentFirstName      string  `json:"student_first_name" validate:"required,min=1"`
	StudentLastName       string  `json:"student_last_name"  validate:"required,min=1"`
	StudentDocumentNumber *string `json:"student_document_number" validate:"omitempty,min=3"`
	StudentEmail          *string `json:"student_email"           validate:"omitempty,email"`
	StudentGuardianName   *string `json:"student_guardian_name"   validate:"omitempty"`
	StudentGuardianEmail  *string `json:"student_guardian_email"  validate:"omitempty,email"`
}

func (r CreateStudentRequest) ToModel() *m.StudentModel {
	return &m.StudentModel{
		StudentFirstName:      r.StudentFirstName,
		StudentLastName:       r.StudentLastName,
		StudentDocumentNumber: r.StudentDocumentNumber,
		StudentEmail:          r.StudentEmail,
		StudentGuardianName:   r.StudentGuardianName,
		StudentGuardianEmail:  r.StudentGuardianEmail,
	}
}

// Update (partial)
type UpdateStudentRequest struct {
	StudentFirstName      *string `json:"student_first_name" validate:"omitempty,min=1"`
	StudentLastName       *string `json:"student_last_name"  validate:"omitempty,min=1"`
	StudentDocumentNumber *string `json:"student_document_number" validate:"omitempty,min=3"`
	StudentEmail          *string `json:"student_email"           validate:"omitempty,email"`
	StudentGuardianName   *string `json:"student_guardian_name"   validate:"omitempty"`
	StudentGuardianEmail  *string `json:"student_guardian_email"  validate:"omitempty,email"`
}

func (r UpdateStudentRequest) ApplyTo(mo *m.StudentModel) {
	if r.StudentFirstName != nil {
		mo.StudentFirstName = *r.StudentFirstName
	}
	if r.StudentLastName != nil {
		mo.StudentLastName = *r.StudentLastName
	}
	if r.StudentDocumentNumber != nil {
		mo.StudentDocumentNumber = r.StudentDocumentNumber
	}
	if r.StudentEmail != nil {
		mo.StudentEmail = r.StudentEmail
	}
	if r.StudentGuardianName != nil {
		mo.StudentGuardianName = r.StudentGuardianName
	}
	if r.StudentGuardianEmail != nil {
		mo.StudentGuardianEmail = r.StudentGuardianEmail
	}
}

/* =============== RESPONSES =============== */

type StudentResponse struct {
	StudentID             uuid.UUID  `json:"student_id"`
	StudentFirstName      string     `json:"student_first_name"`
	StudentLastName       string     `json:"student_last_name"`
	StudentDocumentNumber *string    `json:"student_document_number,omitempty"`
	StudentEmail          *string    `json:"student_email,omitempty"`
	StudentGuardianName   *string    `json:"student_guardian_name,omitempty"`
	StudentGuardianEmail  *string    `json:"student_guardian_email,omitempty"`
	StudentCreatedAt      time.Time  `json:"student_created_at"`
	StudentUpdatedAt      *time.Time `json:"student_updated_at,omitempty"`
}

func FromModel(x m.StudentModel) StudentResponse {
	return StudentResponse{
		StudentID:             x.StudentID,
		StudentFirstName:      x.StudentFirstName,
		StudentLastName:       x.StudentLastName,
		StudentDocumentNumber: x.StudentDocumentNumber,
		StudentEmail:          x.StudentEmail,
		StudentGuardianName:   x.StudentGuardianName,
		StudentGuardianEmail:  x.StudentGuardianEmail,
		StudentCreatedAt:      x.StudentCreatedAt,
		StudentUpdatedAt:      x.StudentUpdatedAt,
	}
}

func FromModels(list []m.StudentModel) []StudentResponse {
	out := make([]StudentResponse, 0, len(list))
	for _, it := range list {
		out = append(out, FromModel(it))
	}
	return out
}
