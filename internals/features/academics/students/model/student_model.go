package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StudentModel struct {
	StudentID uuid.UUID `gorm:"column:student_id;type:uuid;default:gen_random_uuid();primaryKey" json:"student_id"`

	StudentFirstName      string  `gorm:"column:student_first_name;type:text;not null" json:"student_first_name"`
	StudentLastName       string  `gorm:"column:student_last_name;type:text;not null" json:"student_last_name"`
	StudentDocumentNumber *string `gorm:"column:student_document_number;type:varchar(30);uniqueIndex" json:"student_document_number,omitempty"`
	StudentEmail          *string `gorm:"column:student_email;type:text" json:"student_email,omitempty"`

	// Payer of record for billing notifications
	StudentGuardianName  *string `gorm:"column:student_guardian_name;type:text" json:"student_guardian_name,omitempty"`
	StudentGuardianEmail *string `gorm:"column:student_guardian_email;type:text" json:"student_guardian_email,omitempty"`

	StudentCreatedAt time.Time      `gorm:"column:student_created_at;autoCreateTime" json:"student_created_at"`
	StudentUpdatedAt *time.Time     `gorm:"column:student_updated_at;autoUpdateTime" json:"student_updated_at,omitempty"`
	StudentDeletedAt gorm.DeletedAt `gorm:"column:student_deleted_at;index" json:"student_deleted_at,omitempty"`
}

func (StudentModel) TableName() string { return "students" }

func (m StudentModel) FullName() string {
	return m.StudentFirstName + " " + m.StudentLastName
}
