package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EnrollmentStatus string

const (
	EnrollmentActive    EnrollmentStatus = "active"
	EnrollmentWaiting   EnrollmentStatus = "waiting"
	EnrollmentSuspended EnrollmentStatus = "suspended"
)

// EnrollmentModel links a student to a program. Its status is mutated as a
// side effect of payment settlement (reactivation) and of the overdue sweep
// (suspension).
type EnrollmentModel struct {
	EnrollmentID uuid.UUID `gorm:"column:enrollment_id;type:uuid;default:gen_random_uuid();primaryKey" json:"enrollment_id"`

	EnrollmentStudentID uuid.UUID `gorm:"column:enrollment_student_id;type:uuid;not null;index:idx_enrollments_student" json:"enrollment_student_id"`
	EnrollmentProgramID uuid.UUID `gorm:"column:enrollment_program_id;type:uuid;not null;index:idx_enrollments_program" json:"enrollment_program_id"`

	EnrollmentStatus     EnrollmentStatus `gorm:"column:enrollment_status;type:varchar(20);not null;default:waiting" json:"enrollment_status"`
	EnrollmentEnrolledAt time.Time        `gorm:"column:enrollment_enrolled_at;not null" json:"enrollment_enrolled_at"`

	EnrollmentCreatedAt time.Time      `gorm:"column:enrollment_created_at;autoCreateTime" json:"enrollment_created_at"`
	EnrollmentUpdatedAt *time.Time     `gorm:"column:enrollment_updated_at;autoUpdateTime" json:"enrollment_updated_at,omitempty"`
	EnrollmentDeletedAt gorm.DeletedAt `gorm:"column:enrollment_deleted_at;index" json:"enrollment_deleted_at,omitempty"`
}

func (EnrollmentModel) TableName() string { return "enrollments" }
