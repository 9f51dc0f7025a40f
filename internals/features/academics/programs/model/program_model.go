package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProgramModel struct {
	ProgramID uuid.UUID `gorm:"column:program_id;type:uuid;default:gen_random_uuid();primaryKey" json:"program_id"`

	ProgramName        string  `gorm:"column:program_name;type:text;not null" json:"program_name"`
	ProgramDescription *string `gorm:"column:program_description;type:text" json:"program_description,omitempty"`

	// Monthly fee in COP. Zero means the program does not bill monthly and the
	// obligation generator skips its enrollments.
	ProgramMonthlyFee int64 `gorm:"column:program_monthly_fee;type:bigint;not null;default:0;check:program_monthly_fee >= 0" json:"program_monthly_fee"`

	ProgramIsActive bool `gorm:"column:program_is_active;not null;default:true" json:"program_is_active"`

	ProgramCreatedAt time.Time      `gorm:"column:program_created_at;autoCreateTime" json:"program_created_at"`
	ProgramUpdatedAt *time.Time     `gorm:"column:program_updated_at;autoUpdateTime" json:"program_updated_at,omitempty"`
	ProgramDeletedAt gorm.DeletedAt `gorm:"column:program_deleted_at;index" json:"program_deleted_at,omitempty"`
}

func (ProgramModel) TableName() string { return "programs" }
