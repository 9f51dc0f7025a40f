// Package audit persists change-history records for billing mutations.
// Recording is fire and forget: a failed audit write is logged and must never
// abort a financial operation that already succeeded.
package audit

import (
	"log"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type AuditLogModel struct {
	AuditLogID uuid.UUID `gorm:"column:audit_log_id;type:uuid;default:gen_random_uuid();primaryKey" json:"audit_log_id"`

	AuditLogEntityType string    `gorm:"column:audit_log_entity_type;type:varchar(40);not null;index:idx_audit_logs_entity" json:"audit_log_entity_type"`
	AuditLogEntityID   uuid.UUID `gorm:"column:audit_log_entity_id;type:uuid;not null;index:idx_audit_logs_entity" json:"audit_log_entity_id"`

	AuditLogActorID *uuid.UUID     `gorm:"column:audit_log_actor_id;type:uuid" json:"audit_log_actor_id,omitempty"`
	AuditLogDiff    datatypes.JSON `gorm:"column:audit_log_diff;type:jsonb" json:"audit_log_diff"`

	AuditLogCreatedAt time.Time `gorm:"column:audit_log_created_at;autoCreateTime" json:"audit_log_created_at"`
}

func (AuditLogModel) TableName() string { return "audit_logs" }

// Recorder writes audit rows outside the caller's transaction.
type Recorder struct {
	DB *gorm.DB
}

func NewRecorder(db *gorm.DB) *Recorder {
	return &Recorder{DB: db}
}

// Record stores a diff for an entity. Errors are swallowed after logging.
func (r *Recorder) Record(entityType string, entityID uuid.UUID, actorID *uuid.UUID, diff map[string]any) {
	raw, err := sonic.Marshal(diff)
	if err != nil {
		log.Printf("[AUDIT ERROR] marshal diff for %s %s: %v", entityType, entityID, err)
		return
	}
	row := AuditLogModel{
		AuditLogEntityType: entityType,
		AuditLogEntityID:   entityID,
		AuditLogActorID:    actorID,
		AuditLogDiff:       datatypes.JSON(raw),
	}
	if err := r.DB.Create(&row).Error; err != nil {
		log.Printf("[AUDIT ERROR] record %s %s: %v", entityType, entityID, err)
	}
}
