package models

import (
	"time"

	"gorm.io/datatypes"
)

type AuditAction string

const (
	AuditActionCreate AuditAction = "create"
	AuditActionUpdate AuditAction = "update"
	AuditActionDelete AuditAction = "delete"
)

type AuditLog struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	ActorEmail  string         `gorm:"size:100;index" json:"actorEmail"`
	EntityType  string         `gorm:"size:50;index" json:"entityType"`
	EntityID    string         `gorm:"size:36;index" json:"entityId"`
	Action      AuditAction    `gorm:"size:20;not null" json:"action"`
	Description string         `gorm:"size:500" json:"description"`
	BeforeData  datatypes.JSON `json:"beforeData"`
	AfterData   datatypes.JSON `json:"afterData"`
	CreatedAt   time.Time      `json:"createdAt"`
}
