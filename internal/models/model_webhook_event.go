package models

import (
	"time"

	"gorm.io/datatypes"
)

// WebhookEvent durably marks a provider notification as seen. The unique
// (provider, event_id) pair is the sole idempotency guard for ingestion.
type WebhookEvent struct {
	ID       string         `gorm:"column:id;type:uuid;primary_key" json:"id"`
	Provider string         `gorm:"column:provider;type:varchar(64);not null;uniqueIndex:unique_provider_event_id,priority:1" json:"provider"`
	EventID  string         `gorm:"column:event_id;type:varchar(128);not null;uniqueIndex:unique_provider_event_id,priority:2" json:"event_id"`
	Payload  datatypes.JSON `gorm:"column:payload;type:jsonb" json:"payload"`
	// ProcessedAt is set once the credit award committed. NULL rows are
	// candidates for the reconcile sweep.
	ProcessedAt     *time.Time `gorm:"column:processed_at;default:null" json:"processed_at"`
	ProcessingError string     `gorm:"column:processing_error;type:text" json:"processing_error"`
	CreatedAt       time.Time  `json:"created_at"`
}

func (WebhookEvent) TableName() string { return "webhook_events" }
