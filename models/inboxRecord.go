package models

import "time"

// ProjectionInboxRecord is the durable intake row written by the Pub/Sub push
// endpoint. A background processor applies unprocessed rows in id order, so
// intake survives restarts and misconfigured pull subscriptions.
// Unique constraint: (estate_id, event_id) absorbs duplicate push deliveries.
type ProjectionInboxRecord struct {
	ID uint `gorm:"primaryKey" json:"id"`

	EstateId       string `gorm:"size:36;not null;index:uniq_inbox_event,unique,priority:1" json:"estate_id"`
	EventId        string `gorm:"size:36;not null;index:uniq_inbox_event,unique,priority:2" json:"event_id"`
	EventType      string `gorm:"size:100;not null" json:"event_type"`
	Payload        []byte `gorm:"type:mediumblob" json:"payload"`
	StreamPosition int64  `gorm:"not null;default:0" json:"stream_position"`
	CorrelationId  string `gorm:"size:64" json:"correlation_id"`

	IsProcessed      bool       `gorm:"not null;default:0;index" json:"is_processed"`
	LockedAt         *time.Time `json:"locked_at"`
	LockedBy         *string    `gorm:"size:64" json:"locked_by"`
	LastProcessError *string    `gorm:"type:text" json:"last_process_error"`

	ReceivedAt time.Time `gorm:"autoCreateTime" json:"received_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (ProjectionInboxRecord) TableName() string {
	return "projection_inbox_records"
}
