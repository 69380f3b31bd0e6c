package model

import "time"

// PaymentEvent records a processor webhook delivery. The (provider,
// event id) pair is unique so replayed deliveries are no-ops.
type PaymentEvent struct {
	ID              int64      `json:"id"`
	Provider        string     `json:"provider"`
	EventID         string     `json:"event_id"`
	EventType       string     `json:"event_type"`
	SessionID       string     `json:"session_id"`
	ProcessedAt     *time.Time `json:"processed_at,omitempty"`
	ProcessingError string     `json:"processing_error,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}
