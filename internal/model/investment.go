package model

import "time"

// InvestmentStatus tracks a checkout session's lifecycle.
// A row starts pending and is moved by the payment webhook
// (completed/expired) or by the pending sweeper.
type InvestmentStatus string

const (
	InvestmentPending   InvestmentStatus = "pending"
	InvestmentConfirmed InvestmentStatus = "confirmed"
	InvestmentFailed    InvestmentStatus = "failed"
	InvestmentExpired   InvestmentStatus = "expired"
)

// Investment links an investor, a talent and a monetary amount to a
// hosted checkout session. Amount is in minor currency units (cents).
type Investment struct {
	ID         string           `json:"id"`
	InvestorID string           `json:"investor_id"`
	TalentID   string           `json:"talent_id"`
	Amount     int64            `json:"amount"`
	Currency   string           `json:"currency"`
	SessionID  string           `json:"session_id"`
	Status     InvestmentStatus `json:"status"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`
}

// InvestmentSummary aggregates confirmed investments for a talent.
type InvestmentSummary struct {
	TalentID string `json:"talent_id"`
	Total    int64  `json:"total"`
	Count    int64  `json:"count"`
	Currency string `json:"currency"`
}
