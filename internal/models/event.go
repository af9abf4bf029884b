package models

import "time"

// Ledger event type constants
const (
	EventHoldingAdded        = "HOLDING_ADDED"
	EventHoldingUpdated      = "HOLDING_UPDATED"
	EventHoldingRemoved      = "HOLDING_REMOVED"
	EventTransactionRecorded = "TRANSACTION_RECORDED"
)

// LedgerEvent represents a Kafka event emitted on portfolio and
// transaction log changes
type LedgerEvent struct {
	EventType   string       `json:"event_type"`
	UserID      int          `json:"user_id"`
	Symbol      string       `json:"symbol"`
	Holding     *Holding     `json:"holding,omitempty"`
	Transaction *Transaction `json:"transaction,omitempty"`
	Timestamp   time.Time    `json:"timestamp"`
}
