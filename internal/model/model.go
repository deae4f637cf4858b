package model

import (
	"fmt"
	"time"
)

// DateFormat is the calendar-day format used everywhere a date is rendered
// or parsed: storage rows, CSV columns and plot axis labels.
const DateFormat = "2006/01/02"

// MassRecord is a single body-mass observation. Records are append-only:
// once written they are never updated, only bulk-deleted per user.
type MassRecord struct {
	UserID int64
	Date   time.Time
	Mass   float64
}

// ConversationState tags which reply handler processes a user's next message.
type ConversationState string

const (
	StateInit                      ConversationState = "init"
	StateAwaitingBodyWeight        ConversationState = "awaiting_body_weight"
	StateAwaitingEraseConfirmation ConversationState = "awaiting_erase_confirmation"
	StateAwaitingCSVTable          ConversationState = "awaiting_csv_table"
)

// ParseConversationState validates a state value read back from storage.
func ParseConversationState(s string) (ConversationState, error) {
	switch st := ConversationState(s); st {
	case StateInit, StateAwaitingBodyWeight, StateAwaitingEraseConfirmation, StateAwaitingCSVTable:
		return st, nil
	default:
		return StateInit, fmt.Errorf("unknown conversation state %q", s)
	}
}
