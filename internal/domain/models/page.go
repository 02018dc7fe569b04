package models

import (
	"database/sql"
	"time"
)

// Page priorities as stored in messages.priority. Urgent pages are exposed as HIGH.
const (
	PriorityLow    = 0
	PriorityHigh   = 1
	PriorityUrgent = 2
)

// Sender types of messages.sender_type.
const (
	SenderAPI        = "API"
	SenderDispatcher = "DISPATCHER"
)

// Recipient types of message_recipients.recipient_type.
const (
	RecipientOPID  = "opid"
	RecipientGroup = "group"
)

// Message is a row of messages, exposed through the API as a page.
type Message struct {
	ID            int64
	EnterpriseID  int64
	ChatID        sql.NullInt64
	SenderType    string
	SenderCaption string
	SenderValue   string
	Subject       string
	Body          string
	Priority      int
	Replies       string
	CallbackURI   string
	CreatedAt     time.Time
}

func (m Message) RecordID() int64 { return m.ID }

func (m Message) SearchFields() []string { return []string{m.Subject, m.Body} }

// Chat returns the conversation id; a page that opens a conversation is its own chat.
func (m Message) Chat() int64 {
	if m.ChatID.Valid && m.ChatID.Int64 > 0 {
		return m.ChatID.Int64
	}
	return m.ID
}

// MessageRecipient is a row of message_recipients. Exactly one of AccountID and
// GroupID is set.
type MessageRecipient struct {
	MessageID     int64
	RecipientType string
	Caption       string
	Value         string
	AccountID     sql.NullInt64
	GroupID       sql.NullInt64
}

// PriorityLabel renders a stored priority. Unknown values are treated as HIGH.
func PriorityLabel(priority int) string {
	if priority == PriorityLow {
		return "LOW"
	}
	return "HIGH"
}

// PriorityFromLabel parses HIGH/LOW; anything else (including empty) is HIGH.
func PriorityFromLabel(label string) int {
	if label == "LOW" {
		return PriorityLow
	}
	return PriorityHigh
}
