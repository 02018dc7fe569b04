package models

import "time"

// MessageTemplate is a row of message_templates.
type MessageTemplate struct {
	ID                int64
	EnterpriseID      int64
	Name              string
	Subject           string
	Body              string
	PredefinedReplies string
	SyncToDevice      bool
	UpdatedAt         time.Time
}

func (t MessageTemplate) RecordID() int64 { return t.ID }

func (t MessageTemplate) SearchFields() []string {
	return []string{t.Name, t.Subject, t.Body}
}
