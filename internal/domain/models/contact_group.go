package models

import (
	"database/sql"
	"fmt"
	"time"
)

// Group is a row of `groups`, exposed through the API as a contact group.
type Group struct {
	ID                             int64
	EnterpriseID                   int64
	Name                           string
	Description                    sql.NullString
	PagerNumber                    string
	AlternativePagerNumber         string
	Escalation                     bool
	EscalationInterval             EscalationInterval
	EscalationFactor               EscalationFactor
	FailOverOpids                  string
	FailOverGroupOpids             string
	FailReportEmail                string
	FailOverIncludeOriginalMessage bool
	LatestRevision                 time.Time
}

func (g Group) RecordID() int64 { return g.ID }

func (g Group) SearchFields() []string { return []string{g.PagerNumber, g.Name} }

// GroupMember is a row of group_member.
type GroupMember struct {
	GroupID         int64
	AccountID       int64
	EscalationOrder sql.NullInt64
}

// EscalationInterval is stored as whole minutes; 0 means no escalation interval (NULL column).
type EscalationInterval int

const EscalationIntervalNone = "NONE"

var escalationIntervals = []EscalationInterval{1, 2, 3, 5, 10, 15, 20, 25, 30, 35, 40, 45, 50, 55, 60}

// Label renders the interval the way the API exposes it ("5 minutes", "1 hour").
// Unknown values render as NONE.
func (e EscalationInterval) Label() string {
	if !e.Valid() || e == 0 {
		return EscalationIntervalNone
	}
	switch {
	case e == 60:
		return "1 hour"
	case e == 1:
		return "1 minute"
	default:
		return fmt.Sprintf("%d minutes", int(e))
	}
}

func (e EscalationInterval) Valid() bool {
	if e == 0 {
		return true
	}
	for _, v := range escalationIntervals {
		if v == e {
			return true
		}
	}
	return false
}

// Column returns the database value; the zero interval is stored as NULL.
func (e EscalationInterval) Column() sql.NullInt64 {
	if e == 0 || !e.Valid() {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(e), Valid: true}
}

// ParseEscalationInterval maps an API label back to minutes. Unknown labels map to none.
func ParseEscalationInterval(label string) EscalationInterval {
	for _, v := range escalationIntervals {
		if v.Label() == label {
			return v
		}
	}
	return 0
}

// EscalationIntervalFromColumn converts a nullable minutes column.
func EscalationIntervalFromColumn(v sql.NullInt64) EscalationInterval {
	if !v.Valid {
		return 0
	}
	e := EscalationInterval(v.Int64)
	if !e.Valid() {
		return 0
	}
	return e
}

// EscalationFactor is the delivery milestone that stops an escalation.
type EscalationFactor string

const (
	EscalationFactorNone      EscalationFactor = "NONE"
	EscalationFactorDelivered EscalationFactor = "DELIVERED"
	EscalationFactorRead      EscalationFactor = "READ"
	EscalationFactorReplied   EscalationFactor = "REPLIED"
)

// ParseEscalationFactor normalizes an API value; unknown values map to NONE.
func ParseEscalationFactor(v string) EscalationFactor {
	switch EscalationFactor(v) {
	case EscalationFactorDelivered, EscalationFactorRead, EscalationFactorReplied:
		return EscalationFactor(v)
	default:
		return EscalationFactorNone
	}
}

// Column returns the tinyint representation (NULL for NONE).
func (f EscalationFactor) Column() sql.NullInt64 {
	switch f {
	case EscalationFactorDelivered:
		return sql.NullInt64{Int64: 0, Valid: true}
	case EscalationFactorRead:
		return sql.NullInt64{Int64: 1, Valid: true}
	case EscalationFactorReplied:
		return sql.NullInt64{Int64: 2, Valid: true}
	default:
		return sql.NullInt64{}
	}
}

// EscalationFactorFromColumn converts the tinyint column.
func EscalationFactorFromColumn(v sql.NullInt64) EscalationFactor {
	if !v.Valid {
		return EscalationFactorNone
	}
	switch v.Int64 {
	case 0:
		return EscalationFactorDelivered
	case 1:
		return EscalationFactorRead
	case 2:
		return EscalationFactorReplied
	default:
		return EscalationFactorNone
	}
}
