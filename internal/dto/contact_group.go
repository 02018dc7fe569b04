package dto

type ContactGroupMember struct {
	ContactID int64  `json:"contactId" binding:"required"`
	Order     *int64 `json:"order"`
}

type GroupFailOver struct {
	IncludeOriginalMessage bool     `json:"includeOriginalMessage"`
	Emails                 []string `json:"emails" binding:"omitempty,dive,email"`
	Contacts               []int64  `json:"contacts"`
	Groups                 []int64  `json:"groups"`
}

type ContactGroup struct {
	ID                 int64                `json:"id"`
	OPID               string               `json:"opid"`
	Name               string               `json:"name"`
	Description        string               `json:"description"`
	Contacts           []ContactGroupMember `json:"contacts"`
	Escalation         bool                 `json:"escalation"`
	EscalationInterval string               `json:"escalationInterval"`
	EscalationFactor   string               `json:"escalationFactor"`
	FailOver           GroupFailOver        `json:"failOver"`
}

// ContactGroups keeps the "contacts" key used by the public API for the group list.
type ContactGroups struct {
	Contacts []ContactGroup `json:"contacts"`
	Metadata Metadata       `json:"metadata"`
}

// ContactGroupWrite is the body of POST and PUT, and the target of PATCH documents.
// Nil Contacts or FailOver leave the stored values untouched on update.
type ContactGroupWrite struct {
	OPID               string               `json:"opid" binding:"required"`
	Name               string               `json:"name" binding:"required"`
	Description        string               `json:"description"`
	Contacts           []ContactGroupMember `json:"contacts" binding:"omitempty,dive"`
	Escalation         bool                 `json:"escalation"`
	EscalationInterval string               `json:"escalationInterval" binding:"omitempty,escalation_interval"`
	EscalationFactor   string               `json:"escalationFactor" binding:"omitempty,oneof=NONE DELIVERED READ REPLIED"`
	FailOver           *GroupFailOver       `json:"failOver"`
}
