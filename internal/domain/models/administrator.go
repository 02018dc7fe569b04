package models

import "time"

const (
	AdminTypeAdministrator = "ADMINISTRATOR"
	AdminTypeDispatcher    = "DISPATCHER"
)

// DispatcherPermissions mirrors the can_* flag columns of dispatchers.
type DispatcherPermissions struct {
	CanAddGroup               bool
	CanDeleteContact          bool
	CanEditContact            bool
	CanAddContact             bool
	CanAddContactToGroup      bool
	CanRemoveContactFromGroup bool
	CanDeleteGroup            bool
	CanEditGroup              bool
	CanAddEscalation          bool
	CanEditEscalation         bool
	CanViewSchedule           bool
	CanEditSchedule           bool
	ViewReports               bool
}

// Dispatcher is a row of dispatchers, exposed through the API as an administrator.
type Dispatcher struct {
	ID           int64
	EnterpriseID int64
	FirstName    string
	LastName     string
	Email        string
	PhoneNumber  string
	PasswordHash string
	AdminType    string
	Active       bool
	Deleted      bool
	CreatedAt    time.Time
	Permissions  DispatcherPermissions
}

func (d Dispatcher) RecordID() int64 { return d.ID }

func (d Dispatcher) SearchFields() []string {
	return []string{d.Email, d.FirstName, d.LastName}
}

func (d Dispatcher) IsSuperAdmin() bool { return d.AdminType == AdminTypeAdministrator }

// AdminGroup is a row of admin_groups with its member dispatcher ids.
type AdminGroup struct {
	ID           int64
	EnterpriseID int64
	Name         string
}

func (g AdminGroup) RecordID() int64 { return g.ID }

func (g AdminGroup) SearchFields() []string { return []string{g.Name} }
