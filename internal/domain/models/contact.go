package models

import "time"

// Account is a row of accounts, exposed through the API as a contact.
type Account struct {
	ID                     int64
	EnterpriseID           int64
	PagerNumber            string
	AlternativePagerNumber string
	FirstName              string
	LastName               string
	Email                  string
	PhoneNumber            string
	PasswordHash           string
	Active                 bool
	Deleted                bool
	CreatedAt              time.Time
}

func (a Account) RecordID() int64 { return a.ID }

func (a Account) SearchFields() []string {
	return []string{a.PagerNumber, a.Email, a.FirstName, a.LastName}
}

// DeviceState classifies an account by its registered device.
type DeviceState string

const (
	DeviceLoggedIn  DeviceState = "LOGGED_IN"
	DeviceLoggedOff DeviceState = "LOGGED_OFF"
	DevicePagerOff  DeviceState = "PAGER_OFF"
)

// AccountStatus is an account joined with its (optional) device.
type AccountStatus struct {
	Account
	HasDevice bool
	PagerOn   bool
}

func (s AccountStatus) State() DeviceState {
	switch {
	case !s.HasDevice:
		return DeviceLoggedOff
	case !s.PagerOn:
		return DevicePagerOff
	default:
		return DeviceLoggedIn
	}
}
