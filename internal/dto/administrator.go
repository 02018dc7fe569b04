package dto

type AdministratorPermissions struct {
	CreateEscalation       bool `json:"createEscalation"`
	GroupCreate            bool `json:"groupCreate"`
	ContactDelete          bool `json:"contactDelete"`
	ContactEdit            bool `json:"contactEdit"`
	ContactAdd             bool `json:"contactAdd"`
	ContactToGroup         bool `json:"contactToGroup"`
	RemoveContactFromGroup bool `json:"removeContactFromGroup"`
	DeleteGroup            bool `json:"deleteGroup"`
	EditGroup              bool `json:"editGroup"`
	EditEscalationGroup    bool `json:"editEscalationGroup"`
	ViewSchedule           bool `json:"viewSchedule"`
	EditSchedule           bool `json:"editSchedule"`
	ViewReports            bool `json:"viewReports"`
}

// AdministratorPermissionsUpdate only touches the flags present in the body.
type AdministratorPermissionsUpdate struct {
	CreateEscalation       *bool `json:"createEscalation"`
	GroupCreate            *bool `json:"groupCreate"`
	ContactDelete          *bool `json:"contactDelete"`
	ContactEdit            *bool `json:"contactEdit"`
	ContactAdd             *bool `json:"contactAdd"`
	ContactToGroup         *bool `json:"contactToGroup"`
	RemoveContactFromGroup *bool `json:"removeContactFromGroup"`
	DeleteGroup            *bool `json:"deleteGroup"`
	EditGroup              *bool `json:"editGroup"`
	EditEscalationGroup    *bool `json:"editEscalationGroup"`
	ViewSchedule           *bool `json:"viewSchedule"`
	EditSchedule           *bool `json:"editSchedule"`
	ViewReports            *bool `json:"viewReports"`
}

type Administrator struct {
	ID          int64                    `json:"id"`
	FirstName   string                   `json:"firstName"`
	LastName    string                   `json:"lastName"`
	Email       string                   `json:"email"`
	PhoneNumber string                   `json:"phoneNumber"`
	Groups      []string                 `json:"groups"`
	SuperAdmin  bool                     `json:"superAdmin"`
	Permissions AdministratorPermissions `json:"permissions"`
}

type Administrators struct {
	Administrators []Administrator `json:"administrators"`
	Metadata       Metadata        `json:"metadata"`
}

type AdministratorCreate struct {
	Password    string                   `json:"password" binding:"required"`
	FirstName   string                   `json:"firstName" binding:"required"`
	LastName    string                   `json:"lastName" binding:"required"`
	Email       string                   `json:"email" binding:"required,email"`
	PhoneNumber string                   `json:"phoneNumber" binding:"required,e164"`
	Groups      []int64                  `json:"groups"`
	SuperAdmin  bool                     `json:"superAdmin"`
	Permissions AdministratorPermissions `json:"permissions"`
}

type AdministratorUpdate struct {
	Password    *string                         `json:"password" binding:"omitempty,min=1"`
	FirstName   *string                         `json:"firstName"`
	LastName    *string                         `json:"lastName"`
	PhoneNumber *string                         `json:"phoneNumber" binding:"omitempty,e164"`
	Groups      []int64                         `json:"groups"`
	SuperAdmin  *bool                           `json:"superAdmin"`
	Permissions *AdministratorPermissionsUpdate `json:"permissions"`
}

type AdministratorGroup struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	Administrators []int64 `json:"administrators"`
}

type AdministratorGroups struct {
	Groups   []AdministratorGroup `json:"groups"`
	Metadata Metadata             `json:"metadata"`
}

// AdministratorGroupWrite is the body of both POST and PUT.
type AdministratorGroupWrite struct {
	Name           string  `json:"name" binding:"required"`
	Administrators []int64 `json:"administrators"`
}
