package dto

type Contact struct {
	ID          int64    `json:"id"`
	OPID        string   `json:"opid"`
	FirstName   string   `json:"firstName"`
	LastName    string   `json:"lastName"`
	Email       string   `json:"email"`
	PhoneNumber string   `json:"phoneNumber"`
	Status      string   `json:"status"`
	Groups      []string `json:"groups"`
}

type Contacts struct {
	Contacts []Contact `json:"contacts"`
	Metadata Metadata  `json:"metadata"`
}

type ContactCreate struct {
	OPID        string `json:"opid" binding:"required"`
	FirstName   string `json:"firstName" binding:"required"`
	LastName    string `json:"lastName" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required"`
	PhoneNumber string `json:"phoneNumber" binding:"required,e164"`
}

type ContactCreateResponse struct {
	Contact IDResponse `json:"contact"`
}

type ContactsStatusTypes struct {
	LoggedIn  []string `json:"loggedIn"`
	LoggedOff []string `json:"loggedOff"`
	PagerOff  []string `json:"pagerOff"`
}

type ContactsStatus struct {
	ContactsStatus ContactsStatusTypes `json:"contactsStatus"`
	Metadata       OffsetMetadata      `json:"metadata"`
}
