package models

// Enterprise holds the tenant level settings read by the API.
type Enterprise struct {
	ID              int64
	SuperAdminEmail string
	LogoutTimeout   int
}
