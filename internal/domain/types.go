package domain

// ListQuery carries the list endpoint inputs shared by every cursor paged resource.
type ListQuery struct {
	Search        string
	NextPageToken string
	Limit         int
}

// OffsetQuery carries inputs of the offset paged endpoints.
type OffsetQuery struct {
	Search string
	Offset int
	Limit  int
}

// RequestContext carries the authenticated caller scope.
type RequestContext struct {
	EnterpriseID int64 `json:"enterpriseId"`
	DispatcherID int64 `json:"dispatcherId"`
}
