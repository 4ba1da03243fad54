package domain

// ID is used across domain entities.
type ID int64

// RequestContext carries the authenticated user and tenant for a request.
type RequestContext struct {
	UserID ID     `json:"userId"`
	OrgID  ID     `json:"orgId"`
	Role   string `json:"role"`
}
