package domain

// ID is used across domain entities.
type ID int64

// Roles recognized by the authorization layer.
const (
	RoleCustomer = "customer"
	RoleTraveler = "traveler"
	RoleAdmin    = "admin"
)

// RequestContext carries authenticated user info when available.
type RequestContext struct {
	UserID ID     `json:"userId"`
	Role   string `json:"role"`
}
