package model

// Principal the authenticated actor of a request
type Principal struct {
	ID      string
	IsAdmin bool
}

// NewPrincipal builds a Principal from a user id and role
func NewPrincipal(userID, role string) Principal {
	return Principal{ID: userID, IsAdmin: role == RoleAdmin}
}

// CanView reports whether the principal may see resources owned by ownerID
func (p Principal) CanView(ownerID string) bool {
	return p.IsAdmin || p.ID == ownerID
}
