package domain

// Principal is the authenticated caller of a request.
type Principal struct {
	ID        string
	Email     string
	Name      string
	Role      Role
	CompanyID string
}

// RequireCompany fails with ErrNoCompany when the caller is not attached to a company.
func (p Principal) RequireCompany() error {
	if p.ID == "" {
		return ErrUnauthenticated
	}
	if p.CompanyID == "" {
		return ErrNoCompany
	}
	return nil
}

func (p Principal) IsManager() bool {
	return p.Role == RoleOwner || p.Role == RoleAdmin
}
