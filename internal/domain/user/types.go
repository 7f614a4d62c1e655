package user

type Role string

const (
	RoleDriver Role = "driver"
	RoleAdmin  Role = "admin"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleDriver, RoleAdmin:
		return true
	default:
		return false
	}
}

func (r Role) IsElevated() bool {
	return r == RoleAdmin
}

func NewRole(s string) (Role, error) {
	role := Role(s)
	if !role.IsValid() {
		return "", ErrInvalidRole
	}
	return role, nil
}
