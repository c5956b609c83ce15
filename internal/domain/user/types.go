package user

type Role string

const (
	RoleParent     Role = "parent"
	RoleInstructor Role = "instructor"
	RoleAdmin      Role = "admin"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleParent, RoleInstructor, RoleAdmin:
		return true
	default:
		return false
	}
}

func NewRole(s string) (Role, error) {
	role := Role(s)
	if !role.IsValid() {
		return "", ErrInvalidRole
	}
	return role, nil
}
