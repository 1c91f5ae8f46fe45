package role

// Role is the access level stored on a user and carried in the session token.
type Role string

const (
	SuperAdmin Role = "SUPERADMIN"
	Admin      Role = "ADMIN"
	Editor     Role = "EDITOR"
)

// Parse maps a raw string onto a known role.
func Parse(s string) (Role, bool) {
	r := Role(s)
	return r, r.Valid()
}

func (r Role) Valid() bool {
	switch r {
	case SuperAdmin, Admin, Editor:
		return true
	default:
		return false
	}
}

func (r Role) String() string {
	return string(r)
}

// CanManageUsers governs listing, creating, updating and deleting users.
func CanManageUsers(r Role) bool {
	switch r {
	case SuperAdmin:
		return true
	case Admin, Editor:
		return false
	default:
		return false
	}
}

// CanDelete governs destructive operations on content.
func CanDelete(r Role) bool {
	switch r {
	case SuperAdmin, Admin:
		return true
	case Editor:
		return false
	default:
		return false
	}
}

// CanEdit governs create and update of content.
func CanEdit(r Role) bool {
	switch r {
	case SuperAdmin, Admin, Editor:
		return true
	default:
		return false
	}
}

func EditorRoles() []Role {
	return []Role{SuperAdmin, Admin, Editor}
}

func DeleterRoles() []Role {
	return []Role{SuperAdmin, Admin}
}

// Has reports whether r is a member of allowed.
func Has(allowed []Role, r Role) bool {
	for _, a := range allowed {
		if a == r {
			return true
		}
	}
	return false
}
