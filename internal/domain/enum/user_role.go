package enum

// UserRole distinguishes tenant administrators from store operators
type UserRole string

const (
	// UserRoleAdmin may manage stores, view cross-store reports and all data
	UserRoleAdmin UserRole = "admin"
	// UserRoleStore is scoped to a single store's data
	UserRoleStore UserRole = "store"
)

// IsValid checks if the role is a known UserRole
func (r UserRole) IsValid() bool {
	return r == UserRoleAdmin || r == UserRoleStore
}

func (r UserRole) String() string {
	return string(r)
}
