package domain

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User is the session copy of an authenticated account. The password is never retained.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	FullName string `json:"full_name"`
}

// IsAdmin reports whether the user carries the admin role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// ValidRole reports whether role is one the dashboard understands.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleUser
}

// RemoteUser is a record of the remote /users collection, password included.
type RemoteUser struct {
	ID       int64  `json:"id" bson:"_id"`
	Username string `json:"username" bson:"username"`
	Password string `json:"password" bson:"password"`
	Role     string `json:"role" bson:"role"`
	FullName string `json:"full_name" bson:"full_name"`
}

// SessionUser strips the password off a remote record.
func (r RemoteUser) SessionUser() *User {
	return &User{
		ID:       r.ID,
		Username: r.Username,
		Role:     r.Role,
		FullName: r.FullName,
	}
}
