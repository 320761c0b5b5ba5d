package models

// RoleCode is the numeric user type stored in the users table.
type RoleCode int

const (
	RoleStudent RoleCode = 1
	RoleStaff   RoleCode = 2
)

// Description returns the display name for a role code.
func (r RoleCode) Description() string {
	switch r {
	case RoleStudent:
		return "Student"
	case RoleStaff:
		return "Staff"
	default:
		return "Unknown"
	}
}

// User represents an application user. The password is stored and compared in
// plaintext, mirroring the system this replaces; it is a documented weakness,
// not a feature.
type User struct {
	ID       int      `db:"user_id" json:"id"`
	Name     string   `db:"name" json:"name"`
	Username string   `db:"username" json:"username"`
	Password string   `db:"password" json:"password,omitempty"`
	TypeID   RoleCode `db:"type_id" json:"typeId"`
}

// UserInfo is the password-free projection returned by auth endpoints.
type UserInfo struct {
	ID       int      `json:"id"`
	Name     string   `json:"name"`
	Username string   `json:"username"`
	TypeID   RoleCode `json:"typeId"`
}

// Info strips the secret from a user record.
func (u *User) Info() UserInfo {
	return UserInfo{ID: u.ID, Name: u.Name, Username: u.Username, TypeID: u.TypeID}
}
