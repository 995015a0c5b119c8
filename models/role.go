package models

import "fmt"

// Role identifies what an authenticated user may do. Values match the
// role_id stored on the user record.
type Role int

const (
	RoleAdmin   Role = 1
	RoleManager Role = 2
	RoleWaiter  Role = 3
	RoleCashier Role = 4
)

var roleNames = map[Role]string{
	RoleAdmin:   "Admin",
	RoleManager: "Manager",
	RoleWaiter:  "Waiter",
	RoleCashier: "Cashier",
}

func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return fmt.Sprintf("Role(%d)", int(r))
}

// Valid reports whether r is one of the four known roles.
func (r Role) Valid() bool {
	_, ok := roleNames[r]
	return ok
}

// Actor is the authenticated caller of an operation.
type Actor struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	Role     Role   `json:"role_id"`
}
