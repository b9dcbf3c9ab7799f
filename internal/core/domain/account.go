package domain

import "time"

// Role is the authorization level of an account. It never changes after
// the account is created.
type Role string

const (
	RoleContractor Role = "contractor"
	RoleManager    Role = "manager"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleContractor || r == RoleManager
}

// Account models a registered user.
type Account struct {
	ID                 string    `json:"id"`
	Username           string    `json:"username"`
	Email              string    `json:"email"`
	PasswordHash       string    `json:"-"`
	SecurityAnswerHash string    `json:"-"`
	Role               Role      `json:"role"`
	CreatedAt          time.Time `json:"created_at"`
}

// Actor is the verified identity behind a request. It is built from token
// claims and passed explicitly into every service call.
type Actor struct {
	AccountID string
	Username  string
	Role      Role
}

func (a Actor) IsManager() bool    { return a.Role == RoleManager }
func (a Actor) IsContractor() bool { return a.Role == RoleContractor }
