package client

// Role is the access tier embedded in the token.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// Account is the public account view the server returns alongside a token.
type Account struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
}

// Session is the client's capability value: a nil *Session is a guest, a
// non-nil one is an authenticated account with a role. View selection goes
// through the Can* helpers; the server re-checks every write regardless.
type Session struct {
	Token string
	User  Account
}

func (s *Session) Authenticated() bool {
	return s != nil && s.Token != ""
}

// CanPurchase reports whether the purchase controls should be offered.
func (s *Session) CanPurchase() bool {
	return s.Authenticated()
}

// CanManageCatalog reports whether the management console should be offered.
func (s *Session) CanManageCatalog() bool {
	return s.Authenticated() && s.User.Role == RoleAdmin
}
