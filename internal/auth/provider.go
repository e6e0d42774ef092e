package auth

// User is an authenticated user record. Collections (todos, workouts,
// notes) are not carried on the user; they live in the store under
// their own typed slots.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Session is an active login. The token has no server to talk to; it
// exists so callers can tell two logins apart.
type Session struct {
	Token string
	User  *User
}

// Provider supplies the current user, or nil when nobody is logged in.
// It is the only gate on whether mutations are allowed.
type Provider interface {
	CurrentUser() *User
}
