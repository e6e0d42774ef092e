package auth

import (
	"net/mail"
	"strings"

	"github.com/google/uuid"
)

// record is a fixture user with its plaintext password. A mock
// stand-in only; nothing here is fit for a real deployment.
type record struct {
	user     User
	password string
}

// Local is a mock identity provider backed by a static set of user
// records. It satisfies Provider.
type Local struct {
	records []record
	session *Session
}

// NewLocal creates a provider with the default demo users.
func NewLocal() *Local {
	return &Local{
		records: []record{
			{user: User{ID: 1, Username: "demo", Email: "demo@example.com"}, password: "demo1234"},
			{user: User{ID: 2, Username: "tester", Email: "tester@example.com"}, password: "test1234"},
		},
	}
}

// CurrentUser returns the logged-in user, or nil.
func (l *Local) CurrentUser() *User {
	if l.session == nil {
		return nil
	}
	return l.session.User
}

// CurrentSession returns the active session, or nil.
func (l *Local) CurrentSession() *Session {
	return l.session
}

// Login matches username and password against the fixture records and
// opens a session on success.
func (l *Local) Login(username, password string) bool {
	for i := range l.records {
		r := &l.records[i]
		if r.user.Username == username && r.password == password {
			user := r.user
			l.session = &Session{Token: uuid.NewString(), User: &user}
			return true
		}
	}
	return false
}

// Register adds a new user and logs them in. Duplicate usernames or
// emails and malformed emails are rejected.
func (l *Local) Register(username, password, email string) bool {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return false
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return false
	}
	for _, r := range l.records {
		if r.user.Username == username || r.user.Email == email {
			return false
		}
	}

	var maxID int64
	for _, r := range l.records {
		if r.user.ID > maxID {
			maxID = r.user.ID
		}
	}
	user := User{ID: maxID + 1, Username: username, Email: email}
	l.records = append(l.records, record{user: user, password: password})
	l.session = &Session{Token: uuid.NewString(), User: &user}
	return true
}

// Logout closes the session.
func (l *Local) Logout() {
	l.session = nil
}
