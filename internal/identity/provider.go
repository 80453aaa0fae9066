// Package identity abstracts the identity provider the planner session is
// parameterized by. The provider is a black box producing a user record and
// login/logout transitions; the session subscribes to those transitions to
// drive its attach/detach lifecycle.
package identity

// Listener is notified whenever the current identity changes. loggedIn is
// false when the transition was a logout, in which case user is zero.
type Listener func(user User, loggedIn bool)

// User mirrors the record the identity provider produces.
type User struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar,omitempty"`
}

// Provider exposes the current identity and its transitions.
type Provider interface {
	// Current returns the signed-in user, if any.
	Current() (User, bool)

	// Login establishes the given user as the current identity.
	Login(user User) error

	// Logout clears the current identity.
	Logout() error

	// OnChange registers a listener for identity transitions. The returned
	// function removes the listener.
	OnChange(l Listener) func()
}
