package identity

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"scholarsync/internal/errors"
)

// LocalProvider implements Provider over a single session file, standing in
// for a real identity service. The file holds the last signed-in user so a
// short-lived process can resume the session.
type LocalProvider struct {
	sessionFile string

	mu        sync.Mutex
	user      User
	loggedIn  bool
	listeners map[int]Listener
	nextID    int
}

// NewLocalProvider creates a provider persisting the session at sessionFile.
// An existing session file is loaded eagerly; a missing or unreadable file
// just means nobody is signed in.
func NewLocalProvider(sessionFile string) *LocalProvider {
	p := &LocalProvider{
		sessionFile: sessionFile,
		listeners:   make(map[int]Listener),
	}

	raw, err := os.ReadFile(sessionFile)
	if err == nil {
		var user User
		if json.Unmarshal(raw, &user) == nil && user.ID != "" {
			p.user = user
			p.loggedIn = true
		}
	}
	return p
}

// Current returns the signed-in user, if any
func (p *LocalProvider) Current() (User, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.user, p.loggedIn
}

// Login establishes user as the current identity and persists the session
func (p *LocalProvider) Login(user User) error {
	if user.ID == "" {
		return errors.NewValidationError("user id is required to log in", nil)
	}

	p.mu.Lock()
	p.user = user
	p.loggedIn = true
	listeners := p.snapshotListeners()
	p.mu.Unlock()

	if err := p.persist(&user); err != nil {
		return err
	}
	for _, l := range listeners {
		l(user, true)
	}
	return nil
}

// Logout clears the current identity and removes the persisted session
func (p *LocalProvider) Logout() error {
	p.mu.Lock()
	p.user = User{}
	p.loggedIn = false
	listeners := p.snapshotListeners()
	p.mu.Unlock()

	if err := p.persist(nil); err != nil {
		return err
	}
	for _, l := range listeners {
		l(User{}, false)
	}
	return nil
}

// OnChange registers a listener for identity transitions
func (p *LocalProvider) OnChange(l Listener) func() {
	p.mu.Lock()
	defer p.mu.Unlock()
	id := p.nextID
	p.nextID++
	p.listeners[id] = l
	return func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		delete(p.listeners, id)
	}
}

// snapshotListeners copies the listener set; callers must hold p.mu
func (p *LocalProvider) snapshotListeners() []Listener {
	listeners := make([]Listener, 0, len(p.listeners))
	for _, l := range p.listeners {
		listeners = append(listeners, l)
	}
	return listeners
}

// persist writes the session file, or removes it when user is nil
func (p *LocalProvider) persist(user *User) error {
	if user == nil {
		if err := os.Remove(p.sessionFile); err != nil && !os.IsNotExist(err) {
			return errors.WrapError(err, errors.ErrorTypeValidation, "failed to clear session")
		}
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(p.sessionFile), 0755); err != nil {
		return errors.WrapError(err, errors.ErrorTypeValidation, "failed to create session directory")
	}
	raw, err := json.Marshal(user)
	if err != nil {
		return errors.WrapError(err, errors.ErrorTypeValidation, "failed to encode session")
	}
	if err := os.WriteFile(p.sessionFile, raw, 0600); err != nil {
		return errors.WrapError(err, errors.ErrorTypeValidation, "failed to write session")
	}
	return nil
}

var _ Provider = (*LocalProvider)(nil)
