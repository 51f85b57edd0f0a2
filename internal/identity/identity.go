// Package identity is a stand-in for the hosted sign-in widget. It decides
// when a sign-in should redirect to the dashboard.
package identity

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// Mode selects the widget form.
type Mode string

const (
	ModeSignIn Mode = "sign-in"
	ModeSignUp Mode = "sign-up"
)

// ParseMode parses a widget mode, defaulting to sign-in.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeSignIn:
		return ModeSignIn, nil
	case ModeSignUp:
		return ModeSignUp, nil
	default:
		return "", fmt.Errorf("unknown identity mode %q", s)
	}
}

// DashboardPath is where a fresh sign-in lands.
const DashboardPath = "/dashboard"

// User is the signed-in principal.
type User struct {
	ID    string
	Name  string
	Email string
}

// Guard tracks the user observable and reports absent to present
// transitions while the modal is open.
type Guard struct {
	mu          sync.Mutex
	initialized bool
	wasSignedIn bool
	open        bool
}

// NewGuard returns a guard for an open modal.
func NewGuard() *Guard {
	return &Guard{open: true}
}

// SetOpen opens or closes the modal.
func (g *Guard) SetOpen(open bool) {
	g.mu.Lock()
	g.open = open
	g.mu.Unlock()
}

// Observe records the current user and reports whether the host should
// redirect. A user already present on the first observation never
// redirects.
func (g *Guard) Observe(user *User) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	present := user != nil
	if !g.initialized {
		g.initialized = true
		g.wasSignedIn = present
		return false
	}

	redirect := present && !g.wasSignedIn && g.open
	g.wasSignedIn = present
	return redirect
}

// Watch feeds users into guard until ctx is done or users closes, calling
// onRedirect on every transition that should redirect.
func Watch(ctx context.Context, guard *Guard, users <-chan *User, onRedirect func(*User)) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case user, ok := <-users:
			if !ok {
				return nil
			}
			if guard.Observe(user) && onRedirect != nil {
				onRedirect(user)
			}
		}
	}
}
