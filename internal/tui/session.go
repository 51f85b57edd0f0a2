package tui

import (
	"context"

	"github.com/hirepath/showcase/internal/identity"
)

// sessionBuffer bounds sign-in toggles queued ahead of the watcher.
const sessionBuffer = 16

// RedirectMsg asks the view to navigate after a fresh sign-in.
type RedirectMsg struct {
	User *identity.User
	Path string
}

// session is the current-user observable. The view publishes every change;
// a watcher feeds them through the identity guard and reports redirects.
type session struct {
	mode  identity.Mode
	guard *identity.Guard
	users chan *identity.User
}

func newSession(mode identity.Mode) *session {
	if mode == "" {
		mode = identity.ModeSignIn
	}
	s := &session{
		mode:  mode,
		guard: identity.NewGuard(),
		users: make(chan *identity.User, sessionBuffer),
	}
	// Nobody is signed in when the view mounts.
	s.users <- nil
	return s
}

// publish hands the current user to the watcher, in order.
func (s *session) publish(user *identity.User) {
	s.users <- user
}

// setModalOpen tracks whether the sign-in prompt is on screen. Only sign-ins
// made while it is open redirect.
func (s *session) setModalOpen(open bool) {
	s.guard.SetOpen(open)
}

// watch runs until ctx is done, pushing a RedirectMsg into f for every
// sign-in that should navigate.
func (s *session) watch(ctx context.Context, f *feed) error {
	return identity.Watch(ctx, s.guard, s.users, func(user *identity.User) {
		f.push(RedirectMsg{User: user, Path: identity.DashboardPath})
	})
}

func (s *session) verb() string {
	if s.mode == identity.ModeSignUp {
		return "Signed up"
	}
	return "Signed in"
}
