// Package session holds the navigation state of the single logged-in client:
// the current screen, user and selected account. Navigation is a finite state
// machine; every transition is synchronous state replacement.
package session

import (
	"sync"

	"github.com/google/uuid"

	apperrors "comptable/internal/errors"
	"comptable/internal/logger"
)

// Screen is a navigation state.
type Screen int

const (
	ScreenFirst Screen = iota
	ScreenLogin
	ScreenHome
	ScreenAccountDetail
)

func (s Screen) String() string {
	switch s {
	case ScreenLogin:
		return "login"
	case ScreenHome:
		return "home"
	case ScreenAccountDetail:
		return "account_detail"
	default:
		return "first_screen"
	}
}

// MarshalText renders the screen name in JSON.
func (s Screen) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// State is an immutable snapshot of a Session.
type State struct {
	ID        string `json:"id"`
	Screen    Screen `json:"screen"`
	UserID    *uint  `json:"user_id,omitempty"`
	AccountID *uint  `json:"account_id,omitempty"`
	Revision  uint64 `json:"revision"`
	LastError string `json:"last_error,omitempty"`
}

// Session is the explicit state store shared by the presentation layer.
// It is safe for concurrent use.
type Session struct {
	mu        sync.Mutex
	id        string
	screen    Screen
	userID    *uint
	accountID *uint
	revision  uint64
	lastErr   error
}

// New returns a session on the first screen.
func New() *Session {
	return &Session{id: newID(), screen: ScreenFirst}
}

func newID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// Snapshot returns the current state.
func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := State{
		ID:        s.id,
		Screen:    s.screen,
		UserID:    copyID(s.userID),
		AccountID: copyID(s.accountID),
		Revision:  s.revision,
	}
	if s.lastErr != nil {
		st.LastError = s.lastErr.Error()
	}
	return st
}

// ID returns the current session id. It changes on every logout.
func (s *Session) ID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id
}

// Start leaves the first screen for the login screen.
func (s *Session) Start() error {
	return s.transition("start", func() bool {
		if s.screen != ScreenFirst {
			return false
		}
		s.screen = ScreenLogin
		return true
	})
}

// Authenticated records a successful login and shows the home screen.
func (s *Session) Authenticated(userID uint) error {
	return s.enterHome("authenticate", userID)
}

// SignedUp records a successful signup; the new user is logged in.
func (s *Session) SignedUp(userID uint) error {
	return s.enterHome("signup", userID)
}

func (s *Session) enterHome(event string, userID uint) error {
	return s.transition(event, func() bool {
		if s.screen != ScreenLogin {
			return false
		}
		s.screen = ScreenHome
		s.userID = &userID
		s.accountID = nil
		return true
	})
}

// SelectAccount opens the detail screen of an account.
func (s *Session) SelectAccount(accountID uint) error {
	return s.transition("select_account", func() bool {
		if s.screen != ScreenHome {
			return false
		}
		s.screen = ScreenAccountDetail
		s.accountID = &accountID
		return true
	})
}

// Back returns from the account detail screen to the home screen.
func (s *Session) Back() error {
	return s.transition("back", func() bool {
		if s.screen != ScreenAccountDetail {
			return false
		}
		s.screen = ScreenHome
		s.accountID = nil
		return true
	})
}

// Logout returns to the login screen from any screen, clears the user and
// account, and rotates the session id.
func (s *Session) Logout() {
	_ = s.transition("logout", func() bool {
		s.screen = ScreenLogin
		s.userID = nil
		s.accountID = nil
		s.lastErr = nil
		s.id = newID()
		return true
	})
}

// Touch bumps the revision so views know to reload after a write.
func (s *Session) Touch() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revision++
	return s.revision
}

// ReportError stores err as the error to show until dismissed.
func (s *Session) ReportError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = err
}

// LastError returns the stored error, if any.
func (s *Session) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// DismissError clears the stored error.
func (s *Session) DismissError() {
	s.ReportError(nil)
}

func (s *Session) transition(event string, apply func() bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	from := s.screen
	if !apply() {
		logger.Named("session").Warnw("rejected navigation", "event", event, "screen", from.String())
		return apperrors.WithMessage(apperrors.ErrInvalidTransition,
			"cannot "+event+" from the "+from.String()+" screen")
	}
	logger.Named("session").Debugw("navigated", "event", event, "from", from.String(), "to", s.screen.String())
	return nil
}

func copyID(id *uint) *uint {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}
