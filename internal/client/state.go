package client

import "time"

// Status is the session status shown to the user.
type Status int

const (
	// StatusLoading is the initial status, before the stored credential has
	// been checked.
	StatusLoading Status = iota
	StatusUnauthenticated
	StatusAuthenticated
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusUnauthenticated:
		return "unauthenticated"
	case StatusAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// User is the public record returned by the API.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Avatar    string    `json:"avatar,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// State is a snapshot of the session. User is nil unless Status is
// StatusAuthenticated and the identity has been loaded.
type State struct {
	Status Status
	Token  string
	User   *User
}

type ActionKind int

const (
	ActionStart ActionKind = iota
	ActionUserLoaded
	ActionAuthError
	ActionLoginSucceeded
	ActionLoginFailed
	ActionRegisterSucceeded
	ActionRegisterFailed
	ActionLogout
)

// Action is an event fed to Reduce. Token and User are set only for the
// kinds that carry them.
type Action struct {
	Kind  ActionKind
	Token string
	User  *User
}

// Reduce returns the state that follows s after a. It has no side effects;
// persisting the credential is the Store's job.
func Reduce(s State, a Action) State {
	switch a.Kind {
	case ActionStart:
		return State{Status: StatusLoading, Token: a.Token}
	case ActionUserLoaded:
		return State{Status: StatusAuthenticated, Token: s.Token, User: a.User}
	case ActionLoginSucceeded, ActionRegisterSucceeded:
		return State{Status: StatusAuthenticated, Token: a.Token, User: a.User}
	case ActionAuthError, ActionLoginFailed, ActionRegisterFailed, ActionLogout:
		return State{Status: StatusUnauthenticated}
	default:
		return s
	}
}

// supersedesReload reports whether a invalidates identity reloads already in flight.
func supersedesReload(k ActionKind) bool {
	switch k {
	case ActionStart, ActionLoginSucceeded, ActionLoginFailed,
		ActionRegisterSucceeded, ActionRegisterFailed, ActionLogout:
		return true
	default:
		return false
	}
}
