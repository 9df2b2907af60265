// Package session implements the client-side authentication lifecycle as an
// explicit state machine: a pure reducer over a closed set of events, owned
// by a single Manager. A fresh session starts Unknown; callers must not
// render protected views or redirect to login until the state settles, which
// avoids flashing the login screen at an already-authenticated user while
// the verification call is in flight.
package session

import (
	"context"
	"sync"

	"github.com/shiftline/staff-scheduler/pkg/client"
)

// State is the bootstrap state. Unknown is the initial state; it is left
// exactly once, by the first USER_LOADED or AUTH_ERROR/LOGIN_FAIL event.
type State int

const (
	Unknown State = iota
	Authenticated
	Unauthenticated
)

func (s State) String() string {
	switch s {
	case Authenticated:
		return "authenticated"
	case Unauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

// EventType enumerates the closed action set of the reducer.
type EventType string

const (
	UserLoaded      EventType = "USER_LOADED"
	LoginSuccess    EventType = "LOGIN_SUCCESS"
	RegisterSuccess EventType = "REGISTER_SUCCESS"
	AuthError       EventType = "AUTH_ERROR"
	LoginFail       EventType = "LOGIN_FAIL"
	Logout          EventType = "LOGOUT"
)

// Event is one reducer input.
type Event struct {
	Type  EventType
	Token string
	User  *client.User
	Err   error
}

// Snapshot is the immutable view of the session at one instant.
type Snapshot struct {
	State State
	Token string
	User  *client.User
	Err   error
}

// Reduce is the pure transition function. It never touches storage or the
// network; the Manager performs those effects around it.
//
// LOGIN_SUCCESS and REGISTER_SUCCESS record the token but deliberately do
// not mark the session Authenticated: the user object must always be
// server-confirmed, so only the USER_LOADED that follows a whoami call
// completes the transition.
func Reduce(s Snapshot, e Event) Snapshot {
	switch e.Type {
	case UserLoaded:
		s.State = Authenticated
		s.User = e.User
		s.Err = nil
	case LoginSuccess, RegisterSuccess:
		s.Token = e.Token
		s.User = nil
		s.Err = nil
	case AuthError, LoginFail:
		s.State = Unauthenticated
		s.Token = ""
		s.User = nil
		s.Err = e.Err
	case Logout:
		s.State = Unauthenticated
		s.Token = ""
		s.User = nil
		s.Err = nil
	}
	return s
}

// API is the slice of the scheduling client the Manager needs.
type API interface {
	Login(ctx context.Context, email, password string) (string, error)
	Register(ctx context.Context, in client.RegisterInput) (string, error)
	WhoAmI(ctx context.Context, token string) (*client.User, error)
}

// Manager owns the snapshot and runs the effects around the reducer.
type Manager struct {
	api   API
	store client.TokenStore

	mu   sync.Mutex
	snap Snapshot
}

func NewManager(api API, store client.TokenStore) *Manager {
	return &Manager{api: api, store: store, snap: Snapshot{State: Unknown}}
}

// Current returns the snapshot. Callers gate protected rendering on
// Current().State != Unknown.
func (m *Manager) Current() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snap
}

// Bootstrap runs the application-start sequence: load the persisted token,
// confirm it with a whoami call, and settle the state. Any failure
// (missing token, expired token, deleted user, network error) demotes the
// session to Unauthenticated and discards the stored token; bootstrap never
// surfaces an error to the caller.
func (m *Manager) Bootstrap(ctx context.Context) {
	tkn, err := m.store.Load()
	if err != nil || tkn == "" {
		m.dispatch(Event{Type: AuthError, Err: err})
		return
	}

	// Hydrate the token before the verification call, mirroring how the
	// persisted credential pre-populates initial client state.
	m.mu.Lock()
	m.snap.Token = tkn
	m.mu.Unlock()

	user, err := m.api.WhoAmI(ctx, tkn)
	if err != nil {
		_ = m.store.Clear()
		m.dispatch(Event{Type: AuthError, Err: err})
		return
	}

	m.dispatch(Event{Type: UserLoaded, User: user})
}

// Login authenticates, persists the token, and completes the transition to
// Authenticated only after the confirming whoami succeeds.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	tkn, err := m.api.Login(ctx, email, password)
	if err != nil {
		_ = m.store.Clear()
		m.dispatch(Event{Type: LoginFail, Err: err})
		return err
	}
	return m.confirm(ctx, tkn, LoginSuccess)
}

// Register creates the account and then follows the same confirm path as
// Login.
func (m *Manager) Register(ctx context.Context, in client.RegisterInput) error {
	tkn, err := m.api.Register(ctx, in)
	if err != nil {
		m.dispatch(Event{Type: AuthError, Err: err})
		return err
	}
	return m.confirm(ctx, tkn, RegisterSuccess)
}

// Logout discards the persisted token and resets the session. No server
// call is made: tokens are stateless, so logout is purely local.
func (m *Manager) Logout() {
	_ = m.store.Clear()
	m.dispatch(Event{Type: Logout})
}

func (m *Manager) confirm(ctx context.Context, tkn string, success EventType) error {
	if err := m.store.Save(tkn); err != nil {
		m.dispatch(Event{Type: AuthError, Err: err})
		return err
	}
	m.dispatch(Event{Type: success, Token: tkn})

	user, err := m.api.WhoAmI(ctx, tkn)
	if err != nil {
		_ = m.store.Clear()
		m.dispatch(Event{Type: AuthError, Err: err})
		return err
	}
	m.dispatch(Event{Type: UserLoaded, User: user})
	return nil
}

func (m *Manager) dispatch(e Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snap = Reduce(m.snap, e)
}
