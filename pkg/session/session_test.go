package session

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/shiftline/staff-scheduler/pkg/client"
)

type stubAPI struct {
	loginFn    func(email, password string) (string, error)
	registerFn func(in client.RegisterInput) (string, error)
	whoamiFn   func(token string) (*client.User, error)
	whoamiCnt  int
}

func (s *stubAPI) Login(_ context.Context, email, password string) (string, error) {
	return s.loginFn(email, password)
}

func (s *stubAPI) Register(_ context.Context, in client.RegisterInput) (string, error) {
	return s.registerFn(in)
}

func (s *stubAPI) WhoAmI(_ context.Context, token string) (*client.User, error) {
	s.whoamiCnt++
	return s.whoamiFn(token)
}

func tempStore(t *testing.T) *client.FileTokenStore {
	t.Helper()
	return client.NewFileTokenStoreAt(filepath.Join(t.TempDir(), "token"))
}

func TestReduce_Pure(t *testing.T) {
	before := Snapshot{State: Unknown}
	_ = Reduce(before, Event{Type: UserLoaded, User: &client.User{Name: "Ana"}})
	if before.State != Unknown || before.User != nil {
		t.Fatalf("Reduce mutated its input: %+v", before)
	}
}

func TestReduce_Transitions(t *testing.T) {
	s := Snapshot{State: Unknown}

	// LOGIN_SUCCESS records the token but does not authenticate yet.
	s = Reduce(s, Event{Type: LoginSuccess, Token: "t1"})
	if s.State != Unknown || s.Token != "t1" {
		t.Fatalf("after LOGIN_SUCCESS: %+v", s)
	}

	// Only the server-confirmed USER_LOADED authenticates.
	s = Reduce(s, Event{Type: UserLoaded, User: &client.User{Name: "Ana"}})
	if s.State != Authenticated || s.User == nil {
		t.Fatalf("after USER_LOADED: %+v", s)
	}

	s = Reduce(s, Event{Type: Logout})
	if s.State != Unauthenticated || s.Token != "" || s.User != nil {
		t.Fatalf("after LOGOUT: %+v", s)
	}

	s = Reduce(s, Event{Type: AuthError, Err: errors.New("boom")})
	if s.State != Unauthenticated || s.Err == nil {
		t.Fatalf("after AUTH_ERROR: %+v", s)
	}
}

func TestManager_StartsUnknown(t *testing.T) {
	m := NewManager(&stubAPI{}, tempStore(t))
	if got := m.Current().State; got != Unknown {
		t.Fatalf("expected Unknown before bootstrap, got %v", got)
	}
}

func TestManager_Bootstrap_NoToken(t *testing.T) {
	api := &stubAPI{whoamiFn: func(string) (*client.User, error) {
		return nil, errors.New("should not be called")
	}}
	m := NewManager(api, tempStore(t))

	m.Bootstrap(context.Background())

	if got := m.Current().State; got != Unauthenticated {
		t.Fatalf("expected Unauthenticated, got %v", got)
	}
	if api.whoamiCnt != 0 {
		t.Fatalf("whoami called without a stored token")
	}
}

func TestManager_Bootstrap_ValidToken(t *testing.T) {
	store := tempStore(t)
	if err := store.Save("stored-token"); err != nil {
		t.Fatalf("seed token: %v", err)
	}

	api := &stubAPI{whoamiFn: func(token string) (*client.User, error) {
		if token != "stored-token" {
			t.Fatalf("whoami called with %q", token)
		}
		return &client.User{Name: "Ana", Email: "ana@x.com", Role: "employee"}, nil
	}}
	m := NewManager(api, store)

	m.Bootstrap(context.Background())

	snap := m.Current()
	if snap.State != Authenticated {
		t.Fatalf("expected Authenticated, got %v", snap.State)
	}
	if snap.User == nil || snap.User.Email != "ana@x.com" {
		t.Fatalf("profile not hydrated: %+v", snap.User)
	}
	if snap.Token != "stored-token" {
		t.Fatalf("token not hydrated")
	}
}

// A rejected stored token (expired, user deleted) demotes silently and
// discards the persisted copy.
func TestManager_Bootstrap_RejectedToken(t *testing.T) {
	store := tempStore(t)
	_ = store.Save("stale-token")

	api := &stubAPI{whoamiFn: func(string) (*client.User, error) {
		return nil, &client.APIError{Status: 401, Msg: "invalid token"}
	}}
	m := NewManager(api, store)

	m.Bootstrap(context.Background())

	if got := m.Current().State; got != Unauthenticated {
		t.Fatalf("expected Unauthenticated, got %v", got)
	}
	if tkn, _ := store.Load(); tkn != "" {
		t.Fatalf("stale token not discarded")
	}
}

func TestManager_Login_ConfirmsBeforeAuthenticated(t *testing.T) {
	store := tempStore(t)
	api := &stubAPI{
		loginFn: func(email, password string) (string, error) {
			return "fresh-token", nil
		},
		whoamiFn: func(token string) (*client.User, error) {
			return &client.User{Name: "Ana"}, nil
		},
	}
	m := NewManager(api, store)

	if err := m.Login(context.Background(), "ana@x.com", "secret1"); err != nil {
		t.Fatalf("login: %v", err)
	}

	snap := m.Current()
	if snap.State != Authenticated || snap.User == nil {
		t.Fatalf("expected confirmed Authenticated session: %+v", snap)
	}
	if api.whoamiCnt != 1 {
		t.Fatalf("expected a confirming whoami call, got %d", api.whoamiCnt)
	}
	if tkn, _ := store.Load(); tkn != "fresh-token" {
		t.Fatalf("token not persisted")
	}
}

func TestManager_Login_Fail(t *testing.T) {
	api := &stubAPI{loginFn: func(string, string) (string, error) {
		return "", &client.APIError{Status: 400, Msg: "Invalid credentials"}
	}}
	m := NewManager(api, tempStore(t))

	if err := m.Login(context.Background(), "ana@x.com", "wrong"); err == nil {
		t.Fatalf("expected error")
	}
	if got := m.Current().State; got != Unauthenticated {
		t.Fatalf("expected Unauthenticated, got %v", got)
	}
}

// Login succeeded but the confirming whoami failed: the session must not
// claim Authenticated on the strength of the login response alone.
func TestManager_Login_ConfirmFails(t *testing.T) {
	store := tempStore(t)
	api := &stubAPI{
		loginFn:  func(string, string) (string, error) { return "tkn", nil },
		whoamiFn: func(string) (*client.User, error) { return nil, errors.New("network down") },
	}
	m := NewManager(api, store)

	if err := m.Login(context.Background(), "ana@x.com", "secret1"); err == nil {
		t.Fatalf("expected error")
	}
	if got := m.Current().State; got != Unauthenticated {
		t.Fatalf("expected Unauthenticated, got %v", got)
	}
	if tkn, _ := store.Load(); tkn != "" {
		t.Fatalf("unconfirmed token left in store")
	}
}

func TestManager_Register_ConfirmPath(t *testing.T) {
	store := tempStore(t)
	api := &stubAPI{
		registerFn: func(in client.RegisterInput) (string, error) {
			if in.Email != "ana@x.com" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return "reg-token", nil
		},
		whoamiFn: func(string) (*client.User, error) {
			return &client.User{Name: "Ana", Role: "employee"}, nil
		},
	}
	m := NewManager(api, store)

	if err := m.Register(context.Background(), client.RegisterInput{
		Name: "Ana", Email: "ana@x.com", Password: "secret1",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if got := m.Current().State; got != Authenticated {
		t.Fatalf("expected Authenticated, got %v", got)
	}
}

func TestManager_Logout_LocalOnly(t *testing.T) {
	store := tempStore(t)
	_ = store.Save("tkn")
	api := &stubAPI{whoamiFn: func(string) (*client.User, error) {
		return &client.User{Name: "Ana"}, nil
	}}
	m := NewManager(api, store)
	m.Bootstrap(context.Background())

	calls := api.whoamiCnt
	m.Logout()

	snap := m.Current()
	if snap.State != Unauthenticated || snap.Token != "" || snap.User != nil {
		t.Fatalf("logout did not reset session: %+v", snap)
	}
	if tkn, _ := store.Load(); tkn != "" {
		t.Fatalf("logout did not clear the store")
	}
	if api.whoamiCnt != calls {
		t.Fatalf("logout made a server call")
	}
}
