package client

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
)

// DefaultReloadTimeout bounds a single identity reload.
const DefaultReloadTimeout = 10 * time.Second

// IdentityAPI is the part of the API the Store drives.
type IdentityAPI interface {
	Register(ctx context.Context, in RegisterInput) (*Session, error)
	Login(ctx context.Context, in LoginInput) (*Session, error)
	Me(ctx context.Context) (*User, error)
}

// Result is what Login and Register report back to the caller, e.g. a form.
type Result struct {
	Success bool
	Error   string
}

// Store holds the session state and the persisted credential.
//
// Every identity reload is tagged with a generation number. Starting a
// reload, logging in, registering or logging out moves to a new generation,
// and a reload whose generation is no longer current has its result dropped.
// The most recently issued reload therefore decides the state.
type Store struct {
	api           IdentityAPI
	storage       Storage
	reloadTimeout time.Duration

	// dispatchMu serializes transitions so each one is reduced, persisted
	// and announced before the next starts.
	dispatchMu sync.Mutex

	mu    sync.RWMutex
	state State
	gen   uint64

	subsMu  sync.Mutex
	subs    map[int]func(State)
	nextSub int

	wg sync.WaitGroup
}

type StoreOption func(*Store)

// WithReloadTimeout bounds each identity reload. Non-positive values are ignored.
func WithReloadTimeout(d time.Duration) StoreOption {
	return func(s *Store) {
		if d > 0 {
			s.reloadTimeout = d
		}
	}
}

func NewStore(api IdentityAPI, storage Storage, opts ...StoreOption) *Store {
	s := &Store{
		api:           api,
		storage:       storage,
		reloadTimeout: DefaultReloadTimeout,
		state:         State{Status: StatusLoading},
		subs:          make(map[int]func(State)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewSession builds a Store and the API it drives. The API reads the
// credential from the Store on every request.
func NewSession(baseURL string, storage Storage, storeOpts []StoreOption, apiOpts ...APIOption) (*Store, *API, error) {
	var store *Store
	api, err := NewAPI(baseURL, TokenFunc(func() string { return store.Token() }), apiOpts...)
	if err != nil {
		return nil, nil, err
	}
	store = NewStore(api, storage, storeOpts...)
	return store, api, nil
}

func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Token returns the current credential, or "" when there is none. Store is a
// TokenSource.
func (s *Store) Token() string {
	if s == nil {
		return ""
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Token
}

// Subscribe registers fn to receive every new state. fn runs on the
// goroutine that caused the transition and must not call Login, Register,
// Logout, Start or Reload synchronously. The returned func unsubscribes.
func (s *Store) Subscribe(fn func(State)) (unsubscribe func()) {
	s.subsMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subsMu.Unlock()

	return func() {
		s.subsMu.Lock()
		delete(s.subs, id)
		s.subsMu.Unlock()
	}
}

// Start loads the stored credential and, when there is one, reloads the
// identity in the background. Without a credential the store settles on
// StatusUnauthenticated without calling the API, and a credential that
// cannot be read is treated as absent but not deleted. The channel yields
// the settled state once.
func (s *Store) Start(ctx context.Context) <-chan State {
	token, err := s.storage.Load()
	if err != nil {
		// The unreadable file is left in place for the user to repair.
		slog.Warn("Unable to read stored credential.", "reason", err)
		s.dispatch(Action{Kind: ActionStart})
		s.apply(Action{Kind: ActionAuthError}, false)

		done := make(chan State, 1)
		done <- s.State()
		close(done)
		return done
	}

	s.dispatch(Action{Kind: ActionStart, Token: token})
	return s.Reload(ctx)
}

// Reload re-resolves the identity behind the current credential. It does
// not block; the channel yields the state after this reload settles, which
// reflects later actions if this reload was superseded. A reload whose ctx
// is canceled before the API answers is dropped and leaves the state as is;
// only the reload timeout or an API error counts as a failure.
func (s *Store) Reload(ctx context.Context) <-chan State {
	done := make(chan State, 1)

	s.mu.Lock()
	s.gen++
	gen := s.gen
	token := s.state.Token
	s.mu.Unlock()

	if token == "" {
		s.dispatchIfCurrent(gen, Action{Kind: ActionAuthError})
		done <- s.State()
		close(done)
		return done
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer close(done)

		reloadCtx, cancel := context.WithTimeout(ctx, s.reloadTimeout)
		defer cancel()

		u, err := s.api.Me(reloadCtx)
		switch {
		case err != nil && ctx.Err() != nil:
			// The caller gave up; the server never judged the credential.
			slog.Debug("Identity reload abandoned.", "reason", err, "generation", gen)
		case err != nil:
			slog.Warn("Identity reload failed.", "reason", err)
			s.dispatchIfCurrent(gen, Action{Kind: ActionAuthError})
		default:
			s.dispatchIfCurrent(gen, Action{Kind: ActionUserLoaded, User: u})
		}

		done <- s.State()
	}()

	return done
}

// Login authenticates and then waits for the identity reload. Success is
// true only if the session ends up authenticated. If ctx ends first the
// issued credential is kept and Result carries ctx's error.
func (s *Store) Login(ctx context.Context, in LoginInput) Result {
	session, err := s.api.Login(ctx, in)
	if err != nil {
		s.dispatch(Action{Kind: ActionLoginFailed})
		return Result{Error: errorMessage(err, "Login failed")}
	}

	return s.authenticated(ctx, Action{Kind: ActionLoginSucceeded, Token: session.Token, User: session.User})
}

// Register creates an account and signs in with it, like Login.
func (s *Store) Register(ctx context.Context, in RegisterInput) Result {
	session, err := s.api.Register(ctx, in)
	if err != nil {
		s.dispatch(Action{Kind: ActionRegisterFailed})
		return Result{Error: errorMessage(err, "Registration failed")}
	}

	return s.authenticated(ctx, Action{Kind: ActionRegisterSucceeded, Token: session.Token, User: session.User})
}

func (s *Store) authenticated(ctx context.Context, a Action) Result {
	s.dispatch(a)

	var state State
	select {
	case state = <-s.Reload(ctx):
	case <-ctx.Done():
	}
	if err := ctx.Err(); err != nil {
		return Result{Error: err.Error()}
	}

	if state.Status != StatusAuthenticated {
		return Result{Error: "Session could not be verified"}
	}
	return Result{Success: true}
}

// Logout discards the credential.
func (s *Store) Logout() {
	s.dispatch(Action{Kind: ActionLogout})
}

// Wait blocks until every reload started so far has finished.
func (s *Store) Wait() {
	s.wg.Wait()
}

func (s *Store) dispatch(a Action) {
	s.apply(a, true)
}

// apply reduces a and, when persist is set, mirrors the result to storage.
func (s *Store) apply(a Action, persist bool) {
	s.dispatchMu.Lock()
	defer s.dispatchMu.Unlock()

	s.mu.Lock()
	if supersedesReload(a.Kind) {
		s.gen++
	}
	s.state = Reduce(s.state, a)
	next := s.state
	s.mu.Unlock()

	if persist {
		s.persist(a, next)
	}
	s.notify(next)
}

// dispatchIfCurrent applies a only while gen is still the latest generation.
func (s *Store) dispatchIfCurrent(gen uint64, a Action) bool {
	s.dispatchMu.Lock()
	defer s.dispatchMu.Unlock()

	s.mu.Lock()
	if gen != s.gen {
		s.mu.Unlock()
		slog.Debug("Dropping superseded identity reload.", "generation", gen)
		return false
	}
	s.state = Reduce(s.state, a)
	next := s.state
	s.mu.Unlock()

	s.persist(a, next)
	s.notify(next)
	return true
}

func (s *Store) persist(a Action, next State) {
	var err error
	switch {
	case a.Kind == ActionLoginSucceeded || a.Kind == ActionRegisterSucceeded:
		err = s.storage.Save(next.Token)
	case next.Status == StatusUnauthenticated:
		err = s.storage.Clear()
	}

	if err != nil {
		slog.Error("Unable to update stored credential.", "reason", err)
	}
}

func (s *Store) notify(state State) {
	s.subsMu.Lock()
	subs := make([]func(State), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.subsMu.Unlock()

	for _, fn := range subs {
		fn(state)
	}
}

func errorMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
