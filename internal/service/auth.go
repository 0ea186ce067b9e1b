package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	domainauth "github.com/paisawise/pw-mobile-go/internal/domain/auth"
	"github.com/paisawise/pw-mobile-go/internal/observability/statsd"
	"github.com/paisawise/pw-mobile-go/internal/ports"
)

const defaultAuthTimeout = 15 * time.Second

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	Backend   ports.AuthBackend
	Tokens    ports.TokenStore
	Provider  ports.LoginProvider
	Navigator ports.Navigator
	Policy    domainauth.RedirectPolicy

	// Timeout bounds each outbound call so a hung request can never leave
	// the state machine loading forever. Zero means 15s.
	Timeout time.Duration
	Logger  *slog.Logger
	Metrics statsd.Sink // optional
}

// AuthService owns the single authentication state for the process and every
// transition on it. All storage reads/writes and outbound auth calls happen
// here; no other component touches the persisted token.
//
// Failures never propagate to callers: a failed transition logs, clears the
// loading flag, and lands in unauthenticated. Callers observe outcomes through State and Subscribe.
type AuthService struct {
	backend   ports.AuthBackend
	tokens    ports.TokenStore
	provider  ports.LoginProvider
	navigator ports.Navigator
	policy    domainauth.RedirectPolicy
	timeout   time.Duration
	logger    *slog.Logger
	metrics   statsd.Sink

	mu    sync.Mutex
	state domainauth.State
	subs  map[chan domainauth.State]struct{}
}

// NewAuthService constructs an AuthService in the unauthenticated state.
func NewAuthService(opts AuthServiceOptions) (*AuthService, error) {
	if opts.Backend == nil {
		return nil, errors.New("backend is required")
	}
	if opts.Tokens == nil {
		return nil, errors.New("token store is required")
	}
	if opts.Provider == nil {
		return nil, errors.New("login provider is required")
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultAuthTimeout
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &AuthService{
		backend:   opts.Backend,
		tokens:    opts.Tokens,
		provider:  opts.Provider,
		navigator: opts.Navigator,
		policy:    opts.Policy,
		timeout:   timeout,
		logger:    logger,
		metrics:   opts.Metrics,
		state:     domainauth.Unauthenticated(),
		subs:      make(map[chan domainauth.State]struct{}),
	}, nil
}

// State returns the current lifecycle snapshot.
func (s *AuthService) State() domainauth.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe registers an observer for state transitions. The channel holds
// the latest snapshot; slow consumers see the newest state, not every
// intermediate one. The returned function unsubscribes.
func (s *AuthService) Subscribe() (func(), <-chan domainauth.State) {
	ch := make(chan domainauth.State, 1)

	s.mu.Lock()
	s.subs[ch] = struct{}{}
	ch <- s.state
	s.mu.Unlock()

	unsub := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if _, ok := s.subs[ch]; !ok {
			return
		}
		delete(s.subs, ch)
		close(ch)
	}
	return unsub, ch
}

// setState atomically replaces the snapshot and broadcasts it. Every
// transition either fully succeeds (all fields together) or resolves to
// unauthenticated; there is no partial state.
func (s *AuthService) setState(next domainauth.State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = next
	for ch := range s.subs {
		select {
		case ch <- next:
		default:
			// Replace the stale pending snapshot with the newest one.
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- next:
			default:
			}
		}
	}
}

// clearLoading drops the loading flag without disturbing a settled state.
// A loading snapshot resolves to unauthenticated; anything else stands.
func (s *AuthService) clearLoading() {
	s.mu.Lock()
	loading := s.state.Status == domainauth.StatusLoading
	s.mu.Unlock()
	if loading {
		s.setState(domainauth.Unauthenticated())
	}
}

func (s *AuthService) count(name, result string) {
	if s.metrics == nil {
		return
	}
	s.metrics.Count(name, 1, map[string]string{"result": result})
}

// Restore rehydrates a persisted session on startup. With no stored token it
// lands directly in unauthenticated and issues no network call. With a token
// it validates against the backend once; rejection discards the stored token.
// It never retries.
func (s *AuthService) Restore(ctx context.Context) domainauth.State {
	s.setState(domainauth.State{Status: domainauth.StatusLoading})

	token, err := s.tokens.Load(ctx)
	if err != nil {
		if !errors.Is(err, ports.ErrNoToken) {
			s.logger.WarnContext(ctx, "session restore: token load failed", "error", err)
		}
		s.setState(domainauth.Unauthenticated())
		return s.State()
	}

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	user, err := s.backend.CurrentUser(callCtx, token)
	if err != nil {
		s.logger.InfoContext(ctx, "session restore: stored token rejected", "error", err)
		if delErr := s.tokens.Delete(ctx); delErr != nil {
			s.logger.WarnContext(ctx, "session restore: token cleanup failed", "error", delErr)
		}
		s.count("auth.restore", "failure")
		s.setState(domainauth.Unauthenticated())
		return s.State()
	}

	s.count("auth.restore", "success")
	s.setState(domainauth.State{
		Status:  domainauth.StatusAuthenticated,
		User:    user,
		Session: domainauth.Session{Token: token},
	})
	return s.State()
}

// BeginLogin builds the identity-provider URL for the given callback target
// and navigates to it. Construction or navigation errors fail silently into
// unauthenticated/not-loading; the returned URL is empty on failure.
func (s *AuthService) BeginLogin(ctx context.Context, callbackURL string) string {
	authURL, err := s.provider.Begin(ctx, ports.BeginInput{CallbackURL: callbackURL})
	if err != nil {
		s.logger.WarnContext(ctx, "begin login: provider URL construction failed", "error", err)
		s.setState(domainauth.Unauthenticated())
		return ""
	}

	if s.navigator != nil {
		if err := s.navigator.Open(ctx, authURL); err != nil {
			s.logger.WarnContext(ctx, "begin login: navigation failed", "error", err)
			s.setState(domainauth.Unauthenticated())
			return ""
		}
	}
	return authURL
}

// HandleRedirect consumes a redirect URL delivered back to the app (deep
// link or browser location). Without an extractable session identifier it
// stands down quietly and issues no network call. With one, it exchanges the
// identifier for a durable token, persists it, and marks authenticated.
// On exchange failure nothing was ever stored, so nothing is discarded.
//
// A settled authenticated session is never disturbed by a failing or
// marker-less redirect: the loading transition only happens when there is
// no live session, and every stand-down path lands back on the state that
// was current when the redirect arrived.
func (s *AuthService) HandleRedirect(ctx context.Context, rawURL string) domainauth.State {
	if !s.policy.Allows(rawURL) {
		s.logger.WarnContext(ctx, "redirect rejected by origin policy")
		s.clearLoading()
		return s.State()
	}

	prior := s.State()
	if prior.Status != domainauth.StatusAuthenticated {
		s.setState(domainauth.State{Status: domainauth.StatusLoading})
	}
	standDown := func() {
		if prior.Status == domainauth.StatusAuthenticated {
			s.setState(prior)
		} else {
			s.setState(domainauth.Unauthenticated())
		}
	}

	completeCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	sessionID, ok, err := s.provider.Complete(completeCtx, rawURL)
	if err != nil {
		s.logger.WarnContext(ctx, "redirect: completing login failed", "error", err)
		s.count("auth.exchange", "failure")
		standDown()
		return s.State()
	}
	if !ok {
		s.logger.InfoContext(ctx, "redirect carried no session identifier, ignoring")
		standDown()
		return s.State()
	}

	exchangeCtx, cancelExchange := context.WithTimeout(ctx, s.timeout)
	defer cancelExchange()
	user, session, err := s.backend.ExchangeSession(exchangeCtx, sessionID)
	if err != nil {
		s.logger.WarnContext(ctx, "redirect: session exchange failed", "error", err)
		s.count("auth.exchange", "failure")
		standDown()
		return s.State()
	}

	if err := s.tokens.Save(ctx, session.Token); err != nil {
		// The session is valid in-memory; only durability is lost. The next
		// cold start will require a fresh login.
		s.logger.WarnContext(ctx, "redirect: token persist failed", "error", err)
	}

	s.count("auth.exchange", "success")
	s.setState(domainauth.State{
		Status:  domainauth.StatusAuthenticated,
		User:    user,
		Session: session,
	})
	return s.State()
}

// Logout invalidates the server-side session best-effort, then
// unconditionally clears the persisted token and resets to unauthenticated.
func (s *AuthService) Logout(ctx context.Context) domainauth.State {
	token := s.State().Session.Token

	if token != "" {
		callCtx, cancel := context.WithTimeout(ctx, s.timeout)
		if err := s.backend.Logout(callCtx, token); err != nil {
			s.logger.InfoContext(ctx, "logout call failed, clearing local session anyway", "error", err)
		}
		cancel()
	}

	if err := s.tokens.Delete(ctx); err != nil {
		s.logger.WarnContext(ctx, "logout: token cleanup failed", "error", err)
	}

	s.count("auth.logout", "success")
	s.setState(domainauth.Unauthenticated())
	return s.State()
}

// Token returns the current bearer token, or an empty string when
// unauthenticated. Data services use it to authorize API calls.
func (s *AuthService) Token() string {
	return s.State().Session.Token
}
