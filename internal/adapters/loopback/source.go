package loopback

// Package loopback implements the browser-context redirect source: a
// localhost callback server that receives the provider redirect and emits it
// as a normalized URL event.

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/paisawise/pw-mobile-go/internal/ports"
)

const callbackPath = "/auth/callback"

// fragmentRelay moves hash parameters into the query string and re-requests,
// because fragments never reach the server. It also strips the marker from
// the visible URL, matching the web contract.
const fragmentRelay = `<!doctype html>
<html><body><script>
(function () {
  var h = window.location.hash;
  if (h && h.length > 1) {
    var q = window.location.search ? window.location.search + "&" : "?";
    window.location.replace(window.location.pathname + q + h.substring(1));
  } else {
    document.body.textContent = "Login response missing. You can close this window.";
  }
})();
</script></body></html>`

const donePage = `<!doctype html>
<html><body>Login complete. You can close this window and return to the app.</body></html>`

// Source is a loopback RedirectSource. Use one Source per login attempt.
type Source struct {
	port int

	mu       sync.Mutex
	listener net.Listener
	server   *http.Server
	events   chan string
	closed   bool
}

var _ ports.RedirectSource = (*Source)(nil)

// NewSource creates a loopback source. Port 0 picks a free port.
func NewSource(port int) *Source {
	return &Source{
		port:   port,
		events: make(chan string, 1),
	}
}

// CallbackURL returns the redirect target for the running listener.
// Valid only after Start.
func (s *Source) CallbackURL() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return ""
	}
	return "http://" + s.listener.Addr().String() + callbackPath
}

// Start binds the loopback listener and begins serving the callback page.
func (s *Source) Start(ctx context.Context) (<-chan string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, errors.New("source is closed")
	}
	if s.listener != nil {
		return s.events, nil
	}

	listener, err := net.Listen("tcp", net.JoinHostPort("127.0.0.1", strconv.Itoa(s.port)))
	if err != nil {
		return nil, fmt.Errorf("bind loopback listener: %w", err)
	}
	s.listener = listener

	mux := http.NewServeMux()
	mux.HandleFunc(callbackPath, s.handleCallback)
	s.server = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		//nolint:errcheck // Serve returns ErrServerClosed on shutdown.
		_ = s.server.Serve(listener)
	}()
	go func() {
		<-ctx.Done()
		//nolint:errcheck // Best-effort close when the context ends.
		_ = s.Close()
	}()

	return s.events, nil
}

func (s *Source) handleCallback(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	// A bare request means any credential is still in the fragment; have the
	// browser relay it into the query string.
	if r.URL.RawQuery == "" {
		fmt.Fprint(w, fragmentRelay) //nolint:errcheck // Best-effort page write.
		return
	}

	fmt.Fprint(w, donePage) //nolint:errcheck // Best-effort page write.
	s.emit("http://" + r.Host + r.URL.String())
}

func (s *Source) emit(url string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	select {
	case s.events <- url:
	default:
		// A redirect is already pending; keep the earliest one and never
		// block the handler.
	}
}

// Close shuts the listener down and closes the event channel.
func (s *Source) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	server := s.server
	close(s.events)
	s.mu.Unlock()

	if server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return server.Shutdown(ctx)
}
