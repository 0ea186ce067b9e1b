package deeplink

// Package deeplink implements the native redirect source: the OS delivers
// custom-scheme URLs to the app, including the cold-start case where the
// first delivery arrives before anything else. Here delivery is a
// line-oriented reader (the process's deep-link pipe or stdin).

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"

	domainauth "github.com/paisawise/pw-mobile-go/internal/domain/auth"
	"github.com/paisawise/pw-mobile-go/internal/ports"
)

// Source reads deep-link URLs from r, one per line, and emits the ones that
// carry the session marker. URLs without the marker never engage the handler,
// per the deep-link contract.
type Source struct {
	r      io.Reader
	logger *slog.Logger

	mu     sync.Mutex
	events chan string
	closed bool
	cancel context.CancelFunc
}

var _ ports.RedirectSource = (*Source)(nil)

// NewSource creates a deep-link source over a reader.
func NewSource(r io.Reader, logger *slog.Logger) *Source {
	if logger == nil {
		logger = slog.Default()
	}
	return &Source{
		r:      r,
		logger: logger,
		events: make(chan string, 1),
	}
}

// Start begins draining the reader.
func (s *Source) Start(ctx context.Context) (<-chan string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, io.ErrClosedPipe
	}
	if s.cancel != nil {
		return s.events, nil
	}

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	go s.readLoop(ctx)
	return s.events, nil
}

func (s *Source) readLoop(ctx context.Context) {
	scanner := bufio.NewScanner(s.r)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if !domainauth.HasSessionMarker(line) {
			s.logger.DebugContext(ctx, "ignoring deep link without session marker")
			continue
		}
		s.emit(line)
	}
	if err := scanner.Err(); err != nil && ctx.Err() == nil {
		s.logger.WarnContext(ctx, "deep link reader stopped", "error", err)
	}
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
		// Racing deliveries: keep the earliest pending event, drop the rest.
	}
}

// Close stops the read loop and closes the event channel.
func (s *Source) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	if s.cancel != nil {
		s.cancel()
	}
	close(s.events)
	return nil
}
