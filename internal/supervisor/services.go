// Pitchside - Live Sports Synchronization Client
// Copyright 2026 T. Morland (tmorland)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tmorland/pitchside

package supervisor

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// HTTPServer matches *http.Server's lifecycle methods so the wrapper is
// testable without binding a real port.
type HTTPServer interface {
	ListenAndServe() error
	Shutdown(ctx context.Context) error
}

// HTTPService adapts an HTTP server's blocking ListenAndServe to
// suture's context-aware Serve.
type HTTPService struct {
	server          HTTPServer
	shutdownTimeout time.Duration
}

// NewHTTPService wraps the server. shutdownTimeout bounds graceful
// shutdown; zero or below gets a 10s default.
func NewHTTPService(server HTTPServer, shutdownTimeout time.Duration) *HTTPService {
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}
	return &HTTPService{server: server, shutdownTimeout: shutdownTimeout}
}

// Serve implements suture.Service. http.ErrServerClosed is the expected
// outcome of a graceful shutdown and is not an error.
func (h *HTTPService) Serve(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		if err := h.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
		// The original context is already canceled; shutdown needs its own.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), h.shutdownTimeout)
		defer cancel()
		if err := h.server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http server shutdown failed: %w", err)
		}
		<-errCh
		return ctx.Err()
	}
}

// String implements fmt.Stringer for supervisor logs.
func (h *HTTPService) String() string {
	return "ops-http"
}

// Closer is the teardown side of the realtime client's lifecycle.
type Closer interface {
	Close() error
}

// LifetimeService pins a callback-driven component, such as the realtime
// client, to the supervisor's lifetime: it does nothing but wait for
// shutdown and then close the component. Restart policy does not apply
// since Serve only returns on cancellation.
type LifetimeService struct {
	component Closer
	name      string
}

// NewLifetimeService wraps the component under the given service name.
func NewLifetimeService(component Closer, name string) *LifetimeService {
	return &LifetimeService{component: component, name: name}
}

// Serve implements suture.Service.
func (s *LifetimeService) Serve(ctx context.Context) error {
	<-ctx.Done()
	if err := s.component.Close(); err != nil {
		return fmt.Errorf("%s close failed: %w", s.name, err)
	}
	return ctx.Err()
}

// String implements fmt.Stringer for supervisor logs.
func (s *LifetimeService) String() string {
	return s.name
}
