package sandbox

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// ServiceName identifies the sandbox in health responses.
const ServiceName = "paisa-sandbox"

// Status is the /health payload.
type Status struct {
	Status       string    `json:"status"`
	Service      string    `json:"service"`
	StartedAt    time.Time `json:"started_at"`
	Users        int       `json:"users"`
	Sessions     int       `json:"sessions"`
	Accounts     int       `json:"accounts"`
	Transactions int       `json:"transactions"`
	Budgets      int       `json:"budgets"`
}

// Status returns a snapshot of the sandbox contents.
func (s *Server) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	live := 0
	for _, sess := range s.tokens {
		if now.Before(sess.expires) {
			live++
		}
	}
	return Status{
		Status:       "healthy",
		Service:      ServiceName,
		StartedAt:    s.startedAt,
		Users:        len(s.users),
		Sessions:     live,
		Accounts:     len(s.accounts),
		Transactions: len(s.transactions),
		Budgets:      len(s.budgets),
	}
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, s.Status())
}

// Run serves the sandbox on addr until ctx is canceled, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	server := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	s.log.Info("sandbox listening", "addr", addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.log.Info("sandbox shutting down")
		return server.Shutdown(shutdownCtx)
	case err := <-errCh:
		return fmt.Errorf("sandbox http server: %w", err)
	}
}
