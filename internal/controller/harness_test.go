package controller

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/theirongolddev/paisa/internal/api"
	"github.com/theirongolddev/paisa/internal/sandbox"
	"github.com/theirongolddev/paisa/internal/session"
	"github.com/theirongolddev/paisa/internal/store"
)

type harness struct {
	sess   *session.Store
	client *api.Client
	tokens *store.MemoryStore
}

// newHarness starts a sandbox backend and returns a session registered as a
// fresh regular user.
func newHarness(t *testing.T) *harness {
	t.Helper()
	srv := sandbox.New(sandbox.WithBcryptCost(bcrypt.MinCost))
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	tokens := store.NewMemoryStore()
	sess, client := session.Connect(ts.URL+"/api", tokens, nil, api.WithTimeout(5*time.Second))
	require.NoError(t, sess.Register(context.Background(), "user@example.com", "secret", "User"))
	return &harness{sess: sess, client: client, tokens: tokens}
}

func (h *harness) loginAdmin(t *testing.T) {
	t.Helper()
	_, err := h.sess.Login(context.Background(), sandbox.AdminEmail, sandbox.AdminPassword)
	require.NoError(t, err)
}
