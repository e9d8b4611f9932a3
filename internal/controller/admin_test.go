package controller

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/paisa/internal/api"
	"github.com/theirongolddev/paisa/internal/model"
	"github.com/theirongolddev/paisa/internal/session"
	"github.com/theirongolddev/paisa/internal/store"
)

type countingAdmin struct {
	AdminAPI
	calls atomic.Int32
}

func (c *countingAdmin) AdminUsers(ctx context.Context) ([]model.AdminUser, error) {
	c.calls.Add(1)
	return c.AdminAPI.AdminUsers(ctx)
}

func TestAdminLoadsAllCollections(t *testing.T) {
	h := newHarness(t)
	seedAccount(t, h, "Main", "5")
	h.loginAdmin(t)

	c := NewAdmin(h.client, h.sess, Options{})
	require.NoError(t, c.Refresh(context.Background()))

	assert.Equal(t, Loaded, c.State())
	assert.Len(t, c.Users(), 2)
	require.Len(t, c.Accounts(), 1)
	assert.Equal(t, "user@example.com", c.Accounts()[0].UserEmail)
	assert.Empty(t, c.Transactions())
}

func TestAdminRefusesWithoutRole(t *testing.T) {
	h := newHarness(t)
	gw := &countingAdmin{AdminAPI: h.client}
	c := NewAdmin(gw, h.sess, Options{})

	err := c.Refresh(context.Background())
	assert.ErrorIs(t, err, session.ErrForbidden)
	assert.Equal(t, int32(0), gw.calls.Load(), "no request sent")
	assert.Equal(t, Errored, c.State())

	h.sess.Logout()
	assert.ErrorIs(t, c.Refresh(context.Background()), session.ErrNotAuthenticated)
}

func TestAdminAuthFailureEndsSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	t.Cleanup(srv.Close)

	tokens := store.NewMemoryStore()
	sess := session.New(tokens, nil)
	sess.Bind(fakeAdminLogin{})
	_, err := sess.Login(context.Background(), "root@x.y", "pw")
	require.NoError(t, err)
	require.True(t, sess.HasRole(model.RoleAdmin))

	c := NewAdmin(api.New(srv.URL, sess), sess, Options{})
	err = c.Refresh(context.Background())

	assert.True(t, api.IsAuth(err))
	assert.False(t, sess.Authenticated())
	assert.Nil(t, sess.Snapshot().User)
	persisted, _ := tokens.Load(context.Background())
	assert.Empty(t, persisted)
	assert.Empty(t, c.Users())
}

type fakeAdminLogin struct{}

func (fakeAdminLogin) Login(context.Context, string, string) (model.AuthResponse, error) {
	return model.AuthResponse{Token: "t", Email: "root@x.y", Role: model.RoleAdmin}, nil
}

func (fakeAdminLogin) Register(context.Context, string, string, string) (model.AuthResponse, error) {
	return model.AuthResponse{}, nil
}

func TestFollowSessionDropsPreviousUsersData(t *testing.T) {
	h := newHarness(t)
	seedAccount(t, h, "Private", "999")

	accts := NewAccounts(h.client, Options{})
	txs := NewTransactions(h.client, Options{})
	admin := NewAdmin(h.client, h.sess, Options{})
	FollowSession(h.sess, accts, txs, admin)

	ctx := context.Background()
	require.NoError(t, accts.Refresh(ctx))
	require.NoError(t, txs.Refresh(ctx))
	require.Equal(t, 1, accts.Len())
	require.Len(t, txs.AccountChoices(), 1)

	h.sess.Logout()
	assert.Equal(t, Idle, accts.State())
	assert.Zero(t, accts.Len())
	assert.Empty(t, txs.AccountChoices())

	require.NoError(t, h.sess.Register(ctx, "other@example.com", "secret", "Other"))
	assert.Equal(t, Idle, txs.State())
	require.NoError(t, accts.Refresh(ctx))
	assert.Zero(t, accts.Len())

	h.loginAdmin(t)
	require.NoError(t, admin.Refresh(ctx))
	require.NotEmpty(t, admin.Accounts())
	h.sess.Logout()
	assert.Empty(t, admin.Users())
	assert.Empty(t, admin.Accounts())
	assert.Equal(t, Idle, admin.State())
}
