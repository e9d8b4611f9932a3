package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type TokenStoreSuite struct {
	suite.Suite
	path  string
	store *SQLiteStore
}

func (s *TokenStoreSuite) SetupTest() {
	s.path = filepath.Join(s.T().TempDir(), "state", "paisa.db")
	st, err := OpenSQLite(s.path)
	require.NoError(s.T(), err, "failed to open store")
	s.store = st
}

func (s *TokenStoreSuite) TearDownTest() {
	if s.store != nil {
		_ = s.store.Close()
	}
}

func (s *TokenStoreSuite) TestLoadEmpty() {
	token, err := s.store.Load(context.Background())
	s.Require().NoError(err)
	s.Empty(token)
}

func (s *TokenStoreSuite) TestSaveOverwrites() {
	ctx := context.Background()
	s.Require().NoError(s.store.Save(ctx, "first"))
	s.Require().NoError(s.store.Save(ctx, "second"))

	token, err := s.store.Load(ctx)
	s.Require().NoError(err)
	s.Equal("second", token)
}

func (s *TokenStoreSuite) TestClearIsIdempotent() {
	ctx := context.Background()
	s.Require().NoError(s.store.Save(ctx, "tok"))
	s.Require().NoError(s.store.Clear(ctx))
	s.Require().NoError(s.store.Clear(ctx))

	token, err := s.store.Load(ctx)
	s.Require().NoError(err)
	s.Empty(token)
}

func (s *TokenStoreSuite) TestSurvivesReopen() {
	ctx := context.Background()
	s.Require().NoError(s.store.Save(ctx, "persisted"))
	s.Require().NoError(s.store.Close())

	reopened, err := OpenSQLite(s.path)
	s.Require().NoError(err)
	s.store = reopened

	token, err := reopened.Load(ctx)
	s.Require().NoError(err)
	s.Equal("persisted", token)
}

func TestTokenStoreSuite(t *testing.T) {
	suite.Run(t, new(TokenStoreSuite))
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()

	require.NoError(t, m.Save(ctx, "abc"))
	got, err := m.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, "abc", got)

	require.NoError(t, m.Clear(ctx))
	got, err = m.Load(ctx)
	require.NoError(t, err)
	require.Empty(t, got)
}
