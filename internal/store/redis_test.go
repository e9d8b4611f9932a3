package store

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type RedisStoreSuite struct {
	suite.Suite
	store *RedisStore
}

func (s *RedisStoreSuite) SetupTest() {
	st, err := OpenRedis(context.Background(), os.Getenv("PAISA_TEST_REDIS_URL"))
	s.Require().NoError(err)
	s.store = st
	s.Require().NoError(s.store.Clear(context.Background()))
}

func (s *RedisStoreSuite) TearDownTest() {
	if s.store != nil {
		_ = s.store.Clear(context.Background())
		_ = s.store.Close()
	}
}

func (s *RedisStoreSuite) TestRoundTrip() {
	ctx := context.Background()
	token, err := s.store.Load(ctx)
	s.Require().NoError(err)
	s.Empty(token)

	s.Require().NoError(s.store.Save(ctx, "shared"))
	token, err = s.store.Load(ctx)
	s.Require().NoError(err)
	s.Equal("shared", token)

	s.Require().NoError(s.store.Clear(ctx))
	s.Require().NoError(s.store.Clear(ctx))
	token, err = s.store.Load(ctx)
	s.Require().NoError(err)
	s.Empty(token)
}

func TestRedisStoreSuite(t *testing.T) {
	if os.Getenv("PAISA_TEST_REDIS_URL") == "" {
		t.Skip("PAISA_TEST_REDIS_URL not set")
	}
	suite.Run(t, new(RedisStoreSuite))
}

func TestOpenRedisRejectsEmptyURL(t *testing.T) {
	_, err := OpenRedis(context.Background(), "  ")
	assert.EqualError(t, err, "redis url is empty")
}

func TestOpenRedisUnreachable(t *testing.T) {
	_, err := OpenRedis(context.Background(), "redis://127.0.0.1:1/0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connecting to redis")
}
