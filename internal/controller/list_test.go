package controller

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListSupersededFetchIsDiscarded(t *testing.T) {
	var l List[int]

	stale := l.begin()
	fresh := l.begin()

	assert.True(t, l.finish(context.Background(), fresh, []int{2}, nil, nil))
	assert.False(t, l.finish(context.Background(), stale, []int{1}, nil, nil))

	assert.Equal(t, []int{2}, l.Items())
	assert.Equal(t, Loaded, l.State())
}

func TestListCancelledFetchRestoresPriorState(t *testing.T) {
	var l List[string]
	require.NoError(t, l.load(context.Background(), func(context.Context) ([]string, error) {
		return []string{"a"}, nil
	}))

	ctx, cancel := context.WithCancel(context.Background())
	err := l.load(ctx, func(context.Context) ([]string, error) {
		cancel()
		return []string{"b"}, nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, []string{"a"}, l.Items())
	assert.Equal(t, Loaded, l.State())
}

func TestListErrorKeepsItems(t *testing.T) {
	var l List[int]
	boom := errors.New("boom")

	require.NoError(t, l.load(context.Background(), func(context.Context) ([]int, error) { return []int{1, 2}, nil }))
	assert.ErrorIs(t, l.load(context.Background(), func(context.Context) ([]int, error) { return nil, boom }), boom)

	assert.Equal(t, Errored, l.State())
	assert.Equal(t, []int{1, 2}, l.Items())
	assert.ErrorIs(t, l.Err(), boom)
}

func TestListNotifiesOnEveryTransition(t *testing.T) {
	var l List[int]
	var states []State
	l.OnChange(func() { states = append(states, l.State()) })

	require.NoError(t, l.load(context.Background(), func(context.Context) ([]int, error) { return nil, nil }))
	assert.Equal(t, []State{Loading, Loaded}, states)
	assert.Equal(t, 0, l.Len())
	assert.Equal(t, "loaded", l.State().String())
}

func TestListResetSupersedesFetch(t *testing.T) {
	var l List[int]
	require.NoError(t, l.load(context.Background(), func(context.Context) ([]int, error) { return []int{1}, nil }))

	inflight := l.begin()
	l.Reset()

	assert.False(t, l.finish(context.Background(), inflight, []int{2}, nil, nil))
	assert.Equal(t, Idle, l.State())
	assert.Empty(t, l.Items())
	assert.NoError(t, l.Err())
}
