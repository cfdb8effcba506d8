package cachemanager

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockCacheManager[V any] struct {
	mock.Mock
}

func (m *mockCacheManager[V]) Get(key string) (V, bool) {
	args := m.Called(key)
	v, _ := args.Get(0).(V)
	return v, args.Bool(1)
}

func (m *mockCacheManager[V]) Set(key string, value V, ttl time.Duration) {
	m.Called(key, value, ttl)
}

func (m *mockCacheManager[V]) Delete(keys ...string) { m.Called(keys) }
func (m *mockCacheManager[V]) Flush()                { m.Called() }
func (m *mockCacheManager[V]) Len() int              { return m.Called().Int(0) }

type wrappedInput struct {
	ID int
}

func compute(calls *int) func(wrappedInput) ([]int, error) {
	return func(in wrappedInput) ([]int, error) {
		*calls++
		return []int{in.ID}, nil
	}
}

func TestReadThroughCache_Get_WithCacheDisabled(t *testing.T) {
	managerMock := &mockCacheManager[[]int]{}
	calls := 0

	r := NewReadThroughCache[string, []int, wrappedInput](managerMock, compute(&calls), true)

	got, err := r.Get("key", wrappedInput{ID: 1}, time.Minute)
	require.NoError(t, err)
	require.Equal(t, []int{1}, got)
	require.Equal(t, 1, calls)
	managerMock.AssertNotCalled(t, "Get", mock.Anything)
	managerMock.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything)
}

func TestReadThroughCache_Get_Hit(t *testing.T) {
	managerMock := &mockCacheManager[[]int]{}
	managerMock.On("Get", "key").Return([]int{7}, true).Once()
	calls := 0

	r := NewReadThroughCache[string, []int, wrappedInput](managerMock, compute(&calls), false)

	got, err := r.Get("key", wrappedInput{ID: 1}, time.Minute)
	require.NoError(t, err)
	require.Equal(t, []int{7}, got)
	require.Zero(t, calls)
	managerMock.AssertExpectations(t)
}

func TestReadThroughCache_Get_MissStores(t *testing.T) {
	managerMock := &mockCacheManager[[]int]{}
	managerMock.On("Get", "key").Return(nil, false).Once()
	managerMock.On("Set", "key", []int{3}, time.Minute).Return().Once()
	calls := 0

	r := NewReadThroughCache[string, []int, wrappedInput](managerMock, compute(&calls), false)

	got, err := r.Get("key", wrappedInput{ID: 3}, time.Minute)
	require.NoError(t, err)
	require.Equal(t, []int{3}, got)
	require.Equal(t, 1, calls)
	managerMock.AssertExpectations(t)
}

func TestReadThroughCache_Get_ErrorNotCached(t *testing.T) {
	managerMock := &mockCacheManager[[]int]{}
	managerMock.On("Get", "key").Return(nil, false).Once()
	boom := errors.New("boom")

	r := NewReadThroughCache[string, []int, wrappedInput](managerMock, func(wrappedInput) ([]int, error) {
		return nil, boom
	}, false)

	_, err := r.Get("key", wrappedInput{}, time.Minute)
	require.ErrorIs(t, err, boom)
	managerMock.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything)
}

func TestReadThroughCache_WithInMemory(t *testing.T) {
	store := NewInMemoryCacheManager[string, []int]("ints", DefaultExpiration, DefaultCleanupInterval)
	calls := 0
	r := NewReadThroughCache[string, []int, wrappedInput](store, compute(&calls), false)

	for range 3 {
		got, err := r.Get("k", wrappedInput{ID: 9}, 0)
		require.NoError(t, err)
		require.Equal(t, []int{9}, got)
	}
	require.Equal(t, 1, calls)
	require.Equal(t, 1, r.Cache().Len())
}
