package store

import (
	"context"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNotifier_CapacityFloor(t *testing.T) {
	n := NewNotifier[int](0, nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch := n.Listen(ctx)

	n.Emit(1)
	n.Emit(2)

	assert.Equal(t, 2, <-ch)
}

func TestNotifier_PreservesOrder(t *testing.T) {
	n := NewNotifier[int](8, nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch := n.Listen(ctx)

	for i := 1; i <= 5; i++ {
		n.Emit(i)
	}
	for i := 1; i <= 5; i++ {
		assert.Equal(t, i, <-ch)
	}
}

func TestNotifier_ListenerDetachesOnCancel(t *testing.T) {
	n := NewNotifier[int](1, nil)
	ctx, cancel := context.WithCancel(context.Background())
	ch := n.Listen(ctx)
	assert.Equal(t, 1, n.Listeners())

	cancel()
	select {
	case _, ok := <-ch:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("listener channel not closed")
	}
	assert.Equal(t, 0, n.Listeners())
}

func TestNotifier_CloseReleasesListenerGoroutines(t *testing.T) {
	n := NewNotifier[int](2, nil)
	baseline := runtime.NumGoroutine()

	for range 32 {
		n.Listen(context.Background())
	}
	n.Close()

	assert.Eventually(t, func() bool {
		return runtime.NumGoroutine() <= baseline
	}, time.Second, 5*time.Millisecond)
	assert.Zero(t, n.Listeners())
}
