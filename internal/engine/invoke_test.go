package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/taskrungo/internal/task"
)

func TestInvokeWithoutTimeoutReturnsHandlerOutcome(t *testing.T) {
	h := task.Func(func(ctx context.Context, arg any) (any, error) {
		return arg.(int) + 1, nil
	})

	v, err := Invoke(context.Background(), h, 41, 0)
	require.NoError(t, err)
	assert.Equal(t, 42, v)
}

func TestInvokePropagatesHandlerErrorUnmodified(t *testing.T) {
	sentinel := errors.New("boom")
	h := task.Func(func(ctx context.Context, arg any) (any, error) {
		return nil, sentinel
	})

	_, err := Invoke(context.Background(), h, nil, time.Second)
	require.Error(t, err)
	assert.Equal(t, sentinel, err)
}

func TestInvokeTimesOutWhenHandlerNeverSettles(t *testing.T) {
	h := task.Func(func(ctx context.Context, arg any) (any, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})

	start := time.Now()
	_, err := Invoke(context.Background(), h, nil, 100*time.Millisecond)
	elapsed := time.Since(start)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvocationTimeout)
	// The timeout must fire at approximately the configured delay, not later.
	assert.Less(t, elapsed, 500*time.Millisecond)
}

func TestInvokeDiscardsLateSettlement(t *testing.T) {
	settled := make(chan struct{})
	h := task.Func(func(ctx context.Context, arg any) (any, error) {
		time.Sleep(150 * time.Millisecond)
		close(settled)
		return "late", nil
	})

	_, err := Invoke(context.Background(), h, nil, 30*time.Millisecond)
	assert.ErrorIs(t, err, ErrInvocationTimeout)

	// The handler's eventual settlement lands on a buffered channel and is
	// never observed; nothing panics and nothing blocks.
	select {
	case <-settled:
	case <-time.After(time.Second):
		t.Fatal("handler goroutine never finished")
	}
}

func TestInvokeReportsCallerCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	h := task.Func(func(ctx context.Context, arg any) (any, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})

	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	_, err := Invoke(ctx, h, nil, time.Minute)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, ErrInvocationTimeout)
}
