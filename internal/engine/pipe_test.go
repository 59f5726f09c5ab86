package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/taskrungo/internal/registry"
	"github.com/vk/taskrungo/internal/task"
)

type payload struct {
	Value int
}

func incrementHandler() task.Handler {
	return task.Func(func(ctx context.Context, arg any) (any, error) {
		p := arg.(*payload)
		return &payload{Value: p.Value + 1}, nil
	})
}

func TestPipeChainsHandlersWithinAPhase(t *testing.T) {
	reg := registry.New()
	require.NoError(t, reg.Register("transform", incrementHandler()))
	require.NoError(t, reg.Register("transform", incrementHandler()))

	final, err := New(reg).PipeTask(context.Background(), "transform", &payload{Value: 1}, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, final.(*payload).Value)
}

func TestPipeThreadsValueAcrossPhasesAndTasks(t *testing.T) {
	reg := registry.New()
	reg.DefineTasks([]string{"first", "second"}, true, true)
	require.NoError(t, reg.Register("pre-first", incrementHandler()))
	require.NoError(t, reg.Register("first", incrementHandler()))
	require.NoError(t, reg.Register("post-first", incrementHandler()))
	require.NoError(t, reg.Register("second", incrementHandler()))

	final, err := New(reg).Pipe(context.Background(), PipeOptions{
		Tasks:   []string{"first", "second"},
		Initial: &payload{Value: 0},
	})
	require.NoError(t, err)
	assert.Equal(t, 4, final.(*payload).Value)
}

func TestPipeEmptyPhasePassesValueThroughUnchanged(t *testing.T) {
	reg := registry.New()
	reg.DefineTasks([]string{"noop"}, true, true)

	initial := &payload{Value: 7}
	final, err := New(reg).PipeTask(context.Background(), "noop", initial, 0)
	require.NoError(t, err)
	assert.Equal(t, initial, final)
}

func TestPipeNilValueAbortsImmediately(t *testing.T) {
	reg := registry.New()
	var secondRan bool

	require.NoError(t, reg.Register("a", task.Func(func(ctx context.Context, arg any) (any, error) {
		return nil, nil
	})))
	require.NoError(t, reg.Register("b", task.Func(func(ctx context.Context, arg any) (any, error) {
		secondRan = true
		return arg, nil
	})))

	final, err := New(reg).Pipe(context.Background(), PipeOptions{
		Tasks:   []string{"a", "b"},
		Initial: &payload{Value: 1},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidPipeValue)
	assert.Nil(t, final)
	assert.False(t, secondRan, "no further task may run after an invalid value")
}

func TestPipeTypedNilIsInvalid(t *testing.T) {
	reg := registry.New()
	require.NoError(t, reg.Register("a", task.Func(func(ctx context.Context, arg any) (any, error) {
		var p *payload
		return p, nil // typed nil inside a non-nil interface
	})))

	_, err := New(reg).PipeTask(context.Background(), "a", &payload{}, 0)
	assert.ErrorIs(t, err, ErrInvalidPipeValue)
}

func TestPipeDefaultsToAllowList(t *testing.T) {
	reg := registry.New()
	reg.DefineTasks([]string{"only"}, false, false)
	require.NoError(t, reg.Register("only", incrementHandler()))

	final, err := New(reg).Pipe(context.Background(), PipeOptions{Initial: &payload{Value: 1}})
	require.NoError(t, err)
	assert.Equal(t, 2, final.(*payload).Value)
}

func TestPipeWithoutTasksOrAllowListFails(t *testing.T) {
	reg := registry.New()
	_, err := New(reg).Pipe(context.Background(), PipeOptions{Initial: &payload{}})
	assert.ErrorIs(t, err, ErrNoTasksSpecified)
}

func TestPipeUnknownTaskFails(t *testing.T) {
	reg := registry.New()
	_, err := New(reg).Pipe(context.Background(), PipeOptions{
		Tasks:   []string{"ghost"},
		Initial: &payload{},
	})
	assert.ErrorIs(t, err, ErrUnknownTask)
}

func TestIsNilValue(t *testing.T) {
	var nilMap map[string]int
	var nilSlice []int
	var nilPtr *payload

	assert.True(t, isNilValue(nil))
	assert.True(t, isNilValue(nilMap))
	assert.True(t, isNilValue(nilSlice))
	assert.True(t, isNilValue(nilPtr))

	assert.False(t, isNilValue(0))
	assert.False(t, isNilValue(""))
	assert.False(t, isNilValue(false))
	assert.False(t, isNilValue(&payload{}))
	assert.False(t, isNilValue(map[string]int{}))
}
