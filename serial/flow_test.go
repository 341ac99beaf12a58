package serial

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlowRunsTasksInOrder(t *testing.T) {
	f := New()
	rec := &recorder{}

	done := make(chan struct{})
	for i := 0; i < 5; i++ {
		i := i
		f.Schedule(context.Background(), func(context.Context) {
			rec.add(i)
			if i == 4 {
				close(done)
			}
		})
	}

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("tasks did not run")
	}
	assert.Equal(t, []int{0, 1, 2, 3, 4}, rec.values())
}

func TestFlowSuspendDefersExecution(t *testing.T) {
	f := New()
	rec := &recorder{}

	f.Suspend()
	assert.True(t, f.Suspended())
	f.Schedule(context.Background(), func(context.Context) {
		rec.add(1)
	})

	time.Sleep(20 * time.Millisecond)
	assert.Empty(t, rec.values())

	require.True(t, f.Resume())
	assert.Eventually(t, func() bool {
		return len(rec.values()) == 1
	}, time.Second, 5*time.Millisecond)
	assert.False(t, f.Suspended())
}

func TestFlowNestedSuspends(t *testing.T) {
	f := New()
	rec := &recorder{}

	f.Suspend()
	f.Suspend()
	f.Schedule(context.Background(), func(context.Context) {
		rec.add(1)
	})

	require.True(t, f.Resume())
	time.Sleep(20 * time.Millisecond)
	assert.Empty(t, rec.values(), "one suspension is still outstanding")

	require.True(t, f.Resume())
	assert.Eventually(t, func() bool {
		return len(rec.values()) == 1
	}, time.Second, 5*time.Millisecond)
}

func TestFlowUnbalancedResume(t *testing.T) {
	f := New()
	assert.False(t, f.Resume())
}

func TestFlowIsCurrent(t *testing.T) {
	f := New()
	other := New()

	inside := make(chan bool, 2)
	f.Schedule(context.Background(), func(ctx context.Context) {
		inside <- f.IsCurrent(ctx)
		inside <- other.IsCurrent(ctx)
	})

	assert.True(t, <-inside)
	assert.False(t, <-inside)
	assert.False(t, f.IsCurrent(context.Background()))
}

func TestFlowSuspendFromTaskHoldsQueue(t *testing.T) {
	f := New()
	rec := &recorder{}

	f.Schedule(context.Background(), func(context.Context) {
		// The next task must not run until the asynchronous work
		// started here resumes the flow.
		f.Suspend()
		go func() {
			time.Sleep(10 * time.Millisecond)
			rec.add(1)
			f.Resume()
		}()
	})
	f.Schedule(context.Background(), func(context.Context) {
		rec.add(2)
	})

	assert.Eventually(t, func() bool {
		return len(rec.values()) == 2
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, []int{1, 2}, rec.values())
}

func TestFlowIgnoresNilTask(t *testing.T) {
	f := New()
	f.Schedule(context.Background(), nil)
	assert.False(t, f.Suspended())
}

type recorder struct {
	mu   sync.Mutex
	vals []int
}

func (r *recorder) add(v int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.vals = append(r.vals, v)
}

func (r *recorder) values() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]int(nil), r.vals...)
}
