package async

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// changeRecorder collects notifications in arrival order.
type changeRecorder struct {
	mu    sync.Mutex
	kinds []ChangeKind
}

func (r *changeRecorder) record(kind ChangeKind) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.kinds = append(r.kinds, kind)
}

func (r *changeRecorder) snapshot() []ChangeKind {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]ChangeKind(nil), r.kinds...)
}

func TestValue_DormantUntilFirstResult(t *testing.T) {
	ran := make(chan struct{}, 1)
	v := NewValue(func(context.Context) (string, error) {
		ran <- struct{}{}
		return "icon", nil
	})

	require.Nil(t, v.Task())
	select {
	case <-ran:
		require.Fail(t, "factory ran before first access")
	case <-time.After(20 * time.Millisecond):
	}

	_ = v.Result() // first access starts the computation
	select {
	case <-ran:
	case <-time.After(time.Second):
		require.Fail(t, "factory never ran")
	}
}

func TestValue_ResetNotifiesAllThenSettlement(t *testing.T) {
	rec := &changeRecorder{}
	v := NewValue(func(context.Context) (int, error) { return 42, nil })
	defer v.Observe(rec.record)()

	v.Reset()

	// ChangeAll arrives synchronously with the Reset call.
	require.Equal(t, ChangeAll, rec.snapshot()[0])

	require.Eventually(t, func() bool {
		kinds := rec.snapshot()
		return len(kinds) == 4 &&
			kinds[1] == ChangeCompleted &&
			kinds[2] == ChangeSucceeded &&
			kinds[3] == ChangeResult
	}, time.Second, 5*time.Millisecond)

	require.Equal(t, 42, v.Result())
}

func TestValue_FaultedNotification(t *testing.T) {
	rec := &changeRecorder{}
	v := NewValue(func(context.Context) (int, error) {
		return 0, errors.New("render failed")
	})
	defer v.Observe(rec.record)()

	v.Reset()

	require.Eventually(t, func() bool {
		kinds := rec.snapshot()
		return len(kinds) == 3 &&
			kinds[1] == ChangeCompleted &&
			kinds[2] == ChangeFaulted
	}, time.Second, 5*time.Millisecond)
	require.True(t, v.Faulted())
	require.Zero(t, v.Result())
}

func TestValue_PanickingFactoryFaults(t *testing.T) {
	v := NewValue(func(context.Context) (int, error) {
		panic("bad factory")
	})

	// Reset must not propagate the panic.
	v.Reset()

	require.Eventually(t, v.Faulted, time.Second, 5*time.Millisecond)
}

func TestValue_ResetReplacesTask(t *testing.T) {
	v := NewValue(func(context.Context) (int, error) { return 1, nil })

	v.Reset()
	first := v.Task()
	<-first.Done()

	v.Reset()
	second := v.Task()
	require.NotSame(t, first, second)

	// The old handle keeps its frozen result.
	require.Equal(t, 1, first.Result())
}

func TestValue_NotificationsOnDispatcher(t *testing.T) {
	serial := NewSerial()
	defer serial.Close()

	var notifyGoroutineSeen sync.Map
	v := NewValue(
		func(context.Context) (int, error) { return 9, nil },
		WithDispatcher[int](serial),
	)
	done := make(chan struct{})
	v.Observe(func(kind ChangeKind) {
		if kind == ChangeResult {
			notifyGoroutineSeen.Store("result", true)
			close(done)
		}
	})

	v.Reset()
	select {
	case <-done:
	case <-time.After(time.Second):
		require.Fail(t, "result notification never delivered")
	}
}

func TestValue_StartImmediately(t *testing.T) {
	v := NewValue(
		func(context.Context) (string, error) { return "eager", nil },
		StartImmediately[string](),
	)
	require.NotNil(t, v.Task())
	require.Eventually(t, func() bool { return v.Result() == "eager" },
		time.Second, 5*time.Millisecond)
}
