package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingRunner struct {
	cycles atomic.Int32
}

func (r *countingRunner) RunCycle(ctx context.Context) {
	r.cycles.Add(1)
}

func TestScheduler_RunsCyclesOnInterval(t *testing.T) {
	runner := &countingRunner{}
	s := New(runner, 100*time.Millisecond)

	require.NoError(t, s.Start(context.Background()))
	defer s.Stop()

	assert.Eventually(t, func() bool {
		return runner.cycles.Load() >= 2
	}, 3*time.Second, 20*time.Millisecond)
}

func TestScheduler_StopPreventsFurtherCycles(t *testing.T) {
	runner := &countingRunner{}
	s := New(runner, 50*time.Millisecond)

	require.NoError(t, s.Start(context.Background()))

	assert.Eventually(t, func() bool {
		return runner.cycles.Load() >= 1
	}, 3*time.Second, 10*time.Millisecond)

	s.Stop()
	after := runner.cycles.Load()
	time.Sleep(200 * time.Millisecond)
	// One cycle may have been mid-flight at stop time
	assert.LessOrEqual(t, runner.cycles.Load(), after+1)
}
