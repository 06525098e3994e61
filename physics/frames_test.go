package physics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManualSchedulerRunsInOrder(t *testing.T) {
	s := NewManualScheduler()

	var got []int
	s.Schedule(func() { got = append(got, 1) })
	s.Schedule(func() { got = append(got, 2) })
	s.Schedule(func() { got = append(got, 3) })
	require.Equal(t, 3, s.Pending())

	assert.True(t, s.Step())
	assert.Equal(t, []int{1}, got)

	assert.Equal(t, 2, s.Run(10))
	assert.Equal(t, []int{1, 2, 3}, got)
	assert.False(t, s.Step())
	assert.Zero(t, s.Pending())
}

func TestManualSchedulerCancel(t *testing.T) {
	s := NewManualScheduler()

	var got []int
	s.Schedule(func() { got = append(got, 1) })
	h := s.Schedule(func() { got = append(got, 2) })
	s.Schedule(func() { got = append(got, 3) })

	s.Cancel(h)
	s.Run(10)
	assert.Equal(t, []int{1, 3}, got)

	// Cancelling an unknown or already-run handle is harmless.
	s.Cancel(h)
	s.Cancel(999)
}

func TestManualSchedulerRescheduleFromCallback(t *testing.T) {
	s := NewManualScheduler()

	ran := 0
	var loop func()
	loop = func() {
		ran++
		if ran < 5 {
			s.Schedule(loop)
		}
	}
	s.Schedule(loop)

	assert.Equal(t, 5, s.Run(100))
	assert.Equal(t, 5, ran)
}

func TestDisplaySchedulerFires(t *testing.T) {
	s := NewDisplayScheduler(time.Millisecond)

	done := make(chan struct{})
	s.Schedule(func() { close(done) })

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("frame callback never fired")
	}
}

func TestDisplaySchedulerCancelPreventsFire(t *testing.T) {
	s := NewDisplayScheduler(50 * time.Millisecond)

	fired := make(chan struct{}, 1)
	h := s.Schedule(func() { fired <- struct{}{} })
	s.Cancel(h)

	select {
	case <-fired:
		t.Fatal("cancelled frame still fired")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestDisplaySchedulerDefaultsInterval(t *testing.T) {
	s := NewDisplayScheduler(0)
	assert.Equal(t, 16*time.Millisecond, s.interval)
}
