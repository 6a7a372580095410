package facade

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	eventq "github.com/ARMmbed/mbed-events"
)

func TestCall_FiresImmediately(t *testing.T) {
	q, err := eventq.NewQueue()
	require.NoError(t, err)
	defer q.Close()

	got := 0
	_, ok := Call(q, 42, func(v int) { got = v })
	require.True(t, ok)

	n := q.Dispatch(0)
	assert.Equal(t, 1, n)
	assert.Equal(t, 42, got)
}

func TestCallIn_RespectsDelay(t *testing.T) {
	q, err := eventq.NewQueue()
	require.NoError(t, err)
	defer q.Close()

	fired := false
	_, ok := CallIn(q, 200, "x", func(string) { fired = true })
	require.True(t, ok)

	assert.Equal(t, 0, q.Dispatch(0))
	assert.False(t, fired)
}

func TestCallEvery_ReArmsUntilCanceled(t *testing.T) {
	q, err := eventq.NewQueue()
	require.NoError(t, err)
	defer q.Close()

	count := 0
	var id eventq.EventID
	id, ok := CallEvery(q, 0, struct{}{}, func(struct{}) {
		count++
		if count >= 3 {
			q.Cancel(id)
			q.BreakDispatch()
		}
	})
	require.True(t, ok)

	q.Dispatch(-1)
	assert.Equal(t, 3, count)
}
