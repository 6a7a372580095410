package eventq

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestChannelWaiter_SignalThenWaitReturnsImmediately(t *testing.T) {
	w := NewChannelWaiter()
	w.Signal()

	done := make(chan struct{})
	go func() {
		w.Wait(-1)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Wait did not return after a prior Signal")
	}
}

func TestChannelWaiter_WaitTimesOutWithoutSignal(t *testing.T) {
	w := NewChannelWaiter()
	start := time.Now()
	w.Wait(20)
	assert.GreaterOrEqual(t, time.Since(start), 15*time.Millisecond)
}

func TestChannelWaiter_WaitZeroNeverBlocks(t *testing.T) {
	w := NewChannelWaiter()
	done := make(chan struct{})
	go func() {
		w.Wait(0)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Wait(0) blocked")
	}
}

func TestChannelWaiter_ConcurrentSignalsDoNotBlock(t *testing.T) {
	w := NewChannelWaiter()
	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			w.Signal()
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("concurrent Signal calls blocked")
	}
}

func TestChannelWaiter_CloseMakesSignalANoOp(t *testing.T) {
	w := NewChannelWaiter()
	w.Close()
	assert.NotPanics(t, func() { w.Signal() })
}
