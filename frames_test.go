package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrameQueueRunsInRequestOrder(t *testing.T) {
	q := newFrameQueue()
	var got []int
	for i := 0; i < 3; i++ {
		q.RequestFrame(func() { got = append(got, i) })
	}
	assert.Equal(t, 3, q.Pending())

	q.Drain()
	assert.Equal(t, []int{0, 1, 2}, got)
	assert.Zero(t, q.Pending())
}

func TestFrameQueueCancel(t *testing.T) {
	q := newFrameQueue()
	ran := false
	cancel := q.RequestFrame(func() { ran = true })
	cancel()
	cancel()

	q.Drain()
	assert.False(t, ran)
	assert.Zero(t, q.Pending())
}

func TestFrameQueueDefersNestedRequests(t *testing.T) {
	q := newFrameQueue()
	ticks := 0
	var loop func()
	loop = func() {
		ticks++
		q.RequestFrame(loop)
	}
	q.RequestFrame(loop)

	q.Drain()
	assert.Equal(t, 1, ticks)
	assert.Equal(t, 1, q.Pending())

	q.Drain()
	assert.Equal(t, 2, ticks)
}

func TestFrameQueueCancelFromEarlierCallback(t *testing.T) {
	q := newFrameQueue()
	var cancelSecond func()
	secondRan := false
	q.RequestFrame(func() { cancelSecond() })
	cancelSecond = q.RequestFrame(func() { secondRan = true })

	q.Drain()
	assert.False(t, secondRan)
}
