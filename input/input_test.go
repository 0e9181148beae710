package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"starfield/field"
)

type stubHost struct {
	w, h int
}

func (s *stubHost) LayoutSize() (int, int) { return s.w, s.h }
func (s *stubHost) RequestScreenshot()     {}
func (s *stubHost) SaveSettings()          {}
func (s *stubHost) NextPreset()            {}
func (s *stubHost) ToggleGlow()            {}
func (s *stubHost) ToggleInteractive()     {}
func (s *stubHost) TogglePause()           {}
func (s *stubHost) Reseed()                {}

func TestTrackPublishesEnterMoveLeave(t *testing.T) {
	is := NewInputSystem(&stubHost{w: 100, h: 50})
	var got []field.PointerEvent
	unsubscribe := is.SubscribePointer(func(ev field.PointerEvent) { got = append(got, ev) })

	is.Track(10, 10, true)
	is.Track(10, 10, true) // unchanged
	is.Track(20, 30, true)
	is.Track(150, 30, true) // left the surface
	is.Track(160, 30, true) // still outside
	is.Track(20, 30, false) // window unfocused

	require.Len(t, got, 3)
	assert.Equal(t, field.PointerEvent{X: 10, Y: 10, Inside: true}, got[0])
	assert.Equal(t, field.PointerEvent{X: 20, Y: 30, Inside: true}, got[1])
	assert.False(t, got[2].Inside)

	unsubscribe()
	is.Track(5, 5, true)
	assert.Len(t, got, 3)
	assert.Zero(t, is.Subscribers())
}

func TestLateSubscriberGetsCurrentState(t *testing.T) {
	is := NewInputSystem(&stubHost{w: 100, h: 50})
	is.Track(40, 20, true)

	var got []field.PointerEvent
	is.SubscribePointer(func(ev field.PointerEvent) { got = append(got, ev) })
	require.Len(t, got, 1)
	assert.True(t, got[0].Inside)
}

func TestFieldFollowsInputSystem(t *testing.T) {
	is := NewInputSystem(&stubHost{w: 200, h: 200})
	f := field.New(nil)
	f.Initialize(200, 200, 10, field.DefaultSeed, field.DefaultOptions())
	f.Mount(nil, is)
	require.Equal(t, 1, is.Subscribers())

	is.Track(50, 50, true)
	assert.True(t, f.PointerActive())
	is.Track(-1, 50, true)
	assert.False(t, f.PointerActive())

	f.Teardown()
	f.Teardown()
	assert.Zero(t, is.Subscribers())
}

func TestOverlayHidesPointerFromField(t *testing.T) {
	is := NewInputSystem(&stubHost{w: 200, h: 100})
	is.SetOverlay(func(mx, my int) bool { return mx >= 150 && my < 30 })

	f := field.New(nil)
	f.Mount(nil, is)
	defer f.Teardown()

	is.Track(50, 50, true)
	assert.True(t, f.PointerActive())

	is.Track(160, 10, true)
	assert.False(t, f.PointerActive())
	ev, _ := is.Pointer()
	assert.False(t, ev.Inside)

	is.Track(160, 60, true)
	assert.True(t, f.PointerActive())
}
