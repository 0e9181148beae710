package input

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"starfield/field"
)

// Host defines the callbacks the input system needs from the main game.
type Host interface {
	LayoutSize() (int, int)
	RequestScreenshot()
	SaveSettings()
	NextPreset()
	ToggleGlow()
	ToggleInteractive()
	TogglePause()
	Reseed()
}

// InputSystem polls ebiten once per tick. Pointer changes are fanned out to
// subscribers; control keys are forwarded to the host.
type InputSystem struct {
	host Host

	subs    map[int]func(field.PointerEvent)
	nextSub int

	last  field.PointerEvent
	known bool

	// overlay reports screen positions covered by UI that owns the pointer.
	overlay func(mx, my int) bool
}

func NewInputSystem(h Host) *InputSystem {
	return &InputSystem{
		host: h,
		subs: make(map[int]func(field.PointerEvent)),
	}
}

// SubscribePointer registers fn for pointer changes. The subscriber gets the
// current state right away if one is known.
func (is *InputSystem) SubscribePointer(fn func(field.PointerEvent)) func() {
	id := is.nextSub
	is.nextSub++
	is.subs[id] = fn
	if is.known {
		fn(is.last)
	}
	return func() { delete(is.subs, id) }
}

// SetOverlay marks screen regions where the pointer belongs to the UI. The
// field sees the pointer as outside while it is over one.
func (is *InputSystem) SetOverlay(fn func(mx, my int) bool) {
	is.overlay = fn
}

// Subscribers reports how many pointer subscriptions are live.
func (is *InputSystem) Subscribers() int {
	return len(is.subs)
}

func (is *InputSystem) Update() {
	is.handleControlKeys()

	mx, my := ebiten.CursorPosition()
	if touches := ebiten.AppendTouchIDs(nil); len(touches) > 0 {
		mx, my = ebiten.TouchPosition(touches[0])
	}
	is.Track(mx, my, ebiten.IsFocused())
}

// Track derives the pointer state from a raw position and publishes it when
// it differs from the last one.
func (is *InputSystem) Track(mx, my int, focused bool) {
	w, h := is.host.LayoutSize()
	ev := field.PointerEvent{
		X:      float64(mx),
		Y:      float64(my),
		Inside: focused && mx >= 0 && my >= 0 && mx < w && my < h,
	}
	if ev.Inside && is.overlay != nil && is.overlay(mx, my) {
		ev.Inside = false
	}
	if is.known && ev == is.last {
		return
	}
	// an outside pointer only matters once, when it leaves
	if is.known && !ev.Inside && !is.last.Inside {
		is.last = ev
		return
	}
	is.last = ev
	is.known = true
	for _, fn := range is.subs {
		fn(ev)
	}
}

// Pointer returns the last published pointer state.
func (is *InputSystem) Pointer() (field.PointerEvent, bool) {
	return is.last, is.known
}

func (is *InputSystem) handleControlKeys() {
	h := is.host

	// --- Screenshot ---
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		h.RequestScreenshot()
	}

	// --- Save Settings ---
	if ebiten.IsKeyPressed(ebiten.KeyControl) && inpututil.IsKeyJustPressed(ebiten.KeyS) {
		h.SaveSettings()
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		h.NextPreset()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyG) {
		h.ToggleGlow()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyI) {
		h.ToggleInteractive()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		h.TogglePause()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		h.Reseed()
	}
}
