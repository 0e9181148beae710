package field

import "image/color"

// Surface is something the field can paint into. Alpha is the opacity in
// [0,1] applied on top of c.
type Surface interface {
	Available() bool
	FillCircle(cx, cy, r float64, c color.NRGBA, alpha float64)
	StrokeLine(x0, y0, x1, y1, width float64, c color.NRGBA, alpha float64)
}

// FrameScheduler delivers one-shot callbacks on the next display refresh.
// The returned cancel func deregisters a callback that has not run yet.
type FrameScheduler interface {
	RequestFrame(cb func()) (cancel func())
}

// PointerEvent reports the pointer position in surface coordinates and
// whether it is currently over the surface.
type PointerEvent struct {
	X, Y   float64
	Inside bool
}

// PointerSource publishes pointer movement.
type PointerSource interface {
	SubscribePointer(fn func(PointerEvent)) (unsubscribe func())
}
