package ui

// DefaultClickSlop is how far, in pixels, the pointer may travel between
// press and release and still count as a click.
const DefaultClickSlop = 4

// Pointer tracks one mouse button over a view and tells clicks from drags.
type Pointer struct {
	ClickSlop float32

	X, Y           float32
	DeltaX, DeltaY float32

	Down     bool
	Pressed  bool // went down this frame
	Released bool // went up this frame

	travel   float32
	prevDown bool
	prevX    float32
	prevY    float32
	started  bool
}

// Update records the pointer state of a new frame.
func (p *Pointer) Update(x, y float32, down bool) {
	p.X, p.Y = x, y
	if p.started {
		p.DeltaX = x - p.prevX
		p.DeltaY = y - p.prevY
	}
	p.started = true

	p.Down = down
	p.Pressed = down && !p.prevDown
	p.Released = !down && p.prevDown

	switch {
	case p.Pressed:
		p.travel = 0
	case p.Down:
		p.travel += abs(p.DeltaX) + abs(p.DeltaY)
	}

	p.prevDown = down
	p.prevX, p.prevY = x, y
}

// Dragging reports whether the button is held and has moved past the slop.
func (p *Pointer) Dragging() bool {
	return p.Down && p.travel > p.slop()
}

// Clicked reports whether the button was released without dragging.
func (p *Pointer) Clicked() bool {
	return p.Released && p.travel <= p.slop()
}

func (p *Pointer) slop() float32 {
	if p.ClickSlop > 0 {
		return p.ClickSlop
	}
	return DefaultClickSlop
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
