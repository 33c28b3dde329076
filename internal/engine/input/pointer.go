package input

import (
	gomath "refsketch/pkg/math"
)

// PointerKind identifies a synthesized pointer event.
type PointerKind int

const (
	PointerDown PointerKind = iota
	PointerUp
	PointerMove
	PointerOver
	PointerOut
	PointerDragStart
	PointerDrag
	PointerDragEnd
	PointerDragEnter
	PointerDragOver
	PointerDragLeave
	PointerDrop
)

// String returns the kind name for logging.
func (k PointerKind) String() string {
	switch k {
	case PointerDown:
		return "down"
	case PointerUp:
		return "up"
	case PointerMove:
		return "move"
	case PointerOver:
		return "over"
	case PointerOut:
		return "out"
	case PointerDragStart:
		return "drag_start"
	case PointerDrag:
		return "drag"
	case PointerDragEnd:
		return "drag_end"
	case PointerDragEnter:
		return "drag_enter"
	case PointerDragOver:
		return "drag_over"
	case PointerDragLeave:
		return "drag_leave"
	case PointerDrop:
		return "drop"
	default:
		return "unknown"
	}
}

// PointerEvent is a high-level pointer interaction aimed at a named
// hit region. Target is empty when the event happens over the background.
type PointerEvent struct {
	Kind    PointerKind
	Target  string
	Button  uint8
	Pos     gomath.Vec2
	Delta   gomath.Vec2
	Dropped string // source region, set on PointerDrop
}

// Bubbles reports whether the event may propagate to enclosing regions.
// Enter and leave style events are specific to their target.
func (e PointerEvent) Bubbles() bool {
	switch e.Kind {
	case PointerOver, PointerOut, PointerDragEnter, PointerDragLeave:
		return false
	default:
		return true
	}
}

// Region is a named rectangular hit area in window coordinates.
type Region struct {
	Name       string
	X, Y, W, H float32
}

// contains reports whether the point lies inside the region.
func (r Region) contains(p gomath.Vec2) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

// defaultDragThreshold is how far the cursor must travel with a button
// held before motion becomes a drag instead of a sloppy click.
const defaultDragThreshold = 4

// Pointer synthesizes pointer events from raw mouse events against a set
// of hit regions, tracking hover, press, and drag state.
type Pointer struct {
	regions       []Region
	DragThreshold float32

	pos         gomath.Vec2
	hover       string
	hoverAny    bool
	pressed     bool
	pressButton uint8
	pressPos    gomath.Vec2
	pressTarget string
	dragging    bool
	skipDelta   bool
}

// NewPointer creates a pointer tracker over the given hit regions.
func NewPointer(regions ...Region) *Pointer {
	return &Pointer{
		regions:       regions,
		DragThreshold: defaultDragThreshold,
	}
}

// SetRegions replaces the hit regions, for example after a window resize.
func (p *Pointer) SetRegions(regions ...Region) {
	p.regions = regions
}

// SkipNextDelta makes the next motion contribute no drag delta. Call it
// after warping the cursor so the jump does not register as movement.
func (p *Pointer) SkipNextDelta() {
	p.skipDelta = true
}

// Dragging reports whether a drag is in progress.
func (p *Pointer) Dragging() bool {
	return p.dragging
}

// hitTest returns the name of the topmost region containing the point.
// Later regions win, matching draw order.
func (p *Pointer) hitTest(pos gomath.Vec2) string {
	for i := len(p.regions) - 1; i >= 0; i-- {
		if p.regions[i].contains(pos) {
			return p.regions[i].Name
		}
	}
	return ""
}

// Feed processes one mouse event and returns the pointer events it
// produces, in dispatch order.
func (p *Pointer) Feed(ev Event) []PointerEvent {
	switch ev.Type {
	case EventMouseDown:
		return p.feedDown(ev)
	case EventMouseUp:
		return p.feedUp(ev)
	case EventMouseMove:
		return p.feedMove(ev)
	default:
		return nil
	}
}

func (p *Pointer) feedDown(ev Event) []PointerEvent {
	p.pos = gomath.Vec2{X: float32(ev.MouseX), Y: float32(ev.MouseY)}
	target := p.hitTest(p.pos)

	p.pressed = true
	p.pressButton = ev.Button
	p.pressPos = p.pos
	p.pressTarget = target

	return []PointerEvent{{
		Kind:   PointerDown,
		Target: target,
		Button: ev.Button,
		Pos:    p.pos,
	}}
}

func (p *Pointer) feedUp(ev Event) []PointerEvent {
	p.pos = gomath.Vec2{X: float32(ev.MouseX), Y: float32(ev.MouseY)}
	target := p.hitTest(p.pos)

	var out []PointerEvent
	out = append(out, PointerEvent{
		Kind:   PointerUp,
		Target: target,
		Button: ev.Button,
		Pos:    p.pos,
	})

	if p.dragging && ev.Button == p.pressButton {
		out = append(out, PointerEvent{
			Kind:   PointerDragEnd,
			Target: p.pressTarget,
			Button: ev.Button,
			Pos:    p.pos,
		})
		if target != "" && target != p.pressTarget {
			out = append(out, PointerEvent{
				Kind:    PointerDrop,
				Target:  target,
				Button:  ev.Button,
				Pos:     p.pos,
				Dropped: p.pressTarget,
			})
		}
	}

	if ev.Button == p.pressButton {
		p.pressed = false
		p.dragging = false
	}
	return out
}

func (p *Pointer) feedMove(ev Event) []PointerEvent {
	p.pos = gomath.Vec2{X: float32(ev.MouseX), Y: float32(ev.MouseY)}
	delta := gomath.Vec2{X: float32(ev.RelX), Y: float32(ev.RelY)}
	if p.skipDelta {
		delta = gomath.Vec2{}
		p.skipDelta = false
	}

	target := p.hitTest(p.pos)

	var out []PointerEvent
	out = append(out, PointerEvent{
		Kind:   PointerMove,
		Target: target,
		Pos:    p.pos,
		Delta:  delta,
	})

	if target != p.hover || !p.hoverAny {
		if p.hoverAny && p.hover != "" {
			out = append(out, PointerEvent{Kind: PointerOut, Target: p.hover, Pos: p.pos})
			if p.dragging {
				out = append(out, PointerEvent{Kind: PointerDragLeave, Target: p.hover, Pos: p.pos})
			}
		}
		if target != "" {
			out = append(out, PointerEvent{Kind: PointerOver, Target: target, Pos: p.pos})
			if p.dragging {
				out = append(out, PointerEvent{Kind: PointerDragEnter, Target: target, Pos: p.pos})
			}
		}
		p.hover = target
		p.hoverAny = true
	}

	if p.pressed && !p.dragging {
		moved := p.pos.Sub(p.pressPos)
		if moved.Length() > p.DragThreshold {
			p.dragging = true
			out = append(out, PointerEvent{
				Kind:   PointerDragStart,
				Target: p.pressTarget,
				Button: p.pressButton,
				Pos:    p.pos,
			})
		}
	}

	if p.dragging {
		out = append(out, PointerEvent{
			Kind:   PointerDrag,
			Target: p.pressTarget,
			Button: p.pressButton,
			Pos:    p.pos,
			Delta:  delta,
		})
		if target != "" && target != p.pressTarget {
			out = append(out, PointerEvent{Kind: PointerDragOver, Target: target, Pos: p.pos, Delta: delta})
		}
	}

	return out
}
