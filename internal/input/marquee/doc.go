// Package marquee implements rectangular drag selection on the canvas.
//
// A Marquee moves between two states:
//
//	Idle      no gesture; Rect reports ok=false
//	Dragging  start is fixed, end follows the pointer
//
// Start enters Dragging with a zero-size rectangle, Update moves the end
// point, and End or Cancel return to Idle. The rectangle is derived from
// the two points on every read and never cached.
//
// Matching is polymorphic over anything that implements Positioned:
//
//	m.Start(geometry.Pt(0, 0))
//	m.Update(geometry.Pt(10, 10))
//	idx := marquee.IndicesIn(m, lights)
//
// IsSimpleClick separates a click from a deliberate drag: a gesture whose
// rectangle stays under ClickThreshold on both axes is a click.
package marquee
