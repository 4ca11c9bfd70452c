// Package trail records the recent tip positions of a pendulum.
package trail

import "github.com/san-kum/pendulums/internal/dynamo"

// DefaultLength is the number of points kept when no capacity is configured.
const DefaultLength = 200

// Point is one recorded tip position with the hue it had at that tick.
type Point struct {
	Pos dynamo.Vec2
	Hue float64
}

// Trail is a fixed-capacity FIFO of points. Appending to a full trail
// overwrites the oldest point.
type Trail struct {
	data []Point
	pos  int
	full bool
}

// New creates an empty trail. Capacities below one are raised to one.
func New(capacity int) *Trail {
	if capacity < 1 {
		capacity = 1
	}
	return &Trail{data: make([]Point, capacity)}
}

// Append records p as the newest point.
func (t *Trail) Append(p Point) {
	t.data[t.pos] = p
	t.pos++
	if t.pos >= len(t.data) {
		t.pos = 0
		t.full = true
	}
}

// Len returns the number of recorded points.
func (t *Trail) Len() int {
	if t.full {
		return len(t.data)
	}
	return t.pos
}

// Cap returns the maximum number of points kept.
func (t *Trail) Cap() int { return len(t.data) }

// At returns the i-th point, 0 being the oldest.
func (t *Trail) At(i int) Point {
	if t.full {
		return t.data[(t.pos+i)%len(t.data)]
	}
	return t.data[i]
}

// Points returns the contents oldest to newest.
func (t *Trail) Points() []Point {
	n := t.Len()
	out := make([]Point, n)
	if t.full {
		copy(out, t.data[t.pos:])
		copy(out[len(t.data)-t.pos:], t.data[:t.pos])
	} else {
		copy(out, t.data[:t.pos])
	}
	return out
}

// Each visits the points oldest to newest without allocating.
func (t *Trail) Each(fn func(i int, p Point)) {
	n := t.Len()
	for i := 0; i < n; i++ {
		fn(i, t.At(i))
	}
}

// Segments visits consecutive point pairs, the polyline a renderer draws.
// Each segment takes the colour of its newer endpoint.
func (t *Trail) Segments(fn func(from, to Point)) {
	n := t.Len()
	if n < 2 {
		return
	}
	prev := t.At(0)
	for i := 1; i < n; i++ {
		cur := t.At(i)
		fn(prev, cur)
		prev = cur
	}
}

// Reset empties the trail keeping its capacity.
func (t *Trail) Reset() {
	t.pos = 0
	t.full = false
}
