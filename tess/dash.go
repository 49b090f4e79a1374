package tess

import (
	"github.com/gogpu/plotgpu/geom"
	"github.com/gogpu/plotgpu/path"
)

// minDashLength is the shortest segment the resampler dashes. Shorter
// segments are skipped and the current point stays at their start.
const minDashLength = 1.0

// Cursor walks a repeating on/off length pattern. Even entries are
// visible, odd entries are gaps.
type Cursor struct {
	pattern []float32
	index   int
	offset  float32
}

// NewCursor creates a cursor at the start of pattern. It panics if the
// pattern is empty, has a negative entry or sums to zero.
func NewCursor(pattern []float32) *Cursor {
	if len(pattern) == 0 {
		panic("tess: empty dash pattern")
	}
	var sum float32
	for _, v := range pattern {
		if v < 0 {
			panic("tess: negative dash length")
		}
		sum += v
	}
	if sum <= 0 {
		panic("tess: dash pattern has zero length")
	}
	return &Cursor{pattern: pattern}
}

// Reset returns the cursor to the start of the first visible entry.
func (c *Cursor) Reset() {
	c.index = 0
	c.offset = 0
}

// Index returns the current pattern entry.
func (c *Cursor) Index() int { return c.index }

// Offset returns the distance consumed in the current entry.
func (c *Cursor) Offset() float32 { return c.offset }

// Visible reports whether the current entry is drawn.
func (c *Cursor) Visible() bool { return c.index%2 == 0 }

// Remaining returns the length left in the current entry.
func (c *Cursor) Remaining() float32 {
	return c.pattern[c.index] - c.offset
}

// Advance consumes length, moving across as many entries as needed.
// Reaching the exact end of an entry moves to the next one.
func (c *Cursor) Advance(length float32) {
	for length > 0 || c.Remaining() <= 0 {
		rem := c.Remaining()
		if length < rem {
			c.offset += length
			return
		}
		length -= rem
		c.next()
	}
}

func (c *Cursor) next() {
	c.index = (c.index + 1) % len(c.pattern)
	c.offset = 0
}

// Resample dashes a path. Each MoveTo resets the pattern. Curves are
// dashed along their chord only. The result is an open path of MoveTo
// and LineTo codes covering the visible runs.
func Resample(p path.CanvasPath, pattern []float32) path.CanvasPath {
	d := dasher{cursor: NewCursor(pattern)}

	var p0, pMove geom.Point
	for _, code := range p.All() {
		switch c := code.(type) {
		case path.MoveTo:
			d.cursor.Reset()
			p0 = c.P
			pMove = c.P
		case path.LineTo:
			p0 = d.line(p0, c.P)
		case path.Bezier2:
			p0 = d.line(p0, c.End)
		case path.Bezier3:
			p0 = d.line(p0, c.End)
		case path.ClosePoly:
			p0 = d.line(p0, c.P)
			p0 = d.line(p0, pMove)
		}
	}

	return path.New[path.Canvas](d.codes...)
}

type dasher struct {
	cursor *Cursor
	codes  []path.Code
}

// line dashes the segment p0-p1 and returns the new current point.
func (d *dasher) line(p0, p1 geom.Point) geom.Point {
	length := p0.Distance(p1)
	if length < minDashLength {
		return p0
	}

	cur := d.cursor
	if cur.Visible() && cur.Offset() == 0 {
		d.codes = append(d.codes, path.MoveTo{P: p0})
	}

	var offset float32
	for {
		tail := length - offset
		sub := cur.Remaining()
		if tail <= sub {
			if cur.Visible() {
				d.codes = append(d.codes, path.LineTo{P: p1})
			}
			cur.Advance(tail)
			return p1
		}

		offset += sub
		pt := p0.Lerp(p1, offset/length)
		if cur.Visible() {
			d.codes = append(d.codes, path.LineTo{P: pt})
		} else if offset < length {
			d.codes = append(d.codes, path.MoveTo{P: pt})
		}
		cur.next()
	}
}

// LineStyle names a dash pattern.
type LineStyle uint8

const (
	Solid LineStyle = iota
	Dashed
	Dotted
	DashDot
)

var lineStyleNames = [...]string{
	Solid:   "solid",
	Dashed:  "dashed",
	Dotted:  "dotted",
	DashDot: "dashdot",
}

func (s LineStyle) String() string {
	if int(s) < len(lineStyleNames) {
		return lineStyleNames[s]
	}
	return "unknown"
}

// ParseLineStyle accepts the names printed by String as well as the
// shorthand "-", "--", ":" and "-.".
func ParseLineStyle(name string) (LineStyle, bool) {
	switch name {
	case "-":
		return Solid, true
	case "--":
		return Dashed, true
	case ":":
		return Dotted, true
	case "-.":
		return DashDot, true
	}
	for i, n := range lineStyleNames {
		if n == name {
			return LineStyle(i), true
		}
	}
	return Solid, false
}

// Pattern returns the dash pattern scaled by the line width, or nil for
// a solid line.
func (s LineStyle) Pattern(lineWidth float32) []float32 {
	var base []float32
	switch s {
	case Dashed:
		base = []float32{3.7, 1.6}
	case Dotted:
		base = []float32{1, 1.65}
	case DashDot:
		base = []float32{6.4, 1.6, 1, 1.6}
	default:
		return nil
	}
	for i := range base {
		base[i] *= lineWidth
	}
	return base
}
