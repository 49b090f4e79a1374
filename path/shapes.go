package path

import "github.com/gogpu/plotgpu/geom"

// MarkerKind selects a built-in marker outline.
type MarkerKind uint8

const (
	MarkerPoint MarkerKind = iota
	MarkerCircle
	MarkerSquare
	MarkerTriangle
	MarkerDiamond
	MarkerStar
	MarkerPlus
	MarkerCross
)

var markerNames = [...]string{
	MarkerPoint:    "point",
	MarkerCircle:   "circle",
	MarkerSquare:   "square",
	MarkerTriangle: "triangle",
	MarkerDiamond:  "diamond",
	MarkerStar:     "star",
	MarkerPlus:     "plus",
	MarkerCross:    "cross",
}

func (k MarkerKind) String() string {
	if int(k) < len(markerNames) {
		return markerNames[k]
	}
	return "unknown"
}

// ParseMarker returns the marker kind for a name, as printed by String.
func ParseMarker(name string) (MarkerKind, bool) {
	for i, n := range markerNames {
		if n == name {
			return MarkerKind(i), true
		}
	}
	return 0, false
}

// Marker returns the outline of a marker centered on the origin with the
// given radius in canvas pixels. Plus and cross markers are open paths
// meant for stroking; all others are closed.
func Marker(kind MarkerKind, radius float32) CanvasPath {
	b := NewBuilder[Canvas]()
	switch kind {
	case MarkerPoint:
		b.Circle(0, 0, radius*0.5)
	case MarkerCircle:
		b.Circle(0, 0, radius)
	case MarkerSquare:
		b.Rect(-radius, -radius, radius, radius)
	case MarkerTriangle:
		b.Polygon(0, 0, radius, 3)
	case MarkerDiamond:
		b.Polygon(0, 0, radius, 4)
	case MarkerStar:
		b.Star(0, 0, radius, radius*0.4, 5)
	case MarkerPlus:
		b.MoveTo(-radius, 0).LineTo(radius, 0).
			MoveTo(0, -radius).LineTo(0, radius)
	case MarkerCross:
		b.MoveTo(-radius, -radius).LineTo(radius, radius).
			MoveTo(-radius, radius).LineTo(radius, -radius)
	}
	return Normalize(b.Build())
}

// Unit returns the closed unit square [0,0]..[1,1].
func Unit[S Space]() Path[S] {
	return NewBuilder[S]().Rect(0, 0, 1, 1).Build()
}

// Rect returns a closed rectangle spanning two corners.
func Rect[S Space](p0, p1 geom.Point) Path[S] {
	return NewBuilder[S]().Rect(p0.X, p0.Y, p1.X, p1.Y).Build()
}

// Polyline returns an open path through pts.
func Polyline[S Space](pts ...geom.Point) Path[S] {
	b := NewBuilder[S]()
	for i, p := range pts {
		if i == 0 {
			b.MoveTo(p.X, p.Y)
		} else {
			b.LineTo(p.X, p.Y)
		}
	}
	return b.Build()
}

// Polygon returns a closed path through pts.
func Polygon[S Space](pts ...geom.Point) Path[S] {
	b := NewBuilder[S]()
	for i, p := range pts {
		if i == 0 {
			b.MoveTo(p.X, p.Y)
		} else {
			b.LineTo(p.X, p.Y)
		}
	}
	if len(pts) > 0 {
		b.Close()
	}
	return b.Build()
}
