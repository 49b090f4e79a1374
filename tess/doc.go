// Package tess converts canvas-space paths into triangles and curved
// fills.
//
// Output goes to a Sink as it is produced. A straight triangle is filled
// solid. A curved fill (a, ctrl, b) covers one side of the quadratic
// Bezier from a to b with control ctrl: Convex is the region between the
// chord ab and the curve, Concave is the region between the curve and
// ctrl.
//
// Precondition violations panic: a cubic that was not normalized, an
// empty dash pattern, or a fill of an open path. Degenerate geometry
// (zero-length segments, parallel join lines, strokes too thin to join)
// degrades silently.
package tess
