// Package path defines the drawing-command model consumed by the
// tessellators.
//
// A Path is an immutable sequence of codes (MoveTo, LineTo, Bezier2,
// Bezier3, ClosePoly). Its type parameter tags the coordinate space the
// points live in: Data for untransformed user coordinates, Canvas for
// device pixels. Only Transform converts between the two, so feeding
// untransformed geometry into a device-space tessellator does not compile.
//
// ClosePoly carries the last explicit vertex of the subpath. Closing
// draws the edge to that vertex and then the edge back to the point
// established by the subpath's MoveTo.
package path
