// Package batch accumulates per-frame GPU geometry.
//
// A Buffer holds vertices, triangle indices and per-instance style
// records in growable arrays. Geometry is grouped into items: StartItem
// opens one, PushVertex and PushTriangle fill it, and FinishItem closes
// it with a style record. Calling FinishItem again before the next
// StartItem appends another instance of the same geometry.
//
// Flush uploads what changed and issues one indexed, instanced draw per
// item in the order the items were finished. Clear resets the write
// cursors for the next frame without releasing memory; backing arrays
// only grow, in fixed-size chunks.
//
// The Device and Pass interfaces are the boundary to a GPU backend. The
// core decides which ranges to draw; the backend decides how.
package batch
