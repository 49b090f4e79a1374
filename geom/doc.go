// Package geom provides the float32 geometry primitives shared by the
// path model, the tessellators and the batch buffers: Point, Angle,
// Affine2D, Bounds and Clip.
package geom
