// Package plotgpu draws plot primitives on a GPU through batched,
// instanced draw calls.
//
// # Overview
//
// A Canvas turns paths into triangles and curved fills (package tess),
// appends them to growable vertex, index and style buffers (package
// batch) and submits them to a backend on Flush. Backends register
// themselves by name (package backend): "software" rasterizes on the CPU
// and "wgpu" renders with gogpu/wgpu.
//
// # Quick Start
//
//	import (
//		"github.com/gogpu/plotgpu"
//		"github.com/gogpu/plotgpu/backend/software"
//		"github.com/gogpu/plotgpu/geom"
//		"github.com/gogpu/plotgpu/path"
//	)
//
//	dev := software.New(400, 300)
//	c, err := plotgpu.NewCanvas(400, 300, plotgpu.WithDevice(dev))
//	if err != nil {
//		return err
//	}
//	circle := path.NewBuilder[path.Canvas]().Circle(200, 150, 80).Build()
//	style := new(plotgpu.PathStyle).SetFace(plotgpu.Red).SetEdge(plotgpu.Black).SetLineWidth(2)
//	if err := c.DrawPath(circle, style, geom.NoClip); err != nil {
//		return err
//	}
//	if err := c.Flush(); err != nil {
//		return err
//	}
//	return dev.WritePNG(f)
//
// # Coordinates
//
// Canvas coordinates are pixels with the origin at the bottom left. Line
// widths and dash lengths in PathStyle are in points; ToPx converts them
// using the scale factor set by SetScaleFactor.
//
// # Markers
//
// DrawMarkers tessellates a marker path once and draws it as one
// instance per position, each with its own scale and color.
//
// # Logging
//
// plotgpu logs through log/slog and is silent by default. See SetLogger.
package plotgpu
