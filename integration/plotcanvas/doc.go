// Package plotcanvas shows plotgpu plots in gogpu GPU-accelerated windows.
//
// The data flow is:
//
//	plotgpu.Canvas (draw) -> backend image -> GPU texture -> window
//
// # Usage
//
//	import _ "github.com/gogpu/plotgpu/backend/wgpu" // optional GPU backend
//
//	surface, err := plotcanvas.New(app.GPUContextProvider(), 800, 600)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer surface.Close()
//
//	app.OnDraw(func(dc *gogpu.Context) {
//	    _ = surface.Draw(func(c *plotgpu.Canvas) error {
//	        return c.DrawPath(line, style, geom.NoClip)
//	    })
//	    _ = surface.RenderTo(dc.AsTextureDrawer())
//	})
//
// The package depends on gpucontext interfaces only, never on gogpu.
package plotcanvas
