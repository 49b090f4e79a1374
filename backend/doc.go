// Package backend selects the device that batch buffers are flushed to.
//
// # Backend Registration
//
// Backends are registered via init() functions and selected at runtime.
// Importing a backend package registers it:
//
//	import _ "github.com/gogpu/plotgpu/backend/software"
//	import _ "github.com/gogpu/plotgpu/backend/wgpu"
//
// # Backend Selection
//
// Use Default to get the best available backend, or New to request a
// specific backend by name:
//
//	cfg := backend.Config{Width: 800, Height: 600}
//
//	// Best available: wgpu when cfg.Provider is set, otherwise software.
//	b, err := backend.Default(cfg)
//
//	// Or a specific backend.
//	b, err := backend.New(backend.BackendSoftware, cfg)
//
// # Available Backends
//
//   - "software": CPU rasterizer on golang.org/x/image/vector
//   - "wgpu": GPU pipelines on gogpu/wgpu, needs a gpucontext.DeviceProvider
package backend
