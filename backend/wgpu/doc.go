//go:build !nogpu

// Package wgpu implements batch.Backend on the gogpu/wgpu HAL.
//
// The backend owns one render pipeline per batch.Kind, compiled from
// embedded WGSL, and renders into an offscreen MSAA target that is
// resolved and read back into an *image.RGBA at the end of each frame.
//
// The GPU device is shared with the host application through a
// gpucontext.DeviceProvider whose HalDevice and HalQueue methods return
// the HAL device and queue:
//
//	b, err := wgpu.New(app.GPUContextProvider(), 800, 600)
//	if err != nil {
//		return err
//	}
//	defer b.Destroy()
//
// Importing the package registers it with the backend registry as
// "wgpu". The registry skips it when backend.Config has no Provider.
//
// Build with -tags nogpu to exclude the package.
package wgpu
