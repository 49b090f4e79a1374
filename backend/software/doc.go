// Package software implements batch.Backend on the CPU.
//
// Buffers live in host memory. Each draw call is decoded the way the GPU
// pipelines read it and rasterized with golang.org/x/image/vector into an
// *image.RGBA, which makes the package useful for headless rendering and
// for testing batch output without a GPU.
//
// Importing the package registers it with the backend registry as
// "software".
package software
