// Package comp implements the layer compositing and masking engine of a
// raster image editor.
//
// A [Composition] owns an ordered stack of [Layer] values and produces
// the visible image with [Composition.RenderComposite], walking the
// stack bottom to top. Each layer contributes its content through its
// opacity, [BlendMode], visibility flag and optional [Mask]. Adjustment
// layers transform the accumulated image below them instead of carrying
// pixels of their own.
//
// Structural mutations (adding or deleting a mask, changing opacity or
// blend mode, reordering layers) emit value-typed edit records onto a
// [History] stack, so every mutation is undoable.
//
// # Pixel format
//
// All pixel buffers ([Pixmap]) store straight (non-premultiplied) RGBA
// bytes. The blending kernels premultiply internally; channel math
// rounds half-up via (a*b + 127) / 255.
//
// # Concurrency
//
// A composite pass is strictly sequential: each layer depends on the
// accumulated image from all layers below it. Per-layer resizes carry
// no such dependency and run on a worker pool. Callers must not mutate
// a layer while a composite pass is in flight; the conventional
// discipline is to drive both from a single goroutine.
package comp
