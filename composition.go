package comp

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/gopix/comp/internal/imaging"
	"github.com/gopix/comp/internal/parallel"
)

// ResizeQuality selects the resampling kernel used by Resize.
type ResizeQuality uint8

const (
	// ResizeNearest is nearest-neighbor sampling. Fast, blocky.
	ResizeNearest ResizeQuality = iota

	// ResizeBilinear is approximate bilinear interpolation. The default
	// for interactive resizes.
	ResizeBilinear

	// ResizeCatmullRom is Catmull-Rom cubic interpolation. Slowest,
	// best for final output.
	ResizeCatmullRom
)

func (q ResizeQuality) imagingQuality() imaging.Quality {
	switch q {
	case ResizeNearest:
		return imaging.QualityNearest
	case ResizeCatmullRom:
		return imaging.QualityCatmullRom
	default:
		return imaging.QualityBilinear
	}
}

// Composition is an ordered stack of layers over a canvas. The layer
// list is the source of truth; the composite image is transient and
// rebuilt on demand by RenderComposite.
//
// Not safe for concurrent use: callers serialize structural mutations
// against in-flight composite passes, conventionally by driving both
// from a single goroutine.
type Composition struct {
	name   string
	width  int
	height int

	layers      []*Layer
	activeLayer *Layer

	selection    *Selection
	history      *History
	maskViewMode MaskViewMode
	notifier     Notifier

	scratch   *imaging.Pool
	listeners []func()
}

// NewComposition creates an empty composition with the given canvas
// dimensions.
func NewComposition(name string, width, height int) (*Composition, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	return &Composition{
		name:     name,
		width:    width,
		height:   height,
		history:  NewHistory(),
		notifier: logNotifier{},
		scratch:  imaging.NewPool(8),
	}, nil
}

// Name returns the composition name.
func (c *Composition) Name() string { return c.name }

// Width returns the canvas width in pixels.
func (c *Composition) Width() int { return c.width }

// Height returns the canvas height in pixels.
func (c *Composition) Height() int { return c.height }

// History returns the undo/redo stack.
func (c *Composition) History() *History { return c.history }

// SetNotifier installs the receiver for user-visible notices.
// Passing nil restores the default log-based notifier.
func (c *Composition) SetNotifier(n Notifier) {
	if n == nil {
		n = logNotifier{}
	}
	c.notifier = n
}

// MaskViewMode returns the current mask view mode.
func (c *Composition) MaskViewMode() MaskViewMode { return c.maskViewMode }

// activateMaskViewMode switches the view mode and synchronizes the
// layer's mask-editing flag with it.
func (c *Composition) activateMaskViewMode(mode MaskViewMode, layer *Layer) {
	c.maskViewMode = mode
	layer.SetMaskEditing(mode.editsMask() && layer.HasMask())
}

// AddImageChangeListener registers a callback invoked whenever the
// composite image becomes stale and must be re-rendered.
func (c *Composition) AddImageChangeListener(fn func()) {
	c.listeners = append(c.listeners, fn)
}

// imageChanged notifies listeners that the composite is stale.
func (c *Composition) imageChanged() {
	for _, fn := range c.listeners {
		fn()
	}
}

// LayerCount returns the number of layers in the stack.
func (c *Composition) LayerCount() int { return len(c.layers) }

// LayerAt returns the layer at the given stack index (0 = bottom).
func (c *Composition) LayerAt(index int) *Layer { return c.layers[index] }

// IndexOf returns the stack index of a layer, or -1.
func (c *Composition) IndexOf(layer *Layer) int {
	return slices.Index(c.layers, layer)
}

// Layers returns the layer stack, bottom to top.
func (c *Composition) Layers() []*Layer { return c.layers }

// ActiveLayer returns the active layer, or nil.
func (c *Composition) ActiveLayer() *Layer { return c.activeLayer }

// SetActiveLayer makes the given layer active. The layer must be in
// the stack.
func (c *Composition) SetActiveLayer(layer *Layer) {
	if c.IndexOf(layer) < 0 {
		panic("SetActiveLayer: layer not in composition")
	}
	c.activeLayer = layer
}

// AddLayer appends a layer to the top of the stack and makes it active.
func (c *Composition) AddLayer(layer *Layer, addToHistory bool) {
	c.insertLayerAt(layer, len(c.layers))
	if addToHistory {
		c.history.AddEdit(&addLayerEdit{comp: c, layer: layer, index: len(c.layers) - 1})
	}
}

// DeleteLayer removes a layer from the stack. Deleting a layer that is
// not in the stack is a programming error.
func (c *Composition) DeleteLayer(layer *Layer, addToHistory bool) {
	index := c.IndexOf(layer)
	if index < 0 {
		panic("DeleteLayer: layer not in composition")
	}
	if addToHistory {
		c.history.AddEdit(&deleteLayerEdit{comp: c, layer: layer, index: index})
	}
	c.removeLayerAt(index)
}

// MoveLayer moves the layer at index from to index to.
func (c *Composition) MoveLayer(from, to int, addToHistory bool) {
	if from == to {
		return
	}
	c.moveLayer(from, to)
	if addToHistory {
		c.history.AddEdit(&reorderEdit{comp: c, from: from, to: to})
	}
}

func (c *Composition) insertLayerAt(layer *Layer, index int) {
	c.layers = slices.Insert(c.layers, index, layer)
	c.activeLayer = layer
	c.imageChanged()
}

func (c *Composition) removeLayerAt(index int) {
	layer := c.layers[index]
	c.layers = slices.Delete(c.layers, index, index+1)
	if c.activeLayer == layer {
		c.activeLayer = nil
		if len(c.layers) > 0 {
			c.activeLayer = c.layers[min(index, len(c.layers)-1)]
		}
	}
	c.imageChanged()
}

func (c *Composition) moveLayer(from, to int) {
	layer := c.layers[from]
	c.layers = slices.Delete(c.layers, from, from+1)
	c.layers = slices.Insert(c.layers, to, layer)
	c.imageChanged()
}

// Selection returns the active selection, or nil.
func (c *Composition) Selection() *Selection { return c.selection }

// SetSelection installs a selection.
func (c *Composition) SetSelection(sel *Selection) {
	c.setSelection(sel)
}

func (c *Composition) setSelection(sel *Selection) {
	c.selection = sel
	c.imageChanged()
}

// Deselect clears the active selection and returns the edit capturing
// it. When addToHistory is false the edit is only returned, so an
// enclosing operation can fold it into its own undo transaction.
// Returns nil if there is no selection.
func (c *Composition) Deselect(addToHistory bool) Edit {
	if c.selection == nil {
		return nil
	}
	edit := &deselectEdit{comp: c, selection: c.selection}
	c.setSelection(nil)
	if addToHistory {
		c.history.AddEdit(edit)
		return nil
	}
	return edit
}

// RenderComposite walks the layer stack bottom to top and returns the
// composited canvas image. Invisible layers are skipped before
// dispatch. A failing layer aborts the whole pass.
func (c *Composition) RenderComposite() (*Pixmap, error) {
	start := time.Now()

	img := NewPixmap(c.width, c.height)
	firstVisibleLayer := true
	for _, layer := range c.layers {
		if !layer.IsVisible() {
			continue
		}
		result, err := layer.ApplyLayer(img, firstVisibleLayer)
		if err != nil {
			return nil, fmt.Errorf("compositing layer %q: %w", layer.name, err)
		}
		if result != nil {
			img = result
		}
		firstVisibleLayer = false
	}

	Logger().Debug("composite pass",
		"comp", c.name,
		"layers", len(c.layers),
		"duration", time.Since(start))
	return img, nil
}

// getScratch returns a zeroed canvas-sized pixmap from the scratch
// pool, for masked-layer compositing.
func (c *Composition) getScratch() *Pixmap {
	return newPixmapWithData(c.width, c.height, c.scratch.Get(c.width*c.height*4))
}

// putScratch returns a scratch pixmap's buffer to the pool.
func (c *Composition) putScratch(p *Pixmap) {
	c.scratch.Put(p.data)
}

// layerResizeResult holds the resampled buffers for one layer until
// every layer has finished, so a cancelled resize commits nothing.
type layerResizeResult struct {
	content        []uint8
	cw, ch         int
	tx, ty         int
	mask           []uint8
	mw, mh         int
	maskTX, maskTY int
}

// Resize resamples the canvas and every layer (content and mask) to
// the new dimensions. Per-layer resizes are independent and run on a
// worker pool; the call joins on completion of all of them before
// committing any state.
//
// The context is consulted between layers, not within one: a
// long-running per-layer resample runs to completion. On cancellation
// the composition is left unchanged.
func (c *Composition) Resize(ctx context.Context, width, height int, quality ResizeQuality) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	if width == c.width && height == c.height {
		return nil
	}

	sx := float64(width) / float64(c.width)
	sy := float64(height) / float64(c.height)
	q := quality.imagingQuality()

	start := time.Now()
	results := make([]layerResizeResult, len(c.layers))

	pool := parallel.NewWorkerPool(0)
	defer pool.Close()

	work := make([]func(), 0, len(c.layers))
	for i, layer := range c.layers {
		i, layer := i, layer
		work = append(work, func() {
			if ctx.Err() != nil {
				return
			}
			results[i] = resizeLayer(layer, sx, sy, q)
		})
	}
	pool.ExecuteAll(work)

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("resize cancelled: %w", err)
	}

	// Commit phase: all buffers are ready, swap them in.
	for i, layer := range c.layers {
		r := results[i]
		if r.content != nil {
			layer.content = newPixmapWithData(r.cw, r.ch, r.content)
			layer.tx, layer.ty = r.tx, r.ty
		}
		if r.mask != nil {
			layer.mask.data = r.mask
			layer.mask.width = r.mw
			layer.mask.height = r.mh
			layer.mask.tx = r.maskTX
			layer.mask.ty = r.maskTY
		}
	}

	c.width = width
	c.height = height
	if c.selection != nil {
		c.selection = NewSelection(c.selection.shape.Scale(sx, sy))
	}
	c.imageChanged()

	Logger().Debug("resize",
		"comp", c.name,
		"size", fmt.Sprintf("%dx%d", width, height),
		"layers", len(c.layers),
		"duration", time.Since(start))
	return nil
}

// resizeLayer resamples one layer's content and mask without mutating
// the layer.
func resizeLayer(layer *Layer, sx, sy float64, q imaging.Quality) layerResizeResult {
	var r layerResizeResult

	if layer.content != nil {
		cw := scaleDim(layer.content.width, sx)
		ch := scaleDim(layer.content.height, sy)
		r.content = imaging.ScaleRGBA(layer.content.data,
			layer.content.width, layer.content.height, cw, ch, q)
		r.cw, r.ch = cw, ch
		r.tx = int(float64(layer.tx)*sx + 0.5)
		r.ty = int(float64(layer.ty)*sy + 0.5)
	}

	if layer.mask != nil {
		mw := scaleDim(layer.mask.width, sx)
		mh := scaleDim(layer.mask.height, sy)
		r.mask = imaging.ScaleGray(layer.mask.data,
			layer.mask.width, layer.mask.height, mw, mh, q)
		r.mw, r.mh = mw, mh
		r.maskTX = int(float64(layer.mask.tx)*sx + 0.5)
		r.maskTY = int(float64(layer.mask.ty)*sy + 0.5)
	}

	return r
}

// scaleDim scales a dimension, never below one pixel.
func scaleDim(dim int, factor float64) int {
	scaled := int(float64(dim)*factor + 0.5)
	if scaled < 1 {
		return 1
	}
	return scaled
}
