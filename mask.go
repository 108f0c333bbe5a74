package comp

import (
	"image"

	"github.com/gopix/comp/internal/blend"
)

// Mask is a single-channel alpha mask restricting a layer's visible
// contribution. Values range from 0 (fully hidden) to 255 (fully
// visible).
//
// A mask carries its own translation relative to the canvas origin and
// need not match the canvas size; samples outside its bounds read as 0,
// fully suppressing the layer there.
//
// The owner back-reference is a non-owning relation: the layer owns the
// mask, the mask merely knows which layer it belongs to.
type Mask struct {
	width  int
	height int
	data   []uint8

	tx, ty int
	owner  *Layer

	// linked means the mask moves together with the owner's content
	// during drag operations.
	linked bool

	// movement bookkeeping, valid between StartMovement and EndMovement
	startTX, startTY int
}

// NewMask creates a new fully hidden mask with the given dimensions.
func NewMask(width, height int) *Mask {
	return &Mask{
		width:  width,
		height: height,
		data:   make([]uint8, width*height),
		linked: true,
	}
}

// newMaskFromBW builds a mask from a black/white pixmap: the luminance
// of each pixel becomes the mask alpha (black hides, white reveals).
func newMaskFromBW(bw *Pixmap) *Mask {
	mask := NewMask(bw.Width(), bw.Height())
	for y := 0; y < mask.height; y++ {
		for x := 0; x < mask.width; x++ {
			c := bw.GetPixel(x, y)
			mask.data[y*mask.width+x] = luminance(c.R, c.G, c.B)
		}
	}
	return mask
}

// luminance converts an RGB triplet to a gray value using BT.601
// coefficients, computed in integer math.
func luminance(r, g, b uint8) uint8 {
	return uint8((77*uint32(r) + 150*uint32(g) + 29*uint32(b)) >> 8)
}

// Bounds returns the mask dimensions as an image.Rectangle.
func (m *Mask) Bounds() image.Rectangle {
	return image.Rect(0, 0, m.width, m.height)
}

// Width returns the mask width.
func (m *Mask) Width() int { return m.width }

// Height returns the mask height.
func (m *Mask) Height() int { return m.height }

// At returns the mask value at (x, y) in mask-local coordinates.
// Returns 0 for coordinates outside the mask bounds.
func (m *Mask) At(x, y int) uint8 {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return 0
	}
	return m.data[y*m.width+x]
}

// AtCanvas returns the mask value for a canvas coordinate, reading the
// mask through its translation offset.
func (m *Mask) AtCanvas(x, y int) uint8 {
	return m.At(x-m.tx, y-m.ty)
}

// Set sets the mask value at (x, y). Out-of-bounds writes are ignored.
func (m *Mask) Set(x, y int, value uint8) {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return
	}
	m.data[y*m.width+x] = value
}

// Fill fills the entire mask with a value.
func (m *Mask) Fill(value uint8) {
	for i := range m.data {
		m.data[i] = value
	}
}

// Invert inverts all mask values (255 - value).
func (m *Mask) Invert() {
	for i := range m.data {
		m.data[i] = 255 - m.data[i]
	}
}

// Clone creates a copy of the mask, including translation and link
// state but not the owner.
func (m *Mask) Clone() *Mask {
	clone := NewMask(m.width, m.height)
	copy(clone.data, m.data)
	clone.tx = m.tx
	clone.ty = m.ty
	clone.linked = m.linked
	return clone
}

// Data returns the underlying mask data slice.
func (m *Mask) Data() []uint8 {
	return m.data
}

// Owner returns the layer this mask belongs to, or nil if the mask is
// not installed on a layer.
func (m *Mask) Owner() *Layer {
	return m.owner
}

// Translation returns the mask offset relative to the canvas origin.
func (m *Mask) Translation() (tx, ty int) {
	return m.tx, m.ty
}

// SetTranslation sets the mask offset relative to the canvas origin.
func (m *Mask) SetTranslation(tx, ty int) {
	m.tx = tx
	m.ty = ty
}

// IsLinked reports whether the mask moves together with its owner's
// content during drag operations.
func (m *Mask) IsLinked() bool {
	return m.linked
}

// SetLinked sets whether the mask moves together with its owner's
// content.
func (m *Mask) SetLinked(linked bool) {
	m.linked = linked
}

// applyTo multiplies the alpha channel of a canvas-sized pixmap by the
// mask, reading the mask through its translation offset. Pixels outside
// the mask bounds end up fully transparent.
func (m *Mask) applyTo(p *Pixmap) {
	for y := 0; y < p.height; y++ {
		row := y * p.width * 4
		for x := 0; x < p.width; x++ {
			i := row + x*4 + 3
			p.data[i] = blend.MulDiv255(p.data[i], m.AtCanvas(x, y))
		}
	}
}

// ToPixmap renders the mask as an opaque grayscale pixmap, for
// previews and round-tripping through black/white images.
func (m *Mask) ToPixmap() *Pixmap {
	p := NewPixmap(m.width, m.height)
	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			v := m.data[y*m.width+x]
			p.SetPixel(x, y, RGBA{R: v, G: v, B: v, A: 255})
		}
	}
	return p
}

