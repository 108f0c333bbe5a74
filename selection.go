package comp

import "image"

// Region is a 2D shape in canvas coordinates, used as the selection
// outline when deriving masks.
type Region interface {
	// Contains reports whether the pixel at (x, y) is inside the region.
	Contains(x, y int) bool

	// Bounds returns the bounding rectangle of the region.
	Bounds() image.Rectangle

	// Scale returns the region scaled by the given factors, for canvas
	// resizes.
	Scale(sx, sy float64) Region
}

// RectRegion is a rectangular region.
type RectRegion struct {
	Rect image.Rectangle
}

// Contains reports whether the pixel at (x, y) is inside the rectangle.
func (r RectRegion) Contains(x, y int) bool {
	return image.Pt(x, y).In(r.Rect)
}

// Bounds returns the rectangle itself.
func (r RectRegion) Bounds() image.Rectangle {
	return r.Rect
}

// Scale returns the rectangle scaled by the given factors.
func (r RectRegion) Scale(sx, sy float64) Region {
	return RectRegion{Rect: image.Rect(
		int(float64(r.Rect.Min.X)*sx+0.5),
		int(float64(r.Rect.Min.Y)*sy+0.5),
		int(float64(r.Rect.Max.X)*sx+0.5),
		int(float64(r.Rect.Max.Y)*sy+0.5),
	)}
}

// EllipseRegion is an elliptical region inscribed in a rectangle.
type EllipseRegion struct {
	Rect image.Rectangle
}

// Contains reports whether the pixel center at (x, y) falls inside the
// ellipse.
func (e EllipseRegion) Contains(x, y int) bool {
	rx := float64(e.Rect.Dx()) / 2
	ry := float64(e.Rect.Dy()) / 2
	if rx <= 0 || ry <= 0 {
		return false
	}
	cx := float64(e.Rect.Min.X) + rx
	cy := float64(e.Rect.Min.Y) + ry
	dx := (float64(x) + 0.5 - cx) / rx
	dy := (float64(y) + 0.5 - cy) / ry
	return dx*dx+dy*dy <= 1
}

// Bounds returns the bounding rectangle of the ellipse.
func (e EllipseRegion) Bounds() image.Rectangle {
	return e.Rect
}

// Scale returns the ellipse scaled by the given factors.
func (e EllipseRegion) Scale(sx, sy float64) Region {
	return EllipseRegion{Rect: RectRegion{Rect: e.Rect}.Scale(sx, sy).Bounds()}
}

// Selection is the active selection of a composition: the region of
// the canvas that editing operations are restricted to.
type Selection struct {
	shape Region
}

// NewSelection creates a selection from a region shape.
func NewSelection(shape Region) *Selection {
	return &Selection{shape: shape}
}

// Shape returns the selection's region.
func (s *Selection) Shape() Region {
	return s.shape
}

// Contains reports whether the pixel at (x, y) is selected.
func (s *Selection) Contains(x, y int) bool {
	return s.shape.Contains(x, y)
}
