package comp

import "github.com/gopix/comp/internal/blend"

// opacityEpsilonThreshold is the tolerance used when testing whether a
// layer's opacity counts as fully opaque. Kept as a strict float
// comparison against 0.999 rather than == 1.0: the fast-path/slow-path
// boundary (and its rounding) depends on it.
const opacityEpsilonThreshold = 0.999

// opacityByte converts a linear [0,1] opacity to an 8-bit multiplier
// with round-half-up. Values outside the range are clamped.
func opacityByte(opacity float64) byte {
	if opacity <= 0 {
		return 0
	}
	if opacity >= 1 {
		return 255
	}
	return byte(opacity*255 + 0.5)
}

// compose composites src onto dst at offset (tx, ty) using the given
// blend function and opacity multiplier. dst is mutated in place.
//
// Both buffers hold straight alpha; the kernel operates on
// premultiplied values, so each pixel is premultiplied on the way in
// and unpremultiplied on the way out. The source alpha is scaled by
// the opacity multiplier before premultiplication.
func compose(dst, src *Pixmap, tx, ty int, fn blend.Func, opacity byte) {
	if opacity == 0 {
		return
	}

	// Intersection of the translated source with the destination.
	x0 := max(0, tx)
	y0 := max(0, ty)
	x1 := min(dst.width, tx+src.width)
	y1 := min(dst.height, ty+src.height)

	for y := y0; y < y1; y++ {
		srcRow := ((y-ty)*src.width + (x0 - tx)) * 4
		dstRow := (y*dst.width + x0) * 4
		for x := x0; x < x1; x++ {
			sr := src.data[srcRow+0]
			sg := src.data[srcRow+1]
			sb := src.data[srcRow+2]
			sa := blend.MulDiv255(src.data[srcRow+3], opacity)

			dr := dst.data[dstRow+0]
			dg := dst.data[dstRow+1]
			db := dst.data[dstRow+2]
			da := dst.data[dstRow+3]

			// Premultiply both operands.
			r, g, b, a := fn(
				blend.MulDiv255(sr, sa),
				blend.MulDiv255(sg, sa),
				blend.MulDiv255(sb, sa),
				sa,
				blend.MulDiv255(dr, da),
				blend.MulDiv255(dg, da),
				blend.MulDiv255(db, da),
				da,
			)

			dst.data[dstRow+0] = unmultiply(r, a)
			dst.data[dstRow+1] = unmultiply(g, a)
			dst.data[dstRow+2] = unmultiply(b, a)
			dst.data[dstRow+3] = a

			srcRow += 4
			dstRow += 4
		}
	}
}

// unmultiply converts a premultiplied channel back to straight alpha
// with round-half-up. Returns 0 when alpha is 0.
func unmultiply(c, a byte) byte {
	if a == 0 {
		return 0
	}
	v := (uint16(c)*255 + uint16(a)/2) / uint16(a)
	if v > 255 {
		return 255
	}
	return byte(v)
}
