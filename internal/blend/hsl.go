// Non-separable blend modes (Hue, Saturation, Color, Luminosity) per
// section 8 of the W3C Compositing and Blending Level 1 specification.
// These operate on the whole RGB triplet and need the luminance and
// saturation helper algorithms below.

package blend

// lum returns the luminance of a color using BT.601 coefficients.
// Formula: Lum(C) = 0.30*r + 0.59*g + 0.11*b
func lum(r, g, b float64) float64 {
	return 0.30*r + 0.59*g + 0.11*b
}

// sat returns the saturation (max - min) of a color.
func sat(r, g, b float64) float64 {
	return max3(r, g, b) - min3(r, g, b)
}

// clipColor clips color components to [0,1] while preserving luminance.
// Out-of-range components are scaled towards the luminance so the
// relative channel relationships survive.
func clipColor(r, g, b float64) (float64, float64, float64) {
	l := lum(r, g, b)
	n := min3(r, g, b)
	x := max3(r, g, b)

	if n < 0 {
		r = l + (r-l)*l/(l-n)
		g = l + (g-l)*l/(l-n)
		b = l + (b-l)*l/(l-n)
	}
	if x > 1 {
		r = l + (r-l)*(1-l)/(x-l)
		g = l + (g-l)*(1-l)/(x-l)
		b = l + (b-l)*(1-l)/(x-l)
	}
	return r, g, b
}

// setLum adjusts a color to the given luminance, preserving hue.
func setLum(r, g, b, l float64) (float64, float64, float64) {
	d := l - lum(r, g, b)
	return clipColor(r+d, g+d, b+d)
}

// setSat adjusts a color to the given saturation, preserving hue and
// the min/mid/max channel ordering.
func setSat(r, g, b, s float64) (float64, float64, float64) {
	// Identify min, mid and max channels by index.
	ch := [3]float64{r, g, b}
	minI, midI, maxI := 0, 1, 2
	if ch[minI] > ch[midI] {
		minI, midI = midI, minI
	}
	if ch[midI] > ch[maxI] {
		midI, maxI = maxI, midI
	}
	if ch[minI] > ch[midI] {
		minI, midI = midI, minI
	}

	if ch[maxI] > ch[minI] {
		ch[midI] = (ch[midI] - ch[minI]) * s / (ch[maxI] - ch[minI])
		ch[maxI] = s
	} else {
		ch[midI] = 0
		ch[maxI] = 0
	}
	ch[minI] = 0
	return ch[0], ch[1], ch[2]
}

// nonSeparable applies a triplet blend function using the same outer
// compositing formula as separable modes.
func nonSeparable(sr, sg, sb, sa, dr, dg, db, da byte, b func(sr, sg, sb, dr, dg, db float64) (float64, float64, float64)) (byte, byte, byte, byte) {
	if sa == 0 {
		return dr, dg, db, da
	}
	if da == 0 {
		return sr, sg, sb, sa
	}

	sur := float64(unmult(sr, sa)) / 255
	sug := float64(unmult(sg, sa)) / 255
	sub := float64(unmult(sb, sa)) / 255
	dur := float64(unmult(dr, da)) / 255
	dug := float64(unmult(dg, da)) / 255
	dub := float64(unmult(db, da)) / 255

	br, bg, bb := b(sur, sug, sub, dur, dug, dub)

	invSa := 255 - sa
	invDa := 255 - da
	saDa := MulDiv255(sa, da)

	outA := clampAdd(sa, MulDiv255(da, invSa))
	outR := clampAdd(clampAdd(MulDiv255(dr, invSa), MulDiv255(sr, invDa)), MulDiv255(saDa, toByte(br)))
	outG := clampAdd(clampAdd(MulDiv255(dg, invSa), MulDiv255(sg, invDa)), MulDiv255(saDa, toByte(bg)))
	outB := clampAdd(clampAdd(MulDiv255(db, invSa), MulDiv255(sb, invDa)), MulDiv255(saDa, toByte(bb)))

	return outR, outG, outB, outA
}

// hue keeps the hue of the source with the saturation and luminance of
// the backdrop. B(Cs, Cb) = SetLum(SetSat(Cs, Sat(Cb)), Lum(Cb))
func hue(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return nonSeparable(sr, sg, sb, sa, dr, dg, db, da,
		func(sr, sg, sb, dr, dg, db float64) (float64, float64, float64) {
			r, g, b := setSat(sr, sg, sb, sat(dr, dg, db))
			return setLum(r, g, b, lum(dr, dg, db))
		})
}

// saturation keeps the saturation of the source with the hue and
// luminance of the backdrop.
// B(Cs, Cb) = SetLum(SetSat(Cb, Sat(Cs)), Lum(Cb))
func saturation(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return nonSeparable(sr, sg, sb, sa, dr, dg, db, da,
		func(sr, sg, sb, dr, dg, db float64) (float64, float64, float64) {
			r, g, b := setSat(dr, dg, db, sat(sr, sg, sb))
			return setLum(r, g, b, lum(dr, dg, db))
		})
}

// colorize keeps the hue and saturation of the source with the
// luminance of the backdrop. B(Cs, Cb) = SetLum(Cs, Lum(Cb))
func colorize(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return nonSeparable(sr, sg, sb, sa, dr, dg, db, da,
		func(sr, sg, sb, dr, dg, db float64) (float64, float64, float64) {
			return setLum(sr, sg, sb, lum(dr, dg, db))
		})
}

// luminosity keeps the luminance of the source with the hue and
// saturation of the backdrop. B(Cs, Cb) = SetLum(Cb, Lum(Cs))
func luminosity(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return nonSeparable(sr, sg, sb, sa, dr, dg, db, da,
		func(sr, sg, sb, dr, dg, db float64) (float64, float64, float64) {
			return setLum(dr, dg, db, lum(sr, sg, sb))
		})
}

func min3(a, b, c float64) float64 {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}

func max3(a, b, c float64) float64 {
	m := a
	if b > m {
		m = b
	}
	if c > m {
		m = c
	}
	return m
}

// toByte converts a normalized float channel back to a byte with
// round-half-up and clamping.
func toByte(v float64) byte {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return byte(v*255 + 0.5)
}
