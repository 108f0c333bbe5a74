package blend

import "math"

// separable applies a per-channel blend function B(Cs, Cb) using the
// general compositing formula from the W3C spec:
//
//	Result = (1 - Sa) * D + (1 - Da) * S + Sa * Da * B(Cs, Cb)
//
// where B operates on unmultiplied channel values. Source and
// destination are premultiplied on entry and the result is returned
// premultiplied.
func separable(sr, sg, sb, sa, dr, dg, db, da byte, b func(s, d byte) byte) (byte, byte, byte, byte) {
	// Fully transparent operands degenerate to plain source-over.
	if sa == 0 {
		return dr, dg, db, da
	}
	if da == 0 {
		return sr, sg, sb, sa
	}

	sur := unmult(sr, sa)
	sug := unmult(sg, sa)
	sub := unmult(sb, sa)
	dur := unmult(dr, da)
	dug := unmult(dg, da)
	dub := unmult(db, da)

	blendR := b(sur, dur)
	blendG := b(sug, dug)
	blendB := b(sub, dub)

	invSa := 255 - sa
	invDa := 255 - da
	saDa := MulDiv255(sa, da)

	outA := clampAdd(sa, MulDiv255(da, invSa))

	outR := clampAdd(clampAdd(MulDiv255(dr, invSa), MulDiv255(sr, invDa)), MulDiv255(saDa, blendR))
	outG := clampAdd(clampAdd(MulDiv255(dg, invSa), MulDiv255(sg, invDa)), MulDiv255(saDa, blendG))
	outB := clampAdd(clampAdd(MulDiv255(db, invSa), MulDiv255(sb, invDa)), MulDiv255(saDa, blendB))

	return outR, outG, outB, outA
}

// darken selects the darker channel.
// B(Cs, Cb) = min(Cs, Cb)
func darken(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return separable(sr, sg, sb, sa, dr, dg, db, da, minByte)
}

// multiply multiplies source and backdrop channels.
// B(Cs, Cb) = Cs * Cb
func multiply(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return separable(sr, sg, sb, sa, dr, dg, db, da, MulDiv255)
}

// colorBurn darkens the backdrop to reflect the source.
// B(Cs, Cb) = if Cs == 0: 0, else: 1 - min(1, (1 - Cb) / Cs)
func colorBurn(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return separable(sr, sg, sb, sa, dr, dg, db, da, func(s, d byte) byte {
		if s == 0 {
			return 0
		}
		invD := 255 - d
		v := (uint16(invD) * 255) / uint16(s)
		if v > 255 {
			return 0
		}
		return 255 - byte(v)
	})
}

// lighten selects the lighter channel.
// B(Cs, Cb) = max(Cs, Cb)
func lighten(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return separable(sr, sg, sb, sa, dr, dg, db, da, maxByte)
}

// screen produces a lighter result than multiply.
// B(Cs, Cb) = 1 - (1 - Cs) * (1 - Cb)
func screen(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return separable(sr, sg, sb, sa, dr, dg, db, da, func(s, d byte) byte {
		return 255 - MulDiv255(255-s, 255-d)
	})
}

// colorDodge brightens the backdrop to reflect the source.
// B(Cs, Cb) = if Cs == 1: 1, else: min(1, Cb / (1 - Cs))
func colorDodge(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return separable(sr, sg, sb, sa, dr, dg, db, da, func(s, d byte) byte {
		if s == 255 {
			return 255
		}
		v := (uint16(d) * 255) / uint16(255-s)
		if v > 255 {
			return 255
		}
		return byte(v)
	})
}

// linearDodge adds source and backdrop channels.
// B(Cs, Cb) = min(1, Cs + Cb)
func linearDodge(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return separable(sr, sg, sb, sa, dr, dg, db, da, clampAdd)
}

// overlay multiplies or screens depending on the backdrop.
// B(Cs, Cb) = HardLight(Cb, Cs) with operands swapped.
func overlay(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return separable(sr, sg, sb, sa, dr, dg, db, da, func(s, d byte) byte {
		return hardLightChan(d, s)
	})
}

// hardLightChan is the HardLight channel function, shared with overlay.
// if Cs <= 0.5: Multiply(Cb, 2*Cs), else: Screen(Cb, 2*Cs - 1)
// The branch bound keeps 2*s and 2*(255-s) inside byte range.
func hardLightChan(s, d byte) byte {
	if s < 128 {
		return MulDiv255(2*s, d)
	}
	return 255 - MulDiv255(2*(255-s), 255-d)
}

// hardLight multiplies or screens depending on the source.
func hardLight(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return separable(sr, sg, sb, sa, dr, dg, db, da, hardLightChan)
}

// softLight darkens or lightens depending on the source, producing a
// softer result than hardLight.
func softLight(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return separable(sr, sg, sb, sa, dr, dg, db, da, func(s, d byte) byte {
		sf := float64(s) / 255.0
		df := float64(d) / 255.0

		var v float64
		if sf <= 0.5 {
			v = df - (1-2*sf)*df*(1-df)
		} else {
			var dx float64
			if df <= 0.25 {
				dx = ((16*df-12)*df + 4) * df
			} else {
				dx = math.Sqrt(df)
			}
			v = df + (2*sf-1)*(dx-df)
		}

		if v < 0 {
			return 0
		}
		if v > 1 {
			return 255
		}
		return byte(v*255 + 0.5)
	})
}

// difference produces the absolute channel difference.
// B(Cs, Cb) = |Cs - Cb|
func difference(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return separable(sr, sg, sb, sa, dr, dg, db, da, func(s, d byte) byte {
		if s > d {
			return s - d
		}
		return d - s
	})
}

// exclusion is similar to difference but with lower contrast.
// B(Cs, Cb) = Cs + Cb - 2 * Cs * Cb
func exclusion(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return separable(sr, sg, sb, sa, dr, dg, db, da, func(s, d byte) byte {
		sum := uint16(s) + uint16(d)
		prod := uint16(MulDiv255(s, d))
		v := sum - 2*prod
		if v > 255 {
			return 255
		}
		return byte(v)
	})
}
