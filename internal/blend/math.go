package blend

// MulDiv255 multiplies two byte values and divides by 255 with rounding.
// Formula: (a * b + 127) / 255
// The +127 provides round-half-up behavior (equivalent to adding 0.5
// before truncation). This is the single rounding rule used throughout
// the compositing engine.
func MulDiv255(a, b byte) byte {
	return byte((uint16(a)*uint16(b) + 127) / 255)
}

// clampAdd adds two byte values with clamping to 255.
func clampAdd(a, b byte) byte {
	sum := uint16(a) + uint16(b)
	if sum > 255 {
		return 255
	}
	return byte(sum)
}

// unmult converts a premultiplied channel back to its straight value.
// Returns 0 when alpha is 0.
func unmult(c, a byte) byte {
	if a == 0 {
		return 0
	}
	v := (uint16(c)*255 + uint16(a)/2) / uint16(a)
	if v > 255 {
		return 255
	}
	return byte(v)
}

// minByte returns the smaller of two bytes.
func minByte(a, b byte) byte {
	if a < b {
		return a
	}
	return b
}

// maxByte returns the larger of two bytes.
func maxByte(a, b byte) byte {
	if a > b {
		return a
	}
	return b
}
