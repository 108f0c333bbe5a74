// Package blend implements the per-pixel mixing functions used when a
// layer is composited onto its backdrop.
//
// All functions work on premultiplied alpha values in the range 0-255.
// Separable modes follow the W3C Compositing and Blending Level 1
// specification; non-separable modes (Hue, Saturation, Color,
// Luminosity) additionally require the HSL helper algorithms from
// section 8 of that specification.
//
// References:
//   - Porter-Duff: "Compositing Digital Images" (1984)
//   - W3C Compositing and Blending Level 1: https://www.w3.org/TR/compositing-1/
package blend

// Mode identifies a layer mixing function.
type Mode uint8

const (
	// ModeNormal is plain source-over alpha compositing.
	ModeNormal Mode = iota
	ModeDarken
	ModeMultiply
	ModeColorBurn
	ModeLighten
	ModeScreen
	ModeColorDodge
	ModeLinearDodge
	ModeOverlay
	ModeSoftLight
	ModeHardLight
	ModeDifference
	ModeExclusion
	ModeHue
	ModeSaturation
	ModeColor
	ModeLuminosity
)

// Func is the signature for blend operations.
// All values are premultiplied alpha, 0-255.
// Parameters:
//   - sr, sg, sb, sa: source color (red, green, blue, alpha)
//   - dr, dg, db, da: destination (backdrop) color
//
// Returns: resulting color (r, g, b, a) after blending.
type Func func(sr, sg, sb, sa, dr, dg, db, da byte) (r, g, b, a byte)

// Get returns the blend function for the given mode.
// Returns SourceOver for unknown modes (safe default).
func Get(mode Mode) Func {
	switch mode {
	case ModeNormal:
		return SourceOver
	case ModeDarken:
		return darken
	case ModeMultiply:
		return multiply
	case ModeColorBurn:
		return colorBurn
	case ModeLighten:
		return lighten
	case ModeScreen:
		return screen
	case ModeColorDodge:
		return colorDodge
	case ModeLinearDodge:
		return linearDodge
	case ModeOverlay:
		return overlay
	case ModeSoftLight:
		return softLight
	case ModeHardLight:
		return hardLight
	case ModeDifference:
		return difference
	case ModeExclusion:
		return exclusion
	case ModeHue:
		return hue
	case ModeSaturation:
		return saturation
	case ModeColor:
		return colorize
	case ModeLuminosity:
		return luminosity
	default:
		return SourceOver
	}
}

// SourceOver composites source over destination.
// Formula: S + D * (1 - Sa)
//
// This is the "Normal" layer mode: source alpha determines how much of
// the backdrop shows through.
func SourceOver(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	invSa := 255 - sa
	return clampAdd(sr, MulDiv255(dr, invSa)),
		clampAdd(sg, MulDiv255(dg, invSa)),
		clampAdd(sb, MulDiv255(db, invSa)),
		clampAdd(sa, MulDiv255(da, invSa))
}

// DestinationIn keeps the destination where the source is opaque.
// Formula: D * Sa
//
// Drawing a mask DestinationIn-style onto a layer buffer multiplies the
// buffer's alpha by the mask's alpha, which is exactly how layer masks
// restrict a layer's contribution.
func DestinationIn(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return MulDiv255(dr, sa), MulDiv255(dg, sa), MulDiv255(db, sa), MulDiv255(da, sa)
}
