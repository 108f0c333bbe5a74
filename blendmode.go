package comp

import "github.com/gopix/comp/internal/blend"

// BlendMode selects the per-channel mixing function used when a layer
// is composited onto its backdrop. BlendNormal is plain alpha-over.
type BlendMode uint8

// The closed set of layer blend modes, in the order they appear in the
// layer mode picker of most editors.
const (
	BlendNormal BlendMode = iota
	BlendDarken
	BlendMultiply
	BlendColorBurn
	BlendLighten
	BlendScreen
	BlendColorDodge
	BlendLinearDodge
	BlendOverlay
	BlendSoftLight
	BlendHardLight
	BlendDifference
	BlendExclusion
	BlendHue
	BlendSaturation
	BlendColor
	BlendLuminosity
)

// String returns a human-readable name for the blend mode.
func (m BlendMode) String() string {
	switch m {
	case BlendNormal:
		return "Normal"
	case BlendDarken:
		return "Darken"
	case BlendMultiply:
		return "Multiply"
	case BlendColorBurn:
		return "Color Burn"
	case BlendLighten:
		return "Lighten"
	case BlendScreen:
		return "Screen"
	case BlendColorDodge:
		return "Color Dodge"
	case BlendLinearDodge:
		return "Linear Dodge"
	case BlendOverlay:
		return "Overlay"
	case BlendSoftLight:
		return "Soft Light"
	case BlendHardLight:
		return "Hard Light"
	case BlendDifference:
		return "Difference"
	case BlendExclusion:
		return "Exclusion"
	case BlendHue:
		return "Hue"
	case BlendSaturation:
		return "Saturation"
	case BlendColor:
		return "Color"
	case BlendLuminosity:
		return "Luminosity"
	default:
		return "Unknown"
	}
}

// blendFunc returns the pixel kernel for the mode. BlendMode constants
// mirror the ordering of blend.Mode, so the conversion is direct.
func (m BlendMode) blendFunc() blend.Func {
	return blend.Get(blend.Mode(m))
}

// BlendModes lists every available mode, for pickers and tests.
func BlendModes() []BlendMode {
	return []BlendMode{
		BlendNormal, BlendDarken, BlendMultiply, BlendColorBurn,
		BlendLighten, BlendScreen, BlendColorDodge, BlendLinearDodge,
		BlendOverlay, BlendSoftLight, BlendHardLight, BlendDifference,
		BlendExclusion, BlendHue, BlendSaturation, BlendColor,
		BlendLuminosity,
	}
}
