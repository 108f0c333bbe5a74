package comp

// MaskAddType determines the initial black/white pattern of a newly
// added layer mask.
type MaskAddType uint8

const (
	// MaskRevealAll starts with an all-white (fully revealing) mask.
	MaskRevealAll MaskAddType = iota

	// MaskHideAll starts with an all-black (fully hiding) mask.
	MaskHideAll

	// MaskRevealSelection reveals the selected region and hides the rest.
	MaskRevealSelection

	// MaskHideSelection hides the selected region and reveals the rest.
	MaskHideSelection
)

// String returns a human-readable name for the mask type.
func (t MaskAddType) String() string {
	switch t {
	case MaskRevealAll:
		return "Reveal All"
	case MaskHideAll:
		return "Hide All"
	case MaskRevealSelection:
		return "Reveal Selection"
	case MaskHideSelection:
		return "Hide Selection"
	default:
		return "Unknown"
	}
}

// NeedsSelection reports whether this mask type derives its pattern
// from the active selection.
func (t MaskAddType) NeedsSelection() bool {
	return t == MaskRevealSelection || t == MaskHideSelection
}

// MissingSelection reports whether the mask type cannot be applied
// because it needs a selection and none exists.
func (t MaskAddType) MissingSelection(sel *Selection) bool {
	return t.NeedsSelection() && sel == nil
}

// BWImage generates the canvas-sized black/white pattern for the mask
// type. White reveals, black hides.
func (t MaskAddType) BWImage(width, height int, sel *Selection) *Pixmap {
	bw := NewPixmap(width, height)

	white := RGBA{R: 255, G: 255, B: 255, A: 255}
	black := RGBA{R: 0, G: 0, B: 0, A: 255}

	switch t {
	case MaskRevealAll:
		bw.Clear(white)
	case MaskHideAll:
		bw.Clear(black)
	case MaskRevealSelection:
		fillBySelection(bw, sel, white, black)
	case MaskHideSelection:
		fillBySelection(bw, sel, black, white)
	}
	return bw
}

// fillBySelection paints inside-selection pixels with the first color
// and the rest with the second.
func fillBySelection(bw *Pixmap, sel *Selection, inside, outside RGBA) {
	for y := 0; y < bw.Height(); y++ {
		for x := 0; x < bw.Width(); x++ {
			if sel != nil && sel.Contains(x, y) {
				bw.SetPixel(x, y, inside)
			} else {
				bw.SetPixel(x, y, outside)
			}
		}
	}
}
