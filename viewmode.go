package comp

// MaskViewMode determines whether the layer image or the mask image is
// being viewed and edited.
type MaskViewMode uint8

const (
	// ViewNormal shows the layer image and edits the layer.
	ViewNormal MaskViewMode = iota

	// ViewShowMask shows the mask image and edits the mask.
	ViewShowMask

	// ViewEditMask shows the layer image but edits the mask.
	ViewEditMask
)

// String returns a human-readable name for the view mode.
func (m MaskViewMode) String() string {
	switch m {
	case ViewNormal:
		return "Normal"
	case ViewShowMask:
		return "Show Mask"
	case ViewEditMask:
		return "Edit Mask"
	default:
		return "Unknown"
	}
}

// editsMask reports whether the mode directs edits at the mask image
// rather than the layer image.
func (m MaskViewMode) editsMask() bool {
	return m == ViewShowMask || m == ViewEditMask
}
