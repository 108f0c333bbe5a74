package comp

import (
	"fmt"
	"slices"

	"github.com/gopix/comp/internal/blend"
)

// AdjustFunc is the content of an adjustment layer: a pure function
// transforming the accumulated image from the layers below. It must
// return a canvas-sized image and must not mutate its input.
type AdjustFunc func(src *Pixmap) (*Pixmap, error)

// Layer is a single entry in a composition's layer stack. It combines
// pixel content (or an adjustment function) with opacity, blend mode,
// visibility and an optional mask to produce its contribution to the
// composite.
//
// A layer is either a content layer or an adjustment layer; the kind is
// fixed at construction.
type Layer struct {
	comp *Composition
	name string

	visible   bool
	opacity   float64
	blendMode BlendMode

	isAdjustment bool

	// content pixels and their translation; nil for adjustment layers
	content *Pixmap
	tx, ty  int

	// adjust is non-nil for adjustment layers
	adjust AdjustFunc

	mask        *Mask
	maskEnabled bool

	// maskEditing tracks whether edits target the mask image rather
	// than the layer image. Related to MaskViewMode.
	maskEditing bool

	listeners []func()

	// movement bookkeeping, valid between StartMovement and EndMovement
	startTX, startTY int
}

func newLayer(c *Composition, name string) *Layer {
	return &Layer{
		comp:      c,
		name:      name,
		visible:   true,
		opacity:   1.0,
		blendMode: BlendNormal,
	}
}

// NewImageLayer creates a content layer from a pixmap. A nil content
// gets a transparent canvas-sized buffer.
func NewImageLayer(c *Composition, name string, content *Pixmap) *Layer {
	l := newLayer(c, name)
	if content == nil {
		content = NewPixmap(c.width, c.height)
	}
	l.content = content
	return l
}

// NewAdjustmentLayer creates an adjustment layer whose content is a
// function of the image beneath it.
func NewAdjustmentLayer(c *Composition, name string, adjust AdjustFunc) *Layer {
	l := newLayer(c, name)
	l.isAdjustment = true
	l.adjust = adjust
	return l
}

// Name returns the layer name.
func (l *Layer) Name() string { return l.name }

// IsVisible reports whether the layer participates in compositing.
func (l *Layer) IsVisible() bool { return l.visible }

// Opacity returns the layer opacity in [0, 1].
func (l *Layer) Opacity() float64 { return l.opacity }

// BlendingMode returns the layer blend mode.
func (l *Layer) BlendingMode() BlendMode { return l.blendMode }

// IsAdjustment reports whether this is an adjustment layer.
func (l *Layer) IsAdjustment() bool { return l.isAdjustment }

// Content returns the layer's pixel content, or nil for adjustment
// layers.
func (l *Layer) Content() *Pixmap { return l.content }

// Translation returns the content offset relative to the canvas origin.
func (l *Layer) Translation() (tx, ty int) { return l.tx, l.ty }

// Mask returns the layer's mask, or nil.
func (l *Layer) Mask() *Mask { return l.mask }

// HasMask reports whether the layer has a mask installed.
func (l *Layer) HasMask() bool { return l.mask != nil }

// IsMaskEnabled reports whether an installed mask participates in
// compositing.
func (l *Layer) IsMaskEnabled() bool { return l.maskEnabled }

// UseMask reports whether compositing should go through the mask:
// a mask is present and enabled.
func (l *Layer) UseMask() bool {
	return l.mask != nil && l.maskEnabled
}

// AddChangeListener registers a callback invoked when the layer's
// structural state changes (mask added/removed/toggled, mask editing).
// Dependent previews and icons hang off this.
func (l *Layer) AddChangeListener(fn func()) {
	l.listeners = append(l.listeners, fn)
}

func (l *Layer) notifyChangeListeners() {
	for _, fn := range l.listeners {
		fn()
	}
}

// ApplyLayer applies the effect of this layer to the accumulating
// composite image. Content layers paint onto img and return nil;
// adjustment layers may return a replacement image.
//
// The caller must filter invisible layers before dispatch; calling
// ApplyLayer on an invisible layer is a programming error.
// firstVisibleLayer must be true iff no visible layer exists below
// this one in the stack.
func (l *Layer) ApplyLayer(img *Pixmap, firstVisibleLayer bool) (*Pixmap, error) {
	if !l.visible {
		panic("ApplyLayer called on invisible layer")
	}

	if l.isAdjustment {
		return l.adjustImageWithMasksAndBlending(img, firstVisibleLayer)
	}

	if !l.UseMask() {
		fn, opacity := l.drawingComposite(firstVisibleLayer)
		compose(img, l.content, l.tx, l.ty, fn, opacity)
		return nil, nil
	}
	l.paintWithMask(img, firstVisibleLayer)
	return nil, nil
}

// paintWithMask renders the layer's content into a scratch canvas-sized
// buffer, multiplies its alpha by the mask, and composites the result
// as if it were unmasked content.
func (l *Layer) paintWithMask(img *Pixmap, firstVisibleLayer bool) {
	masked := l.comp.getScratch()
	compose(masked, l.content, l.tx, l.ty, blend.SourceOver, 255)
	l.mask.applyTo(masked)

	fn, opacity := l.drawingComposite(firstVisibleLayer)
	compose(img, masked, 0, 0, fn, opacity)

	l.comp.putScratch(masked)
}

// adjustImageWithMasksAndBlending runs the adjustment function on the
// accumulated image, applies the mask to the result, and either
// replaces the image outright (Normal blend at full opacity, no mask)
// or composites the transformed image back onto the original.
//
// The first visible layer has nothing below it to adjust, so the image
// passes through unchanged; adjustment layers never fabricate content
// from nothing.
func (l *Layer) adjustImageWithMasksAndBlending(img *Pixmap, firstVisibleLayer bool) (*Pixmap, error) {
	if firstVisibleLayer {
		return img, nil
	}

	transformed, err := l.adjust(img)
	if err != nil {
		return nil, fmt.Errorf("adjustment %q: %w", l.name, err)
	}
	if transformed.Width() != img.Width() || transformed.Height() != img.Height() {
		return nil, fmt.Errorf("adjustment %q: result is %dx%d, want %dx%d",
			l.name, transformed.Width(), transformed.Height(), img.Width(), img.Height())
	}

	if l.UseMask() {
		l.mask.applyTo(transformed)
	}
	if !l.UseMask() && l.isNormalAndOpaque() {
		return transformed, nil
	}

	fn, opacity := l.drawingComposite(false)
	compose(img, transformed, 0, 0, fn, opacity)
	return img, nil
}

// isNormalAndOpaque reports whether the layer is in Normal mode at
// (effectively) full opacity, enabling the exact-passthrough fast path.
func (l *Layer) isNormalAndOpaque() bool {
	return l.blendMode == BlendNormal && l.opacity > opacityEpsilonThreshold
}

// drawingComposite returns the blend kernel and opacity multiplier for
// painting this layer. The first visible layer is always painted in
// Normal mode; its own blend mode would have nothing to blend against.
func (l *Layer) drawingComposite(firstVisibleLayer bool) (blend.Func, byte) {
	if firstVisibleLayer {
		return blend.SourceOver, opacityByte(l.opacity)
	}
	return l.blendMode.blendFunc(), opacityByte(l.opacity)
}

// SetVisible changes the layer visibility. Setting the current value is
// a no-op.
func (l *Layer) SetVisible(visible, addToHistory bool) {
	if l.visible == visible {
		return
	}

	l.visible = visible
	l.comp.imageChanged()

	if addToHistory {
		l.comp.history.AddEdit(&visibilityEdit{layer: l, visible: visible})
	}
}

// SetOpacity changes the layer opacity.
//
// Setting the current value (bit-identical float) is a no-op: no undo
// edit is pushed and no recomposite happens. updateImage=false
// suppresses the image-changed notification, for batched interpolation
// where many intermediate values are set in a row.
//
// Opacity outside [0, 1] is a programming error.
func (l *Layer) SetOpacity(opacity float64, notifyListeners, addToHistory, updateImage bool) {
	if opacity < 0 || opacity > 1 {
		panic(fmt.Sprintf("opacity out of range: %v", opacity))
	}
	if l.opacity == opacity {
		return
	}

	if addToHistory {
		l.comp.history.AddEdit(&opacityEdit{layer: l, opacity: l.opacity})
	}

	l.opacity = opacity

	if notifyListeners {
		l.notifyChangeListeners()
	}
	if updateImage {
		l.comp.imageChanged()
	}
}

// SetBlendingMode changes the layer blend mode. Setting the current
// value is a no-op. The flags behave as in SetOpacity.
func (l *Layer) SetBlendingMode(mode BlendMode, notifyListeners, addToHistory, updateImage bool) {
	if l.blendMode == mode {
		return
	}

	if addToHistory {
		l.comp.history.AddEdit(&blendingEdit{layer: l, mode: l.blendMode})
	}

	l.blendMode = mode

	if notifyListeners {
		l.notifyChangeListeners()
	}
	if updateImage {
		l.comp.imageChanged()
	}
}

// SetName renames the layer. Renaming to the current name is a no-op.
func (l *Layer) SetName(name string, addToHistory bool) {
	if l.name == name {
		return
	}

	prev := l.name
	l.name = name
	l.notifyChangeListeners()

	if addToHistory {
		l.comp.history.AddEdit(&renameEdit{layer: l, name: prev})
	}
}

// AddMask installs a new mask built from the given type's black/white
// pattern. It fails gracefully, with a notice through the composition's
// Notifier, when the layer already has a mask or when the type needs a
// selection and none exists.
func (l *Layer) AddMask(addType MaskAddType) error {
	if l.mask != nil {
		l.comp.notifier.Info("Has Layer Mask",
			fmt.Sprintf("The layer %q already has a layer mask.", l.name))
		return fmt.Errorf("layer %q: %w", l.name, ErrMaskExists)
	}
	sel := l.comp.Selection()
	if addType.MissingSelection(sel) {
		l.comp.notifier.Info("No Selection",
			fmt.Sprintf("The composition %q has no selection.", l.comp.name))
		return fmt.Errorf("layer %q: %w", l.name, ErrNoSelection)
	}

	bw := addType.BWImage(l.comp.width, l.comp.height, sel)

	editName := "Add Layer Mask"
	deselect := addType.NeedsSelection()
	if deselect {
		editName = "Layer Mask from Selection"
	}

	l.addImageAsMask(bw, deselect, editName, false, true, true)
	return nil
}

// AddHidingMask adds a mask revealing exactly the given selection if
// the layer has no mask, or refines the existing mask in place by
// hiding the unselected region. It does not deselect and does not push
// to history; when createEdit is true the corresponding edit is
// returned for the caller to group.
func (l *Layer) AddHidingMask(sel *Selection, createEdit bool) Edit {
	if l.mask == nil {
		bw := MaskRevealSelection.BWImage(l.comp.width, l.comp.height, sel)
		return l.addImageAsMask(bw, false, "Add Layer Mask", false, false, createEdit)
	}

	var backup []uint8
	if createEdit {
		backup = slices.Clone(l.mask.data)
	}

	// Fill the unselected part with black to hide it; selected pixels
	// keep their existing values.
	mask := l.mask
	for y := 0; y < mask.height; y++ {
		for x := 0; x < mask.width; x++ {
			if !sel.Contains(x+mask.tx, y+mask.ty) {
				mask.data[y*mask.width+x] = 0
			}
		}
	}

	if createEdit {
		l.comp.imageChanged()
		return newMaskImageEdit("Modify Mask", l.comp, mask, backup)
	}
	return nil
}

// addImageAsMask converts a black/white pixmap to a mask and installs
// it. deselect folds a nested deselect into the returned edit. When
// addEdit is true the edit is pushed to history and the view switches
// to mask editing; otherwise the edit is returned for the caller to
// group (createEdit=false suppresses edit creation entirely, for
// enclosing operations that record their own).
func (l *Layer) addImageAsMask(bw *Pixmap, deselect bool, editName string,
	inheritTranslation, addEdit, createEdit bool) Edit {
	if l.mask != nil {
		panic("addImageAsMask: layer already has a mask")
	}

	mask := newMaskFromBW(bw)
	if inheritTranslation && !l.isAdjustment {
		mask.SetTranslation(l.tx, l.ty)
	}
	mask.owner = l

	l.mask = mask
	l.maskEnabled = true
	l.notifyChangeListeners()

	if !createEdit {
		// History and view updates are handled by an enclosing
		// operation recording its own edit.
		return nil
	}

	l.comp.imageChanged()

	var edit Edit = &addMaskEdit{name: editName, layer: l, mask: mask}
	if deselect {
		if deselectEdit := l.comp.Deselect(false); deselectEdit != nil {
			edit = &multiEdit{name: editName, edits: []Edit{edit, deselectEdit}}
		}
	}

	if addEdit {
		l.comp.history.AddEdit(edit)
		l.comp.activateMaskViewMode(ViewEditMask, l)
		return nil
	}
	return edit
}

// AddConfiguredMask installs a mask already configured for this layer,
// used when redoing a mask addition.
func (l *Layer) AddConfiguredMask(mask *Mask) {
	if mask == nil || mask.owner != l {
		panic("AddConfiguredMask: mask not configured for this layer")
	}

	l.mask = mask
	l.comp.imageChanged()
	l.notifyChangeListeners()
}

// AddOrReplaceMaskImage replaces the image of an existing mask, or
// installs the black/white pixmap as a new mask.
func (l *Layer) AddOrReplaceMaskImage(bw *Pixmap, editName string) {
	if !l.HasMask() {
		l.addImageAsMask(bw, false, editName, true, true, true)
		return
	}

	replacement := newMaskFromBW(bw)
	backup := l.mask.data
	backupW, backupH := l.mask.width, l.mask.height
	l.mask.data = replacement.data
	l.mask.width = replacement.width
	l.mask.height = replacement.height

	edit := newMaskImageEdit(editName, l.comp, l.mask, backup)
	edit.width = backupW
	edit.height = backupH
	l.comp.history.AddEdit(edit)
	l.comp.imageChanged()
	l.notifyChangeListeners()
}

// DeleteMask removes the mask, exits mask editing, and restores the
// normal view mode. The emitted edit captures both the removed mask
// and the prior view mode, because undo must restore which image was
// being viewed at deletion time.
func (l *Layer) DeleteMask(addToHistory bool) {
	if l.mask == nil {
		panic("DeleteMask: layer has no mask")
	}

	oldMask := l.mask
	oldMode := l.comp.maskViewMode
	l.mask = nil
	l.SetMaskEditing(false)

	if addToHistory {
		l.comp.history.AddEdit(&deleteMaskEdit{layer: l, mask: oldMask, viewMode: oldMode})
	}

	l.notifyChangeListeners()
	l.comp.activateMaskViewMode(ViewNormal, l)
	l.comp.imageChanged()
}

// SetMaskEnabled toggles whether the mask participates in compositing
// without discarding its data. Setting the current value is a no-op.
// Calling this without a mask is a programming error.
func (l *Layer) SetMaskEnabled(enabled, addToHistory bool) {
	if l.mask == nil {
		panic("SetMaskEnabled: layer has no mask")
	}
	if l.maskEnabled == enabled {
		return
	}

	l.maskEnabled = enabled
	l.comp.imageChanged()
	l.notifyChangeListeners()

	if addToHistory {
		l.comp.history.AddEdit(&enableMaskEdit{layer: l})
	}
}

// IsMaskEditing reports whether edits target the mask image.
func (l *Layer) IsMaskEditing() bool {
	if l.maskEditing && l.mask == nil {
		panic("mask editing without a mask")
	}
	return l.maskEditing
}

// SetMaskEditing switches editing between the layer image and the mask
// image. Enabling it without a mask is a programming error.
func (l *Layer) SetMaskEditing(editing bool) {
	if editing && l.mask == nil {
		panic("SetMaskEditing: layer has no mask")
	}
	if l.maskEditing == editing {
		return
	}
	l.maskEditing = editing
	l.notifyChangeListeners()
}

// StartMovement begins a drag of the edited image (layer content or
// mask, depending on the mask-editing state). Linked masks follow
// their owner's content and vice versa.
func (l *Layer) StartMovement() {
	l.startTX, l.startTY = l.tx, l.ty
	if l.mask != nil {
		l.mask.startTX, l.mask.startTY = l.mask.tx, l.mask.ty
	}
}

// MoveWhileDragging updates translations for an in-flight drag by the
// given offset from the drag start.
func (l *Layer) MoveWhileDragging(dx, dy int) {
	moveContent := !l.maskEditing || (l.mask != nil && l.mask.linked)
	moveMask := l.mask != nil && (l.maskEditing || l.mask.linked)

	if moveContent && !l.isAdjustment {
		l.tx = l.startTX + dx
		l.ty = l.startTY + dy
	}
	if moveMask {
		l.mask.tx = l.mask.startTX + dx
		l.mask.ty = l.mask.startTY + dy
	}
}

// EndMovement finishes the drag and returns an edit capturing the
// previous translations, or nil if nothing moved. The caller decides
// whether to push it to history.
func (l *Layer) EndMovement() Edit {
	moved := l.tx != l.startTX || l.ty != l.startTY
	if l.mask != nil {
		moved = moved || l.mask.tx != l.mask.startTX || l.mask.ty != l.mask.startTY
	}
	if !moved {
		return nil
	}

	edit := &translationEdit{
		layer: l,
		tx:    l.startTX,
		ty:    l.startTY,
	}
	if l.mask != nil {
		edit.maskTX = l.mask.startTX
		edit.maskTY = l.mask.startTY
	}
	l.comp.imageChanged()
	return edit
}

// Duplicate returns a deep copy of the layer, including its mask, with
// a "copy" name. The duplicate is not added to the composition.
func (l *Layer) Duplicate() *Layer {
	var d *Layer
	if l.isAdjustment {
		d = NewAdjustmentLayer(l.comp, l.name+" copy", l.adjust)
	} else {
		d = NewImageLayer(l.comp, l.name+" copy", l.content.Clone())
		d.tx, d.ty = l.tx, l.ty
	}
	d.visible = l.visible
	d.opacity = l.opacity
	d.blendMode = l.blendMode

	if l.HasMask() {
		mask := l.mask.Clone()
		mask.owner = d
		d.mask = mask
		d.maskEnabled = l.maskEnabled
	}
	return d
}

// String returns a debug description of the layer.
func (l *Layer) String() string {
	return fmt.Sprintf("{name=%q, visible=%v, mask=%v, maskEditing=%v, maskEnabled=%v, isAdjustment=%v}",
		l.name, l.visible, l.mask != nil, l.maskEditing, l.maskEnabled, l.isAdjustment)
}
