package comp

import (
	"errors"
	"slices"
)

// Edit is an undoable record of a structural mutation. Each edit
// captures the previous value of whatever it mutated; Undo and Redo
// replay by swapping the captured value with the live one, so an edit
// depends on no shared state beyond the fields it names.
type Edit interface {
	// EditName returns the user-visible description of the edit.
	EditName() string

	Undo()
	Redo()
}

// Undo/redo stack errors.
var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// History is the undo/redo stack structural mutations push their edit
// records onto.
//
// Not safe for concurrent use; callers serialize history access with
// composite passes and mutations.
type History struct {
	edits []Edit
	index int // number of applied edits; edits[index:] are redoable
}

// NewHistory creates an empty history.
func NewHistory() *History {
	return &History{}
}

// AddEdit pushes an edit, discarding any redoable tail.
func (h *History) AddEdit(e Edit) {
	if e == nil {
		return
	}
	h.edits = append(h.edits[:h.index], e)
	h.index++
}

// CanUndo reports whether there is an edit to undo.
func (h *History) CanUndo() bool {
	return h.index > 0
}

// CanRedo reports whether there is an edit to redo.
func (h *History) CanRedo() bool {
	return h.index < len(h.edits)
}

// Undo reverts the most recent edit.
func (h *History) Undo() error {
	if !h.CanUndo() {
		return ErrNothingToUndo
	}
	h.index--
	h.edits[h.index].Undo()
	return nil
}

// Redo re-applies the most recently undone edit.
func (h *History) Redo() error {
	if !h.CanRedo() {
		return ErrNothingToRedo
	}
	h.edits[h.index].Redo()
	h.index++
	return nil
}

// UndoName returns the name of the edit Undo would revert, or "".
func (h *History) UndoName() string {
	if !h.CanUndo() {
		return ""
	}
	return h.edits[h.index-1].EditName()
}

// RedoName returns the name of the edit Redo would re-apply, or "".
func (h *History) RedoName() string {
	if !h.CanRedo() {
		return ""
	}
	return h.edits[h.index].EditName()
}

// Clear drops all edits.
func (h *History) Clear() {
	h.edits = nil
	h.index = 0
}

// opacityEdit captures a layer's previous opacity. Undo and Redo swap
// the stored value with the live one.
type opacityEdit struct {
	layer   *Layer
	opacity float64
}

func (e *opacityEdit) EditName() string { return "Layer Opacity Change" }

func (e *opacityEdit) Undo() { e.swap() }
func (e *opacityEdit) Redo() { e.swap() }

func (e *opacityEdit) swap() {
	prev := e.layer.opacity
	e.layer.SetOpacity(e.opacity, true, false, true)
	e.opacity = prev
}

// blendingEdit captures a layer's previous blend mode.
type blendingEdit struct {
	layer *Layer
	mode  BlendMode
}

func (e *blendingEdit) EditName() string { return "Blending Mode Change" }

func (e *blendingEdit) Undo() { e.swap() }
func (e *blendingEdit) Redo() { e.swap() }

func (e *blendingEdit) swap() {
	prev := e.layer.blendMode
	e.layer.SetBlendingMode(e.mode, true, false, true)
	e.mode = prev
}

// visibilityEdit records a visibility change.
type visibilityEdit struct {
	layer   *Layer
	visible bool
}

func (e *visibilityEdit) EditName() string {
	if e.visible {
		return "Show Layer"
	}
	return "Hide Layer"
}

func (e *visibilityEdit) Undo() { e.layer.SetVisible(!e.visible, false) }
func (e *visibilityEdit) Redo() { e.layer.SetVisible(e.visible, false) }

// renameEdit captures a layer's previous name.
type renameEdit struct {
	layer *Layer
	name  string
}

func (e *renameEdit) EditName() string { return "Rename Layer" }

func (e *renameEdit) Undo() { e.swap() }
func (e *renameEdit) Redo() { e.swap() }

func (e *renameEdit) swap() {
	prev := e.layer.name
	e.layer.SetName(e.name, false)
	e.name = prev
}

// addMaskEdit records the adding of a layer mask. Undo deletes the
// mask, remembering the view mode at that moment so Redo can restore
// both the mask and the view.
type addMaskEdit struct {
	name     string
	layer    *Layer
	mask     *Mask
	viewMode MaskViewMode
}

func (e *addMaskEdit) EditName() string { return e.name }

func (e *addMaskEdit) Undo() {
	// The view mode has to be captured here: it may have changed since
	// the mask was added.
	e.viewMode = e.layer.comp.maskViewMode
	e.layer.DeleteMask(false)
}

func (e *addMaskEdit) Redo() {
	e.layer.AddConfiguredMask(e.mask)
	e.layer.comp.activateMaskViewMode(e.viewMode, e.layer)
}

// deleteMaskEdit records the deletion of a layer mask together with
// the view mode active at deletion time, because undo must restore
// which image (layer or mask) was being viewed.
type deleteMaskEdit struct {
	layer    *Layer
	mask     *Mask
	viewMode MaskViewMode
}

func (e *deleteMaskEdit) EditName() string { return "Delete Layer Mask" }

func (e *deleteMaskEdit) Undo() {
	e.layer.AddConfiguredMask(e.mask)
	e.layer.comp.activateMaskViewMode(e.viewMode, e.layer)
}

func (e *deleteMaskEdit) Redo() {
	e.layer.DeleteMask(false)
}

// enableMaskEdit records a mask enable/disable toggle.
type enableMaskEdit struct {
	layer *Layer
}

func (e *enableMaskEdit) EditName() string {
	if e.layer.maskEnabled {
		return "Enable Layer Mask"
	}
	return "Disable Layer Mask"
}

func (e *enableMaskEdit) Undo() { e.layer.SetMaskEnabled(!e.layer.maskEnabled, false) }
func (e *enableMaskEdit) Redo() { e.layer.SetMaskEnabled(!e.layer.maskEnabled, false) }

// maskImageEdit captures a mask's previous pixel data, for in-place
// mask modifications such as hiding the unselected region.
type maskImageEdit struct {
	name   string
	comp   *Composition
	mask   *Mask
	data   []uint8
	width  int
	height int
}

func newMaskImageEdit(name string, comp *Composition, mask *Mask, backup []uint8) *maskImageEdit {
	return &maskImageEdit{
		name:   name,
		comp:   comp,
		mask:   mask,
		data:   backup,
		width:  mask.width,
		height: mask.height,
	}
}

func (e *maskImageEdit) EditName() string { return e.name }

func (e *maskImageEdit) Undo() { e.swap() }
func (e *maskImageEdit) Redo() { e.swap() }

func (e *maskImageEdit) swap() {
	prevData := slices.Clone(e.mask.data)
	prevW, prevH := e.mask.width, e.mask.height

	e.mask.data = e.data
	e.mask.width = e.width
	e.mask.height = e.height

	e.data = prevData
	e.width = prevW
	e.height = prevH

	e.comp.imageChanged()
	e.mask.owner.notifyChangeListeners()
}

// translationEdit captures the previous content and mask translations
// after a drag.
type translationEdit struct {
	layer          *Layer
	tx, ty         int
	maskTX, maskTY int
}

func (e *translationEdit) EditName() string { return "Move Layer" }

func (e *translationEdit) Undo() { e.swap() }
func (e *translationEdit) Redo() { e.swap() }

func (e *translationEdit) swap() {
	l := e.layer
	e.tx, l.tx = l.tx, e.tx
	e.ty, l.ty = l.ty, e.ty
	if l.mask != nil {
		e.maskTX, l.mask.tx = l.mask.tx, e.maskTX
		e.maskTY, l.mask.ty = l.mask.ty, e.maskTY
	}
	l.comp.imageChanged()
}

// deselectEdit records the clearing of the active selection.
type deselectEdit struct {
	comp      *Composition
	selection *Selection
}

func (e *deselectEdit) EditName() string { return "Deselect" }

func (e *deselectEdit) Undo() { e.comp.setSelection(e.selection) }
func (e *deselectEdit) Redo() { e.comp.setSelection(nil) }

// addLayerEdit records the adding of a layer at an index.
type addLayerEdit struct {
	comp  *Composition
	layer *Layer
	index int
}

func (e *addLayerEdit) EditName() string { return "Add Layer" }

func (e *addLayerEdit) Undo() { e.comp.removeLayerAt(e.index) }
func (e *addLayerEdit) Redo() { e.comp.insertLayerAt(e.layer, e.index) }

// deleteLayerEdit records the deletion of a layer from an index.
type deleteLayerEdit struct {
	comp  *Composition
	layer *Layer
	index int
}

func (e *deleteLayerEdit) EditName() string { return "Delete Layer" }

func (e *deleteLayerEdit) Undo() { e.comp.insertLayerAt(e.layer, e.index) }
func (e *deleteLayerEdit) Redo() { e.comp.removeLayerAt(e.index) }

// reorderEdit records a layer order change.
type reorderEdit struct {
	comp     *Composition
	from, to int
}

func (e *reorderEdit) EditName() string { return "Layer Order Change" }

func (e *reorderEdit) Undo() { e.comp.moveLayer(e.to, e.from) }
func (e *reorderEdit) Redo() { e.comp.moveLayer(e.from, e.to) }

// multiEdit groups edits performed as one user-level operation, such
// as a mask addition followed by a nested deselect.
type multiEdit struct {
	name  string
	edits []Edit
}

func (e *multiEdit) EditName() string { return e.name }

func (e *multiEdit) Undo() {
	for i := len(e.edits) - 1; i >= 0; i-- {
		e.edits[i].Undo()
	}
}

func (e *multiEdit) Redo() {
	for _, edit := range e.edits {
		edit.Redo()
	}
}
