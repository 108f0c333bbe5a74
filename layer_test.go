package comp

import (
	"errors"
	"fmt"
	"image"
	"slices"
	"testing"
)

func newTestComp(t *testing.T, width, height int) *Composition {
	t.Helper()
	c, err := NewComposition("test", width, height)
	if err != nil {
		t.Fatalf("NewComposition: %v", err)
	}
	return c
}

func solidLayer(c *Composition, name string, col RGBA) *Layer {
	content := NewPixmap(c.Width(), c.Height())
	content.Clear(col)
	return NewImageLayer(c, name, content)
}

func invertAdjust(src *Pixmap) (*Pixmap, error) {
	out := src.Clone()
	data := out.Data()
	for i := 0; i < len(data); i += 4 {
		data[i+0] = 255 - data[i+0]
		data[i+1] = 255 - data[i+1]
		data[i+2] = 255 - data[i+2]
	}
	return out, nil
}

// installMask puts a prepared mask on a layer, bypassing the black/white
// image path, so tests can control individual mask values.
func installMask(l *Layer, m *Mask) {
	m.owner = l
	l.mask = m
	l.maskEnabled = true
}

// countImageChanges hooks a counter onto the composition's image-changed
// notification.
func countImageChanges(c *Composition) *int {
	n := new(int)
	c.AddImageChangeListener(func() { *n++ })
	return n
}

func TestApplyLayerPanicsWhenInvisible(t *testing.T) {
	c := newTestComp(t, 2, 2)
	layer := solidLayer(c, "a", RGBA{R: 255, A: 255})
	layer.SetVisible(false, false)

	defer func() {
		if recover() == nil {
			t.Error("expected panic for invisible layer")
		}
	}()
	layer.ApplyLayer(NewPixmap(2, 2), true)
}

func TestAdjustmentFirstVisiblePassesThrough(t *testing.T) {
	c := newTestComp(t, 2, 2)
	called := false
	layer := NewAdjustmentLayer(c, "adj", func(src *Pixmap) (*Pixmap, error) {
		called = true
		return invertAdjust(src)
	})

	img := NewPixmap(2, 2)
	result, err := layer.ApplyLayer(img, true)
	if err != nil {
		t.Fatalf("ApplyLayer: %v", err)
	}
	if result != img {
		t.Error("expected the input image returned unchanged")
	}
	if called {
		t.Error("expected the adjustment function not to run")
	}
}

func TestAdjustmentNormalOpaqueReplacesImage(t *testing.T) {
	c := newTestComp(t, 1, 1)
	layer := NewAdjustmentLayer(c, "invert", invertAdjust)

	img := NewPixmap(1, 1)
	img.SetPixel(0, 0, RGBA{R: 100, G: 150, B: 200, A: 255})

	result, err := layer.ApplyLayer(img, false)
	if err != nil {
		t.Fatalf("ApplyLayer: %v", err)
	}
	if result == nil || result == img {
		t.Fatal("expected a replacement image")
	}
	want := RGBA{R: 155, G: 105, B: 55, A: 255}
	if got := result.GetPixel(0, 0); got != want {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}

func TestAdjustmentHalfOpacity(t *testing.T) {
	// Inverting (100,150,200) at half opacity lands every channel on the
	// midpoint between the original and its inverse. With round-half-up
	// arithmetic that midpoint is 128.
	c := newTestComp(t, 1, 1)
	layer := NewAdjustmentLayer(c, "invert", invertAdjust)
	layer.SetOpacity(0.5, false, false, false)

	img := NewPixmap(1, 1)
	img.SetPixel(0, 0, RGBA{R: 100, G: 150, B: 200, A: 255})

	result, err := layer.ApplyLayer(img, false)
	if err != nil {
		t.Fatalf("ApplyLayer: %v", err)
	}
	if result != img {
		t.Fatal("expected in-place compositing below full opacity")
	}
	want := RGBA{R: 128, G: 128, B: 128, A: 255}
	if got := img.GetPixel(0, 0); got != want {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}

func TestAdjustmentWithBinaryMask(t *testing.T) {
	c := newTestComp(t, 2, 1)
	layer := NewAdjustmentLayer(c, "invert", invertAdjust)

	mask := NewMask(2, 1)
	mask.Set(0, 0, 255)
	installMask(layer, mask)

	img := NewPixmap(2, 1)
	img.Clear(RGBA{B: 255, A: 255})

	result, err := layer.ApplyLayer(img, false)
	if err != nil {
		t.Fatalf("ApplyLayer: %v", err)
	}
	if result != img {
		t.Fatal("expected masked adjustment to composite in place")
	}
	if got := img.GetPixel(0, 0); got != (RGBA{R: 255, G: 255, A: 255}) {
		t.Errorf("masked-in pixel: expected inverted, got %+v", got)
	}
	if got := img.GetPixel(1, 0); got != (RGBA{B: 255, A: 255}) {
		t.Errorf("masked-out pixel: expected original, got %+v", got)
	}
}

func TestAdjustmentWithGradientMask(t *testing.T) {
	c := newTestComp(t, 1, 1)
	layer := NewAdjustmentLayer(c, "invert", invertAdjust)

	mask := NewMask(1, 1)
	mask.Set(0, 0, 128)
	installMask(layer, mask)

	img := NewPixmap(1, 1)
	img.SetPixel(0, 0, RGBA{B: 255, A: 255})

	if _, err := layer.ApplyLayer(img, false); err != nil {
		t.Fatalf("ApplyLayer: %v", err)
	}
	// Half-revealed invert of pure blue: yellow and blue meet in the
	// middle, one off on blue from the alternating rounding.
	want := RGBA{R: 128, G: 128, B: 127, A: 255}
	if got := img.GetPixel(0, 0); got != want {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}

func TestAdjustmentErrorPropagates(t *testing.T) {
	c := newTestComp(t, 2, 2)
	sentinel := errors.New("filter exploded")
	layer := NewAdjustmentLayer(c, "bad", func(src *Pixmap) (*Pixmap, error) {
		return nil, sentinel
	})

	_, err := layer.ApplyLayer(NewPixmap(2, 2), false)
	if !errors.Is(err, sentinel) {
		t.Errorf("expected wrapped sentinel, got %v", err)
	}
}

func TestAdjustmentSizeMismatch(t *testing.T) {
	c := newTestComp(t, 2, 2)
	layer := NewAdjustmentLayer(c, "shrink", func(src *Pixmap) (*Pixmap, error) {
		return NewPixmap(1, 1), nil
	})

	if _, err := layer.ApplyLayer(NewPixmap(2, 2), false); err == nil {
		t.Error("expected an error for wrong result dimensions")
	}
}

func TestFirstVisibleLayerIgnoresBlendMode(t *testing.T) {
	// The first visible layer paints in Normal mode regardless of its own
	// blend mode; multiplying against an empty canvas would black it out.
	c := newTestComp(t, 1, 1)
	layer := solidLayer(c, "a", RGBA{R: 200, G: 100, B: 50, A: 255})
	layer.SetBlendingMode(BlendMultiply, false, false, false)

	img := NewPixmap(1, 1)
	if _, err := layer.ApplyLayer(img, true); err != nil {
		t.Fatalf("ApplyLayer: %v", err)
	}
	if got := img.GetPixel(0, 0); got != (RGBA{R: 200, G: 100, B: 50, A: 255}) {
		t.Errorf("expected layer color painted as-is, got %+v", got)
	}
}

func TestSetOpacitySameValueIsNoOp(t *testing.T) {
	c := newTestComp(t, 2, 2)
	layer := solidLayer(c, "a", RGBA{A: 255})
	changes := countImageChanges(c)

	layer.SetOpacity(1.0, true, true, true)

	if *changes != 0 {
		t.Errorf("expected no recomposite, got %d notifications", *changes)
	}
	if c.History().CanUndo() {
		t.Error("expected no history entry")
	}
}

func TestSetOpacityRecordsEdit(t *testing.T) {
	c := newTestComp(t, 2, 2)
	layer := solidLayer(c, "a", RGBA{A: 255})
	changes := countImageChanges(c)

	layer.SetOpacity(0.5, true, true, true)

	if layer.Opacity() != 0.5 {
		t.Errorf("expected opacity 0.5, got %v", layer.Opacity())
	}
	if *changes != 1 {
		t.Errorf("expected one recomposite, got %d", *changes)
	}
	if got := c.History().UndoName(); got != "Layer Opacity Change" {
		t.Errorf("expected opacity edit on the stack, got %q", got)
	}

	if err := c.History().Undo(); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if layer.Opacity() != 1.0 {
		t.Errorf("expected opacity restored to 1.0, got %v", layer.Opacity())
	}
	if err := c.History().Redo(); err != nil {
		t.Fatalf("Redo: %v", err)
	}
	if layer.Opacity() != 0.5 {
		t.Errorf("expected opacity 0.5 after redo, got %v", layer.Opacity())
	}
}

func TestSetOpacityPanicsOutOfRange(t *testing.T) {
	c := newTestComp(t, 2, 2)
	layer := solidLayer(c, "a", RGBA{A: 255})

	defer func() {
		if recover() == nil {
			t.Error("expected panic for opacity > 1")
		}
	}()
	layer.SetOpacity(1.5, false, false, false)
}

func TestSetOpacitySuppressedImageUpdate(t *testing.T) {
	c := newTestComp(t, 2, 2)
	layer := solidLayer(c, "a", RGBA{A: 255})
	changes := countImageChanges(c)

	// Batched interpolation: intermediate values skip the recomposite.
	layer.SetOpacity(0.3, false, false, false)
	layer.SetOpacity(0.6, false, false, false)
	layer.SetOpacity(0.9, false, false, true)

	if *changes != 1 {
		t.Errorf("expected a single recomposite at the end, got %d", *changes)
	}
}

func TestSetBlendingModeUndoRedo(t *testing.T) {
	c := newTestComp(t, 2, 2)
	layer := solidLayer(c, "a", RGBA{A: 255})

	layer.SetBlendingMode(BlendMultiply, true, true, true)
	layer.SetBlendingMode(BlendMultiply, true, true, true) // no-op

	if n := len(c.history.edits); n != 1 {
		t.Fatalf("expected 1 edit, got %d", n)
	}

	c.History().Undo()
	if layer.BlendingMode() != BlendNormal {
		t.Errorf("expected BlendNormal after undo, got %v", layer.BlendingMode())
	}
	c.History().Redo()
	if layer.BlendingMode() != BlendMultiply {
		t.Errorf("expected BlendMultiply after redo, got %v", layer.BlendingMode())
	}
}

func TestSetNameUndo(t *testing.T) {
	c := newTestComp(t, 2, 2)
	layer := solidLayer(c, "old", RGBA{A: 255})

	layer.SetName("new", true)
	layer.SetName("new", true) // no-op

	if n := len(c.history.edits); n != 1 {
		t.Fatalf("expected 1 edit, got %d", n)
	}
	c.History().Undo()
	if layer.Name() != "old" {
		t.Errorf("expected name restored, got %q", layer.Name())
	}
	c.History().Redo()
	if layer.Name() != "new" {
		t.Errorf("expected name re-applied, got %q", layer.Name())
	}
}

type recordingNotifier struct {
	titles []string
}

func (n *recordingNotifier) Info(title, message string) {
	n.titles = append(n.titles, title)
}

func TestAddMaskAlreadyExists(t *testing.T) {
	c := newTestComp(t, 2, 2)
	notifier := &recordingNotifier{}
	c.SetNotifier(notifier)
	layer := solidLayer(c, "a", RGBA{A: 255})

	if err := layer.AddMask(MaskRevealAll); err != nil {
		t.Fatalf("first AddMask: %v", err)
	}
	before := layer.Mask()

	err := layer.AddMask(MaskHideAll)
	if !errors.Is(err, ErrMaskExists) {
		t.Errorf("expected ErrMaskExists, got %v", err)
	}
	if layer.Mask() != before {
		t.Error("expected the existing mask untouched")
	}
	if len(notifier.titles) != 1 || notifier.titles[0] != "Has Layer Mask" {
		t.Errorf("expected a user notice, got %v", notifier.titles)
	}
}

func TestAddMaskNeedsSelection(t *testing.T) {
	c := newTestComp(t, 2, 2)
	notifier := &recordingNotifier{}
	c.SetNotifier(notifier)
	layer := solidLayer(c, "a", RGBA{A: 255})

	err := layer.AddMask(MaskRevealSelection)
	if !errors.Is(err, ErrNoSelection) {
		t.Errorf("expected ErrNoSelection, got %v", err)
	}
	if layer.HasMask() {
		t.Error("expected no mask installed")
	}
	if c.History().CanUndo() {
		t.Error("expected no history entry")
	}
}

func TestAddMaskRevealAll(t *testing.T) {
	c := newTestComp(t, 2, 2)
	layer := solidLayer(c, "a", RGBA{A: 255})

	if err := layer.AddMask(MaskRevealAll); err != nil {
		t.Fatalf("AddMask: %v", err)
	}
	if !layer.HasMask() || !layer.IsMaskEnabled() {
		t.Fatal("expected an enabled mask")
	}
	if got := layer.Mask().At(1, 1); got < 254 {
		t.Errorf("expected revealing mask, got %d", got)
	}
	if layer.Mask().Owner() != layer {
		t.Error("expected mask owner back-reference")
	}
	if c.MaskViewMode() != ViewEditMask {
		t.Errorf("expected mask edit view, got %v", c.MaskViewMode())
	}
	if !layer.IsMaskEditing() {
		t.Error("expected mask editing active")
	}
	if got := c.History().UndoName(); got != "Add Layer Mask" {
		t.Errorf("expected add-mask edit, got %q", got)
	}
}

func TestAddMaskFromSelectionDeselects(t *testing.T) {
	c := newTestComp(t, 4, 4)
	layer := solidLayer(c, "a", RGBA{R: 255, A: 255})
	c.SetSelection(NewSelection(RectRegion{Rect: image.Rect(0, 0, 2, 2)}))

	if err := layer.AddMask(MaskRevealSelection); err != nil {
		t.Fatalf("AddMask: %v", err)
	}
	if c.Selection() != nil {
		t.Error("expected the selection consumed")
	}
	mask := layer.Mask()
	if got := mask.At(1, 1); got < 254 {
		t.Errorf("expected selected region revealed, got %d", got)
	}
	if got := mask.At(3, 3); got != 0 {
		t.Errorf("expected unselected region hidden, got %d", got)
	}
	if got := c.History().UndoName(); got != "Layer Mask from Selection" {
		t.Errorf("expected grouped edit, got %q", got)
	}

	// One grouped undo restores both the selection and the mask-less
	// layer.
	if err := c.History().Undo(); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if layer.HasMask() {
		t.Error("expected mask removed by undo")
	}
	if c.Selection() == nil {
		t.Error("expected selection restored by undo")
	}
}

func TestMaskDeleteUndoRedoRoundTrip(t *testing.T) {
	c := newTestComp(t, 4, 4)
	layer := solidLayer(c, "a", RGBA{R: 255, A: 255})
	c.SetSelection(NewSelection(RectRegion{Rect: image.Rect(1, 1, 3, 3)}))

	if err := layer.AddMask(MaskRevealSelection); err != nil {
		t.Fatalf("AddMask: %v", err)
	}
	wantData := slices.Clone(layer.Mask().Data())
	wantMode := c.MaskViewMode()

	layer.DeleteMask(true)
	if layer.HasMask() {
		t.Fatal("expected mask deleted")
	}
	if c.MaskViewMode() != ViewNormal {
		t.Errorf("expected normal view after delete, got %v", c.MaskViewMode())
	}

	if err := c.History().Undo(); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if !layer.HasMask() || !layer.IsMaskEnabled() {
		t.Fatal("expected mask and enabled flag restored")
	}
	if !slices.Equal(layer.Mask().Data(), wantData) {
		t.Error("expected exact mask pixel data restored")
	}
	if c.MaskViewMode() != wantMode {
		t.Errorf("expected view mode %v restored, got %v", wantMode, c.MaskViewMode())
	}

	if err := c.History().Redo(); err != nil {
		t.Fatalf("Redo: %v", err)
	}
	if layer.HasMask() {
		t.Error("expected mask deleted again by redo")
	}

	if err := c.History().Undo(); err != nil {
		t.Fatalf("second Undo: %v", err)
	}
	if !layer.HasMask() || !slices.Equal(layer.Mask().Data(), wantData) {
		t.Error("expected mask restored again")
	}
}

func TestDeleteMaskPanicsWithoutMask(t *testing.T) {
	c := newTestComp(t, 2, 2)
	layer := solidLayer(c, "a", RGBA{A: 255})

	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	layer.DeleteMask(false)
}

func TestSetMaskEnabledIdempotent(t *testing.T) {
	c := newTestComp(t, 2, 2)
	layer := solidLayer(c, "a", RGBA{A: 255})
	if err := layer.AddMask(MaskRevealAll); err != nil {
		t.Fatalf("AddMask: %v", err)
	}
	baseline := len(c.history.edits)

	layer.SetMaskEnabled(false, true)
	if n := len(c.history.edits); n != baseline+1 {
		t.Fatalf("expected one new edit, got %d", n-baseline)
	}
	layer.SetMaskEnabled(false, true)
	if n := len(c.history.edits); n != baseline+1 {
		t.Errorf("expected the repeated call to record nothing, got %d edits", n-baseline)
	}

	c.History().Undo()
	if !layer.IsMaskEnabled() {
		t.Error("expected mask re-enabled by undo")
	}
	c.History().Redo()
	if layer.IsMaskEnabled() {
		t.Error("expected mask disabled by redo")
	}
}

func TestDisabledMaskIgnoredInCompositing(t *testing.T) {
	c := newTestComp(t, 2, 2)
	layer := solidLayer(c, "a", RGBA{R: 255, A: 255})
	c.AddLayer(layer, false)

	mask := NewMask(2, 2) // fully hiding
	installMask(layer, mask)

	layer.SetMaskEnabled(false, false)
	img, err := c.RenderComposite()
	if err != nil {
		t.Fatalf("RenderComposite: %v", err)
	}
	if got := img.GetPixel(0, 0); got != (RGBA{R: 255, A: 255}) {
		t.Errorf("expected disabled mask to have no effect, got %+v", got)
	}

	layer.SetMaskEnabled(true, false)
	img, err = c.RenderComposite()
	if err != nil {
		t.Fatalf("RenderComposite: %v", err)
	}
	if got := img.GetPixel(0, 0); got != Transparent {
		t.Errorf("expected enabled hiding mask to suppress the layer, got %+v", got)
	}
}

func TestSetMaskEditingPanicsWithoutMask(t *testing.T) {
	c := newTestComp(t, 2, 2)
	layer := solidLayer(c, "a", RGBA{A: 255})

	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	layer.SetMaskEditing(true)
}

func TestAddHidingMaskRefinesExisting(t *testing.T) {
	c := newTestComp(t, 2, 2)
	layer := solidLayer(c, "a", RGBA{R: 255, A: 255})
	if err := layer.AddMask(MaskRevealAll); err != nil {
		t.Fatalf("AddMask: %v", err)
	}

	sel := NewSelection(RectRegion{Rect: image.Rect(0, 0, 1, 1)})
	edit := layer.AddHidingMask(sel, true)
	if edit == nil {
		t.Fatal("expected a returned edit")
	}

	mask := layer.Mask()
	if got := mask.At(0, 0); got < 254 {
		t.Errorf("expected selected pixel to keep its value, got %d", got)
	}
	if got := mask.At(1, 1); got != 0 {
		t.Errorf("expected unselected pixel hidden, got %d", got)
	}

	c.History().AddEdit(edit)
	c.History().Undo()
	if got := mask.At(1, 1); got < 254 {
		t.Errorf("expected mask restored by undo, got %d", got)
	}
}

func TestAddHidingMaskCreatesWhenMissing(t *testing.T) {
	c := newTestComp(t, 2, 2)
	layer := solidLayer(c, "a", RGBA{R: 255, A: 255})

	sel := NewSelection(RectRegion{Rect: image.Rect(0, 0, 1, 1)})
	edit := layer.AddHidingMask(sel, true)
	if edit == nil {
		t.Fatal("expected a returned edit")
	}
	if !layer.HasMask() {
		t.Fatal("expected a mask installed")
	}
	if got := layer.Mask().At(0, 0); got < 254 {
		t.Errorf("expected selected pixel revealed, got %d", got)
	}
	if got := layer.Mask().At(1, 0); got != 0 {
		t.Errorf("expected unselected pixel hidden, got %d", got)
	}
	if c.Selection() != sel {
		t.Error("expected the selection kept")
	}
}

func TestAddOrReplaceMaskImage(t *testing.T) {
	c := newTestComp(t, 2, 2)
	layer := solidLayer(c, "a", RGBA{R: 255, A: 255})
	if err := layer.AddMask(MaskRevealAll); err != nil {
		t.Fatalf("AddMask: %v", err)
	}
	oldData := slices.Clone(layer.Mask().Data())

	layer.AddOrReplaceMaskImage(MaskHideAll.BWImage(2, 2, nil), "Replace Mask")
	if got := layer.Mask().At(0, 0); got != 0 {
		t.Errorf("expected hiding mask, got %d", got)
	}

	c.History().Undo()
	if !slices.Equal(layer.Mask().Data(), oldData) {
		t.Error("expected previous mask image restored")
	}
}

func TestLinkedMaskMovesWithContent(t *testing.T) {
	c := newTestComp(t, 4, 4)
	layer := solidLayer(c, "a", RGBA{R: 255, A: 255})
	installMask(layer, NewMask(4, 4))

	layer.StartMovement()
	layer.MoveWhileDragging(3, 2)
	edit := layer.EndMovement()
	if edit == nil {
		t.Fatal("expected a movement edit")
	}

	if tx, ty := layer.Translation(); tx != 3 || ty != 2 {
		t.Errorf("expected content at (3,2), got (%d,%d)", tx, ty)
	}
	if tx, ty := layer.Mask().Translation(); tx != 3 || ty != 2 {
		t.Errorf("expected linked mask at (3,2), got (%d,%d)", tx, ty)
	}

	c.History().AddEdit(edit)
	c.History().Undo()
	if tx, ty := layer.Translation(); tx != 0 || ty != 0 {
		t.Errorf("expected content back at origin, got (%d,%d)", tx, ty)
	}
	if tx, ty := layer.Mask().Translation(); tx != 0 || ty != 0 {
		t.Errorf("expected mask back at origin, got (%d,%d)", tx, ty)
	}
	c.History().Redo()
	if tx, _ := layer.Translation(); tx != 3 {
		t.Error("expected redo to re-apply the move")
	}
}

func TestUnlinkedMaskMovesAlone(t *testing.T) {
	c := newTestComp(t, 4, 4)
	layer := solidLayer(c, "a", RGBA{R: 255, A: 255})
	mask := NewMask(4, 4)
	mask.SetLinked(false)
	installMask(layer, mask)
	layer.SetMaskEditing(true)

	layer.StartMovement()
	layer.MoveWhileDragging(2, 0)
	layer.EndMovement()

	if tx, _ := layer.Translation(); tx != 0 {
		t.Errorf("expected content not to move, got tx=%d", tx)
	}
	if tx, _ := mask.Translation(); tx != 2 {
		t.Errorf("expected mask moved to tx=2, got %d", tx)
	}
}

func TestEndMovementWithoutDragReturnsNil(t *testing.T) {
	c := newTestComp(t, 4, 4)
	layer := solidLayer(c, "a", RGBA{R: 255, A: 255})

	layer.StartMovement()
	if edit := layer.EndMovement(); edit != nil {
		t.Errorf("expected nil edit for a zero move, got %v", edit.EditName())
	}
}

func TestDuplicate(t *testing.T) {
	c := newTestComp(t, 2, 2)
	layer := solidLayer(c, "a", RGBA{R: 255, A: 255})
	layer.SetOpacity(0.7, false, false, false)
	layer.SetBlendingMode(BlendScreen, false, false, false)
	installMask(layer, NewMask(2, 2))

	dup := layer.Duplicate()
	if dup.Name() != "a copy" {
		t.Errorf("expected name %q, got %q", "a copy", dup.Name())
	}
	if dup.Opacity() != 0.7 || dup.BlendingMode() != BlendScreen {
		t.Error("expected opacity and blend mode carried over")
	}
	if dup.Content() == layer.Content() {
		t.Error("expected a deep content copy")
	}
	if dup.Mask() == layer.Mask() {
		t.Error("expected a deep mask copy")
	}
	if dup.Mask().Owner() != dup {
		t.Error("expected the duplicate to own its mask")
	}

	// The copy is independent.
	layer.Content().SetPixel(0, 0, RGBA{})
	if got := dup.Content().GetPixel(0, 0); got.R != 255 {
		t.Errorf("expected duplicate unaffected, got %+v", got)
	}
}

func TestMaskedLayerEndToEnd(t *testing.T) {
	// Red over white through a mask revealing only the top-left pixel.
	c := newTestComp(t, 2, 2)
	c.AddLayer(solidLayer(c, "white", RGBA{R: 255, G: 255, B: 255, A: 255}), false)

	red := solidLayer(c, "red", RGBA{R: 255, A: 255})
	mask := NewMask(2, 2)
	mask.Set(0, 0, 255)
	installMask(red, mask)
	c.AddLayer(red, false)

	img, err := c.RenderComposite()
	if err != nil {
		t.Fatalf("RenderComposite: %v", err)
	}

	white := RGBA{R: 255, G: 255, B: 255, A: 255}
	if got := img.GetPixel(0, 0); got != (RGBA{R: 255, A: 255}) {
		t.Errorf("(0,0): expected red, got %+v", got)
	}
	for _, pt := range []image.Point{{1, 0}, {0, 1}, {1, 1}} {
		if got := img.GetPixel(pt.X, pt.Y); got != white {
			t.Errorf("(%d,%d): expected white, got %+v", pt.X, pt.Y, got)
		}
	}
}

func TestLayerString(t *testing.T) {
	c := newTestComp(t, 2, 2)
	layer := solidLayer(c, "a", RGBA{A: 255})
	s := fmt.Sprintf("%v", layer)
	if s == "" {
		t.Error("expected a debug description")
	}
}
