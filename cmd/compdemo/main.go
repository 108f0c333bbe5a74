// Command compdemo demonstrates the comp layer compositing engine.
package main

import (
	"flag"
	"image"
	"log"

	"github.com/gopix/comp"
)

func main() {
	var (
		width  = flag.Int("width", 800, "canvas width")
		height = flag.Int("height", 600, "canvas height")
		output = flag.String("output", "demo.png", "output file")
	)
	flag.Parse()

	c, err := comp.NewComposition("demo", *width, *height)
	if err != nil {
		log.Fatalf("Failed to create composition: %v", err)
	}

	c.AddLayer(backgroundLayer(c), false)
	c.AddLayer(maskedCircleLayer(c), false)
	c.AddLayer(invertLayer(c), false)

	img, err := c.RenderComposite()
	if err != nil {
		log.Fatalf("Failed to composite: %v", err)
	}

	if err := img.SavePNG(*output); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}

	log.Printf("Demo saved to %s (%dx%d)\n", *output, *width, *height)
}

// backgroundLayer fills the canvas with a vertical gradient.
func backgroundLayer(c *comp.Composition) *comp.Layer {
	content := comp.NewPixmap(c.Width(), c.Height())
	for y := 0; y < c.Height(); y++ {
		t := float64(y) / float64(c.Height())
		col := comp.RGBA{
			R: uint8(25 + t*100),
			G: uint8(50 + t*75),
			B: uint8(100 + t*50),
			A: 255,
		}
		for x := 0; x < c.Width(); x++ {
			content.SetPixel(x, y, col)
		}
	}
	return comp.NewImageLayer(c, "background", content)
}

// maskedCircleLayer paints an orange square, masked down to a circle,
// composited in screen mode at 80% opacity.
func maskedCircleLayer(c *comp.Composition) *comp.Layer {
	content := comp.NewPixmap(c.Width(), c.Height())
	content.Clear(comp.RGBA{R: 255, G: 140, B: 0, A: 255})
	layer := comp.NewImageLayer(c, "circle", content)
	layer.SetBlendingMode(comp.BlendScreen, false, false, false)
	layer.SetOpacity(0.8, false, false, false)

	side := min(c.Width(), c.Height()) / 2
	circle := image.Rect(
		(c.Width()-side)/2, (c.Height()-side)/2,
		(c.Width()+side)/2, (c.Height()+side)/2,
	)
	c.SetSelection(comp.NewSelection(comp.EllipseRegion{Rect: circle}))
	if err := layer.AddMask(comp.MaskRevealSelection); err != nil {
		log.Fatalf("Failed to add mask: %v", err)
	}
	return layer
}

// invertLayer inverts the RGB channels of everything beneath it at
// 30% opacity.
func invertLayer(c *comp.Composition) *comp.Layer {
	layer := comp.NewAdjustmentLayer(c, "invert", func(src *comp.Pixmap) (*comp.Pixmap, error) {
		out := src.Clone()
		data := out.Data()
		for i := 0; i < len(data); i += 4 {
			data[i+0] = 255 - data[i+0]
			data[i+1] = 255 - data[i+1]
			data[i+2] = 255 - data[i+2]
		}
		return out, nil
	})
	layer.SetOpacity(0.3, false, false, false)
	return layer
}
