package imaging

import (
	"image"

	"golang.org/x/image/draw"
)

// Quality selects the resampling kernel used when scaling layer and
// mask buffers.
type Quality uint8

const (
	// QualityNearest is nearest-neighbor sampling. Fast, blocky.
	QualityNearest Quality = iota

	// QualityBilinear is approximate bilinear interpolation.
	// The default for interactive resizes.
	QualityBilinear

	// QualityCatmullRom is Catmull-Rom cubic interpolation.
	// Slowest, best for final output.
	QualityCatmullRom
)

// scaler returns the x/image scaler for a quality setting.
func scaler(q Quality) draw.Scaler {
	switch q {
	case QualityNearest:
		return draw.NearestNeighbor
	case QualityCatmullRom:
		return draw.CatmullRom
	default:
		return draw.ApproxBiLinear
	}
}

// ScaleRGBA resamples a straight-alpha RGBA buffer (4 bytes per pixel,
// row-major) from sw x sh to dw x dh.
func ScaleRGBA(src []uint8, sw, sh, dw, dh int, q Quality) []uint8 {
	srcImg := &image.NRGBA{
		Pix:    src,
		Stride: sw * 4,
		Rect:   image.Rect(0, 0, sw, sh),
	}
	dstImg := image.NewNRGBA(image.Rect(0, 0, dw, dh))

	scaler(q).Scale(dstImg, dstImg.Rect, srcImg, srcImg.Rect, draw.Src, nil)
	return dstImg.Pix
}

// ScaleGray resamples a single-channel buffer (1 byte per pixel,
// row-major) from sw x sh to dw x dh. Used for mask resizes.
func ScaleGray(src []uint8, sw, sh, dw, dh int, q Quality) []uint8 {
	srcImg := &image.Gray{
		Pix:    src,
		Stride: sw,
		Rect:   image.Rect(0, 0, sw, sh),
	}
	dstImg := image.NewGray(image.Rect(0, 0, dw, dh))

	scaler(q).Scale(dstImg, dstImg.Rect, srcImg, srcImg.Rect, draw.Src, nil)
	return dstImg.Pix
}
