package extract

import (
	"bytes"
	"context"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"slices"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/rs/zerolog/log"
	_ "golang.org/x/image/webp"

	"github.com/hyperifyio/blogdigest/internal/content"
	"github.com/hyperifyio/blogdigest/internal/preprocess"
)

const (
	// DefaultMaxDimension bounds the longest side of an image sent to OCR.
	DefaultMaxDimension = 1024
	// DefaultMaxPixels rejects images whose decoded size would be far
	// larger than their upload, about 89 megapixels.
	DefaultMaxPixels = 89_478_485
	// enhanceFactor is applied to both contrast and sharpness.
	enhanceFactor = 1.5
)

// smoothKernel is the 3x3 smoothing filter the sharpness step blends against.
var smoothKernel = [9]float64{
	1, 1, 1,
	1, 5, 1,
	1, 1, 1,
}

// Image extracts text from an uploaded picture. The picture is flattened
// onto white, scaled down, enhanced for legibility and passed to OCR.
type Image struct {
	OCR Recognizer
	// MaxDimension bounds width and height after scaling. Zero means
	// DefaultMaxDimension.
	MaxDimension int
	// MaxPixels bounds width*height read from the image header before the
	// pixels are decoded. Zero means DefaultMaxPixels.
	MaxPixels int
}

func (x Image) Extract(ctx context.Context, ref content.Reference) (*content.ExtractionResult, error) {
	if len(ref.Data) == 0 {
		return nil, content.Errorf(content.KindEmptyInput, "image input is empty")
	}
	if x.OCR == nil {
		return nil, content.Errorf(content.KindExtraction, "no OCR engine configured")
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(ref.Data))
	if err != nil {
		return nil, content.Wrap(content.KindExtraction, err, "read image header")
	}
	maxPixels := x.MaxPixels
	if maxPixels <= 0 {
		maxPixels = DefaultMaxPixels
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || int64(cfg.Width)*int64(cfg.Height) > int64(maxPixels) {
		return nil, content.Wrap(content.KindExtraction, errTooManyPixels,
			"image is %dx%d, limit is %d pixels", cfg.Width, cfg.Height, maxPixels)
	}
	img, _, err := image.Decode(bytes.NewReader(ref.Data))
	if err != nil {
		return nil, content.Wrap(content.KindExtraction, err, "decode image")
	}

	maxDim := x.MaxDimension
	if maxDim <= 0 {
		maxDim = DefaultMaxDimension
	}
	processed := Enhance(img, maxDim)

	var buf bytes.Buffer
	if err := png.Encode(&buf, processed); err != nil {
		return nil, content.Wrap(content.KindExtraction, err, "encode image")
	}
	raw, err := x.OCR.Recognize(ctx, buf.Bytes())
	if err != nil {
		return nil, content.Wrap(content.KindExtraction, err, "recognize text")
	}
	raw = strings.TrimSpace(raw)
	pb := processed.Bounds()
	log.Debug().Str("format", format).Int("width", cfg.Width).Int("height", cfg.Height).
		Int("chars", len(raw)).Msg("image text recognized")

	source := ref.Name
	if source == "" {
		source = "uploaded_image"
	}
	return &content.ExtractionResult{
		Source:  source,
		RawText: raw,
		Text:    preprocess.Text(raw),
		Metadata: content.Metadata{Image: &content.ImageMetadata{
			Format:          strings.ToUpper(format),
			Mode:            colorMode(cfg.ColorModel),
			Width:           cfg.Width,
			Height:          cfg.Height,
			ProcessedWidth:  pb.Dx(),
			ProcessedHeight: pb.Dy(),
		}},
	}, nil
}

// Enhance flattens img onto an opaque white background, scales it to fit in
// a maxDim square without upscaling, then raises contrast and sharpness and
// removes speckle noise with a 3x3 median filter.
func Enhance(img image.Image, maxDim int) *image.NRGBA {
	b := img.Bounds()
	out := imaging.New(b.Dx(), b.Dy(), color.White)
	out = imaging.Overlay(out, img, image.Pt(0, 0), 1.0)
	if b.Dx() > maxDim || b.Dy() > maxDim {
		out = imaging.Fit(out, maxDim, maxDim, imaging.Lanczos)
	}

	gray := meanGray(out)
	out = blend(imaging.New(out.Bounds().Dx(), out.Bounds().Dy(), color.NRGBA{R: gray, G: gray, B: gray, A: 255}), out, enhanceFactor)

	smooth := imaging.Convolve3x3(out, smoothKernel, &imaging.ConvolveOptions{Normalize: true})
	out = blend(smooth, out, enhanceFactor)

	return median3(out)
}

// meanGray is the rounded average luminance of img.
func meanGray(img *image.NRGBA) uint8 {
	var sum, n float64
	for i := 0; i+3 < len(img.Pix); i += 4 {
		r, g, b := float64(img.Pix[i]), float64(img.Pix[i+1]), float64(img.Pix[i+2])
		sum += 0.299*r + 0.587*g + 0.114*b
		n++
	}
	if n == 0 {
		return 0
	}
	return uint8(sum/n + 0.5)
}

// blend extrapolates from base towards img by factor: 0 yields base,
// 1 yields img and larger values exaggerate the difference. Both images
// must have the same size.
func blend(base, img *image.NRGBA, factor float64) *image.NRGBA {
	out := image.NewNRGBA(img.Rect)
	for i := 0; i+3 < len(img.Pix) && i+3 < len(base.Pix); i += 4 {
		for c := 0; c < 3; c++ {
			d := float64(base.Pix[i+c])
			out.Pix[i+c] = clamp8(d + factor*(float64(img.Pix[i+c])-d))
		}
		out.Pix[i+3] = img.Pix[i+3]
	}
	return out
}

// median3 replaces every channel value with the median of its 3x3
// neighbourhood, clamping at the edges.
func median3(img *image.NRGBA) *image.NRGBA {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	out := image.NewNRGBA(img.Rect)
	var window [9]uint8
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			o := y*out.Stride + x*4
			for c := 0; c < 3; c++ {
				k := 0
				for dy := -1; dy <= 1; dy++ {
					yy := min(max(y+dy, 0), h-1)
					for dx := -1; dx <= 1; dx++ {
						xx := min(max(x+dx, 0), w-1)
						window[k] = img.Pix[yy*img.Stride+xx*4+c]
						k++
					}
				}
				slices.Sort(window[:])
				out.Pix[o+c] = window[4]
			}
			out.Pix[o+3] = img.Pix[y*img.Stride+x*4+3]
		}
	}
	return out
}

func clamp8(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 255:
		return 255
	}
	return uint8(v + 0.5)
}

// colorMode names a color model the way image tools usually report it.
func colorMode(m color.Model) string {
	if _, ok := m.(color.Palette); ok {
		return "P"
	}
	switch m {
	case color.GrayModel, color.Gray16Model:
		return "L"
	case color.CMYKModel:
		return "CMYK"
	case color.YCbCrModel:
		return "RGB"
	case color.NYCbCrAModel, color.RGBAModel, color.RGBA64Model, color.NRGBAModel, color.NRGBA64Model:
		return "RGBA"
	case color.AlphaModel, color.Alpha16Model:
		return "A"
	}
	return "RGB"
}
