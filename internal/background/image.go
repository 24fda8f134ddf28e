package background

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"

	_ "image/gif"
	_ "image/jpeg"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// decode reads the header first and refuses images whose declared area
// exceeds maxPixels, so a small compressed upload cannot force a huge
// allocation. A non-positive maxPixels uses DefaultMaxPixels.
func decode(data []byte, maxPixels int) (image.Image, error) {
	if maxPixels <= 0 {
		maxPixels = DefaultMaxPixels
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnreadableImage, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("%w: empty image", ErrUnreadableImage)
	}
	if area := int64(cfg.Width) * int64(cfg.Height); area > int64(maxPixels) {
		return nil, fmt.Errorf(
			"%w: %s %dx%d is over %d pixels",
			ErrImageTooLarge, format, cfg.Width, cfg.Height, maxPixels,
		)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnreadableImage, err)
	}
	if img.Bounds().Empty() {
		return nil, fmt.Errorf("%w: empty image", ErrUnreadableImage)
	}
	return img, nil
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// composite blends img over opaque white. The effective alpha of each pixel
// is the source alpha scaled by the matte; a nil matte keeps source alpha.
// The matte must share img's bounds.
func composite(img image.Image, matte *image.Gray) *image.RGBA {
	b := img.Bounds()
	out := image.NewRGBA(b)

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)

			a := uint32(c.A)
			if matte != nil {
				a = a * uint32(matte.GrayAt(x, y).Y) / 255
			}

			out.SetRGBA(x, y, color.RGBA{
				R: blend(c.R, a),
				G: blend(c.G, a),
				B: blend(c.B, a),
				A: 255,
			})
		}
	}

	return out
}

func blend(v uint8, a uint32) uint8 {
	return uint8((uint32(v)*a + 255*(255-a)) / 255)
}
