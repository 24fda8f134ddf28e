package background

import (
	"image"
	"image/color"
	"math"
	"testing"
)

func TestComposite(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
	img.SetNRGBA(1, 0, color.NRGBA{R: 10, G: 20, B: 30, A: 255})

	matte := image.NewGray(img.Bounds())
	matte.SetGray(0, 0, color.Gray{Y: 255})
	matte.SetGray(1, 0, color.Gray{Y: 0})

	out := composite(img, matte)

	if got := out.RGBAAt(0, 0); got != (color.RGBA{R: 10, G: 20, B: 30, A: 255}) {
		t.Errorf("foreground: got %v", got)
	}
	if got := out.RGBAAt(1, 0); got != (color.RGBA{R: 255, G: 255, B: 255, A: 255}) {
		t.Errorf("background: got %v", got)
	}
}

func TestMaskFromPrediction(t *testing.T) {
	t.Run("min max normalized", func(t *testing.T) {
		mask := maskFromPrediction([]float32{-2, 0, 2, 1}, 2)

		want := []uint8{0, 128, 255, 191}
		for i, w := range want {
			if mask.Pix[i] != w {
				t.Errorf("pix[%d]: got %d, want %d", i, mask.Pix[i], w)
			}
		}
	})

	t.Run("flat prediction keeps frame", func(t *testing.T) {
		mask := maskFromPrediction([]float32{0.3, 0.3, 0.3, 0.3}, 2)
		for i, v := range mask.Pix {
			if v != 255 {
				t.Errorf("pix[%d]: got %d, want 255", i, v)
			}
		}
	})
}

func TestFillTensor(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.SetRGBA(0, 0, color.RGBA{R: 255, G: 0, B: 0, A: 255})

	dst := make([]float32, 3)
	fillTensor(dst, img)

	want := []float32{
		(1 - 0.485) / 0.229,
		(0 - 0.456) / 0.224,
		(0 - 0.406) / 0.225,
	}
	for i := range want {
		if math.Abs(float64(dst[i]-want[i])) > 1e-5 {
			t.Errorf("channel %d: got %f, want %f", i, dst[i], want[i])
		}
	}
}
