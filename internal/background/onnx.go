package background

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"sync"

	ort "github.com/yalue/onnxruntime_go"
	"golang.org/x/image/draw"

	"github.com/JaimeStill/vibematch/pkg/lifecycle"
)

var (
	imagenetMean = [3]float32{0.485, 0.456, 0.406}
	imagenetStd  = [3]float32{0.229, 0.224, 0.225}
)

// onnxRemover runs a single-input, single-output salient object model. The
// session binds its tensors at creation, so runs are serialized by mu.
type onnxRemover struct {
	cfg    Config
	logger *slog.Logger

	mu      sync.Mutex
	session *ort.AdvancedSession
	input   *ort.Tensor[float32]
	output  *ort.Tensor[float32]
}

func newONNX(cfg *Config, logger *slog.Logger) *onnxRemover {
	return &onnxRemover{
		cfg:    *cfg,
		logger: logger,
	}
}

func (r *onnxRemover) Start(lc *lifecycle.Coordinator) error {
	r.logger.Info("loading segmentation model", "model", r.cfg.ModelPath, "size", r.cfg.Size)

	if r.cfg.LibraryPath != "" {
		ort.SetSharedLibraryPath(r.cfg.LibraryPath)
	}

	if !ort.IsInitialized() {
		if err := ort.InitializeEnvironment(); err != nil {
			return fmt.Errorf("initialize onnxruntime: %w", err)
		}
	}

	size := int64(r.cfg.Size)

	input, err := ort.NewEmptyTensor[float32](ort.NewShape(1, 3, size, size))
	if err != nil {
		return fmt.Errorf("allocate input tensor: %w", err)
	}

	output, err := ort.NewEmptyTensor[float32](ort.NewShape(1, 1, size, size))
	if err != nil {
		input.Destroy()
		return fmt.Errorf("allocate output tensor: %w", err)
	}

	session, err := ort.NewAdvancedSession(
		r.cfg.ModelPath,
		[]string{r.cfg.InputName},
		[]string{r.cfg.OutputName},
		[]ort.Value{input},
		[]ort.Value{output},
		nil,
	)
	if err != nil {
		input.Destroy()
		output.Destroy()
		return fmt.Errorf("create session: %w", err)
	}

	r.mu.Lock()
	r.session = session
	r.input = input
	r.output = output
	r.mu.Unlock()

	lc.OnRelease(func() {
		r.logger.Info("releasing segmentation model")
		r.close()
	})

	r.logger.Info("segmentation model loaded")
	return nil
}

func (r *onnxRemover) close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.session != nil {
		if err := r.session.Destroy(); err != nil {
			r.logger.Error("session destroy failed", "error", err)
		}
		r.session = nil
	}
	if r.input != nil {
		r.input.Destroy()
		r.input = nil
	}
	if r.output != nil {
		r.output.Destroy()
		r.output = nil
	}
	if err := ort.DestroyEnvironment(); err != nil {
		r.logger.Error("environment destroy failed", "error", err)
	}
}

func (r *onnxRemover) Remove(ctx context.Context, input []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	img, err := decode(input, r.cfg.MaxPixels)
	if err != nil {
		return nil, err
	}

	size := r.cfg.Size
	scaled := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.CatmullRom.Scale(scaled, scaled.Bounds(), img, img.Bounds(), draw.Src, nil)

	pred, err := r.predict(scaled)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransform, err)
	}

	mask := maskFromPrediction(pred, size)
	matte := image.NewGray(img.Bounds())
	draw.CatmullRom.Scale(matte, matte.Bounds(), mask, mask.Bounds(), draw.Src, nil)

	out, err := encodePNG(composite(img, matte))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransform, err)
	}

	r.logger.DebugContext(
		ctx, "background removed",
		"width", img.Bounds().Dx(),
		"height", img.Bounds().Dy(),
	)

	return out, nil
}

func (r *onnxRemover) predict(scaled *image.RGBA) ([]float32, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.session == nil {
		return nil, ErrNotStarted
	}

	fillTensor(r.input.GetData(), scaled)

	if err := r.session.Run(); err != nil {
		return nil, fmt.Errorf("run session: %w", err)
	}

	pred := make([]float32, len(r.output.GetData()))
	copy(pred, r.output.GetData())
	return pred, nil
}

// fillTensor writes img into dst in planar CHW order. Channels are scaled by
// the brightest channel value, then standardized with ImageNet statistics.
func fillTensor(dst []float32, img *image.RGBA) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	plane := w * h

	var peak uint8
	for i := 0; i < len(img.Pix); i += 4 {
		peak = max(peak, img.Pix[i], img.Pix[i+1], img.Pix[i+2])
	}
	if peak == 0 {
		peak = 1
	}
	scale := float32(peak)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			off := img.PixOffset(b.Min.X+x, b.Min.Y+y)
			idx := y*w + x
			for ch := 0; ch < 3; ch++ {
				v := float32(img.Pix[off+ch]) / scale
				dst[ch*plane+idx] = (v - imagenetMean[ch]) / imagenetStd[ch]
			}
		}
	}
}

// maskFromPrediction min-max normalizes the first output plane into an 8-bit
// mask. A flat prediction carries no foreground signal and keeps the whole frame.
func maskFromPrediction(pred []float32, size int) *image.Gray {
	mask := image.NewGray(image.Rect(0, 0, size, size))
	plane := pred[:size*size]

	lo, hi := plane[0], plane[0]
	for _, v := range plane {
		lo = min(lo, v)
		hi = max(hi, v)
	}

	if hi <= lo {
		for i := range mask.Pix {
			mask.Pix[i] = 255
		}
		return mask
	}

	span := hi - lo
	for i, v := range plane {
		mask.Pix[i] = uint8((v-lo)/span*255 + 0.5)
	}
	return mask
}
