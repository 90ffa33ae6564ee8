package modelcheck

import (
	"errors"
	"fmt"
	"image"

	iface "NamesConv/interface"
	"NamesConv/logger"
	"NamesConv/yolo"

	"go.uber.org/zap"
	"gocv.io/x/gocv"
)

var (
	ErrEmptyNet      = errors.New("model could not be loaded")
	ErrClassMismatch = errors.New("class count does not match model output")
)

// Inspector reloads ONNX models with the OpenCV DNN module.
type Inspector struct{}

// Inspect loads path, runs one forward pass on a grey letterbox-coloured frame and
// reads the output head.
func (Inspector) Inspect(path string, inputSize int) (iface.ModelReport, error) {
	report := iface.ModelReport{Path: path}
	net := gocv.ReadNetFromONNX(path)
	defer net.Close()
	if net.Empty() {
		return report, fmt.Errorf("%s: %w", path, ErrEmptyNet)
	}
	if err := net.SetPreferableBackend(gocv.NetBackendDefault); err != nil {
		return report, fmt.Errorf("%s: set backend: %w", path, err)
	}
	if err := net.SetPreferableTarget(gocv.NetTargetCPU); err != nil {
		return report, fmt.Errorf("%s: set target: %w", path, err)
	}

	frame := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(114, 114, 114, 0), inputSize, inputSize, gocv.MatTypeCV8UC3)
	defer frame.Close()
	blob := gocv.BlobFromImage(frame, 1.0/255.0, image.Pt(inputSize, inputSize), gocv.NewScalar(0, 0, 0, 0), true, false)
	defer blob.Close()

	net.SetInput(blob, "")
	out := net.Forward("")
	defer out.Close()

	report.Dims = out.Size()
	head, err := yolo.Layout(report.Dims)
	if err != nil {
		return report, fmt.Errorf("%s: %w", path, err)
	}
	report.Channels = head.Features
	report.Boxes = head.Candidates
	report.Classes = head.Classes(0)
	logger.Log().Info("model reloaded",
		zap.String("path", path),
		zap.Ints("dims", report.Dims),
		zap.Int("classes", report.Classes))
	return report, nil
}

// Verify checks that a names list of length n fits the reported head.
func Verify(report iface.ModelReport, n int) error {
	head := yolo.Head{Features: report.Channels, Candidates: report.Boxes}
	if !head.Matches(n) {
		return fmt.Errorf("%w: %d names, %d output features (%s)", ErrClassMismatch, n, report.Channels, report.Path)
	}
	return nil
}
