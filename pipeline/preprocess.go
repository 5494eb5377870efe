package pipeline

import (
	"image"

	"gocv.io/x/gocv"
	"golang.org/x/xerrors"

	"github.com/khaledhikmat/fire-go/model"
)

// Resize rescales a decoded 8-bit BGR frame to the classifier input: a
// 224x224 3-channel float32 Mat with values in [0,1]. The caller owns and
// must close the returned Mat.
func Resize(frame gocv.Mat) (gocv.Mat, error) {
	if frame.Empty() {
		return gocv.NewMat(), xerrors.New("cannot resize an empty frame")
	}

	if frame.Type() != gocv.MatTypeCV8UC3 {
		return gocv.NewMat(), xerrors.Errorf("unsupported frame type %v: expected 8-bit 3-channel", frame.Type())
	}

	resized := gocv.NewMat()
	defer resized.Close()
	gocv.Resize(frame, &resized, image.Pt(model.ClassifierInputSize, model.ClassifierInputSize), 0, 0, gocv.InterpolationLinear)

	normalized := gocv.NewMat()
	resized.ConvertToWithParams(&normalized, gocv.MatTypeCV32FC3, 1.0/255.0, 0)

	return normalized, nil
}
