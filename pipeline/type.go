package pipeline

import (
	"time"

	"gocv.io/x/gocv"

	"github.com/khaledhikmat/fire-go/model"
	"github.com/khaledhikmat/fire-go/service/config"
	"github.com/khaledhikmat/fire-go/service/data"
	"github.com/khaledhikmat/fire-go/service/inference"
)

// FrameData is a frame forwarded by the sampler. Mat is owned by the sampler
// and only valid until the consumer returns control to it.
type FrameData struct {
	Mat       gocv.Mat
	Index     int
	Timestamp time.Time
}

// Signature of the function that opens a video source
type CaptureOpener func(source model.Source) (Capturer, error)

type ServicesFactory struct {
	CfgSvc       config.IService
	DataSvc      data.IService
	InferenceSvc inference.IService
	// Defaults to OpenCapture
	Opener CaptureOpener
}
