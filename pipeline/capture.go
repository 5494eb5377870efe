package pipeline

import (
	"gocv.io/x/gocv"
	"golang.org/x/xerrors"

	"github.com/khaledhikmat/fire-go/model"
)

// Capturer is a decoded video stream
type Capturer interface {
	// Read decodes the next frame into m. It returns false on end of stream
	// or read failure.
	Read(m *gocv.Mat) bool
	FPS() float64
	Close() error
}

type CaptureInfo struct {
	FPS        float64 `json:"fps"`
	Width      int     `json:"width"`
	Height     int     `json:"height"`
	FrameCount int     `json:"frameCount"`
}

type videoCapture struct {
	vc *gocv.VideoCapture
}

// OpenCapture opens a video file or a live capture device
func OpenCapture(source model.Source) (Capturer, error) {
	vc, err := openVideoCapture(source)
	if err != nil {
		return nil, err
	}
	return &videoCapture{vc: vc}, nil
}

// Probe reports the properties of a source without reading any frame
func Probe(source model.Source) (CaptureInfo, error) {
	vc, err := openVideoCapture(source)
	if err != nil {
		return CaptureInfo{}, err
	}
	defer vc.Close()

	return CaptureInfo{
		FPS:        vc.Get(gocv.VideoCaptureFPS),
		Width:      int(vc.Get(gocv.VideoCaptureFrameWidth)),
		Height:     int(vc.Get(gocv.VideoCaptureFrameHeight)),
		FrameCount: int(vc.Get(gocv.VideoCaptureFrameCount)),
	}, nil
}

func openVideoCapture(source model.Source) (*gocv.VideoCapture, error) {
	var vc *gocv.VideoCapture
	var err error

	switch source.Kind {
	case model.SourceKindLive:
		vc, err = gocv.VideoCaptureDevice(source.DeviceID)
	default:
		vc, err = gocv.VideoCaptureFile(source.Path)
	}
	if err != nil {
		return nil, xerrors.Errorf("error opening %s source %s: %w", source.Kind, source, err)
	}

	if !vc.IsOpened() {
		vc.Close()
		return nil, xerrors.Errorf("%s source %s is not opened", source.Kind, source)
	}

	return vc, nil
}

func (c *videoCapture) Read(m *gocv.Mat) bool {
	return c.vc.Read(m)
}

func (c *videoCapture) FPS() float64 {
	return c.vc.Get(gocv.VideoCaptureFPS)
}

func (c *videoCapture) Close() error {
	return c.vc.Close()
}
