package pipeline

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"

	"github.com/khaledhikmat/fire-go/model"
	"github.com/khaledhikmat/fire-go/service/config"
	"github.com/khaledhikmat/fire-go/service/data"
	"github.com/khaledhikmat/fire-go/service/inference"
)

// fakeCapture decodes a fixed number of synthetic frames. The blue channel of
// each frame carries its index modulo 256.
type fakeCapture struct {
	frames int
	fps    float64
	read   int
	closed bool
}

func (c *fakeCapture) Read(m *gocv.Mat) bool {
	if c.closed || c.read >= c.frames {
		return false
	}

	frame := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(float64(c.read%256), 64, 128, 0), 48, 64, gocv.MatTypeCV8UC3)
	defer frame.Close()
	frame.CopyTo(m)

	c.read++
	return true
}

func (c *fakeCapture) FPS() float64 {
	return c.fps
}

func (c *fakeCapture) Close() error {
	c.closed = true
	return nil
}

type testConfig struct {
	config.IService
	folder string
}

func (c testConfig) GetResultLogFile() string     { return filepath.Join(c.folder, "framebyframe.txt") }
func (c testConfig) GetDetectionsLogFile() string { return filepath.Join(c.folder, "detections.log") }
func (c testConfig) GetStatsFolder() string       { return filepath.Join(c.folder, "stats") }
func (c testConfig) GetLivePeriodMillis() int     { return 1 }

func newTestServices(t *testing.T, capture Capturer, scores []float32) ServicesFactory {
	cfgSvc := testConfig{IService: config.NewHardCoded(), folder: t.TempDir()}

	dataSvc, err := data.NewFilesDB(cfgSvc)
	require.NoError(t, err)

	return ServicesFactory{
		CfgSvc:       cfgSvc,
		DataSvc:      dataSvc,
		InferenceSvc: inference.NewFake(scores),
		Opener: func(model.Source) (Capturer, error) {
			return capture, nil
		},
	}
}
