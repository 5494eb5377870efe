package inference

import (
	"context"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	stackerr "github.com/mdobak/go-xerrors"
	"gocv.io/x/gocv"
	"golang.org/x/xerrors"

	"github.com/khaledhikmat/fire-go/model"
	"github.com/khaledhikmat/fire-go/service/lgr"
)

// File names looked up, in order, when the model path is a directory
var modelFileCandidates = []string{
	"model.onnx",
	"frozen_graph.pb",
	"saved_model.pb",
}

type dnnService struct {
	net       gocv.Net
	modelFile string
}

// NewDNN loads an exported classifier from a model file or from a directory
// that holds one. The network runs on the CPU in inference mode only.
func NewDNN(modelPath string) (IService, error) {
	modelFile, err := resolveModelFile(modelPath)
	if err != nil {
		return nil, err
	}

	net := gocv.ReadNet(modelFile, "")
	if net.Empty() {
		return nil, xerrors.Errorf("error reading model %s: %w", modelFile, stackerr.New("empty network"))
	}

	if err := net.SetPreferableBackend(gocv.NetBackendDefault); err != nil {
		net.Close()
		return nil, xerrors.Errorf("error setting backend: %w", err)
	}

	if err := net.SetPreferableTarget(gocv.NetTargetCPU); err != nil {
		net.Close()
		return nil, xerrors.Errorf("error setting target: %w", err)
	}

	lgr.Logger.Info("classifier loaded",
		slog.String("model", modelFile),
		slog.String("openCV", gocv.Version()),
	)

	return &dnnService{
		net:       net,
		modelFile: modelFile,
	}, nil
}

func (svc *dnnService) Name() string {
	return "dnn"
}

func (svc *dnnService) Classify(_ context.Context, frame gocv.Mat) (model.Classification, error) {
	start := time.Now()
	result, err := svc.classify(frame)
	if err != nil {
		return model.Classification{}, xerrors.Errorf("classifying with %s: %w", svc.modelFile, err)
	}
	result.ProcTime = time.Since(start)

	return result, nil
}

func (svc *dnnService) classify(frame gocv.Mat) (model.Classification, error) {
	if frame.Empty() {
		return model.Classification{}, stackerr.New("empty frame")
	}

	// The frame is already scaled to [0,1] so the blob keeps it as is
	blob := gocv.BlobFromImage(frame, 1.0, image.Pt(model.ClassifierInputSize, model.ClassifierInputSize), gocv.NewScalar(0, 0, 0, 0), false, false)
	defer blob.Close()

	svc.net.SetInput(blob, "")

	output := svc.net.Forward("")
	defer output.Close()

	data, err := output.DataPtrFloat32()
	if err != nil {
		return model.Classification{}, xerrors.Errorf("reading classifier output: %w", err)
	}

	// data points into the output Mat which is closed on return
	scores := make([]float32, len(data))
	copy(scores, data)

	label, err := model.LabelFromScores(scores)
	if err != nil {
		return model.Classification{}, xerrors.Errorf("unexpected classifier output: %w", err)
	}

	return model.Classification{
		Label:  label,
		Scores: scores,
	}, nil
}

func (svc *dnnService) Close() error {
	return svc.net.Close()
}

func resolveModelFile(modelPath string) (string, error) {
	info, err := os.Stat(modelPath)
	if err != nil {
		return "", xerrors.Errorf("no model exists at %s: %w", modelPath, err)
	}

	if !info.IsDir() {
		return modelPath, nil
	}

	for _, candidate := range modelFileCandidates {
		file := filepath.Join(modelPath, candidate)
		if _, err := os.Stat(file); err == nil {
			return file, nil
		}
	}

	return "", xerrors.Errorf("no model file in %s (looked for %v)", modelPath, modelFileCandidates)
}
