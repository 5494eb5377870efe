package mode

import (
	"context"
	"log/slog"

	"gocv.io/x/gocv"

	"github.com/khaledhikmat/fire-go/model"
	"github.com/khaledhikmat/fire-go/pipeline"
	"github.com/khaledhikmat/fire-go/service/lgr"
)

// Probe reports what the sampler would see from the source without
// classifying anything
func Probe(_ context.Context, svcs pipeline.ServicesFactory, source model.Source) error {
	info, err := pipeline.Probe(source)
	if err != nil {
		procError(svcs.DataSvc, model.GenError("probe",
			err,
			map[string]interface{}{"source": source.String()},
			"error probing source"))
		return err
	}

	attrs := []any{
		slog.String("source", source.String()),
		slog.String("kind", source.Kind.String()),
		slog.Float64("fps", info.FPS),
		slog.Int("width", info.Width),
		slog.Int("height", info.Height),
		slog.String("openCV", gocv.Version()),
	}

	if source.Kind == model.SourceKindFile {
		step := source.SamplingStep(info.FPS)
		attrs = append(attrs,
			slog.Int("frameCount", info.FrameCount),
			slog.Int("step", step),
			slog.Int("sampledFrames", sampledFrames(info.FrameCount, step)),
		)
	}

	lgr.Logger.Info("source probed", attrs...)
	return nil
}

// sampledFrames is the number of frames a file sampler forwards
func sampledFrames(frameCount, step int) int {
	if frameCount <= 0 || step <= 0 {
		return 0
	}
	return (frameCount + step - 1) / step
}
