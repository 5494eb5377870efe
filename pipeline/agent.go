package pipeline

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/xerrors"

	"github.com/khaledhikmat/fire-go/model"
	"github.com/khaledhikmat/fire-go/service/lgr"
	"github.com/khaledhikmat/fire-go/service/metrics"
)

var console = NewConsole(os.Stdout)

// Agent runs one inference session over a source: open, then
// read/sample/classify/write until the stream ends or a quit is signalled,
// then close. Errors and stats are reported on the given streams without
// blocking. Running out of frames is not an error; failing to open the
// source, the result log or classifying a frame is.
func Agent(canxCtx context.Context,
	svcs ServicesFactory,
	errorStream chan interface{},
	statsStream chan interface{},
	source model.Source) error {
	runID := uuid.NewString()
	cfgSvc := svcs.CfgSvc

	lgr.Logger.Info(
		"agent starting....",
		slog.String("runID", runID),
		slog.String("source", source.String()),
		slog.String("kind", source.Kind.String()),
		slog.String("classifier", svcs.InferenceSvc.Name()),
		slog.String("resultLog", cfgSvc.GetResultLogFile()),
		slog.String("preview", cfgSvc.GetPreview()),
	)

	var agentStartTime = time.Now()
	runStats := model.RunStats{
		ID:        runID,
		Source:    source.String(),
		Kind:      source.Kind.String(),
		ResultLog: cfgSvc.GetResultLogFile(),
	}

	// The result log exists even when the source cannot be opened
	recorder, err := NewRecorder(cfgSvc.GetResultLogFile(), cfgSvc.GetDetectionsLogFile())
	if err != nil {
		report(errorStream, model.GenError("agent_recorder", err, nil, "error creating result log"))
		return err
	}
	defer func() {
		if err := recorder.Close(); err != nil {
			report(errorStream, model.GenError("agent_recorder", err, nil, "error closing result log"))
		}
	}()

	opener := svcs.Opener
	if opener == nil {
		opener = OpenCapture
	}

	capture, err := opener(source)
	if err != nil {
		report(errorStream, model.GenError("agent_sampler",
			err,
			map[string]interface{}{"source": source.String()},
			"error opening source"))
		return err
	}

	preview := NewPreviewer(cfgSvc.GetPreview())
	defer preview.Close()

	sampler := NewSampler(source, capture, time.Duration(cfgSvc.GetLivePeriodMillis())*time.Millisecond, preview.QuitRequested)

	classifierStats := model.ClassifierStats{
		Name:  svcs.InferenceSvc.Name(),
		RunID: runID,
	}
	var totalProcTime time.Duration
	var runErr error

	for frame := range sampler.Frames(canxCtx) {
		result, err := classifyFrame(canxCtx, svcs, frame)
		if err != nil {
			classifierStats.Errors++
			report(errorStream, model.GenError("agent_classifier",
				err,
				map[string]interface{}{"frame": frame.Index},
				"error classifying frame %d", frame.Index))
			runErr = err
			break
		}
		result.RunID = runID

		if err := recorder.Record(result); err != nil {
			report(errorStream, model.GenError("agent_recorder", err, nil, "error recording frame %d", frame.Index))
			runErr = err
			break
		}

		classifierStats.Frames++
		totalProcTime += result.ProcTime
		if result.Label == model.Fire {
			classifierStats.Fire++
		} else {
			classifierStats.NoFire++
		}
		metrics.ClassificationsTotal.WithLabelValues(result.Label.String()).Inc()
		metrics.InferenceDuration.Observe(result.ProcTime.Seconds())

		console.Print(result.Label)
		preview.Show(frame.Mat, result.Label)

		if err := svcs.DataSvc.NewClassification(result); err != nil {
			lgr.Logger.Error(
				"failed to store classification",
				slog.Int("frame", frame.Index),
				slog.Any("error", err),
			)
		}
	}

	if classifierStats.Frames > 0 {
		classifierStats.AvgProcTime = totalProcTime.Seconds() / float64(classifierStats.Frames)
	}

	samplerStats := sampler.Stats()
	samplerStats.RunID = runID

	runStats.Labels = recorder.Lines()
	runStats.Uptime = int64(time.Since(agentStartTime).Seconds())

	report(statsStream, samplerStats)
	report(statsStream, classifierStats)
	report(statsStream, runStats)

	lgr.Logger.Info(
		"agent finished",
		slog.String("runID", runID),
		slog.Int("frames", samplerStats.Frames),
		slog.Int("forwarded", samplerStats.Forwarded),
		slog.Int("labels", runStats.Labels),
		slog.Int("fire", classifierStats.Fire),
		slog.Int("noFire", classifierStats.NoFire),
	)

	return runErr
}

// classifyFrame resizes a sampled frame and runs the classifier on it
func classifyFrame(ctx context.Context, svcs ServicesFactory, frame FrameData) (model.Classification, error) {
	start := time.Now()

	resized, err := Resize(frame.Mat)
	defer resized.Close()
	if err != nil {
		return model.Classification{}, xerrors.Errorf("error resizing frame: %w", err)
	}

	result, err := svcs.InferenceSvc.Classify(ctx, resized)
	if err != nil {
		return model.Classification{}, err
	}

	result.Frame = frame.Index
	result.Timestamp = frame.Timestamp.Unix()
	result.ProcTime = time.Since(start)
	return result, nil
}

// WARNING: We must not block the sampling loop on a slow stats consumer
func report(stream chan interface{}, v interface{}) {
	if stream == nil {
		return
	}

	select {
	case stream <- v:
	default:
		lgr.Logger.Warn("stream full, dropping report", slog.Any("report", v))
	}
}
