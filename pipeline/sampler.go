package pipeline

import (
	"context"
	"iter"
	"log/slog"
	"time"

	"gocv.io/x/gocv"

	"github.com/khaledhikmat/fire-go/model"
	"github.com/khaledhikmat/fire-go/service/lgr"
	"github.com/khaledhikmat/fire-go/service/metrics"
)

const defaultLivePeriod = time.Second

// Sampler selects the frames of a stream that get classified.
//
// File sources forward one frame per second of footage: the frame with
// zero-based index i is forwarded iff i % floor(fps) == 0. Live sources
// forward every frame but throttle the loop to one pass per period by
// sleeping for whatever the consumer left of it. When the consumer takes
// longer than the period the loop falls behind real time; no frame is dropped.
type Sampler struct {
	source  model.Source
	capture Capturer
	period  time.Duration
	quit    func() bool

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration)

	stats model.SamplerStats
}

// NewSampler takes ownership of capture and releases it when the frame
// sequence ends. quit is polled once per pass and may be nil.
func NewSampler(source model.Source, capture Capturer, period time.Duration, quit func() bool) *Sampler {
	if period <= 0 {
		period = defaultLivePeriod
	}

	return &Sampler{
		source:  source,
		capture: capture,
		period:  period,
		quit:    quit,
		now:     time.Now,
		sleep:   sleepContext,
		stats: model.SamplerStats{
			Name:   "sampler",
			Source: source.String(),
			Kind:   source.Kind.String(),
		},
	}
}

// Frames returns the lazy sequence of forwarded frames. It ends on end of
// stream, read failure, context cancellation, quit signal or when the
// consumer stops ranging. The sequence can only be consumed once.
func (s *Sampler) Frames(ctx context.Context) iter.Seq[FrameData] {
	return func(yield func(FrameData) bool) {
		startTime := s.now()
		defer func() {
			s.stats.Uptime = int64(s.now().Sub(startTime).Seconds())
			s.release()
		}()

		s.stats.SourceFPS = s.capture.FPS()
		s.stats.Step = 1
		if s.source.Kind == model.SourceKindFile {
			s.stats.Step = s.source.SamplingStep(s.stats.SourceFPS)
		}

		lgr.Logger.Info("sampler starting",
			slog.String("source", s.source.String()),
			slog.String("kind", s.source.Kind.String()),
			slog.Float64("fps", s.stats.SourceFPS),
			slog.Int("step", s.stats.Step),
			slog.Duration("period", s.period),
		)

		img := gocv.NewMat()
		defer img.Close() // Crucial to close the image to avoid memory leaks

		kind := s.source.Kind.String()
		for index := 0; ; index++ {
			if ok := s.capture.Read(&img); !ok || img.Empty() {
				if s.source.Kind == model.SourceKindLive {
					s.stats.Errors++
				}
				lgr.Logger.Info("sampler reached end of stream",
					slog.Int("frames", s.stats.Frames),
					slog.Int("forwarded", s.stats.Forwarded),
				)
				return
			}
			s.stats.Frames++
			metrics.FramesReadTotal.WithLabelValues(kind).Inc()

			switch s.source.Kind {
			case model.SourceKindLive:
				before := s.now()
				if !s.forward(yield, img, index) {
					return
				}
				remaining := s.period - s.now().Sub(before)
				if remaining > 0 {
					s.sleep(ctx, remaining)
				} else {
					s.stats.Overruns++
					metrics.ThrottleOverrunsTotal.Inc()
					lgr.Logger.Debug("live frame processing exceeded the sampling period",
						slog.Int("frame", index),
						slog.Duration("behind", -remaining),
					)
				}

			default:
				if index%s.stats.Step == 0 {
					if !s.forward(yield, img, index) {
						return
					}
				}
			}

			if s.quitRequested(ctx) {
				lgr.Logger.Info("sampler quit requested", slog.Int("frame", index))
				return
			}
		}
	}
}

// Stats returns the counters of the last consumed sequence
func (s *Sampler) Stats() model.SamplerStats {
	return s.stats
}

func (s *Sampler) forward(yield func(FrameData) bool, img gocv.Mat, index int) bool {
	s.stats.Forwarded++
	metrics.FramesForwardedTotal.WithLabelValues(s.source.Kind.String()).Inc()
	return yield(FrameData{Mat: img, Index: index, Timestamp: s.now()})
}

func (s *Sampler) quitRequested(ctx context.Context) bool {
	if ctx.Err() != nil {
		return true
	}
	return s.quit != nil && s.quit()
}

func (s *Sampler) release() {
	if err := s.capture.Close(); err != nil {
		lgr.Logger.Error("error releasing capture",
			slog.String("source", s.source.String()),
			slog.Any("error", err),
		)
	}
}

func sleepContext(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
