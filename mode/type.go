package mode

import (
	"context"
	"log/slog"

	"github.com/khaledhikmat/fire-go/model"
	"github.com/khaledhikmat/fire-go/pipeline"
	"github.com/khaledhikmat/fire-go/service/data"
	"github.com/khaledhikmat/fire-go/service/lgr"
	"github.com/khaledhikmat/fire-go/service/metrics"
)

type Processor func(canxCtx context.Context,
	svcs pipeline.ServicesFactory,
	source model.Source) error

func procStats(datasvc data.IService, stats interface{}) {
	var err error
	switch stats := stats.(type) {
	case model.SamplerStats:
		err = datasvc.NewSamplerStats(stats)
	case model.ClassifierStats:
		err = datasvc.NewClassifierStats(stats)
	case model.RunStats:
		err = datasvc.NewRunStats(stats)
	default:
		lgr.Logger.Error(
			"unknown stats type",
			slog.Any("stats", stats),
		)
		return
	}

	if err != nil {
		lgr.Logger.Error(
			"failed to store stats",
			slog.Any("stats", stats),
			slog.Any("error", err),
		)
	}
}

func procError(datasvc data.IService, err interface{}) {
	processor := "N/A"
	if custom, ok := err.(model.CustomError); ok {
		processor = custom.Processor
	}
	metrics.ErrorsTotal.WithLabelValues(processor).Inc()

	lgr.Logger.Error(
		"processor error",
		slog.String("processor", processor),
		slog.Any("error", err),
	)

	errTemp := datasvc.NewError(err)
	if errTemp != nil {
		lgr.Logger.Error(
			"failed to store error",
			slog.Any("error", errTemp),
		)
	}
}
