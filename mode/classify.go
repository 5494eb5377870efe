package mode

import (
	"context"
	"log/slog"

	"github.com/khaledhikmat/fire-go/model"
	"github.com/khaledhikmat/fire-go/pipeline"
	"github.com/khaledhikmat/fire-go/service/lgr"
)

// Classify runs one inference session over the source and persists the
// errors and stats it reports
func Classify(canxCtx context.Context, svcs pipeline.ServicesFactory, source model.Source) error {
	// Create an error stream
	errorStream := make(chan interface{}, 100)

	// Create a stats stream
	statsStream := make(chan interface{}, 100)

	agentResult := make(chan error, 1)
	go func() {
		agentResult <- pipeline.Agent(canxCtx, svcs, errorStream, statsStream, source)
	}()

	var agentErr error

	// Wait for the agent while persisting what it reports
	for {
		select {
		case agentErr = <-agentResult:
			goto resume

		case s := <-statsStream:
			procStats(svcs.DataSvc, s)

		case e := <-errorStream:
			procError(svcs.DataSvc, e)
		}
	}

	// The agent has returned so nothing more is sent on the streams
resume:
	for {
		select {
		case s := <-statsStream:
			procStats(svcs.DataSvc, s)
		case e := <-errorStream:
			procError(svcs.DataSvc, e)
		default:
			lgr.Logger.Info(
				"classify mode finished",
				slog.String("source", source.String()),
				slog.Bool("failed", agentErr != nil),
			)
			return agentErr
		}
	}
}
