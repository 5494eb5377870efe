package inference

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gocv.io/x/gocv"

	"github.com/khaledhikmat/fire-go/model"
)

const tracerName = "github.com/khaledhikmat/fire-go/inference"

type tracedService struct {
	IService
	tracer trace.Tracer
}

// NewTraced wraps a classifier so that every Classify call records an
// inference.classify span on the given provider.
func NewTraced(svc IService, tp trace.TracerProvider) IService {
	return &tracedService{
		IService: svc,
		tracer:   tp.Tracer(tracerName),
	}
}

func (svc *tracedService) Classify(ctx context.Context, frame gocv.Mat) (model.Classification, error) {
	ctx, span := svc.tracer.Start(ctx, "inference.classify",
		trace.WithAttributes(attribute.String("classifier", svc.Name())),
	)
	defer span.End()

	result, err := svc.IService.Classify(ctx, frame)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "classification failed")
		return result, err
	}

	span.SetAttributes(
		attribute.String("label", result.Label.String()),
		attribute.Int64("procTimeMicros", result.ProcTime.Microseconds()),
	)

	return result, nil
}
