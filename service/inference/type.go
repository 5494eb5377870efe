package inference

import (
	"context"

	"gocv.io/x/gocv"

	"github.com/khaledhikmat/fire-go/model"
)

// IService classifies a frame that was already resized and normalized to the
// classifier input contract. Only Label, Scores and ProcTime of the returned
// classification are filled in.
type IService interface {
	Name() string
	Classify(ctx context.Context, frame gocv.Mat) (model.Classification, error)
	Close() error
}
