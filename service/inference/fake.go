package inference

import (
	"context"
	"time"

	"gocv.io/x/gocv"

	"github.com/khaledhikmat/fire-go/model"
)

type fakeService struct {
	scores []float32
}

// NewFake returns a classifier that always outputs the given scores
func NewFake(scores []float32) IService {
	return &fakeService{
		scores: scores,
	}
}

func (svc *fakeService) Name() string {
	return "fake"
}

func (svc *fakeService) Classify(_ context.Context, _ gocv.Mat) (model.Classification, error) {
	start := time.Now()
	label, err := model.LabelFromScores(svc.scores)
	if err != nil {
		return model.Classification{}, err
	}

	scores := make([]float32, len(svc.scores))
	copy(scores, svc.scores)

	return model.Classification{
		Label:    label,
		Scores:   scores,
		ProcTime: time.Since(start),
	}, nil
}

func (svc *fakeService) Close() error {
	return nil
}
