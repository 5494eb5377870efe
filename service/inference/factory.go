package inference

import (
	"go.opentelemetry.io/otel"
	"golang.org/x/xerrors"

	"github.com/khaledhikmat/fire-go/service/config"
)

// Scores of the dry-run classifier: every frame is "no fire"
var dryRunScores = []float32{0, 1}

// New builds the classifier selected by the configuration, traced on the
// global provider
func New(cfgsvc config.IService) (IService, error) {
	var svc IService
	switch cfgsvc.GetClassifier() {
	case config.ClassifierDNN, "":
		dnn, err := NewDNN(cfgsvc.GetModelPath())
		if err != nil {
			return nil, err
		}
		svc = dnn
	case config.ClassifierFake:
		svc = NewFake(dryRunScores)
	default:
		return nil, xerrors.Errorf("unsupported classifier: %s", cfgsvc.GetClassifier())
	}

	return NewTraced(svc, otel.GetTracerProvider()), nil
}
