package defect

import (
	"errors"

	"github.com/panbanda/augur/pkg/models"
)

// ErrNotReady indicates a predictor was asked for a prediction before
// it was trained. Callers decide whether to train or fall back.
var ErrNotReady = errors.New("predictor not trained")

// Predictor estimates defect probability from a metrics vector.
// Implementations must be safe for concurrent Predict calls once Ready
// reports true.
type Predictor interface {
	// Predict estimates defect risk for one feature vector. It returns
	// ErrNotReady if the predictor has not been prepared.
	Predict(v models.FeatureVector) (models.DefectPrediction, error)

	// Ready reports whether Predict can be called.
	Ready() bool
}

// TrainingMetrics summarizes classifier quality on the held-out split.
type TrainingMetrics struct {
	Accuracy  float64 `json:"accuracy"`
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1        float64 `json:"f1_score"`
	Samples   int     `json:"samples"`
}

// prediction assembles the common output shape shared by all
// predictor implementations.
func prediction(v models.FeatureVector, probability float64, factors []models.Factor) models.DefectPrediction {
	return models.DefectPrediction{
		Probability:         probability,
		Confidence:          confidenceFor(probability),
		RiskLevel:           models.RiskLevelFor(probability),
		ContributingFactors: factors,
		MetricsUsed:         v.Features(),
	}
}

func confidenceFor(p float64) float64 {
	if p >= 0.5 {
		return p
	}
	return 1 - p
}
