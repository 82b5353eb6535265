package defect

import (
	"sort"

	"github.com/panbanda/augur/pkg/models"
)

// Heuristic is a weighted-rule predictor requiring no training. Each
// feature contributes a capped fraction of its weight, so the estimate
// is monotone in every feature and always in [0, 1]. It serves as the
// fallback when no trained classifier is available.
type Heuristic struct{}

var _ Predictor = (*Heuristic)(nil)

// NewHeuristic creates the rule-based predictor.
func NewHeuristic() *Heuristic {
	return &Heuristic{}
}

// Ready always reports true; the heuristic needs no preparation.
func (h *Heuristic) Ready() bool { return true }

// heuristicTerm is one weighted feature contribution. The feature value
// is divided by scale and capped at 1 before weighting; a zero scale
// uses the raw value, which only cohesion_lack does since it is already
// a fraction.
type heuristicTerm struct {
	name   string
	weight float64
	scale  float64
}

var heuristicTerms = []heuristicTerm{
	{"cyclomatic_complexity", 0.10, 10},
	{"lines_of_code", 0.15, 100},
	{"method_count", 0.10, 15},
	{"coupling", 0.10, 5},
	{"cohesion_lack", 0.15, 0},
	{"halstead_difficulty", 0.10, 20},
	{"inheritance_depth", 0.10, 3},
}

// Predict computes the weighted sum of capped feature fractions. The
// top three contributions are reported as contributing factors.
func (h *Heuristic) Predict(v models.FeatureVector) (models.DefectPrediction, error) {
	features := v.Features()

	probability := 0.0
	contributions := make([]models.Factor, 0, len(heuristicTerms))
	for _, term := range heuristicTerms {
		value := features[term.name]
		fraction := value
		if term.scale > 0 {
			fraction = value / term.scale
		}
		if fraction > 1 {
			fraction = 1
		}
		if fraction < 0 {
			fraction = 0
		}
		contribution := term.weight * fraction
		probability += contribution
		contributions = append(contributions, models.Factor{Name: term.name, Weight: contribution})
	}

	if probability > 1 {
		probability = 1
	}

	sort.SliceStable(contributions, func(i, j int) bool {
		return contributions[i].Weight > contributions[j].Weight
	})
	if len(contributions) > 3 {
		contributions = contributions[:3]
	}

	return prediction(v, probability, contributions), nil
}
