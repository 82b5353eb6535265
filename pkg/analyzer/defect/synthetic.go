package defect

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/panbanda/augur/pkg/models"
)

// dataset is a labeled training set. Labels are 1 for defect-prone
// samples, 0 otherwise.
type dataset struct {
	vectors []models.FeatureVector
	labels  []float64
}

// syntheticDataset draws n samples from distributions calibrated to
// published defect-prediction studies: complexity is gamma-shaped, size
// log-normal, counts Poisson, cohesion a symmetric beta. Halstead
// metrics are derived from complexity and size so the features carry
// realistic correlations. Labels follow a weighted ground-truth rule
// with gaussian noise, binarized at 0.5.
func syntheticDataset(n int, seed uint64) dataset {
	src := rand.NewSource(seed)

	complexityDist := distuv.Gamma{Alpha: 2, Beta: 1.0 / 3.0, Src: src}
	locDist := distuv.LogNormal{Mu: 3, Sigma: 1, Src: src}
	methodDist := distuv.Poisson{Lambda: 5, Src: src}
	attributeDist := distuv.Poisson{Lambda: 3, Src: src}
	inheritanceDist := distuv.Poisson{Lambda: 1, Src: src}
	couplingDist := distuv.Poisson{Lambda: 2, Src: src}
	cohesionDist := distuv.Beta{Alpha: 2, Beta: 2, Src: src}
	noiseDist := distuv.Normal{Mu: 0, Sigma: 0.1, Src: src}
	uniform := rand.New(src)

	ds := dataset{
		vectors: make([]models.FeatureVector, 0, n),
		labels:  make([]float64, 0, n),
	}

	for range n {
		complexity := complexityDist.Rand()
		loc := locDist.Rand()
		cohesion := cohesionDist.Rand()

		v := models.FeatureVector{
			Complexity:         complexity,
			LinesOfCode:        loc,
			MethodCount:        methodDist.Rand() + 1,
			AttributeCount:     attributeDist.Rand(),
			InheritanceDepth:   inheritanceDist.Rand(),
			Coupling:           couplingDist.Rand(),
			CohesionLack:       cohesion,
			HalsteadDifficulty: complexity * (0.5 + uniform.Float64()),
			HalsteadVolume:     loc * (1 + 2*uniform.Float64()),
		}

		truth := 0.1*capUnit(complexity/10) +
			0.15*capUnit(loc/100) +
			0.1*capUnit(v.MethodCount/15) +
			0.1*capUnit(v.Coupling/5) +
			0.15*cohesion +
			0.1*capUnit(v.HalsteadDifficulty/20) +
			0.1*capUnit(v.InheritanceDepth/3) +
			noiseDist.Rand()

		label := 0.0
		if truth > 0.5 {
			label = 1
		}

		ds.vectors = append(ds.vectors, v)
		ds.labels = append(ds.labels, label)
	}

	return ds
}

func capUnit(v float64) float64 {
	if v > 1 {
		return 1
	}
	return v
}
