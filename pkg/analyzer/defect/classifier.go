package defect

import (
	"math"
	"sort"
	"sync"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/panbanda/augur/pkg/models"
)

// Classifier is a logistic-regression predictor trained on a synthetic
// corpus. Features are standardized with the training split's mean and
// deviation before scoring. Predict is safe for concurrent use once
// training completes.
type Classifier struct {
	samples      int
	seed         uint64
	epochs       int
	learningRate float64

	mu      sync.RWMutex
	once    sync.Once
	trained bool
	weights []float64
	bias    float64
	means   []float64
	stds    []float64
	metrics TrainingMetrics
}

var _ Predictor = (*Classifier)(nil)

// ClassifierOption is a functional option for configuring Classifier.
type ClassifierOption func(*Classifier)

// WithSamples sets the synthetic training corpus size.
func WithSamples(n int) ClassifierOption {
	return func(c *Classifier) {
		c.samples = n
	}
}

// WithSeed sets the corpus generation seed, making training
// reproducible.
func WithSeed(seed uint64) ClassifierOption {
	return func(c *Classifier) {
		c.seed = seed
	}
}

// NewClassifier creates an untrained classifier. Call Train or
// EnsureReady before Predict.
func NewClassifier(opts ...ClassifierOption) *Classifier {
	c := &Classifier{
		samples:      1000,
		seed:         42,
		epochs:       500,
		learningRate: 0.1,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Ready reports whether the classifier has been trained.
func (c *Classifier) Ready() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.trained
}

// EnsureReady trains the classifier unless a pass already ran.
// Concurrent callers share the same training pass; later calls are
// no-ops, including after an explicit Train.
func (c *Classifier) EnsureReady() {
	c.once.Do(func() {
		if !c.Ready() {
			c.Train()
		}
	})
}

// Metrics returns the evaluation metrics from the last training pass.
func (c *Classifier) Metrics() TrainingMetrics {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.metrics
}

// Train fits the model on a fresh synthetic corpus with an 80/20
// train/test split and returns the held-out evaluation metrics.
func (c *Classifier) Train() TrainingMetrics {
	ds := syntheticDataset(c.samples, c.seed)

	split := len(ds.vectors) * 4 / 5
	train := ds.vectors[:split]
	trainLabels := ds.labels[:split]
	test := ds.vectors[split:]
	testLabels := ds.labels[split:]

	dims := len(models.FeatureNames)
	means := make([]float64, dims)
	stds := make([]float64, dims)
	column := make([]float64, len(train))
	for d := range dims {
		for i, v := range train {
			column[i] = v.Slice()[d]
		}
		mean, std := stat.MeanStdDev(column, nil)
		if std == 0 {
			std = 1
		}
		means[d] = mean
		stds[d] = std
	}

	scaled := make([][]float64, len(train))
	for i, v := range train {
		scaled[i] = standardize(v.Slice(), means, stds)
	}

	weights := make([]float64, dims)
	bias := 0.0
	gradient := make([]float64, dims)
	for range c.epochs {
		for i := range gradient {
			gradient[i] = 0
		}
		biasGradient := 0.0
		for i, x := range scaled {
			err := sigmoid(floats.Dot(weights, x)+bias) - trainLabels[i]
			floats.AddScaled(gradient, err, x)
			biasGradient += err
		}
		step := c.learningRate / float64(len(scaled))
		floats.AddScaled(weights, -step, gradient)
		bias -= step * biasGradient
	}

	c.mu.Lock()
	c.weights = weights
	c.bias = bias
	c.means = means
	c.stds = stds
	c.trained = true
	c.metrics = c.evaluate(test, testLabels)
	metrics := c.metrics
	c.mu.Unlock()

	return metrics
}

// Predict scores one feature vector, reporting the three features with
// the largest standardized contribution as contributing factors.
func (c *Classifier) Predict(v models.FeatureVector) (models.DefectPrediction, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.trained {
		return models.DefectPrediction{}, ErrNotReady
	}

	x := standardize(v.Slice(), c.means, c.stds)
	probability := sigmoid(floats.Dot(c.weights, x) + c.bias)

	factors := make([]models.Factor, 0, len(x))
	for i := range x {
		factors = append(factors, models.Factor{
			Name:   models.FeatureNames[i],
			Weight: math.Abs(c.weights[i] * x[i]),
		})
	}
	sort.SliceStable(factors, func(i, j int) bool {
		return factors[i].Weight > factors[j].Weight
	})
	factors = factors[:3]

	return prediction(v, probability, factors), nil
}

// evaluate computes accuracy, precision, recall, and F1 against the
// held-out split. Callers hold the write lock.
func (c *Classifier) evaluate(test []models.FeatureVector, labels []float64) TrainingMetrics {
	var tp, fp, tn, fn float64
	for i, v := range test {
		x := standardize(v.Slice(), c.means, c.stds)
		predicted := sigmoid(floats.Dot(c.weights, x)+c.bias) >= 0.5
		actual := labels[i] == 1
		switch {
		case predicted && actual:
			tp++
		case predicted && !actual:
			fp++
		case !predicted && !actual:
			tn++
		default:
			fn++
		}
	}

	metrics := TrainingMetrics{Samples: c.samples}
	if total := tp + fp + tn + fn; total > 0 {
		metrics.Accuracy = (tp + tn) / total
	}
	if tp+fp > 0 {
		metrics.Precision = tp / (tp + fp)
	}
	if tp+fn > 0 {
		metrics.Recall = tp / (tp + fn)
	}
	if metrics.Precision+metrics.Recall > 0 {
		metrics.F1 = 2 * metrics.Precision * metrics.Recall / (metrics.Precision + metrics.Recall)
	}
	return metrics
}

func standardize(values, means, stds []float64) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = (v - means[i]) / stds[i]
	}
	return out
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}
