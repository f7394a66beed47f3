package perceptron

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	"perceptron-lab/internal/activation"
	"perceptron-lab/internal/vector"
)

var (
	// ErrNotTrained is returned by Test before a successful Train.
	ErrNotTrained = errors.New("perceptron: not trained")
	// ErrNotConverged is returned when the epoch bound is reached.
	ErrNotConverged = errors.New("perceptron: did not converge")
	// ErrDimensionMismatch aliases vector.ErrDimensionMismatch.
	ErrDimensionMismatch = vector.ErrDimensionMismatch
)

// EpochStats describes one completed pass over the training examples.
type EpochStats struct {
	Epoch        int
	Examples     int
	Updates      int
	Displacement float64
	Duration     time.Duration
}

// Option configures a Perceptron.
type Option func(*Perceptron)

// WithSeed seeds the generator used for initial weights.
func WithSeed(seed int64) Option {
	return func(p *Perceptron) { p.rng = rand.New(rand.NewSource(seed)) }
}

// WithRand sets the generator used for initial weights.
func WithRand(rng *rand.Rand) Option {
	return func(p *Perceptron) {
		if rng != nil {
			p.rng = rng
		}
	}
}

// WithMaxEpochs bounds training. Zero means unbounded.
func WithMaxEpochs(n int) Option {
	return func(p *Perceptron) {
		if n > 0 {
			p.maxEpochs = n
		}
	}
}

// WithActivation replaces the default step activation.
func WithActivation(a activation.Activation) Option {
	return func(p *Perceptron) { p.activation = a.Func() }
}

// WithObserver registers fn to be called after every epoch.
func WithObserver(fn func(EpochStats)) Option {
	return func(p *Perceptron) { p.observer = fn }
}

// Perceptron is a single-layer linear classifier trained with the perceptron
// learning rule. The first weight is the bias. A Perceptron is not safe for
// concurrent use.
type Perceptron struct {
	weights    []float64
	activation activation.Func
	rng        *rand.Rand
	maxEpochs  int
	observer   func(EpochStats)
	epochs     int
}

// New constructs an untrained Perceptron using a step activation at 0.
func New(opts ...Option) *Perceptron {
	p := &Perceptron{
		activation: activation.NewStep(0).Func(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.rng == nil {
		p.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return p
}

// Train fits the weights to the labeled examples and returns them. Training
// stops at the first epoch with zero L1 displacement. On linearly separable
// data the result classifies every example. On other data it may never
// return without WithMaxEpochs, or it may return weights that misclassify
// some examples because the updates of an epoch cancelled out. A failed
// Train leaves earlier weights in place.
func (p *Perceptron) Train(inputs [][]float64, outputs []float64, learningRate, epsilon float64) ([]float64, error) {
	return p.TrainContext(context.Background(), inputs, outputs, learningRate, epsilon)
}

// TrainContext is Train with cancellation checked between epochs.
func (p *Perceptron) TrainContext(ctx context.Context, inputs [][]float64, outputs []float64, learningRate, epsilon float64) ([]float64, error) {
	dims, err := checkExamples(inputs, outputs)
	if err != nil {
		return nil, err
	}
	augmented := make([][]float64, len(inputs))
	for i, input := range inputs {
		augmented[i] = vector.Prepend(1.0, input)
	}
	weight := make([]float64, dims+1)
	for i := range weight {
		weight[i] = p.rng.Float64()
	}

	for epoch := 1; ; epoch++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("perceptron: stopped after %d epochs: %w", epoch-1, err)
		}
		start := time.Now()
		next, updates, err := p.epoch(weight, augmented, outputs, learningRate, epsilon)
		if err != nil {
			return nil, err
		}
		displacement, err := vector.Displacement(weight, next)
		if err != nil {
			return nil, err
		}
		weight = next
		if p.observer != nil {
			p.observer(EpochStats{
				Epoch:        epoch,
				Examples:     len(augmented),
				Updates:      updates,
				Displacement: displacement,
				Duration:     time.Since(start),
			})
		}
		// NaN displacement also terminates.
		if !(displacement > 0) {
			p.weights = weight
			p.epochs = epoch
			return append([]float64(nil), weight...), nil
		}
		if p.maxEpochs > 0 && epoch >= p.maxEpochs {
			return nil, fmt.Errorf("%w after %d epochs (displacement %g)", ErrNotConverged, epoch, displacement)
		}
	}
}

// Test classifies input with the trained weights.
func (p *Perceptron) Test(input []float64) (float64, error) {
	if p.weights == nil {
		return 0, ErrNotTrained
	}
	if len(input) != len(p.weights)-1 {
		return 0, fmt.Errorf("%w: input has %d features, trained on %d", ErrDimensionMismatch, len(input), len(p.weights)-1)
	}
	return p.propagate(p.weights, vector.Prepend(1.0, input))
}

// Epoch runs one pass of the learning rule from weight over the examples and
// returns the resulting weights with their L1 displacement from weight. It
// does not change the Perceptron.
func (p *Perceptron) Epoch(weight []float64, inputs [][]float64, outputs []float64, learningRate, epsilon float64) ([]float64, float64, error) {
	dims, err := checkExamples(inputs, outputs)
	if err != nil {
		return nil, 0, err
	}
	if len(weight) != dims+1 {
		return nil, 0, fmt.Errorf("%w: %d weights for %d features", ErrDimensionMismatch, len(weight), dims)
	}
	augmented := make([][]float64, len(inputs))
	for i, input := range inputs {
		augmented[i] = vector.Prepend(1.0, input)
	}
	next, _, err := p.epoch(weight, augmented, outputs, learningRate, epsilon)
	if err != nil {
		return nil, 0, err
	}
	displacement, err := vector.Displacement(weight, next)
	if err != nil {
		return nil, 0, err
	}
	return next, displacement, nil
}

// Update applies the learning rule for one example. It returns weight itself
// when the error is below epsilon and a new vector otherwise.
func (p *Perceptron) Update(weight, input []float64, expected, learningRate, epsilon float64) ([]float64, bool, error) {
	if len(weight) != len(input)+1 {
		return nil, false, fmt.Errorf("%w: %d weights for %d features", ErrDimensionMismatch, len(weight), len(input))
	}
	return p.update(weight, vector.Prepend(1.0, input), expected, learningRate, epsilon)
}

// Weights returns a copy of the trained weights, bias first, or nil.
func (p *Perceptron) Weights() []float64 {
	if p.weights == nil {
		return nil
	}
	return append([]float64(nil), p.weights...)
}

// Trained reports whether Test may be called.
func (p *Perceptron) Trained() bool {
	return p.weights != nil
}

// Epochs returns the number of epochs the last successful training took.
func (p *Perceptron) Epochs() int {
	return p.epochs
}

func (p *Perceptron) epoch(weight []float64, inputs [][]float64, outputs []float64, learningRate, epsilon float64) ([]float64, int, error) {
	updates := 0
	for i, input := range inputs {
		next, updated, err := p.update(weight, input, outputs[i], learningRate, epsilon)
		if err != nil {
			return nil, 0, err
		}
		if updated {
			updates++
		}
		weight = next
	}
	return weight, updates, nil
}

func (p *Perceptron) update(weight, input []float64, expected, learningRate, epsilon float64) ([]float64, bool, error) {
	output, err := p.propagate(weight, input)
	if err != nil {
		return nil, false, err
	}
	diff := expected - output
	if math.Abs(diff) < math.Abs(epsilon) {
		return weight, false, nil
	}
	next, err := vector.Add(weight, vector.ScalarMultiply(input, learningRate*diff))
	if err != nil {
		return nil, false, err
	}
	return next, true, nil
}

func (p *Perceptron) propagate(weight, input []float64) (float64, error) {
	sum, err := vector.Dot(weight, input)
	if err != nil {
		return 0, err
	}
	return p.activation(sum), nil
}

func checkExamples(inputs [][]float64, outputs []float64) (int, error) {
	if len(inputs) != len(outputs) {
		return 0, fmt.Errorf("%w: %d inputs, %d outputs", ErrDimensionMismatch, len(inputs), len(outputs))
	}
	if len(inputs) == 0 {
		return 0, fmt.Errorf("%w: no examples", ErrDimensionMismatch)
	}
	dims := len(inputs[0])
	for i, input := range inputs {
		if len(input) != dims {
			return 0, fmt.Errorf("%w: input %d has %d features, want %d", ErrDimensionMismatch, i, len(input), dims)
		}
	}
	return dims, nil
}
