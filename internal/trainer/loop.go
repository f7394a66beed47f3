package trainer

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"

	"golang.org/x/sync/errgroup"

	"perceptron-lab/internal/activation"
	"perceptron-lab/internal/dataset"
	"perceptron-lab/internal/metrics"
	"perceptron-lab/internal/perceptron"
)

// RunConfig captures the knobs required by the training loop.
type RunConfig struct {
	Datasets       []string
	LearningRate   float64
	Epsilon        float64
	Seed           int64
	MaxEpochs      int
	LogEvery       int
	Workers        int
	QuadrantPoints int
	QuadrantDims   int
	Activation     activation.Activation
	Logger         *log.Logger
}

// Result is the outcome of training on one dataset.
type Result struct {
	Dataset  string
	Weights  []float64
	Epochs   int
	Accuracy float64
}

// Run trains one perceptron per dataset. Datasets run concurrently up to
// Workers; each perceptron is only touched by its own goroutine.
func Run(ctx context.Context, cfg RunConfig) ([]Result, error) {
	if len(cfg.Datasets) == 0 {
		return nil, errors.New("trainer: no datasets")
	}
	if cfg.LearningRate <= 0 {
		return nil, errors.New("trainer: learning rate must be > 0")
	}
	if cfg.LogEvery <= 0 {
		cfg.LogEvery = 1
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}

	results := make([]Result, len(cfg.Datasets))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)
	for i, name := range cfg.Datasets {
		i, name := i, name
		seed := cfg.Seed + int64(i)
		g.Go(func() error {
			res, err := trainOne(ctx, cfg, name, seed)
			if err != nil {
				return fmt.Errorf("trainer: %s: %w", name, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func trainOne(ctx context.Context, cfg RunConfig, name string, seed int64) (Result, error) {
	rng := rand.New(rand.NewSource(seed))
	set, err := dataset.ByName(name, rng, dataset.QuadrantOptions{Points: cfg.QuadrantPoints, Dims: cfg.QuadrantDims})
	if err != nil {
		return Result{}, err
	}
	if err := set.Validate(); err != nil {
		return Result{}, err
	}

	var window metrics.Window
	logger := cfg.Logger
	observe := func(s perceptron.EpochStats) {
		window.Record(s.Examples, s.Updates, s.Displacement, s.Duration)
		if s.Epoch%cfg.LogEvery == 0 || s.Displacement == 0 {
			snap := window.Snapshot()
			logger.Printf("dataset=%s epoch=%d updates=%d displacement=%.4f examples_per_sec=%.1f epoch_ms=%.3f",
				name,
				s.Epoch,
				snap.Updates,
				snap.LastDisplacement,
				snap.ExamplesPerSec,
				snap.AvgEpochMS,
			)
		}
	}

	p := perceptron.New(
		perceptron.WithRand(rng),
		perceptron.WithMaxEpochs(cfg.MaxEpochs),
		perceptron.WithActivation(cfg.Activation),
		perceptron.WithObserver(observe),
	)
	weights, err := p.TrainContext(ctx, set.Inputs, set.Outputs, cfg.LearningRate, cfg.Epsilon)
	if err != nil {
		return Result{}, err
	}
	acc, err := metrics.Accuracy(p.Test, set.Inputs, set.Outputs)
	if err != nil {
		return Result{}, err
	}
	if acc < 1 {
		logger.Printf("level=warn dataset=%s settled_misclassified epochs=%d accuracy=%.4f weights=%v", name, p.Epochs(), acc, weights)
	} else {
		logger.Printf("dataset=%s converged epochs=%d accuracy=%.4f weights=%v", name, p.Epochs(), acc, weights)
	}
	return Result{Dataset: name, Weights: weights, Epochs: p.Epochs(), Accuracy: acc}, nil
}
