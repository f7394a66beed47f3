package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"perceptron-lab/internal/config"
	"perceptron-lab/internal/trainer"
)

func main() {
	cfgPath := flag.String("config", "", "Path to YAML config (defaults are used when empty)")
	datasets := flag.String("datasets", "", "Comma separated datasets to train (and, or, quadrant, xor)")
	learningRate := flag.Float64("learning-rate", 0, "Learning rate")
	epsilon := flag.Float64("epsilon", 0, "Minimum error that triggers a weight update")
	seed := flag.Int64("seed", 0, "PRNG seed")
	maxEpochs := flag.Int("max-epochs", 0, "Stop after N epochs without convergence (0 = unbounded)")
	logEvery := flag.Int("log-every", 0, "Log every N epochs")
	workers := flag.Int("workers", 0, "Number of datasets trained concurrently")

	flag.Parse()

	var epsilonOverride *float64
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "epsilon" {
			epsilonOverride = epsilon
		}
	})

	cfg := config.Default()
	if *cfgPath != "" {
		var err error
		cfg, err = config.Load(*cfgPath)
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}
	}

	cfg.ApplyOverrides(config.Overrides{
		Datasets:     config.ParseList(*datasets),
		LearningRate: *learningRate,
		Epsilon:      epsilonOverride,
		Seed:         *seed,
		MaxEpochs:    *maxEpochs,
		LogEvery:     *logEvery,
		Workers:      *workers,
	})

	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}
	act, err := cfg.ActivationFunc()
	if err != nil {
		log.Fatalf("invalid config: %v", err)
	}
	if cfg.MaxEpochs == 0 {
		log.Printf("max_epochs=0: on data that is not linearly separable training may never stop, or may stop on weights that misclassify some examples")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runCfg := trainer.RunConfig{
		Datasets:       cfg.Datasets,
		LearningRate:   cfg.LearningRate,
		Epsilon:        cfg.Epsilon,
		Seed:           cfg.Seed,
		MaxEpochs:      cfg.MaxEpochs,
		LogEvery:       cfg.LogEvery,
		Workers:        cfg.Workers,
		QuadrantPoints: cfg.QuadrantPoints,
		QuadrantDims:   cfg.QuadrantDims,
		Activation:     act,
	}

	results, err := trainer.Run(ctx, runCfg)
	if err != nil {
		log.Fatalf("training failed: %v", err)
	}
	for _, res := range results {
		log.Printf("dataset=%s epochs=%d accuracy=%.4f weights=%v", res.Dataset, res.Epochs, res.Accuracy, res.Weights)
	}
}
