package trainer

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log"
	"strings"
	"testing"

	"perceptron-lab/internal/activation"
	"perceptron-lab/internal/perceptron"
)

func baseConfig() RunConfig {
	return RunConfig{
		Datasets:       []string{"and", "or", "quadrant"},
		LearningRate:   0.5,
		Epsilon:        1e-10,
		Seed:           1,
		MaxEpochs:      100000,
		Workers:        2,
		QuadrantPoints: 30,
		QuadrantDims:   3,
		Activation:     activation.NewStep(0),
		Logger:         log.New(io.Discard, "", 0),
	}
}

func TestRunSeparableDatasets(t *testing.T) {
	results, err := Run(context.Background(), baseConfig())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	for i, name := range []string{"and", "or", "quadrant"} {
		res := results[i]
		if res.Dataset != name {
			t.Fatalf("result %d: expected %s, got %s", i, name, res.Dataset)
		}
		if res.Accuracy != 1 {
			t.Fatalf("%s: expected perfect accuracy, got %f", name, res.Accuracy)
		}
		if res.Epochs < 1 {
			t.Fatalf("%s: expected at least one epoch", name)
		}
	}
	if len(results[2].Weights) != 4 {
		t.Fatalf("quadrant: expected 4 weights, got %d", len(results[2].Weights))
	}
}

func TestRunLogsConvergence(t *testing.T) {
	buf := &bytes.Buffer{}
	cfg := baseConfig()
	cfg.Datasets = []string{"or"}
	cfg.Logger = log.New(buf, "", 0)
	if _, err := Run(context.Background(), cfg); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(buf.String(), "dataset=or converged") {
		t.Fatalf("missing convergence log line in %q", buf.String())
	}
}

func TestRunReportsUnknownDataset(t *testing.T) {
	cfg := baseConfig()
	cfg.Datasets = []string{"and", "nand"}
	if _, err := Run(context.Background(), cfg); err == nil {
		t.Fatal("expected error for unknown dataset")
	}
}

func TestRunWarnsOnMisclassifiedFixedPoint(t *testing.T) {
	buf := &bytes.Buffer{}
	cfg := baseConfig()
	cfg.Datasets = []string{"xor"}
	cfg.Epsilon = 0.0001
	cfg.MaxEpochs = 50
	cfg.Logger = log.New(buf, "", 0)
	results, err := Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if results[0].Accuracy != 0.75 || results[0].Epochs != 3 {
		t.Fatalf("unexpected xor result %+v", results[0])
	}
	out := buf.String()
	if !strings.Contains(out, "level=warn dataset=xor settled_misclassified") {
		t.Fatalf("missing warning in %q", out)
	}
	if strings.Contains(out, "dataset=xor converged") {
		t.Fatalf("misclassifying weights logged as converged: %q", out)
	}
}

func TestRunBoundedNonConvergence(t *testing.T) {
	cfg := baseConfig()
	cfg.Datasets = []string{"and"}
	cfg.Activation = activation.Activation{Kind: activation.Sigmoid}
	cfg.MaxEpochs = 5
	_, err := Run(context.Background(), cfg)
	if !errors.Is(err, perceptron.ErrNotConverged) {
		t.Fatalf("expected ErrNotConverged, got %v", err)
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Run(ctx, baseConfig()); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
