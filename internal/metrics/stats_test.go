package metrics

import (
	"errors"
	"math"
	"testing"
	"time"
)

func TestWindowSnapshot(t *testing.T) {
	var w Window
	w.Record(4, 2, 1.5, 20*time.Millisecond)
	w.Record(4, 0, 0, 20*time.Millisecond)
	snap := w.Snapshot()
	if math.Abs(snap.ExamplesPerSec-200) > 1e-6 {
		t.Fatalf("unexpected throughput %.2f", snap.ExamplesPerSec)
	}
	if math.Abs(snap.AvgEpochMS-20) > 1e-6 {
		t.Fatalf("unexpected epoch time %.2f", snap.AvgEpochMS)
	}
	if snap.Epochs != 2 || snap.Updates != 2 {
		t.Fatalf("unexpected counts %+v", snap)
	}
	if w.examples != 0 || w.epochs != 0 {
		t.Fatalf("window was not reset")
	}
	if snap.LastDisplacement != 0 {
		t.Fatalf("expected last displacement 0, got %.2f", snap.LastDisplacement)
	}
}

func TestAccuracy(t *testing.T) {
	sign := func(in []float64) (float64, error) {
		if in[0] >= 0 {
			return 1, nil
		}
		return -1, nil
	}
	acc, err := Accuracy(sign, [][]float64{{1}, {-1}, {2}, {-3}}, []float64{1, -1, -1, -1})
	if err != nil {
		t.Fatalf("Accuracy: %v", err)
	}
	if acc != 0.75 {
		t.Fatalf("expected 0.75, got %f", acc)
	}
	boom := errors.New("boom")
	_, err = Accuracy(func([]float64) (float64, error) { return 0, boom }, [][]float64{{1}}, []float64{1})
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped classify error, got %v", err)
	}
}
