package metrics

import "time"

// Window accumulates per-epoch training stats between snapshots.
type Window struct {
	examples     int
	updates      int
	elapsed      time.Duration
	epochs       int
	displacement float64
}

// Record adds one epoch to the window.
func (w *Window) Record(examples, updates int, displacement float64, elapsed time.Duration) {
	w.examples += examples
	w.updates += updates
	w.elapsed += elapsed
	w.epochs++
	w.displacement = displacement
}

// Snapshot returns aggregated metrics and resets the window.
func (w *Window) Snapshot() Snapshot {
	snap := Snapshot{Epochs: w.epochs, Updates: w.updates}
	if w.elapsed > 0 {
		snap.ExamplesPerSec = float64(w.examples) / w.elapsed.Seconds()
	}
	if w.epochs > 0 {
		snap.AvgEpochMS = (w.elapsed.Seconds() * 1000) / float64(w.epochs)
	}
	snap.LastDisplacement = w.displacement

	w.examples = 0
	w.updates = 0
	w.elapsed = 0
	w.epochs = 0
	return snap
}

// Snapshot represents loggable metrics.
type Snapshot struct {
	Epochs           int
	Updates          int
	ExamplesPerSec   float64
	AvgEpochMS       float64
	LastDisplacement float64
}
