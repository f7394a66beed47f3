package activation

import (
	"math"
	"testing"
)

func TestStepThreshold(t *testing.T) {
	step := NewStep(0.5)
	if got := step.Apply(0.5); got != 1 {
		t.Fatalf("step at threshold: expected 1, got %f", got)
	}
	if got := step.Apply(0.4999); got != -1 {
		t.Fatalf("step below threshold: expected -1, got %f", got)
	}
	if got := NewStep(0).Apply(-0.0); got != 1 {
		t.Fatalf("step(0) at zero: expected 1, got %f", got)
	}
}

func TestSigmoidIsDecreasing(t *testing.T) {
	f := Activation{Kind: Sigmoid}.Func()
	if got := f(0); got != 0.5 {
		t.Fatalf("sigmoid(0): expected 0.5, got %f", got)
	}
	if f(1) >= f(0) {
		t.Fatalf("expected sigmoid(1) < sigmoid(0); got %f >= %f", f(1), f(0))
	}
	if want := 1 / (1 + math.E); math.Abs(f(1)-want) > 1e-12 {
		t.Fatalf("sigmoid(1): expected %f, got %f", want, f(1))
	}
}

func TestRectifierAndSoftPlus(t *testing.T) {
	relu := Activation{Kind: Rectifier}.Func()
	if relu(-3) != 0 || relu(2.5) != 2.5 {
		t.Fatalf("rectifier mismatch: f(-3)=%f f(2.5)=%f", relu(-3), relu(2.5))
	}
	sp := Activation{Kind: SoftPlus}.Func()
	if got := sp(0); math.Abs(got-math.Ln2) > 1e-12 {
		t.Fatalf("softplus(0): expected ln2, got %f", got)
	}
	if !math.IsInf(sp(1000), 1) {
		t.Fatalf("softplus(1000) should overflow to +Inf, got %f", sp(1000))
	}
}

func TestParse(t *testing.T) {
	for name, want := range map[string]Kind{
		"step": Step, "Sigmoid": Sigmoid, "relu": Rectifier, "softmax": SoftPlus, "softplus": SoftPlus,
	} {
		a, err := Parse(name)
		if err != nil {
			t.Fatalf("Parse(%q): %v", name, err)
		}
		if a.Kind != want {
			t.Fatalf("Parse(%q): expected %v, got %v", name, want, a.Kind)
		}
	}
	if _, err := Parse("tanh"); err == nil {
		t.Fatal("expected error for unknown activation")
	}
}
