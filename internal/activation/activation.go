package activation

import (
	"fmt"
	"math"
	"strings"
)

// Func maps a neuron's weighted input sum to its output.
type Func func(x float64) float64

// Kind tags the available activation functions.
type Kind int

const (
	Step Kind = iota
	Sigmoid
	Rectifier
	SoftPlus
)

func (k Kind) String() string {
	switch k {
	case Step:
		return "step"
	case Sigmoid:
		return "sigmoid"
	case Rectifier:
		return "rectifier"
	case SoftPlus:
		return "softplus"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Activation is an immutable choice of activation function.
// Threshold is only meaningful for Step.
type Activation struct {
	Kind      Kind
	Threshold float64
}

// NewStep returns a step activation firing at threshold.
func NewStep(threshold float64) Activation {
	return Activation{Kind: Step, Threshold: threshold}
}

// Func returns the scalar function for a.
func (a Activation) Func() Func {
	switch a.Kind {
	case Sigmoid:
		return sigmoid
	case Rectifier:
		return rectifier
	case SoftPlus:
		return softPlus
	default:
		t := a.Threshold
		return func(x float64) float64 {
			if x >= t {
				return 1.0
			}
			return -1.0
		}
	}
}

// Apply evaluates the activation at x.
func (a Activation) Apply(x float64) float64 {
	return a.Func()(x)
}

// Parse resolves a configuration name. Step parses with threshold 0.
func Parse(name string) (Activation, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "step":
		return NewStep(0), nil
	case "sigmoid":
		return Activation{Kind: Sigmoid}, nil
	case "rectifier", "relu":
		return Activation{Kind: Rectifier}, nil
	case "softplus", "softmax":
		return Activation{Kind: SoftPlus}, nil
	}
	return Activation{}, fmt.Errorf("activation: unknown function %q", name)
}

// sigmoid is 1/(1+e^x). This decreases in x, unlike the logistic curve; kept
// as is for compatibility with existing results.
func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(x))
}

func rectifier(x float64) float64 {
	return math.Max(0, x)
}

func softPlus(x float64) float64 {
	return math.Log(1 + math.Exp(x))
}
