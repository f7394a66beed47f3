package dataset

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
)

// Set is a named collection of labeled examples. Labels are +1 or -1.
type Set struct {
	Name    string
	Inputs  [][]float64
	Outputs []float64
}

// Dims returns the dimensionality of the first input.
func (s Set) Dims() int {
	if len(s.Inputs) == 0 {
		return 0
	}
	return len(s.Inputs[0])
}

// Validate checks the set is well formed.
func (s Set) Validate() error {
	if len(s.Inputs) == 0 {
		return fmt.Errorf("dataset %s: no examples", s.Name)
	}
	if len(s.Inputs) != len(s.Outputs) {
		return fmt.Errorf("dataset %s: %d inputs but %d outputs", s.Name, len(s.Inputs), len(s.Outputs))
	}
	dims := s.Dims()
	for i, input := range s.Inputs {
		if len(input) != dims {
			return fmt.Errorf("dataset %s: input %d has %d features, want %d", s.Name, i, len(input), dims)
		}
	}
	return nil
}

// gateInputs enumerates the corners of [-1,1]^2.
func gateInputs() [][]float64 {
	return [][]float64{
		{-1, -1},
		{-1, 1},
		{1, -1},
		{1, 1},
	}
}

// AND is the two-input conjunction over {-1,1}.
func AND() Set {
	return Set{Name: "and", Inputs: gateInputs(), Outputs: []float64{-1, -1, -1, 1}}
}

// OR is the two-input disjunction over {-1,1}.
func OR() Set {
	return Set{Name: "or", Inputs: gateInputs(), Outputs: []float64{-1, 1, 1, 1}}
}

// XOR is the two-input exclusive or over {-1,1}. It is not linearly
// separable.
func XOR() Set {
	return Set{Name: "xor", Inputs: gateInputs(), Outputs: []float64{-1, 1, 1, -1}}
}

// Quadrant returns n points with all coordinates in (0,1] labeled 1 followed
// by n points with all coordinates in [-1,0) labeled -1.
func Quadrant(rng *rand.Rand, n, dims int) (Set, error) {
	if rng == nil {
		return Set{}, errors.New("dataset: quadrant requires a random source")
	}
	if n <= 0 || dims <= 0 {
		return Set{}, fmt.Errorf("dataset: quadrant needs positive points and dims (got %d, %d)", n, dims)
	}
	s := Set{
		Name:    "quadrant",
		Inputs:  make([][]float64, 0, 2*n),
		Outputs: make([]float64, 0, 2*n),
	}
	for _, sign := range []float64{1, -1} {
		for i := 0; i < n; i++ {
			point := make([]float64, dims)
			for d := range point {
				point[d] = sign * (1 - rng.Float64())
			}
			s.Inputs = append(s.Inputs, point)
			s.Outputs = append(s.Outputs, sign)
		}
	}
	return s, nil
}

// QuadrantOptions sizes the quadrant set built by ByName.
type QuadrantOptions struct {
	Points int
	Dims   int
}

// Names lists the sets known to ByName.
func Names() []string {
	return []string{"and", "or", "quadrant", "xor"}
}

// ByName builds the named set. rng is only used by quadrant.
func ByName(name string, rng *rand.Rand, q QuadrantOptions) (Set, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "and":
		return AND(), nil
	case "or":
		return OR(), nil
	case "xor":
		return XOR(), nil
	case "quadrant":
		return Quadrant(rng, q.Points, q.Dims)
	}
	return Set{}, fmt.Errorf("dataset: unknown set %q (known: %s)", name, strings.Join(Names(), ", "))
}
