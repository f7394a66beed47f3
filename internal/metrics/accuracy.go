package metrics

import "fmt"

// Accuracy returns the fraction of inputs for which classify returns the
// matching output.
func Accuracy(classify func([]float64) (float64, error), inputs [][]float64, outputs []float64) (float64, error) {
	if len(inputs) != len(outputs) {
		return 0, fmt.Errorf("metrics: %d inputs, %d outputs", len(inputs), len(outputs))
	}
	if len(inputs) == 0 {
		return 0, nil
	}
	correct := 0
	for i, input := range inputs {
		got, err := classify(input)
		if err != nil {
			return 0, fmt.Errorf("metrics: classify input %d: %w", i, err)
		}
		if got == outputs[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(inputs)), nil
}
