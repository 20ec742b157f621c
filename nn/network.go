package nn

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
)

// ValueNetwork is a small fully connected network mapping a feature
// vector to a single value in (-1, 1): positive favors player 1. Hidden
// layers use tanh, as does the output, which puts the estimate on the
// same scale as a win/loss outcome.
type ValueNetwork struct {
	weights []*mat.Dense
	biases  []*mat.VecDense
}

// NewValueNetwork builds a network with the given hidden layer widths and
// Xavier-initialized weights drawn from the seeded source. No hidden
// layers gives a plain linear model through tanh.
func NewValueNetwork(seed uint64, hidden ...int) *ValueNetwork {
	rng := rand.New(rand.NewSource(seed))

	sizes := append([]int{FeatureCount}, hidden...)
	sizes = append(sizes, 1)

	n := &ValueNetwork{}
	for l := 0; l+1 < len(sizes); l++ {
		in, out := sizes[l], sizes[l+1]
		if in < 1 || out < 1 {
			panic(fmt.Sprintf("nn: invalid layer size %dx%d", in, out))
		}

		scale := math.Sqrt(2.0 / float64(in+out))
		data := make([]float64, in*out)
		for i := range data {
			data[i] = rng.NormFloat64() * scale
		}
		n.weights = append(n.weights, mat.NewDense(out, in, data))
		n.biases = append(n.biases, mat.NewVecDense(out, nil))
	}
	return n
}

// Layers is the number of weight layers.
func (n *ValueNetwork) Layers() int {
	return len(n.weights)
}

// Forward runs the network on one feature vector.
func (n *ValueNetwork) Forward(features []float64) float64 {
	if len(features) != FeatureCount {
		panic(fmt.Sprintf("nn: got %d features, want %d", len(features), FeatureCount))
	}

	activation := mat.NewVecDense(len(features), features)
	for l := range n.weights {
		out := mat.NewVecDense(n.biases[l].Len(), nil)
		out.MulVec(n.weights[l], activation)
		out.AddVec(out, n.biases[l])
		for i := 0; i < out.Len(); i++ {
			out.SetVec(i, math.Tanh(out.AtVec(i)))
		}
		activation = out
	}
	return activation.AtVec(0)
}
