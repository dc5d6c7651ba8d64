package classifier

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/GOPIKA-3007/Stroke-Prediction-System/imaging"
)

// Network holds the pre-trained weights for stroke-risk scoring: the input
// plane is average-pooled to a coarse grid, passed through one ReLU hidden
// layer and a sigmoid output unit. Weights are fixed at training time and
// only ever read here.
type Network struct {
	InputWidth  int `json:"inputWidth"`
	InputHeight int `json:"inputHeight"`
	PoolSize    int `json:"poolSize"`

	// W1[h] are the hidden unit h's weights over the pooled grid.
	W1 [][]float64 `json:"w1"`
	B1 []float64   `json:"b1"`

	// W2 are the output unit's weights over the hidden layer.
	W2 []float64 `json:"w2"`
	B2 float64   `json:"b2"`
}

// LoadNetwork reads network weights from a JSON file.
func LoadNetwork(path string) (*Network, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var n Network
	if err := json.Unmarshal(data, &n); err != nil {
		return nil, fmt.Errorf("parse model %s: %w", path, err)
	}
	if err := n.validate(); err != nil {
		return nil, fmt.Errorf("model %s: %w", path, err)
	}
	return &n, nil
}

func (n *Network) validate() error {
	if n.InputWidth <= 0 || n.InputHeight <= 0 {
		return fmt.Errorf("invalid input dimensions %dx%d", n.InputWidth, n.InputHeight)
	}
	if n.PoolSize <= 0 || n.InputWidth%n.PoolSize != 0 || n.InputHeight%n.PoolSize != 0 {
		return fmt.Errorf("pool size %d does not divide %dx%d", n.PoolSize, n.InputWidth, n.InputHeight)
	}
	features := (n.InputWidth / n.PoolSize) * (n.InputHeight / n.PoolSize)
	if len(n.W1) == 0 || len(n.B1) != len(n.W1) || len(n.W2) != len(n.W1) {
		return fmt.Errorf("layer sizes disagree: w1=%d b1=%d w2=%d", len(n.W1), len(n.B1), len(n.W2))
	}
	for h, row := range n.W1 {
		if len(row) != features {
			return fmt.Errorf("hidden unit %d has %d weights, want %d", h, len(row), features)
		}
	}
	return nil
}

// forward runs one inference pass and returns the raw sigmoid output.
func (n *Network) forward(t *imaging.Tensor) (float64, error) {
	if t.Width != n.InputWidth || t.Height != n.InputHeight {
		return 0, fmt.Errorf("input is %dx%d, model expects %dx%d",
			t.Width, t.Height, n.InputWidth, n.InputHeight)
	}
	if len(t.Pixels) != t.Width*t.Height {
		return 0, fmt.Errorf("tensor has %d pixels, want %d", len(t.Pixels), t.Width*t.Height)
	}

	features := n.pool(t)

	out := n.B2
	for h, row := range n.W1 {
		sum := n.B1[h]
		for i, w := range row {
			sum += w * features[i]
		}
		if sum > 0 { // ReLU
			out += n.W2[h] * sum
		}
	}
	return sigmoid(out), nil
}

// pool average-pools the input plane down to the coarse feature grid.
func (n *Network) pool(t *imaging.Tensor) []float64 {
	pw := n.InputWidth / n.PoolSize
	ph := n.InputHeight / n.PoolSize
	area := float64(n.PoolSize * n.PoolSize)

	features := make([]float64, pw*ph)
	for py := 0; py < ph; py++ {
		for px := 0; px < pw; px++ {
			var sum float64
			for dy := 0; dy < n.PoolSize; dy++ {
				for dx := 0; dx < n.PoolSize; dx++ {
					sum += t.At(px*n.PoolSize+dx, py*n.PoolSize+dy)
				}
			}
			features[py*pw+px] = sum / area
		}
	}
	return features
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}
