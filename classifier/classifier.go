// Package classifier wraps the pre-trained stroke-risk network. The model is
// loaded once at process start; a missing model is a valid state in which
// every prediction is refused with ErrModelUnavailable rather than answered
// with a fabricated number.
package classifier

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/GOPIKA-3007/Stroke-Prediction-System/imaging"
	"github.com/GOPIKA-3007/Stroke-Prediction-System/risk"
)

// ErrModelUnavailable means no usable model is loaded, or inference could
// not complete within the caller's deadline.
var ErrModelUnavailable = errors.New("classifier: model unavailable")

// InferenceError wraps a failure from a loaded model, e.g. a shape mismatch.
type InferenceError struct {
	Err error
}

func (e *InferenceError) Error() string {
	return fmt.Sprintf("classifier: inference failed: %v", e.Err)
}

func (e *InferenceError) Unwrap() error { return e.Err }

// Classifier is safe for concurrent use: the network is read-only after Load.
type Classifier struct {
	net    *Network
	logger *slog.Logger
}

// Load tries each model path in order and keeps the first that parses.
// Exhausting all paths is not an error; the classifier starts degraded.
func Load(logger *slog.Logger, paths ...string) *Classifier {
	for _, path := range paths {
		net, err := LoadNetwork(path)
		if err != nil {
			logger.Warn("model load failed", "path", path, "error", err)
			continue
		}
		logger.Info("model loaded", "path", path, "hidden_units", len(net.W1))
		return &Classifier{net: net, logger: logger}
	}
	logger.Warn("no usable model found, predictions will be refused", "paths", paths)
	return &Classifier{logger: logger}
}

// Ready reports whether a model is loaded.
func (c *Classifier) Ready() bool {
	return c.net != nil
}

// Predict runs one forward pass and returns a probability in [0,1]. The pass
// is bounded by ctx; a deadline hit is reported as ErrModelUnavailable.
func (c *Classifier) Predict(ctx context.Context, t *imaging.Tensor) (float64, error) {
	if c.net == nil {
		return 0, ErrModelUnavailable
	}
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrModelUnavailable, err)
	}

	type outcome struct {
		p   float64
		err error
	}
	ch := make(chan outcome, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- outcome{err: &InferenceError{Err: fmt.Errorf("panic: %v", r)}}
			}
		}()
		p, err := c.net.forward(t)
		if err != nil {
			ch <- outcome{err: &InferenceError{Err: err}}
			return
		}
		ch <- outcome{p: p}
	}()

	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%w: %v", ErrModelUnavailable, ctx.Err())
	case out := <-ch:
		if out.err != nil {
			return 0, out.err
		}
		return risk.Clamp(out.p), nil
	}
}
