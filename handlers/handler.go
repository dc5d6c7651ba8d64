// Package handlers implements the JSON API: registration/login and the
// scan pipeline endpoints (upload, list, doctor notes).
package handlers

import (
	"context"
	"log/slog"
	"time"

	"github.com/GOPIKA-3007/Stroke-Prediction-System/auth"
	"github.com/GOPIKA-3007/Stroke-Prediction-System/imaging"
	"github.com/GOPIKA-3007/Stroke-Prediction-System/store"
)

// Predictor is the classifier as seen by the upload handler.
type Predictor interface {
	Ready() bool
	Predict(ctx context.Context, t *imaging.Tensor) (float64, error)
}

// Handler carries the collaborators of every endpoint. Stores and the model
// are injected so deployments can pick backings and tests can stub them;
// nothing here relies on package-level state.
type Handler struct {
	Records store.RecordStore
	Users   store.UserStore
	Tokens  *auth.TokenService
	Model   Predictor
	Logger  *slog.Logger

	UploadDir        string
	MaxUploadBytes   int64
	InferenceTimeout time.Duration
}
