package models

import (
	"time"

	"github.com/GOPIKA-3007/Stroke-Prediction-System/risk"
)

// ScanRecord is the persisted outcome of one analyzed CT-scan upload.
// Records are append-only; only Notes may change after creation.
type ScanRecord struct {
	ID          int64     `bson:"_id" json:"id"`
	OwnerID     string    `bson:"ownerId" json:"username"`
	FileName    string    `bson:"fileName" json:"filename"`
	FileHash    string    `bson:"fileHash" json:"fileHash"`
	RiskBand    risk.Band `bson:"riskBand" json:"riskLevel"`
	Probability float64   `bson:"probability" json:"probability"`
	Confidence  string    `bson:"confidence" json:"confidenceScore"`
	Advice      string    `bson:"advice" json:"keyFindings"`
	Notes       string    `bson:"notes" json:"doctor_notes"`
	CreatedAt   time.Time `bson:"createdAt" json:"timestamp"`
}
