// Package store owns scan records and the user directory. Persistence is a
// deployment choice: both stores have an in-memory backing and a MongoDB
// backing behind the same interfaces.
package store

import (
	"context"
	"errors"

	"github.com/GOPIKA-3007/Stroke-Prediction-System/models"
)

var (
	ErrNotFound      = errors.New("store: record not found")
	ErrDuplicateUser = errors.New("store: username already exists")
)

// RecordStore holds one record per analyzed scan. Records are never deleted.
type RecordStore interface {
	// Append inserts rec and returns its id. Ids are monotonic and assigned
	// atomically with insertion; concurrent appends never collide.
	Append(ctx context.Context, rec *models.ScanRecord) (int64, error)

	// ListFor returns records visible to the requester, ordered by id.
	// Doctors see everything, patients only their own records.
	ListFor(ctx context.Context, requesterID string, role models.Role) ([]models.ScanRecord, error)

	// SetNotes replaces the doctor notes on a record. ErrNotFound if id is
	// unknown. Role enforcement happens at the HTTP boundary, not here.
	SetNotes(ctx context.Context, id int64, notes string) error
}

// UserStore is the credential directory behind registration and login.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	Get(ctx context.Context, username string) (*models.User, error)
	ListPatients(ctx context.Context) ([]models.User, error)
}
