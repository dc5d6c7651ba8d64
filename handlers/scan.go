package handlers

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/GOPIKA-3007/Stroke-Prediction-System/classifier"
	"github.com/GOPIKA-3007/Stroke-Prediction-System/imaging"
	"github.com/GOPIKA-3007/Stroke-Prediction-System/middleware"
	"github.com/GOPIKA-3007/Stroke-Prediction-System/models"
	"github.com/GOPIKA-3007/Stroke-Prediction-System/risk"
	"github.com/GOPIKA-3007/Stroke-Prediction-System/store"
	"github.com/GOPIKA-3007/Stroke-Prediction-System/utils"
)

var allowedExtensions = map[string]bool{
	"png":  true,
	"jpg":  true,
	"jpeg": true,
	"gif":  true,
	"dcm":  true,
}

func fileExtension(filename string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
}

// Predict accepts one uploaded scan, runs the scoring pipeline and stores
// the resulting record. The upload is written to a scoped temp file that is
// removed on every exit path.
func (h *Handler) Predict(c *gin.Context) {
	claims, ok := middleware.Caller(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no file uploaded"})
		return
	}

	filename := filepath.Base(file.Filename)
	if filename == "" || filename == "." {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no file selected"})
		return
	}

	ext := fileExtension(filename)
	if !allowedExtensions[ext] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file type not allowed"})
		return
	}

	if file.Size > h.MaxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large"})
		return
	}

	tmpPath := filepath.Join(h.UploadDir, uuid.New().String()+"_"+filename)
	if err := c.SaveUploadedFile(file, tmpPath); err != nil {
		h.Logger.Error("save upload", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store upload"})
		return
	}
	defer os.Remove(tmpPath)

	data, err := os.ReadFile(tmpPath)
	if err != nil {
		h.Logger.Error("read upload", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read upload"})
		return
	}

	tensor, err := imaging.Normalize(data, ext)
	if err != nil {
		var decodeErr *imaging.DecodeError
		if errors.As(err, &decodeErr) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "could not decode image"})
			return
		}
		h.Logger.Error("normalize image", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "image processing failed"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.InferenceTimeout)
	defer cancel()

	probability, err := h.Model.Predict(ctx, tensor)
	if err != nil {
		switch {
		case errors.Is(err, classifier.ErrModelUnavailable):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "model not available"})
		default:
			h.Logger.Error("inference", "error", err)
			c.JSON(http.StatusBadGateway, gin.H{"error": "inference failed"})
		}
		return
	}

	probability = risk.Clamp(probability)
	band := risk.BandFor(probability)

	rec := &models.ScanRecord{
		OwnerID:     claims.Username,
		FileName:    filename,
		FileHash:    utils.SHA256(data),
		RiskBand:    band,
		Probability: probability,
		Confidence:  risk.FormatConfidence(probability),
		Advice:      risk.Advice(band),
		CreatedAt:   time.Now().UTC(),
	}

	id, err := h.Records.Append(c.Request.Context(), rec)
	if err != nil {
		h.Logger.Error("append record", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store result"})
		return
	}
	rec.ID = id

	h.Logger.Info("scan analyzed",
		"id", id, "owner", rec.OwnerID, "band", band, "confidence", rec.Confidence)

	c.JSON(http.StatusOK, rec)
}

// ListPredictions returns the records visible to the caller per the role rule.
func (h *Handler) ListPredictions(c *gin.Context) {
	claims, ok := middleware.Caller(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	recs, err := h.Records.ListFor(c.Request.Context(), claims.Username, claims.Role)
	if err != nil {
		h.Logger.Error("list records", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list records"})
		return
	}
	c.JSON(http.StatusOK, recs)
}

type notesRequest struct {
	Notes *string `json:"notes" binding:"required"`
}

// AddNotes replaces the doctor notes on a record. Role enforcement happens in
// the route middleware; this handler only maps the store outcome.
func (h *Handler) AddNotes(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid record id"})
		return
	}

	var req notesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "notes field is required"})
		return
	}

	if err := h.Records.SetNotes(c.Request.Context(), id, *req.Notes); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
			return
		}
		h.Logger.Error("set notes", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update notes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "notes updated successfully"})
}
