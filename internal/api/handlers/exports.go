package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/hayatotakai/oilprops/internal/export"
	"github.com/hayatotakai/oilprops/internal/fluids"
	"github.com/hayatotakai/oilprops/internal/repository"
	"github.com/hayatotakai/oilprops/internal/storage"
	"github.com/hayatotakai/oilprops/pkg/models"
)

// ExportsHandler handles material-database export HTTP requests
type ExportsHandler struct {
	repo      repository.ExportRepository
	store     storage.ArtifactStore
	exportSvc export.ExportService
}

// NewExportsHandler creates a new exports handler
func NewExportsHandler(repo repository.ExportRepository, store storage.ArtifactStore, exportSvc export.ExportService) *ExportsHandler {
	return &ExportsHandler{
		repo:      repo,
		store:     store,
		exportSvc: exportSvc,
	}
}

// CreateExport creates a new export job and starts processing it in the
// background
func (h *ExportsHandler) CreateExport(ctx context.Context, req *models.CreateExportRequest) (*models.CreateExportResponse, error) {
	exportID := uuid.New()

	tempK := req.Body.TemperatureK
	if tempK <= 0 {
		tempK = fluids.ReferenceTempK
	}
	log.Info().Str("exportID", exportID.String()).Float64("temperature", tempK).Msg("Creating new export job")

	job := &models.Export{
		ID:           exportID.String(),
		Status:       "pending",
		Progress:     0,
		TemperatureK: tempK,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := h.repo.Create(ctx, job); err != nil {
		return nil, huma.Error500InternalServerError("Failed to create export job", err)
	}

	// Start processing in background (don't wait for completion)
	go func() {
		if err := h.exportSvc.ProcessExport(context.Background(), exportID); err != nil {
			h.repo.UpdateError(context.Background(), exportID, fmt.Sprintf("Export failed: %v", err))
		}
	}()

	return &models.CreateExportResponse{
		Body: models.CreateExportResponseBody{ID: job.ID},
	}, nil
}

// GetExportStatus returns the current status of an export job
func (h *ExportsHandler) GetExportStatus(ctx context.Context, req *models.GetExportStatusRequest) (*models.GetExportStatusResponse, error) {
	exportID, err := uuid.Parse(req.ID)
	if err != nil {
		return nil, huma.Error400BadRequest("Invalid export ID", err)
	}

	job, err := h.repo.GetByID(ctx, exportID)
	if err != nil {
		return nil, huma.Error404NotFound("Export not found", err)
	}

	resp := &models.GetExportStatusResponse{}
	resp.Body.ID = job.ID
	resp.Body.Status = job.Status
	resp.Body.Progress = job.Progress
	resp.Body.Message = h.generateStatusMessage(job.Status, job.Progress)
	return resp, nil
}

// DownloadExport returns a pre-signed URL for a completed export artifact
func (h *ExportsHandler) DownloadExport(ctx context.Context, req *models.DownloadExportRequest) (*models.DownloadExportResponse, error) {
	exportID, err := uuid.Parse(req.ID)
	if err != nil {
		return nil, huma.Error400BadRequest("Invalid export ID", err)
	}

	job, err := h.repo.GetByID(ctx, exportID)
	if err != nil {
		return nil, huma.Error404NotFound("Export not found", err)
	}

	if job.Status != "completed" {
		return nil, huma.Error409Conflict("Export not yet completed",
			fmt.Errorf("export status is %s", job.Status))
	}
	if job.ArtifactS3Key == nil {
		return nil, huma.Error500InternalServerError("Export completed without artifact")
	}

	url, err := h.store.GenerateDownloadURL(ctx, *job.ArtifactS3Key)
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to generate download URL", err)
	}

	resp := &models.DownloadExportResponse{}
	resp.Body.ID = job.ID
	resp.Body.DownloadURL = url
	return resp, nil
}

// generateStatusMessage creates a human-readable status message
func (h *ExportsHandler) generateStatusMessage(status string, progress int) string {
	switch status {
	case "pending":
		return "Export queued for processing..."
	case "processing":
		if progress < 25 {
			return "Starting export..."
		} else if progress < 50 {
			return "Loading fluid dataset..."
		} else if progress < 80 {
			return "Rendering material database..."
		} else {
			return "Uploading artifact..."
		}
	case "completed":
		return "Export complete!"
	case "failed":
		return "Export failed. Please try again."
	default:
		return "Unknown status"
	}
}
