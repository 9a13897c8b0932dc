package export

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/hayatotakai/oilprops/internal/dataset"
	"github.com/hayatotakai/oilprops/internal/fluids"
	"github.com/hayatotakai/oilprops/internal/repository"
	"github.com/hayatotakai/oilprops/internal/storage"
)

// ExportService runs material-database export jobs
type ExportService interface {
	ProcessExport(ctx context.Context, exportID uuid.UUID) error
}

type exportService struct {
	store      storage.ArtifactStore
	repository repository.ExportRepository
	source     dataset.Source
}

// NewExportService creates a new export service
func NewExportService(store storage.ArtifactStore, repo repository.ExportRepository, source dataset.Source) ExportService {
	return &exportService{
		store:      store,
		repository: repo,
		source:     source,
	}
}

// ProcessExport runs one export job end to end: load the dataset, render the
// material database, upload the artifact and advance the job status. Data
// failures mark the job failed and return nil; only persistence failures
// propagate as errors.
func (s *exportService) ProcessExport(ctx context.Context, exportID uuid.UUID) error {
	// Step 1: Update to processing status
	if err := s.repository.UpdateStatus(ctx, exportID, "processing", 10); err != nil {
		return err
	}

	// Step 2: Get export job details
	export, err := s.repository.GetByID(ctx, exportID)
	if err != nil {
		return err
	}

	tempK := export.TemperatureK
	if tempK <= 0 {
		tempK = fluids.ReferenceTempK
	}

	// Step 3: Load the fluid dataset snapshot
	if err := s.repository.UpdateStatus(ctx, exportID, "processing", 25); err != nil {
		return err
	}

	ds, err := s.source.Load(ctx)
	if err != nil {
		s.repository.UpdateError(ctx, exportID, fmt.Sprintf("Failed to load fluid dataset: %v", err))
		return nil // Don't return error, status is updated to failed
	}

	// Step 4: Render the material database
	if err := s.repository.UpdateStatus(ctx, exportID, "processing", 50); err != nil {
		return err
	}

	doc := BuildDocument(ds, tempK)
	if len(doc.Materials) == 0 {
		s.repository.UpdateError(ctx, exportID, "No exportable fluids in dataset")
		return nil
	}

	// Step 5: Upload the artifact
	if err := s.repository.UpdateStatus(ctx, exportID, "processing", 80); err != nil {
		return err
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal material database: %w", err)
	}

	artifactKey := fmt.Sprintf("exports/%s.json", exportID)
	if err := s.store.Upload(ctx, artifactKey, data, "application/json"); err != nil {
		s.repository.UpdateError(ctx, exportID, "Failed to upload export artifact")
		return nil
	}

	if err := s.repository.StoreArtifact(ctx, exportID, artifactKey); err != nil {
		return err
	}

	// Step 6: Mark complete
	if err := s.repository.UpdateStatus(ctx, exportID, "completed", 100); err != nil {
		return err
	}

	return nil
}
