package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/hayatotakai/oilprops/pkg/models"
)

// ExportRepository defines the interface for export job persistence
type ExportRepository interface {
	Create(ctx context.Context, export *models.Export) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Export, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string, progress int) error
	UpdateError(ctx context.Context, id uuid.UUID, errorMsg string) error
	StoreArtifact(ctx context.Context, id uuid.UUID, s3Key string) error
}
