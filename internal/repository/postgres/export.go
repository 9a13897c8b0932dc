package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/hayatotakai/oilprops/internal/repository"
	"github.com/hayatotakai/oilprops/pkg/models"
)

// PostgresExportRepository implements ExportRepository for PostgreSQL
type PostgresExportRepository struct {
	db *sql.DB
}

// NewPostgresExportRepository creates a new PostgreSQL export repository
func NewPostgresExportRepository(db *sql.DB) repository.ExportRepository {
	return &PostgresExportRepository{db: db}
}

// Create inserts a new export job record
func (r *PostgresExportRepository) Create(ctx context.Context, export *models.Export) error {
	query := `
		INSERT INTO exports (id, status, progress, temperature_k, artifact_s3_key, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.ExecContext(ctx, query,
		export.ID,
		export.Status,
		export.Progress,
		export.TemperatureK,
		export.ArtifactS3Key,
		export.CreatedAt,
		export.UpdatedAt)

	return err
}

// GetByID retrieves an export job by ID
func (r *PostgresExportRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Export, error) {
	query := `
		SELECT id, status, progress, temperature_k, artifact_s3_key, error_message, created_at, updated_at, completed_at
		FROM exports
		WHERE id = $1`

	var export models.Export
	var artifactKey, errorMsg sql.NullString
	var completedAt sql.NullTime

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&export.ID,
		&export.Status,
		&export.Progress,
		&export.TemperatureK,
		&artifactKey,
		&errorMsg,
		&export.CreatedAt,
		&export.UpdatedAt,
		&completedAt)

	if err != nil {
		return nil, err
	}

	if artifactKey.Valid {
		export.ArtifactS3Key = &artifactKey.String
	}
	if errorMsg.Valid {
		export.ErrorMsg = &errorMsg.String
	}
	if completedAt.Valid {
		export.CompletedAt = &completedAt.Time
	}

	return &export, nil
}

// UpdateStatus updates the status and progress of an export job
func (r *PostgresExportRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string, progress int) error {
	query := `
		UPDATE exports
		SET status = $1, progress = $2, updated_at = NOW(),
		    completed_at = CASE WHEN $1 = 'completed' THEN NOW() ELSE completed_at END
		WHERE id = $3`

	_, err := r.db.ExecContext(ctx, query, status, progress, id)
	return err
}

// UpdateError marks an export job failed with an error message
func (r *PostgresExportRepository) UpdateError(ctx context.Context, id uuid.UUID, errorMsg string) error {
	query := `
		UPDATE exports
		SET status = 'failed', error_message = $1, updated_at = NOW()
		WHERE id = $2`

	_, err := r.db.ExecContext(ctx, query, errorMsg, id)
	return err
}

// StoreArtifact records the S3 key of the generated artifact
func (r *PostgresExportRepository) StoreArtifact(ctx context.Context, id uuid.UUID, s3Key string) error {
	query := `
		UPDATE exports
		SET artifact_s3_key = $1, updated_at = NOW()
		WHERE id = $2`

	_, err := r.db.ExecContext(ctx, query, s3Key, id)
	return err
}
