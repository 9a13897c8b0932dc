package export

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/minio"
	pgContainer "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/hayatotakai/oilprops/internal/dataset"
	"github.com/hayatotakai/oilprops/internal/repository/postgres"
	"github.com/hayatotakai/oilprops/internal/storage"
	"github.com/hayatotakai/oilprops/pkg/models"
)

const exportsSchema = `
	CREATE TABLE IF NOT EXISTS exports (
		id UUID PRIMARY KEY,
		status TEXT NOT NULL,
		progress INT NOT NULL DEFAULT 0,
		temperature_k DOUBLE PRECISION NOT NULL,
		artifact_s3_key TEXT,
		error_message TEXT,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL,
		completed_at TIMESTAMPTZ
	)`

const sampleDatasetJSON = `{
	"ISO32": {
		"DensityAt15C": 870,
		"Kinematic Viscosity Limits": [
			{"temperature": 313.15, "kinematicViscosity": 32},
			{"temperature": 373.15, "kinematicViscosity": 5.5}
		]
	}
}`

// TestContainer holds test infrastructure
type TestContainer struct {
	postgresContainer testcontainers.Container
	minioContainer    testcontainers.Container
	dbURL             string
	minioURL          string
	bucketName        string
}

// SetupIntegrationTest sets up PostgreSQL and MinIO containers for integration testing
func SetupIntegrationTest(t *testing.T) *TestContainer {
	t.Helper()

	ctx := context.Background()

	// Start PostgreSQL container
	pg, err := pgContainer.Run(ctx,
		"postgres:15-alpine",
		pgContainer.WithDatabase("oilprops_test"),
		pgContainer.WithUsername("testuser"),
		pgContainer.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).WithStartupTimeout(30*time.Second)),
	)
	require.NoError(t, err)

	dbURL, err := pg.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	// Start MinIO container
	minioContainer, err := minio.Run(ctx,
		"minio/minio:RELEASE.2024-10-29T16-01-48Z",
		minio.WithUsername("minioadmin"),
		minio.WithPassword("minioadmin"),
	)
	require.NoError(t, err)

	minioURL, err := minioContainer.ConnectionString(ctx)
	require.NoError(t, err)

	// Create test bucket
	bucketName := "oilprops-test-" + uuid.New().String()[:8]
	require.NoError(t, createMinioBucket(ctx, minioURL, bucketName))

	return &TestContainer{
		postgresContainer: pg,
		minioContainer:    minioContainer,
		dbURL:             dbURL,
		minioURL:          minioURL,
		bucketName:        bucketName,
	}
}

// CleanupIntegrationTest cleans up test containers
func (tc *TestContainer) CleanupIntegrationTest(t *testing.T) {
	t.Helper()
	ctx := context.Background()

	if tc.minioContainer != nil {
		require.NoError(t, tc.minioContainer.Terminate(ctx))
	}
	if tc.postgresContainer != nil {
		require.NoError(t, tc.postgresContainer.Terminate(ctx))
	}
}

// createMinioBucket creates a bucket in MinIO for testing
func createMinioBucket(ctx context.Context, minioURL, bucketName string) error {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion("us-east-1"),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider("minioadmin", "minioadmin", "")),
	)
	if err != nil {
		return err
	}

	endpoint := "http://" + minioURL
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = &endpoint
		o.UsePathStyle = true
	})

	_, err = client.CreateBucket(ctx, &s3.CreateBucketInput{Bucket: aws.String(bucketName)})
	return err
}

// TestFullExportPipeline_Integration tests the complete export pipeline
func TestFullExportPipeline_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	tc := SetupIntegrationTest(t)
	defer tc.CleanupIntegrationTest(t)

	ctx := context.Background()

	// Set up dependencies
	db, err := sql.Open("postgres", tc.dbURL)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.ExecContext(ctx, exportsSchema)
	require.NoError(t, err)

	repo := postgres.NewPostgresExportRepository(db)

	store, err := storage.NewS3Store(storage.S3Config{
		Bucket:    tc.bucketName,
		Endpoint:  tc.minioURL,
		AccessKey: "minioadmin",
		SecretKey: "minioadmin",
	})
	require.NoError(t, err)

	datasetPath := filepath.Join(t.TempDir(), "fluid_data.json")
	require.NoError(t, os.WriteFile(datasetPath, []byte(sampleDatasetJSON), 0644))
	source := dataset.NewFileSource(datasetPath)

	exportService := NewExportService(store, repo, source)

	// Create a pending export job
	exportID := uuid.New()
	job := &models.Export{
		ID:           exportID.String(),
		Status:       "pending",
		TemperatureK: 288.15,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	require.NoError(t, repo.Create(ctx, job))

	// Process the export
	require.NoError(t, exportService.ProcessExport(ctx, exportID))

	// Verify the job completed and the artifact is downloadable
	final, err := repo.GetByID(ctx, exportID)
	require.NoError(t, err)
	assert.Equal(t, "completed", final.Status)
	assert.Equal(t, 100, final.Progress)
	assert.NotNil(t, final.CompletedAt)
	require.NotNil(t, final.ArtifactS3Key)

	url, err := store.GenerateDownloadURL(ctx, *final.ArtifactS3Key)
	require.NoError(t, err)
	assert.NotEmpty(t, url)
}

// TestExportPipelineFailure_Integration tests error handling in the pipeline
func TestExportPipelineFailure_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	tc := SetupIntegrationTest(t)
	defer tc.CleanupIntegrationTest(t)

	ctx := context.Background()

	db, err := sql.Open("postgres", tc.dbURL)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.ExecContext(ctx, exportsSchema)
	require.NoError(t, err)

	repo := postgres.NewPostgresExportRepository(db)

	store, err := storage.NewS3Store(storage.S3Config{
		Bucket:    tc.bucketName,
		Endpoint:  tc.minioURL,
		AccessKey: "minioadmin",
		SecretKey: "minioadmin",
	})
	require.NoError(t, err)

	// Dataset file that does not exist
	source := dataset.NewFileSource(filepath.Join(t.TempDir(), "missing.json"))
	exportService := NewExportService(store, repo, source)

	exportID := uuid.New()
	job := &models.Export{
		ID:           exportID.String(),
		Status:       "pending",
		TemperatureK: 288.15,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	require.NoError(t, repo.Create(ctx, job))

	// ProcessExport itself shouldn't error, but the job must end up failed
	require.NoError(t, exportService.ProcessExport(ctx, exportID))

	final, err := repo.GetByID(ctx, exportID)
	require.NoError(t, err)
	assert.Equal(t, "failed", final.Status)
	require.NotNil(t, final.ErrorMsg)
	assert.Contains(t, *final.ErrorMsg, "Failed to load fluid dataset")
}
