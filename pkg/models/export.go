package models

import (
	"time"
)

// Export represents one material-database export job (for internal use)
type Export struct {
	ID            string     `json:"id"`
	Status        string     `json:"status"`
	Progress      int        `json:"progress"`
	TemperatureK  float64    `json:"temperature"`
	ArtifactS3Key *string    `json:"artifact_s3_key,omitempty"`
	ErrorMsg      *string    `json:"error_message,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
}

// ScalarParameter is one scalar global parameter of the generated material
// database, grouped under "<top>/<oil>/..." the way the simulation tool
// organizes its global parameter tree.
type ScalarParameter struct {
	Name  string  `json:"name" doc:"Global parameter name, e.g. ISO32_Temperature@P1"`
	Group string  `json:"group" doc:"Slash-separated group path"`
	Value float64 `json:"value" doc:"Parameter value in SI units"`
	Unit  string  `json:"unit" doc:"Unit symbol, e.g. kg/m^3"`
}

// MaterialDefinition is one liquid material entry with its property
// expressions. The expressions reference the scalar parameters plus the
// ambient temperature parameter and evaluate to SI values.
type MaterialDefinition struct {
	Name                 string  `json:"name" doc:"Material (oil) name"`
	DensityExpr          string  `json:"density_expr" doc:"Density expression in kg/m³"`
	DynamicViscosityExpr string  `json:"dynamic_viscosity_expr" doc:"Dynamic viscosity expression in Pa·s"`
	SurfaceTension       float64 `json:"surface_tension" doc:"Surface tension in N/m"`
}

// MaterialDatabase is the full export artifact: every oil of the dataset as
// parameters plus material definitions
type MaterialDatabase struct {
	Name        string               `json:"name"`
	Title       string               `json:"title"`
	TopGroup    string               `json:"top_group"`
	Parameters  []ScalarParameter    `json:"parameters"`
	Materials   []MaterialDefinition `json:"materials"`
	GeneratedAt time.Time            `json:"generated_at"`
}

// CreateExportRequest starts a new material-database export job
type CreateExportRequest struct {
	Body struct {
		TemperatureK float64 `json:"temperature,omitempty" minimum:"0" doc:"Ambient temperature in K used to name the database (defaults to 288.15)"`
	}
}

// CreateExportResponse returns the identifier of the created export job
type CreateExportResponse struct {
	Body CreateExportResponseBody
}

// CreateExportResponseBody is the body of the create export response
type CreateExportResponseBody struct {
	ID string `json:"id" doc:"Export job unique identifier"`
}

// GetExportStatusRequest asks for the status of an export job
type GetExportStatusRequest struct {
	ID string `path:"id" doc:"Export job ID"`
}

// GetExportStatusResponse returns the current status of an export job
type GetExportStatusResponse struct {
	Body struct {
		ID       string `json:"id" doc:"Export job ID"`
		Status   string `json:"status" enum:"pending,processing,completed,failed" doc:"Export status"`
		Progress int    `json:"progress" minimum:"0" maximum:"100" doc:"Export progress percentage"`
		Message  string `json:"message,omitempty" doc:"Human-readable status message"`
	}
}

// DownloadExportRequest asks for a download URL of a completed export
type DownloadExportRequest struct {
	ID string `path:"id" doc:"Export job ID"`
}

// DownloadExportResponse returns a pre-signed URL for the export artifact
type DownloadExportResponse struct {
	Body struct {
		ID          string `json:"id" doc:"Export job ID"`
		DownloadURL string `json:"download_url" doc:"Pre-signed URL for the artifact"`
	}
}
