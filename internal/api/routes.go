package api

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/go-chi/chi/v5"

	"github.com/hayatotakai/oilprops/internal/api/handlers"
	"github.com/hayatotakai/oilprops/internal/export"
	"github.com/hayatotakai/oilprops/internal/fluids"
	"github.com/hayatotakai/oilprops/internal/repository"
	"github.com/hayatotakai/oilprops/internal/storage"
)

// RegisterRoutes sets up all API routes
func RegisterRoutes(router *chi.Mux, api huma.API, properties fluids.PropertyService, store storage.ArtifactStore, exportRepo repository.ExportRepository, exportSvc export.ExportService) {
	// Initialize handlers
	fluidsHandler := handlers.NewFluidsHandler(properties)
	exportsHandler := handlers.NewExportsHandler(exportRepo, store, exportSvc)

	// Register fluid property routes
	huma.Register(api, huma.Operation{
		OperationID: "listFluids",
		Method:      http.MethodGet,
		Path:        "/api/fluids",
		Summary:     "List fluids",
		Description: "Returns all fluid names in the dataset, lexicographically sorted",
		Tags:        []string{"Fluids"},
	}, fluidsHandler.ListFluids)

	huma.Register(api, huma.Operation{
		OperationID: "getFluidProperties",
		Method:      http.MethodGet,
		Path:        "/api/fluids/{name}/properties",
		Summary:     "Get fluid properties",
		Description: "Computes density, kinematic and dynamic viscosity at the requested temperature",
		Tags:        []string{"Fluids"},
	}, fluidsHandler.GetFluidProperties)

	// Register export routes
	huma.Register(api, huma.Operation{
		OperationID: "createExport",
		Method:      http.MethodPost,
		Path:        "/api/exports",
		Summary:     "Create a material-database export",
		Description: "Creates a new export job and starts rendering the material database",
		Tags:        []string{"Exports"},
	}, exportsHandler.CreateExport)

	huma.Register(api, huma.Operation{
		OperationID: "getExportStatus",
		Method:      http.MethodGet,
		Path:        "/api/exports/{id}/status",
		Summary:     "Get export status",
		Description: "Returns the current status and progress of an export job",
		Tags:        []string{"Exports"},
	}, exportsHandler.GetExportStatus)

	huma.Register(api, huma.Operation{
		OperationID: "downloadExport",
		Method:      http.MethodGet,
		Path:        "/api/exports/{id}/download",
		Summary:     "Download export artifact",
		Description: "Returns a pre-signed URL for the generated material database",
		Tags:        []string{"Exports"},
	}, exportsHandler.DownloadExport)
}
