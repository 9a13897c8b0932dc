package handlers

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"github.com/rs/zerolog/log"

	"github.com/hayatotakai/oilprops/internal/fluids"
	"github.com/hayatotakai/oilprops/pkg/models"
)

// FluidsHandler handles fluid property HTTP requests
type FluidsHandler struct {
	properties fluids.PropertyService
}

// NewFluidsHandler creates a new fluids handler
func NewFluidsHandler(properties fluids.PropertyService) *FluidsHandler {
	return &FluidsHandler{properties: properties}
}

// ListFluids returns all fluid names in the dataset
func (h *FluidsHandler) ListFluids(ctx context.Context, req *struct{}) (*models.ListFluidsResponse, error) {
	names := h.properties.FluidNames()

	resp := &models.ListFluidsResponse{}
	resp.Body.Fluids = names
	resp.Body.Count = len(names)
	return resp, nil
}

// GetFluidProperties computes density, kinematic and dynamic viscosity of a
// fluid at the requested temperature
func (h *FluidsHandler) GetFluidProperties(ctx context.Context, req *models.GetFluidPropertiesRequest) (*models.GetFluidPropertiesResponse, error) {
	log.Info().Str("fluid", req.Name).Float64("temperature", req.TemperatureK).Msg("Property query received")

	props, err := h.properties.Properties(req.Name, req.TemperatureK)
	if err != nil {
		switch {
		case errors.Is(err, fluids.ErrFluidNotFound):
			return nil, huma.Error404NotFound("Fluid not found", err)
		case errors.Is(err, fluids.ErrInsufficientData):
			return nil, huma.Error422UnprocessableEntity("Fluid has fewer than two viscosity calibration points", err)
		case errors.Is(err, fluids.ErrDegenerateFit):
			return nil, huma.Error422UnprocessableEntity("Fluid calibration temperatures coincide", err)
		default:
			return nil, huma.Error500InternalServerError("Failed to compute properties", err)
		}
	}

	resp := &models.GetFluidPropertiesResponse{}
	resp.Body.Name = req.Name
	resp.Body.TemperatureK = req.TemperatureK
	resp.Body.Density = props.Density
	resp.Body.KinematicViscosity = props.KinematicViscosity
	resp.Body.DynamicViscosity = props.DynamicViscosity
	resp.Body.Fit = &models.FitDiagnostics{
		Slope:        props.Fit.Slope,
		Intercept:    props.Fit.Intercept,
		P1ErrorPct:   props.Validation.P1ErrorPct,
		P2ErrorPct:   props.Validation.P2ErrorPct,
		WithinBounds: props.Validation.Pass,
	}
	return resp, nil
}
