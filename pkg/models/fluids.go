package models

import (
	"time"
)

// HealthResponse represents the health check response
type HealthResponse struct {
	Body struct {
		Status  string    `json:"status" example:"healthy" doc:"Service health status"`
		Version string    `json:"version" example:"1.0.0" doc:"API version"`
		Time    time.Time `json:"time" doc:"Current server time"`
	}
}

// ViscosityPoint is a single (temperature, kinematic viscosity) calibration
// measurement. Temperature is in Kelvin, viscosity in mm²/s (centistokes).
type ViscosityPoint struct {
	TemperatureK       float64 `json:"temperature" doc:"Temperature in K"`
	KinematicViscosity float64 `json:"kinematicViscosity" doc:"Kinematic viscosity in mm²/s"`
}

// FluidRecord holds the reference data for one oil: density at 15 °C and the
// viscosity calibration points. Records are immutable once loaded; stored
// order of the points defines which anchor is P1 and which is P2.
type FluidRecord struct {
	Name            string           `json:"name"`
	DensityAt15C    float64          `json:"DensityAt15C"`
	ViscosityPoints []ViscosityPoint `json:"Kinematic Viscosity Limits"`
}

// ListFluidsResponse lists all fluid names in the loaded dataset
type ListFluidsResponse struct {
	Body struct {
		Fluids []string `json:"fluids" doc:"Fluid names, lexicographically sorted"`
		Count  int      `json:"count" doc:"Number of fluids in the dataset"`
	}
}

// GetFluidPropertiesRequest asks for properties of one fluid at a temperature
type GetFluidPropertiesRequest struct {
	Name         string  `path:"name" doc:"Fluid name"`
	TemperatureK float64 `query:"temperature" required:"true" minimum:"1" doc:"Query temperature in K"`
}

// FitDiagnostics carries the Walther fit parameters and the self-consistency
// check result for the two anchor points
type FitDiagnostics struct {
	Slope        float64 `json:"slope" doc:"Slope m of the Walther line"`
	Intercept    float64 `json:"intercept" doc:"Intercept n of the Walther line"`
	P1ErrorPct   float64 `json:"p1_error_pct" doc:"Relative reconstruction error at P1 in percent"`
	P2ErrorPct   float64 `json:"p2_error_pct" doc:"Relative reconstruction error at P2 in percent"`
	WithinBounds bool    `json:"within_bounds" doc:"True when both errors stay below the warn threshold"`
}

// GetFluidPropertiesResponse returns the computed properties of one fluid
type GetFluidPropertiesResponse struct {
	Body struct {
		Name               string          `json:"name" doc:"Fluid name"`
		TemperatureK       float64         `json:"temperature" doc:"Query temperature in K"`
		Density            float64         `json:"density" doc:"Density in kg/m³"`
		KinematicViscosity float64         `json:"kinematic_viscosity" doc:"Kinematic viscosity in mm²/s"`
		DynamicViscosity   float64         `json:"dynamic_viscosity" doc:"Dynamic viscosity in Pa·s"`
		Fit                *FitDiagnostics `json:"fit,omitempty" doc:"Walther fit diagnostics"`
	}
}
