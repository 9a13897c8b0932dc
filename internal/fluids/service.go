package fluids

import (
	"fmt"
	"math"

	"github.com/rs/zerolog/log"
)

// PropertyService answers temperature-dependent property queries against an
// immutable dataset snapshot. The explicit methods return typed errors; the
// Get*AtTemp methods keep the legacy numeric-pipeline contract and return NaN
// on any failure so batch callers can test-and-branch without error handling.
type PropertyService interface {
	Density(name string, tempK float64) (float64, error)
	KinematicViscosity(name string, tempK float64) (float64, error)
	DynamicViscosity(name string, tempK float64) (float64, error)
	Properties(name string, tempK float64) (Properties, error)
	FluidNames() []string

	GetDensityAtTemp(name string, tempK float64) float64
	GetKinViscAtTemp(name string, tempK float64) float64
	GetDynViscAtTemp(name string, tempK float64) float64
}

// Properties bundles every computed property of one fluid at one temperature
// together with the fit diagnostics.
type Properties struct {
	Density            float64
	KinematicViscosity float64
	DynamicViscosity   float64
	Fit                WaltherFit
	Validation         ValidationResult
}

type propertyService struct {
	dataset *Dataset
}

// NewPropertyService creates a property service over the given snapshot
func NewPropertyService(dataset *Dataset) PropertyService {
	return &propertyService{dataset: dataset}
}

// Density returns the density in kg/m³ at the given temperature
func (s *propertyService) Density(name string, tempK float64) (float64, error) {
	record, ok := s.dataset.Lookup(name)
	if !ok {
		return 0, fmt.Errorf("density of %q: %w", name, ErrFluidNotFound)
	}
	return Density(record, tempK), nil
}

// KinematicViscosity returns the kinematic viscosity in mm²/s at the given
// temperature, interpolated via the Walther transform. Fit parameters and the
// self-consistency verdict are emitted as structured log events, decoupled
// from the returned value.
func (s *propertyService) KinematicViscosity(name string, tempK float64) (float64, error) {
	record, ok := s.dataset.Lookup(name)
	if !ok {
		return 0, fmt.Errorf("kinematic viscosity of %q: %w", name, ErrFluidNotFound)
	}
	if len(record.ViscosityPoints) < 2 {
		return 0, fmt.Errorf("kinematic viscosity of %q: %w", name, ErrInsufficientData)
	}

	p1, p2 := record.ViscosityPoints[0], record.ViscosityPoints[1]
	fit, err := FitWalther(p1, p2)
	if err != nil {
		return 0, fmt.Errorf("kinematic viscosity of %q: %w", name, err)
	}

	log.Info().
		Str("fluid", name).
		Float64("slope", fit.Slope).
		Float64("intercept", fit.Intercept).
		Float64("temperature", tempK).
		Msg("Walther fit evaluated")

	check := fit.Validate(p1, p2)
	if check.Pass {
		log.Info().
			Str("fluid", name).
			Float64("p1_error_pct", check.P1ErrorPct).
			Float64("p2_error_pct", check.P2ErrorPct).
			Msg("Walther fit self-consistency check passed")
	} else {
		log.Warn().
			Str("fluid", name).
			Float64("p1_error_pct", check.P1ErrorPct).
			Float64("p2_error_pct", check.P2ErrorPct).
			Float64("threshold_pct", MismatchWarnThresholdPct).
			Msg("Walther fit reconstruction error exceeds threshold, check input data")
	}

	return fit.KinematicViscosity(tempK), nil
}

// DynamicViscosity returns the dynamic viscosity in Pa·s: ν·1e-6·ρ. A failure
// in either sub-computation propagates; no default is substituted.
func (s *propertyService) DynamicViscosity(name string, tempK float64) (float64, error) {
	nu, err := s.KinematicViscosity(name, tempK)
	if err != nil {
		return 0, err
	}
	rho, err := s.Density(name, tempK)
	if err != nil {
		return 0, err
	}
	return nu * 1e-6 * rho, nil
}

// Properties computes all three properties plus fit diagnostics in one pass
func (s *propertyService) Properties(name string, tempK float64) (Properties, error) {
	record, ok := s.dataset.Lookup(name)
	if !ok {
		return Properties{}, fmt.Errorf("properties of %q: %w", name, ErrFluidNotFound)
	}
	if len(record.ViscosityPoints) < 2 {
		return Properties{}, fmt.Errorf("properties of %q: %w", name, ErrInsufficientData)
	}

	p1, p2 := record.ViscosityPoints[0], record.ViscosityPoints[1]
	fit, err := FitWalther(p1, p2)
	if err != nil {
		return Properties{}, fmt.Errorf("properties of %q: %w", name, err)
	}

	rho := Density(record, tempK)
	nu := fit.KinematicViscosity(tempK)

	return Properties{
		Density:            rho,
		KinematicViscosity: nu,
		DynamicViscosity:   nu * 1e-6 * rho,
		Fit:                fit,
		Validation:         fit.Validate(p1, p2),
	}, nil
}

// FluidNames returns all fluid names, lexicographically sorted
func (s *propertyService) FluidNames() []string {
	return s.dataset.FluidNames()
}

// GetDensityAtTemp returns the density or NaN when the fluid is unknown
func (s *propertyService) GetDensityAtTemp(name string, tempK float64) float64 {
	return nanOnError(s.Density(name, tempK))
}

// GetKinViscAtTemp returns the kinematic viscosity or NaN on any failure
func (s *propertyService) GetKinViscAtTemp(name string, tempK float64) float64 {
	return nanOnError(s.KinematicViscosity(name, tempK))
}

// GetDynViscAtTemp returns the dynamic viscosity or NaN on any failure
func (s *propertyService) GetDynViscAtTemp(name string, tempK float64) float64 {
	return nanOnError(s.DynamicViscosity(name, tempK))
}

func nanOnError(v float64, err error) float64 {
	if err != nil {
		return math.NaN()
	}
	return v
}
