package fluids

import (
	"errors"
	"math"

	"github.com/hayatotakai/oilprops/pkg/models"
)

const (
	// ReferenceTempK is the 15 °C anchor temperature of the density model.
	ReferenceTempK = 288.15

	// expansionCoeff is the linear thermal-expansion coefficient (1/K) of the
	// density correction anchored at ReferenceTempK.
	expansionCoeff = 0.00065

	// waltherOffset keeps the double-log argument positive. Viscosities below
	// ~0.2 mm²/s break the transform; callers must not supply them.
	waltherOffset = 0.8

	// MismatchWarnThresholdPct is the reconstruction-error percentage above
	// which the self-consistency check flags an anchor point. The two-point
	// fit is exact by construction, so anything above this signals corrupted
	// input data rather than a modeling error.
	MismatchWarnThresholdPct = 5.0
)

var (
	// ErrFluidNotFound indicates the named fluid is absent from the dataset
	ErrFluidNotFound = errors.New("fluid not found in dataset")
	// ErrInsufficientData indicates fewer than two viscosity calibration points
	ErrInsufficientData = errors.New("fewer than two viscosity calibration points")
	// ErrDegenerateFit indicates the two calibration temperatures coincide
	ErrDegenerateFit = errors.New("identical calibration temperatures")
)

// WaltherFit holds the slope and intercept of the ASTM D341 Walther line
// log10(log10(ν + 0.8)) = m·log10(T) + n fitted through two calibration
// points. The fit is fully determined by the two points and recomputing with
// the same inputs reproduces identical values.
type WaltherFit struct {
	Slope     float64
	Intercept float64
}

// FitWalther fits the Walther line through two calibration points, taken in
// stored order (the transform is symmetric in point order, but downstream
// consumers label the first point P1). Returns ErrDegenerateFit when both
// points share the same temperature.
func FitWalther(p1, p2 models.ViscosityPoint) (WaltherFit, error) {
	if p1.TemperatureK == p2.TemperatureK {
		return WaltherFit{}, ErrDegenerateFit
	}

	w1 := math.Log10(math.Log10(p1.KinematicViscosity + waltherOffset))
	w2 := math.Log10(math.Log10(p2.KinematicViscosity + waltherOffset))

	m := (w2 - w1) / (math.Log10(p2.TemperatureK) - math.Log10(p1.TemperatureK))
	n := w1 - m*math.Log10(p1.TemperatureK)

	return WaltherFit{Slope: m, Intercept: n}, nil
}

// KinematicViscosity evaluates the fitted line at the given temperature and
// returns kinematic viscosity in mm²/s.
func (f WaltherFit) KinematicViscosity(tempK float64) float64 {
	h := f.Slope*math.Log10(tempK) + f.Intercept
	return math.Pow(10, math.Pow(10, h)) - waltherOffset
}

// ValidationResult reports the relative reconstruction error of the fit at
// each anchor point. It is a data-quality sentinel, never an error: values
// above the threshold only downgrade Pass.
type ValidationResult struct {
	P1ErrorPct float64
	P2ErrorPct float64
	Pass       bool
}

// Validate reconstructs the viscosity at both anchor temperatures and
// compares against the original inputs.
func (f WaltherFit) Validate(p1, p2 models.ViscosityPoint) ValidationResult {
	e1 := relativeErrorPct(f.KinematicViscosity(p1.TemperatureK), p1.KinematicViscosity)
	e2 := relativeErrorPct(f.KinematicViscosity(p2.TemperatureK), p2.KinematicViscosity)

	return ValidationResult{
		P1ErrorPct: e1,
		P2ErrorPct: e2,
		Pass:       e1 <= MismatchWarnThresholdPct && e2 <= MismatchWarnThresholdPct,
	}
}

func relativeErrorPct(reconstructed, original float64) float64 {
	return math.Abs(reconstructed-original) / original * 100
}

// Density returns the density in kg/m³ at the given temperature using the
// linear thermal-expansion approximation anchored at 15 °C. Extrapolation far
// from the anchor is allowed but not validated.
func Density(record models.FluidRecord, tempK float64) float64 {
	return record.DensityAt15C * (1 - expansionCoeff*(tempK-ReferenceTempK))
}
