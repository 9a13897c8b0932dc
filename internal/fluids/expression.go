package fluids

import (
	"fmt"
)

// Expression renderers for downstream consumers (the STAR-CCM+ material
// exporter) that need the property formulas as text rather than as computed
// values. Operands are expression strings so callers can substitute literals
// or parameter references like ${ISO32_Temperature@P1}; the rendered formulas
// are algebraically identical to FitWalther + KinematicViscosity.

// DensityExpr renders the linear density correction in kg/m³. density must
// yield kg/m³ at 15 °C, temp a temperature in K.
func DensityExpr(density, temp string) string {
	return fmt.Sprintf("%s*(1-0.00065*(%s-288.15))", density, temp)
}

// KinematicViscosityExpr renders the closed-form Walther interpolation in
// mm²/s. t1, t2 must yield the anchor temperatures in K, v1, v2 the anchor
// viscosities in mm²/s, temp the query temperature in K.
func KinematicViscosityExpr(t1, v1, t2, v2, temp string) string {
	w1 := fmt.Sprintf("log10(log10(%s + 0.8))", v1)
	w2 := fmt.Sprintf("log10(log10(%s + 0.8))", v2)
	slope := fmt.Sprintf("(%s - %s) / (log10(%s) - log10(%s))", w2, w1, t2, t1)
	return fmt.Sprintf("pow(10, pow(10, %s * log10(%s) + %s - (%s * log10(%s)))) - 0.8",
		slope, temp, w1, slope, t1)
}

// DynamicViscosityExpr composes the kinematic viscosity and density
// expressions into dynamic viscosity in Pa·s.
func DynamicViscosityExpr(t1, v1, t2, v2, density, temp string) string {
	return fmt.Sprintf("(%s)*1e-6*(%s)",
		KinematicViscosityExpr(t1, v1, t2, v2, temp),
		DensityExpr(density, temp))
}
