package fluids

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDensityExpr(t *testing.T) {
	expr := DensityExpr("${Oil_Density@288.15K}", "${PARAM_Temp}")
	assert.Equal(t, "${Oil_Density@288.15K}*(1-0.00065*(${PARAM_Temp}-288.15))", expr)
}

func TestKinematicViscosityExpr_LiteralOperands(t *testing.T) {
	expr := KinematicViscosityExpr("T1", "V1", "T2", "V2", "T")
	assert.Equal(t,
		"pow(10, pow(10, (log10(log10(V2 + 0.8)) - log10(log10(V1 + 0.8))) / (log10(T2) - log10(T1)) * log10(T) + log10(log10(V1 + 0.8)) - ((log10(log10(V2 + 0.8)) - log10(log10(V1 + 0.8))) / (log10(T2) - log10(T1)) * log10(T1)))) - 0.8",
		expr)
}

func TestDynamicViscosityExpr_Composes(t *testing.T) {
	expr := DynamicViscosityExpr("T1", "V1", "T2", "V2", "D", "T")
	kin := KinematicViscosityExpr("T1", "V1", "T2", "V2", "T")
	dens := DensityExpr("D", "T")
	assert.Equal(t, "("+kin+")*1e-6*("+dens+")", expr)
}
