package export

import (
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/hayatotakai/oilprops/internal/fluids"
	"github.com/hayatotakai/oilprops/pkg/models"
)

const (
	// TopGroupName is the parameter group every oil is filed under. The
	// suffix warns simulation users off editing generated parameters.
	TopGroupName = "user_oil_properties (DO NOT CHANGE)"

	// TempParamName is the ambient temperature parameter the generated
	// expressions evaluate against inside the simulation tool.
	TempParamName = "PARAM_Temp"

	databaseTitle  = "user_defined_liquids"
	surfaceTension = 0.03 // N/m, constant for all oils
)

// BuildDocument renders the whole dataset into a material database: scalar
// parameters grouped per oil plus material definitions whose expressions
// re-derive the Walther fit symbolically. tempK only names the database;
// the expressions stay parametric in PARAM_Temp.
//
// Oils without two calibration points or with coinciding anchor temperatures
// are skipped with a warning; one bad record never fails the export.
func BuildDocument(ds *fluids.Dataset, tempK float64) *models.MaterialDatabase {
	doc := &models.MaterialDatabase{
		Name:        fmt.Sprintf("user_MaterialBase_@%dK", int(math.Round(tempK))),
		Title:       databaseTitle,
		TopGroup:    TopGroupName,
		GeneratedAt: time.Now(),
	}

	tempRef := paramRef(TempParamName)

	for _, name := range ds.FluidNames() {
		record, _ := ds.Lookup(name)

		if len(record.ViscosityPoints) < 2 {
			log.Warn().Str("fluid", name).Int("points", len(record.ViscosityPoints)).
				Msg("Skipping fluid with fewer than two viscosity points")
			continue
		}
		p1, p2 := record.ViscosityPoints[0], record.ViscosityPoints[1]

		fit, err := fluids.FitWalther(p1, p2)
		if err != nil {
			log.Warn().Str("fluid", name).Err(err).Msg("Skipping fluid with unusable calibration points")
			continue
		}
		if check := fit.Validate(p1, p2); !check.Pass {
			log.Warn().Str("fluid", name).
				Float64("p1_error_pct", check.P1ErrorPct).
				Float64("p2_error_pct", check.P2ErrorPct).
				Msg("Fluid fails the fit self-consistency check, exporting anyway")
		}

		log.Info().Str("fluid", name).
			Float64("density", record.DensityAt15C).
			Float64("visc_p1", p1.KinematicViscosity).
			Float64("visc_p2", p2.KinematicViscosity).
			Msg("Exporting oil")

		oilGroup := TopGroupName + "/" + name
		densityParam := name + "_Density@288.15K"
		tempP1 := name + "_Temperature@P1"
		tempP2 := name + "_Temperature@P2"
		viscP1 := name + "_kinematicViscosity@P1"
		viscP2 := name + "_kinematicViscosity@P2"

		doc.Parameters = append(doc.Parameters,
			models.ScalarParameter{Name: densityParam, Group: oilGroup, Value: record.DensityAt15C, Unit: "kg/m^3"},
			models.ScalarParameter{Name: tempP1, Group: oilGroup + "/P1", Value: p1.TemperatureK, Unit: "K"},
			models.ScalarParameter{Name: viscP1, Group: oilGroup + "/P1", Value: p1.KinematicViscosity * 1e-6, Unit: "m^2/s"},
			models.ScalarParameter{Name: tempP2, Group: oilGroup + "/P2", Value: p2.TemperatureK, Unit: "K"},
			models.ScalarParameter{Name: viscP2, Group: oilGroup + "/P2", Value: p2.KinematicViscosity * 1e-6, Unit: "m^2/s"},
		)

		// The viscosity parameters hold m²/s, the Walther expression wants
		// mm²/s, hence the inline 1e6.
		doc.Materials = append(doc.Materials, models.MaterialDefinition{
			Name:        name,
			DensityExpr: fluids.DensityExpr(paramRef(densityParam), tempRef),
			DynamicViscosityExpr: fluids.DynamicViscosityExpr(
				paramRef(tempP1), "("+paramRef(viscP1)+" * 1e6)",
				paramRef(tempP2), "("+paramRef(viscP2)+" * 1e6)",
				paramRef(densityParam), tempRef),
			SurfaceTension: surfaceTension,
		})
	}

	return doc
}

func paramRef(name string) string {
	return "${" + name + "}"
}
