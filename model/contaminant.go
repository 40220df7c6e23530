package model

// ContaminantConfig describes one contaminant's hazard weighting and
// reference concentration, e.g. PFBS at 4.0 ng/L or E. coli at the
// 235 MPN/100mL recreational benchmark.
type ContaminantConfig struct {
	ID string

	// Weight is the hazard weight w_x (dimensionless).
	Weight float64

	// Cref is the reference concentration C_ref,x used to normalize
	// series impacts. A non-positive Cref disables integration.
	Cref float64

	Unit ConcentrationUnit
}
