package config

// variantConfiguration holds the empirical constants used when generating
// material values and piece-square tables for a newly loaded variant
// descriptor (spec open question: these are tunables, not fixed constants).
type variantConfiguration struct {
	// MobilityWeight (α) scales a piece's averaged mobility fan-out into its
	// base material value.
	MobilityWeight float64

	// Centrality (β), CenterVisibility (γ) and PromotionProximity (δ) weight
	// the three terms summed into each piece-square table entry.
	Centrality         float64
	CenterVisibility   float64
	PromotionProximity float64
}

func init() {
	Settings.Variant.MobilityWeight = 4.0
	Settings.Variant.Centrality = 2.0
	Settings.Variant.CenterVisibility = 1.0
	Settings.Variant.PromotionProximity = 0.5
}
