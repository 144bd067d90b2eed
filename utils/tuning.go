package utils

// Tuning holds the numeric thresholds and vocabularies the extraction engine
// runs with. Values are fixed at startup; the engine never mutates them.
// Defaults are tuned for Indian mobile-phone retail invoices.
type Tuning struct {
	// RowTolerance is the max vertical-top difference, in page units, for two
	// fragments to share a row.
	RowTolerance int `toml:"row_tolerance" validate:"gt=0"`

	// MinRowLength is the minimum joined-text length for a row to be
	// considered as a product line.
	MinRowLength int `toml:"min_row_length" validate:"gte=0"`

	// QuantityMax caps plausible per-line quantities
	QuantityMax int `toml:"quantity_max" validate:"gt=0"`

	// RateMin/RateMax bound plausible unit prices
	RateMin int `toml:"rate_min" validate:"gt=0"`
	RateMax int `toml:"rate_max" validate:"gtfield=RateMin"`

	// AmountMin/AmountMax bound plausible line totals
	AmountMin int `toml:"amount_min" validate:"gt=0"`
	AmountMax int `toml:"amount_max" validate:"gtfield=AmountMin"`

	// Brands is the closed vocabulary of device brand names that gates
	// product-row acceptance.
	Brands []string `toml:"brands" validate:"min=1"`

	// Gazetteer lists known place names used to locate address blocks
	Gazetteer []string `toml:"gazetteer" validate:"min=1"`
}

// DefaultTuning returns the built-in engine tuning
func DefaultTuning() Tuning {
	return Tuning{
		RowTolerance: 20,
		MinRowLength: 10,
		QuantityMax:  100,
		RateMin:      1000,
		RateMax:      100000,
		AmountMin:    500,
		AmountMax:    200000,
		Brands: []string{
			"redmi", "xiaomi", "poco", "samsung", "vivo", "iqoo", "oppo",
			"realme", "narzo", "oneplus", "apple", "iphone", "motorola",
			"nokia", "infinix", "tecno", "itel", "lava", "honor", "nothing",
		},
		Gazetteer: []string{
			"Bihar", "Patna", "Jharkhand", "Ranchi", "Uttar Pradesh",
			"Lucknow", "Delhi", "New Delhi", "Maharashtra", "Mumbai", "Pune",
			"West Bengal", "Kolkata", "Tamil Nadu", "Chennai", "Telangana",
			"Hyderabad", "Karnataka", "Bengaluru", "Gujarat", "Ahmedabad",
			"Rajasthan", "Jaipur", "Madhya Pradesh", "Bhopal", "Punjab",
			"Haryana", "Chandigarh", "Odisha", "Bhubaneswar", "Assam",
			"Guwahati", "Chhattisgarh", "Raipur", "Kerala", "Kochi", "Goa",
		},
	}
}
