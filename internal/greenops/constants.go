package greenops

// EPA Greenhouse Gas Equivalencies Calculator factors (2024 edition),
// expressed as kg CO2e per unit of activity:
//
//	equivalency = kg_CO2e / factor
const (
	// MilesDrivenFactor is kg CO2e per mile driven by an average gasoline
	// passenger vehicle.
	MilesDrivenFactor = 0.393

	// SmartphoneChargeFactor is kg CO2e per full smartphone charge.
	SmartphoneChargeFactor = 0.0124

	// TreeSeedlingFactor is kg CO2e sequestered by one urban tree seedling
	// grown for 10 years.
	TreeSeedlingFactor = 60.0

	// HomeDayFactor is kg CO2e per day of an average US home's energy use.
	HomeDayFactor = 21.7
)

const (
	// MinEquivalencyThresholdKg is the smallest footprint worth translating.
	MinEquivalencyThresholdKg = 1.0

	// LargeNumberThreshold switches display to "~X.X million".
	LargeNumberThreshold = 1_000_000

	// BillionThreshold switches display to "~X.X billion".
	BillionThreshold = 1_000_000_000
)
