package cost

// Default UK prices (2024/25) in GBP.
const (
	PipeworkPerMetre = 25.0

	HeatPumpPipeworkPerM2 = 2.5 // metres of pipe per m² of floor
	BoilerPipeworkPerM2   = 2.0

	HeatPumpBaseDays    = 3
	HeatPumpRoomsPerDay = 4
	BoilerBaseDays      = 2
	BoilerRoomsPerDay   = 5

	// SizingMargin converts design heat loss into required capacity.
	SizingMargin = 1.2

	// MinRadiatorFloorArea excludes WCs and cupboards from radiator sizing.
	MinRadiatorFloorArea = 2.0 // m²

	LowRangeFactor  = 0.90
	HighRangeFactor = 1.15

	HeatingHours     = 2000.0 // h/year
	HeatPumpSCOP     = 3.2
	BoilerEfficiency = 0.90
	ElectricityPrice = 0.24 // £/kWh
	GasPrice         = 0.06 // £/kWh

	DefaultLabourRegion = "default"
	StandardComplexity  = "standard"
	BUSGrant            = "busGrant"
)

// DefaultPriceBook returns the built-in price tables. Each call returns a
// fresh copy.
func DefaultPriceBook() *PriceBook {
	return &PriceBook{
		HeatPumps: map[int]UnitPrice{
			5:  {Equipment: 5500, Installation: 1500},
			6:  {Equipment: 6000, Installation: 1600},
			7:  {Equipment: 6500, Installation: 1700},
			8:  {Equipment: 7000, Installation: 1800},
			9:  {Equipment: 7500, Installation: 1900},
			10: {Equipment: 8000, Installation: 2000},
			11: {Equipment: 8500, Installation: 2100},
			12: {Equipment: 9000, Installation: 2200},
			14: {Equipment: 10000, Installation: 2400},
			16: {Equipment: 11000, Installation: 2600},
			18: {Equipment: 12000, Installation: 2800},
			20: {Equipment: 13500, Installation: 3000},
		},
		Boilers: map[int]UnitPrice{
			24: {Equipment: 1800, Installation: 1200},
			28: {Equipment: 2000, Installation: 1200},
			32: {Equipment: 2200, Installation: 1300},
			35: {Equipment: 2400, Installation: 1300},
			40: {Equipment: 2600, Installation: 1400},
		},
		Radiators: map[RadiatorSize]RadiatorPrice{
			Small:      {Watts: 1000, Price: 120, Installation: 150},
			Medium:     {Watts: 1500, Price: 160, Installation: 180},
			Large:      {Watts: 2000, Price: 200, Installation: 200},
			ExtraLarge: {Watts: 3000, Price: 280, Installation: 220},
		},
		Underfloor: map[string]AreaPrice{
			"electric":  {Materials: 80, Installation: 40},
			"wetSystem": {Materials: 120, Installation: 60},
		},
		Components: Components{
			PipeworkPerMetre: PipeworkPerMetre,
			ControlsBasic:    400,
			ControlsSmart:    800,
			CylinderStandard: 800,
			CylinderUnvented: 1200,
			BufferTank:       600,
			Manifold:         350,
			Thermostatic:     45,
			PumpStandard:     150,
			ExpansionVessel:  120,
			Inhibitor:        50,
			PowerFlush:       400,
		},
		Labour: map[string]LabourRate{
			"london":    {Daily: 450, Hourly: 65},
			"southeast": {Daily: 400, Hourly: 60},
			"southwest": {Daily: 380, Hourly: 55},
			"midlands":  {Daily: 360, Hourly: 52},
			"north":     {Daily: 340, Hourly: 50},
			"scotland":  {Daily: 360, Hourly: 52},
			"wales":     {Daily: 350, Hourly: 50},
			"default":   {Daily: 380, Hourly: 55},
		},
		Complexity: map[string]float64{
			"easy":          1.0,
			"standard":      1.2,
			"difficult":     1.5,
			"veryDifficult": 1.8,
		},
		Grants: map[string]Grant{
			BUSGrant: {
				Name:        "Boiler Upgrade Scheme",
				Amount:      7500,
				SystemTypes: []SystemType{HeatPump},
				Conditions:  "Air source heat pump installation",
			},
			"ecoScheme": {
				Name:        "ECO4 Scheme",
				Amount:      0,
				SystemTypes: []SystemType{HeatPump, Boiler},
				Conditions:  "Income-based eligibility",
			},
		},
		Running: RunningAssumptions{
			HeatingHours:     HeatingHours,
			HeatPumpSCOP:     HeatPumpSCOP,
			BoilerEfficiency: BoilerEfficiency,
			ElectricityPrice: ElectricityPrice,
			GasPrice:         GasPrice,
		},
	}
}
