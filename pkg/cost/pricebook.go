package cost

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// SystemType is the heating system being priced.
type SystemType string

const (
	HeatPump SystemType = "heatPump"
	Boiler   SystemType = "boiler"
)

// ErrUnknownSystemType is returned for a system type other than heatPump or boiler.
var ErrUnknownSystemType = errors.New("unknown system type")

// ParseSystemType accepts the canonical names plus a few spellings used on
// the command line.
func ParseSystemType(s string) (SystemType, error) {
	switch s {
	case "heatPump", "heatpump", "heat_pump", "heat-pump", "ashp":
		return HeatPump, nil
	case "boiler", "gas", "gas_boiler":
		return Boiler, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSystemType, s)
}

// RadiatorSize is a radiator tier.
type RadiatorSize string

const (
	Small      RadiatorSize = "small"
	Medium     RadiatorSize = "medium"
	Large      RadiatorSize = "large"
	ExtraLarge RadiatorSize = "extraLarge"
)

// UnitPrice is the price of a heat source of one capacity.
type UnitPrice struct {
	Equipment    float64 `yaml:"equipment" json:"equipment"`
	Installation float64 `yaml:"installation" json:"installation"`
}

// RadiatorPrice is the price of one radiator tier.
type RadiatorPrice struct {
	Watts        float64 `yaml:"watts" json:"watts"`
	Price        float64 `yaml:"price" json:"price"`
	Installation float64 `yaml:"installation" json:"installation"`
}

// AreaPrice is priced per m².
type AreaPrice struct {
	Materials    float64 `yaml:"materials" json:"materials"`
	Installation float64 `yaml:"installation" json:"installation"`
}

// Components are the fixed-price parts of a system.
type Components struct {
	PipeworkPerMetre float64 `yaml:"pipeworkPerMeter" json:"pipeworkPerMeter"`
	ControlsBasic    float64 `yaml:"controlsBasic" json:"controlsBasic"`
	ControlsSmart    float64 `yaml:"controlsSmart" json:"controlsSmart"`
	CylinderStandard float64 `yaml:"cylinderStandard" json:"cylinderStandard"`
	CylinderUnvented float64 `yaml:"cylinderUnvented" json:"cylinderUnvented"`
	BufferTank       float64 `yaml:"bufferTank" json:"bufferTank"`
	Manifold         float64 `yaml:"manifold" json:"manifold"`
	Thermostatic     float64 `yaml:"thermostatic" json:"thermostatic"`
	PumpStandard     float64 `yaml:"pumpStandard" json:"pumpStandard"`
	ExpansionVessel  float64 `yaml:"expansionVessel" json:"expansionVessel"`
	Inhibitor        float64 `yaml:"inhibitor" json:"inhibitor"`
	PowerFlush       float64 `yaml:"powerFlush" json:"powerFlush"`
}

// LabourRate is an installer rate.
type LabourRate struct {
	Daily  float64 `yaml:"daily" json:"daily"`
	Hourly float64 `yaml:"hourly" json:"hourly"`
}

// Grant is a government incentive.
type Grant struct {
	Name        string       `yaml:"name" json:"name"`
	Amount      float64      `yaml:"amount" json:"amount"`
	SystemTypes []SystemType `yaml:"systemTypes" json:"systemTypes"`
	Conditions  string       `yaml:"conditions" json:"conditions"`
}

// RunningAssumptions drive the annual running cost estimate.
type RunningAssumptions struct {
	HeatingHours     float64 `yaml:"heatingHours" json:"heatingHours"`
	HeatPumpSCOP     float64 `yaml:"heatPumpSCOP" json:"heatPumpSCOP"`
	BoilerEfficiency float64 `yaml:"boilerEfficiency" json:"boilerEfficiency"`
	ElectricityPrice float64 `yaml:"electricityPrice" json:"electricityPrice"`
	GasPrice         float64 `yaml:"gasPrice" json:"gasPrice"`
}

// PriceBook holds every price the estimator uses.
type PriceBook struct {
	HeatPumps  map[int]UnitPrice              `yaml:"heatPumps" json:"heatPumps"`
	Boilers    map[int]UnitPrice              `yaml:"boilers" json:"boilers"`
	Radiators  map[RadiatorSize]RadiatorPrice `yaml:"radiators" json:"radiators"`
	Underfloor map[string]AreaPrice           `yaml:"underfloor" json:"underfloor"`
	Components Components                     `yaml:"components" json:"components"`
	Labour     map[string]LabourRate          `yaml:"labour" json:"labour"`
	Complexity map[string]float64             `yaml:"complexity" json:"complexity"`
	Grants     map[string]Grant               `yaml:"grants" json:"grants"`
	Running    RunningAssumptions             `yaml:"running" json:"running"`
}

// ParsePriceBook overlays YAML onto the default price book. Map entries
// in the document replace or extend the defaults; omitted fields keep
// their default values.
func ParsePriceBook(data []byte) (*PriceBook, error) {
	pb := DefaultPriceBook()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(pb); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing price book: %w", err)
	}
	if err := pb.Validate(); err != nil {
		return nil, err
	}
	return pb, nil
}

// LoadPriceBook reads a YAML price book overlay from path.
func LoadPriceBook(path string) (*PriceBook, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading price book: %w", err)
	}
	pb, err := ParsePriceBook(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return pb, nil
}

// Validate checks that every table is usable.
func (p *PriceBook) Validate() error {
	var errs []error
	if len(p.HeatPumps) == 0 {
		errs = append(errs, errors.New("no heat pump prices"))
	}
	if len(p.Boilers) == 0 {
		errs = append(errs, errors.New("no boiler prices"))
	}
	for _, size := range []RadiatorSize{Small, Medium, Large, ExtraLarge} {
		if _, ok := p.Radiators[size]; !ok {
			errs = append(errs, fmt.Errorf("missing radiator size %q", size))
		}
	}
	if _, ok := p.Labour[DefaultLabourRegion]; !ok {
		errs = append(errs, errors.New("missing default labour rate"))
	}
	r := p.Running
	for name, v := range map[string]float64{
		"heatingHours":     r.HeatingHours,
		"heatPumpSCOP":     r.HeatPumpSCOP,
		"boilerEfficiency": r.BoilerEfficiency,
	} {
		if !(v > 0) || math.IsInf(v, 0) {
			errs = append(errs, fmt.Errorf("running.%s must be > 0", name))
		}
	}
	return errors.Join(errs...)
}

// Capacities returns the tabulated capacities for a system type in
// ascending order.
func (p *PriceBook) Capacities(t SystemType) ([]int, error) {
	table, err := p.table(t)
	if err != nil {
		return nil, err
	}
	caps := make([]int, 0, len(table))
	for c := range table {
		caps = append(caps, c)
	}
	sort.Ints(caps)
	return caps, nil
}

func (p *PriceBook) table(t SystemType) (map[int]UnitPrice, error) {
	switch t {
	case HeatPump:
		return p.HeatPumps, nil
	case Boiler:
		return p.Boilers, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownSystemType, t)
}

// SelectCapacity returns the smallest tabulated capacity at or above
// required, or the largest capacity when none is big enough.
func (p *PriceBook) SelectCapacity(t SystemType, required float64) (int, UnitPrice, error) {
	caps, err := p.Capacities(t)
	if err != nil {
		return 0, UnitPrice{}, err
	}
	if len(caps) == 0 {
		return 0, UnitPrice{}, fmt.Errorf("no %s prices", t)
	}
	table, _ := p.table(t)
	for _, c := range caps {
		if float64(c) >= required {
			return c, table[c], nil
		}
	}
	c := caps[len(caps)-1]
	return c, table[c], nil
}

// LabourRate returns the rate for a region, falling back to the default rate.
func (p *PriceBook) LabourRate(region string) LabourRate {
	if r, ok := p.Labour[region]; ok {
		return r
	}
	return p.Labour[DefaultLabourRegion]
}

// GrantFor returns the grant amount available for a system type.
func (p *PriceBook) GrantFor(t SystemType) float64 {
	g, ok := p.Grants[BUSGrant]
	if !ok {
		return 0
	}
	for _, st := range g.SystemTypes {
		if st == t {
			return g.Amount
		}
	}
	return 0
}
