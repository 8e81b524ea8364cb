// Package assess runs the full assessment of a property: climate for the
// postcode, a building from the property template, its heat loss, both
// system quotes and their running costs.
package assess

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/tomaszchojnowski/heatcalc/pkg/building"
	"github.com/tomaszchojnowski/heatcalc/pkg/climate"
	"github.com/tomaszchojnowski/heatcalc/pkg/cost"
	"github.com/tomaszchojnowski/heatcalc/pkg/heatloss"
	"github.com/tomaszchojnowski/heatcalc/pkg/template"
	"github.com/tomaszchojnowski/heatcalc/pkg/validation"
)

var (
	ErrInvalidPostcode = errors.New("invalid UK postcode")
	ErrUnknownPackage  = errors.New("unknown upgrade package")
)

// Request describes one assessment.
type Request struct {
	Postcode     string `json:"postcode"`
	PropertyType string `json:"propertyType"`

	// Optional design temperature overrides in °C.
	InternalTemp *float64 `json:"internalTemp,omitempty"`
	BedroomTemp  *float64 `json:"bedroomTemp,omitempty"`

	// UpgradePackage names a package to evaluate; Upgrades are applied
	// after the package's own upgrades.
	UpgradePackage string             `json:"upgradePackage,omitempty"`
	Upgrades       []heatloss.Upgrade `json:"upgrades,omitempty"`

	// NoGrants prices the heat pump without the BUS grant.
	NoGrants bool `json:"noGrants,omitempty"`
}

// Sizes are the recommended outputs for each emitter.
type Sizes struct {
	Radiator heatloss.SystemSize `json:"radiator"`
	HeatPump heatloss.SystemSize `json:"heatpump"`
}

// Running holds the running costs of both systems.
type Running struct {
	HeatPump cost.RunningCosts `json:"heatPump"`
	Boiler   cost.RunningCosts `json:"boiler"`
}

// Ranges holds the cost ranges of both systems.
type Ranges struct {
	HeatPump cost.CostRange `json:"heatPump"`
	Boiler   cost.CostRange `json:"boiler"`
}

// Result is a completed assessment.
type Result struct {
	Climate         climate.Climate    `json:"climate"`
	Conditions      climate.Conditions `json:"conditions"`
	Building        *building.Building `json:"building"`
	HeatLossPerArea float64            `json:"heatLossPerArea"` // W/m²
	Sizes           Sizes              `json:"sizes"`
	HeatPump        *cost.SystemCost   `json:"heatPump"`
	Boiler          *cost.SystemCost   `json:"boiler"`
	Ranges          Ranges             `json:"ranges"`
	Running         Running            `json:"running"`
	RegionalGas     climate.AnnualCost `json:"regionalGas"`
	Upgrade         *heatloss.Impact   `json:"upgrade,omitempty"`
}

// Assessor runs assessments. It is safe for concurrent use; every
// assessment works on its own building.
type Assessor struct {
	templates *template.Registry
	estimator *cost.Estimator
	logger    *slog.Logger
}

// Option configures an Assessor.
type Option func(*Assessor)

// WithLogger sets the logger passed down to the heat loss calculator.
func WithLogger(l *slog.Logger) Option {
	return func(a *Assessor) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithEstimator replaces the default cost estimator.
func WithEstimator(e *cost.Estimator) Option {
	return func(a *Assessor) {
		if e != nil {
			a.estimator = e
		}
	}
}

// New returns an assessor over a template registry.
func New(templates *template.Registry, opts ...Option) *Assessor {
	a := &Assessor{
		templates: templates,
		estimator: cost.NewEstimator(),
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Templates returns the registry the assessor builds from.
func (a *Assessor) Templates() *template.Registry {
	return a.templates
}

// Conditions returns the design conditions for a climate with any
// overrides from the request applied.
func (r Request) Conditions(c climate.Climate) climate.Conditions {
	cond := c.Region.Conditions()
	if r.InternalTemp != nil {
		cond.InternalDesignTemp = *r.InternalTemp
	}
	if r.BedroomTemp != nil {
		cond.InternalDesignTempBedroom = *r.BedroomTemp
	}
	return cond
}

// Assess runs the whole pipeline for a request.
func (a *Assessor) Assess(ctx context.Context, req Request) (*Result, error) {
	if !climate.ValidatePostcode(req.Postcode) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPostcode, req.Postcode)
	}
	clim := climate.ForPostcode(climate.FormatPostcode(req.Postcode))
	if clim.IsDefault {
		a.logger.Warn("postcode area not recognised, using default region",
			"postcode", clim.Postcode, "region", clim.Key)
	}

	tmpl, err := a.templates.Get(req.PropertyType)
	if err != nil {
		return nil, err
	}
	cond := req.Conditions(clim)
	report := validation.ValidateTemplate(tmpl)
	report.Merge(validation.ValidateConditions(cond))
	if err := report.Err(); err != nil {
		return nil, err
	}
	for _, w := range report.Warnings {
		a.logger.Warn("assessment input", "path", w.Path, "msg", w.Message)
	}

	b, err := building.New(tmpl)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	upgrades, err := req.upgrades()
	if err != nil {
		return nil, err
	}

	res, err := a.Evaluate(ctx, b, cond, !req.NoGrants, upgrades)
	if err != nil {
		return nil, err
	}
	res.Climate = clim
	res.RegionalGas = climate.AnnualHeatingCost(b.TotalHeatLoss, clim.Key, climate.Gas)

	a.logger.Info("assessment complete",
		"building", b.ID,
		"property", b.PropertyType,
		"postcode", clim.Postcode,
		"region", clim.Key,
		"heat_loss_kw", b.TotalHeatLoss,
		"heat_pump_gbp", res.HeatPump.FinalCost,
		"boiler_gbp", res.Boiler.FinalCost,
	)
	return res, nil
}

func (r Request) upgrades() ([]heatloss.Upgrade, error) {
	var out []heatloss.Upgrade
	if r.UpgradePackage != "" {
		p, ok := heatloss.LookupPackage(r.UpgradePackage)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownPackage, r.UpgradePackage)
		}
		out = append(out, p.Upgrades...)
	}
	for _, u := range r.Upgrades {
		if err := u.Validate(); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, nil
}

// Evaluate calculates an existing building and prices it. The building's
// heat loss results and SystemCost are overwritten. The result carries no
// climate; callers that know it fill it in.
func (a *Assessor) Evaluate(ctx context.Context, b *building.Building, cond climate.Conditions, includeGrants bool, upgrades []heatloss.Upgrade) (*Result, error) {
	calc, err := heatloss.New(cond, heatloss.WithLogger(a.logger))
	if err != nil {
		return nil, err
	}
	if _, err := calc.Calculate(b); err != nil {
		return nil, fmt.Errorf("calculating heat loss: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res := &Result{
		Conditions:      cond,
		Building:        b,
		HeatLossPerArea: heatloss.HeatLossPerArea(b),
		Sizes: Sizes{
			Radiator: heatloss.RecommendedSystemSize(b, heatloss.EmitterRadiator),
			HeatPump: heatloss.RecommendedSystemSize(b, heatloss.EmitterHeatPump),
		},
	}

	if res.HeatPump, err = a.estimator.SystemCost(b, cost.HeatPump, includeGrants); err != nil {
		return nil, err
	}
	if res.Boiler, err = a.estimator.SystemCost(b, cost.Boiler, false); err != nil {
		return nil, err
	}
	if res.Ranges.HeatPump, err = a.estimator.CostRange(b, cost.HeatPump); err != nil {
		return nil, err
	}
	if res.Ranges.Boiler, err = a.estimator.CostRange(b, cost.Boiler); err != nil {
		return nil, err
	}
	if res.Running.HeatPump, err = a.estimator.RunningCosts(b, cost.HeatPump); err != nil {
		return nil, err
	}
	if res.Running.Boiler, err = a.estimator.RunningCosts(b, cost.Boiler); err != nil {
		return nil, err
	}
	b.SystemCost = res.HeatPump.FinalCost

	if len(upgrades) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if res.Upgrade, err = calc.UpgradeImpact(b, upgrades); err != nil {
			return nil, fmt.Errorf("upgrade impact: %w", err)
		}
	}
	return res, nil
}
