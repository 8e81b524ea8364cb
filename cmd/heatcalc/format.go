package main

import (
	"fmt"
	"io"
	"math"

	"golang.org/x/text/message"

	"github.com/tomaszchojnowski/heatcalc/pkg/assess"
	"github.com/tomaszchojnowski/heatcalc/pkg/climate"
	"github.com/tomaszchojnowski/heatcalc/pkg/cost"
	"github.com/tomaszchojnowski/heatcalc/pkg/template"
	"github.com/tomaszchojnowski/heatcalc/pkg/validation"
)

func printValidationReport(w io.Writer, r *validation.Report) {
	printResults := func(title string, results []validation.Result) {
		if len(results) == 0 {
			return
		}
		fmt.Fprintf(w, "%s (%d):\n", title, len(results))
		for _, res := range results {
			fmt.Fprintf(w, "  [%s] %s\n", res.Level, res.Message)
			if res.Path != "" {
				fmt.Fprintf(w, "    -> %s = %v\n", res.Path, res.ActualValue)
			}
			if res.Expected != "" {
				fmt.Fprintf(w, "    expected: %s\n", res.Expected)
			}
			if res.ConflictWith != "" {
				fmt.Fprintf(w, "    conflicts with: %s\n", res.ConflictWith)
			}
			for _, s := range res.Suggestions {
				fmt.Fprintf(w, "    * %s\n", s)
			}
		}
		fmt.Fprintln(w)
	}

	printResults("ERRORS", r.Errors)
	printResults("WARNINGS", r.Warnings)
	printResults("INFO", r.Info)

	if r.Valid {
		fmt.Fprintf(w, "Result: VALID (%s)\n", r.Summary)
	} else {
		fmt.Fprintf(w, "Result: INVALID (%s)\n", r.Summary)
	}
}

func printAssessment(w io.Writer, p *message.Printer, res *assess.Result) {
	b := res.Building
	fmt.Fprintf(w, "%s (%s), %s\n", b.PropertyName, b.Era, res.Climate.Postcode)
	fmt.Fprintf(w, "Region: %s, design %g°C outside / %g°C inside\n",
		res.Climate.Name, res.Conditions.ExternalDesignTemp, res.Conditions.InternalDesignTemp)
	if res.Climate.IsDefault {
		fmt.Fprintln(w, "  (postcode area not recognised, default region used)")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Heat Loss")
	fmt.Fprintln(w, "---------")
	fmt.Fprintf(w, "%-22s %8s %8s %8s\n", "Room", "Fabric", "Vent", "Total")
	for _, s := range b.AllSpaces() {
		hl := s.HeatLoss
		fmt.Fprintf(w, "%-22s %8.0f %8.0f %8.0f\n", s.Name, hl.FabricLoss, hl.VentilationLoss, hl.Total)
	}
	if bd := b.Breakdown; bd != nil {
		fmt.Fprintf(w, "%-22s %8.0f\n", "Thermal bridging", bd.Totals.ThermalBridging)
	}
	fmt.Fprintf(w, "%-22s %26s\n", "TOTAL", fmt.Sprintf("%.2f kW", b.TotalHeatLoss))
	fmt.Fprintf(w, "  %.0f W/m² over %.1f m²\n", res.HeatLossPerArea, b.TotalFloorArea())
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Systems")
	fmt.Fprintln(w, "-------")
	fmt.Fprintf(w, "%-22s %14s %14s\n", "", "Heat pump", "Boiler")
	rows := []struct {
		label  string
		hp, bo string
	}{
		{"Capacity", fmt.Sprintf("%d kW", res.HeatPump.Capacity), fmt.Sprintf("%d kW", res.Boiler.Capacity)},
		{"Installed cost", gbp(p, res.HeatPump.TotalCost), gbp(p, res.Boiler.TotalCost)},
		{"Grant", gbp(p, res.HeatPump.GrantAmount), gbp(p, res.Boiler.GrantAmount)},
		{"Final cost", gbp(p, res.HeatPump.FinalCost), gbp(p, res.Boiler.FinalCost)},
		{"Range", costRange(p, res.Ranges.HeatPump), costRange(p, res.Ranges.Boiler)},
		{"Radiators", fmt.Sprint(res.HeatPump.RadiatorCount), fmt.Sprint(res.Boiler.RadiatorCount)},
		{"Installation days", fmt.Sprint(res.HeatPump.InstallationDays), fmt.Sprint(res.Boiler.InstallationDays)},
		{"Running cost/year", gbp(p, res.Running.HeatPump.AnnualCost), gbp(p, res.Running.Boiler.AnnualCost)},
		{"Running cost/month", gbp(p, res.Running.HeatPump.MonthlyAverage), gbp(p, res.Running.Boiler.MonthlyAverage)},
	}
	for _, r := range rows {
		fmt.Fprintf(w, "%-22s %14s %14s\n", r.label, r.hp, r.bo)
	}
	fmt.Fprintf(w, "\nRecommended heat pump size: %g kW (radiators %g kW)\n",
		res.Sizes.HeatPump.RecommendedSize, res.Sizes.Radiator.RecommendedSize)

	if u := res.Upgrade; u != nil {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Upgrade")
		fmt.Fprintln(w, "-------")
		fmt.Fprintf(w, "  %.2f kW -> %.2f kW, saving %.2f kW (%.1f%%)\n",
			u.OriginalLoss, u.NewLoss, u.Savings, u.SavingsPercent)
	}
}

// gbp formats whole pounds with thousands separators.
func gbp(p *message.Printer, v float64) string {
	n := int64(math.Round(v))
	if n < 0 {
		return p.Sprintf("-£%d", -n)
	}
	return p.Sprintf("£%d", n)
}

func costRange(p *message.Printer, r cost.CostRange) string {
	return gbp(p, r.Low) + "-" + gbp(p, r.High)
}

func printTemplates(w io.Writer, templates []*template.Template) {
	fmt.Fprintf(w, "%-20s %-26s %-12s %5s %6s %9s\n", "ID", "Name", "Era", "Beds", "Rooms", "Area m²")
	for _, t := range templates {
		fmt.Fprintf(w, "%-20s %-26s %-12s %5d %6d %9.1f\n",
			t.ID, t.Name, t.Era, t.CommonBedrooms, t.RoomCount(), t.FloorArea())
	}
}

func printRegions(w io.Writer, regions []climate.Region) {
	fmt.Fprintf(w, "%-16s %-22s %8s %6s %6s\n", "Key", "Name", "Design", "HDD", "Wind")
	for _, r := range regions {
		fmt.Fprintf(w, "%-16s %-22s %7g° %6.0f %6.1f\n",
			r.Key, r.Name, r.ExternalDesignTemp, r.HeatingDegreeDays, r.WindExposure)
	}
}
