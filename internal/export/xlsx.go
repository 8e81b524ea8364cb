// Package export writes assessment results as spreadsheets and charts.
package export

import (
	"fmt"
	"io"
	"math"

	"github.com/xuri/excelize/v2"

	"github.com/tomaszchojnowski/heatcalc/pkg/assess"
	"github.com/tomaszchojnowski/heatcalc/pkg/building"
	"github.com/tomaszchojnowski/heatcalc/pkg/cost"
)

// Sheet names.
const (
	SummarySheet = "Summary"
	RoomsSheet   = "Rooms"
	CostsSheet   = "Costs"
)

var roomHeaders = []string{
	"Floor", "Room", "Width (m)", "Depth (m)", "Height (m)", "Floor Area (m²)",
	"Internal (°C)", "ΔT (K)", "Floor (W)", "Ceiling (W)", "Walls (W)", "Windows (W)",
	"Ventilation (W)", "Total (W)",
}

// WriteXLSX writes a three sheet workbook: a summary, the per-room heat
// loss and both system quotes.
func WriteXLSX(w io.Writer, res *assess.Result) error {
	f := excelize.NewFile()
	defer f.Close()

	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}

	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		return err
	}
	if err := writeSummary(f, res, header); err != nil {
		return err
	}
	if _, err := f.NewSheet(RoomsSheet); err != nil {
		return err
	}
	if err := writeRooms(f, res.Building, header); err != nil {
		return err
	}
	if _, err := f.NewSheet(CostsSheet); err != nil {
		return err
	}
	if err := writeCosts(f, res, header); err != nil {
		return err
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func writeSummary(f *excelize.File, res *assess.Result, header int) error {
	b := res.Building
	rows := [][]any{
		{"Property", b.PropertyName},
		{"Era", b.Era},
		{"Postcode", res.Climate.Postcode},
		{"Region", res.Climate.Name},
		{"External design temperature (°C)", res.Conditions.ExternalDesignTemp},
		{"Internal design temperature (°C)", res.Conditions.InternalDesignTemp},
		{"Floor area (m²)", round(b.TotalFloorArea(), 2)},
		{"Heat loss (kW)", round(b.TotalHeatLoss, 2)},
		{"Heat loss per m² (W/m²)", round(res.HeatLossPerArea, 1)},
	}
	if b.Breakdown != nil {
		t := b.Breakdown.Totals
		rows = append(rows,
			[]any{"Fabric loss (W)", round(t.FabricLoss, 0)},
			[]any{"Ventilation loss (W)", round(t.VentilationLoss, 0)},
			[]any{"Thermal bridging (W)", round(t.ThermalBridging, 0)},
			[]any{"Peak load (W)", round(b.Breakdown.PeakLoad, 0)},
		)
	}
	rows = append(rows,
		[]any{"Recommended heat pump (kW)", res.Sizes.HeatPump.RecommendedSize},
		[]any{"Recommended boiler/radiator system (kW)", res.Sizes.Radiator.RecommendedSize},
	)
	if res.Upgrade != nil {
		rows = append(rows,
			[]any{"Heat loss after upgrades (kW)", round(res.Upgrade.NewLoss, 2)},
			[]any{"Upgrade saving (%)", round(res.Upgrade.SavingsPercent, 1)},
		)
	}

	if err := setRow(f, SummarySheet, 1, []any{"Item", "Value"}); err != nil {
		return err
	}
	if err := f.SetCellStyle(SummarySheet, "A1", "B1", header); err != nil {
		return err
	}
	for i, r := range rows {
		if err := setRow(f, SummarySheet, i+2, r); err != nil {
			return err
		}
	}
	return f.SetColWidth(SummarySheet, "A", "A", 42)
}

func writeRooms(f *excelize.File, b *building.Building, header int) error {
	if err := setRow(f, RoomsSheet, 1, toAny(roomHeaders)); err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(roomHeaders), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(RoomsSheet, "A1", last, header); err != nil {
		return err
	}

	row := 2
	for _, fl := range b.Floors {
		for _, s := range fl.Spaces {
			l := s.HeatLoss
			err := setRow(f, RoomsSheet, row, []any{
				fl.Name, s.Name, s.Width, s.Depth, s.Height, round(s.FloorArea(), 2),
				l.InternalTemp, l.DeltaT, round(l.Floor, 1), round(l.Ceiling, 1),
				round(l.Walls.Sum(), 1), round(l.Windows, 1), round(l.Ventilation, 1),
				round(l.Total, 1),
			})
			if err != nil {
				return err
			}
			row++
		}
	}
	if err := f.SetColWidth(RoomsSheet, "A", "B", 16); err != nil {
		return err
	}
	return f.SetPanes(RoomsSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

func writeCosts(f *excelize.File, res *assess.Result, header int) error {
	if err := setRow(f, CostsSheet, 1, []any{"Item", "Heat Pump (£)", "Boiler (£)"}); err != nil {
		return err
	}
	if err := f.SetCellStyle(CostsSheet, "A1", "C1", header); err != nil {
		return err
	}

	hp, bo := res.HeatPump, res.Boiler
	rows := [][]any{
		{"Capacity (kW)", hp.Capacity, bo.Capacity},
		{"Unit", hp.Breakdown.Unit, bo.Breakdown.Unit},
		{"Installation", hp.Breakdown.Installation, bo.Breakdown.Installation},
		{"Radiators", radiatorTotal(hp), radiatorTotal(bo)},
		{"Pipework", hp.Breakdown.Pipework, bo.Breakdown.Pipework},
		{"Hot water cylinder", hp.Breakdown.HotWaterCylinder, bo.Breakdown.HotWaterCylinder},
		{"Buffer tank", hp.Breakdown.BufferTank, bo.Breakdown.BufferTank},
		{"Controls", hp.Breakdown.Controls, bo.Breakdown.Controls},
		{"Miscellaneous", hp.Breakdown.Misc, bo.Breakdown.Misc},
		{"Labour", hp.Breakdown.Labour, bo.Breakdown.Labour},
		{"Total", hp.TotalCost, bo.TotalCost},
		{"Grant", hp.GrantAmount, bo.GrantAmount},
		{"Final cost", hp.FinalCost, bo.FinalCost},
		{"Low estimate", res.Ranges.HeatPump.Low, res.Ranges.Boiler.Low},
		{"High estimate", res.Ranges.HeatPump.High, res.Ranges.Boiler.High},
		{"Annual running cost", res.Running.HeatPump.AnnualCost, res.Running.Boiler.AnnualCost},
		{"Monthly running cost", res.Running.HeatPump.MonthlyAverage, res.Running.Boiler.MonthlyAverage},
	}
	for i, r := range rows {
		if err := setRow(f, CostsSheet, i+2, r); err != nil {
			return err
		}
	}
	return f.SetColWidth(CostsSheet, "A", "A", 24)
}

func radiatorTotal(sc *cost.SystemCost) float64 {
	if sc.Quote != nil {
		return sc.Quote.Radiators
	}
	var total float64
	for _, r := range sc.Breakdown.Radiators {
		total += r.Cost
	}
	return total
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("%s row %d: %w", sheet, row, err)
	}
	return nil
}

func toAny(s []string) []any {
	out := make([]any, len(s))
	for i, v := range s {
		out[i] = v
	}
	return out
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
