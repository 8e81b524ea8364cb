package export

import (
	"fmt"
	"image/color"
	"io"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/tomaszchojnowski/heatcalc/pkg/building"
)

// ChartFormats are the image formats WriteChart accepts.
var ChartFormats = []string{"png", "svg"}

var (
	fabricColour      = color.RGBA{R: 100, G: 149, B: 237, A: 255}
	ventilationColour = color.RGBA{R: 255, G: 140, B: 0, A: 255}
)

// WriteChart draws a stacked bar chart of fabric and ventilation loss per
// room. The building must have been calculated.
func WriteChart(w io.Writer, b *building.Building, format string) error {
	format = strings.ToLower(format)
	if format != "png" && format != "svg" {
		return fmt.Errorf("unsupported chart format %q", format)
	}
	spaces := b.AllSpaces()
	if len(spaces) == 0 {
		return fmt.Errorf("building %s has no rooms", b.ID)
	}

	fabric := make(plotter.Values, len(spaces))
	vent := make(plotter.Values, len(spaces))
	names := make([]string, len(spaces))
	for i, s := range spaces {
		fabric[i] = s.HeatLoss.FabricLoss
		vent[i] = s.HeatLoss.VentilationLoss
		names[i] = s.Name
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s: heat loss by room", b.PropertyName)
	p.Y.Label.Text = "Heat loss (W)"

	width := vg.Points(18)
	fb, err := plotter.NewBarChart(fabric, width)
	if err != nil {
		return err
	}
	fb.Color = fabricColour
	fb.LineStyle.Width = vg.Length(0)

	vb, err := plotter.NewBarChart(vent, width)
	if err != nil {
		return err
	}
	vb.Color = ventilationColour
	vb.LineStyle.Width = vg.Length(0)
	vb.StackOn(fb)

	p.Add(fb, vb)
	p.Legend.Add("Fabric", fb)
	p.Legend.Add("Ventilation", vb)
	p.Legend.Top = true
	p.NominalX(names...)
	p.X.Tick.Label.Rotation = 0.6
	p.X.Tick.Label.XAlign = -1

	wt, err := p.WriterTo(10*vg.Inch, 6*vg.Inch, format)
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}
