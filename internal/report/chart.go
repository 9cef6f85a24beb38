package report

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/cyberust/DietSimulation/internal/model"
)

var (
	seriesColor = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	targetColor = color.RGBA{R: 214, G: 39, B: 40, A: 255}
)

// RenderChart draws three stacked time-series panels (weight, fat percentage,
// BMR) with target reference lines and writes them to a single PNG file.
func RenderChart(records []model.DailyRecord, targets model.Targets, path string) error {
	if len(records) == 0 {
		return fmt.Errorf("no records to plot")
	}

	weightPlot, err := timeSeriesPanel("Weight (kg)", records, func(r model.DailyRecord) float64 {
		return r.WeightKg
	})
	if err != nil {
		return err
	}
	if targets.WeightKg > 0 {
		if err := addTargetLine(weightPlot, records, targets.WeightKg); err != nil {
			return err
		}
	}

	fatPlot, err := timeSeriesPanel("Body fat (%)", records, func(r model.DailyRecord) float64 {
		return r.FatPercentage
	})
	if err != nil {
		return err
	}
	for _, bound := range []float64{targets.FatPctLow, targets.FatPctHigh} {
		if bound > 0 {
			if err := addTargetLine(fatPlot, records, bound); err != nil {
				return err
			}
		}
	}

	bmrPlot, err := timeSeriesPanel("BMR (kcal/day)", records, func(r model.DailyRecord) float64 {
		return r.BasalMetabolismKcal
	})
	if err != nil {
		return err
	}

	img := vgimg.New(vg.Points(640), vg.Points(720))
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows: 3, Cols: 1,
		PadX: vg.Points(8), PadY: vg.Points(8),
		PadTop: vg.Points(4), PadBottom: vg.Points(4),
		PadLeft: vg.Points(4), PadRight: vg.Points(4),
	}
	plots := [][]*plot.Plot{{weightPlot}, {fatPlot}, {bmrPlot}}
	canvases := plot.Align(plots, tiles, dc)
	for i := range plots {
		plots[i][0].Draw(canvases[i][0])
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create chart dir: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chart file: %w", err)
	}
	defer f.Close()

	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(f); err != nil {
		return fmt.Errorf("write chart: %w", err)
	}
	return nil
}

func timeSeriesPanel(title string, records []model.DailyRecord, value func(model.DailyRecord) float64) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Tick.Marker = plot.TimeTicks{Format: "01-02"}

	pts := make(plotter.XYs, len(records))
	for i, r := range records {
		pts[i].X = float64(r.Date.Unix())
		pts[i].Y = value(r)
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, fmt.Errorf("series %q: %w", title, err)
	}
	line.Color = seriesColor
	line.Width = vg.Points(1.5)
	p.Add(plotter.NewGrid(), line)
	return p, nil
}

func addTargetLine(p *plot.Plot, records []model.DailyRecord, y float64) error {
	pts := plotter.XYs{
		{X: float64(records[0].Date.Unix()), Y: y},
		{X: float64(records[len(records)-1].Date.Unix()), Y: y},
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("target line: %w", err)
	}
	line.Color = targetColor
	line.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}
	p.Add(line)
	return nil
}
