// Package export writes production plans in file formats meant for humans
// and spreadsheets.
package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/kilianp07/productionplan/core/model"
)

// WriteJSON writes the productions of alloc to w as an indented JSON array.
func WriteJSON(w io.Writer, alloc model.Allocation) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(alloc.Productions())
}

// WriteCSV writes one row per plant in merit order.
func WriteCSV(w io.Writer, alloc model.Allocation) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"name", "kind", "unit_cost", "effective_max", "p"}); err != nil {
		return err
	}
	for _, d := range alloc.Dispatches {
		rec := []string{
			d.Plant.Name(),
			d.Plant.Spec.Kind.String(),
			strconv.FormatFloat(d.Plant.UnitCost, 'f', -1, 64),
			strconv.FormatFloat(d.Plant.EffectiveMax, 'f', -1, 64),
			strconv.FormatFloat(d.Production, 'f', -1, 64),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteMeritOrderChart renders a stacked bar chart of the production and the
// unused headroom of each plant, in merit order, as a standalone HTML page.
func WriteMeritOrderChart(w io.Writer, alloc model.Allocation, load float64) error {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Merit order",
			Subtitle: "load " + strconv.FormatFloat(load, 'f', -1, 64) + " MW",
		}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Plant"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "MW"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)

	names := make([]string, len(alloc.Dispatches))
	produced := make([]opts.BarData, len(alloc.Dispatches))
	headroom := make([]opts.BarData, len(alloc.Dispatches))
	for i, d := range alloc.Dispatches {
		names[i] = d.Plant.Name()
		produced[i] = opts.BarData{Value: d.Production}
		headroom[i] = opts.BarData{Value: d.Plant.EffectiveMax - d.Production}
	}
	bar.SetXAxis(names).
		AddSeries("production", produced).
		AddSeries("headroom", headroom).
		SetSeriesOptions(charts.WithBarChartOpts(opts.BarChart{Stack: "plant"}))
	return bar.Render(w)
}
