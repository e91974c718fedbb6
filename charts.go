package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// ChartSegmentDistribution renders the customer-count pie across segments.
func ChartSegmentDistribution(summary []SegmentSummary, cfg Config) (string, error) {
	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Customer Distribution by Segment"}),
		charts.WithColorsOpts(segmentColorList(summary)),
	)

	items := make([]opts.PieData, 0, len(summary))
	for _, s := range summary {
		items = append(items, opts.PieData{Name: s.Segment, Value: s.CustomerCount})
	}
	pie.AddSeries("customers", items)

	return renderChart(pie, filepath.Join(cfg.OutputDir, "segment_distribution.html"))
}

// ChartRevenueBySegment renders revenue totals per segment.
func ChartRevenueBySegment(summary []SegmentSummary, cfg Config) (string, error) {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Revenue by Customer Segment"}),
		charts.WithColorsOpts(segmentColorList(summary)),
	)

	names := make([]string, 0, len(summary))
	values := make([]opts.BarData, 0, len(summary))
	for _, s := range summary {
		names = append(names, s.Segment)
		values = append(values, opts.BarData{Value: s.TotalRevenue})
	}
	bar.SetXAxis(names).AddSeries("revenue", values)

	return renderChart(bar, filepath.Join(cfg.OutputDir, "revenue_by_segment.html"))
}

// ChartRFMDistribution renders how many customers hold each R/F/M score.
func ChartRFMDistribution(customers []CustomerRFM, cfg Config) (string, error) {
	bins := cfg.ScoreBins
	if bins < 2 {
		bins = 5
	}
	rCounts := make([]int, bins)
	fCounts := make([]int, bins)
	mCounts := make([]int, bins)
	for _, c := range customers {
		if c.RScore >= 1 && c.RScore <= bins {
			rCounts[c.RScore-1]++
		}
		if c.FScore >= 1 && c.FScore <= bins {
			fCounts[c.FScore-1]++
		}
		if c.MScore >= 1 && c.MScore <= bins {
			mCounts[c.MScore-1]++
		}
	}

	labels := make([]string, bins)
	for i := range labels {
		labels[i] = fmt.Sprintf("%d", i+1)
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(charts.WithTitleOpts(opts.Title{Title: "RFM Score Distribution"}))
	bar.SetXAxis(labels).
		AddSeries("Recency", toBarData(rCounts)).
		AddSeries("Frequency", toBarData(fCounts)).
		AddSeries("Monetary", toBarData(mCounts))

	return renderChart(bar, filepath.Join(cfg.OutputDir, "rfm_distribution.html"))
}

// ChartTopCustomers renders the ten biggest spenders.
func ChartTopCustomers(customers []CustomerRFM, cfg Config) (string, error) {
	top := TopCustomers(customers, 10)

	names := make([]string, 0, len(top))
	values := make([]opts.BarData, 0, len(top))
	for _, c := range top {
		names = append(names, c.CustomerID)
		values = append(values, opts.BarData{Value: c.Monetary})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(charts.WithTitleOpts(opts.Title{Title: "Top 10 Customers by Revenue"}))
	bar.SetXAxis(names).AddSeries("revenue", values)

	return renderChart(bar, filepath.Join(cfg.OutputDir, "top_customers.html"))
}

func toBarData(counts []int) []opts.BarData {
	out := make([]opts.BarData, 0, len(counts))
	for _, n := range counts {
		out = append(out, opts.BarData{Value: n})
	}
	return out
}

type renderable interface {
	Render(w io.Writer) error
}

func renderChart(chart renderable, path string) (string, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", err
	}
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	if err := chart.Render(f); err != nil {
		return "", err
	}
	return path, nil
}

func segmentColorList(summary []SegmentSummary) opts.Colors {
	colors := make(opts.Colors, 0, len(summary))
	for _, s := range summary {
		if c, ok := SegmentColors[s.Segment]; ok {
			colors = append(colors, c)
		} else {
			colors = append(colors, SegmentColors[SegmentOthers])
		}
	}
	return colors
}
