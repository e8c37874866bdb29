// Package charts builds the dashboard's interactive charts. It is the only
// package that knows the charting backend; everything it consumes is
// long-form rows or typed records from the pipeline.
package charts

import (
	"io"
	"sort"
	"time"

	echarts "github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"linklytics/internal/analytics"
	"linklytics/internal/models"
)

// trendPalette mirrors the classic 10-color categorical scheme.
var trendPalette = opts.Colors{
	"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd",
	"#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf",
}

const (
	boostedColor = "#ff6a00"
	organicColor = "#9ca3af"
)

// TrendLine charts the selected site metrics over time, one series per
// metric. Dates a series has no value for render as gaps.
func TrendLine(points []analytics.TrendPoint) *echarts.Line {
	line := echarts.NewLine()
	line.SetGlobalOptions(
		echarts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Site Engagement Trends",
			Width:     "1100px",
			Height:    "420px",
		}),
		echarts.WithTitleOpts(opts.Title{Title: "Site Engagement Trends (Multi-Metric)"}),
		echarts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		echarts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		echarts.WithColorsOpts(trendPalette),
	)

	labels, series := alignTrendSeries(points)
	line.SetXAxis(labels)
	for _, s := range series {
		line.AddSeries(s.name, s.data,
			echarts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(true)}))
	}
	return line
}

// PerformanceScatter plots impressions against engagement rate, boosted
// posts in orange, organic in gray. Rows missing either coordinate are
// skipped.
func PerformanceScatter(rows []models.Post, flags map[string]bool) *echarts.Scatter {
	scatter := echarts.NewScatter()
	scatter.SetGlobalOptions(
		echarts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Post Performance",
			Width:     "1100px",
			Height:    "380px",
		}),
		echarts.WithTitleOpts(opts.Title{Title: "Post Performance Scatter"}),
		echarts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		echarts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		echarts.WithXAxisOpts(opts.XAxis{Name: "Impressions", Type: "value"}),
		echarts.WithYAxisOpts(opts.YAxis{Name: "Engagement Rate", Type: "value"}),
	)

	var boosted, organic []opts.ScatterData
	for _, p := range rows {
		if p.Impressions == nil || p.EngagementRate == nil {
			continue
		}
		point := opts.ScatterData{
			Name:       p.Title,
			Value:      []interface{}{*p.Impressions, *p.EngagementRate},
			SymbolSize: 10,
		}
		if flags[p.Title] {
			boosted = append(boosted, point)
		} else {
			organic = append(organic, point)
		}
	}

	scatter.AddSeries("Boosted", boosted,
		echarts.WithItemStyleOpts(opts.ItemStyle{Color: boostedColor}))
	scatter.AddSeries("Organic", organic,
		echarts.WithItemStyleOpts(opts.ItemStyle{Color: organicColor}))
	return scatter
}

// WeekdayBar charts mean engagement rate per weekday, already sorted best
// first by the aggregator.
func WeekdayBar(stats []analytics.WeekdayStat) *echarts.Bar {
	bar := echarts.NewBar()
	bar.SetGlobalOptions(
		echarts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Engagement by Weekday",
			Width:     "1100px",
			Height:    "320px",
		}),
		echarts.WithTitleOpts(opts.Title{Title: "Engagement by Weekday"}),
		echarts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)

	days := make([]string, 0, len(stats))
	data := make([]opts.BarData, 0, len(stats))
	for _, s := range stats {
		days = append(days, s.Weekday)
		data = append(data, opts.BarData{Value: s.AvgEngagementRate})
	}
	bar.SetXAxis(days)
	bar.AddSeries("Engagement Rate", data)
	return bar
}

// RenderPage writes one or more charts as a standalone HTML page.
func RenderPage(w io.Writer, charters ...components.Charter) error {
	page := components.NewPage()
	page.SetLayout(components.PageFlexLayout)
	page.AddCharts(charters...)
	return page.Render(w)
}

type lineSeries struct {
	name string
	data []opts.LineData
}

// alignTrendSeries turns long-form points into a shared date axis plus one
// aligned value slice per metric, in first-appearance order.
func alignTrendSeries(points []analytics.TrendPoint) ([]string, []lineSeries) {
	seen := make(map[time.Time]bool)
	var dates []time.Time
	for _, p := range points {
		if !seen[p.Date] {
			seen[p.Date] = true
			dates = append(dates, p.Date)
		}
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	index := make(map[time.Time]int, len(dates))
	labels := make([]string, len(dates))
	for i, d := range dates {
		index[d] = i
		labels[i] = d.Format("2006-01-02")
	}

	order := make(map[string]int)
	var series []lineSeries
	for _, p := range points {
		i, ok := order[p.Metric]
		if !ok {
			i = len(series)
			order[p.Metric] = i
			series = append(series, lineSeries{name: p.Metric, data: make([]opts.LineData, len(dates))})
		}
		series[i].data[index[p.Date]] = opts.LineData{Value: p.Value}
	}
	return labels, series
}
