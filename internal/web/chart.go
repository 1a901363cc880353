package web

import (
	"fmt"
	"html/template"
	"strings"

	"stock-spike-analyzer/internal/report"
	"stock-spike-analyzer/internal/types"
)

const (
	chartWidth  = 640
	chartHeight = 250
	chartMargin = 10
)

// Accent colours follow the sign of the move
const (
	AccentUp   = "#0f9d58"
	AccentDown = "#f44336"
)

// Accent picks the card colour for a move
func Accent(pct float64) string {
	if pct >= 0 {
		return AccentUp
	}
	return AccentDown
}

type gridLine struct {
	Y     float64
	Label string
}

// chartView is the price series projected into SVG coordinates
type chartView struct {
	Width, Height int
	Points        string
	Accent        string
	Grid          []gridLine
	First, Last   string
}

// priceChart projects closes onto the padded y range. Returns nil when
// there is nothing to draw.
func priceChart(series types.PriceSeries, bounds types.ChartBounds, changePct float64) *chartView {
	closes := series.Closes()
	if len(closes) == 0 || bounds.Max <= bounds.Min {
		return nil
	}

	plotW := float64(chartWidth - 2*chartMargin)
	plotH := float64(chartHeight - 2*chartMargin)
	span := bounds.Max - bounds.Min

	y := func(v float64) float64 {
		return chartMargin + plotH*(bounds.Max-v)/span
	}

	pts := make([]string, len(closes))
	for i, c := range closes {
		x := float64(chartMargin)
		if len(closes) > 1 {
			x += plotW * float64(i) / float64(len(closes)-1)
		}
		pts[i] = fmt.Sprintf("%.1f,%.1f", x, y(c))
	}

	grid := make([]gridLine, 0, 5)
	for i := 0; i <= 4; i++ {
		v := bounds.Min + span*float64(i)/4
		grid = append(grid, gridLine{Y: y(v), Label: fmt.Sprintf("%.2f", v)})
	}

	cv := &chartView{
		Width:  chartWidth,
		Height: chartHeight,
		Points: strings.Join(pts, " "),
		Accent: Accent(changePct),
		Grid:   grid,
	}
	cv.First = series.Candles[0].Date.Format("02 Jan")
	cv.Last = series.Candles[len(series.Candles)-1].Date.Format("02 Jan")
	return cv
}

var funcs = template.FuncMap{
	"markdown": markdown,
	"change": report.FormatChange,
	"emoji":  report.SentimentEmoji,
	"accent": Accent,
	"title": func(s string) string {
		if s == "" {
			return s
		}
		return strings.ToUpper(s[:1]) + s[1:]
	},
	"score": func(v float64) string { return fmt.Sprintf("%.2f", v) },
	"pct":   func(v float64) string { return fmt.Sprintf("%.2f%%", v) },
	"num": func(v *float64) string {
		if v == nil {
			return "n/a"
		}
		return fmt.Sprintf("%.2f", *v)
	},
}
