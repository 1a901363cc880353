package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"stock-spike-analyzer/internal/types"
)

// Table renders rows as fixed-width columns aligned by display width.
// Columns listed in rightAlign are padded on the left.
func Table(headers []string, rows [][]string, rightAlign ...int) string {
	right := make(map[int]bool, len(rightAlign))
	for _, i := range rightAlign {
		right[i] = true
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i := 0; i < len(row) && i < len(widths); i++ {
			if w := runewidth.StringWidth(row[i]); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var sb strings.Builder
	writeRow := func(cells []string) {
		parts := make([]string, len(widths))
		for i := range widths {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			if right[i] {
				parts[i] = runewidth.FillLeft(cell, widths[i])
			} else {
				parts[i] = runewidth.FillRight(cell, widths[i])
			}
		}
		sb.WriteString(strings.TrimRight(strings.Join(parts, "  "), " "))
		sb.WriteString("\n")
	}

	writeRow(headers)
	sep := make([]string, len(widths))
	for i, w := range widths {
		sep[i] = strings.Repeat("-", w)
	}
	writeRow(sep)
	for _, row := range rows {
		writeRow(row)
	}
	return sb.String()
}

// FormatChange renders a move with an explicit sign
func FormatChange(pct float64) string {
	return fmt.Sprintf("%+.2f%%", pct)
}

func moversRows(ms []types.Movement) [][]string {
	rows := make([][]string, len(ms))
	for i, m := range ms {
		rows[i] = []string{fmt.Sprint(i + 1), m.Symbol, m.Company, FormatChange(m.ChangePct)}
	}
	return rows
}

// WriteMovers prints the pulse and the gainer and loser tables
func WriteMovers(w io.Writer, r *types.MoversReport) error {
	headers := []string{"#", "Ticker", "Company", "Change"}
	p := r.Pulse

	_, err := fmt.Fprintf(w,
		"Window analyzed: last %d day(s) • Updated at %s\n\n"+
			"Top gainer: %s %s   Top loser: %s %s\n"+
			"Average move: %s   Volatility: %.2f%%\n\n"+
			"Top gainers\n%s\nTop losers\n%s",
		r.Days, r.GeneratedAt.Format("03:04 PM"),
		p.TopGainer.Symbol, FormatChange(p.TopGainer.ChangePct),
		p.TopLoser.Symbol, FormatChange(p.TopLoser.ChangePct),
		FormatChange(p.AverageMove), p.Volatility,
		Table(headers, moversRows(r.Gainers), 0, 3),
		Table(headers, moversRows(r.Losers), 0, 3),
	)
	if err != nil {
		return err
	}
	if len(r.Failed) > 0 {
		_, err = fmt.Fprintf(w, "\nSkipped %d ticker(s): %s\n", len(r.Failed), strings.Join(r.Failed, ", "))
	}
	return err
}

// SentimentEmoji marks a headline label
func SentimentEmoji(label string) string {
	switch label {
	case types.SentimentPositive:
		return "🟢"
	case types.SentimentNegative:
		return "🔴"
	default:
		return "🟡"
	}
}

// WriteDetail prints a mover's headlines and explanation
func WriteDetail(w io.Writer, d *types.StockDetail) error {
	m := d.Movement
	if _, err := fmt.Fprintf(w, "%s (%s) %s over %d day(s)\n\n", m.Company, m.Ticker, FormatChange(m.ChangePct), d.Series.Days); err != nil {
		return err
	}

	if len(d.Headlines) > 0 {
		rows := make([][]string, len(d.Headlines))
		for i, h := range d.Headlines {
			rows[i] = []string{SentimentEmoji(h.Sentiment), fmt.Sprintf("%.2f", h.Score), h.Source, h.Title}
		}
		if _, err := fmt.Fprintf(w, "Top headlines\n%s\n", Table([]string{"", "Score", "Source", "Headline"}, rows, 1)); err != nil {
			return err
		}
	} else {
		if _, err := fmt.Fprintln(w, "No recent news found for this stock."); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(w, "\n%s\n", d.Explanation.Text)
	return err
}
