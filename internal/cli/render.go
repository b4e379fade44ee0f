// Folio - Book Recommendation Lookup Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/goccy/go-json"

	"github.com/tomtom215/folio/internal/recommend"
	"github.com/tomtom215/folio/internal/recommend/storage"
)

// Theme holds the color scheme for terminal output.
type Theme struct {
	Title  lipgloss.Color
	Rating lipgloss.Color
	Author lipgloss.Color
	Hint   lipgloss.Color
	Border lipgloss.Color
}

var defaultTheme = Theme{
	Title:  lipgloss.Color("#5FAFD7"), // light blue
	Rating: lipgloss.Color("#FFAF00"), // amber
	Author: lipgloss.Color("#00D787"), // green
	Hint:   lipgloss.Color("#6C6C6C"), // dim gray
	Border: lipgloss.Color("#3A3A3A"), // dark gray
}

func (t Theme) titleStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Title).Bold(true)
}

func (t Theme) ratingStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Rating)
}

func (t Theme) authorStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Author)
}

func (t Theme) hintStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Hint).Italic(true)
}

func (t Theme) cardStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Padding(0, 1)
}

// renderResult writes a lookup result as a card.
func renderResult(w io.Writer, res *recommend.Result, minRating float64) error {
	t := defaultTheme

	switch res.Outcome {
	case recommend.OutcomeEmptyInput:
		_, err := fmt.Fprintln(w, t.hintStyle().Render("Enter a book title."))
		return err
	case recommend.OutcomeNoResults:
		_, err := fmt.Fprintln(w, t.hintStyle().Render(fmt.Sprintf("No results found for %q.", res.Query)))
		return err
	}

	var b strings.Builder
	header := fmt.Sprintf("Books similar to %q", res.Query)
	if res.Outcome == recommend.OutcomeRemote {
		header = fmt.Sprintf("Catalog matches for %q", res.Query)
	}
	b.WriteString(t.titleStyle().Render(header))
	b.WriteString("\n")
	if res.Outcome == recommend.OutcomeLocal {
		b.WriteString(t.hintStyle().Render("minimum average rating " + formatRating(minRating)))
		b.WriteString("\n")
	}

	if len(res.Items) == 0 {
		b.WriteString("\n")
		b.WriteString(t.hintStyle().Render("No similar titles meet the minimum rating."))
	}
	for i, item := range res.Items {
		b.WriteString("\n")
		fmt.Fprintf(&b, "%d. %s", i+1, item.Title)
		if item.AverageRating != nil {
			b.WriteString("  ")
			b.WriteString(t.ratingStyle().Render("★ " + formatRating(*item.AverageRating)))
		}
		if item.Author != "" {
			b.WriteString("\n   ")
			b.WriteString(t.authorStyle().Render(item.Author))
		}
		if item.Link != "" {
			b.WriteString("\n   ")
			b.WriteString(t.hintStyle().Render(item.Link))
		}
	}

	if res.Degraded {
		b.WriteString("\n\n")
		b.WriteString(t.hintStyle().Render("catalog unavailable, some links may be missing"))
	}

	_, err := fmt.Fprintln(w, t.cardStyle().Render(b.String()))
	return err
}

// renderTitles writes one title per line followed by a count.
func renderTitles(w io.Writer, titles []string, total int) error {
	t := defaultTheme
	for _, title := range titles {
		if _, err := fmt.Fprintln(w, title); err != nil {
			return err
		}
	}
	summary := fmt.Sprintf("%d of %d titles", len(titles), total)
	_, err := fmt.Fprintln(w, t.hintStyle().Render(summary))
	return err
}

// renderModels writes stored artifacts as a table.
func renderModels(w io.Writer, models []storage.ModelMetadata) error {
	t := defaultTheme
	if len(models) == 0 {
		_, err := fmt.Fprintln(w, t.hintStyle().Render("No similarity artifacts stored."))
		return err
	}

	rows := make([][]string, 0, len(models))
	for _, m := range models {
		rows = append(rows, []string{
			m.Name,
			strconv.Itoa(m.Version),
			m.Metric,
			strconv.Itoa(m.ItemCount),
			strconv.Itoa(m.UserCount),
			m.TrainedAt.Format("2006-01-02 15:04:05"),
			m.Checksum[:min(12, len(m.Checksum))],
		})
	}

	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(t.Border)).
		Headers("NAME", "VERSION", "METRIC", "TITLES", "USERS", "TRAINED", "CHECKSUM").
		Rows(rows...)

	_, err := fmt.Fprintln(w, tbl.Render())
	return err
}

// writeJSON writes v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func formatRating(r float64) string {
	return strconv.FormatFloat(r, 'f', 2, 64)
}
