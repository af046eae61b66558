package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/goliatone/go-firform/pkg/fir"
	"github.com/goliatone/go-firform/pkg/theme"
)

// TableColumns are the report listing columns, in order.
var TableColumns = []fir.Column{
	{Key: "id", Header: "ID"},
	{Key: "firNumber", Header: "FIR No"},
	{Key: "district", Header: "District"},
	{Key: "policeStation", Header: "Police Station"},
	{Key: "complainantName", Header: "Complainant"},
	{Key: "dateTime", Header: "Date"},
}

// IsTableColumn reports whether key can be sorted on from the listing.
func IsTableColumn(key string) bool {
	for _, col := range TableColumns {
		if col.Key == key {
			return true
		}
	}
	return false
}

// RenderTable draws the view's current page with styles, followed by a page
// footer. The active sort column is marked with an arrow.
func RenderTable(v *View, styles theme.Styles) string {
	sortKey, dir := v.SortState()

	headers := make([]string, len(TableColumns))
	for i, col := range TableColumns {
		headers[i] = col.Header
		if col.Key == sortKey {
			headers[i] += sortArrow(dir)
		}
	}

	visible := v.Visible()
	rows := make([][]string, 0, len(visible))
	for _, record := range visible {
		row := make([]string, len(TableColumns))
		for i, col := range TableColumns {
			if col.Key == "dateTime" {
				row[i] = record.FiledLocal(v.opts.Location)
				continue
			}
			row[i] = record.Get(col.Key)
		}
		rows = append(rows, row)
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(styles.TableBorder).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return styles.TableHeader
			case row%2 == 1:
				return styles.TableAlt
			default:
				return styles.TableCell
			}
		})

	var b strings.Builder
	b.WriteString(t.String())
	b.WriteString("\n")
	if len(rows) == 0 {
		b.WriteString(styles.Muted.Render("No FIRs found"))
		b.WriteString("\n")
	}
	b.WriteString(styles.Muted.Render(fmt.Sprintf("Page %d of %d (%d records)", v.Page(), v.TotalPages(), len(v.filtered))))
	return b.String()
}

func sortArrow(dir Direction) string {
	if dir == Descending {
		return " ▼"
	}
	return " ▲"
}
