// Package output serializes canonical tables as JSON, CSV or HTML.
package output

import (
	"encoding/csv"
	"fmt"
	"html"
	"io"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"github.com/ukaji3/bizplan-go/pkg/bizplan/models"
)

// Format is a table export format.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatHTML Format = "html"
)

// ParseFormat resolves a format name, case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatCSV, FormatHTML:
		return f, nil
	case "":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("unknown output format %q (expected json, csv or html)", s)
}

// Write serializes t in the given format. pretty only affects JSON.
func Write(w io.Writer, t *models.Table, format Format, pretty bool) error {
	switch format {
	case FormatCSV:
		return WriteCSV(w, t)
	case FormatHTML:
		return WriteHTML(w, t)
	default:
		return WriteJSON(w, t, pretty)
	}
}

// WriteJSON writes v as JSON followed by a newline.
func WriteJSON(w io.Writer, v any, pretty bool) error {
	json := jsoniter.ConfigCompatibleWithStandardLibrary

	var (
		data []byte
		err  error
	)
	if pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

// WriteCSV writes headers and data rows with every cell at its column, so
// addresses covered by a merge become empty fields.
func WriteCSV(w io.Writer, t *models.Table) error {
	cw := csv.NewWriter(w)
	for _, row := range t.AllRows() {
		if err := cw.Write(gridRecord(row, t.TotalCols)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func gridRecord(row models.Row, width int) []string {
	for _, c := range row.Cells {
		width = max(width, c.Col+1)
	}
	record := make([]string, width)
	for _, c := range row.Cells {
		record[c.Col] = c.DisplayValue
	}
	return record
}

// WriteHTML writes t as an HTML table, honoring colspan and rowspan.
func WriteHTML(w io.Writer, t *models.Table) error {
	var b strings.Builder

	b.WriteString("<table>\n")
	if len(t.Headers) > 0 {
		b.WriteString("  <thead>\n")
		writeHTMLRows(&b, t.Headers, "th")
		b.WriteString("  </thead>\n")
	}
	b.WriteString("  <tbody>\n")
	writeHTMLRows(&b, t.Rows, "td")
	b.WriteString("  </tbody>\n</table>\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func writeHTMLRows(b *strings.Builder, rows []models.Row, tag string) {
	for _, row := range rows {
		b.WriteString("    <tr>")
		for _, c := range row.Cells {
			b.WriteString("<" + tag)
			if cols, rows := c.Spans(); cols > 1 || rows > 1 {
				if cols > 1 {
					fmt.Fprintf(b, ` colspan="%d"`, cols)
				}
				if rows > 1 {
					fmt.Fprintf(b, ` rowspan="%d"`, rows)
				}
			}
			b.WriteString(">")
			b.WriteString(html.EscapeString(c.DisplayValue))
			b.WriteString("</" + tag + ">")
		}
		b.WriteString("</tr>\n")
	}
}
