package frame

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
)

const nullText = "null"

// WriteTable renders c as a text table preceded by its shape.
func WriteTable(w io.Writer, c *Counts) error {
	if _, err := fmt.Fprintf(w, "shape: (%d, 2)\n", c.Len()); err != nil {
		return err
	}

	rows := make([][]string, 0, c.Len())
	for _, g := range c.Groups {
		key := g.Key
		if g.Null {
			key = nullText
		}
		rows = append(rows, []string{key, strconv.Itoa(g.Count)})
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{c.Column, c.Alias})
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.AppendBulk(rows)
	table.Render()
	return nil
}

// WriteCSV renders c as CSV with a header row. Null keys are empty fields.
func WriteCSV(w io.Writer, c *Counts) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{c.Column, c.Alias}); err != nil {
		return err
	}
	for _, g := range c.Groups {
		if err := cw.Write([]string{g.Key, strconv.Itoa(g.Count)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteJSON renders c as a JSON array of objects keyed by column name and
// alias. Null keys are JSON null.
func WriteJSON(w io.Writer, c *Counts) error {
	out := make([]map[string]any, 0, c.Len())
	for _, g := range c.Groups {
		var key any = g.Key
		if g.Null {
			key = nil
		}
		out = append(out, map[string]any{
			c.Column: key,
			c.Alias:  g.Count,
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
