// Package table renders rows as a formatted table on an output stream.
package table

import (
	"io"

	"github.com/olekukonko/tablewriter"
)

// Renderer writes formatted tables to an output stream.
type Renderer struct {
	out io.Writer
}

// NewRenderer creates a renderer writing to out.
func NewRenderer(out io.Writer) *Renderer {
	return &Renderer{out: out}
}

// Render writes headers and rows as a table. A non-empty footer is printed
// as a caption below the table.
func (r *Renderer) Render(headers []string, rows [][]string, footer string) {
	t := tablewriter.NewWriter(r.out)
	t.SetHeader(headers)
	t.SetAutoFormatHeaders(false)
	t.SetAutoWrapText(false)
	if footer != "" {
		t.SetCaption(true, footer)
	}
	t.AppendBulk(rows)
	t.Render()
}
