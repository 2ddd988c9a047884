package output

import (
	"io"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"

	"github.com/yndnr/foldershare-go/internal/core/domain"
)

// TableRenderer is implemented by values that render as a table.
type TableRenderer interface {
	Headers() []string
	Rows() [][]string
}

// TableFormatter renders tables. Node lists are flattened to one row per
// node; anything else that is not a TableRenderer falls back to JSON.
type TableFormatter struct {
	Wide      bool
	NoHeaders bool
}

// Format formats data as a table.
func (f *TableFormatter) Format(w io.Writer, data any) error {
	switch v := data.(type) {
	case nil:
		return nil
	case TableRenderer:
		return f.render(w, v)
	case []domain.Node:
		return f.render(w, NodeTable(v, f.Wide))
	case domain.Node:
		return f.render(w, NodeTable([]domain.Node{v}, f.Wide))
	default:
		return (&JSONFormatter{}).Format(w, data)
	}
}

func (f *TableFormatter) render(w io.Writer, data TableRenderer) error {
	table := tablewriter.NewWriter(w)
	if !f.NoHeaders {
		table.SetHeader(data.Headers())
	}

	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("  ")
	table.SetNoWhiteSpace(true)

	table.AppendBulk(data.Rows())
	table.Render()
	return nil
}

// Table is a plain TableRenderer.
type Table struct {
	headers []string
	rows    [][]string
}

// NewTable creates a table with the given headers.
func NewTable(headers ...string) *Table {
	return &Table{headers: headers}
}

// AddRow adds a row to the table.
func (t *Table) AddRow(cells ...string) {
	t.rows = append(t.rows, cells)
}

// Headers implements TableRenderer.
func (t *Table) Headers() []string { return t.headers }

// Rows implements TableRenderer.
func (t *Table) Rows() [][]string { return t.rows }

// NodeTable flattens nodes depth-first into TYPE, PATH, SIZE, MODIFIED and
// ERROR columns. Wide adds ACCESSED and CREATED.
func NodeTable(nodes []domain.Node, wide bool) *Table {
	headers := []string{"type", "path", "size", "modified"}
	if wide {
		headers = append(headers, "accessed", "created")
	}
	headers = append(headers, "error")

	t := NewTable(headers...)
	for _, root := range nodes {
		root.Walk(func(n domain.Node) bool {
			row := []string{string(n.Kind), n.Path, "-", "-"}
			if n.Metadata != nil {
				row[2] = strconv.FormatInt(n.Metadata.Size, 10)
				row[3] = formatTime(&n.Metadata.Modified)
			}
			if wide {
				accessed, created := "-", "-"
				if n.Metadata != nil {
					accessed = formatTime(n.Metadata.Accessed)
					created = formatTime(n.Metadata.Created)
				}
				row = append(row, accessed, created)
			}
			errText := n.Error
			if errText == "" {
				errText = "-"
			}
			t.AddRow(append(row, errText)...)
			return true
		})
	}
	return t
}

func formatTime(t *time.Time) string {
	if t == nil || t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04")
}

// FormatSize renders a byte count for humans, e.g. "1.5 KiB".
func FormatSize(n int64) string {
	if n < 0 {
		return "-"
	}
	return humanize.IBytes(uint64(n))
}
