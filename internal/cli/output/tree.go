package output

import (
	"fmt"
	"io"

	"github.com/yndnr/foldershare-go/internal/core/domain"
)

// TreeFormatter draws node lists as an indented tree. Top-level nodes show
// their full path, descendants their name. Other data falls back to the
// table formatter.
type TreeFormatter struct {
	// Wide appends the modification time to each file.
	Wide bool
}

// Format renders data as a tree.
func (f *TreeFormatter) Format(w io.Writer, data any) error {
	var nodes []domain.Node
	switch v := data.(type) {
	case []domain.Node:
		nodes = v
	case domain.Node:
		nodes = []domain.Node{v}
	default:
		return (&TableFormatter{Wide: f.Wide}).Format(w, data)
	}

	if len(nodes) == 0 {
		_, err := fmt.Fprintln(w, "(nothing shared)")
		return err
	}

	tw := &treeWriter{w: w, wide: f.Wide}
	for _, n := range nodes {
		tw.line("", n.Path, n)
		tw.children("", n.Entries)
	}
	return tw.err
}

type treeWriter struct {
	w    io.Writer
	wide bool
	err  error
}

func (t *treeWriter) children(prefix string, entries []domain.Node) {
	for i, n := range entries {
		branch, indent := "├── ", "│   "
		if i == len(entries)-1 {
			branch, indent = "└── ", "    "
		}
		t.line(prefix+branch, n.Name(), n)
		t.children(prefix+indent, n.Entries)
	}
}

func (t *treeWriter) line(prefix, label string, n domain.Node) {
	if t.err != nil {
		return
	}

	suffix := ""
	switch {
	case n.Error != "":
		suffix = fmt.Sprintf(" [error: %s]", n.Error)
	case n.IsFolder():
		suffix = "/"
	case n.Metadata != nil:
		suffix = fmt.Sprintf(" (%s", FormatSize(n.Metadata.Size))
		if t.wide {
			suffix += ", " + formatTime(&n.Metadata.Modified)
		}
		suffix += ")"
	}

	_, t.err = fmt.Fprintf(t.w, "%s%s%s\n", prefix, label, suffix)
}
