package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/yndnr/foldershare-go/internal/core/domain"
)

func sampleTree() []domain.Node {
	mod := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)
	return []domain.Node{
		domain.NewFolder("/srv/r",
			domain.NewFile("/srv/r/a.txt", &domain.Metadata{Size: 2, Modified: mod}),
			domain.NewFolder("/srv/r/sub",
				domain.NewFile("/srv/r/sub/b.txt", &domain.Metadata{Size: 2048, Modified: mod}),
			),
			domain.Node{Kind: domain.NodeFolder, Path: "/srv/r/locked", Error: "permission denied"},
		),
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatTree, false},
		{"tree", FormatTree, false},
		{"TABLE", FormatTable, false},
		{" json ", FormatJSON, false},
		{"yml", FormatYAML, false},
		{"yaml", FormatYAML, false},
		{"xml", "", true},
	}

	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFormat(%q) error = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNewFormatter(t *testing.T) {
	tests := []struct {
		format Format
		check  func(Formatter) bool
	}{
		{FormatJSON, func(f Formatter) bool { _, ok := f.(*JSONFormatter); return ok }},
		{FormatYAML, func(f Formatter) bool { _, ok := f.(*YAMLFormatter); return ok }},
		{FormatTable, func(f Formatter) bool { tf, ok := f.(*TableFormatter); return ok && tf.Wide }},
		{FormatTree, func(f Formatter) bool { tf, ok := f.(*TreeFormatter); return ok && tf.Wide }},
		{"unknown", func(f Formatter) bool { _, ok := f.(*TreeFormatter); return ok }},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			if f := NewFormatter(tt.format, true); !tt.check(f) {
				t.Errorf("NewFormatter(%q) = %T", tt.format, f)
			}
		})
	}
}

func TestJSONFormatter_NodesMatchWireShape(t *testing.T) {
	var buf bytes.Buffer
	if err := (&JSONFormatter{}).Format(&buf, sampleTree()); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	var got []domain.Node
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if len(got) != 1 || len(got[0].Entries) != 3 {
		t.Fatalf("decoded = %+v", got)
	}
	if !strings.Contains(buf.String(), "\n  ") {
		t.Error("JSON output should be indented")
	}
}

func TestYAMLFormatter(t *testing.T) {
	var buf bytes.Buffer
	if err := (&YAMLFormatter{}).Format(&buf, sampleTree()); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{"type: folder", "path: /srv/r/a.txt", "size: 2048", "error: permission denied"} {
		if !strings.Contains(out, want) {
			t.Errorf("YAML output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "accessed:") {
		t.Error("absent timestamps should be omitted")
	}

	var got []domain.Node
	if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not YAML: %v", err)
	}
	if got[0].Entries[1].Entries[0].Metadata.Size != 2048 {
		t.Errorf("decoded = %+v", got)
	}
}

func TestStructuredFormatters_EmptyNodeList(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{FormatJSON, "[]\n"},
		{FormatYAML, "[]\n"},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			var buf bytes.Buffer
			var nodes []domain.Node
			if err := NewFormatter(tt.format, false).Format(&buf, nodes); err != nil {
				t.Fatalf("Format: %v", err)
			}
			if buf.String() != tt.want {
				t.Errorf("output = %q, want %q", buf.String(), tt.want)
			}
		})
	}
}

func TestJSONFormatter_NoHTMLEscaping(t *testing.T) {
	var buf bytes.Buffer
	node := domain.NewFile("/srv/a&b <1>.txt", nil)
	if err := (&JSONFormatter{}).Format(&buf, node); err != nil {
		t.Fatalf("Format: %v", err)
	}
	if !strings.Contains(buf.String(), "/srv/a&b <1>.txt") {
		t.Errorf("path was escaped:\n%s", buf.String())
	}
}
