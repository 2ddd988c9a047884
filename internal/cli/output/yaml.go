package output

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/yndnr/foldershare-go/internal/core/domain"
)

// YAMLFormatter writes data as YAML with two-space indentation.
type YAMLFormatter struct{}

// Format implements Formatter.
func (f *YAMLFormatter) Format(w io.Writer, data any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(normalize(data)); err != nil {
		_ = enc.Close()
		return err
	}
	return enc.Close()
}

// normalize turns a nil node list into an empty one so structured output
// shows [] rather than null.
func normalize(data any) any {
	if nodes, ok := data.([]domain.Node); ok && nodes == nil {
		return []domain.Node{}
	}
	return data
}
