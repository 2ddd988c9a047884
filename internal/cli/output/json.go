package output

import (
	"encoding/json"
	"io"
)

// JSONFormatter writes data as indented JSON. Paths are written without
// HTML escaping and an empty node list is written as [].
type JSONFormatter struct{}

// Format implements Formatter.
func (f *JSONFormatter) Format(w io.Writer, data any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(normalize(data))
}
