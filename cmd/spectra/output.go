package main

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// writeOutput encodes value in the configured format; csvFn renders the
// csv form
func writeOutput(w io.Writer, format string, value any, csvFn func(io.Writer) error) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(value)

	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(value); err != nil {
			return err
		}
		return enc.Close()

	case "csv":
		if csvFn == nil {
			return fmt.Errorf("csv output is not supported for this command")
		}
		return csvFn(w)

	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
