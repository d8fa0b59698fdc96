// Package cli provides shared formatting helpers for the fabricgen CLI.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

// Output formats accepted by Encode.
const (
	FormatTable = "table"
	FormatYAML  = "yaml"
	FormatJSON  = "json"
)

// colorEnabled is set when stdout is a terminal and NO_COLOR is unset
// (no-color.org).
var colorEnabled = os.Getenv("NO_COLOR") == "" && term.IsTerminal(int(os.Stdout.Fd()))

func paint(code, s string) string {
	if !colorEnabled {
		return s
	}
	return "\033[" + code + "m" + s + "\033[0m"
}

func Green(s string) string { return paint("32", s) }
func Red(s string) string   { return paint("31", s) }
func Bold(s string) string  { return paint("1", s) }

// Status renders a pass/fail word in color.
func Status(ok bool) string {
	if ok {
		return Green("PASS")
	}
	return Red("FAIL")
}

// Encode writes v to w as YAML or JSON.
func Encode(w io.Writer, format string, v any) error {
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case FormatJSON:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	}
	return fmt.Errorf("unsupported format %q (valid: %s, %s)", format, FormatYAML, FormatJSON)
}
