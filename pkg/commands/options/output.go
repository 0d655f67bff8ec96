// Package options defines shared flag helpers for CLI commands.
package options

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// OutputOptions
type OutputOptions struct {
	JSON   bool
	Format string
	// Out defaults to color.Output.
	Out io.Writer
}

func AddOutputArg(cmd *cobra.Command, po *OutputOptions) {
	cmd.Flags().BoolVar(&po.JSON, "json", false,
		"Output as JSON.")
	cmd.Flags().StringVarP(&po.Format, "output", "o", FormatText,
		"Output format. One of 'text', 'json' or 'yaml'.")
}

func (o *OutputOptions) out() io.Writer {
	if o.Out != nil {
		return o.Out
	}
	return color.Output
}

// Mode resolves the selected format. --json wins over --output.
func (o *OutputOptions) Mode() (string, error) {
	if o.JSON {
		return FormatJSON, nil
	}
	switch f := strings.ToLower(strings.TrimSpace(o.Format)); f {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported output %q (expected text, json or yaml)", o.Format)
	}
}

// Structured reports whether v should be printed as data instead of text.
func (o *OutputOptions) Structured() bool {
	m, err := o.Mode()
	return err == nil && m != FormatText
}

// Print writes v as JSON or YAML.
func (o *OutputOptions) Print(v any) error {
	mode, err := o.Mode()
	if err != nil {
		return err
	}
	switch mode {
	case FormatYAML:
		doc, err := plain(v)
		if err != nil {
			return err
		}
		enc := yaml.NewEncoder(o.out())
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	default:
		b, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(o.out(), string(b))
		return err
	}
}

// plain reduces v to maps and slices through its JSON form so YAML keys match
// the JSON field names.
func plain(v any) (any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var out any
	if err := dec.Decode(&out); err != nil {
		return nil, err
	}
	return numbers(out), nil
}

// numbers replaces json.Number values so YAML writes them unquoted.
func numbers(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, e := range t {
			t[k] = numbers(e)
		}
	case []any:
		for i, e := range t {
			t[i] = numbers(e)
		}
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i
		}
		if f, err := t.Float64(); err == nil {
			return f
		}
		return t.String()
	}
	return v
}

func (o *OutputOptions) HandleError(err error) error {
	if err != nil && o.Structured() {
		out := map[string]string{
			"error": err.Error(),
		}
		if perr := o.Print(out); perr != nil {
			return perr
		}
		return nil
	}
	return err
}
