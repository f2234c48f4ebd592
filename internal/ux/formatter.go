// Package ux renders command output: structured formats for scripts and
// styled text for humans.
package ux

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Formatter writes command results in one output format.
type Formatter interface {
	Format(data any) error
}

// Options configures a formatter.
type Options struct {
	// Writer is where output goes (defaults to os.Stdout)
	Writer io.Writer
	// NoColor disables styling in text output
	NoColor bool
}

// NewFormatter selects a formatter by name: "json", "yaml", or "text".
func NewFormatter(format string, opts *Options) (Formatter, error) {
	if opts == nil {
		opts = &Options{}
	}
	if opts.Writer == nil {
		opts.Writer = os.Stdout
	}

	switch format {
	case "json":
		return &jsonFormatter{w: opts.Writer}, nil
	case "yaml":
		return &yamlFormatter{w: opts.Writer}, nil
	case "text", "":
		return &textFormatter{w: opts.Writer, noColor: opts.NoColor}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q (supported: text, json, yaml)", format)
	}
}

type jsonFormatter struct {
	w io.Writer
}

func (f *jsonFormatter) Format(data any) error {
	encoder := json.NewEncoder(f.w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

type yamlFormatter struct {
	w io.Writer
}

func (f *yamlFormatter) Format(data any) error {
	encoder := yaml.NewEncoder(f.w)
	encoder.SetIndent(2)
	defer encoder.Close()
	return encoder.Encode(data)
}

// textFormatter renders strings and Stringers directly; anything else
// falls back to indented JSON so text mode never refuses output.
type textFormatter struct {
	w       io.Writer
	noColor bool
}

func (f *textFormatter) Format(data any) error {
	switch v := data.(type) {
	case string:
		_, err := fmt.Fprintln(f.w, v)
		return err
	case fmt.Stringer:
		_, err := fmt.Fprintln(f.w, v.String())
		return err
	default:
		encoder := json.NewEncoder(f.w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(data)
	}
}

var (
	_ Formatter = (*jsonFormatter)(nil)
	_ Formatter = (*yamlFormatter)(nil)
	_ Formatter = (*textFormatter)(nil)
)
