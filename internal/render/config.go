// Package render turns summaries into charts and hands them to output sinks.
package render

import (
	"errors"
	"fmt"
	"strings"
)

// Sink names accepted in Config.Sinks.
const (
	SinkTerminal = "terminal"
	SinkXLSX     = "xlsx"
	SinkPDF      = "pdf"
)

// ErrFontRequired is returned by the PDF sink when no TTF font is configured.
var ErrFontRequired = errors.New("pdf rendering requires a TTF font path")

// Config is the explicit rendering configuration handed to every sink.
type Config struct {
	OutputDir   string
	TitlePrefix string
	// Palette holds the low, mid and high colours of the heatmap scale; the
	// first entry also colours bars.
	Palette  []string
	BarWidth int
	FontPath string
	Sinks    []string
}

// DefaultPalette is a yellow-green-blue scale.
var DefaultPalette = []string{"#FFFFCC", "#41B6C4", "#253494"}

// DefaultConfig returns a terminal-only configuration.
func DefaultConfig() Config {
	return Config{
		OutputDir: "charts",
		Palette:   append([]string(nil), DefaultPalette...),
		BarWidth:  40,
		Sinks:     []string{SinkTerminal},
	}
}

// Validate checks sink names, palette entries and sizes.
func (c Config) Validate() error {
	if c.BarWidth <= 0 {
		return fmt.Errorf("bar width must be positive, got %d", c.BarWidth)
	}
	if len(c.Palette) != 0 && len(c.Palette) != 3 {
		return fmt.Errorf("palette needs exactly 3 colours, got %d", len(c.Palette))
	}
	for _, col := range c.Palette {
		if _, err := parseHex(col); err != nil {
			return err
		}
	}
	for _, s := range c.Sinks {
		switch strings.ToLower(s) {
		case SinkTerminal, SinkXLSX, SinkPDF:
		default:
			return fmt.Errorf("unknown render sink %q", s)
		}
	}
	return nil
}

// HasSink reports whether name is enabled.
func (c Config) HasSink(name string) bool {
	for _, s := range c.Sinks {
		if strings.EqualFold(s, name) {
			return true
		}
	}
	return false
}

func (c Config) palette() []string {
	if len(c.Palette) == 3 {
		return c.Palette
	}
	return DefaultPalette
}

func (c Config) title(base string) string {
	if c.TitlePrefix == "" {
		return base
	}
	return c.TitlePrefix + " " + base
}
