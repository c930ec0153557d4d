package render

import (
	"context"
	"fmt"

	"fjacquet/budget-report/internal/logging"
)

// Artifact describes one rendered output. Path is empty for stream output.
type Artifact struct {
	Sink  string
	Chart string
	Path  string
}

// Sink consumes charts and produces artifacts.
type Sink interface {
	Name() string
	Render(ctx context.Context, charts Charts) ([]Artifact, error)
}

// MultiSink fans charts out to several sinks in order and stops at the first
// failure.
type MultiSink struct {
	sinks  []Sink
	logger logging.Logger
}

// NewMultiSink combines sinks.
func NewMultiSink(logger logging.Logger, sinks ...Sink) *MultiSink {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &MultiSink{sinks: sinks, logger: logger}
}

// Name implements Sink.
func (m *MultiSink) Name() string {
	return "multi"
}

// Len returns the number of wrapped sinks.
func (m *MultiSink) Len() int {
	return len(m.sinks)
}

// Render implements Sink.
func (m *MultiSink) Render(ctx context.Context, charts Charts) ([]Artifact, error) {
	var all []Artifact
	for _, s := range m.sinks {
		if err := ctx.Err(); err != nil {
			return all, err
		}
		artifacts, err := s.Render(ctx, charts)
		if err != nil {
			m.logger.WithError(err).Error("Chart rendering failed", logging.F(logging.FieldSink, s.Name()))
			return all, fmt.Errorf("%s sink: %w", s.Name(), err)
		}
		for _, a := range artifacts {
			m.logger.Debug("Rendered chart",
				logging.F(logging.FieldSink, a.Sink),
				logging.F(logging.FieldArtifact, a.Chart),
				logging.F(logging.FieldOutputFile, a.Path))
		}
		all = append(all, artifacts...)
	}
	return all, nil
}
