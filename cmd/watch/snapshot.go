package watch

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/LegacyCodeHQ/deadfiles/cmd/scan/formatters"
	"github.com/LegacyCodeHQ/deadfiles/cmd/scan/formatters/dot"
	jsonformatter "github.com/LegacyCodeHQ/deadfiles/cmd/scan/formatters/json"
	"github.com/LegacyCodeHQ/deadfiles/depgraph"
	"github.com/charmbracelet/log"
)

// snapshot is the outcome of one analysis run as served to viewers. Err is set
// instead of DOT and Report when the run failed.
type snapshot struct {
	RunID  string
	DOT    string
	Report []byte
	Unused int
	Err    string
}

func buildSnapshot(opts depgraph.Options) (snapshot, error) {
	result, err := depgraph.Analyze(opts)
	if err != nil {
		return snapshot{}, err
	}

	view, err := formatters.NewGraphView(result)
	if err != nil {
		return snapshot{}, err
	}
	label := fmt.Sprintf("%d files • %d unused", len(result.All), len(result.Unused))

	report, err := jsonformatter.NewReport(result)
	if err != nil {
		return snapshot{}, err
	}
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return snapshot{}, fmt.Errorf("failed to encode report: %w", err)
	}

	return snapshot{
		RunID:  result.RunID,
		DOT:    dot.Render(view, formatters.RenderOptions{Label: label}),
		Report: data,
		Unused: len(result.Unused),
	}, nil
}

// rebuilder runs analyses one at a time and publishes each outcome.
type rebuilder struct {
	mu     sync.Mutex
	opts   depgraph.Options
	broker *broker
	logger *log.Logger
}

func newRebuilder(opts depgraph.Options, b *broker, logger *log.Logger) *rebuilder {
	return &rebuilder{opts: opts, broker: b, logger: logger}
}

func (r *rebuilder) rebuild() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, err := buildSnapshot(r.opts)
	if err != nil {
		r.logger.Error("analysis failed", "err", err)
		r.broker.publish(snapshot{Err: err.Error()})
		return err
	}

	r.logger.Info("analysis published", "run", s.RunID, "unused", s.Unused)
	r.broker.publish(s)
	return nil
}
