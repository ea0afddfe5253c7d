package document

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/c360studio/reflinks/citation"
	"github.com/c360studio/reflinks/dedupe"
	"github.com/c360studio/reflinks/metrics"
)

// Result is the outcome of processing one file.
type Result struct {
	Path    string         `json:"path" yaml:"path"`
	Report  *dedupe.Report `json:"report,omitempty" yaml:"report,omitempty"`
	Changed bool           `json:"changed" yaml:"changed"`
	Written bool           `json:"written" yaml:"written"`
	// Hash is the content hash of the file after processing.
	Hash string `json:"hash" yaml:"hash"`
	Err  error  `json:"-" yaml:"-"`
}

// ProcessorConfig configures a Processor.
type ProcessorConfig struct {
	NamePrefix string
	DryRun     bool
}

// Processor merges duplicate citations in wikitext files. It is safe for
// concurrent use on different files.
type Processor struct {
	config  ProcessorConfig
	merger  *dedupe.Merger
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// NewProcessor creates a processor. m may be nil to disable metrics.
func NewProcessor(config ProcessorConfig, m *metrics.Metrics, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{
		config:  config,
		merger:  dedupe.NewMerger(dedupe.Options{NamePrefix: config.NamePrefix}, logger),
		metrics: m,
		logger:  logger,
	}
}

// ProcessText merges duplicate citations in text and returns the result.
func (p *Processor) ProcessText(text string) (string, *dedupe.Report, error) {
	engine := citation.New(text)
	report, err := p.merger.Merge(engine)
	if err != nil {
		return "", nil, fmt.Errorf("merge citations: %w", err)
	}
	return engine.Export(), report, nil
}

// ProcessFile merges duplicate citations in the file at path and writes the
// file back when it changed, unless running dry.
func (p *Processor) ProcessFile(ctx context.Context, path string) (*Result, error) {
	start := time.Now()
	result := &Result{Path: path}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc, err := Load(path)
	if err != nil {
		p.metrics.ObserveDocument(metrics.OutcomeError, 0, 0, 0, time.Since(start))
		return nil, err
	}
	result.Hash = doc.Hash

	out, report, err := p.ProcessText(doc.Content)
	if err != nil {
		p.metrics.ObserveDocument(metrics.OutcomeError, 0, 0, 0, time.Since(start))
		return nil, fmt.Errorf("process %s: %w", path, err)
	}
	result.Report = report
	result.Changed = out != doc.Content

	outcome := metrics.OutcomeUnchanged
	switch {
	case !result.Changed:
	case p.config.DryRun:
		outcome = metrics.OutcomeDryRun
	default:
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := writeFile(path, out, doc.Mode); err != nil {
			p.metrics.ObserveDocument(metrics.OutcomeError, report.Citations, 0, len(report.Skipped), time.Since(start))
			return nil, err
		}
		result.Written = true
		result.Hash = ContentHash([]byte(out))
		outcome = metrics.OutcomeRewritten
	}

	p.metrics.ObserveDocument(outcome, report.Citations, report.Replaced(), len(report.Skipped), time.Since(start))
	p.logger.Debug("Processed document",
		"path", path,
		"outcome", outcome,
		"citations", report.Citations,
		"merged", len(report.Merged),
		"skipped", len(report.Skipped))

	return result, nil
}

// ProcessFiles processes each path in turn. A failing file is recorded in its
// Result and does not stop the run; only context cancellation does.
func (p *Processor) ProcessFiles(ctx context.Context, paths []string) ([]*Result, error) {
	results := make([]*Result, 0, len(paths))
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		result, err := p.ProcessFile(ctx, path)
		if err != nil {
			p.logger.Warn("Failed to process document", "path", path, "error", err)
			result = &Result{Path: path, Err: err}
		}
		results = append(results, result)
	}
	return results, nil
}
