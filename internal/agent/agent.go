// Package agent dispatches over the assistant's four document operations.
// The tool set is static and known at build time, so this is a plain
// tagged-union dispatch rather than a generic tool-calling framework.
package agent

import (
	"context"
	"fmt"
	"io"

	"github.com/docuwise/legal-assistant/internal/analysis"
	"github.com/docuwise/legal-assistant/internal/extractor"
)

// Op identifies one of the four fixed operations.
type Op int

const (
	OpConvertToText Op = iota
	OpClassifyDocument
	OpSummarizeText
	OpExplainDocument
)

func (op Op) String() string {
	switch op {
	case OpConvertToText:
		return "ConvertToText"
	case OpClassifyDocument:
		return "ClassifyDocument"
	case OpSummarizeText:
		return "SummarizeText"
	case OpExplainDocument:
		return "ExplainDocument"
	default:
		return fmt.Sprintf("Op(%d)", int(op))
	}
}

// Request selects an operation and carries its input. ConvertToText uses
// Filename and Reader; the text operations use Text and optionally DocType.
type Request struct {
	Op       Op
	Filename string
	Reader   io.Reader
	Text     string
	DocType  string
}

// Agent wires the extractor and the prompted pipelines behind the fixed
// operation set.
type Agent struct {
	extractor *extractor.Extractor
	analyzer  *analysis.Analyzer
}

func New(ext *extractor.Extractor, an *analysis.Analyzer) *Agent {
	return &Agent{extractor: ext, analyzer: an}
}

// Run executes one operation. The returned string is always usable output;
// the error is the typed degradation signal of the underlying pipeline.
func (a *Agent) Run(ctx context.Context, req Request) (string, error) {
	switch req.Op {
	case OpConvertToText:
		res, err := a.extractor.Extract(req.Filename, req.Reader)
		if err != nil {
			return "", err
		}
		return res.Text, res.Err
	case OpClassifyDocument:
		return a.analyzer.Classify(ctx, req.Text)
	case OpSummarizeText:
		return a.analyzer.Summarize(ctx, req.Text, req.DocType)
	case OpExplainDocument:
		return a.analyzer.Explain(ctx, req.Text, req.DocType)
	default:
		return "", fmt.Errorf("unknown operation: %s", req.Op)
	}
}
