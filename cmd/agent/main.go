// Command agent runs the document pipeline against a single local file
// and prints the result, without starting the HTTP server.
//
// Usage:
//
//	agent -op convert|classify|summarize|explain <file>
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/docuwise/legal-assistant/config"
	"github.com/docuwise/legal-assistant/internal/agent"
	"github.com/docuwise/legal-assistant/internal/analysis"
	"github.com/docuwise/legal-assistant/internal/extractor"
	"github.com/docuwise/legal-assistant/internal/llm"
	"github.com/docuwise/legal-assistant/pkg/logger"
)

func main() {
	op := flag.String("op", "explain", "operation: convert, classify, summarize or explain")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [-op convert|classify|summarize|explain] <file>\n", os.Args[0])
		os.Exit(2)
	}
	path := flag.Arg(0)

	log, err := logger.NewLogger(
		logger.WithLevel("warn"),
		logger.WithEncoding("console"),
		logger.WithOutputPaths([]string{"stderr"}),
	)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	cfg, err := config.GetConfig()
	if err != nil {
		log.Fatal("Failed to load configuration:", logger.Error(err))
	}

	gemini := llm.NewGemini(cfg.GeminiAPIKey)
	groq := llm.NewGroq(cfg.GroqAPIKey)
	ag := agent.New(extractor.New(log), analysis.NewAnalyzer(gemini, groq, log))

	out, err := run(context.Background(), ag, *op, path)
	if out != "" {
		fmt.Println(out)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run converts the file to text and dispatches the requested operation.
// The classify, summarize and explain operations classify first so the
// prompted pipelines see the document type.
func run(ctx context.Context, ag *agent.Agent, op, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	text, err := ag.Run(ctx, agent.Request{Op: agent.OpConvertToText, Filename: path, Reader: f})
	if err != nil {
		return text, err
	}
	if op == "convert" {
		return text, nil
	}

	docType, err := ag.Run(ctx, agent.Request{Op: agent.OpClassifyDocument, Text: text})
	if op == "classify" {
		return docType, err
	}

	switch op {
	case "summarize":
		return ag.Run(ctx, agent.Request{Op: agent.OpSummarizeText, Text: text, DocType: docType})
	case "explain":
		return ag.Run(ctx, agent.Request{Op: agent.OpExplainDocument, Text: text, DocType: docType})
	default:
		return "", fmt.Errorf("unknown operation %q", op)
	}
}
