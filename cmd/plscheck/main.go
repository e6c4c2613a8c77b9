// Package main provides plscheck, a command line PLS conformity checker.
// It reads a text from a file or stdin, extracts features through the
// analyzer service and prints the evaluation report. With a glossary
// directory it also lists the medical terms found in the text.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/feliperussi/medwrite-server/internal/analyzer"
	"github.com/feliperussi/medwrite-server/internal/glossary"
	"github.com/feliperussi/medwrite-server/internal/logger"
	"github.com/feliperussi/medwrite-server/internal/rating"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "plscheck: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	analyzerURL := flag.String("analyzer-url", os.Getenv("ANALYZER_URL"), "Base URL of the linguistic analyzer service")
	thresholdsPath := flag.String("thresholds", os.Getenv("THRESHOLDS_PATH"), "Path to the PLS evaluation thresholds table")
	glossaryDir := flag.String("glossary-dir", os.Getenv("GLOSSARY_DIR"), "Directory of glossary JSON collections (optional)")
	wordLimit := flag.Int("word-limit", rating.DefaultWordCountLimit, "PLS word count limit")
	timeout := flag.Duration("timeout", 30*time.Second, "Analyzer request timeout")
	inputPath := flag.String("f", "", "Input file (default: stdin)")
	flag.Parse()

	if *analyzerURL == "" {
		return fmt.Errorf("an analyzer URL is required (-analyzer-url or ANALYZER_URL)")
	}
	if *thresholdsPath == "" {
		return fmt.Errorf("a thresholds table is required (-thresholds or THRESHOLDS_PATH)")
	}

	text, err := readInput(*inputPath)
	if err != nil {
		return err
	}
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("input text is empty")
	}

	log := logger.New(logger.Config{
		Writer:      os.Stderr,
		Environment: "cli",
		Level:       logger.ParseLevel(os.Getenv("LOG_LEVEL")),
	})

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	if *glossaryDir != "" {
		if err := printGlossaryMatches(ctx, *glossaryDir, text, log); err != nil {
			return err
		}
	}

	thresholds, err := rating.LoadThresholds(*thresholdsPath)
	if err != nil {
		return err
	}

	engine := rating.NewEngine(thresholds, *wordLimit)
	client := analyzer.NewClient(*analyzerURL, *timeout, log)

	features, err := client.Analyze(ctx, text)
	if err != nil {
		return err
	}

	evaluation := engine.Evaluate(features)
	fmt.Println(rating.FormatTextReport(evaluation))

	return nil
}

func printGlossaryMatches(ctx context.Context, dir, text string, log *logger.Logger) error {
	svc := glossary.NewService(dir, log)
	if err := svc.Rebuild(ctx); err != nil {
		return err
	}

	report, err := svc.FindMatches(text)
	if err != nil {
		return err
	}

	fmt.Printf("MEDICAL TERMS FOUND: %d\n", report.AnalysisSummary.TotalUniquePhrasesFound)
	for _, term := range report.FoundTerms {
		fmt.Printf("  %-40s %d occurrence(s)\n", term.MainTerm, len(term.MatchesInText))
		for _, def := range term.Definitions {
			fmt.Printf("    → %s [%s]\n", def.PlainAlternative, def.Source)
		}
	}
	fmt.Println()

	return nil
}

func readInput(path string) (string, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}
