package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"declascan/constants"
	"declascan/internal/artifacts"
	"declascan/internal/common"
	"declascan/internal/extract"
	"declascan/internal/ledger"
	"declascan/internal/pipeline"
	"declascan/internal/schema"
	"declascan/internal/textsource"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	var (
		dir        = flag.String("dir", "", "directory of declaration documents to process (required)")
		schemaPath = flag.String("schema", "", "YAML rule schema (defaults to the builtin table)")
		vetOnly    = flag.Bool("vet", false, "print schema findings and exit without processing")
	)
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	var (
		compiled *schema.Compiled
		err      error
	)
	if *schemaPath != "" {
		compiled, err = schema.Load(*schemaPath)
		if err != nil {
			printError("Error: schema load failed: %v\n", err)
			os.Exit(1)
		}
	} else {
		compiled = schema.MustDefault()
	}

	if *vetOnly {
		findings := schema.Vet(compiled)
		for _, f := range findings {
			fmt.Println(f.String())
		}
		fmt.Printf("%d finding(s) across %d field(s)\n", len(findings), compiled.TotalFields())
		return
	}

	if *dir == "" {
		printError("Error: --dir is required\n")
		os.Exit(1)
	}

	cfg := common.LoadConfig()
	led, err := ledger.New(cfg.Storage.DataDir, logger)
	if err != nil {
		printError("Error: ledger init failed: %v\n", err)
		os.Exit(1)
	}
	art, err := artifacts.NewWriter(cfg.Storage.OutputDir, logger)
	if err != nil {
		printError("Error: artifact writer init failed: %v\n", err)
		os.Exit(1)
	}

	proc := pipeline.NewProcessor(
		logger,
		textsource.NewResolver(cfg.Extract.Pdftotext),
		compiled,
		extract.NewEngine(logger),
		art,
		led,
	)

	entries, err := os.ReadDir(*dir)
	if err != nil {
		printError("Error: read dir %s: %v\n", *dir, err)
		os.Exit(1)
	}

	ctx := context.Background()
	var processed, failed int
	for _, e := range entries {
		if e.IsDir() || !constants.ExtAllowed(filepath.Ext(e.Name())) {
			continue
		}
		out, err := proc.ProcessFile(ctx, filepath.Join(*dir, e.Name()), e.Name())
		if err != nil {
			printError("Error: history append failed for %s: %v\n", e.Name(), err)
			failed++
			continue
		}
		if out.Status == constants.StatusError {
			failed++
			fmt.Printf("%-40s error: %s\n", out.Filename, out.Error)
			continue
		}
		processed++
		fmt.Printf("%-40s %d/%d fields (%.2f%%)\n",
			out.Filename, out.Stats.ExtractedFields, out.Stats.TotalFields, out.Stats.ExtractionRate)
	}

	fmt.Printf("done: %d processed, %d failed, history at %s\n", processed, failed, led.StructuredPath())
	if failed > 0 {
		os.Exit(1)
	}
}
