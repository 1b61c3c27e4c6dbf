package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"zhlaw/internal/config"
	"zhlaw/internal/logger"
	"zhlaw/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	must(err)

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, JSON: cfg.LogJSON})
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	svc := pipeline.NewProcessingService(cfg, log)

	cmd := os.Args[1]
	switch cmd {
	case "extract":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		input := fs.String("input", cfg.InputPath, "register json file")
		urls := fs.String("url", strings.Join(cfg.InputURLs, ","), "comma separated register urls, used instead of --input")
		profile := fs.String("profile", string(cfg.OutputProfile), "file|web")
		jsonOut := fs.String("json", "", "output json path")
		xlsxOut := fs.String("xlsx", "", "output xlsx path")
		sqliteOut := fs.String("sqlite", "", "output sqlite lookup path")
		preview := fs.Int("preview", 5, "records to print")
		_ = fs.Parse(os.Args[2:])

		opts := cfg.OptionsFor(config.ParseProfile(*profile))

		res, err := svc.Run(ctx, pipeline.RunRequest{
			InputPath:  *input,
			URLs:       splitList(*urls),
			Options:    opts,
			JSONPath:   *jsonOut,
			XLSXPath:   *xlsxOut,
			SQLitePath: *sqliteOut,
		})
		must(err)
		printPreview(res.Records[:previewLen(*preview, len(res.Records))])
		fmt.Printf("extract done loaded=%d emitted=%d skipped=%d outputs=%s\n", res.Loaded, res.Emitted, res.Skipped, strings.Join(res.Written, ","))
	case "flat":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		input := fs.String("input", cfg.InputPath, "register json file")
		urls := fs.String("url", strings.Join(cfg.InputURLs, ","), "comma separated register urls, used instead of --input")
		csvOut := fs.String("csv", "", "output csv path")
		xlsxOut := fs.String("xlsx", "", "output xlsx path")
		preview := fs.Int("preview", 5, "rows to print")
		_ = fs.Parse(os.Args[2:])

		res, err := svc.RunFlat(ctx, pipeline.FlatRequest{
			InputPath: *input,
			URLs:      splitList(*urls),
			CSVPath:   *csvOut,
			XLSXPath:  *xlsxOut,
		})
		must(err)
		printPreview(res.Rows[:previewLen(*preview, len(res.Rows))])
		fmt.Printf("flat done rows=%d outputs=%s\n", len(res.Rows), strings.Join(res.Written, ","))
	default:
		usage()
		os.Exit(1)
	}
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// previewLen clamps the requested preview size to [0, total].
func previewLen(requested, total int) int {
	return max(0, min(requested, total))
}

func printPreview(v any) {
	_ = writePreview(os.Stdout, v)
}

// writePreview prints v as indented JSON with &, < and > kept literal.
func writePreview(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func usage() {
	fmt.Println("usage: zhlaw <command>")
	fmt.Println("commands:")
	fmt.Println("  extract [--input=laws.json | --url=https://...] [--profile=file|web] [--json=out.json] [--xlsx=out.xlsx] [--sqlite=out.db] [--preview=5]")
	fmt.Println("  flat [--input=laws.json | --url=https://...] [--csv=out.csv] [--xlsx=out.xlsx] [--preview=5]")
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
