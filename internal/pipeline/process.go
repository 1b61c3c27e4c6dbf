package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	charmlog "github.com/charmbracelet/log"

	"zhlaw/internal"
	"zhlaw/internal/config"
	"zhlaw/internal/register"
	"zhlaw/internal/storage"
)

// Fetcher loads register entries from remote sources.
type Fetcher interface {
	FetchAll(ctx context.Context, urls []string) ([]internal.LawEntry, error)
}

type ProcessingService struct {
	cfg     config.Config
	fetcher Fetcher
	log     *charmlog.Logger
}

func NewProcessingService(cfg config.Config, log *charmlog.Logger) *ProcessingService {
	return &ProcessingService{cfg: cfg, fetcher: register.NewClient(cfg), log: log}
}

// WithFetcher swaps the remote source, mainly for tests.
func (s *ProcessingService) WithFetcher(f Fetcher) *ProcessingService {
	s.fetcher = f
	return s
}

type RunRequest struct {
	InputPath string
	URLs      []string
	Options   internal.OutputOptions

	JSONPath   string
	XLSXPath   string
	SQLitePath string
}

type FlatRequest struct {
	InputPath string
	URLs      []string

	CSVPath  string
	XLSXPath string
}

type RunResult struct {
	Loaded  int
	Emitted int
	Skipped int
	Written []string
	Records []internal.OutputRecord
}

type FlatResult struct {
	Loaded  int
	Written []string
	Rows    []internal.FlatRecord
}

// Run loads the register and writes the deduplicated lookup records to every
// requested output. A load failure stops the run before any record is built.
func (s *ProcessingService) Run(ctx context.Context, req RunRequest) (RunResult, error) {
	start := time.Now()
	entries, source, err := s.load(ctx, req.InputPath, req.URLs)
	if err != nil {
		return RunResult{}, err
	}

	records := BuildOutput(entries, req.Options)
	result := RunResult{
		Loaded:  len(entries),
		Emitted: len(records),
		Skipped: len(entries) - len(records),
		Records: records,
	}

	if req.JSONPath != "" {
		if err := ExportJSON(records, req.JSONPath); err != nil {
			return result, fmt.Errorf("export json: %w", err)
		}
		result.Written = append(result.Written, req.JSONPath)
	}
	if req.XLSXPath != "" {
		if err := ExportRecordsXLSX(records, req.XLSXPath); err != nil {
			return result, fmt.Errorf("export xlsx: %w", err)
		}
		result.Written = append(result.Written, req.XLSXPath)
	}
	if req.SQLitePath != "" {
		meta := map[string]string{
			"source":      source,
			"canton":      req.Options.Canton,
			"generatedAt": time.Now().UTC().Format(time.RFC3339),
		}
		if err := storage.WriteLookup(req.SQLitePath, records, meta); err != nil {
			return result, fmt.Errorf("export sqlite: %w", err)
		}
		result.Written = append(result.Written, req.SQLitePath)
	}

	s.log.Info("extract done", "source", source, "loaded", result.Loaded, "emitted", result.Emitted,
		"skipped", result.Skipped, "outputs", len(result.Written), "took", time.Since(start).Round(time.Millisecond))
	return result, nil
}

// RunFlat writes one row per register entry without version selection or dedup.
func (s *ProcessingService) RunFlat(ctx context.Context, req FlatRequest) (FlatResult, error) {
	entries, source, err := s.load(ctx, req.InputPath, req.URLs)
	if err != nil {
		return FlatResult{}, err
	}

	rows := ExtractFlatRecords(entries)
	result := FlatResult{Loaded: len(entries), Rows: rows}

	if req.CSVPath != "" {
		if err := ExportFlatCSV(rows, req.CSVPath); err != nil {
			return result, fmt.Errorf("export csv: %w", err)
		}
		result.Written = append(result.Written, req.CSVPath)
	}
	if req.XLSXPath != "" {
		if err := ExportFlatXLSX(rows, req.XLSXPath); err != nil {
			return result, fmt.Errorf("export xlsx: %w", err)
		}
		result.Written = append(result.Written, req.XLSXPath)
	}

	s.log.Info("flat export done", "source", source, "rows", len(rows), "outputs", len(result.Written))
	return result, nil
}

// load prefers remote sources when any are given.
func (s *ProcessingService) load(ctx context.Context, inputPath string, urls []string) ([]internal.LawEntry, string, error) {
	if len(urls) > 0 {
		s.log.Debug("fetching register", "sources", len(urls))
		entries, err := s.fetcher.FetchAll(ctx, urls)
		if err != nil {
			return nil, "", err
		}
		return entries, strings.Join(urls, ","), nil
	}

	if strings.TrimSpace(inputPath) == "" {
		return nil, "", errors.New("no input: set an input path or at least one url")
	}
	s.log.Debug("reading register", "path", inputPath)
	entries, err := register.LoadFile(inputPath)
	if err != nil {
		return nil, "", err
	}
	return entries, inputPath, nil
}
