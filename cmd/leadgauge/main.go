// Command leadgauge researches and scores prospects from LinkedIn and the
// open web.
//
// Usage:
//
//	leadgauge https://linkedin.com/in/janedoe       # requires LINKEDIN_* env vars
//	leadgauge -variant enhanced janedoe
//	leadgauge -batch prospects.txt -concurrency 3
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/leadgauge/leadgauge/pkg/batch"
	"github.com/leadgauge/leadgauge/pkg/fusion"
	"github.com/leadgauge/leadgauge/pkg/httpcache"
	"github.com/leadgauge/leadgauge/pkg/icp"
	"github.com/leadgauge/leadgauge/pkg/linkedin"
	"github.com/leadgauge/leadgauge/pkg/webresearch"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug logging")
	noBrowser := flag.Bool("no-browser", false, "disable reading cookies from browser stores")
	noCache := flag.Bool("no-cache", false, "disable HTTP caching")
	cacheTTL := flag.Duration("cache-ttl", 7*24*time.Hour, "cache time-to-live")
	variantName := flag.String("variant", "standard", "scoring variant: standard or enhanced")
	batchFile := flag.String("batch", "", "file with one prospect URL or slug per line")
	concurrency := flag.Int("concurrency", 3, "max concurrent prospects in batch mode")
	flag.Parse()

	if *batchFile == "" && flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: leadgauge [options] <linkedin-url-or-slug>")
		fmt.Fprintln(os.Stderr, "       leadgauge [options] -batch <file>")
		fmt.Fprintln(os.Stderr, "\nOptions:")
		flag.PrintDefaults()
		os.Exit(1)
	}

	// Cookie env vars may live in a local .env file.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Warning: could not load .env: %v\n", err)
	}

	logLevel := slog.LevelInfo
	if *debug {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	variant, err := parseVariant(*variantName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var cache *httpcache.Cache
	if !*noCache {
		cache, err = httpcache.New(*cacheTTL)
		if err != nil {
			logger.Warn("failed to initialize cache, continuing without cache", "error", err)
		} else {
			defer func() {
				if err := cache.Close(); err != nil {
					logger.Warn("failed to close cache", "error", err)
				}
			}()
			logger.Debug("HTTP cache initialized", "ttl", cacheTTL.String())
		}
	}

	ctx := context.Background()

	var liOpts []linkedin.Option
	liOpts = append(liOpts, linkedin.WithLogger(logger))
	if !*noBrowser {
		liOpts = append(liOpts, linkedin.WithBrowserCookies())
	}
	if cache != nil {
		liOpts = append(liOpts, linkedin.WithCache(cache))
	}

	liClient, err := linkedin.New(ctx, liOpts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1) //nolint:gocritic // exitAfterDefer is acceptable in main
	}

	var webOpts []webresearch.Option
	webOpts = append(webOpts, webresearch.WithLogger(logger))
	if cache != nil {
		webOpts = append(webOpts, webresearch.WithCache(cache))
	}

	src := &prospectSource{
		linkedin: liClient,
		engine: fusion.New(
			webresearch.New(webOpts...),
			linkedin.NewAnalyzer(logger),
			fusion.WithLogger(logger),
		),
		variant: variant,
	}

	if *batchFile != "" {
		ids, err := readBatchFile(*batchFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		proc := batch.New(src, batch.WithLogger(logger))
		result := proc.Process(ctx, ids, *concurrency)
		if err := outputJSON(result); err != nil {
			fmt.Fprintf(os.Stderr, "Output error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	report, err := src.research(ctx, flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := outputJSON(report); err != nil {
		fmt.Fprintf(os.Stderr, "Output error: %v\n", err)
		os.Exit(1)
	}
}

// report is the single-prospect output: the fused intelligence plus the
// fit score for the requested variant.
type report struct {
	Intelligence *fusion.IntelligenceProfile `json:"intelligence"`
	FitScore     icp.Score                   `json:"fitScore"`
}

// prospectSource researches one prospect end to end. It satisfies
// batch.Source for batch mode.
type prospectSource struct {
	linkedin *linkedin.Client
	engine   *fusion.Engine
	variant  icp.Variant
}

func (s *prospectSource) research(ctx context.Context, id string) (*report, error) {
	p, err := s.linkedin.Fetch(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("fetch %q: %w", id, err)
	}

	intel, err := s.engine.Research(ctx, *p, nil)
	if err != nil {
		return nil, err
	}

	return &report{
		Intelligence: intel,
		FitScore:     icp.ScoreProfile(s.variant, *p, nil),
	}, nil
}

// Research implements batch.Source.
func (s *prospectSource) Research(ctx context.Context, id string) (*fusion.IntelligenceProfile, error) {
	r, err := s.research(ctx, id)
	if err != nil {
		return nil, err
	}
	return r.Intelligence, nil
}

func parseVariant(name string) (icp.Variant, error) {
	switch strings.ToLower(name) {
	case "standard":
		return icp.VariantStandard, nil
	case "enhanced":
		return icp.VariantEnhanced, nil
	default:
		return "", fmt.Errorf("unknown variant %q (want standard or enhanced)", name)
	}
}

func readBatchFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open batch file: %w", err)
	}
	defer f.Close() //nolint:errcheck // read-only file

	var ids []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		ids = append(ids, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read batch file: %w", err)
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("batch file %s has no prospect ids", path)
	}
	return ids, nil
}

func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
