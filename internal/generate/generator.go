package generate

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mattn/go-runewidth"
	"go.uber.org/zap"

	"github.com/anjirai/weekly-flyers/internal/config"
	"github.com/anjirai/weekly-flyers/internal/inject"
	"github.com/anjirai/weekly-flyers/internal/model"
	"github.com/anjirai/weekly-flyers/internal/scan"
)

// previewLines is how many generated lines are echoed at verbose level.
const previewLines = 10

// Summary is the outcome of a successful run.
type Summary struct {
	Catalog *model.Catalog
	Result  *inject.Result
}

// Generator scans the flyer folder and rewrites the page's data block.
type Generator struct {
	settings *config.Settings
	scanner  *scan.Scanner
	injector *inject.Injector

	logger     *zap.Logger
	onProgress model.ProgressFunc
}

// Option configures a Generator.
type Option func(*Generator)

// WithDryRun renders the block without writing the page.
func WithDryRun(dryRun bool) Option {
	return func(g *Generator) { g.injector.WithDryRun(dryRun) }
}

// WithScanOptions passes options to the underlying scanner.
func WithScanOptions(opts ...scan.Option) Option {
	return func(g *Generator) {
		g.scanner = scan.NewScanner(g.settings.ImageExtensions, g.settings.ToFlyerConfig(),
			append(g.scanOptions(), opts...)...)
	}
}

// NewGenerator creates a Generator for settings.
func NewGenerator(settings *config.Settings, logger *zap.Logger, onProgress func(model.ProgressEvent), opts ...Option) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}

	g := &Generator{
		settings:   settings,
		logger:     logger,
		onProgress: onProgress,
		injector:   inject.NewInjector(settings.Identifier).WithLogger(logger),
	}
	g.scanner = scan.NewScanner(settings.ImageExtensions, settings.ToFlyerConfig(), g.scanOptions()...)

	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *Generator) scanOptions() []scan.Option {
	return []scan.Option{
		scan.WithLogger(g.logger),
		scan.WithProgress(g.onProgress),
	}
}

// Scan builds the catalog without touching the page.
func (g *Generator) Scan(ctx context.Context) (*model.Catalog, error) {
	g.onProgress.Emit(model.LevelInfo, "Scanning for flyers...")

	catalog, err := g.scanner.Scan(ctx, g.settings.RootPath)
	if err != nil {
		if errors.Is(err, scan.ErrNoFlyers) {
			g.onProgress.Emit(model.LevelInfo, "Organize your flyers in year folders:")
			g.onProgress.Emit(model.LevelInfo, "   "+filepath.Join(g.settings.RootPath, "2024")+string(filepath.Separator))
			g.onProgress.Emit(model.LevelInfo, "   "+filepath.Join(g.settings.RootPath, "2025")+string(filepath.Separator))
		}
		return nil, err
	}
	return catalog, nil
}

// Inject writes catalog into the page.
func (g *Generator) Inject(ctx context.Context, catalog *model.Catalog) (*inject.Result, error) {
	res, err := g.injector.Inject(ctx, g.settings.HTMLPath, catalog)
	if err != nil {
		return nil, err
	}

	lines := res.Lines()
	g.onProgress.Emit(model.LevelVerbose, fmt.Sprintf("Generated JavaScript code (%d lines):", len(lines)))
	for i := 0; i < len(lines) && i < previewLines; i++ {
		g.onProgress.Emit(model.LevelVerbose, lines[i])
	}

	switch {
	case res.Written:
		g.onProgress.Emit(model.LevelSuccess, fmt.Sprintf("Successfully updated %s", res.Path))
	case !res.Changed:
		g.onProgress.Emit(model.LevelSuccess, fmt.Sprintf("%s is already up to date", res.Path))
	default:
		g.onProgress.Emit(model.LevelInfo, fmt.Sprintf("Dry run: %s not modified", res.Path))
	}
	g.onProgress.Emit(model.LevelSuccess, fmt.Sprintf("Total flyers injected: %d", catalog.Total()))

	return res, nil
}

// Run scans, injects and reports the per-year listing.
func (g *Generator) Run(ctx context.Context) (*Summary, error) {
	catalog, err := g.Scan(ctx)
	if err != nil {
		return nil, err
	}

	res, err := g.Inject(ctx, catalog)
	if err != nil {
		return nil, err
	}

	for _, line := range Listing(catalog) {
		g.onProgress.Emit(model.LevelInfo, line)
	}
	for _, line := range FolderTree(g.settings.RootPath, catalog) {
		g.onProgress.Emit(model.LevelInfo, line)
	}

	return &Summary{Catalog: catalog, Result: res}, nil
}

// Listing renders the flyers by year, newest year first:
//
//	2024 (2 sessions):
//	   1. 1.jpg                     -> January 06, 2024
//	   2. 2.jpg                     -> January 13, 2024
func Listing(catalog *model.Catalog) []string {
	lines := []string{"Flyers by Year:"}

	buckets := append([]model.YearBucket(nil), catalog.Buckets()...)
	sort.Slice(buckets, func(i, j int) bool { return buckets[i].Year > buckets[j].Year })

	for _, b := range buckets {
		lines = append(lines, fmt.Sprintf("  %s (%d sessions):", b.Year, len(b.Flyers)))
		for i, f := range b.Flyers {
			lines = append(lines, fmt.Sprintf("    %2d. %s -> %s", i+1, runewidth.FillRight(f.Filename, 25), f.Date))
		}
	}
	return lines
}

// FolderTree renders the year folders under root with their counts.
func FolderTree(root string, catalog *model.Catalog) []string {
	sep := string(filepath.Separator)
	lines := []string{"Folder Structure:", "   " + strings.TrimSuffix(root, sep) + sep}
	for _, b := range catalog.Buckets() {
		lines = append(lines, fmt.Sprintf("   +-- %s%s  (%d flyers)", b.Year, sep, len(b.Flyers)))
	}
	return lines
}
