package diagnose

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	ioutils "github.com/anjirai/weekly-flyers/internal/io"
	"github.com/anjirai/weekly-flyers/internal/inject"
	"github.com/anjirai/weekly-flyers/internal/scan"
)

// Entry is one item directly under the root folder.
type Entry struct {
	Name string
	Dir  bool
}

// ImageFile is an image inside a year folder.
type ImageFile struct {
	Name string
	Size int64

	// Info holds the decoded header; zero when ProbeErr is set.
	Info     ioutils.ImageInfo
	ProbeErr error
}

// YearFolder is the content of one four-digit folder.
type YearFolder struct {
	Year   string
	Images []ImageFile
	Others []string
}

// TargetCheck describes the page the generator writes to.
type TargetCheck struct {
	Path       string
	Identifier string
	Exists     bool

	// Scripts counts <script> elements mentioning the identifier.
	Scripts int

	// Block is set when the data block was located; LocateErr otherwise.
	Block     *inject.Block
	LocateErr error
}

// Report is the result of inspecting a flyer folder tree.
type Report struct {
	Root   string
	Exists bool

	// Entries lists the root folder, sorted by name.
	Entries []Entry

	// YearFolders is sorted by year.
	YearFolders []YearFolder

	// RootImages lists images found directly in the root when there are no
	// year folders.
	RootImages []string

	Target *TargetCheck
}

// Inspector builds diagnostic reports.
type Inspector struct {
	extensions []string
	workers    int
	images     *ioutils.ImageService
	logger     *zap.Logger
}

// NewInspector creates an Inspector. workers bounds concurrent image header
// probes; values below 1 mean 1.
func NewInspector(extensions []string, workers int, logger *zap.Logger) *Inspector {
	if workers < 1 {
		workers = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Inspector{
		extensions: extensions,
		workers:    workers,
		images:     ioutils.NewImageService(),
		logger:     logger,
	}
}

// Inspect reads root and describes its layout. When root is missing the
// returned report has Exists == false and the error wraps
// scan.ErrRootNotFound.
func (in *Inspector) Inspect(ctx context.Context, root string) (*Report, error) {
	report := &Report{Root: root}

	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return report, fmt.Errorf("%w: %s", scan.ErrRootNotFound, root)
	}
	report.Exists = true

	entries, err := os.ReadDir(root)
	if err != nil {
		return report, err
	}
	for _, e := range entries {
		report.Entries = append(report.Entries, Entry{Name: e.Name(), Dir: scan.IsDir(root, e)})
	}
	sort.Slice(report.Entries, func(i, j int) bool { return report.Entries[i].Name < report.Entries[j].Name })

	years, err := scan.YearFolders(root)
	if err != nil {
		return report, err
	}

	if len(years) == 0 {
		for _, e := range entries {
			if scan.HasImageExtension(e.Name(), in.extensions) {
				report.RootImages = append(report.RootImages, e.Name())
			}
		}
		sort.Strings(report.RootImages)
		return report, nil
	}

	for _, year := range years {
		folder, err := in.inspectYear(filepath.Join(root, year), year)
		if err != nil {
			return report, err
		}
		report.YearFolders = append(report.YearFolders, folder)
	}

	if err := in.probe(ctx, root, report.YearFolders); err != nil {
		return report, err
	}

	return report, nil
}

func (in *Inspector) inspectYear(dir, year string) (YearFolder, error) {
	folder := YearFolder{Year: year}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return folder, err
	}

	for _, e := range entries {
		if !scan.HasImageExtension(e.Name(), in.extensions) {
			folder.Others = append(folder.Others, e.Name())
			continue
		}

		img := ImageFile{Name: e.Name()}
		if fi, err := e.Info(); err == nil {
			img.Size = fi.Size()
		}
		folder.Images = append(folder.Images, img)
	}

	sort.Slice(folder.Images, func(i, j int) bool { return folder.Images[i].Name < folder.Images[j].Name })
	sort.Strings(folder.Others)
	return folder, nil
}

// probe decodes image headers with at most in.workers files open at once.
// Each goroutine writes only its own slot.
func (in *Inspector) probe(ctx context.Context, root string, folders []YearFolder) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(in.workers)

	for fi := range folders {
		for ii := range folders[fi].Images {
			img := &folders[fi].Images[ii]
			path := filepath.Join(root, folders[fi].Year, img.Name)
			g.Go(func() error {
				info, err := in.images.Probe(gctx, path)
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					return err
				}
				img.Info, img.ProbeErr = info, err
				if err != nil {
					in.logger.Debug("probe failed", zap.String("path", path), zap.Error(err))
				}
				return nil
			})
		}
	}

	return g.Wait()
}

// CheckTarget inspects the page at path for the identifier's data block.
func (in *Inspector) CheckTarget(path, identifier string) *TargetCheck {
	check := &TargetCheck{Path: path, Identifier: identifier}

	content, err := ioutils.ReadText(path)
	if err != nil {
		check.LocateErr = err
		if errors.Is(err, os.ErrNotExist) {
			check.LocateErr = inject.ErrTargetNotFound
		}
		return check
	}
	check.Exists = true

	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(content)); err == nil {
		doc.Find("script").Each(func(_ int, s *goquery.Selection) {
			if strings.Contains(s.Text(), identifier) {
				check.Scripts++
			}
		})
	} else {
		in.logger.Debug("parsing page", zap.String("path", path), zap.Error(err))
	}

	block, err := inject.Locate(content, identifier)
	if err != nil {
		check.LocateErr = err
		return check
	}
	check.Block = &block
	return check
}
