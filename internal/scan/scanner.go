package scan

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/anjirai/weekly-flyers/internal/model"
)

var (
	// ErrRootNotFound is returned when the flyer root folder does not exist
	// or is not a directory.
	ErrRootNotFound = errors.New("flyer folder not found")

	// ErrNoFlyers is returned when no qualifying image was found anywhere
	// under the root.
	ErrNoFlyers = errors.New("no flyers found")
)

// Scanner walks a flyer folder tree and builds a model.Catalog.
//
// The tree is expected to look like:
//
//	ShortStoryFlyer/
//	+-- 2024/
//	|   +-- 1.jpg
//	|   +-- 2.jpg
//	+-- 2025/
//	    +-- 1.jpg
//
// When no four-digit year folders exist, images directly in the root are
// assigned to the current year.
//
// Example:
//
//	s := scan.NewScanner(settings.ImageExtensions, settings.ToFlyerConfig())
//	catalog, err := s.Scan(ctx, "/path/to/ShortStoryFlyer")
//	if errors.Is(err, scan.ErrNoFlyers) {
//	    // nothing to publish
//	}
type Scanner struct {
	extensions []string
	flyerCfg   *model.FlyerConfig

	now        func() time.Time
	logger     *zap.Logger
	onProgress model.ProgressFunc
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithClock sets the clock used to pick the current year.
func WithClock(now func() time.Time) Option {
	return func(s *Scanner) { s.now = now }
}

// WithLogger sets the debug logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Scanner) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithProgress sets the operator progress callback.
func WithProgress(fn model.ProgressFunc) Option {
	return func(s *Scanner) { s.onProgress = fn }
}

// NewScanner creates a Scanner accepting files ending in one of extensions.
func NewScanner(extensions []string, cfg *model.FlyerConfig, opts ...Option) *Scanner {
	s := &Scanner{
		extensions: extensions,
		flyerCfg:   cfg,
		now:        time.Now,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// IsYearName reports whether name is exactly four ASCII digits.
func IsYearName(name string) bool {
	if len(name) != 4 {
		return false
	}
	for i := 0; i < len(name); i++ {
		if !isDigit(name[i]) {
			return false
		}
	}
	return true
}

// IsImage reports whether name ends with one of s's extensions.
// Matching is case-sensitive.
func (s *Scanner) IsImage(name string) bool {
	return HasImageExtension(name, s.extensions)
}

// HasImageExtension reports whether name ends with one of extensions.
func HasImageExtension(name string, extensions []string) bool {
	for _, ext := range extensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

// YearFolders returns the sorted names of the year directories directly
// under root.
func YearFolders(root string) ([]string, error) {
	entries, err := readRoot(root)
	if err != nil {
		return nil, err
	}

	var years []string
	for _, e := range entries {
		if IsYearName(e.Name()) && IsDir(root, e) {
			years = append(years, e.Name())
		}
	}
	return years, nil
}

// Scan builds the catalog for root.
func (s *Scanner) Scan(ctx context.Context, root string) (*model.Catalog, error) {
	years, err := YearFolders(root)
	if err != nil {
		return nil, err
	}

	catalog := &model.Catalog{}

	if len(years) > 0 {
		s.onProgress.Emit(model.LevelInfo, fmt.Sprintf("Found year-based folders: %s", strings.Join(years, ", ")))

		for _, year := range years {
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			files, err := s.ImageFiles(filepath.Join(root, year))
			if err != nil {
				return nil, fmt.Errorf("scanning %s: %w", year, err)
			}
			if len(files) == 0 {
				s.onProgress.Emit(model.LevelWarning, fmt.Sprintf("%s: no image files", year))
				continue
			}

			catalog.Put(year, s.Records(files, year))
			s.onProgress.Emit(model.LevelInfo, fmt.Sprintf("%s: %d flyers", year, len(files)))
		}
	} else {
		s.onProgress.Emit(model.LevelInfo, "No year folders found, scanning main folder...")
		year := strconv.Itoa(s.now().Year())

		files, err := s.ImageFiles(root)
		if err != nil {
			return nil, err
		}
		if len(files) > 0 {
			catalog.Put(year, s.Records(files, year))
			s.onProgress.Emit(model.LevelInfo, fmt.Sprintf("%s: %d flyers", year, len(files)))
		}
	}

	if catalog.Empty() {
		return nil, fmt.Errorf("%w in %s", ErrNoFlyers, root)
	}

	s.logger.Debug("scan complete",
		zap.String("root", root),
		zap.Strings("years", catalog.Years()),
		zap.Int("flyers", catalog.Total()))

	return catalog, nil
}

// ImageFiles lists the image files directly in dir in natural order.
// Subdirectories are ignored even when their name looks like an image.
func (s *Scanner) ImageFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !s.IsImage(e.Name()) {
			continue
		}
		files = append(files, e.Name())
	}

	NaturalSort(files)
	return files, nil
}

// Records converts naturally sorted filenames into flyers for year.
//
// A YYYY-MM-DD date in the filename wins; otherwise the flyer is placed on
// the weekly Saturday schedule by its index in files.
func (s *Scanner) Records(files []string, year string) []model.Flyer {
	y, _ := strconv.Atoi(year)

	flyers := make([]model.Flyer, 0, len(files))
	for i, name := range files {
		when, ok := DateFromFilename(name)
		source := model.DateFromFilename
		if !ok {
			when = ScheduledDate(y, i)
			source = model.DateFromSchedule
			if isoDatePattern.MatchString(name) {
				s.onProgress.Emit(model.LevelVerbose, fmt.Sprintf("%s: invalid date in filename, using schedule", name))
			}
		}

		f := model.NewFlyer(name, SessionNumber(name, i), when, source, s.flyerCfg)
		s.logger.Debug("flyer",
			zap.String("year", year),
			zap.String("file", name),
			zap.String("date", f.Date),
			zap.Stringer("source", source))
		flyers = append(flyers, f)
	}
	return flyers
}

func readRoot(root string) ([]os.DirEntry, error) {
	info, err := os.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRootNotFound, root)
		}
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrRootNotFound, root)
	}
	return os.ReadDir(root)
}

// IsDir reports whether e, an entry of parent, is a directory. Symlinks are
// followed so a linked year folder still counts.
func IsDir(parent string, e os.DirEntry) bool {
	if e.Type()&os.ModeSymlink == 0 {
		return e.IsDir()
	}
	info, err := os.Stat(filepath.Join(parent, e.Name()))
	return err == nil && info.IsDir()
}
