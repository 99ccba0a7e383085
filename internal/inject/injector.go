package inject

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	ioutils "github.com/anjirai/weekly-flyers/internal/io"
	"github.com/anjirai/weekly-flyers/internal/model"
)

// ErrTargetNotFound is returned when the page to update does not exist.
var ErrTargetNotFound = errors.New("target file not found")

// Result describes one injection.
type Result struct {
	// Path is the target file.
	Path string

	// Block is the location of the data block before the update.
	Block Block

	// Code is the freshly rendered declaration.
	Code string

	// Changed reports whether the new content differs from the old.
	Changed bool

	// Written reports whether the file was overwritten. False for dry runs
	// and unchanged content.
	Written bool
}

// Lines returns the rendered code split into lines, without line endings.
func (r *Result) Lines() []string {
	return strings.Split(strings.ReplaceAll(r.Code, "\r\n", "\n"), "\n")
}

// Injector replaces the data block of a page with a rendered catalog.
//
// Example:
//
//	inj := inject.NewInjector("flyersByYear")
//	res, err := inj.Inject(ctx, "/site/weeklyMeeting.html", catalog)
//	switch {
//	case errors.Is(err, inject.ErrAmbiguousMarker):
//	    // the page declares flyersByYear twice
//	case errors.Is(err, inject.ErrMarkerNotFound):
//	    // the page has no data block
//	}
type Injector struct {
	identifier string
	dryRun     bool
	logger     *zap.Logger
}

// NewInjector creates an Injector for the given JavaScript identifier.
func NewInjector(identifier string) *Injector {
	return &Injector{
		identifier: identifier,
		logger:     zap.NewNop(),
	}
}

// WithDryRun makes Inject compute the result without writing.
func (inj *Injector) WithDryRun(dryRun bool) *Injector {
	inj.dryRun = dryRun
	return inj
}

// WithLogger sets the debug logger.
func (inj *Injector) WithLogger(logger *zap.Logger) *Injector {
	if logger != nil {
		inj.logger = logger
	}
	return inj
}

// Splice returns content with its data block replaced by the rendering of
// catalog. The whitespace before the declaration is kept, so splicing the
// result again yields identical bytes. Pages with CRLF line endings get a
// CRLF block.
func (inj *Injector) Splice(content string, catalog *model.Catalog) (string, Block, string, error) {
	block, err := Locate(content, inj.identifier)
	if err != nil {
		return "", Block{}, "", err
	}

	code := Render(catalog, block.Keyword, inj.identifier, block.Indent)
	if nl := lineEnding(content); nl != "\n" {
		code = strings.ReplaceAll(code, "\n", nl)
	}
	return content[:block.Start] + code + content[block.End:], block, code, nil
}

// Inject reads path, replaces its data block and overwrites the file when
// the content changed. On any error the file is left untouched.
func (inj *Injector) Inject(ctx context.Context, path string, catalog *model.Catalog) (*Result, error) {
	content, err := ioutils.ReadText(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrTargetNotFound, path)
		}
		return nil, err
	}

	updated, block, code, err := inj.Splice(content, catalog)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	res := &Result{
		Path:    path,
		Block:   block,
		Code:    code,
		Changed: updated != content,
	}

	inj.logger.Debug("located data block",
		zap.String("path", path),
		zap.Int("line", block.Line),
		zap.Int("old_records", block.Records()),
		zap.Int("new_records", catalog.Total()),
		zap.Bool("changed", res.Changed))

	if !res.Changed || inj.dryRun {
		return res, nil
	}

	if err := ioutils.OverwriteFile(ctx, path, []byte(updated)); err != nil {
		return nil, fmt.Errorf("writing %s: %w", path, err)
	}
	res.Written = true

	return res, nil
}

// lineEnding reports the page's line terminator: "\r\n" when any CRLF is
// present, "\n" otherwise.
func lineEnding(content string) string {
	if strings.Contains(content, "\r\n") {
		return "\r\n"
	}
	return "\n"
}
