// Package datefolder renames day-first date folders (05-03-2024) to the
// sortable year-first form (2024-03-05) anywhere below a starting folder.
//
// Work is split in two steps: Plan only lists, Apply only renames. The
// starting folder itself is never renamed.
package datefolder

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/Ning0612/drawfolders/internal/adapter"
	"github.com/Ning0612/drawfolders/internal/domain"
)

const (
	sourceLayout = "02-01-2006"
	targetLayout = "2006-01-02"
)

var datePattern = regexp.MustCompile(`^(\d{2})-(\d{2})-(\d{4})$`)

// Rename is one planned folder rename within a single parent
type Rename struct {
	From string `json:"from" yaml:"from"`
	To   string `json:"to" yaml:"to"`
}

// Result summarizes Apply
type Result struct {
	Renamed []Rename `json:"renamed" yaml:"renamed"`
	Errors  []error  `json:"-" yaml:"-"`
}

// Convert returns the year-first name for a dd-mm-yyyy folder name.
// It reports false for other names and for impossible dates such as 31-02-2023.
func Convert(name string) (string, bool) {
	if !datePattern.MatchString(name) {
		return "", false
	}
	t, err := time.Parse(sourceLayout, name)
	if err != nil {
		return "", false
	}
	return t.Format(targetLayout), true
}

// Plan walks every folder below start and returns the renames to perform.
// Subfolders that cannot be listed are skipped; their errors are joined into
// the returned error alongside the renames found elsewhere. If start itself
// cannot be listed, no renames are returned.
func Plan(ctx context.Context, fs adapter.Filesystem, start string) ([]Rename, error) {
	entries, err := fs.List(ctx, start)
	if err != nil {
		return nil, &domain.DirectoryError{Path: start, Err: err}
	}

	var (
		renames []Rename
		errs    []error
	)
	queue := [][]domain.FileInfo{entries}
	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			return renames, err
		}
		batch := queue[0]
		queue = queue[1:]

		for _, entry := range batch {
			if !entry.IsDir() {
				continue
			}
			if target, ok := Convert(entry.Name); ok {
				renames = append(renames, Rename{
					From: entry.Path,
					To:   filepath.Join(filepath.Dir(entry.Path), target),
				})
			}

			children, err := fs.List(ctx, entry.Path)
			if err != nil {
				errs = append(errs, &domain.DirectoryError{Path: entry.Path, Err: err})
				continue
			}
			queue = append(queue, children)
		}
	}
	return renames, errors.Join(errs...)
}

// Apply performs renames deepest first, so a folder is renamed only after
// everything planned inside it. A destination that already exists is
// reported and left alone; other failures are reported and processing goes on.
func Apply(ctx context.Context, fs adapter.Filesystem, renames []Rename) Result {
	ordered := make([]Rename, len(renames))
	copy(ordered, renames)
	sort.SliceStable(ordered, func(i, j int) bool {
		return depth(ordered[i].From) > depth(ordered[j].From)
	})

	var result Result
	for _, r := range ordered {
		if err := ctx.Err(); err != nil {
			result.Errors = append(result.Errors, err)
			return result
		}

		err := fs.Rename(ctx, r.From, r.To)
		switch {
		case errors.Is(err, domain.ErrAlreadyExists):
			result.Errors = append(result.Errors,
				fmt.Errorf("cannot rename %s to %s: destination already exists", r.From, r.To))
		case err != nil:
			result.Errors = append(result.Errors, fmt.Errorf("rename %s: %w", r.From, err))
		default:
			result.Renamed = append(result.Renamed, r)
		}
	}
	return result
}

func depth(path string) int {
	return strings.Count(filepath.Clean(path), string(filepath.Separator))
}
