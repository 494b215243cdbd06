// Package engine interprets and extends the office folder convention:
// client folders under a root, drawing folders under a client, and
// revision folders under a drawing.
//
// The engine keeps no state. Every query lists the filesystem again, and
// names that do not match the grammar are skipped rather than reported.
package engine

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/Ning0612/drawfolders/internal/adapter"
	"github.com/Ning0612/drawfolders/internal/convention"
	"github.com/Ning0612/drawfolders/internal/domain"
	"github.com/Ning0612/drawfolders/internal/logger"
	"github.com/Ning0612/drawfolders/internal/progress"
)

// DefaultTimeout bounds one directory listing
const DefaultTimeout = 10 * time.Second

// Engine answers latest/next questions over a Filesystem
type Engine struct {
	fs       adapter.Filesystem
	timeout  time.Duration
	log      logger.Logger
	reporter progress.Reporter
}

// Option configures an Engine
type Option func(*Engine)

// WithTimeout bounds each filesystem call; zero or negative disables the bound
func WithTimeout(d time.Duration) Option {
	return func(e *Engine) {
		e.timeout = d
	}
}

// WithLogger sets the logger
func WithLogger(l logger.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// WithReporter sets the progress reporter used by CreateBatch
func WithReporter(r progress.Reporter) Option {
	return func(e *Engine) {
		if r != nil {
			e.reporter = r
		}
	}
}

// New creates an engine over fs
func New(fs adapter.Filesystem, opts ...Option) *Engine {
	e := &Engine{
		fs:       fs,
		timeout:  DefaultTimeout,
		log:      &logger.NullLogger{},
		reporter: progress.NullReporter{},
	}
	for _, opt := range opts {
		opt(e)
	}
	e.log = e.log.With("component", "engine")
	return e
}

// withTimeout derives the per-call context
func (e *Engine) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if e.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, e.timeout)
}

// listDirs returns the child directories of path.
// Any failure, timeouts included, is reported as a *domain.DirectoryError.
func (e *Engine) listDirs(ctx context.Context, path string) ([]domain.FileInfo, error) {
	callCtx, cancel := e.withTimeout(ctx)
	defer cancel()

	start := time.Now()
	entries, err := e.fs.List(callCtx, path)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			err = domain.ErrTimeout
		}
		e.log.Warn("listing failed", "path", path, "error", err)
		return nil, &domain.DirectoryError{Path: path, Err: err}
	}

	dirs := make([]domain.FileInfo, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			dirs = append(dirs, entry)
		}
	}
	e.log.Debug("listed directory", "path", path, "dirs", len(dirs), "took", time.Since(start))
	return dirs, nil
}

// ListClients scans the immediate children of rootPath for client folders.
// The result is unordered; callers sort for display.
func (e *Engine) ListClients(ctx context.Context, rootPath string, mode domain.NamingMode) ([]domain.ClientFolder, error) {
	dirs, err := e.listDirs(ctx, rootPath)
	if err != nil {
		return nil, err
	}

	clients := make([]domain.ClientFolder, 0, len(dirs))
	for _, d := range dirs {
		switch mode {
		case domain.NamingFlat:
			clients = append(clients, domain.ClientFolder{
				DisplayName: d.Name,
				Name:        d.Name,
				Path:        d.Path,
			})
		default:
			code, name, ok := convention.ParseClientName(d.Name)
			if !ok {
				continue
			}
			clients = append(clients, domain.ClientFolder{
				Code:        code,
				DisplayName: name,
				Name:        d.Name,
				Path:        d.Path,
			})
		}
	}
	return clients, nil
}

// SortClients orders clients by code, then by folder name
func SortClients(clients []domain.ClientFolder) {
	sort.SliceStable(clients, func(i, j int) bool {
		if clients[i].Code != clients[j].Code {
			return clients[i].Code < clients[j].Code
		}
		return foldText(clients[i].Name) < foldText(clients[j].Name)
	})
}

// ListDrawings scans clientPath for <ccc>-<nnnn> folders
func (e *Engine) ListDrawings(ctx context.Context, clientPath string) ([]domain.DrawingFolder, error) {
	dirs, err := e.listDirs(ctx, clientPath)
	if err != nil {
		return nil, err
	}

	drawings := make([]domain.DrawingFolder, 0, len(dirs))
	for _, d := range dirs {
		code, seq, ok := convention.ParseDrawingName(d.Name)
		if !ok {
			continue
		}
		drawings = append(drawings, domain.DrawingFolder{
			Code:     code,
			Sequence: seq,
			Name:     d.Name,
			Path:     d.Path,
		})
	}
	return drawings, nil
}

// LatestDrawing returns the numerically greatest drawing by (code, sequence)
func LatestDrawing(drawings []domain.DrawingFolder) (domain.DrawingFolder, bool) {
	if len(drawings) == 0 {
		return domain.DrawingFolder{}, false
	}
	latest := drawings[0]
	for _, d := range drawings[1:] {
		if latest.Less(d) {
			latest = d
		}
	}
	return latest, true
}

// SortDrawings orders drawings numerically, oldest first
func SortDrawings(drawings []domain.DrawingFolder) {
	sort.SliceStable(drawings, func(i, j int) bool {
		return drawings[i].Less(drawings[j])
	})
}

// ListRevisions scans drawingPath for Rev-NN folders
func (e *Engine) ListRevisions(ctx context.Context, drawingPath string) ([]domain.RevisionFolder, error) {
	dirs, err := e.listDirs(ctx, drawingPath)
	if err != nil {
		return nil, err
	}

	revisions := make([]domain.RevisionFolder, 0, len(dirs))
	for _, d := range dirs {
		n, ok := convention.ParseRevisionName(d.Name)
		if !ok {
			continue
		}
		revisions = append(revisions, domain.RevisionFolder{
			Number: n,
			Name:   d.Name,
			Path:   d.Path,
		})
	}
	return revisions, nil
}

// LatestRevision returns the revision with the highest number
func LatestRevision(revisions []domain.RevisionFolder) (domain.RevisionFolder, bool) {
	if len(revisions) == 0 {
		return domain.RevisionFolder{}, false
	}
	latest := revisions[0]
	for _, r := range revisions[1:] {
		if r.Number > latest.Number {
			latest = r
		}
	}
	return latest, true
}

// SortRevisions orders revisions numerically, oldest first
func SortRevisions(revisions []domain.RevisionFolder) {
	sort.SliceStable(revisions, func(i, j int) bool {
		return revisions[i].Number < revisions[j].Number
	})
}

// NextDrawingNumber returns one more than the highest drawing sequence
// under clientPath, or 1 when there are none.
//
// The answer is a snapshot. Use CreateNextDrawing to claim a number
// safely when other operators may be creating drawings too.
func (e *Engine) NextDrawingNumber(ctx context.Context, clientPath string) (int, error) {
	drawings, err := e.ListDrawings(ctx, clientPath)
	if err != nil {
		return 0, err
	}
	return nextSequence(drawings), nil
}

func nextSequence(drawings []domain.DrawingFolder) int {
	highest := 0
	for _, d := range drawings {
		if d.Sequence > highest {
			highest = d.Sequence
		}
	}
	return highest + 1
}

// ResolveOpenTarget returns the folder an operator should open for a drawing:
// its latest revision, or the drawing folder itself when it has none.
func (e *Engine) ResolveOpenTarget(ctx context.Context, drawingPath string) (string, error) {
	revisions, err := e.ListRevisions(ctx, drawingPath)
	if err != nil {
		return "", err
	}
	if latest, ok := LatestRevision(revisions); ok {
		return latest.Path, nil
	}
	return drawingPath, nil
}

// LatestOpenTarget finds the latest drawing of a client and resolves its open target
func (e *Engine) LatestOpenTarget(ctx context.Context, clientPath string) (string, domain.DrawingFolder, error) {
	drawings, err := e.ListDrawings(ctx, clientPath)
	if err != nil {
		return "", domain.DrawingFolder{}, err
	}
	latest, ok := LatestDrawing(drawings)
	if !ok {
		return "", domain.DrawingFolder{}, fmt.Errorf("%w: %s", domain.ErrNoDrawings, clientPath)
	}
	target, err := e.ResolveOpenTarget(ctx, latest.Path)
	if err != nil {
		return "", latest, err
	}
	return target, latest, nil
}
