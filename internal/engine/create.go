package engine

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/Ning0612/drawfolders/internal/convention"
	"github.com/Ning0612/drawfolders/internal/domain"
)

// CreateDrawing creates <code>-<sequence:04d> under clientPath and, when
// createRevisionZero is set, Rev-00 inside it. Folders that already exist
// are left untouched, so repeating the call is harmless.
//
// The caller picks sequence; nothing stops two callers from picking the
// same one. CreateNextDrawing does not have that problem.
func (e *Engine) CreateDrawing(ctx context.Context, clientPath, code string, sequence int, createRevisionZero bool) (domain.DrawingFolder, error) {
	drawing, err := newDrawing(clientPath, code, sequence)
	if err != nil {
		return domain.DrawingFolder{}, err
	}

	if err := e.mkdir(ctx, drawing.Path); err != nil {
		return domain.DrawingFolder{}, err
	}
	if createRevisionZero {
		if err := e.createRevisionZero(ctx, drawing.Path); err != nil {
			return drawing, err
		}
	}

	e.log.Info("drawing folder ready", "path", drawing.Path, "rev0", createRevisionZero)
	return drawing, nil
}

// CreateNextDrawing claims the next free drawing number under clientPath.
// It starts at NextDrawingNumber and creates folders exclusively, moving on
// to the following number whenever the folder turns out to exist already,
// so concurrent callers always end up with distinct drawings.
func (e *Engine) CreateNextDrawing(ctx context.Context, clientPath, code string, createRevisionZero bool) (domain.DrawingFolder, error) {
	if !convention.IsClientCode(code) {
		return domain.DrawingFolder{}, &domain.CreationError{
			Path:   clientPath,
			Reason: fmt.Sprintf("invalid client code %q", code),
		}
	}

	next, err := e.NextDrawingNumber(ctx, clientPath)
	if err != nil {
		return domain.DrawingFolder{}, err
	}

	for seq := next; ; seq++ {
		drawing, err := newDrawing(clientPath, code, seq)
		if err != nil {
			return domain.DrawingFolder{}, err
		}

		err = e.mkdirExclusive(ctx, drawing.Path)
		if errors.Is(err, domain.ErrAlreadyExists) {
			e.log.Debug("drawing number taken, trying next", "name", drawing.Name)
			continue
		}
		if err != nil {
			return domain.DrawingFolder{}, creationError(drawing.Path, err)
		}

		if createRevisionZero {
			if err := e.createRevisionZero(ctx, drawing.Path); err != nil {
				return drawing, err
			}
		}
		e.log.Info("created drawing", "path", drawing.Path, "rev0", createRevisionZero)
		return drawing, nil
	}
}

// BatchResult summarizes CreateBatch
type BatchResult struct {
	Created []domain.DrawingFolder `json:"created" yaml:"created"`
	Failed  []BatchFailure         `json:"failed,omitempty" yaml:"failed,omitempty"`
}

// BatchFailure is one drawing CreateBatch could not create
type BatchFailure struct {
	Name string `json:"name" yaml:"name"`
	Err  error  `json:"-" yaml:"-"`
	// Reason mirrors Err for the structured renderers
	Reason string `json:"reason" yaml:"reason"`
}

// CreateBatch creates every drawing from..to (inclusive) under parentPath.
// Failures are collected per folder and do not stop the batch; the returned
// error is non-nil only for an invalid request or a cancelled context.
func (e *Engine) CreateBatch(ctx context.Context, parentPath, code string, from, to int, createRevisionZero bool) (BatchResult, error) {
	var result BatchResult

	if !convention.IsClientCode(code) {
		return result, &domain.CreationError{
			Path:   parentPath,
			Reason: fmt.Sprintf("invalid client code %q", code),
		}
	}
	if from > to || !convention.ValidSequence(from) || !convention.ValidSequence(to) {
		return result, fmt.Errorf("%w: %d..%d (allowed 0..%d, from <= to)",
			domain.ErrInvalidRange, from, to, convention.MaxSequence)
	}

	if err := e.mkdir(ctx, parentPath); err != nil {
		return result, err
	}

	e.reporter.SetTotal(to - from + 1)
	for seq := from; seq <= to; seq++ {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		name := convention.FormatDrawingName(code, seq)
		e.reporter.Start(name)

		drawing, err := e.CreateDrawing(ctx, parentPath, code, seq, createRevisionZero)
		if err != nil {
			e.reporter.Error(err)
			result.Failed = append(result.Failed, BatchFailure{Name: name, Err: err, Reason: failureReason(err)})
			continue
		}
		e.reporter.Complete(drawing.Path)
		result.Created = append(result.Created, drawing)
	}

	e.log.Info("batch finished", "parent", parentPath, "created", len(result.Created), "failed", len(result.Failed))
	return result, nil
}

func failureReason(err error) string {
	var ce *domain.CreationError
	if errors.As(err, &ce) {
		return ce.Reason
	}
	return err.Error()
}

// newDrawing validates code and sequence and builds the folder record
func newDrawing(clientPath, code string, sequence int) (domain.DrawingFolder, error) {
	if !convention.IsClientCode(code) {
		return domain.DrawingFolder{}, &domain.CreationError{
			Path:   clientPath,
			Reason: fmt.Sprintf("invalid client code %q", code),
		}
	}
	if !convention.ValidSequence(sequence) {
		return domain.DrawingFolder{}, &domain.CreationError{
			Path:   clientPath,
			Reason: fmt.Sprintf("sequence %d out of range 0..%d", sequence, convention.MaxSequence),
		}
	}

	name := convention.FormatDrawingName(code, sequence)
	return domain.DrawingFolder{
		Code:     code,
		Sequence: sequence,
		Name:     name,
		Path:     filepath.Join(clientPath, name),
	}, nil
}

func (e *Engine) createRevisionZero(ctx context.Context, drawingPath string) error {
	return e.mkdir(ctx, filepath.Join(drawingPath, convention.FormatRevisionName(0)))
}

// mkdir is create-if-absent, wrapped as a CreationError on failure
func (e *Engine) mkdir(ctx context.Context, path string) error {
	callCtx, cancel := e.withTimeout(ctx)
	defer cancel()

	if err := e.fs.Mkdir(callCtx, path); err != nil {
		e.log.Error("mkdir failed", "path", path, "error", err)
		return creationError(path, err)
	}
	return nil
}

// mkdirExclusive returns the raw adapter error so callers can spot ErrAlreadyExists
func (e *Engine) mkdirExclusive(ctx context.Context, path string) error {
	callCtx, cancel := e.withTimeout(ctx)
	defer cancel()

	err := e.fs.MkdirExclusive(callCtx, path)
	if errors.Is(err, context.DeadlineExceeded) {
		return domain.ErrTimeout
	}
	return err
}

func creationError(path string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		err = domain.ErrTimeout
	}
	return &domain.CreationError{
		Path:   path,
		Reason: domain.CreationReason(err),
		Err:    err,
	}
}
