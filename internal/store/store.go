// Package store persists a log of drafting runs.
package store

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/docdraft/internal/model"
)

// ErrNotFound is returned when a run does not exist.
var ErrNotFound = errors.New("store: run not found")

// RunFilter specifies criteria for listing runs.
type RunFilter struct {
	Kind   model.DocumentKind `json:"kind,omitempty"`
	Status model.RunStatus    `json:"status,omitempty"`
	Limit  int                `json:"limit,omitempty"`
	Offset int                `json:"offset,omitempty"`
}

// Store defines the persistence interface for the run log.
type Store interface {
	RecordRun(ctx context.Context, run *model.Run) error
	GetRun(ctx context.Context, runID string) (*model.Run, error)
	ListRuns(ctx context.Context, filter RunFilter) ([]model.Run, error)

	Migrate(ctx context.Context) error
	Close() error
}

// NewRun builds a run record from a drafting outcome. A non-nil draftErr
// marks the run failed and doc is ignored.
func NewRun(kind model.DocumentKind, mode model.DraftMode, input string, doc any, draftErr error) (*model.Run, error) {
	run := &model.Run{
		Kind:   kind,
		Mode:   mode,
		Status: model.RunStatusComplete,
		Input:  input,
	}
	if draftErr != nil {
		run.Status = model.RunStatusFailed
		run.Error = draftErr.Error()
		return run, nil
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, eris.Wrap(err, "store: marshal result")
	}
	run.Result = data
	return run, nil
}

// Record stores the outcome of one drafting call. A nil st is a no-op and
// storage failures are logged rather than returned.
func Record(ctx context.Context, st Store, kind model.DocumentKind, mode model.DraftMode, input string, doc any, draftErr error) {
	if st == nil {
		return
	}
	run, err := NewRun(kind, mode, input, doc, draftErr)
	if err == nil {
		err = st.RecordRun(ctx, run)
	}
	if err != nil {
		zap.L().Warn("store: failed to record run",
			zap.String("kind", string(kind)),
			zap.String("input", input),
			zap.Error(err),
		)
	}
}
